package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/stock"
)

// StockUseCase consultas de solo lectura sobre el libro de existencias.
type StockUseCase struct {
	stockRepo repository.StoredProductRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(stockRepo repository.StoredProductRepository) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo}
}

// Get obtiene la fila del libro para (bodega, SKU).
func (uc *StockUseCase) Get(_ context.Context, storageLocationID, productInstanceID string) (*dto.StoredProductResponse, error) {
	row, err := uc.stockRepo.Get(storageLocationID, productInstanceID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("%w: sin existencias de %s en %s", domain.ErrNotFound, productInstanceID, storageLocationID)
	}
	return toStoredProductResponse(row), nil
}

// ListByLocation lista las existencias de una bodega.
func (uc *StockUseCase) ListByLocation(_ context.Context, storageLocationID string, limit, offset int) (*dto.StockListResponse, error) {
	rows, err := uc.stockRepo.ListByLocation(storageLocationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoredProductResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, *toStoredProductResponse(row))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toStoredProductResponse(s *stock.StoredProductInstance) *dto.StoredProductResponse {
	var items []dto.StoredProductItemResponse
	for _, it := range s.Items {
		items = append(items, dto.StoredProductItemResponse{
			SerialNumber:   it.SerialNumber,
			Status:         it.Status,
			ExpirationDate: it.ExpirationDate,
		})
	}
	return &dto.StoredProductResponse{
		StorageLocationID: s.StorageLocationID,
		ProductInstanceID: s.ProductInstanceID,
		Quantity:          s.Quantity,
		IsTracked:         s.IsTracked,
		ShelfLifeDays:     s.ShelfLifeDays,
		Items:             items,
		UpdatedAt:         s.UpdatedAt,
	}
}
