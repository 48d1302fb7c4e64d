package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos y sus SKU.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	instanceRepo repository.ProductInstanceRepository
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	instanceRepo repository.ProductInstanceRepository,
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		instanceRepo: instanceRepo,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
	}
}

// Create crea un nuevo producto. Marca y categoría deben existir.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	brand, err := uc.brandRepo.GetByID(in.BrandID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, fmt.Errorf("%w: marca %s", domain.ErrNotFound, in.BrandID)
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: categoría %s", domain.ErrNotFound, in.CategoryID)
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		BrandID:     in.BrandID,
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		Attributes:  in.Attributes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Attributes != nil {
		product.Attributes = in.Attributes
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.productRepo.Delete(id)
}

// CreateInstance crea un SKU para un producto existente.
func (uc *ProductUseCase) CreateInstance(in dto.CreateProductInstanceRequest) (*dto.ProductInstanceResponse, error) {
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}
	if in.SalePrice.IsNegative() || in.PurchasePrice.IsNegative() {
		return nil, fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrInvalidInput)
	}
	if in.ShelfLifeDays != nil && *in.ShelfLifeDays <= 0 {
		return nil, fmt.Errorf("%w: la vida útil debe ser positiva", domain.ErrInvalidInput)
	}
	now := time.Now()
	instance := &entity.ProductInstance{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		SKU:           in.SKU,
		Attributes:    in.Attributes,
		SalePrice:     in.SalePrice,
		PurchasePrice: in.PurchasePrice,
		IsTracked:     in.IsTracked,
		IsWarranted:   in.IsWarranted,
		ShelfLifeDays: in.ShelfLifeDays,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.instanceRepo.Create(instance); err != nil {
		return nil, err
	}
	return toProductInstanceResponse(instance), nil
}

// GetInstance obtiene un SKU por ID.
func (uc *ProductUseCase) GetInstance(id string) (*dto.ProductInstanceResponse, error) {
	instance, err := uc.instanceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, fmt.Errorf("%w: instancia %s", domain.ErrNotFound, id)
	}
	return toProductInstanceResponse(instance), nil
}

// GetInstanceBySKU obtiene un SKU por su código.
func (uc *ProductUseCase) GetInstanceBySKU(sku string) (*dto.ProductInstanceResponse, error) {
	instance, err := uc.instanceRepo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, fmt.Errorf("%w: SKU %s", domain.ErrNotFound, sku)
	}
	return toProductInstanceResponse(instance), nil
}

// UpdateInstance actualiza un SKU. IsTracked es inmutable: el historial
// de seriales del libro de existencias depende de él.
func (uc *ProductUseCase) UpdateInstance(id string, in dto.UpdateProductInstanceRequest) (*dto.ProductInstanceResponse, error) {
	instance, err := uc.instanceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, fmt.Errorf("%w: instancia %s", domain.ErrNotFound, id)
	}
	if in.Attributes != nil {
		instance.Attributes = in.Attributes
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, fmt.Errorf("%w: el precio de venta no puede ser negativo", domain.ErrInvalidInput)
		}
		instance.SalePrice = *in.SalePrice
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, fmt.Errorf("%w: el precio de compra no puede ser negativo", domain.ErrInvalidInput)
		}
		instance.PurchasePrice = *in.PurchasePrice
	}
	if in.IsWarranted != nil {
		instance.IsWarranted = *in.IsWarranted
	}
	if in.ShelfLifeDays != nil {
		if *in.ShelfLifeDays <= 0 {
			return nil, fmt.Errorf("%w: la vida útil debe ser positiva", domain.ErrInvalidInput)
		}
		instance.ShelfLifeDays = in.ShelfLifeDays
	}
	instance.UpdatedAt = time.Now()
	if err := uc.instanceRepo.Update(instance); err != nil {
		return nil, err
	}
	return toProductInstanceResponse(instance), nil
}

// ListInstances lista los SKU de un producto con paginación.
func (uc *ProductUseCase) ListInstances(productID string, limit, offset int) (*dto.ProductInstanceListResponse, error) {
	list, err := uc.instanceRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductInstanceResponse, 0, len(list))
	for _, i := range list {
		items = append(items, *toProductInstanceResponse(i))
	}
	return &dto.ProductInstanceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// DeleteInstance elimina un SKU por ID.
func (uc *ProductUseCase) DeleteInstance(id string) error {
	return uc.instanceRepo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		BrandID:     p.BrandID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Attributes:  p.Attributes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductInstanceResponse(i *entity.ProductInstance) *dto.ProductInstanceResponse {
	if i == nil {
		return nil
	}
	return &dto.ProductInstanceResponse{
		ID:            i.ID,
		ProductID:     i.ProductID,
		SKU:           i.SKU,
		Attributes:    i.Attributes,
		SalePrice:     i.SalePrice,
		PurchasePrice: i.PurchasePrice,
		IsTracked:     i.IsTracked,
		IsWarranted:   i.IsWarranted,
		ShelfLifeDays: i.ShelfLifeDays,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}
