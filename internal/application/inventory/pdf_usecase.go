package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/transaction"
)

// PurchaseOrderPDFUseCase genera la orden de compra en PDF de una
// transacción de compra (para enviarla al proveedor).
type PurchaseOrderPDFUseCase struct {
	transactions repository.TransactionRepository
	supplierRepo repository.SupplierRepository
	instanceRepo repository.ProductInstanceRepository
	productRepo  repository.ProductRepository
	locationRepo repository.StorageLocationRepository
	generator    PurchaseOrderPDFGenerator
}

// NewPurchaseOrderPDFUseCase construye el caso de uso.
func NewPurchaseOrderPDFUseCase(
	transactions repository.TransactionRepository,
	supplierRepo repository.SupplierRepository,
	instanceRepo repository.ProductInstanceRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.StorageLocationRepository,
	generator PurchaseOrderPDFGenerator,
) *PurchaseOrderPDFUseCase {
	return &PurchaseOrderPDFUseCase{
		transactions: transactions,
		supplierRepo: supplierRepo,
		instanceRepo: instanceRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		generator:    generator,
	}
}

// Generate arma las líneas enriquecidas (SKU + nombre de producto) y
// delega el render al generador.
func (uc *PurchaseOrderPDFUseCase) Generate(ctx context.Context, transactionID string) ([]byte, error) {
	t, err := uc.transactions.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: transacción %s", domain.ErrNotFound, transactionID)
	}
	if t.Kind != transaction.KindProcurement {
		return nil, fmt.Errorf("%w: la transacción no es una compra", domain.ErrInvalidInput)
	}
	supplier, err := uc.supplierRepo.GetByID(t.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, t.SupplierID)
	}
	location, err := uc.locationRepo.GetByID(t.StorageLocationID)
	if err != nil {
		return nil, err
	}

	lines := make([]PurchaseOrderLine, 0, len(t.Items))
	for _, item := range t.Items {
		line := PurchaseOrderLine{
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.TotalPrice(),
		}
		if inst, err := uc.instanceRepo.GetByID(item.ProductInstanceID); err == nil && inst != nil {
			line.SKU = inst.SKU
			if product, err := uc.productRepo.GetByID(inst.ProductID); err == nil && product != nil {
				line.Name = product.Name
			}
		}
		lines = append(lines, line)
	}
	return uc.generator.GeneratePurchaseOrderPDF(ctx, t, supplier, location, lines)
}
