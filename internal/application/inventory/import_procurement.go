package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/transaction"
)

// ImportProcurementUseCase crea una compra a partir de una factura XML de
// proveedor. La huella canónica del documento (C14N + SHA-256) hace la
// importación idempotente: reenviar el mismo XML no duplica la compra.
type ImportProcurementUseCase struct {
	txRunner     TxRunner
	parser       InvoiceXMLParser
	supplierRepo repository.SupplierRepository
	instanceRepo repository.ProductInstanceRepository
	locationRepo repository.StorageLocationRepository
	importRepo   repository.ImportLogRepository // lecturas fuera de tx
}

// NewImportProcurementUseCase construye el caso de uso.
func NewImportProcurementUseCase(
	txRunner TxRunner,
	parser InvoiceXMLParser,
	supplierRepo repository.SupplierRepository,
	instanceRepo repository.ProductInstanceRepository,
	locationRepo repository.StorageLocationRepository,
	importRepo repository.ImportLogRepository,
) *ImportProcurementUseCase {
	return &ImportProcurementUseCase{
		txRunner:     txRunner,
		parser:       parser,
		supplierRepo: supplierRepo,
		instanceRepo: instanceRepo,
		locationRepo: locationRepo,
		importRepo:   importRepo,
	}
}

// Import interpreta el XML, resuelve proveedor (por NIT) y SKUs (por
// código), y crea la compra con su efecto en bodega. Si la huella ya fue
// vista devuelve la transacción original con Duplicated=true.
func (uc *ImportProcurementUseCase) Import(ctx context.Context, storageLocationID string, xmlData []byte) (*dto.ImportProcurementResponse, error) {
	fingerprint, err := uc.parser.Fingerprint(xmlData)
	if err != nil {
		return nil, fmt.Errorf("%w: XML no canonicalizable: %v", domain.ErrInvalidInput, err)
	}
	if prev, err := uc.importRepo.GetByFingerprint(fingerprint); err != nil {
		return nil, err
	} else if prev != nil {
		return &dto.ImportProcurementResponse{
			TransactionID: prev.TransactionID,
			Fingerprint:   fingerprint,
			Duplicated:    true,
		}, nil
	}

	parsed, err := uc.parser.Parse(xmlData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	loc, err := uc.locationRepo.GetByID(storageLocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: bodega %s", domain.ErrNotFound, storageLocationID)
	}
	supplier, err := uc.supplierRepo.GetByTaxID(parsed.SupplierTaxID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor con NIT %s", domain.ErrNotFound, parsed.SupplierTaxID)
	}

	items, err := uc.buildItemInputs(parsed.Lines)
	if err != nil {
		return nil, err
	}
	t, evt, err := transaction.NewProcurement(storageLocationID, supplier.ID, parsed.IssueDate, items, nil)
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.RunImport(ctx, func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StoredProductRepository,
		importRepo repository.ImportLogRepository,
	) error {
		if err := txRepo.Create(t); err != nil {
			return err
		}
		if err := reconcile(stockRepo, evt); err != nil {
			return err
		}
		return importRepo.Create(&repository.ImportLog{
			Fingerprint:   fingerprint,
			TransactionID: t.ID,
			ImportedAt:    time.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.ImportProcurementResponse{TransactionID: t.ID, Fingerprint: fingerprint}, nil
}

// buildItemInputs resuelve cada línea del XML contra el catálogo por SKU.
func (uc *ImportProcurementUseCase) buildItemInputs(lines []ParsedInvoiceLine) ([]transaction.NewItemInput, error) {
	inputs := make([]transaction.NewItemInput, 0, len(lines))
	for _, line := range lines {
		inst, err := uc.instanceRepo.GetBySKU(line.SKU)
		if err != nil {
			return nil, err
		}
		if inst == nil {
			return nil, fmt.Errorf("%w: SKU %s no existe en el catálogo", domain.ErrNotFound, line.SKU)
		}
		inputs = append(inputs, transaction.NewItemInput{
			ProductInstanceID: inst.ID,
			Quantity:          line.Quantity,
			UnitPrice:         line.UnitPrice,
			IsTracked:         inst.IsTracked,
			ShelfLifeDays:     inst.ShelfLifeDays,
			SerialNumbers:     line.SerialNumbers,
		})
	}
	return inputs, nil
}
