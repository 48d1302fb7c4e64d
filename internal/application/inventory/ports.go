package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/transaction"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que persistir el agregado y
// conciliar sus eventos en el libro de existencias sea atómico.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StoredProductRepository,
	) error) error
	// RunImport agrega el repositorio de huellas de importación (XML).
	RunImport(ctx context.Context, fn func(
		txRepo repository.TransactionRepository,
		stockRepo repository.StoredProductRepository,
		importRepo repository.ImportLogRepository,
	) error) error
}

// ParsedInvoiceLine línea extraída de una factura XML de proveedor.
type ParsedInvoiceLine struct {
	SKU           string
	Quantity      int
	UnitPrice     decimal.Decimal
	SerialNumbers []string
}

// ParsedInvoice factura XML de proveedor ya interpretada.
type ParsedInvoice struct {
	SupplierTaxID string
	IssueDate     *time.Time
	Lines         []ParsedInvoiceLine
}

// InvoiceXMLParser puerto para interpretar facturas XML de proveedor y
// calcular su huella canónica (C14N + SHA-256) para deduplicación.
type InvoiceXMLParser interface {
	Parse(data []byte) (*ParsedInvoice, error)
	Fingerprint(data []byte) (string, error)
}

// PurchaseOrderLine línea enriquecida para el PDF de orden de compra.
type PurchaseOrderLine struct {
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// PurchaseOrderPDFGenerator puerto para generar la representación gráfica
// de una compra (orden de compra para el proveedor).
type PurchaseOrderPDFGenerator interface {
	GeneratePurchaseOrderPDF(
		ctx context.Context,
		t *transaction.Transaction,
		supplier *entity.Supplier,
		location *entity.StorageLocation,
		lines []PurchaseOrderLine,
	) ([]byte, error)
}
