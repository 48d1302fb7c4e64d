package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionItemRequest línea para crear o agregar a una transacción.
// UnitPrice nil usa el precio por defecto del SKU según el tipo de
// transacción (compra → precio de compra, venta → precio de venta).
// SerialNumbers es obligatorio para SKUs rastreados (largo == quantity).
type TransactionItemRequest struct {
	ProductInstanceID string           `json:"product_instance_id" validate:"required"`
	Quantity          int              `json:"quantity" validate:"min=0"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	SerialNumbers     []string         `json:"serial_numbers,omitempty"`
}

// UpdateTransactionItemRequest actualización de una línea existente.
// Los seriales se modifican explícitamente con altas y bajas.
type UpdateTransactionItemRequest struct {
	ProductInstanceID string           `json:"product_instance_id" validate:"required"`
	Quantity          *int             `json:"quantity,omitempty"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
	SerialsToAdd      []string         `json:"serials_to_add,omitempty"`
	SerialsToRemove   []string         `json:"serials_to_remove,omitempty"`
}

// PaymentRequest registro de un pago.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method" validate:"required"`
	Date   *time.Time      `json:"date,omitempty"`
}

// UpdatePaymentRequest actualización de un pago existente por id.
type UpdatePaymentRequest struct {
	ID     string           `json:"id" validate:"required"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Method *string          `json:"method,omitempty"`
	Date   *time.Time       `json:"date,omitempty"`
}

// CreateProcurementRequest body para POST /api/transactions/procurements.
type CreateProcurementRequest struct {
	StorageLocationID string                   `json:"storage_location_id" validate:"required"`
	SupplierID        string                   `json:"supplier_id" validate:"required"`
	Date              *time.Time               `json:"date,omitempty"`
	Items             []TransactionItemRequest `json:"items" validate:"required,min=1"`
	Payments          []PaymentRequest         `json:"payments,omitempty"`
}

// CreateSaleRequest body para POST /api/transactions/sales.
type CreateSaleRequest struct {
	StorageLocationID string                   `json:"storage_location_id" validate:"required"`
	ClientID          string                   `json:"client_id" validate:"required"`
	Date              *time.Time               `json:"date,omitempty"`
	Items             []TransactionItemRequest `json:"items" validate:"required,min=1"`
	Payments          []PaymentRequest         `json:"payments,omitempty"`
}

// CreateAdjustmentRequest body para POST /api/transactions/adjustments.
type CreateAdjustmentRequest struct {
	StorageLocationID string                   `json:"storage_location_id" validate:"required"`
	Date              *time.Time               `json:"date,omitempty"`
	Items             []TransactionItemRequest `json:"items" validate:"required,min=1"`
}

// UnitResponse unidad serializada de una línea.
type UnitResponse struct {
	SerialNumber   string     `json:"serial_number"`
	Status         string     `json:"status"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

// TransactionItemResponse línea de una transacción.
type TransactionItemResponse struct {
	ProductInstanceID string          `json:"product_instance_id"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	IsTracked         bool            `json:"is_tracked"`
	Units             []UnitResponse  `json:"units,omitempty"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	Date   time.Time       `json:"date"`
}

// TransactionResponse salida de una transacción de inventario.
type TransactionResponse struct {
	ID                string                    `json:"id"`
	Kind              string                    `json:"kind"`
	StorageLocationID string                    `json:"storage_location_id"`
	SupplierID        string                    `json:"supplier_id,omitempty"`
	ClientID          string                    `json:"client_id,omitempty"`
	Date              time.Time                 `json:"date"`
	Status            string                    `json:"status"`
	TotalAmount       decimal.Decimal           `json:"total_amount"`
	AmountLeftToPay   decimal.Decimal           `json:"amount_left_to_pay"`
	Items             []TransactionItemResponse `json:"items"`
	Payments          []PaymentResponse         `json:"payments,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
	UpdatedAt         time.Time                 `json:"updated_at"`
}

// TransactionListResponse lista paginada de transacciones.
type TransactionListResponse struct {
	Items []TransactionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ImportProcurementResponse resultado de importar una factura XML de proveedor.
type ImportProcurementResponse struct {
	TransactionID string `json:"transaction_id"`
	Fingerprint   string `json:"fingerprint"`
	Duplicated    bool   `json:"duplicated"` // true si el XML ya había sido importado
}
