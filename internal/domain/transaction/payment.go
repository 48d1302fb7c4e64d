package transaction

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Payment representa un abono registrado sobre una transacción con tercero
// (proveedor o cliente). Las transacciones de ajuste no manejan pagos.
type Payment struct {
	ID          string
	PayedAmount decimal.Decimal
	PaymentDate time.Time
	Method      string // efectivo, transferencia, tarjeta, etc.
}

// NewPaymentInput entrada para registrar un pago.
type NewPaymentInput struct {
	Amount decimal.Decimal
	Method string
	Date   *time.Time // nil = ahora (UTC)
}

// UpdatePaymentInput entrada para actualizar un pago existente por ID.
// Los campos nil se dejan como están.
type UpdatePaymentInput struct {
	ID     string
	Amount *decimal.Decimal
	Method *string
	Date   *time.Time
}

// newPayment construye un pago validado: monto no negativo y método no vacío.
func newPayment(in NewPaymentInput, now time.Time) (*Payment, error) {
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: monto de pago negativo", domain.ErrInvalidInput)
	}
	if in.Method == "" {
		return nil, fmt.Errorf("%w: método de pago vacío", domain.ErrInvalidInput)
	}
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	return &Payment{
		ID:          uuid.New().String(),
		PayedAmount: in.Amount,
		PaymentDate: date,
		Method:      in.Method,
	}, nil
}
