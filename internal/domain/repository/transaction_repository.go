package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/transaction"
)

// TransactionRepository define el puerto de persistencia del agregado de
// transacciones de inventario (cabecera + líneas + unidades + pagos).
type TransactionRepository interface {
	Create(t *transaction.Transaction) error
	GetByID(id string) (*transaction.Transaction, error)
	// GetForUpdate bloquea la fila de la cabecera (SELECT FOR UPDATE) para
	// serializar mutaciones concurrentes sobre la misma transacción.
	GetForUpdate(id string) (*transaction.Transaction, error)
	// Save reescribe el agregado completo (cabecera y colecciones hijas).
	Save(t *transaction.Transaction) error
	List(kind *transaction.Kind, storageLocationID string, from, to *time.Time, limit, offset int) ([]*transaction.Transaction, error)
}
