package repository

import "github.com/jhoicas/Almacen-api/internal/domain/stock"

// StoredProductRepository define el puerto del libro de existencias por
// (bodega, producto). Usado dentro de transacciones para conciliar eventos.
type StoredProductRepository interface {
	Get(storageLocationID, productInstanceID string) (*stock.StoredProductInstance, error)
	// GetForUpdate bloquea la fila para conciliación (SELECT FOR UPDATE).
	GetForUpdate(storageLocationID, productInstanceID string) (*stock.StoredProductInstance, error)
	Upsert(s *stock.StoredProductInstance) error
	ListByLocation(storageLocationID string, limit, offset int) ([]*stock.StoredProductInstance, error)
}
