package transaction

import "time"

// UnitChange cambio de estado de una unidad serializada, tal como debe
// reflejarse en la bodega.
type UnitChange struct {
	SerialNumber   string
	Status         UnitStatus
	ExpirationDate *time.Time
}

// ProductEntry efecto neto de una transacción sobre un producto en bodega.
// QuantityDelta es SIEMPRE un delta firmado sobre el stock: el agregado ya
// aplicó la dirección según el tipo de transacción (compra/ajuste suman,
// venta resta; las eliminaciones invierten el signo).
type ProductEntry struct {
	ProductInstanceID string
	QuantityDelta     int
	IsTracked         bool
	ShelfLifeDays     *int
	Units             []UnitChange
}

// ProductsQuantityChangedEvent evento de dominio que describe los efectos
// de stock de una operación sobre la transacción. Se devuelve como valor
// inmutable junto al resultado de cada mutación; el caso de uso lo consume
// una sola vez dentro de su unidad de trabajo (persistir, luego conciliar).
type ProductsQuantityChangedEvent struct {
	TransactionID     string
	StorageLocationID string
	Kind              Kind
	OccurredAt        time.Time
	Entries           []ProductEntry
}
