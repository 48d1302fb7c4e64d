package transaction

import "time"

// Estados de una unidad serializada dentro de un ítem de transacción.
const (
	UnitStatusAvailable UnitStatus = "AVAILABLE"
	UnitStatusRemoved   UnitStatus = "REMOVED"
	UnitStatusSold      UnitStatus = "SOLD"
	UnitStatusDamaged   UnitStatus = "DAMAGED"
)

// UnitStatus estado del ciclo de vida de una unidad serializada.
type UnitStatus string

// Unit representa una unidad física serializada (número de serie) que
// pertenece a un ítem de transacción. Solo existe cuando el producto
// se rastrea por serial.
type Unit struct {
	SerialNumber   string
	Status         UnitStatus
	ExpirationDate *time.Time
}
