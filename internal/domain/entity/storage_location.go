package entity

import "time"

// StorageLocation representa una bodega o ubicación de almacenamiento
// dentro de una sucursal. Las transacciones de inventario y el libro de
// existencias se anclan a una ubicación.
type StorageLocation struct {
	ID        string
	BranchID  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
