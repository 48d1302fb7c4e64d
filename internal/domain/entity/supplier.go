package entity

import "time"

// Supplier representa un proveedor al que se le compran productos.
type Supplier struct {
	ID        string
	Name      string
	TaxID     string // NIT o documento fiscal
	Email     string
	Phone     string
	Address   string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
