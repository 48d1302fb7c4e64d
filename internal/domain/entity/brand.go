package entity

import "time"

// Brand representa una marca de productos.
type Brand struct {
	ID        string
	Name      string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
