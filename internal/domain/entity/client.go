package entity

import "time"

// Client representa un cliente al que se le venden productos.
type Client struct {
	ID        string
	Name      string
	Document  string // cédula o NIT
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
