package entity

import (
	"encoding/json"
	"time"
)

// Product representa un producto del catálogo. Los atributos variables
// (color, talla, voltaje...) van como JSON; cada combinación concreta vive
// en ProductInstance.
type Product struct {
	ID          string
	BrandID     string
	CategoryID  string
	Name        string
	Description string
	Attributes  json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
