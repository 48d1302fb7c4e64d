package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ProductInstance representa un SKU concreto de un producto (combinación
// de atributos vendible). Las transacciones y el libro de existencias
// referencian instancias, no productos.
//
// IsTracked: la instancia se rastrea unidad por unidad con número de serie.
// ShelfLifeDays: vida útil en días; nil si el producto no vence.
type ProductInstance struct {
	ID            string
	ProductID     string
	SKU           string // código único
	Attributes    json.RawMessage
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal
	IsTracked     bool
	IsWarranted   bool
	ShelfLifeDays *int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
