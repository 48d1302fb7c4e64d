package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateBrandRequest entrada para crear una marca.
type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdateBrandRequest entrada para actualizar una marca.
type UpdateBrandRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=100"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// BrandResponse salida de una marca.
type BrandResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	ParentID string `json:"parent_id"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Code     string `json:"code" validate:"required"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=100"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BrandListResponse lista paginada de marcas.
type BrandListResponse struct {
	Items []BrandResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	BrandID     string          `json:"brand_id" validate:"required"`
	CategoryID  string          `json:"category_id" validate:"required"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Attributes  json.RawMessage `json:"attributes"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name        *string         `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string         `json:"description"`
	Attributes  json.RawMessage `json:"attributes"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	BrandID     string          `json:"brand_id"`
	CategoryID  string          `json:"category_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Attributes  json.RawMessage `json:"attributes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateProductInstanceRequest entrada para crear un SKU.
type CreateProductInstanceRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	SKU           string          `json:"sku" validate:"required,min=1,max=100"`
	Attributes    json.RawMessage `json:"attributes"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	IsTracked     bool            `json:"is_tracked"`
	IsWarranted   bool            `json:"is_warranted"`
	ShelfLifeDays *int            `json:"shelf_life_days,omitempty"`
}

// UpdateProductInstanceRequest entrada para actualizar un SKU.
// IsTracked no se puede cambiar después de creado: el historial de
// seriales del libro de existencias depende de él.
type UpdateProductInstanceRequest struct {
	Attributes    json.RawMessage  `json:"attributes"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	IsWarranted   *bool            `json:"is_warranted,omitempty"`
	ShelfLifeDays *int             `json:"shelf_life_days,omitempty"`
}

// ProductInstanceResponse salida de un SKU.
type ProductInstanceResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	SKU           string          `json:"sku"`
	Attributes    json.RawMessage `json:"attributes"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	IsTracked     bool            `json:"is_tracked"`
	IsWarranted   bool            `json:"is_warranted"`
	ShelfLifeDays *int            `json:"shelf_life_days,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductInstanceListResponse lista paginada de SKUs.
type ProductInstanceListResponse struct {
	Items []ProductInstanceResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
