package dto

import "time"

// StoredProductItemResponse unidad serializada en bodega.
type StoredProductItemResponse struct {
	SerialNumber   string     `json:"serial_number"`
	Status         string     `json:"status"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

// StoredProductResponse fila del libro de existencias.
type StoredProductResponse struct {
	StorageLocationID string                      `json:"storage_location_id"`
	ProductInstanceID string                      `json:"product_instance_id"`
	Quantity          int                         `json:"quantity"`
	IsTracked         bool                        `json:"is_tracked"`
	ShelfLifeDays     *int                        `json:"shelf_life_days,omitempty"`
	Items             []StoredProductItemResponse `json:"items,omitempty"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}

// StockListResponse lista paginada del libro de existencias.
type StockListResponse struct {
	Items []StoredProductResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
