package dto

import "time"

// CreateBranchRequest entrada para crear una sucursal.
type CreateBranchRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// UpdateBranchRequest entrada para actualizar una sucursal.
type UpdateBranchRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BranchListResponse lista paginada de sucursales.
type BranchListResponse struct {
	Items []BranchResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// CreateStorageLocationRequest entrada para crear una bodega.
type CreateStorageLocationRequest struct {
	BranchID string `json:"branch_id" validate:"required"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
}

// UpdateStorageLocationRequest entrada para actualizar una bodega.
type UpdateStorageLocationRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
}

// StorageLocationResponse salida de una bodega.
type StorageLocationResponse struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StorageLocationListResponse lista paginada de bodegas.
type StorageLocationListResponse struct {
	Items []StorageLocationResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
