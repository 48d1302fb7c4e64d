package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// StorageLocationRepository define el puerto de persistencia para bodegas.
type StorageLocationRepository interface {
	Create(location *entity.StorageLocation) error
	GetByID(id string) (*entity.StorageLocation, error)
	Update(location *entity.StorageLocation) error
	ListByBranch(branchID string, limit, offset int) ([]*entity.StorageLocation, error)
	Delete(id string) error
}
