package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// BrandRepository define el puerto de persistencia para Brand.
type BrandRepository interface {
	Create(brand *entity.Brand) error
	GetByID(id string) (*entity.Brand, error)
	Update(brand *entity.Brand) error
	List(limit, offset int) ([]*entity.Brand, error)
	Delete(id string) error
}
