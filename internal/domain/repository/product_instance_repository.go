package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// ProductInstanceRepository define el puerto de persistencia para los SKU.
// Los casos de uso de transacciones consultan aquí los metadatos de rastreo
// (IsTracked, IsWarranted, ShelfLifeDays) antes de invocar el agregado.
type ProductInstanceRepository interface {
	Create(instance *entity.ProductInstance) error
	GetByID(id string) (*entity.ProductInstance, error)
	GetBySKU(sku string) (*entity.ProductInstance, error)
	// GetByIDs devuelve las instancias pedidas indexadas por id.
	GetByIDs(ids []string) (map[string]*entity.ProductInstance, error)
	Update(instance *entity.ProductInstance) error
	ListByProduct(productID string, limit, offset int) ([]*entity.ProductInstance, error)
	Delete(id string) error
}
