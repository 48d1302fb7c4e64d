// Package stock contiene el libro de existencias por bodega y producto.
// StoredProductInstance solo muta reaccionando a los eventos de stock que
// producen las transacciones; nunca inicia cambios por sí mismo.
package stock

import (
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Estados de una unidad serializada en bodega. El listado de ítems es un
// log acumulativo de todos los seriales vistos para el par (bodega,
// producto): las bajas cambian el estado, no borran la fila. Cualquier
// consumidor que cuente stock debe filtrar por AVAILABLE.
const (
	ItemStatusAvailable = "AVAILABLE"
	ItemStatusRemoved   = "REMOVED"
	ItemStatusSold      = "SOLD"
	ItemStatusDamaged   = "DAMAGED"
)

// ProductInstanceItem unidad serializada registrada en bodega.
type ProductInstanceItem struct {
	SerialNumber   string
	Status         string
	ExpirationDate *time.Time
}

// UnitChange cambio entrante sobre una unidad serializada.
type UnitChange struct {
	SerialNumber   string
	Status         string
	ExpirationDate *time.Time
}

// StoredProductInstance fila del libro de existencias, con clave
// (StorageLocationID, ProductInstanceID). Quantity es un acumulado firmado;
// puede quedar negativo (no se protege aquí: el control de sobreventa es
// del caso de uso).
type StoredProductInstance struct {
	StorageLocationID string
	ProductInstanceID string
	Quantity          int
	IsTracked         bool
	ShelfLifeDays     *int
	Items             []ProductInstanceItem
	UpdatedAt         time.Time
}

// ProductInput entrada para sembrar una fila del libro al crear una
// transacción con stock inicial.
type ProductInput struct {
	ProductInstanceID string
	Quantity          int
	IsTracked         bool
	ShelfLifeDays     *int
	Items             []UnitChange
}

// New construye una fila vacía del libro, lista para Apply.
func New(storageLocationID, productInstanceID string, isTracked bool, shelfLifeDays *int) *StoredProductInstance {
	return &StoredProductInstance{
		StorageLocationID: storageLocationID,
		ProductInstanceID: productInstanceID,
		IsTracked:         isTracked,
		ShelfLifeDays:     shelfLifeDays,
		UpdatedAt:         time.Now().UTC(),
	}
}

// Create construye y valida una fila con stock inicial. Para productos
// rastreados exige la lista de seriales completa (largo == cantidad, sin
// repetidos); si el producto tiene vida útil, los vencimientos no pueden
// superar hoy + ShelfLifeDays y los faltantes se rellenan con ese techo.
func Create(storageLocationID string, in ProductInput) (*StoredProductInstance, error) {
	if storageLocationID == "" || in.ProductInstanceID == "" {
		return nil, fmt.Errorf("%w: bodega o producto vacío", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: cantidad negativa para %s", domain.ErrInvalidInput, in.ProductInstanceID)
	}
	s := New(storageLocationID, in.ProductInstanceID, in.IsTracked, in.ShelfLifeDays)
	if !in.IsTracked {
		s.Quantity = in.Quantity
		return s, nil
	}
	if len(in.Items) != in.Quantity {
		return nil, fmt.Errorf("%w: %s requiere %d seriales y llegaron %d",
			domain.ErrInvalidInput, in.ProductInstanceID, in.Quantity, len(in.Items))
	}
	if err := s.Apply(in.Quantity, in.ShelfLifeDays, in.Items); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply concilia un delta de cantidad y los cambios de unidades emitidos
// por una transacción. El delta ya viene firmado. Para productos
// rastreados cada unidad entrante se upserta por serial: si existe se
// actualiza su estado en sitio, si no se agrega al log.
func (s *StoredProductInstance) Apply(quantityDelta int, shelfLifeDays *int, units []UnitChange) error {
	if shelfLifeDays != nil {
		s.ShelfLifeDays = shelfLifeDays
	}
	if !s.IsTracked {
		s.Quantity += quantityDelta
		s.UpdatedAt = time.Now().UTC()
		return nil
	}

	// Validar el lote completo antes de mutar.
	ceiling := s.expirationCeiling()
	seen := make(map[string]struct{}, len(units))
	for _, u := range units {
		if u.SerialNumber == "" {
			return fmt.Errorf("%w: serial vacío para %s", domain.ErrInvalidInput, s.ProductInstanceID)
		}
		if _, ok := seen[u.SerialNumber]; ok {
			return fmt.Errorf("%w: serial %s repetido en el lote", domain.ErrDuplicate, u.SerialNumber)
		}
		seen[u.SerialNumber] = struct{}{}
		if ceiling != nil && u.ExpirationDate != nil && u.ExpirationDate.After(*ceiling) {
			return fmt.Errorf("%w: vencimiento de %s supera la vida útil del producto",
				domain.ErrInvalidInput, u.SerialNumber)
		}
	}

	for _, u := range units {
		status := u.Status
		if status == "" {
			status = ItemStatusAvailable
		}
		exp := u.ExpirationDate
		if exp == nil && ceiling != nil {
			exp = ceiling
		}
		if existing := s.findItem(u.SerialNumber); existing != nil {
			existing.Status = status
			if u.ExpirationDate != nil {
				existing.ExpirationDate = u.ExpirationDate
			}
			continue
		}
		s.Items = append(s.Items, ProductInstanceItem{
			SerialNumber:   u.SerialNumber,
			Status:         status,
			ExpirationDate: exp,
		})
	}
	s.Quantity += quantityDelta
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// AvailableUnits devuelve las unidades en estado AVAILABLE.
func (s *StoredProductInstance) AvailableUnits() []ProductInstanceItem {
	out := make([]ProductInstanceItem, 0, len(s.Items))
	for _, it := range s.Items {
		if it.Status == ItemStatusAvailable {
			out = append(out, it)
		}
	}
	return out
}

// HasSerial indica si el serial ya fue visto en esta fila del libro.
func (s *StoredProductInstance) HasSerial(serial string) bool {
	return s.findItem(serial) != nil
}

func (s *StoredProductInstance) findItem(serial string) *ProductInstanceItem {
	for idx := range s.Items {
		if s.Items[idx].SerialNumber == serial {
			return &s.Items[idx]
		}
	}
	return nil
}

// expirationCeiling devuelve hoy + vida útil, o nil si el producto no la tiene.
func (s *StoredProductInstance) expirationCeiling() *time.Time {
	if s.ShelfLifeDays == nil {
		return nil
	}
	c := time.Now().UTC().AddDate(0, 0, *s.ShelfLifeDays)
	return &c
}
