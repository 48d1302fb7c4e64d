package transaction

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// Item representa una línea de producto dentro de una transacción de
// inventario: cantidad, precio unitario y, si el producto se rastrea por
// serial, una unidad por cada número de serie.
//
// Invariante: cuando IsTracked, Quantity == len(Units) y los seriales
// son únicos dentro del ítem.
type Item struct {
	ProductInstanceID string
	Quantity          int
	UnitPrice         decimal.Decimal
	IsTracked         bool
	ShelfLifeDays     *int // vida útil del producto, para techo de vencimiento en bodega
	Units             []Unit
}

// NewItemInput entrada para construir una línea de transacción.
// SerialNumbers es obligatorio (y su largo debe igualar Quantity) si
// IsTracked; debe venir vacío si no.
type NewItemInput struct {
	ProductInstanceID string
	Quantity          int
	UnitPrice         decimal.Decimal
	IsTracked         bool
	ShelfLifeDays     *int
	SerialNumbers     []string
}

// UpdateItemInput entrada para actualizar una línea existente.
// Para ítems rastreados los seriales se modifican explícitamente con
// SerialsToAdd/SerialsToRemove; si Quantity viene, debe coincidir con
// la cantidad resultante (old + altas − bajas).
type UpdateItemInput struct {
	ProductInstanceID string
	Quantity          *int
	UnitPrice         *decimal.Decimal
	SerialsToAdd      []string
	SerialsToRemove   []string
}

// newItem valida y construye la línea con una unidad AVAILABLE por serial.
func newItem(in NewItemInput) (*Item, error) {
	if in.ProductInstanceID == "" {
		return nil, fmt.Errorf("%w: product_instance_id vacío", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: cantidad negativa para %s", domain.ErrInvalidInput, in.ProductInstanceID)
	}
	if in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: precio unitario negativo para %s", domain.ErrInvalidInput, in.ProductInstanceID)
	}

	item := &Item{
		ProductInstanceID: in.ProductInstanceID,
		Quantity:          in.Quantity,
		UnitPrice:         in.UnitPrice,
		IsTracked:         in.IsTracked,
		ShelfLifeDays:     in.ShelfLifeDays,
	}
	if !in.IsTracked {
		if len(in.SerialNumbers) > 0 {
			return nil, fmt.Errorf("%w: seriales en producto no rastreado %s", domain.ErrInvalidInput, in.ProductInstanceID)
		}
		return item, nil
	}

	if len(in.SerialNumbers) != in.Quantity {
		return nil, fmt.Errorf("%w: %s requiere %d seriales y llegaron %d",
			domain.ErrInvalidInput, in.ProductInstanceID, in.Quantity, len(in.SerialNumbers))
	}
	seen := make(map[string]struct{}, len(in.SerialNumbers))
	for _, sn := range in.SerialNumbers {
		if sn == "" {
			return nil, fmt.Errorf("%w: serial vacío en %s", domain.ErrInvalidInput, in.ProductInstanceID)
		}
		if _, ok := seen[sn]; ok {
			return nil, fmt.Errorf("%w: serial %s repetido en %s", domain.ErrDuplicate, sn, in.ProductInstanceID)
		}
		seen[sn] = struct{}{}
		item.Units = append(item.Units, Unit{SerialNumber: sn, Status: UnitStatusAvailable})
	}
	return item, nil
}

// TotalPrice devuelve el subtotal de la línea (Quantity * UnitPrice).
func (i *Item) TotalPrice() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// HasSerial indica si el ítem contiene una unidad con ese serial.
func (i *Item) HasSerial(serial string) bool {
	for _, u := range i.Units {
		if u.SerialNumber == serial {
			return true
		}
	}
	return false
}

// AddUnit agrega una unidad AVAILABLE al ítem. No ajusta Quantity: el
// caller debe actualizar la cantidad por separado (vía UpdateItems).
func (i *Item) AddUnit(serial string) error {
	if serial == "" {
		return fmt.Errorf("%w: serial vacío", domain.ErrInvalidInput)
	}
	if i.HasSerial(serial) {
		return fmt.Errorf("%w: serial %s ya existe en %s", domain.ErrDuplicate, serial, i.ProductInstanceID)
	}
	i.Units = append(i.Units, Unit{SerialNumber: serial, Status: UnitStatusAvailable})
	return nil
}

// RemoveUnit elimina la unidad con ese serial. No ajusta Quantity.
func (i *Item) RemoveUnit(serial string) error {
	for idx, u := range i.Units {
		if u.SerialNumber == serial {
			i.Units = append(i.Units[:idx], i.Units[idx+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: serial %s no existe en %s", domain.ErrNotFound, serial, i.ProductInstanceID)
}

// stagedItemUpdate cambio validado pendiente de aplicar sobre un ítem.
// Separar validación de aplicación garantiza que un lote fallido no deje
// el agregado a medio mutar.
type stagedItemUpdate struct {
	item     *Item
	newQty   int
	newPrice *decimal.Decimal
	toAdd    []string
	removed  []string // en el orden del request, para eventos deterministas
	toRemove map[string]struct{}
}

// stageUpdate valida la actualización contra el estado actual del ítem y
// devuelve el cambio listo para aplicar.
func (i *Item) stageUpdate(in UpdateItemInput) (*stagedItemUpdate, error) {
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, fmt.Errorf("%w: cantidad negativa para %s", domain.ErrInvalidInput, i.ProductInstanceID)
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: precio unitario negativo para %s", domain.ErrInvalidInput, i.ProductInstanceID)
	}

	st := &stagedItemUpdate{item: i, newQty: i.Quantity, newPrice: in.UnitPrice}

	if !i.IsTracked {
		if len(in.SerialsToAdd) > 0 || len(in.SerialsToRemove) > 0 {
			return nil, fmt.Errorf("%w: seriales en producto no rastreado %s", domain.ErrInvalidInput, i.ProductInstanceID)
		}
		if in.Quantity != nil {
			st.newQty = *in.Quantity
		}
		return st, nil
	}

	st.toRemove = make(map[string]struct{}, len(in.SerialsToRemove))
	for _, sn := range in.SerialsToRemove {
		if !i.HasSerial(sn) {
			return nil, fmt.Errorf("%w: serial %s no existe en %s", domain.ErrNotFound, sn, i.ProductInstanceID)
		}
		if _, ok := st.toRemove[sn]; ok {
			return nil, fmt.Errorf("%w: serial %s repetido en bajas de %s", domain.ErrDuplicate, sn, i.ProductInstanceID)
		}
		st.toRemove[sn] = struct{}{}
		st.removed = append(st.removed, sn)
	}
	seenAdd := make(map[string]struct{}, len(in.SerialsToAdd))
	for _, sn := range in.SerialsToAdd {
		if sn == "" {
			return nil, fmt.Errorf("%w: serial vacío en %s", domain.ErrInvalidInput, i.ProductInstanceID)
		}
		if _, ok := seenAdd[sn]; ok {
			return nil, fmt.Errorf("%w: serial %s repetido en altas de %s", domain.ErrDuplicate, sn, i.ProductInstanceID)
		}
		seenAdd[sn] = struct{}{}
		if _, removed := st.toRemove[sn]; i.HasSerial(sn) && !removed {
			return nil, fmt.Errorf("%w: serial %s ya existe en %s", domain.ErrDuplicate, sn, i.ProductInstanceID)
		}
	}
	st.toAdd = in.SerialsToAdd

	st.newQty = i.Quantity + len(in.SerialsToAdd) - len(in.SerialsToRemove)
	if st.newQty < 0 {
		return nil, fmt.Errorf("%w: bajas superan las unidades de %s", domain.ErrInvalidInput, i.ProductInstanceID)
	}
	// La cantidad declarada debe coincidir exactamente con altas − bajas.
	if in.Quantity != nil && *in.Quantity != st.newQty {
		return nil, fmt.Errorf("%w: cantidad declarada %d no coincide con unidades resultantes %d en %s",
			domain.ErrInvalidInput, *in.Quantity, st.newQty, i.ProductInstanceID)
	}
	return st, nil
}

// apply aplica el cambio ya validado.
func (st *stagedItemUpdate) apply() {
	i := st.item
	if st.newPrice != nil {
		i.UnitPrice = *st.newPrice
	}
	if i.IsTracked {
		if len(st.toRemove) > 0 {
			kept := i.Units[:0]
			for _, u := range i.Units {
				if _, gone := st.toRemove[u.SerialNumber]; !gone {
					kept = append(kept, u)
				}
			}
			i.Units = kept
		}
		for _, sn := range st.toAdd {
			i.Units = append(i.Units, Unit{SerialNumber: sn, Status: UnitStatusAvailable})
		}
	}
	i.Quantity = st.newQty
}
