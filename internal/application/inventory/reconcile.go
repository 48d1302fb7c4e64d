package inventory

import (
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/stock"
	"github.com/jhoicas/Almacen-api/internal/domain/transaction"
)

// reconcile aplica un evento de stock al libro de existencias, fila por
// fila y con bloqueo (SELECT FOR UPDATE). Se invoca dentro de la misma
// transacción de BD que persiste el agregado: si la conciliación falla,
// la mutación completa se revierte y el evento nunca tuvo efecto.
func reconcile(stockRepo repository.StoredProductRepository, evt *transaction.ProductsQuantityChangedEvent) error {
	if evt == nil || len(evt.Entries) == 0 {
		return nil
	}
	for _, entry := range evt.Entries {
		row, err := stockRepo.GetForUpdate(evt.StorageLocationID, entry.ProductInstanceID)
		if err != nil {
			return err
		}
		if row == nil {
			row = stock.New(evt.StorageLocationID, entry.ProductInstanceID, entry.IsTracked, entry.ShelfLifeDays)
		}
		if err := row.Apply(entry.QuantityDelta, entry.ShelfLifeDays, toStockUnits(entry.Units)); err != nil {
			return err
		}
		if err := stockRepo.Upsert(row); err != nil {
			return err
		}
	}
	return nil
}

func toStockUnits(units []transaction.UnitChange) []stock.UnitChange {
	if len(units) == 0 {
		return nil
	}
	out := make([]stock.UnitChange, 0, len(units))
	for _, u := range units {
		out = append(out, stock.UnitChange{
			SerialNumber:   u.SerialNumber,
			Status:         string(u.Status),
			ExpirationDate: u.ExpirationDate,
		})
	}
	return out
}
