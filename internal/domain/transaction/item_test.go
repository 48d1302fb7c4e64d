package transaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/transaction"
)

func TestItem_TotalPrice(t *testing.T) {
	tx := newDraftProcurement(t)
	// sku-1: 3 * 100
	assert.True(t, tx.Items[0].TotalPrice().Equal(dec("300")))
}

func TestItem_AddUnit_SerialDuplicado_Falla(t *testing.T) {
	items := []transaction.NewItemInput{trackedItem(1, "SN-1")}
	tx, _, err := transaction.NewProcurement(testLocationID, testSupplierID, nil, items, nil)
	require.NoError(t, err)

	item := tx.Items[0]
	assert.ErrorIs(t, item.AddUnit("SN-1"), domain.ErrDuplicate)
	assert.ErrorIs(t, item.AddUnit(""), domain.ErrInvalidInput)

	require.NoError(t, item.AddUnit("SN-2"))
	assert.True(t, item.HasSerial("SN-2"))
	// AddUnit no ajusta Quantity: eso es responsabilidad de UpdateItems.
	assert.Equal(t, 1, item.Quantity)
}

func TestItem_RemoveUnit(t *testing.T) {
	items := []transaction.NewItemInput{trackedItem(2, "SN-1", "SN-2")}
	tx, _, err := transaction.NewProcurement(testLocationID, testSupplierID, nil, items, nil)
	require.NoError(t, err)

	item := tx.Items[0]
	require.NoError(t, item.RemoveUnit("SN-1"))
	assert.False(t, item.HasSerial("SN-1"))
	assert.ErrorIs(t, item.RemoveUnit("SN-1"), domain.ErrNotFound)
}

func TestRemoveItems_RastreadoEmiteSerialesRetirados(t *testing.T) {
	items := []transaction.NewItemInput{trackedItem(2, "SN-A", "SN-B")}
	tx, _, err := transaction.NewProcurement(testLocationID, testSupplierID, nil, items, nil)
	require.NoError(t, err)

	evt, err := tx.RemoveItems([]string{"sku-serial"})
	require.NoError(t, err)

	require.Len(t, evt.Entries, 1)
	assert.Equal(t, -2, evt.Entries[0].QuantityDelta)
	require.Len(t, evt.Entries[0].Units, 2)
	assert.Equal(t, "SN-A", evt.Entries[0].Units[0].SerialNumber)
	assert.Equal(t, transaction.UnitStatusRemoved, evt.Entries[0].Units[0].Status)
	assert.Equal(t, "SN-B", evt.Entries[0].Units[1].SerialNumber)
	assert.Equal(t, transaction.UnitStatusRemoved, evt.Entries[0].Units[1].Status)
	assert.Empty(t, tx.Items)
	assert.True(t, tx.TotalAmount.IsZero())
}

func TestItem_SerialesEnProductoNoRastreado_Falla(t *testing.T) {
	_, _, err := transaction.NewProcurement(testLocationID, testSupplierID, nil,
		[]transaction.NewItemInput{{
			ProductInstanceID: "sku-simple",
			Quantity:          1,
			UnitPrice:         dec("10"),
			SerialNumbers:     []string{"SN-1"},
		}}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
