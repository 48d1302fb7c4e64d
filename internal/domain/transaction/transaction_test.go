package transaction_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/transaction"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testLocationID = "00000000-0000-0000-0000-00000000000a"
	testSupplierID = "00000000-0000-0000-0000-00000000000b"
	testClientID   = "00000000-0000-0000-0000-00000000000c"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func simpleItems() []transaction.NewItemInput {
	return []transaction.NewItemInput{
		{ProductInstanceID: "sku-1", Quantity: 3, UnitPrice: dec("100")},
		{ProductInstanceID: "sku-2", Quantity: 2, UnitPrice: dec("50.50")},
	}
}

func trackedItem(qty int, serials ...string) transaction.NewItemInput {
	return transaction.NewItemInput{
		ProductInstanceID: "sku-serial",
		Quantity:          qty,
		UnitPrice:         dec("1000"),
		IsTracked:         true,
		SerialNumbers:     serials,
	}
}

// newDraftProcurement crea una compra DRAFT con dos líneas simples.
func newDraftProcurement(t *testing.T) *transaction.Transaction {
	t.Helper()
	tx, evt, err := transaction.NewProcurement(testLocationID, testSupplierID, nil, simpleItems(), nil)
	require.NoError(t, err)
	require.NotNil(t, evt)
	return tx
}

// ──────────────────────────────────────────────────────────────────────────────
// Construcción
// ──────────────────────────────────────────────────────────────────────────────

func TestNewProcurement_CalculaTotalYEventoPositivo(t *testing.T) {
	tx, evt, err := transaction.NewProcurement(testLocationID, testSupplierID, nil, simpleItems(), nil)
	require.NoError(t, err)

	assert.Equal(t, transaction.KindProcurement, tx.Kind)
	assert.Equal(t, transaction.StatusDraft, tx.Status)
	// 3*100 + 2*50.50 = 401
	assert.True(t, tx.TotalAmount.Equal(dec("401")),
		"TotalAmount debe ser la suma de los subtotales, fue %s", tx.TotalAmount)

	require.Len(t, evt.Entries, 2)
	assert.Equal(t, 3, evt.Entries[0].QuantityDelta, "comprar suma stock: delta positivo")
	assert.Equal(t, 2, evt.Entries[1].QuantityDelta)
	assert.Equal(t, testLocationID, evt.StorageLocationID)
	assert.Equal(t, tx.ID, evt.TransactionID)
}

func TestNewProcurement_SinProveedor_Falla(t *testing.T) {
	_, _, err := transaction.NewProcurement(testLocationID, "", nil, simpleItems(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewSale_EventoConDeltasNegativos(t *testing.T) {
	tx, evt, err := transaction.NewSale(testLocationID, testClientID, nil, simpleItems(), nil)
	require.NoError(t, err)

	assert.Equal(t, transaction.KindSale, tx.Kind)
	require.Len(t, evt.Entries, 2)
	assert.Equal(t, -3, evt.Entries[0].QuantityDelta, "vender retira stock: delta negativo")
	assert.Equal(t, -2, evt.Entries[1].QuantityDelta)
}

func TestNewSale_UnidadesSerializadasQuedanVendidas(t *testing.T) {
	items := []transaction.NewItemInput{trackedItem(2, "SN-1", "SN-2")}
	_, evt, err := transaction.NewSale(testLocationID, testClientID, nil, items, nil)
	require.NoError(t, err)

	require.Len(t, evt.Entries, 1)
	require.Len(t, evt.Entries[0].Units, 2)
	for _, u := range evt.Entries[0].Units {
		assert.Equal(t, transaction.UnitStatusSold, u.Status,
			"las unidades vendidas deben salir con estado SOLD")
	}
}

func TestNewAdjustment_NoManejasPagos(t *testing.T) {
	tx, _, err := transaction.NewAdjustment(testLocationID, nil, simpleItems())
	require.NoError(t, err)

	assert.False(t, tx.HasPayments())
	assert.True(t, tx.AmountLeftToPay().IsZero(), "un ajuste no tiene saldo pendiente")

	err = tx.AddPayments([]transaction.NewPaymentInput{{Amount: dec("10"), Method: "efectivo"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewItem_SerialesDebenCoincidirConCantidad(t *testing.T) {
	items := []transaction.NewItemInput{trackedItem(3, "SN-1", "SN-2")}
	_, _, err := transaction.NewProcurement(testLocationID, testSupplierID, nil, items, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewItem_SerialRepetido_Falla(t *testing.T) {
	items := []transaction.NewItemInput{trackedItem(2, "SN-1", "SN-1")}
	_, _, err := transaction.NewProcurement(testLocationID, testSupplierID, nil, items, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ítems: lotes y atomicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestAddItems_ProductoYaExistente_Falla(t *testing.T) {
	tx := newDraftProcurement(t)
	_, err := tx.AddItems([]transaction.NewItemInput{
		{ProductInstanceID: "sku-1", Quantity: 1, UnitPrice: dec("10")},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAddItems_LoteVacio_Falla(t *testing.T) {
	tx := newDraftProcurement(t)
	_, err := tx.AddItems(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddItems_LoteConEntradaMala_NoMutaNada(t *testing.T) {
	tx := newDraftProcurement(t)
	totalAntes := tx.TotalAmount
	itemsAntes := len(tx.Items)

	_, err := tx.AddItems([]transaction.NewItemInput{
		{ProductInstanceID: "sku-3", Quantity: 5, UnitPrice: dec("20")}, // válida
		{ProductInstanceID: "sku-4", Quantity: -1, UnitPrice: dec("20")}, // inválida
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Len(t, tx.Items, itemsAntes, "un lote fallido no debe agregar líneas")
	assert.True(t, tx.TotalAmount.Equal(totalAntes), "un lote fallido no debe tocar el total")
}

func TestUpdateItems_RecalculaTotal(t *testing.T) {
	tx := newDraftProcurement(t)
	nuevoPrecio := dec("200")
	evt, err := tx.UpdateItems([]transaction.UpdateItemInput{
		{ProductInstanceID: "sku-1", UnitPrice: &nuevoPrecio},
	})
	require.NoError(t, err)

	// 3*200 + 2*50.50 = 701
	assert.True(t, tx.TotalAmount.Equal(dec("701")), "el total debe recalcularse, fue %s", tx.TotalAmount)
	require.Len(t, evt.Entries, 1)
	assert.Equal(t, 0, evt.Entries[0].QuantityDelta, "cambiar precio no mueve stock")
}

func TestUpdateItems_ProductoInexistente_Falla(t *testing.T) {
	tx := newDraftProcurement(t)
	qty := 1
	_, err := tx.UpdateItems([]transaction.UpdateItemInput{
		{ProductInstanceID: "sku-fantasma", Quantity: &qty},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateItems_LoteConEntradaMala_NoMutaNada(t *testing.T) {
	tx := newDraftProcurement(t)
	qtyBuena, qtyMala := 10, -1
	_, err := tx.UpdateItems([]transaction.UpdateItemInput{
		{ProductInstanceID: "sku-1", Quantity: &qtyBuena},
		{ProductInstanceID: "sku-2", Quantity: &qtyMala},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 3, tx.Items[0].Quantity, "la primera línea no debe haberse tocado")
	assert.True(t, tx.TotalAmount.Equal(dec("401")))
}

func TestUpdateItems_AltasYBajasDeSeriales(t *testing.T) {
	items := []transaction.NewItemInput{trackedItem(2, "SN-1", "SN-2")}
	tx, _, err := transaction.NewProcurement(testLocationID, testSupplierID, nil, items, nil)
	require.NoError(t, err)

	evt, err := tx.UpdateItems([]transaction.UpdateItemInput{
		{ProductInstanceID: "sku-serial", SerialsToAdd: []string{"SN-3"}, SerialsToRemove: []string{"SN-1"}},
	})
	require.NoError(t, err)

	item := tx.Items[0]
	assert.Equal(t, 2, item.Quantity, "altas − bajas deja la cantidad igual")
	assert.False(t, item.HasSerial("SN-1"))
	assert.True(t, item.HasSerial("SN-3"))

	require.Len(t, evt.Entries, 1)
	require.Len(t, evt.Entries[0].Units, 2)
	assert.Equal(t, "SN-3", evt.Entries[0].Units[0].SerialNumber)
	assert.Equal(t, transaction.UnitStatusAvailable, evt.Entries[0].Units[0].Status)
	assert.Equal(t, "SN-1", evt.Entries[0].Units[1].SerialNumber)
	assert.Equal(t, transaction.UnitStatusRemoved, evt.Entries[0].Units[1].Status)
}

func TestUpdateItems_CantidadDeclaradaInconsistente_Falla(t *testing.T) {
	items := []transaction.NewItemInput{trackedItem(2, "SN-1", "SN-2")}
	tx, _, err := transaction.NewProcurement(testLocationID, testSupplierID, nil, items, nil)
	require.NoError(t, err)

	qty := 5 // real sería 3 (2 + 1 alta)
	_, err = tx.UpdateItems([]transaction.UpdateItemInput{
		{ProductInstanceID: "sku-serial", Quantity: &qty, SerialsToAdd: []string{"SN-3"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveItems_InvierteElSignoDelDelta(t *testing.T) {
	tx := newDraftProcurement(t)
	evt, err := tx.RemoveItems([]string{"sku-1"})
	require.NoError(t, err)

	require.Len(t, evt.Entries, 1)
	assert.Equal(t, -3, evt.Entries[0].QuantityDelta,
		"quitar una línea de compra devuelve el stock sembrado")
	assert.Len(t, tx.Items, 1)
	// queda solo 2*50.50 = 101
	assert.True(t, tx.TotalAmount.Equal(dec("101")))
}

func TestRemoveItems_EnVenta_RetornaUnidadesDisponibles(t *testing.T) {
	items := []transaction.NewItemInput{trackedItem(1, "SN-1")}
	tx, _, err := transaction.NewSale(testLocationID, testClientID, nil, items, nil)
	require.NoError(t, err)

	evt, err := tx.RemoveItems([]string{"sku-serial"})
	require.NoError(t, err)

	require.Len(t, evt.Entries, 1)
	assert.Equal(t, 1, evt.Entries[0].QuantityDelta, "deshacer una venta devuelve stock a la bodega")
	require.Len(t, evt.Entries[0].Units, 1)
	assert.Equal(t, transaction.UnitStatusAvailable, evt.Entries[0].Units[0].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestAddPayments_ActualizaSaldoPendiente(t *testing.T) {
	tx := newDraftProcurement(t)
	err := tx.AddPayments([]transaction.NewPaymentInput{
		{Amount: dec("300"), Method: "transferencia"},
		{Amount: dec("50"), Method: "efectivo"},
	})
	require.NoError(t, err)

	// 401 − 350 = 51
	assert.True(t, tx.AmountLeftToPay().Equal(dec("51")),
		"el saldo pendiente debe ser total − pagos, fue %s", tx.AmountLeftToPay())
}

func TestAmountLeftToPay_PuedeQuedarNegativo(t *testing.T) {
	tx := newDraftProcurement(t)
	require.NoError(t, tx.AddPayments([]transaction.NewPaymentInput{
		{Amount: dec("500"), Method: "transferencia"},
	}))

	_, err := tx.RemoveItems([]string{"sku-1"})
	require.NoError(t, err)

	// total 101, pagado 500 → saldo −399
	assert.True(t, tx.AmountLeftToPay().Equal(dec("-399")),
		"el saldo puede quedar negativo tras quitar líneas, fue %s", tx.AmountLeftToPay())
}

func TestAddPayments_LoteVacio_Falla(t *testing.T) {
	tx := newDraftProcurement(t)
	err := tx.AddPayments(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddPayments_MontoNegativo_NoMutaNada(t *testing.T) {
	tx := newDraftProcurement(t)
	err := tx.AddPayments([]transaction.NewPaymentInput{
		{Amount: dec("10"), Method: "efectivo"},
		{Amount: dec("-5"), Method: "efectivo"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, tx.Payments, "un lote de pagos fallido no debe registrar ninguno")
}

func TestUpdatePayments_IdDesconocido_Falla(t *testing.T) {
	tx := newDraftProcurement(t)
	monto := dec("20")
	err := tx.UpdatePayments([]transaction.UpdatePaymentInput{
		{ID: "pago-fantasma", Amount: &monto},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"actualizar un pago inexistente es error: el alta va por AddPayments")
}

func TestUpdatePayments_ModificaMontoYMetodo(t *testing.T) {
	tx := newDraftProcurement(t)
	require.NoError(t, tx.AddPayments([]transaction.NewPaymentInput{
		{Amount: dec("100"), Method: "efectivo"},
	}))

	nuevoMonto := dec("150")
	nuevoMetodo := "tarjeta"
	err := tx.UpdatePayments([]transaction.UpdatePaymentInput{
		{ID: tx.Payments[0].ID, Amount: &nuevoMonto, Method: &nuevoMetodo},
	})
	require.NoError(t, err)

	assert.True(t, tx.Payments[0].PayedAmount.Equal(dec("150")))
	assert.Equal(t, "tarjeta", tx.Payments[0].Method)
	assert.True(t, tx.AmountLeftToPay().Equal(dec("251")))
}

func TestRemovePayments_EliminaPorID(t *testing.T) {
	tx := newDraftProcurement(t)
	require.NoError(t, tx.AddPayments([]transaction.NewPaymentInput{
		{Amount: dec("100"), Method: "efectivo"},
		{Amount: dec("200"), Method: "transferencia"},
	}))

	require.NoError(t, tx.RemovePayments([]string{tx.Payments[0].ID}))
	require.Len(t, tx.Payments, 1)
	assert.True(t, tx.Payments[0].PayedAmount.Equal(dec("200")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkProcessed_BloqueaMutaciones(t *testing.T) {
	tx := newDraftProcurement(t)
	require.NoError(t, tx.MarkProcessed())
	assert.Equal(t, transaction.StatusProcessed, tx.Status)

	_, err := tx.AddItems([]transaction.NewItemInput{
		{ProductInstanceID: "sku-9", Quantity: 1, UnitPrice: dec("10")},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = tx.AddPayments([]transaction.NewPaymentInput{{Amount: dec("10"), Method: "efectivo"}})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReopen_SoloDesdeProcessed(t *testing.T) {
	tx := newDraftProcurement(t)
	assert.ErrorIs(t, tx.Reopen(), domain.ErrConflict, "un DRAFT no puede reabrirse")

	require.NoError(t, tx.MarkProcessed())
	require.NoError(t, tx.Reopen())
	assert.Equal(t, transaction.StatusDraft, tx.Status)

	// Tras reabrir vuelve a aceptar cambios.
	_, err := tx.AddItems([]transaction.NewItemInput{
		{ProductInstanceID: "sku-9", Quantity: 1, UnitPrice: dec("10")},
	})
	assert.NoError(t, err)
}

func TestCancel_EsTerminal(t *testing.T) {
	tx := newDraftProcurement(t)
	require.NoError(t, tx.Cancel())
	assert.Equal(t, transaction.StatusCanceled, tx.Status)

	assert.ErrorIs(t, tx.Cancel(), domain.ErrConflict, "cancelar dos veces es conflicto")
	assert.ErrorIs(t, tx.MarkProcessed(), domain.ErrConflict)
	assert.ErrorIs(t, tx.Reopen(), domain.ErrConflict)

	_, err := tx.RemoveItems([]string{"sku-1"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateSupplier_SoloEnCompras(t *testing.T) {
	venta, _, err := transaction.NewSale(testLocationID, testClientID, nil, simpleItems(), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, venta.UpdateSupplier("otro-proveedor"), domain.ErrInvalidInput)

	compra := newDraftProcurement(t)
	require.NoError(t, compra.UpdateSupplier("otro-proveedor"))
	assert.Equal(t, "otro-proveedor", compra.SupplierID)
}

func TestFechaExplicitaSeRespeta(t *testing.T) {
	fecha := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	tx, _, err := transaction.NewProcurement(testLocationID, testSupplierID, &fecha, simpleItems(), nil)
	require.NoError(t, err)
	assert.True(t, tx.Date.Equal(fecha))
}
