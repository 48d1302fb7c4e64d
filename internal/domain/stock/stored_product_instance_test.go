package stock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/stock"
)

const (
	testLocationID = "00000000-0000-0000-0000-00000000000a"
	testInstanceID = "00000000-0000-0000-0000-00000000000f"
)

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func TestCreate_ProductoSimple(t *testing.T) {
	s, err := stock.Create(testLocationID, stock.ProductInput{
		ProductInstanceID: testInstanceID,
		Quantity:          10,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, s.Quantity)
	assert.Empty(t, s.Items)
}

func TestCreate_RastreadoExigeSerialesCompletos(t *testing.T) {
	_, err := stock.Create(testLocationID, stock.ProductInput{
		ProductInstanceID: testInstanceID,
		Quantity:          2,
		IsTracked:         true,
		Items:             []stock.UnitChange{{SerialNumber: "SN-1"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_AcumulaDeltasFirmados(t *testing.T) {
	s := stock.New(testLocationID, testInstanceID, false, nil)
	require.NoError(t, s.Apply(5, nil, nil))
	require.NoError(t, s.Apply(-3, nil, nil))
	assert.Equal(t, 2, s.Quantity)

	// El libro no protege contra sobreventa: el control es del caso de uso.
	require.NoError(t, s.Apply(-10, nil, nil))
	assert.Equal(t, -8, s.Quantity)
}

func TestApply_SerialRepetidoEnLote_Falla(t *testing.T) {
	s := stock.New(testLocationID, testInstanceID, true, nil)
	err := s.Apply(2, nil, []stock.UnitChange{
		{SerialNumber: "SN-1"},
		{SerialNumber: "SN-1"},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Empty(t, s.Items, "un lote fallido no debe registrar unidades")
	assert.Equal(t, 0, s.Quantity)
}

func TestApply_BajasCambianEstadoSinBorrar(t *testing.T) {
	s := stock.New(testLocationID, testInstanceID, true, nil)
	require.NoError(t, s.Apply(2, nil, []stock.UnitChange{
		{SerialNumber: "SN-1"},
		{SerialNumber: "SN-2"},
	}))
	require.Len(t, s.Items, 2)
	assert.Equal(t, stock.ItemStatusAvailable, s.Items[0].Status,
		"sin estado explícito las unidades entran como AVAILABLE")

	// La venta de SN-1 cambia el estado en sitio; el log conserva la fila.
	require.NoError(t, s.Apply(-1, nil, []stock.UnitChange{
		{SerialNumber: "SN-1", Status: stock.ItemStatusSold},
	}))
	require.Len(t, s.Items, 2, "el listado de unidades es un log acumulativo")
	assert.Equal(t, stock.ItemStatusSold, s.Items[0].Status)
	assert.Equal(t, 1, s.Quantity)

	disponibles := s.AvailableUnits()
	require.Len(t, disponibles, 1)
	assert.Equal(t, "SN-2", disponibles[0].SerialNumber)
}

func TestApply_VencimientoSuperaVidaUtil_Falla(t *testing.T) {
	s := stock.New(testLocationID, testInstanceID, true, intPtr(30))
	lejos := time.Now().UTC().AddDate(0, 0, 60)
	err := s.Apply(1, nil, []stock.UnitChange{
		{SerialNumber: "SN-1", ExpirationDate: timePtr(lejos)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"el vencimiento no puede superar hoy + vida útil")
}

func TestApply_VencimientoFaltanteSeRellenaConElTecho(t *testing.T) {
	s := stock.New(testLocationID, testInstanceID, true, intPtr(30))
	require.NoError(t, s.Apply(1, nil, []stock.UnitChange{{SerialNumber: "SN-1"}}))

	require.Len(t, s.Items, 1)
	require.NotNil(t, s.Items[0].ExpirationDate, "sin fecha explícita se asume el techo de vida útil")

	esperado := time.Now().UTC().AddDate(0, 0, 30)
	diff := esperado.Sub(*s.Items[0].ExpirationDate)
	assert.LessOrEqual(t, diff.Abs(), time.Minute)
}

func TestApply_VencimientoDentroDelTecho_SeConserva(t *testing.T) {
	s := stock.New(testLocationID, testInstanceID, true, intPtr(90))
	pronto := time.Now().UTC().AddDate(0, 0, 10)
	require.NoError(t, s.Apply(1, nil, []stock.UnitChange{
		{SerialNumber: "SN-1", ExpirationDate: timePtr(pronto)},
	}))
	require.NotNil(t, s.Items[0].ExpirationDate)
	assert.True(t, s.Items[0].ExpirationDate.Equal(pronto))
}

func TestApply_ActualizaVidaUtil(t *testing.T) {
	s := stock.New(testLocationID, testInstanceID, false, nil)
	require.NoError(t, s.Apply(1, intPtr(45), nil))
	require.NotNil(t, s.ShelfLifeDays)
	assert.Equal(t, 45, *s.ShelfLifeDays)
}

func TestHasSerial(t *testing.T) {
	s := stock.New(testLocationID, testInstanceID, true, nil)
	require.NoError(t, s.Apply(1, nil, []stock.UnitChange{{SerialNumber: "SN-1"}}))
	assert.True(t, s.HasSerial("SN-1"))
	assert.False(t, s.HasSerial("SN-2"))
}
