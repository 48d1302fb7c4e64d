package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/stock"
	"github.com/jhoicas/Almacen-api/internal/domain/transaction"
)

// fakeStockRepo libro de existencias en memoria para tests de conciliación.
type fakeStockRepo struct {
	rows map[string]*stock.StoredProductInstance
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: make(map[string]*stock.StoredProductInstance)}
}

func (f *fakeStockRepo) key(locationID, instanceID string) string {
	return locationID + "/" + instanceID
}

func (f *fakeStockRepo) Get(locationID, instanceID string) (*stock.StoredProductInstance, error) {
	return f.rows[f.key(locationID, instanceID)], nil
}

func (f *fakeStockRepo) GetForUpdate(locationID, instanceID string) (*stock.StoredProductInstance, error) {
	return f.rows[f.key(locationID, instanceID)], nil
}

func (f *fakeStockRepo) Upsert(s *stock.StoredProductInstance) error {
	f.rows[f.key(s.StorageLocationID, s.ProductInstanceID)] = s
	return nil
}

func (f *fakeStockRepo) ListByLocation(locationID string, limit, offset int) ([]*stock.StoredProductInstance, error) {
	var out []*stock.StoredProductInstance
	for _, s := range f.rows {
		if s.StorageLocationID == locationID {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestReconcile_SiembraFilaNueva(t *testing.T) {
	repo := newFakeStockRepo()
	evt := &transaction.ProductsQuantityChangedEvent{
		TransactionID:     "tx-1",
		StorageLocationID: "loc-1",
		Kind:              transaction.KindProcurement,
		Entries: []transaction.ProductEntry{
			{ProductInstanceID: "sku-1", QuantityDelta: 5},
		},
	}

	require.NoError(t, reconcile(repo, evt))

	row, _ := repo.Get("loc-1", "sku-1")
	require.NotNil(t, row, "la primera compra debe crear la fila del libro")
	assert.Equal(t, 5, row.Quantity)
}

func TestReconcile_AcumulaSobreFilaExistente(t *testing.T) {
	repo := newFakeStockRepo()
	existente := stock.New("loc-1", "sku-1", false, nil)
	existente.Quantity = 10
	require.NoError(t, repo.Upsert(existente))

	evt := &transaction.ProductsQuantityChangedEvent{
		StorageLocationID: "loc-1",
		Kind:              transaction.KindSale,
		Entries: []transaction.ProductEntry{
			{ProductInstanceID: "sku-1", QuantityDelta: -4},
		},
	}
	require.NoError(t, reconcile(repo, evt))

	row, _ := repo.Get("loc-1", "sku-1")
	assert.Equal(t, 6, row.Quantity)
}

func TestReconcile_RegistraUnidadesSerializadas(t *testing.T) {
	repo := newFakeStockRepo()
	evt := &transaction.ProductsQuantityChangedEvent{
		StorageLocationID: "loc-1",
		Kind:              transaction.KindProcurement,
		Entries: []transaction.ProductEntry{
			{
				ProductInstanceID: "sku-tv",
				QuantityDelta:     2,
				IsTracked:         true,
				Units: []transaction.UnitChange{
					{SerialNumber: "SN-1", Status: transaction.UnitStatusAvailable},
					{SerialNumber: "SN-2", Status: transaction.UnitStatusAvailable},
				},
			},
		},
	}
	require.NoError(t, reconcile(repo, evt))

	row, _ := repo.Get("loc-1", "sku-tv")
	require.NotNil(t, row)
	assert.True(t, row.IsTracked)
	require.Len(t, row.Items, 2)
	assert.Equal(t, stock.ItemStatusAvailable, row.Items[0].Status)
}

func TestReconcile_VentaCambiaEstadoDeUnidad(t *testing.T) {
	repo := newFakeStockRepo()
	sembrado := stock.New("loc-1", "sku-tv", true, nil)
	require.NoError(t, sembrado.Apply(1, nil, []stock.UnitChange{{SerialNumber: "SN-1"}}))
	require.NoError(t, repo.Upsert(sembrado))

	evt := &transaction.ProductsQuantityChangedEvent{
		StorageLocationID: "loc-1",
		Kind:              transaction.KindSale,
		Entries: []transaction.ProductEntry{
			{
				ProductInstanceID: "sku-tv",
				QuantityDelta:     -1,
				IsTracked:         true,
				Units: []transaction.UnitChange{
					{SerialNumber: "SN-1", Status: transaction.UnitStatusSold},
				},
			},
		},
	}
	require.NoError(t, reconcile(repo, evt))

	row, _ := repo.Get("loc-1", "sku-tv")
	assert.Equal(t, 0, row.Quantity)
	require.Len(t, row.Items, 1, "la unidad vendida no desaparece del log")
	assert.Equal(t, stock.ItemStatusSold, row.Items[0].Status)
}

func TestReconcile_EventoNilEsNoOp(t *testing.T) {
	repo := newFakeStockRepo()
	require.NoError(t, reconcile(repo, nil))
	assert.Empty(t, repo.rows)
}

func TestReconcile_LoteInvalidoPropagaError(t *testing.T) {
	repo := newFakeStockRepo()
	evt := &transaction.ProductsQuantityChangedEvent{
		StorageLocationID: "loc-1",
		Entries: []transaction.ProductEntry{
			{
				ProductInstanceID: "sku-tv",
				QuantityDelta:     2,
				IsTracked:         true,
				Units: []transaction.UnitChange{
					{SerialNumber: "SN-1"},
					{SerialNumber: "SN-1"},
				},
			},
		},
	}
	err := reconcile(repo, evt)
	assert.ErrorIs(t, err, domain.ErrDuplicate,
		"la conciliación debe propagar el error para que la tx de BD se revierta")
}
