package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/stock"
)

var _ repository.StoredProductRepository = (*StoredProductRepo)(nil)

// StoredProductRepo implementación del libro de existencias sobre
// PostgreSQL (usable con pool o tx). La fila agregada vive en
// stored_product_instances; el historial de seriales en
// product_instance_items con orden de llegada explícito.
type StoredProductRepo struct {
	q Querier
}

// NewStoredProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoredProductRepository(q Querier) *StoredProductRepo {
	return &StoredProductRepo{q: q}
}

// Get obtiene la fila del libro para (bodega, producto); nil si no existe.
func (r *StoredProductRepo) Get(storageLocationID, productInstanceID string) (*stock.StoredProductInstance, error) {
	return r.get(storageLocationID, productInstanceID, false)
}

// GetForUpdate obtiene la fila bloqueándola para conciliación.
func (r *StoredProductRepo) GetForUpdate(storageLocationID, productInstanceID string) (*stock.StoredProductInstance, error) {
	return r.get(storageLocationID, productInstanceID, true)
}

func (r *StoredProductRepo) get(storageLocationID, productInstanceID string, forUpdate bool) (*stock.StoredProductInstance, error) {
	query := `
		SELECT storage_location_id, product_instance_id, quantity, is_tracked, shelf_life_days, updated_at
		FROM stored_product_instances
		WHERE storage_location_id = $1 AND product_instance_id = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var s stock.StoredProductInstance
	err := r.q.QueryRow(context.Background(), query, storageLocationID, productInstanceID).Scan(
		&s.StorageLocationID, &s.ProductInstanceID, &s.Quantity, &s.IsTracked, &s.ShelfLifeDays, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stored product: %w", err)
	}
	if err := r.loadItems(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert inserta o actualiza la fila agregada y reemplaza el historial de
// seriales. Se invoca dentro de la tx de conciliación.
func (r *StoredProductRepo) Upsert(s *stock.StoredProductInstance) error {
	ctx := context.Background()
	query := `
		INSERT INTO stored_product_instances (storage_location_id, product_instance_id, quantity, is_tracked, shelf_life_days, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (storage_location_id, product_instance_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, shelf_life_days = EXCLUDED.shelf_life_days, updated_at = EXCLUDED.updated_at`
	if _, err := r.q.Exec(ctx, query,
		s.StorageLocationID, s.ProductInstanceID, s.Quantity, s.IsTracked, s.ShelfLifeDays, s.UpdatedAt,
	); err != nil {
		return fmt.Errorf("upsert stored product: %w", err)
	}
	if _, err := r.q.Exec(ctx,
		`DELETE FROM product_instance_items WHERE storage_location_id = $1 AND product_instance_id = $2`,
		s.StorageLocationID, s.ProductInstanceID,
	); err != nil {
		return fmt.Errorf("delete stored product items: %w", err)
	}
	for i, item := range s.Items {
		itemQuery := `
			INSERT INTO product_instance_items (storage_location_id, product_instance_id, serial_number, status, expiration_date, position)
			VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := r.q.Exec(ctx, itemQuery,
			s.StorageLocationID, s.ProductInstanceID, item.SerialNumber, item.Status, item.ExpirationDate, i,
		); err != nil {
			return fmt.Errorf("insert stored product item: %w", err)
		}
	}
	return nil
}

// ListByLocation lista las filas del libro de una bodega con paginación.
func (r *StoredProductRepo) ListByLocation(storageLocationID string, limit, offset int) ([]*stock.StoredProductInstance, error) {
	query := `
		SELECT storage_location_id, product_instance_id, quantity, is_tracked, shelf_life_days, updated_at
		FROM stored_product_instances
		WHERE storage_location_id = $1
		ORDER BY product_instance_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storageLocationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stored products: %w", err)
	}
	defer rows.Close()
	var list []*stock.StoredProductInstance
	for rows.Next() {
		var s stock.StoredProductInstance
		if err := rows.Scan(&s.StorageLocationID, &s.ProductInstanceID, &s.Quantity, &s.IsTracked, &s.ShelfLifeDays, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stored product: %w", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range list {
		if err := r.loadItems(s); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *StoredProductRepo) loadItems(s *stock.StoredProductInstance) error {
	query := `
		SELECT serial_number, status, expiration_date
		FROM product_instance_items
		WHERE storage_location_id = $1 AND product_instance_id = $2
		ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, s.StorageLocationID, s.ProductInstanceID)
	if err != nil {
		return fmt.Errorf("load stored product items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item stock.ProductInstanceItem
		var expiration *time.Time
		if err := rows.Scan(&item.SerialNumber, &item.Status, &expiration); err != nil {
			return fmt.Errorf("scan stored product item: %w", err)
		}
		item.ExpirationDate = expiration
		s.Items = append(s.Items, item)
	}
	return rows.Err()
}
