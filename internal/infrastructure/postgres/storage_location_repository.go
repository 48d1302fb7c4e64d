package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StorageLocationRepository = (*StorageLocationRepo)(nil)

// StorageLocationRepo implementación de StorageLocationRepository sobre PostgreSQL.
type StorageLocationRepo struct {
	q Querier
}

// NewStorageLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStorageLocationRepository(q Querier) *StorageLocationRepo {
	return &StorageLocationRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *StorageLocationRepo) Create(location *entity.StorageLocation) error {
	query := `
		INSERT INTO storage_locations (id, branch_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.BranchID, location.Name, location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert storage location: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID.
func (r *StorageLocationRepo) GetByID(id string) (*entity.StorageLocation, error) {
	query := `
		SELECT id, branch_id, name, created_at, updated_at
		FROM storage_locations WHERE id = $1`
	var l entity.StorageLocation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.BranchID, &l.Name, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage location: %w", err)
	}
	return &l, nil
}

// Update actualiza una bodega existente.
func (r *StorageLocationRepo) Update(location *entity.StorageLocation) error {
	query := `
		UPDATE storage_locations SET name = $2, updated_at = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Name, location.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update storage location: %w", err)
	}
	return nil
}

// ListByBranch lista las bodegas de una sucursal con paginación.
func (r *StorageLocationRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.StorageLocation, error) {
	query := `
		SELECT id, branch_id, name, created_at, updated_at
		FROM storage_locations WHERE branch_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list storage locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageLocation
	for rows.Next() {
		var l entity.StorageLocation
		if err := rows.Scan(&l.ID, &l.BranchID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete elimina una bodega por ID.
func (r *StorageLocationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM storage_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete storage location: %w", err)
	}
	return nil
}
