package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ProductInstanceRepository = (*ProductInstanceRepo)(nil)

// ProductInstanceRepo implementación de ProductInstanceRepository sobre PostgreSQL.
type ProductInstanceRepo struct {
	q Querier
}

// NewProductInstanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductInstanceRepository(q Querier) *ProductInstanceRepo {
	return &ProductInstanceRepo{q: q}
}

const productInstanceColumns = `id, product_id, sku, attributes, sale_price, purchase_price, is_tracked, is_warranted, shelf_life_days, created_at, updated_at`

// Create persiste un nuevo SKU. El código SKU debe ser único.
func (r *ProductInstanceRepo) Create(instance *entity.ProductInstance) error {
	query := `
		INSERT INTO product_instances (` + productInstanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		instance.ID, instance.ProductID, instance.SKU, instance.Attributes,
		instance.SalePrice, instance.PurchasePrice, instance.IsTracked,
		instance.IsWarranted, instance.ShelfLifeDays, instance.CreatedAt, instance.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: SKU %s", domain.ErrDuplicate, instance.SKU)
		}
		return fmt.Errorf("insert product instance: %w", err)
	}
	return nil
}

// GetByID obtiene un SKU por ID.
func (r *ProductInstanceRepo) GetByID(id string) (*entity.ProductInstance, error) {
	query := `SELECT ` + productInstanceColumns + ` FROM product_instances WHERE id = $1`
	i, err := scanProductInstance(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product instance: %w", err)
	}
	return i, nil
}

// GetBySKU obtiene un SKU por su código.
func (r *ProductInstanceRepo) GetBySKU(sku string) (*entity.ProductInstance, error) {
	query := `SELECT ` + productInstanceColumns + ` FROM product_instances WHERE sku = $1`
	i, err := scanProductInstance(r.q.QueryRow(context.Background(), query, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product instance by sku: %w", err)
	}
	return i, nil
}

// GetByIDs devuelve las instancias pedidas indexadas por id.
func (r *ProductInstanceRepo) GetByIDs(ids []string) (map[string]*entity.ProductInstance, error) {
	result := make(map[string]*entity.ProductInstance, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := `SELECT ` + productInstanceColumns + ` FROM product_instances WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("get product instances: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		i, err := scanProductInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product instance: %w", err)
		}
		result[i.ID] = i
	}
	return result, rows.Err()
}

// Update actualiza un SKU existente. SKU e is_tracked son inmutables.
func (r *ProductInstanceRepo) Update(instance *entity.ProductInstance) error {
	query := `
		UPDATE product_instances
		SET attributes = $2, sale_price = $3, purchase_price = $4, is_warranted = $5, shelf_life_days = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		instance.ID, instance.Attributes, instance.SalePrice, instance.PurchasePrice,
		instance.IsWarranted, instance.ShelfLifeDays, instance.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product instance: %w", err)
	}
	return nil
}

// ListByProduct lista los SKU de un producto con paginación.
func (r *ProductInstanceRepo) ListByProduct(productID string, limit, offset int) ([]*entity.ProductInstance, error) {
	query := `SELECT ` + productInstanceColumns + ` FROM product_instances WHERE product_id = $1 ORDER BY sku LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list product instances: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductInstance
	for rows.Next() {
		i, err := scanProductInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product instance: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// Delete elimina un SKU por ID.
func (r *ProductInstanceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_instances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product instance: %w", err)
	}
	return nil
}

func scanProductInstance(row pgx.Row) (*entity.ProductInstance, error) {
	var i entity.ProductInstance
	if err := row.Scan(
		&i.ID, &i.ProductID, &i.SKU, &i.Attributes, &i.SalePrice, &i.PurchasePrice,
		&i.IsTracked, &i.IsWarranted, &i.ShelfLifeDays, &i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &i, nil
}
