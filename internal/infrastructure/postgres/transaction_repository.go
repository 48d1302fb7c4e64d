package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/internal/domain/transaction"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del agregado de transacciones sobre
// PostgreSQL (usable con pool o tx). La cabecera vive en transactions;
// las líneas, unidades y pagos en tablas hijas con orden explícito.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste el agregado completo.
func (r *TransactionRepo) Create(t *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (id, kind, storage_location_id, supplier_id, client_id, date, status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, string(t.Kind), t.StorageLocationID, nullIfEmpty(t.SupplierID), nullIfEmpty(t.ClientID),
		t.Date, string(t.Status), t.TotalAmount, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transacción %s", domain.ErrDuplicate, t.ID)
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return r.insertChildren(t)
}

// GetByID carga el agregado completo; nil si no existe.
func (r *TransactionRepo) GetByID(id string) (*transaction.Transaction, error) {
	return r.get(id, false)
}

// GetForUpdate carga el agregado bloqueando la cabecera (SELECT FOR UPDATE).
func (r *TransactionRepo) GetForUpdate(id string) (*transaction.Transaction, error) {
	return r.get(id, true)
}

func (r *TransactionRepo) get(id string, forUpdate bool) (*transaction.Transaction, error) {
	query := `
		SELECT id, kind, storage_location_id, supplier_id, client_id, date, status, total_amount, created_at, updated_at
		FROM transactions WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	t, err := r.scanHeader(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if err := r.loadChildren(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Save reescribe el agregado: actualiza la cabecera y reemplaza las
// colecciones hijas. Dentro de una tx de BD el reemplazo es atómico.
func (r *TransactionRepo) Save(t *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET supplier_id = $2, client_id = $3, date = $4, status = $5, total_amount = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		t.ID, nullIfEmpty(t.SupplierID), nullIfEmpty(t.ClientID), t.Date,
		string(t.Status), t.TotalAmount, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: transacción %s", domain.ErrNotFound, t.ID)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM transaction_items WHERE transaction_id = $1`, t.ID); err != nil {
		return fmt.Errorf("delete transaction items: %w", err)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM transaction_payments WHERE transaction_id = $1`, t.ID); err != nil {
		return fmt.Errorf("delete transaction payments: %w", err)
	}
	return r.insertChildren(t)
}

// List lista transacciones con filtros opcionales y paginación.
func (r *TransactionRepo) List(kind *transaction.Kind, storageLocationID string, from, to *time.Time, limit, offset int) ([]*transaction.Transaction, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if kind != nil {
		conditions = append(conditions, "kind = "+arg(string(*kind)))
	}
	if storageLocationID != "" {
		conditions = append(conditions, "storage_location_id = "+arg(storageLocationID))
	}
	if from != nil {
		conditions = append(conditions, "date >= "+arg(*from))
	}
	if to != nil {
		conditions = append(conditions, "date <= "+arg(*to))
	}

	query := `
		SELECT id, kind, storage_location_id, supplier_id, client_id, date, status, total_amount, created_at, updated_at
		FROM transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*transaction.Transaction
	for rows.Next() {
		t, err := r.scanHeader(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		if err := r.loadChildren(t); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *TransactionRepo) scanHeader(row pgx.Row) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var kind, status string
	var supplierID, clientID *string
	if err := row.Scan(
		&t.ID, &kind, &t.StorageLocationID, &supplierID, &clientID,
		&t.Date, &status, &t.TotalAmount, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t.Kind = transaction.Kind(kind)
	t.Status = transaction.Status(status)
	if supplierID != nil {
		t.SupplierID = *supplierID
	}
	if clientID != nil {
		t.ClientID = *clientID
	}
	return &t, nil
}

func (r *TransactionRepo) insertChildren(t *transaction.Transaction) error {
	ctx := context.Background()
	for i, item := range t.Items {
		query := `
			INSERT INTO transaction_items (transaction_id, product_instance_id, quantity, unit_price, is_tracked, shelf_life_days, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := r.q.Exec(ctx, query,
			t.ID, item.ProductInstanceID, item.Quantity, item.UnitPrice,
			item.IsTracked, item.ShelfLifeDays, i,
		); err != nil {
			return fmt.Errorf("insert transaction item: %w", err)
		}
		for j, unit := range item.Units {
			unitQuery := `
				INSERT INTO transaction_item_units (transaction_id, product_instance_id, serial_number, status, expiration_date, position)
				VALUES ($1, $2, $3, $4, $5, $6)`
			if _, err := r.q.Exec(ctx, unitQuery,
				t.ID, item.ProductInstanceID, unit.SerialNumber, string(unit.Status), unit.ExpirationDate, j,
			); err != nil {
				return fmt.Errorf("insert transaction item unit: %w", err)
			}
		}
	}
	for i, p := range t.Payments {
		query := `
			INSERT INTO transaction_payments (id, transaction_id, payed_amount, payment_date, method, position)
			VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := r.q.Exec(ctx, query,
			p.ID, t.ID, p.PayedAmount, p.PaymentDate, p.Method, i,
		); err != nil {
			return fmt.Errorf("insert transaction payment: %w", err)
		}
	}
	return nil
}

func (r *TransactionRepo) loadChildren(t *transaction.Transaction) error {
	ctx := context.Background()

	itemQuery := `
		SELECT product_instance_id, quantity, unit_price, is_tracked, shelf_life_days
		FROM transaction_items WHERE transaction_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, itemQuery, t.ID)
	if err != nil {
		return fmt.Errorf("load transaction items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item transaction.Item
		if err := rows.Scan(&item.ProductInstanceID, &item.Quantity, &item.UnitPrice, &item.IsTracked, &item.ShelfLifeDays); err != nil {
			return fmt.Errorf("scan transaction item: %w", err)
		}
		t.Items = append(t.Items, &item)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	unitQuery := `
		SELECT product_instance_id, serial_number, status, expiration_date
		FROM transaction_item_units WHERE transaction_id = $1 ORDER BY product_instance_id, position`
	unitRows, err := r.q.Query(ctx, unitQuery, t.ID)
	if err != nil {
		return fmt.Errorf("load transaction item units: %w", err)
	}
	defer unitRows.Close()
	byInstance := make(map[string]*transaction.Item, len(t.Items))
	for _, item := range t.Items {
		byInstance[item.ProductInstanceID] = item
	}
	for unitRows.Next() {
		var instanceID, serial, status string
		var expiration *time.Time
		if err := unitRows.Scan(&instanceID, &serial, &status, &expiration); err != nil {
			return fmt.Errorf("scan transaction item unit: %w", err)
		}
		if item, ok := byInstance[instanceID]; ok {
			item.Units = append(item.Units, transaction.Unit{
				SerialNumber:   serial,
				Status:         transaction.UnitStatus(status),
				ExpirationDate: expiration,
			})
		}
	}
	if err := unitRows.Err(); err != nil {
		return err
	}
	unitRows.Close()

	paymentQuery := `
		SELECT id, payed_amount, payment_date, method
		FROM transaction_payments WHERE transaction_id = $1 ORDER BY position`
	payRows, err := r.q.Query(ctx, paymentQuery, t.ID)
	if err != nil {
		return fmt.Errorf("load transaction payments: %w", err)
	}
	defer payRows.Close()
	for payRows.Next() {
		var p transaction.Payment
		if err := payRows.Scan(&p.ID, &p.PayedAmount, &p.PaymentDate, &p.Method); err != nil {
			return fmt.Errorf("scan transaction payment: %w", err)
		}
		t.Payments = append(t.Payments, &p)
	}
	return payRows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
