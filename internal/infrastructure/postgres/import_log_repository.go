package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.ImportLogRepository = (*ImportLogRepo)(nil)

// ImportLogRepo implementación de ImportLogRepository sobre PostgreSQL.
type ImportLogRepo struct {
	q Querier
}

// NewImportLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewImportLogRepository(q Querier) *ImportLogRepo {
	return &ImportLogRepo{q: q}
}

// Create registra una huella de importación. La huella es la PK: dos
// importaciones concurrentes del mismo XML chocan aquí y una de las dos
// transacciones de BD se revierte.
func (r *ImportLogRepo) Create(log *repository.ImportLog) error {
	query := `
		INSERT INTO import_logs (fingerprint, transaction_id, imported_at)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, log.Fingerprint, log.TransactionID, log.ImportedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: factura ya importada", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert import log: %w", err)
	}
	return nil
}

// GetByFingerprint obtiene un registro de importación; nil si no existe.
func (r *ImportLogRepo) GetByFingerprint(fingerprint string) (*repository.ImportLog, error) {
	query := `
		SELECT fingerprint, transaction_id, imported_at
		FROM import_logs WHERE fingerprint = $1`
	var log repository.ImportLog
	err := r.q.QueryRow(context.Background(), query, fingerprint).Scan(
		&log.Fingerprint, &log.TransactionID, &log.ImportedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get import log: %w", err)
	}
	return &log, nil
}
