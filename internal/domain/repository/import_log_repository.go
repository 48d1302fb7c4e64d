package repository

import "time"

// ImportLog registro de una factura XML de proveedor ya importada,
// identificada por la huella canónica del documento.
type ImportLog struct {
	Fingerprint   string
	TransactionID string
	ImportedAt    time.Time
}

// ImportLogRepository define el puerto para la idempotencia de las
// importaciones XML: la misma factura no debe crear dos compras.
type ImportLogRepository interface {
	Create(log *ImportLog) error
	GetByFingerprint(fingerprint string) (*ImportLog, error)
}
