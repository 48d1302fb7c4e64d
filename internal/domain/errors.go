package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Las operaciones del agregado de transacciones devuelven estos centinelas
// envueltos con contexto (fmt.Errorf + %w); nunca panics para fallas esperadas.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)
