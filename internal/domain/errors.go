package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrConflict        = errors.New("conflicto con un recurso existente")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrBusinessRule    = errors.New("regla de negocio violada")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrInvalidPassword = errors.New("contraseña inválida")
)
