package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Importación de catálogo: fallos estructurales que abortan la operación completa.
	ErrUnsupportedFormat = errors.New("formato de archivo no soportado")
	ErrMalformedInput    = errors.New("contenido mal formado")

	// ErrBudgetAlreadyExists se devuelve al llamar Set sobre una empresa que ya tiene presupuesto (usar Update).
	ErrBudgetAlreadyExists = fmt.Errorf("%w: la empresa ya tiene un presupuesto", ErrConflict)
)
