package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los handlers HTTP los traducen
// a códigos de estado; los tests afirman sobre el tipo, no solo sobre éxito/fracaso.
var (
	ErrUnauthenticated     = errors.New("credencial ausente, inválida o expirada")
	ErrForbidden           = errors.New("acceso denegado")
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidTransition   = errors.New("transición de estado inválida")
	ErrUpstreamUnavailable = errors.New("servicio externo no disponible")
)
