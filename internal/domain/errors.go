package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrNITAlreadyExists      = errors.New("el NIT ya está registrado")
	ErrSerialAlreadyExists   = errors.New("ya existe un equipo con este serial")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInUse                 = errors.New("el recurso tiene registros asociados")
	ErrInvalidTechnician     = errors.New("técnico no válido")
	ErrCannotDeleteOwnUser   = errors.New("no puedes eliminar tu propia cuenta")
	ErrCompanyRequiredClient = errors.New("un usuario CLIENTE requiere empresa")
)
