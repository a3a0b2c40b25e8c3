package domain

import "errors"

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
	ErrPackageInUse       = errors.New("el paquete está asignado a una o más empresas")
)

// Errores de negocio que bloquean la creación de eventos.
// El orden de evaluación está fijado en entity.Company.CheckEventAllowed.
var (
	ErrCompanyInactive = errors.New("la empresa no está activa")
	ErrNoPackage       = errors.New("la empresa no tiene un paquete activo")
	ErrQuotaExhausted  = errors.New("se alcanzó el límite de eventos del paquete actual")
	ErrPackageExpired  = errors.New("el paquete ha expirado")
)
