package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePackageRequest entrada para crear un paquete del catálogo.
// Price se valida en el caso de uso (no negativo).
type CreatePackageRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description" validate:"max=2000"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"duration_days" validate:"required,min=1,max=36500"`
	EventLimit   int             `json:"event_limit" validate:"required,min=1,max=2147483647"`
}

// UpdatePackageRequest entrada para actualizar un paquete (campos opcionales).
type UpdatePackageRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description" validate:"omitempty,max=2000"`
	Price        *decimal.Decimal `json:"price"`
	DurationDays *int             `json:"duration_days" validate:"omitempty,min=1,max=36500"`
	EventLimit   *int             `json:"event_limit" validate:"omitempty,min=1,max=2147483647"`
	IsActive     *bool            `json:"is_active"`
}

// PackageResponse salida de un paquete.
type PackageResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"duration_days"`
	EventLimit   int             `json:"event_limit"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// PackageListResponse lista de paquetes.
type PackageListResponse struct {
	Items []PackageResponse `json:"items"`
}
