package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Límites de los campos numéricos, alineados con las columnas INTEGER y NUMERIC(14,2).
const (
	MaxDurationDays = 36500
	MaxCount        = math.MaxInt32
)

// MaxPrice es el mayor precio representable.
var MaxPrice = decimal.RequireFromString("999999999999.99")

// Package es un plan de suscripción del catálogo (gestionado por el superadmin).
// Varias empresas pueden referenciar el mismo paquete.
type Package struct {
	ID           string
	Name         string
	Description  string
	Price        decimal.Decimal
	DurationDays int // duración en días desde la asignación
	EventLimit   int // eventos que otorga el paquete
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ExpiryFrom calcula la fecha de expiración si el paquete se asigna en t.
func (p *Package) ExpiryFrom(t time.Time) time.Time {
	return t.AddDate(0, 0, p.DurationDays)
}
