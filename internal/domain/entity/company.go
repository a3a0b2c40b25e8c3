package entity

import (
	"time"

	"github.com/jhoicas/eventportal-api/internal/domain"
)

// Company representa un tenant del portal. Nace pendiente (IsActive=false) hasta
// que un superadmin la aprueba; la aprobación es de un solo sentido.
type Company struct {
	ID                  string
	Name                string
	NameKey             string // nombre normalizado para la unicidad (ver NormalizeName)
	Address             string
	ContactPerson       string
	ContactEmail        string
	ContactPhone        string
	IsActive            bool
	ActivePackageID     *string    // nil = sin paquete asignado
	PackageExpiryDate   *time.Time // se fija al asignar paquete
	EventLimit          int        // tope de cuota capturado al asignar el paquete
	EventCountRemaining int        // 0 <= EventCountRemaining <= EventLimit
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasPackage informa si la empresa tiene un paquete asignado.
func (c *Company) HasPackage() bool {
	return c.ActivePackageID != nil && *c.ActivePackageID != ""
}

// PackageExpired informa si la fecha de expiración existe y ya pasó.
func (c *Company) PackageExpired(now time.Time) bool {
	return c.PackageExpiryDate != nil && c.PackageExpiryDate.Before(now)
}

// CheckEventAllowed aplica, en orden y cortando en el primer fallo, las reglas que
// habilitan la creación de un evento: activa, con paquete, con cuota, sin expirar.
func (c *Company) CheckEventAllowed(now time.Time) error {
	switch {
	case !c.IsActive:
		return domain.ErrCompanyInactive
	case !c.HasPackage():
		return domain.ErrNoPackage
	case c.EventCountRemaining <= 0:
		return domain.ErrQuotaExhausted
	case c.PackageExpired(now):
		return domain.ErrPackageExpired
	}
	return nil
}

// AssignPackage reemplaza el paquete vigente: la cuota se reinicia al límite del
// paquete (no se acumula) y la expiración se recalcula desde now.
func (c *Company) AssignPackage(pkg *Package, now time.Time) {
	id := pkg.ID
	expiry := pkg.ExpiryFrom(now)
	c.ActivePackageID = &id
	c.PackageExpiryDate = &expiry
	c.EventLimit = pkg.EventLimit
	c.EventCountRemaining = pkg.EventLimit
	c.UpdatedAt = now
}
