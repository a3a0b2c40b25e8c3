package repository

import (
	"context"
	"time"

	"github.com/jhoicas/eventportal-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
//
// Las columnas de cuota (event_limit, event_count_remaining) solo se modifican con
// las sentencias dedicadas AssignPackage, DecrementQuota e IncrementQuota; nunca
// con un read-modify-write desde la aplicación.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetByIDForUpdate bloquea la fila hasta el fin de la transacción en curso.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Company, error)
	GetByNameKey(ctx context.Context, nameKey string) (*entity.Company, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	// Approve marca la empresa como activa. Devuelve domain.ErrNotFound si no existe.
	Approve(ctx context.Context, id string, now time.Time) error
	// AssignPackage persiste paquete, expiración y reinicio de cuota en una sola sentencia.
	AssignPackage(ctx context.Context, company *entity.Company) error
	// DecrementQuota descuenta 1 solo si la cuota es > 0. ok=false si no había cuota.
	DecrementQuota(ctx context.Context, id string) (ok bool, err error)
	// IncrementQuota devuelve 1 unidad sin superar event_limit.
	IncrementQuota(ctx context.Context, id string) error
}
