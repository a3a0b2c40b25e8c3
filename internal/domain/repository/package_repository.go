package repository

import (
	"context"

	"github.com/jhoicas/eventportal-api/internal/domain/entity"
)

// PackageRepository define el puerto de persistencia para Package (DIP).
type PackageRepository interface {
	Create(ctx context.Context, pkg *entity.Package) error
	GetByID(ctx context.Context, id string) (*entity.Package, error)
	List(ctx context.Context) ([]*entity.Package, error)
	Update(ctx context.Context, pkg *entity.Package) error
	// Delete devuelve domain.ErrPackageInUse si alguna empresa lo tiene asignado.
	Delete(ctx context.Context, id string) error
}
