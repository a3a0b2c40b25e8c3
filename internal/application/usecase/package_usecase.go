package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/eventportal-api/internal/application/dto"
	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/access"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/domain/repository"
)

// PackageUseCase administra el catálogo de paquetes de suscripción.
// Las mutaciones son solo de superadmin; cualquier usuario autenticado puede leer.
type PackageUseCase struct {
	repo repository.PackageRepository
}

// NewPackageUseCase construye el caso de uso con el puerto de persistencia.
func NewPackageUseCase(repo repository.PackageRepository) *PackageUseCase {
	return &PackageUseCase{repo: repo}
}

// Create crea un paquete. domain.ErrInvalidInput si nombre vacío, precio negativo,
// duración o límite de eventos menores a 1.
func (uc *PackageUseCase) Create(ctx context.Context, p access.Principal, in dto.CreatePackageRequest) (*dto.PackageResponse, error) {
	if err := access.Check(p, access.ActionCreate, access.Package()); err != nil {
		return nil, err
	}
	now := time.Now()
	pkg := &entity.Package{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price,
		DurationDays: in.DurationDays,
		EventLimit:   in.EventLimit,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := validatePackage(pkg); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return toPackageResponse(pkg), nil
}

// List devuelve todos los paquetes.
func (uc *PackageUseCase) List(ctx context.Context, p access.Principal) (*dto.PackageListResponse, error) {
	if err := access.Check(p, access.ActionRead, access.Package()); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PackageResponse, 0, len(list))
	for _, pkg := range list {
		items = append(items, *toPackageResponse(pkg))
	}
	return &dto.PackageListResponse{Items: items}, nil
}

// GetByID obtiene un paquete. domain.ErrNotFound si no existe.
func (uc *PackageUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.PackageResponse, error) {
	if err := access.Check(p, access.ActionRead, access.Package()); err != nil {
		return nil, err
	}
	pkg, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPackageResponse(pkg), nil
}

// Update reemplaza los campos enviados y revalida el resultado.
// Las empresas que ya tienen el paquete asignado conservan su cuota y vencimiento.
func (uc *PackageUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdatePackageRequest) (*dto.PackageResponse, error) {
	if err := access.Check(p, access.ActionUpdate, access.Package()); err != nil {
		return nil, err
	}
	pkg, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		pkg.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		pkg.Description = *in.Description
	}
	if in.Price != nil {
		pkg.Price = *in.Price
	}
	if in.DurationDays != nil {
		pkg.DurationDays = *in.DurationDays
	}
	if in.EventLimit != nil {
		pkg.EventLimit = *in.EventLimit
	}
	if in.IsActive != nil {
		pkg.IsActive = *in.IsActive
	}
	if err := validatePackage(pkg); err != nil {
		return nil, err
	}
	pkg.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return toPackageResponse(pkg), nil
}

// Delete elimina un paquete. domain.ErrPackageInUse si alguna empresa lo tiene asignado.
func (uc *PackageUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	if err := access.Check(p, access.ActionDelete, access.Package()); err != nil {
		return err
	}
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *PackageUseCase) get(ctx context.Context, id string) (*entity.Package, error) {
	pkg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrNotFound
	}
	return pkg, nil
}

func validatePackage(pkg *entity.Package) error {
	switch {
	case pkg.Name == "":
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	case pkg.Price.IsNegative():
		return fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	case pkg.Price.GreaterThan(entity.MaxPrice):
		return fmt.Errorf("%w: price excede el máximo %s", domain.ErrInvalidInput, entity.MaxPrice)
	case pkg.DurationDays < 1 || pkg.DurationDays > entity.MaxDurationDays:
		return fmt.Errorf("%w: duration_days debe estar entre 1 y %d", domain.ErrInvalidInput, entity.MaxDurationDays)
	case pkg.EventLimit < 1 || pkg.EventLimit > entity.MaxCount:
		return fmt.Errorf("%w: event_limit debe estar entre 1 y %d", domain.ErrInvalidInput, entity.MaxCount)
	}
	return nil
}

func toPackageResponse(pkg *entity.Package) *dto.PackageResponse {
	if pkg == nil {
		return nil
	}
	return &dto.PackageResponse{
		ID:           pkg.ID,
		Name:         pkg.Name,
		Description:  pkg.Description,
		Price:        pkg.Price,
		DurationDays: pkg.DurationDays,
		EventLimit:   pkg.EventLimit,
		IsActive:     pkg.IsActive,
		CreatedAt:    pkg.CreatedAt,
		UpdatedAt:    pkg.UpdatedAt,
	}
}
