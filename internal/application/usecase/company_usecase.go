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
	"golang.org/x/crypto/bcrypt"
)

// CompanyUseCase aplica reglas de negocio para empresas: registro, aprobación y asignación de paquete.
type CompanyUseCase struct {
	repo        repository.CompanyRepository
	packageRepo repository.PackageRepository
	txRunner    RegistrationTxRunner
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, packageRepo repository.PackageRepository, txRunner RegistrationTxRunner) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, packageRepo: packageRepo, txRunner: txRunner}
}

// Register crea la empresa (pendiente, sin paquete, cuota 0) y su usuario admin en una transacción.
// domain.ErrDuplicate si el nombre ya existe; domain.ErrEmailAlreadyExists si el email del admin ya existe.
func (uc *CompanyUseCase) Register(ctx context.Context, in dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error) {
	name := strings.TrimSpace(in.Company.Name)
	nameKey := entity.NormalizeName(name)
	email := entity.NormalizeEmail(in.Admin.Email)
	if nameKey == "" || email == "" || in.Admin.Password == "" {
		return nil, fmt.Errorf("%w: nombre de empresa, email y password son requeridos", domain.ErrInvalidInput)
	}

	// bcrypt fuera de la transacción: es lento y no necesita el lock.
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		ID:            uuid.New().String(),
		Name:          name,
		NameKey:       nameKey,
		Address:       in.Company.Address,
		ContactPerson: in.Company.ContactPerson,
		ContactEmail:  entity.NormalizeEmail(in.Company.ContactEmail),
		ContactPhone:  in.Company.ContactPhone,
		IsActive:      false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Admin.Name),
		Role:         entity.RoleAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunRegistration(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		existing, err := companyRepo.GetByNameKey(ctx, nameKey)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: ya existe una empresa con ese nombre", domain.ErrDuplicate)
		}
		user, err := userRepo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := companyRepo.Create(ctx, company); err != nil {
			return err
		}
		return userRepo.Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}

	return &dto.RegisterCompanyResponse{
		Message: "Empresa registrada. Pendiente de aprobación por el administrador.",
		Company: dto.RegisteredCompanyBrief{ID: company.ID, Name: company.Name, IsActive: company.IsActive},
	}, nil
}

// Approve activa la empresa. Es idempotente: aprobar una empresa activa no cambia nada más.
func (uc *CompanyUseCase) Approve(ctx context.Context, p access.Principal, id string) (*dto.CompanyResponse, error) {
	if err := access.Check(p, access.ActionApprove, access.Company(id)); err != nil {
		return nil, err
	}
	if err := uc.repo.Approve(ctx, id, time.Now()); err != nil {
		return nil, err
	}
	return uc.load(ctx, id)
}

// AssignPackage reemplaza paquete, cuota y vencimiento de la empresa. Nunca acumula cuota previa.
// Un paquete inactivo no se puede asignar (domain.ErrInvalidInput); las empresas que ya lo tienen lo conservan.
func (uc *CompanyUseCase) AssignPackage(ctx context.Context, p access.Principal, id string, in dto.AssignPackageRequest) (*dto.CompanyResponse, error) {
	if err := access.Check(p, access.ActionAssignPackage, access.Company(id)); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	pkg, err := uc.packageRepo.GetByID(ctx, in.PackageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, fmt.Errorf("%w: paquete %s", domain.ErrNotFound, in.PackageID)
	}
	if !pkg.IsActive {
		return nil, fmt.Errorf("%w: el paquete %s está inactivo", domain.ErrInvalidInput, pkg.ID)
	}

	company.AssignPackage(pkg, time.Now())
	if err := uc.repo.AssignPackage(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company, pkg), nil
}

// GetByID obtiene una empresa. domain.ErrForbidden si el principal no es superadmin ni pertenece a ella.
func (uc *CompanyUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.Check(p, access.ActionRead, access.Company(id)); err != nil {
		return nil, err
	}
	pkg, err := uc.activePackage(ctx, company)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company, pkg), nil
}

// List lista empresas con paginación (solo superadmin).
func (uc *CompanyUseCase) List(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	if err := access.Check(p, access.ActionList, access.Company("")); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c, nil))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *CompanyUseCase) load(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	pkg, err := uc.activePackage(ctx, company)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company, pkg), nil
}

func (uc *CompanyUseCase) activePackage(ctx context.Context, c *entity.Company) (*entity.Package, error) {
	if !c.HasPackage() {
		return nil, nil
	}
	return uc.packageRepo.GetByID(ctx, *c.ActivePackageID)
}

func toCompanyResponse(c *entity.Company, pkg *entity.Package) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                  c.ID,
		Name:                c.Name,
		Address:             c.Address,
		ContactPerson:       c.ContactPerson,
		ContactEmail:        c.ContactEmail,
		ContactPhone:        c.ContactPhone,
		IsActive:            c.IsActive,
		ActivePackageID:     c.ActivePackageID,
		ActivePackage:       toPackageResponse(pkg),
		PackageExpiryDate:   c.PackageExpiryDate,
		EventLimit:          c.EventLimit,
		EventCountRemaining: c.EventCountRemaining,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}
