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

// UserUseCase administra usuarios de las empresas.
// Un admin solo opera sobre su propia empresa y nunca sobre el rol superadmin.
type UserUseCase struct {
	repo        repository.UserRepository
	companyRepo repository.CompanyRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, companyRepo repository.CompanyRepository) *UserUseCase {
	return &UserUseCase{repo: repo, companyRepo: companyRepo}
}

// Create crea un usuario. Para no-superadmin la empresa se fuerza a la del principal.
func (uc *UserUseCase) Create(ctx context.Context, p access.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !entity.IsValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol inválido", domain.ErrInvalidInput)
	}
	companyID := in.CompanyID
	if !p.IsSuperAdmin() {
		companyID = p.CompanyID
	}
	if err := access.Check(p, access.ActionCreate, access.User(companyID, "", in.Role)); err != nil {
		return nil, err
	}
	if in.Role == entity.RoleSuperAdmin {
		companyID = ""
	} else if err := uc.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}

	email := entity.NormalizeEmail(in.Email)
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List lista todos los usuarios (solo superadmin).
func (uc *UserUseCase) List(ctx context.Context, p access.Principal, page dto.PageRequest) (*dto.UserListResponse, error) {
	if err := access.Check(p, access.ActionList, access.User("", "", "")); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toUserList(list, page), nil
}

// ListByCompany lista los usuarios de una empresa.
func (uc *UserUseCase) ListByCompany(ctx context.Context, p access.Principal, companyID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	if err := access.Check(p, access.ActionRead, access.User(companyID, "", "")); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toUserList(list, page), nil
}

// GetByID obtiene un usuario.
func (uc *UserUseCase) GetByID(ctx context.Context, p access.Principal, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Check(p, access.ActionRead, access.User(user.CompanyID, user.ID, user.Role)); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Update modifica nombre, email o rol. Un cambio de rol se autoriza contra el rol actual y el nuevo.
func (uc *UserUseCase) Update(ctx context.Context, p access.Principal, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Check(p, access.ActionUpdate, access.User(user.CompanyID, user.ID, user.Role)); err != nil {
		return nil, err
	}
	if in.Role != nil && *in.Role != user.Role {
		if !entity.IsValidRole(*in.Role) {
			return nil, fmt.Errorf("%w: rol inválido", domain.ErrInvalidInput)
		}
		if err := access.Check(p, access.ActionUpdate, access.User(user.CompanyID, user.ID, *in.Role)); err != nil {
			return nil, err
		}
		if *in.Role != entity.RoleSuperAdmin && user.CompanyID == "" {
			return nil, fmt.Errorf("%w: un usuario sin empresa solo puede ser superadmin", domain.ErrInvalidInput)
		}
		if *in.Role == entity.RoleSuperAdmin {
			user.CompanyID = ""
		}
		user.Role = *in.Role
	}
	if in.Email != nil {
		email := entity.NormalizeEmail(*in.Email)
		if email != user.Email {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede estar vacío", domain.ErrInvalidInput)
		}
		user.Name = name
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete elimina un usuario. Los superadmin no se pueden eliminar.
func (uc *UserUseCase) Delete(ctx context.Context, p access.Principal, id string) error {
	user, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == entity.RoleSuperAdmin {
		return fmt.Errorf("%w: no se puede eliminar un superadmin", domain.ErrForbidden)
	}
	if err := access.Check(p, access.ActionDelete, access.User(user.CompanyID, user.ID, user.Role)); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (uc *UserUseCase) requireCompany(ctx context.Context, companyID string) error {
	if companyID == "" {
		return fmt.Errorf("%w: company_id es requerido para roles admin y dataentry", domain.ErrInvalidInput)
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return fmt.Errorf("%w: empresa %s", domain.ErrNotFound, companyID)
	}
	return nil
}

func toUserList(list []*entity.User, page dto.PageRequest) *dto.UserListResponse {
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
