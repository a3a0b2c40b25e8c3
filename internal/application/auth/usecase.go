package auth

import (
	"context"

	"github.com/jhoicas/eventportal-api/internal/application/dto"
	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/access"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/domain/repository"
	"github.com/jhoicas/eventportal-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y perfil del usuario actual.
// El alta de empresas con su admin vive en usecase.CompanyUseCase.Register.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email inexistente y password incorrecto devuelven el mismo domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, entity.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado. domain.ErrUnauthorized si el usuario del token ya no existe.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return toUserResponse(user), nil
}

// Resolve carga el usuario del token y arma el Principal con su rol y empresa actuales.
// domain.ErrUnauthorized si ya no existe, domain.ErrForbidden si está inactivo.
func (uc *AuthUseCase) Resolve(ctx context.Context, userID string) (access.Principal, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return access.Principal{}, err
	}
	if user == nil {
		return access.Principal{}, domain.ErrUnauthorized
	}
	if user.Status != entity.UserStatusActive {
		return access.Principal{}, domain.ErrForbidden
	}
	return access.Principal{UserID: user.ID, Role: user.Role, CompanyID: user.CompanyID}, nil
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
