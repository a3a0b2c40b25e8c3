package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/eventportal-api/internal/application/dto"
	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/access"
	"github.com/jhoicas/eventportal-api/pkg/jwt"
)

// Locals keys para UserID, CompanyID y Role en Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalRole      = "role"
)

// TokenCookie es la cookie que fija el login; el middleware la acepta como alternativa al header.
const TokenCookie = "token"

// PrincipalResolver carga la identidad vigente del usuario identificado por el token.
// Devuelve domain.ErrUnauthorized si el usuario ya no existe y domain.ErrForbidden si está inactivo.
type PrincipalResolver interface {
	Resolve(ctx context.Context, userID string) (access.Principal, error)
}

// PrincipalResolverFunc adapta una función a PrincipalResolver.
type PrincipalResolverFunc func(ctx context.Context, userID string) (access.Principal, error)

// Resolve llama a f.
func (f PrincipalResolverFunc) Resolve(ctx context.Context, userID string) (access.Principal, error) {
	return f(ctx, userID)
}

// AuthMiddleware valida el JWT (Bearer o cookie "token"), carga el usuario con resolver y deja
// UserID, CompanyID y Role en c.Locals. El token solo prueba la identidad: rol y empresa salen
// del usuario almacenado, así un usuario degradado o eliminado pierde sus permisos de inmediato.
// Sin token, con token inválido o con usuario inexistente responde 401; usuario inactivo, 403.
func AuthMiddleware(jwtSecret string, resolver PrincipalResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, errResp := extractToken(c)
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(errResp)
		}
		userID, _, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		p, err := resolver.Resolve(c.UserContext(), userID)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "USER_NOT_FOUND", Message: "usuario no encontrado"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "USER_INACTIVE", Message: "usuario inactivo"})
		default:
			return writeError(c, err)
		}
		c.Locals(LocalUserID, p.UserID)
		c.Locals(LocalCompanyID, p.CompanyID)
		c.Locals(LocalRole, p.Role)
		return c.Next()
	}
}

func extractToken(c *fiber.Ctx) (string, *dto.ErrorResponse) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		if cookie := strings.TrimSpace(c.Cookies(TokenCookie)); cookie != "" {
			return cookie, nil
		}
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header o cookie token requerido"}
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"}
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"}
	}
	return tokenString, nil
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetCompanyID devuelve el CompanyID del contexto. Vacío para superadmin.
func GetCompanyID(c *fiber.Ctx) string { return localString(c, LocalCompanyID) }

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetPrincipal arma la identidad que consumen los casos de uso y la política de acceso.
func GetPrincipal(c *fiber.Ctx) access.Principal {
	return access.Principal{
		UserID:    GetUserID(c),
		Role:      GetRole(c),
		CompanyID: GetCompanyID(c),
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}
