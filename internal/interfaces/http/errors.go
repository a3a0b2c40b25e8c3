package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/eventportal-api/internal/application/dto"
	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// errorStatus traduce un error de dominio a status HTTP y código estable para el cliente.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrPackageInUse):
		return fiber.StatusConflict, "PACKAGE_IN_USE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "USER_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrCompanyInactive):
		return fiber.StatusBadRequest, "COMPANY_INACTIVE"
	case errors.Is(err, domain.ErrNoPackage):
		return fiber.StatusBadRequest, "NO_PACKAGE"
	case errors.Is(err, domain.ErrQuotaExhausted):
		return fiber.StatusBadRequest, "QUOTA_EXHAUSTED"
	case errors.Is(err, domain.ErrPackageExpired):
		return fiber.StatusBadRequest, "PACKAGE_EXPIRED"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// writeError responde con dto.ErrorResponse. Los errores no mapeados se registran y se ocultan al cliente.
func writeError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return writeErrorStatus(c, status, code, err)
}

func writeErrorStatus(c *fiber.Ctx, status int, code string, err error) error {
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("user_id", GetUserID(c)).
			Msg("error interno")
		msg = "error interno del servidor"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// FiberErrorHandler es el ErrorHandler de la app: errores de fiber (404 de ruta, body demasiado grande)
// conservan su status; el resto pasa por writeError.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return writeError(c, err)
}
