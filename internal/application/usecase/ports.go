package usecase

import (
	"context"

	"github.com/jhoicas/eventportal-api/internal/domain/repository"
)

// RegistrationTxRunner ejecuta el alta de empresa + admin en una sola transacción.
// Si cualquiera de los dos inserts falla, no queda ninguno persistido.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}
