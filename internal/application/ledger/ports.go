package ledger

import (
	"context"

	"github.com/jhoicas/eventportal-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el insert/delete del evento y el movimiento de cuota se confirmen o se descarten juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		eventRepo repository.EventRepository,
	) error) error
}

// Recorder recibe los resultados del ledger para instrumentación (métricas).
// Lo implementa infrastructure/metrics; nil desactiva el registro.
type Recorder interface {
	EventCreated(companyID string)
	EventDeleted(companyID string)
	EventRejected(reason string)
}

type nopRecorder struct{}

func (nopRecorder) EventCreated(string)  {}
func (nopRecorder) EventDeleted(string)  {}
func (nopRecorder) EventRejected(string) {}
