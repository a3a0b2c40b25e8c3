package report

import (
	"context"
	"time"

	"github.com/jhoicas/eventportal-api/internal/domain/entity"
)

// StatementData agrupa lo necesario para el estado de cuenta de una empresa.
type StatementData struct {
	Company     *entity.Company
	Package     *entity.Package // nil si la empresa no tiene paquete
	Events      []*entity.Event
	EventsTotal int
	GeneratedAt time.Time
}

// StatementPDFGenerator es el puerto de salida para renderizar el estado de cuenta.
// Lo implementa infrastructure/pdf con Maroto v2.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, data StatementData) ([]byte, error)
}
