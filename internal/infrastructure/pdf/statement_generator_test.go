package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/eventportal-api/internal/application/report"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/infrastructure/pdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStatementPDF_ConPaqueteYEventos(t *testing.T) {
	now := time.Now()
	pkg := &entity.Package{ID: "p-1", Name: "Basic", Price: decimal.NewFromInt(100), DurationDays: 30, EventLimit: 5}
	company := &entity.Company{ID: "c-1", Name: "Acme", IsActive: true}
	company.AssignPackage(pkg, now)
	company.EventCountRemaining = 3

	data := report.StatementData{
		Company: company,
		Package: pkg,
		Events: []*entity.Event{
			{ID: "e-1", Title: "Lanzamiento", Date: now, Location: "Bogotá", Attendees: 40},
			{ID: "e-2", Title: "Taller", Date: now, Attendees: 12},
		},
		EventsTotal: 2,
		GeneratedAt: now,
	}

	out, err := pdf.NewStatementGenerator().GenerateStatementPDF(context.Background(), data)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateStatementPDF_SinPaquete(t *testing.T) {
	data := report.StatementData{
		Company:     &entity.Company{ID: "c-2", Name: "Pendiente SA"},
		GeneratedAt: time.Now(),
	}
	out, err := pdf.NewStatementGenerator().GenerateStatementPDF(context.Background(), data)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateStatementPDF_SinEmpresa(t *testing.T) {
	_, err := pdf.NewStatementGenerator().GenerateStatementPDF(context.Background(), report.StatementData{})
	assert.Error(t, err)
}
