package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventportal-api/internal/application/report"
	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/access"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/infrastructure/memory"
)

// generatorSpy guarda los datos recibidos en lugar de renderizar el PDF.
type generatorSpy struct {
	got report.StatementData
}

func (g *generatorSpy) GenerateStatementPDF(_ context.Context, data report.StatementData) ([]byte, error) {
	g.got = data
	return []byte("%PDF-fake"), nil
}

func TestDownload_ReuneDatosDeLaEmpresa(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	pkgID := "p-1"
	expiry := time.Now().AddDate(0, 0, 30)
	require.NoError(t, s.Packages().Create(ctx, &entity.Package{ID: pkgID, Name: "Basic", Price: decimal.NewFromInt(10), DurationDays: 30, EventLimit: 3}))
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: "c-1", Name: "Acme", NameKey: "acme", IsActive: true}))
	require.NoError(t, s.Companies().AssignPackage(ctx, &entity.Company{
		ID: "c-1", ActivePackageID: &pkgID, PackageExpiryDate: &expiry, EventLimit: 3, EventCountRemaining: 2,
	}))
	require.NoError(t, s.Events().Create(ctx, &entity.Event{ID: "e-1", CompanyID: "c-1", Title: "Kickoff", Attendees: 10, Date: time.Now()}))

	spy := &generatorSpy{}
	uc := report.NewStatementUseCase(s.Companies(), s.Packages(), s.Events(), spy)
	owner := access.Principal{UserID: "u-1", Role: entity.RoleDataEntry, CompanyID: "c-1"}

	pdf, filename, err := uc.Download(ctx, owner, "c-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "estado-cuenta-c-1.pdf", filename)
	require.NotNil(t, spy.got.Package)
	assert.Equal(t, "Basic", spy.got.Package.Name)
	assert.Len(t, spy.got.Events, 1)
	assert.Equal(t, 1, spy.got.EventsTotal)
	assert.Equal(t, 2, spy.got.Company.EventCountRemaining)
}

func TestDownload_AlcanceYNoEncontrado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Companies().Create(ctx, &entity.Company{ID: "c-1", Name: "Acme", NameKey: "acme"}))
	uc := report.NewStatementUseCase(s.Companies(), s.Packages(), s.Events(), &generatorSpy{})

	stranger := access.Principal{UserID: "u-9", Role: entity.RoleAdmin, CompanyID: "c-9"}
	_, _, err := uc.Download(ctx, stranger, "c-1")
	require.ErrorIs(t, err, domain.ErrForbidden)

	root := access.Principal{UserID: "root", Role: entity.RoleSuperAdmin}
	_, _, err = uc.Download(ctx, root, "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
