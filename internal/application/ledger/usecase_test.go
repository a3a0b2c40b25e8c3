package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventportal-api/internal/application/dto"
	"github.com/jhoicas/eventportal-api/internal/application/ledger"
	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/access"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/infrastructure/memory"
)

const (
	acmeID   = "11111111-1111-1111-1111-111111111111"
	globexID = "22222222-2222-2222-2222-222222222222"
	basicID  = "33333333-3333-3333-3333-333333333333"
)

var (
	superadmin = access.Principal{UserID: "root", Role: entity.RoleSuperAdmin}
	acmeAdmin  = access.Principal{UserID: "u-acme", Role: entity.RoleAdmin, CompanyID: acmeID}
	acmeData   = access.Principal{UserID: "u-acme-de", Role: entity.RoleDataEntry, CompanyID: acmeID}
	globexUser = access.Principal{UserID: "u-globex", Role: entity.RoleAdmin, CompanyID: globexID}
)

// recorderSpy cuenta las llamadas al Recorder.
type recorderSpy struct {
	mu       sync.Mutex
	created  int
	deleted  int
	rejected map[string]int
}

func (r *recorderSpy) EventCreated(string) { r.mu.Lock(); r.created++; r.mu.Unlock() }
func (r *recorderSpy) EventDeleted(string) { r.mu.Lock(); r.deleted++; r.mu.Unlock() }
func (r *recorderSpy) EventRejected(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rejected == nil {
		r.rejected = map[string]int{}
	}
	r.rejected[reason]++
}

type fixture struct {
	store  *memory.Store
	ledger *ledger.EventLedger
	spy    *recorderSpy
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	for id, name := range map[string]string{acmeID: "Acme", globexID: "Globex"} {
		require.NoError(t, s.Companies().Create(ctx, &entity.Company{
			ID: id, Name: name, NameKey: entity.NormalizeName(name), CreatedAt: time.Now(),
		}))
	}
	require.NoError(t, s.Packages().Create(ctx, &entity.Package{
		ID: basicID, Name: "Basic", Price: decimal.NewFromInt(100), DurationDays: 30, EventLimit: 10, IsActive: true,
	}))
	spy := &recorderSpy{}
	return &fixture{store: s, ledger: ledger.NewEventLedger(s, s.Events(), spy), spy: spy}
}

// activate aprueba la empresa y le asigna un paquete de limit eventos que expira en expiry.
func (f *fixture) activate(t *testing.T, companyID string, limit int, expiry time.Time) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.store.Companies().Approve(ctx, companyID, time.Now()))
	c, err := f.store.Companies().GetByID(ctx, companyID)
	require.NoError(t, err)
	pkgID := basicID
	c.ActivePackageID = &pkgID
	c.PackageExpiryDate = &expiry
	c.EventLimit = limit
	c.EventCountRemaining = limit
	require.NoError(t, f.store.Companies().AssignPackage(ctx, c))
}

func (f *fixture) remaining(t *testing.T, companyID string) int {
	t.Helper()
	c, err := f.store.Companies().GetByID(context.Background(), companyID)
	require.NoError(t, err)
	return c.EventCountRemaining
}

func (f *fixture) count(t *testing.T, companyID string) int {
	t.Helper()
	n, err := f.store.Events().CountByCompany(context.Background(), companyID)
	require.NoError(t, err)
	return n
}

func newEvent(companyID string) dto.CreateEventRequest {
	return dto.CreateEventRequest{
		Title: "Lanzamiento", Date: time.Date(2026, 11, 20, 18, 0, 0, 0, time.UTC),
		Location: "Auditorio", Attendees: 40, CompanyID: companyID,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: orden de verificación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_EmpresaPendienteAntesQueSinPaquete(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.Create(context.Background(), acmeAdmin, newEvent(acmeID))
	require.ErrorIs(t, err, domain.ErrCompanyInactive)
	assert.Equal(t, 1, f.spy.rejected["company_inactive"])
}

func TestCreate_SinPaquete(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Companies().Approve(context.Background(), acmeID, time.Now()))

	_, err := f.ledger.Create(context.Background(), acmeAdmin, newEvent(acmeID))
	require.ErrorIs(t, err, domain.ErrNoPackage)
}

func TestCreate_CuotaAgotadaAntesQueExpirado(t *testing.T) {
	f := newFixture(t)
	f.activate(t, acmeID, 0, time.Now().Add(-time.Hour))

	_, err := f.ledger.Create(context.Background(), acmeAdmin, newEvent(acmeID))
	require.ErrorIs(t, err, domain.ErrQuotaExhausted)
}

func TestCreate_PaqueteExpirado(t *testing.T) {
	f := newFixture(t)
	f.activate(t, acmeID, 3, time.Now().Add(-time.Hour))

	_, err := f.ledger.Create(context.Background(), acmeAdmin, newEvent(acmeID))
	require.ErrorIs(t, err, domain.ErrPackageExpired)
	assert.Equal(t, 3, f.remaining(t, acmeID), "un rechazo no consume cuota")
	assert.Equal(t, 0, f.count(t, acmeID))
}

func TestCreate_EmpresaInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.Create(context.Background(), superadmin, newEvent("99999999-9999-9999-9999-999999999999"))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_DescuentaCuota(t *testing.T) {
	f := newFixture(t)
	f.activate(t, acmeID, 2, time.Now().Add(24*time.Hour))

	ev, err := f.ledger.Create(context.Background(), acmeData, newEvent(""))
	require.NoError(t, err)
	assert.Equal(t, acmeID, ev.CompanyID, "sin company_id se usa la empresa del principal")
	assert.Equal(t, acmeData.UserID, ev.CreatedBy)
	assert.Equal(t, 1, f.remaining(t, acmeID))
	assert.Equal(t, 1, f.spy.created)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	f.activate(t, acmeID, 2, time.Now().Add(24*time.Hour))

	in := newEvent(acmeID)
	in.Attendees = 0
	_, err := f.ledger.Create(context.Background(), acmeAdmin, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	in.Attendees = entity.MaxCount + 1
	_, err = f.ledger.Create(context.Background(), acmeAdmin, in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 2, f.remaining(t, acmeID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento entre empresas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_EmpresaAjenaEsForbiddenSinEfectos(t *testing.T) {
	f := newFixture(t)
	f.activate(t, acmeID, 5, time.Now().Add(24*time.Hour))

	_, err := f.ledger.Create(context.Background(), globexUser, newEvent(acmeID))
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 5, f.remaining(t, acmeID))
	assert.Equal(t, 0, f.count(t, acmeID))
	assert.Equal(t, 1, f.spy.rejected["forbidden"])
}

func TestUpdateDelete_EmpresaAjenaYDataEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.activate(t, acmeID, 5, time.Now().Add(24*time.Hour))
	ev, err := f.ledger.Create(ctx, acmeAdmin, newEvent(acmeID))
	require.NoError(t, err)

	title := "Otro"
	_, err = f.ledger.Update(ctx, globexUser, ev.ID, dto.UpdateEventRequest{Title: &title})
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.ledger.Update(ctx, acmeData, ev.ID, dto.UpdateEventRequest{Title: &title})
	require.ErrorIs(t, err, domain.ErrForbidden)
	require.ErrorIs(t, f.ledger.Delete(ctx, acmeData, ev.ID), domain.ErrForbidden)
	require.ErrorIs(t, f.ledger.Delete(ctx, globexUser, ev.ID), domain.ErrForbidden)

	_, err = f.ledger.GetByID(ctx, globexUser, ev.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.ledger.ListByCompany(ctx, globexUser, acmeID, dto.PageRequest{})
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.ledger.ListAll(ctx, acmeAdmin, dto.PageRequest{})
	require.ErrorIs(t, err, domain.ErrForbidden)

	got, err := f.ledger.GetByID(ctx, acmeData, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lanzamiento", got.Title)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_NoTocaCuota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.activate(t, acmeID, 3, time.Now().Add(24*time.Hour))
	ev, err := f.ledger.Create(ctx, acmeAdmin, newEvent(acmeID))
	require.NoError(t, err)

	attendees := 120
	out, err := f.ledger.Update(ctx, acmeAdmin, ev.ID, dto.UpdateEventRequest{Attendees: &attendees})
	require.NoError(t, err)
	assert.Equal(t, 120, out.Attendees)
	assert.Equal(t, 2, f.remaining(t, acmeID))

	_, err = f.ledger.Update(ctx, acmeAdmin, "no-existe", dto.UpdateEventRequest{})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_DevuelveCuota(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.activate(t, acmeID, 2, time.Now().Add(24*time.Hour))
	ev, err := f.ledger.Create(ctx, acmeAdmin, newEvent(acmeID))
	require.NoError(t, err)
	require.Equal(t, 1, f.remaining(t, acmeID))

	require.NoError(t, f.ledger.Delete(ctx, acmeAdmin, ev.ID))
	assert.Equal(t, 2, f.remaining(t, acmeID))
	assert.Equal(t, 1, f.spy.deleted)

	require.ErrorIs(t, f.ledger.Delete(ctx, acmeAdmin, ev.ID), domain.ErrNotFound)
}

func TestDelete_NoSuperaElLimiteTrasReasignar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.activate(t, acmeID, 3, time.Now().Add(24*time.Hour))
	ev, err := f.ledger.Create(ctx, acmeAdmin, newEvent(acmeID))
	require.NoError(t, err)

	// La reasignación reinicia la cuota al máximo; el borrado posterior no la desborda.
	f.activate(t, acmeID, 3, time.Now().Add(24*time.Hour))
	require.NoError(t, f.ledger.Delete(ctx, superadmin, ev.ID))
	assert.Equal(t, 3, f.remaining(t, acmeID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ConcurrenteNuncaSuperaLaCuota(t *testing.T) {
	const quota, workers = 5, 40
	f := newFixture(t)
	f.activate(t, acmeID, quota, time.Now().Add(24*time.Hour))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		exhausted int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.Create(context.Background(), acmeAdmin, newEvent(acmeID))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, domain.ErrQuotaExhausted):
				exhausted++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, quota, ok)
	assert.Equal(t, workers-quota, exhausted)
	assert.Equal(t, 0, f.remaining(t, acmeID))
	assert.Equal(t, quota, f.count(t, acmeID))
}

func TestCreateDelete_ConcurrenteMantieneElInvariante(t *testing.T) {
	const quota = 4
	f := newFixture(t)
	ctx := context.Background()
	f.activate(t, acmeID, quota, time.Now().Add(24*time.Hour))

	seeded := make([]string, 0, quota)
	for i := 0; i < quota; i++ {
		ev, err := f.ledger.Create(ctx, acmeAdmin, newEvent(acmeID))
		require.NoError(t, err)
		seeded = append(seeded, ev.ID)
	}

	var wg sync.WaitGroup
	for _, id := range seeded {
		wg.Add(2)
		go func(id string) {
			defer wg.Done()
			assert.NoError(t, f.ledger.Delete(ctx, acmeAdmin, id))
		}(id)
		go func() {
			defer wg.Done()
			_, _ = f.ledger.Create(ctx, acmeAdmin, newEvent(acmeID))
		}()
	}
	wg.Wait()

	remaining := f.remaining(t, acmeID)
	assert.GreaterOrEqual(t, remaining, 0)
	assert.LessOrEqual(t, remaining, quota)
	assert.Equal(t, quota, remaining+f.count(t, acmeID), "cuota restante + eventos debe ser el límite")
}
