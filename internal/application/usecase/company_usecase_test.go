package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventportal-api/internal/application/dto"
	"github.com/jhoicas/eventportal-api/internal/application/usecase"
	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/access"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/infrastructure/memory"
)

var root = access.Principal{UserID: "root", Role: entity.RoleSuperAdmin}

type env struct {
	store     *memory.Store
	companies *usecase.CompanyUseCase
	packages  *usecase.PackageUseCase
	users     *usecase.UserUseCase
}

func newEnv() *env {
	s := memory.NewStore()
	return &env{
		store:     s,
		companies: usecase.NewCompanyUseCase(s.Companies(), s.Packages(), s),
		packages:  usecase.NewPackageUseCase(s.Packages()),
		users:     usecase.NewUserUseCase(s.Users(), s.Companies()),
	}
}

func registerReq(name, email string) dto.RegisterCompanyRequest {
	return dto.RegisterCompanyRequest{
		Company: dto.CompanyFields{Name: name, Address: "Calle 1", ContactPerson: "Ana", ContactEmail: "c@x.test", ContactPhone: "555"},
		Admin:   dto.AdminFields{Name: "Admin", Email: email, Password: "password123"},
	}
}

func (e *env) register(t *testing.T, name, email string) string {
	t.Helper()
	out, err := e.companies.Register(context.Background(), registerReq(name, email))
	require.NoError(t, err)
	return out.Company.ID
}

func (e *env) pkg(t *testing.T, limit, days int) string {
	t.Helper()
	out, err := e.packages.Create(context.Background(), root, dto.CreatePackageRequest{
		Name: "Plan", Price: decimal.RequireFromString("49.90"), DurationDays: days, EventLimit: limit,
	})
	require.NoError(t, err)
	return out.ID
}

func adminOf(companyID string) access.Principal {
	return access.Principal{UserID: "u-" + companyID, Role: entity.RoleAdmin, CompanyID: companyID}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaEmpresaPendienteYAdmin(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	out, err := e.companies.Register(ctx, registerReq("Acme", "Admin@Acme.test"))
	require.NoError(t, err)
	assert.False(t, out.Company.IsActive)
	assert.NotEmpty(t, out.Message)

	c, err := e.store.Companies().GetByID(ctx, out.Company.ID)
	require.NoError(t, err)
	assert.False(t, c.HasPackage())
	assert.Equal(t, 0, c.EventCountRemaining)

	u, err := e.store.Users().GetByEmail(ctx, "admin@acme.test")
	require.NoError(t, err)
	require.NotNil(t, u, "el email se guarda normalizado")
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Equal(t, out.Company.ID, u.CompanyID)
}

func TestRegister_Conflictos(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	e.register(t, "Acme S.A.", "admin@acme.test")

	_, err := e.companies.Register(ctx, registerReq("  ACME   s.a. ", "otro@acme.test"))
	require.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = e.companies.Register(ctx, registerReq("Initech", "ADMIN@acme.test"))
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	c, err := e.store.Companies().GetByNameKey(ctx, entity.NormalizeName("Initech"))
	require.NoError(t, err)
	assert.Nil(t, c, "un conflicto de email no deja la empresa creada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve / AssignPackage
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_Idempotente(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	id := e.register(t, "Acme", "admin@acme.test")

	first, err := e.companies.Approve(ctx, root, id)
	require.NoError(t, err)
	second, err := e.companies.Approve(ctx, root, id)
	require.NoError(t, err)

	assert.True(t, first.IsActive)
	assert.True(t, second.IsActive)
	assert.Equal(t, first.EventCountRemaining, second.EventCountRemaining)
	assert.Equal(t, first.ActivePackageID, second.ActivePackageID)

	_, err = e.companies.Approve(ctx, root, "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.companies.Approve(ctx, adminOf(id), id)
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAssignPackage_ReemplazaNoAcumula(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	id := e.register(t, "Acme", "admin@acme.test")
	big := e.pkg(t, 10, 30)
	small := e.pkg(t, 3, 7)

	before := time.Now()
	out, err := e.companies.AssignPackage(ctx, root, id, dto.AssignPackageRequest{PackageID: big})
	require.NoError(t, err)
	assert.Equal(t, 10, out.EventCountRemaining)

	ok, err := e.store.Companies().DecrementQuota(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)

	out, err = e.companies.AssignPackage(ctx, root, id, dto.AssignPackageRequest{PackageID: small})
	require.NoError(t, err)
	assert.Equal(t, 3, out.EventLimit)
	assert.Equal(t, 3, out.EventCountRemaining)
	require.NotNil(t, out.ActivePackageID)
	assert.Equal(t, small, *out.ActivePackageID)
	require.NotNil(t, out.PackageExpiryDate)
	assert.WithinDuration(t, before.AddDate(0, 0, 7), *out.PackageExpiryDate, time.Minute)
}

func TestAssignPackage_NoEncontrados(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	id := e.register(t, "Acme", "admin@acme.test")
	pkgID := e.pkg(t, 1, 1)

	_, err := e.companies.AssignPackage(ctx, root, id, dto.AssignPackageRequest{PackageID: "no-existe"})
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.companies.AssignPackage(ctx, root, "no-existe", dto.AssignPackageRequest{PackageID: pkgID})
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.companies.AssignPackage(ctx, adminOf(id), id, dto.AssignPackageRequest{PackageID: pkgID})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAssignPackage_PaqueteInactivoSeRechaza(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	id := e.register(t, "Acme", "admin@acme.test")
	pkgID := e.pkg(t, 4, 30)

	_, err := e.companies.AssignPackage(ctx, root, id, dto.AssignPackageRequest{PackageID: pkgID})
	require.NoError(t, err)

	inactive := false
	_, err = e.packages.Update(ctx, root, pkgID, dto.UpdatePackageRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, err = e.companies.AssignPackage(ctx, root, id, dto.AssignPackageRequest{PackageID: pkgID})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := e.store.Companies().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 4, c.EventCountRemaining, "la asignación previa se conserva")
}

// ──────────────────────────────────────────────────────────────────────────────
// GetByID / List
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_AlcancePorEmpresa(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	acme := e.register(t, "Acme", "admin@acme.test")
	globex := e.register(t, "Globex", "admin@globex.test")

	got, err := e.companies.GetByID(ctx, adminOf(acme), acme)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)

	_, err = e.companies.GetByID(ctx, adminOf(globex), acme)
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = e.companies.GetByID(ctx, root, "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_SoloSuperadmin(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	acme := e.register(t, "Acme", "admin@acme.test")
	e.register(t, "Globex", "admin@globex.test")

	out, err := e.companies.List(ctx, root, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 1, out.Page.Limit)

	out, err = e.companies.List(ctx, root, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Equal(t, 20, out.Page.Limit)

	_, err = e.companies.List(ctx, adminOf(acme), dto.PageRequest{})
	require.ErrorIs(t, err, domain.ErrForbidden)
}
