package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventportal-api/internal/application/dto"
	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
)

func TestPackageCreate_Validacion(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreatePackageRequest
	}{
		{"nombre vacío", dto.CreatePackageRequest{Name: "  ", DurationDays: 1, EventLimit: 1}},
		{"precio negativo", dto.CreatePackageRequest{Name: "X", Price: decimal.NewFromInt(-1), DurationDays: 1, EventLimit: 1}},
		{"duración cero", dto.CreatePackageRequest{Name: "X", DurationDays: 0, EventLimit: 1}},
		{"límite cero", dto.CreatePackageRequest{Name: "X", DurationDays: 1, EventLimit: 0}},
		{"duración fuera de rango", dto.CreatePackageRequest{Name: "X", DurationDays: entity.MaxDurationDays + 1, EventLimit: 1}},
		{"límite fuera de int32", dto.CreatePackageRequest{Name: "X", DurationDays: 1, EventLimit: entity.MaxCount + 1}},
		{"precio excesivo", dto.CreatePackageRequest{Name: "X", Price: entity.MaxPrice.Add(decimal.NewFromInt(1)), DurationDays: 1, EventLimit: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.packages.Create(ctx, root, tc.in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	out, err := e.packages.Create(ctx, root, dto.CreatePackageRequest{Name: "Gratis", DurationDays: 1, EventLimit: 1})
	require.NoError(t, err, "precio cero es válido")
	assert.True(t, out.IsActive)

	_, err = e.packages.Create(ctx, root, dto.CreatePackageRequest{
		Name: "Tope", Price: entity.MaxPrice, DurationDays: entity.MaxDurationDays, EventLimit: entity.MaxCount,
	})
	require.NoError(t, err, "los máximos son válidos")
}

func TestPackage_MutacionesSoloSuperadmin(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	acme := e.register(t, "Acme", "admin@acme.test")
	id := e.pkg(t, 5, 30)

	_, err := e.packages.Create(ctx, adminOf(acme), dto.CreatePackageRequest{Name: "X", DurationDays: 1, EventLimit: 1})
	require.ErrorIs(t, err, domain.ErrForbidden)
	name := "Pirata"
	_, err = e.packages.Update(ctx, adminOf(acme), id, dto.UpdatePackageRequest{Name: &name})
	require.ErrorIs(t, err, domain.ErrForbidden)
	require.ErrorIs(t, e.packages.Delete(ctx, adminOf(acme), id), domain.ErrForbidden)

	list, err := e.packages.List(ctx, adminOf(acme))
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	got, err := e.packages.GetByID(ctx, adminOf(acme), id)
	require.NoError(t, err)
	assert.Equal(t, 5, got.EventLimit)
}

func TestPackageUpdate_RevalidaYReemplaza(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	id := e.pkg(t, 5, 30)

	limit := 12
	out, err := e.packages.Update(ctx, root, id, dto.UpdatePackageRequest{EventLimit: &limit})
	require.NoError(t, err)
	assert.Equal(t, 12, out.EventLimit)
	assert.Equal(t, 30, out.DurationDays, "los campos omitidos se conservan")

	zero := 0
	_, err = e.packages.Update(ctx, root, id, dto.UpdatePackageRequest{DurationDays: &zero})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.packages.Update(ctx, root, "no-existe", dto.UpdatePackageRequest{EventLimit: &limit})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPackageDelete(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	acme := e.register(t, "Acme", "admin@acme.test")
	used := e.pkg(t, 5, 30)
	free := e.pkg(t, 1, 1)
	_, err := e.companies.AssignPackage(ctx, root, acme, dto.AssignPackageRequest{PackageID: used})
	require.NoError(t, err)

	require.ErrorIs(t, e.packages.Delete(ctx, root, used), domain.ErrPackageInUse)
	require.NoError(t, e.packages.Delete(ctx, root, free))
	require.ErrorIs(t, e.packages.Delete(ctx, root, free), domain.ErrNotFound)
}
