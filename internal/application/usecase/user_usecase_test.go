package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventportal-api/internal/application/dto"
	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/access"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
)

func userReq(email, role, companyID string) dto.CreateUserRequest {
	return dto.CreateUserRequest{Email: email, Password: "password123", Name: "Usuario", Role: role, CompanyID: companyID}
}

func TestUserCreate_AdminFuerzaSuEmpresa(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	acme := e.register(t, "Acme", "admin@acme.test")
	globex := e.register(t, "Globex", "admin@globex.test")

	out, err := e.users.Create(ctx, adminOf(acme), userReq("carga@acme.test", entity.RoleDataEntry, globex))
	require.NoError(t, err)
	assert.Equal(t, acme, out.CompanyID)

	_, err = e.users.Create(ctx, adminOf(acme), userReq("root2@acme.test", entity.RoleSuperAdmin, ""))
	require.ErrorIs(t, err, domain.ErrForbidden)

	dataentry := access.Principal{UserID: out.ID, Role: entity.RoleDataEntry, CompanyID: acme}
	_, err = e.users.Create(ctx, dataentry, userReq("x@acme.test", entity.RoleDataEntry, ""))
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserCreate_SuperadminValidaciones(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	acme := e.register(t, "Acme", "admin@acme.test")

	_, err := e.users.Create(ctx, root, userReq("a@x.test", "owner", acme))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.users.Create(ctx, root, userReq("a@x.test", entity.RoleAdmin, ""))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.users.Create(ctx, root, userReq("a@x.test", entity.RoleAdmin, "no-existe"))
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.users.Create(ctx, root, userReq("ADMIN@acme.test", entity.RoleAdmin, acme))
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	sa, err := e.users.Create(ctx, root, userReq("root2@x.test", entity.RoleSuperAdmin, acme))
	require.NoError(t, err)
	assert.Empty(t, sa.CompanyID, "el superadmin no pertenece a ninguna empresa")
}

func TestUser_LecturaYListados(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	acme := e.register(t, "Acme", "admin@acme.test")
	globex := e.register(t, "Globex", "admin@globex.test")
	carga, err := e.users.Create(ctx, adminOf(acme), userReq("carga@acme.test", entity.RoleDataEntry, ""))
	require.NoError(t, err)
	dataentry := access.Principal{UserID: carga.ID, Role: entity.RoleDataEntry, CompanyID: acme}

	list, err := e.users.ListByCompany(ctx, adminOf(acme), acme, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)

	_, err = e.users.ListByCompany(ctx, adminOf(globex), acme, dto.PageRequest{})
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = e.users.ListByCompany(ctx, dataentry, acme, dto.PageRequest{})
	require.ErrorIs(t, err, domain.ErrForbidden)
	_, err = e.users.List(ctx, adminOf(acme), dto.PageRequest{})
	require.ErrorIs(t, err, domain.ErrForbidden)

	all, err := e.users.List(ctx, root, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 3)

	me, err := e.users.GetByID(ctx, dataentry, carga.ID)
	require.NoError(t, err)
	assert.Equal(t, "carga@acme.test", me.Email)

	_, err = e.users.GetByID(ctx, root, "no-existe")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserUpdate(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	acme := e.register(t, "Acme", "admin@acme.test")
	globex := e.register(t, "Globex", "admin@globex.test")
	carga, err := e.users.Create(ctx, adminOf(acme), userReq("carga@acme.test", entity.RoleDataEntry, ""))
	require.NoError(t, err)

	role := entity.RoleAdmin
	out, err := e.users.Update(ctx, adminOf(acme), carga.ID, dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)

	promote := entity.RoleSuperAdmin
	_, err = e.users.Update(ctx, adminOf(acme), carga.ID, dto.UpdateUserRequest{Role: &promote})
	require.ErrorIs(t, err, domain.ErrForbidden)

	name := "Otro"
	_, err = e.users.Update(ctx, adminOf(globex), carga.ID, dto.UpdateUserRequest{Name: &name})
	require.ErrorIs(t, err, domain.ErrForbidden)

	taken := "admin@acme.test"
	_, err = e.users.Update(ctx, adminOf(acme), carga.ID, dto.UpdateUserRequest{Email: &taken})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	blank := "   "
	_, err = e.users.Update(ctx, adminOf(acme), carga.ID, dto.UpdateUserRequest{Name: &blank})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserDelete(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	acme := e.register(t, "Acme", "admin@acme.test")
	carga, err := e.users.Create(ctx, adminOf(acme), userReq("carga@acme.test", entity.RoleDataEntry, ""))
	require.NoError(t, err)
	sa, err := e.users.Create(ctx, root, userReq("root2@x.test", entity.RoleSuperAdmin, ""))
	require.NoError(t, err)

	require.ErrorIs(t, e.users.Delete(ctx, root, sa.ID), domain.ErrForbidden)

	dataentry := access.Principal{UserID: carga.ID, Role: entity.RoleDataEntry, CompanyID: acme}
	require.ErrorIs(t, e.users.Delete(ctx, dataentry, carga.ID), domain.ErrForbidden)

	require.NoError(t, e.users.Delete(ctx, adminOf(acme), carga.ID))
	require.ErrorIs(t, e.users.Delete(ctx, adminOf(acme), carga.ID), domain.ErrUserNotFound)
}
