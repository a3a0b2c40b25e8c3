package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/infrastructure/memory"
)

func TestSeedSuperAdmin_CreaYEsIdempotente(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	opts := seedOptions{email: " Root@Portal.test ", password: "password123", name: "Root"}

	var out bytes.Buffer
	require.NoError(t, seedSuperAdmin(ctx, s.Users(), opts, &out))
	assert.Contains(t, out.String(), "Superadmin creado")

	u, err := s.Users().GetByEmail(ctx, "root@portal.test")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleSuperAdmin, u.Role)
	assert.Empty(t, u.CompanyID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")))

	out.Reset()
	require.NoError(t, seedSuperAdmin(ctx, s.Users(), opts, &out))
	assert.Contains(t, out.String(), "ya existe")
}

func TestSeedSuperAdmin_Validaciones(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	var out bytes.Buffer

	err := seedSuperAdmin(ctx, s.Users(), seedOptions{email: "root", password: "password123", name: "Root"}, &out)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	err = seedSuperAdmin(ctx, s.Users(), seedOptions{email: "root@portal.test", password: "corto", name: "Root"}, &out)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSeedSuperAdmin_EmailDeOtroRol(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: "u-1", Email: "admin@acme.test", Role: entity.RoleAdmin}))

	err := seedSuperAdmin(ctx, s.Users(), seedOptions{email: "admin@acme.test", password: "password123", name: "Root"}, &bytes.Buffer{})
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSeedSuperAdminCmd_FlagsRequeridos(t *testing.T) {
	cmd := newSeedSuperAdminCmd()
	cmd.SetArgs([]string{"--email", "root@portal.test"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}
