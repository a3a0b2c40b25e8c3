package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/eventportal-api/internal/domain"
	"github.com/jhoicas/eventportal-api/internal/domain/entity"
	"github.com/jhoicas/eventportal-api/internal/domain/repository"
	"github.com/jhoicas/eventportal-api/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

type seedOptions struct {
	email    string
	password string
	name     string
}

func newSeedSuperAdminCmd() *cobra.Command {
	var opts seedOptions
	cmd := &cobra.Command{
		Use:   "seed-superadmin",
		Short: "Crea el usuario superadmin si aún no existe",
		Long: `Crea un usuario con rol superadmin (sin empresa).

El portal no tiene un superadmin por defecto: sin este paso nadie puede
aprobar empresas ni crear paquetes. Si el email ya pertenece a un
superadmin, el comando no hace nada.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()
			return seedSuperAdmin(ctx, postgres.NewUserRepository(pool), opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.email, "email", "", "email del superadmin (requerido)")
	cmd.Flags().StringVar(&opts.password, "password", "", "password del superadmin, mínimo 8 caracteres (requerido)")
	cmd.Flags().StringVar(&opts.name, "name", "Super Admin", "nombre visible")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func seedSuperAdmin(ctx context.Context, users repository.UserRepository, opts seedOptions, out io.Writer) error {
	email := entity.NormalizeEmail(opts.email)
	name := strings.TrimSpace(opts.name)
	switch {
	case email == "" || !strings.Contains(email, "@"):
		return fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
	case len(opts.password) < 8:
		return fmt.Errorf("%w: el password debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	case name == "":
		return fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}

	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Role == entity.RoleSuperAdmin {
			fmt.Fprintf(out, "El superadmin %s ya existe (id %s).\n", email, existing.ID)
			return nil
		}
		return fmt.Errorf("%w: %s pertenece a un usuario %s", domain.ErrEmailAlreadyExists, email, existing.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleSuperAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return fmt.Errorf("crear superadmin: %w", err)
		}
		return err
	}
	fmt.Fprintf(out, "Superadmin creado: %s (id %s)\n", email, user.ID)
	return nil
}
