// portalctl agrupa las tareas operativas del portal que no pasan por la API:
// aplicar migraciones y crear el primer superadmin.
//
// Uso:
//
//	go run ./cmd/portalctl migrate
//	go run ./cmd/portalctl seed-superadmin --email root@portal.test --password '...' --name Root
//
// Lee la misma configuración que cmd/api (env, .env, config.env).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/eventportal-api/internal/infrastructure/postgres"
	"github.com/jhoicas/eventportal-api/pkg/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "portalctl",
	Short:         "Herramientas operativas del portal de eventos",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd, newSeedSuperAdminCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openPool carga la configuración y abre el pool de PostgreSQL.
func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	if cfg.App.StoreDriver != config.StoreDriverPostgres {
		return nil, fmt.Errorf("portalctl requiere STORE_DRIVER=postgres (actual: %s)", cfg.App.StoreDriver)
	}
	return postgres.NewPool(ctx, cfg.DB)
}
