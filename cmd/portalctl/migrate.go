package main

import (
	"fmt"

	"github.com/jhoicas/eventportal-api/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones SQL pendientes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		pool, err := openPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(applied) == 0 {
			fmt.Fprintln(out, "Esquema al día, no hay migraciones pendientes.")
			return nil
		}
		for _, name := range applied {
			fmt.Fprintf(out, "Aplicada: %s\n", name)
		}
		return nil
	},
}
