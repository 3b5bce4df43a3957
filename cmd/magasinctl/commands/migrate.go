package commands

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/magasin-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones SQL pendientes",
	Long: `Aplica las migraciones embebidas que aún no figuran en schema_migrations.
Es seguro ejecutarlo varias veces y en paralelo con el API (advisory lock).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
			n, err := postgres.Migrate(cmd.Context(), pool, log.Component("migrate"))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migraciones aplicadas\n", n)
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crea los roles base y el usuario admin si faltan",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Seed.UsesDefaultPassword() {
			log.Warn().Msg("SEED_ADMIN_PASSWORD no definido: se usa la contraseña por defecto")
		}
		return withPool(cmd.Context(), func(pool *pgxpool.Pool) error {
			created, err := postgres.Seed(cmd.Context(), pool, postgres.AdminSeed{
				Username: cfg.Seed.AdminUsername,
				Email:    cfg.Seed.AdminEmail,
				Password: cfg.Seed.AdminPassword,
			})
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "admin %q creado\n", cfg.Seed.AdminUsername)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "roles al día; el admin ya existía")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd)
}
