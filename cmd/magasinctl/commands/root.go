package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/magasin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/magasin-api/pkg/config"
	"github.com/jhoicas/magasin-api/pkg/logger"
)

var (
	// Flags globales
	dbURL   string
	verbose bool

	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "magasinctl",
	Short: "Administración de la base de datos del magasin",
	Long: `magasinctl ejecuta tareas de mantenimiento contra la misma base de datos
que usa el API: migraciones, seed inicial, alta de usuarios e importación de productos.

La configuración se lee de las mismas variables de entorno que cmd/api
(DATABASE_URL o DB_HOST/DB_PORT/..., SEED_ADMIN_*). --db tiene prioridad.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		if dbURL != "" {
			c.DB.DatabaseURL = dbURL
		}
		level := c.App.LogLevel
		if verbose {
			level = "debug"
		}
		cfg = c
		log = logger.New(logger.Config{Env: "development", Level: level, Output: os.Stderr})
		return nil
	},
}

// Execute ejecuta el comando raíz.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "URL de PostgreSQL (por defecto DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Salida detallada")
}

// withPool abre el pool, ejecuta fn y lo cierra.
func withPool(ctx context.Context, fn func(pool *pgxpool.Pool) error) error {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(pool)
}
