package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/magasin-api/pkg/logger"
)

//go:embed migrations/*.up.sql
var migrationFiles embed.FS

// clave arbitraria para pg_advisory_xact_lock: dos instancias arrancando a la vez no migran en paralelo
const migrationLockKey = 7_300_112

// Migrate aplica en orden los archivos migrations/*.up.sql que aún no figuran en
// schema_migrations. Cada archivo corre en su propia transacción junto con su registro.
func Migrate(ctx context.Context, q Querier, log *logger.Logger) (int, error) {
	if log == nil {
		log = logger.Nop()
	}
	_, err := q.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)`)
	if err != nil {
		return 0, fmt.Errorf("crear schema_migrations: %w", err)
	}

	names, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return 0, fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(names)

	applied := 0
	for _, path := range names {
		version := strings.TrimPrefix(path, "migrations/")
		ran, err := applyMigration(ctx, q, path, version)
		if err != nil {
			return applied, err
		}
		if ran {
			applied++
			log.Info().Str("version", version).Msg("migración aplicada")
		}
	}
	return applied, nil
}

func applyMigration(ctx context.Context, q Querier, path, version string) (bool, error) {
	ran := false
	err := inTx(ctx, q, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, migrationLockKey); err != nil {
			return fmt.Errorf("lock de migración: %w", err)
		}
		var exists bool
		err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
		if err != nil {
			return fmt.Errorf("consultar migración %s: %w", version, err)
		}
		if exists {
			return nil
		}
		sql, err := migrationFiles.ReadFile(path)
		if err != nil {
			return fmt.Errorf("leer %s: %w", version, err)
		}
		if _, err := tx.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("ejecutar %s: %w", version, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("registrar %s: %w", version, err)
		}
		ran = true
		return nil
	})
	return ran, err
}
