package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationLockKey serializes migrators across replicas via a Postgres
// advisory lock.
const migrationLockKey int64 = 0x66617265 // "fare"

type migration struct {
	version string // file name, e.g. 001_create_watches.sql
	sql     string
}

// RunMigrations applies the embedded SQL files that are not yet recorded in
// schema_migrations, in file name order, in a single transaction. Concurrent
// callers block on an advisory lock. Migrations are forward-only.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", migrationLockKey); err != nil {
			return fmt.Errorf("locking migrations: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			CREATE TABLE IF NOT EXISTS schema_migrations (
				version    TEXT PRIMARY KEY,
				applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`); err != nil {
			return fmt.Errorf("creating schema_migrations table: %w", err)
		}

		rows, err := tx.Query(ctx, "SELECT version FROM schema_migrations")
		if err != nil {
			return fmt.Errorf("listing applied migrations: %w", err)
		}
		applied, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("listing applied migrations: %w", err)
		}

		pending, err := pendingMigrations(migrationsFS, "migrations", applied)
		if err != nil {
			return err
		}

		for _, m := range pending {
			if _, err := tx.Exec(ctx, m.sql); err != nil {
				return fmt.Errorf("applying migration %s: %w", m.version, err)
			}
			if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", m.version); err != nil {
				return fmt.Errorf("recording migration %s: %w", m.version, err)
			}
		}
		return nil
	})
}

// pendingMigrations returns the .sql files under dir that are not in
// applied, sorted by name.
func pendingMigrations(fsys fs.FS, dir string, applied []string) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var pending []migration
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") || slices.Contains(applied, name) {
			continue
		}
		body, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", name, err)
		}
		pending = append(pending, migration{version: name, sql: string(body)})
	}

	slices.SortFunc(pending, func(a, b migration) int {
		return strings.Compare(a.version, b.version)
	})
	return pending, nil
}
