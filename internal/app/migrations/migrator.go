package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/yigit/uniconnect/internal/db"
)

// Migrator applies numbered SQL files once each, recording them in
// schema_migrations.
type Migrator struct {
	conn   db.Beginner
	files  fs.FS
	logger zerolog.Logger
}

// NewMigrator creates a migrator reading *.sql files from the root of files.
func NewMigrator(conn db.Beginner, files fs.FS, logger zerolog.Logger) *Migrator {
	return &Migrator{
		conn:   conn,
		files:  files,
		logger: logger,
	}
}

const createMigrationTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version VARCHAR(255) PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// Version extracts the migration version from a filename, e.g. "001_init.sql" => "001".
func Version(filename string) string {
	return strings.SplitN(path.Base(filename), "_", 2)[0]
}

// Pending lists the *.sql files in files, in apply order.
func Pending(files fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Up applies every migration that has not been recorded yet. Each file runs
// in its own transaction together with its schema_migrations row.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	names, err := Pending(m.files)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, name := range names {
		ok, err := m.apply(ctx, name)
		if err != nil {
			return applied, err
		}
		if ok {
			applied++
		}
	}
	return applied, nil
}

func (m *Migrator) apply(ctx context.Context, name string) (bool, error) {
	content, err := fs.ReadFile(m.files, name)
	if err != nil {
		return false, fmt.Errorf("failed to read migration file %s: %w", name, err)
	}
	version := Version(name)

	var ran bool
	err = db.WithTransaction(ctx, m.conn, m.logger, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, createMigrationTable); err != nil {
			return fmt.Errorf("failed to create migration tracking table: %w", err)
		}

		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			m.logger.Debug().Str("migration", name).Msg("Migration already applied, skipping")
			return nil
		}

		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("error occurred during SQL migration %s: %w", name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		ran = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if ran {
		m.logger.Info().Str("migration", name).Msg("Migration file successfully applied")
	}
	return ran, nil
}
