package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"time"
)

const (
	migrationSuffix = ".up.sql"

	createMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	name TEXT PRIMARY KEY,
	applied_at DATETIME NOT NULL
)`
)

// MigrationStatus reports whether a migration file has been applied.
type MigrationStatus struct {
	Name      string
	Applied   bool
	AppliedAt time.Time
}

// Migrator applies SQL migration files in lexical order and records every
// applied file in the schema_migrations table, so reruns only apply what is
// still missing. Each file runs inside its own transaction together with its
// tracking row.
type Migrator struct {
	db   *sql.DB
	fsys fs.FS
}

func NewMigrator(db *sql.DB, fsys fs.FS) *Migrator {
	return &Migrator{
		db:   db,
		fsys: fsys,
	}
}

// Up applies all pending migrations and returns their names in the order
// they were applied.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0, len(pending))
	for _, name := range pending {
		if err := m.apply(ctx, name); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", name, err)
		}
		slog.Info("Applied migration.", "name", name)
		applied = append(applied, name)
	}

	return applied, nil
}

// Pending returns the names of migration files that have not been applied yet.
func (m *Migrator) Pending(ctx context.Context) ([]string, error) {
	names, err := m.names()
	if err != nil {
		return nil, err
	}

	appliedAt, err := m.appliedAt(ctx)
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, name := range names {
		if _, ok := appliedAt[name]; !ok {
			pending = append(pending, name)
		}
	}

	return pending, nil
}

// Status reports every known migration file in lexical order along with
// whether and when it was applied.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	names, err := m.names()
	if err != nil {
		return nil, err
	}

	appliedAt, err := m.appliedAt(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(names))
	for _, name := range names {
		at, ok := appliedAt[name]
		statuses = append(statuses, MigrationStatus{
			Name:      name,
			Applied:   ok,
			AppliedAt: at,
		})
	}

	return statuses, nil
}

func (m *Migrator) apply(ctx context.Context, name string) error {
	contents, err := fs.ReadFile(m.fsys, name)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	for _, stmt := range splitStatements(string(contents)) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			rollback(tx)
			return fmt.Errorf("exec statement %q: %w", stmt, err)
		}
	}

	const track = "INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)"
	if _, err := tx.ExecContext(ctx, track, name, time.Now().UTC()); err != nil {
		rollback(tx)
		return fmt.Errorf("track migration: %w", err)
	}

	return tx.Commit()
}

func (m *Migrator) names() ([]string, error) {
	entries, err := fs.ReadDir(m.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), migrationSuffix) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	return names, nil
}

func (m *Migrator) appliedAt(ctx context.Context) (map[string]time.Time, error) {
	if _, err := m.db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations table: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, "SELECT name, applied_at FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("query schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]time.Time)
	for rows.Next() {
		var name string
		var at time.Time
		if err := rows.Scan(&name, &at); err != nil {
			return nil, fmt.Errorf("scan schema_migrations row: %w", err)
		}
		applied[name] = at
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schema_migrations rows: %w", err)
	}

	return applied, nil
}

func splitStatements(contents string) []string {
	var stmts []string
	for _, chunk := range strings.Split(contents, ";") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		stmts = append(stmts, chunk)
	}
	return stmts
}
