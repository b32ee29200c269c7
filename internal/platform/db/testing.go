package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/devNatanFrei/e-commerce/internal/config"
	"github.com/devNatanFrei/e-commerce/internal/platform/db/migrations"
)

// Setup opens a throwaway SQLite database in a per-test temporary directory.
func Setup(t *testing.T) *sql.DB {
	t.Helper()

	cfg := &config.DB{
		Path:            filepath.Join(t.TempDir(), "test.sqlite3"),
		MaxOpenConns:    2,
		MaxIdleConns:    2,
		ConnMaxIdleTime: time.Minute,
		ConnMaxLifetime: time.Minute,
		PingTimeout:     5 * time.Second,
		BusyTimeout:     5 * time.Second,
	}

	conn, err := Connect(t.Context(), cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if err := conn.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return conn
}

// SetupMigrated opens a throwaway SQLite database with all migrations applied.
func SetupMigrated(t *testing.T) *sql.DB {
	t.Helper()

	conn := Setup(t)
	if _, err := NewMigrator(conn, migrations.FS).Up(t.Context()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return conn
}
