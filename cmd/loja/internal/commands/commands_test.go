package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.ExecuteContext(t.Context())
	return buf.String(), err
}

func setTestEnv(t *testing.T) {
	t.Helper()

	t.Setenv("ENV", "test")
	t.Setenv("SECRET_KEY", "cli-test-secret")
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "cli.sqlite3"))
	t.Setenv("LOG_LEVEL", "error")
}

func TestMigrateCommand(t *testing.T) {
	setTestEnv(t)

	out, err := runCommand(t, "migrate")
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if !strings.Contains(out, "Applied 2 migration(s).") {
		t.Errorf("migrate output = %q, want applied count", out)
	}

	out, err = runCommand(t, "migrate")
	if err != nil {
		t.Fatalf("migrate rerun: %v", err)
	}
	if !strings.Contains(out, "No migrations to apply.") {
		t.Errorf("migrate rerun output = %q, want nothing to apply", out)
	}
}

func TestShowMigrationsCommand(t *testing.T) {
	setTestEnv(t)

	out, err := runCommand(t, "showmigrations")
	if err != nil {
		t.Fatalf("showmigrations: %v", err)
	}
	if !strings.Contains(out, "[ ] 0001_users.up.sql") {
		t.Errorf("output = %q, want pending users migration", out)
	}

	if _, err := runCommand(t, "migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	out, err = runCommand(t, "showmigrations")
	if err != nil {
		t.Fatalf("showmigrations: %v", err)
	}
	if !strings.Contains(out, "[X] 0001_users.up.sql") || !strings.Contains(out, "[X] 0002_catalog.up.sql") {
		t.Errorf("output = %q, want all migrations applied", out)
	}
}

func TestCreateSuperuserCommand(t *testing.T) {
	setTestEnv(t)
	if _, err := runCommand(t, "migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	out, err := runCommand(t, "createsuperuser", "--email", "admin@loja.dev", "--password", "s3cret")
	if err != nil {
		t.Fatalf("createsuperuser: %v", err)
	}
	if !strings.Contains(out, "Superuser admin@loja.dev created.") {
		t.Errorf("output = %q, want creation confirmation", out)
	}

	if _, err := runCommand(t, "createsuperuser", "--email", "admin@loja.dev", "--password", "s3cret"); err == nil {
		t.Error("duplicate email accepted, want an error")
	}

	if _, err := runCommand(t, "createsuperuser", "--email", "not-an-email", "--password", "x"); err == nil {
		t.Error("malformed email accepted, want an error")
	}

	if _, err := runCommand(t, "createsuperuser", "--email", "second@loja.dev"); err == nil {
		t.Error("missing password accepted, want an error")
	}
}

func TestCreateSuperuserPasswordFromEnv(t *testing.T) {
	setTestEnv(t)
	if _, err := runCommand(t, "migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Setenv("SUPERUSER_PASSWORD", "from-the-env")
	out, err := runCommand(t, "createsuperuser", "--email", "env@loja.dev")
	if err != nil {
		t.Fatalf("createsuperuser: %v", err)
	}
	if !strings.Contains(out, "Superuser env@loja.dev created.") {
		t.Errorf("output = %q, want creation confirmation", out)
	}
}

func TestSeedCommand(t *testing.T) {
	setTestEnv(t)
	if _, err := runCommand(t, "migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	out, err := runCommand(t, "seed")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	for _, slug := range []string{"camiseta-slim", "moletom-canguru", "caneca-da-loja"} {
		if !strings.Contains(out, slug) {
			t.Errorf("output = %q, want it to mention %q", out, slug)
		}
	}

	out, err = runCommand(t, "seed")
	if err != nil {
		t.Fatalf("seed rerun: %v", err)
	}
	if strings.Contains(out, "Created") {
		t.Errorf("seed rerun output = %q, want existing products skipped", out)
	}
}

func TestSeedRefusesWithoutDebug(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DEBUG", "false")

	if _, err := runCommand(t, "seed"); err == nil {
		t.Error("seed ran with DEBUG disabled, want a refusal")
	}
}
