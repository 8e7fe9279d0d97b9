package repository

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"

	"github.com/benx421/backoffice/internal/config"
	"github.com/benx421/backoffice/internal/db"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestDB connects to the Postgres configured in the environment and
// applies the schema. Tests are skipped unless DB_ENABLED=true.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !cfg.Database.Enabled {
		t.Skip("DB_ENABLED is not set; skipping Postgres repository test")
	}

	database, err := db.Connect(context.Background(), &cfg.Database, testLogger())
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return database
}

func cleanupTestDB(t *testing.T, database *db.DB) {
	t.Helper()
	if err := database.Close(); err != nil {
		log.Printf("failed to close test database: %v", err)
	}
}

func truncateTables(t *testing.T, database *db.DB) {
	t.Helper()

	tables := []string{"ledger_entries", "idempotency_keys"}
	for _, table := range tables {
		_, err := database.ExecContext(context.Background(), "TRUNCATE TABLE "+table)
		if err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}

func requireEnv(t *testing.T, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s is not set; skipping", key)
	}
	return value
}
