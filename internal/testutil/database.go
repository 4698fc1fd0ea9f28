package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/db"
)

const defaultTestDSN = "host=localhost port=5432 user=hospital password=hospital dbname=hospital_test sslmode=disable"

// SetupTestDB connects to the integration database and applies the embedded
// migrations. TEST_DATABASE_URL overrides the local default.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		dsn = defaultTestDSN
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if _, err := db.NewMigrator(conn, db.Migrations()).Up(context.Background()); err != nil {
		conn.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// CleanupTestDB removes every patient row so tests start from an empty
// registry and id counters restart at 001.
func CleanupTestDB(t *testing.T, conn *sql.DB) {
	t.Helper()

	if _, err := conn.Exec("TRUNCATE TABLE patients"); err != nil {
		t.Logf("Warning: Failed to clean up patients: %v", err)
	}
}
