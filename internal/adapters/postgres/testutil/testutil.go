// Package testutil opens a schema-applied Postgres pool for adapter tests.
// Tests are skipped unless TAPEDECK_TEST_DATABASE_URL points at a disposable
// database.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Overland-East-Bay/tapedeck/internal/adapters/postgres"
)

func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TAPEDECK_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TAPEDECK_TEST_DATABASE_URL not set; skipping postgres tests")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolOptions{})
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, postgres.Schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	// Each test run starts from a clean slate.
	if _, err := pool.Exec(ctx, `TRUNCATE cassettes`); err != nil {
		t.Fatalf("truncate cassettes: %v", err)
	}
	return pool
}
