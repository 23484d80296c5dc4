// README: Shared setup for DB-backed tests; skips unless CARPOOL_TEST_DSN is set.
package dbtest

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"carpool/internal/infra"
)

const dsnEnv = "CARPOOL_TEST_DSN"

var migrateOnce struct {
	sync.Once
	err error
}

// Open connects to the test database, applies migrations once per test binary and empties
// every table except fare_rates.
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skip(dsnEnv + " not set; skipping DB-backed tests")
	}

	migrateOnce.Do(func() {
		root, err := repoRoot()
		if err != nil {
			migrateOnce.err = err
			return
		}
		migrateOnce.err = infra.Migrate(dsn, "file://"+filepath.Join(root, "migrations"))
	})
	if migrateOnce.err != nil {
		t.Fatalf("apply migrations: %v", migrateOnce.err)
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	if _, err := db.Exec(ctx, `TRUNCATE TABLE payments, ride_assignments, ride_requests, rides,
		vehicles, drivers, riders, users`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	return db
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}
