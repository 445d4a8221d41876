package dbtest

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/hospital/dashboard/internal/platform/db"
	"github.com/hospital/dashboard/migrations"
)

// EnvURL names the variable holding the integration database URL.
const EnvURL = "TEST_DATABASE_URL"

// Postgres drops and re-creates schema, applies the embedded migrations and
// the demo seed data, and returns a Manager whose connections resolve
// unqualified tables in that schema. The test is skipped when EnvURL is unset
// or the database is unreachable. EnvURL must be a URL, not a keyword DSN.
func Postgres(t testing.TB, schema string) *db.Manager {
	t.Helper()

	raw := os.Getenv(EnvURL)
	if raw == "" {
		t.Skipf("%s not set", EnvURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	admin := db.NewManager(db.PoolConfig{DatabaseURL: raw, MaxConns: 2, ConnectTimeout: 5 * time.Second}, zerolog.Nop())
	defer admin.Close()

	pool, err := admin.Pool(ctx)
	if err != nil {
		t.Skipf("postgres unreachable: %v", err)
	}

	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS "+pgx.Identifier{schema}.Sanitize()+" CASCADE"); err != nil {
		t.Fatalf("drop schema %s: %v", schema, err)
	}
	if _, err := db.NewMigrator(pool, migrations.FS).Up(ctx, schema); err != nil {
		t.Fatalf("migrate %s: %v", schema, err)
	}
	if _, err := db.NewMigrator(pool, migrations.SeedFS).Seed(ctx, schema); err != nil {
		t.Fatalf("seed %s: %v", schema, err)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %s: %v", EnvURL, err)
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()

	mgr := db.NewManager(db.PoolConfig{DatabaseURL: u.String(), MaxConns: 4, ConnectTimeout: 5 * time.Second}, zerolog.Nop())
	t.Cleanup(mgr.Close)
	return mgr
}
