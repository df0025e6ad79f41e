package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func TestWithSQLitePragmas(t *testing.T) {
	cases := []struct {
		name, in, prefix string
	}{
		{name: "empty uses default file", in: "", prefix: "portfolio.db?"},
		{name: "plain path", in: "data/app.db", prefix: "data/app.db?"},
		{name: "existing query", in: "file:app.db?cache=shared", prefix: "file:app.db?cache=shared&"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := withSQLitePragmas(tc.in)
			if !strings.HasPrefix(got, tc.prefix) {
				t.Fatalf("got %q, want prefix %q", got, tc.prefix)
			}
			if !strings.Contains(got, "_pragma=foreign_keys(1)") {
				t.Fatalf("foreign keys must be enabled: %q", got)
			}
		})
	}
}

func TestOpen_SQLiteCreatesSchemaIdempotently(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 2; i++ {
		conn, err := Open(ctx, Options{Driver: DriverSQLite, DSN: path})
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}

		var tables []string
		if err := conn.SelectContext(ctx, &tables,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`); err != nil {
			t.Fatalf("list tables: %v", err)
		}
		want := "categories,comments,projects,users"
		if got := strings.Join(tables, ","); got != want {
			t.Fatalf("tables: got %s, want %s", got, want)
		}

		var fk int
		if err := conn.GetContext(ctx, &fk, `PRAGMA foreign_keys`); err != nil || fk != 1 {
			t.Fatalf("foreign_keys pragma: %d (err=%v)", fk, err)
		}
		_ = conn.Close()
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), Options{Driver: "mysql"}); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}
