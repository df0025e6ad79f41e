package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options configures the connection pool.
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// sqlitePragmas are applied on every new connection through the DSN.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

// Open connects to the configured store, ensures the schema exists and pings it.
func Open(ctx context.Context, opts Options) (*sqlx.DB, error) {
	dsn := opts.DSN
	switch opts.Driver {
	case DriverSQLite:
		dsn = withSQLitePragmas(dsn)
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported db driver %q", opts.Driver)
	}

	db, err := sqlx.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Driver, err)
	}
	configurePool(db, opts)

	// Fail fast if the DB cannot be reached
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", opts.Driver, err)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func configurePool(db *sqlx.DB, opts Options) {
	if opts.Driver == DriverSQLite {
		// SQLite is not great with many writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		return
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
}

func withSQLitePragmas(dsn string) string {
	if dsn == "" {
		dsn = "portfolio.db"
	}
	params := make([]string, 0, len(sqlitePragmas)+1)
	for _, p := range sqlitePragmas {
		params = append(params, "_pragma="+p)
	}
	// fixed-width UTC timestamps keep ORDER BY created_at chronological
	params = append(params, "_time_format=sqlite")
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}
