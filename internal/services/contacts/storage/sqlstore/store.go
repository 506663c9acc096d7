// Package sqlstore implements contacts persistence over database/sql.
//
// One schema serves SQLite (modernc.org/sqlite, the default for local runs and
// tests) and PostgreSQL (github.com/lib/pq, selected by a postgres:// URL).
// Queries are written with '?' placeholders and rebound per dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/louisbranch/contactbook/internal/platform/storage/sqlmigrate"
	"github.com/louisbranch/contactbook/internal/services/contacts/storage"
	"github.com/louisbranch/contactbook/internal/services/contacts/storage/sqlstore/migrations"
)

const postgresUniqueViolation = "23505"

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store implements storage.Store.
type Store struct {
	sqlDB   *sql.DB
	dialect sqlmigrate.Dialect
	clock   func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the timestamp source used for created_at/updated_at.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// ParseURL resolves the dialect and driver DSN for a database URL.
// postgres:// and postgresql:// URLs select PostgreSQL; anything else is a
// SQLite file path.
func ParseURL(url string) (sqlmigrate.Dialect, string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", "", fmt.Errorf("database url is required")
	}
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return sqlmigrate.DialectPostgres, url, nil
	}
	path := filepath.Clean(strings.TrimPrefix(url, "sqlite://"))
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	return sqlmigrate.DialectSQLite, dsn, nil
}

// Open opens the database behind url and applies bundled migrations.
func Open(ctx context.Context, url string, opts ...Option) (*Store, error) {
	dialect, dsn, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	if dialect == sqlmigrate.DialectSQLite {
		if dir := filepath.Dir(strings.SplitN(dsn, "?", 2)[0]); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
	}

	sqlDB, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", dialect, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s db: %w", dialect, err)
	}

	store := &Store{sqlDB: sqlDB, dialect: dialect, clock: time.Now}
	for _, opt := range opts {
		opt(store)
	}

	if err := sqlmigrate.ApplyMigrations(ctx, sqlDB, dialect, migrations.FS, string(dialect)); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}

// Dialect reports the SQL flavor of the open database.
func (s *Store) Dialect() sqlmigrate.Dialect {
	if s == nil {
		return ""
	}
	return s.dialect
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping runs SELECT 1 and fails unless the database answers 1.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	var one int
	if err := s.sqlDB.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("select 1: %w", err)
	}
	if one != 1 {
		return fmt.Errorf("database is not configured correctly")
	}
	return nil
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

func (s *Store) now() time.Time {
	return s.clock().UTC()
}

func (s *Store) rebind(query string) string {
	return s.dialect.Rebind(query)
}

// isUniqueViolation reports whether err came from a unique constraint.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == postgresUniqueViolation
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

var _ storage.Store = (*Store)(nil)
