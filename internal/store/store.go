package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"github.com/fashionstore/ingest/internal/ingest"
)

//go:embed schema.sql
var schemaSQL string

// Store wraps the sales database. It implements ingest.DuplicateChecker and
// ingest.Loader.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open connects to the database named by driver and dsn and verifies the
// connection. Production callers pass "postgres" with a connection URL;
// tests pass the sqlite3 driver.
func Open(driver, dsn string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, &ingest.StorageError{Op: "open", Err: err}
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &ingest.StorageError{Op: "open", Err: fmt.Errorf("ping: %w", err)}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, log: logger}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// EnsureSchema creates the four sales tables if they do not exist.
// Idempotent; used by `ingest initdb` and by tests.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return &ingest.StorageError{Op: "schema", Err: err}
	}
	return nil
}
