package store

import (
	"context"

	"github.com/fashionstore/ingest/internal/ingest"
)

// SaleDateExists reports whether at least one sale row carries the given
// date (YYYY-MM-DD form). Query failures surface as a StorageError; callers
// must treat that as fatal for the run, never as "not exists".
func (s *Store) SaleDateExists(ctx context.Context, date string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM sale WHERE sale_date = $1)`, date,
	).Scan(&exists)
	if err != nil {
		return false, &ingest.StorageError{Op: "check", Err: err}
	}
	return exists, nil
}
