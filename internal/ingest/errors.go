package ingest

import (
	"errors"
	"fmt"
)

// ValidationError indicates a malformed target date. It is a user-input
// fault: non-retryable, and raised before any I/O happens.
type ValidationError struct {
	Date string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid date %q: expected YYYYMMDD", e.Date)
}

// StorageError indicates a relational-store failure: the existence check,
// or opening/committing the load transaction. The run aborts; it is safe to
// retry the whole run later since no partial writes occurred outside
// row-level inserts.
type StorageError struct {
	Op  string // "open", "schema", "check", "begin", "commit"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ExtractionError indicates the source object is missing, unreadable, or
// not parseable as CSV. The run aborts; retry only after fixing the object.
type ExtractionError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s/%s: %v", e.Bucket, e.Key, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsExtractionError reports whether err is (or wraps) an ExtractionError.
func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}
