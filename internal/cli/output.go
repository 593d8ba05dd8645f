package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fashionstore/ingest/internal/ingest"
)

// Exit codes for CLI commands.
const (
	ExitSuccess = 0 // run completed or legitimately skipped
	ExitFailure = 1 // run failed (storage/extraction error)
	ExitUsage   = 2 // rejected date, bad flags, missing configuration
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// WriteReport renders a run report to w in the requested format.
func WriteReport(w io.Writer, format string, rep ingest.Report) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	fmt.Fprintf(w, "run:      %s\n", rep.RunID)
	fmt.Fprintf(w, "date:     %s\n", rep.Date)
	if rep.SaleDate != "" {
		fmt.Fprintf(w, "sale day: %s\n", rep.SaleDate)
	}
	fmt.Fprintf(w, "status:   %s\n", rep.Status)
	if rep.Status == ingest.StatusCompleted {
		fmt.Fprintf(w, "inserted: %d/%d rows\n", rep.RowsInserted, rep.TotalRows)
	}
	if rep.Message != "" {
		fmt.Fprintf(w, "message:  %s\n", rep.Message)
	}
	return nil
}
