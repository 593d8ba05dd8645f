package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Status is the terminal state a workflow run settles into. No further
// steps execute after a run reaches one.
type Status string

const (
	// StatusRejected: the target date failed validation. No I/O happened.
	StatusRejected Status = "rejected"

	// StatusSkippedExisting: sale rows for the date already exist; the
	// object store was never contacted.
	StatusSkippedExisting Status = "skipped-existing"

	// StatusSkippedNoData: the extract held no rows for the date after
	// filtering; no database writes happened.
	StatusSkippedNoData Status = "skipped-no-data"

	// StatusCompleted: the load ran and committed.
	StatusCompleted Status = "completed"

	// StatusFailed: a storage or extraction error aborted the run.
	StatusFailed Status = "failed"
)

// Report is the outcome of one workflow run, surfaced to the calling
// harness instead of an error.
type Report struct {
	RunID        string `json:"run_id"`
	Date         string `json:"date"`      // YYYYMMDD, as invoked
	SaleDate     string `json:"sale_date"` // YYYY-MM-DD, as stored
	Status       Status `json:"status"`
	RowsInserted int    `json:"rows_inserted"`
	TotalRows    int    `json:"total_rows"`
	Message      string `json:"message,omitempty"`
}

// DuplicateChecker reports whether sale rows already exist for a date in
// YYYY-MM-DD form.
type DuplicateChecker interface {
	SaleDateExists(ctx context.Context, date string) (bool, error)
}

// ObjectFetcher retrieves one named object from a bucket.
type ObjectFetcher interface {
	Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// Loader inserts filtered records into the relational store.
type Loader interface {
	LoadSales(ctx context.Context, rows []SaleRecord) (LoadResult, error)
}

// Workflow sequences one injection run: validate, duplicate check, extract,
// load, report. It short-circuits on the first terminal condition and never
// lets a storage or extraction error escape past Run.
type Workflow struct {
	Checker DuplicateChecker
	Fetcher ObjectFetcher
	Loader  Loader

	Bucket string
	Key    string

	Logger *slog.Logger
}

// Run executes the workflow for one YYYYMMDD date and returns the terminal
// report. Exactly one date per run; concurrent runs for the same date are
// not coordinated here; the store's primary-key conflict suppression is
// the only backstop if the duplicate check races.
func (w *Workflow) Run(ctx context.Context, date string) Report {
	log := w.logger()
	rep := Report{
		RunID: uuid.NewString(),
		Date:  date,
	}
	log = log.With("run_id", rep.RunID, "date", date)

	if !ValidateDate(date) {
		rep.Status = StatusRejected
		rep.Message = (&ValidationError{Date: date}).Error()
		log.Warn("date rejected", "reason", rep.Message)
		return rep
	}
	rep.SaleDate = FormatDate(date)
	log = log.With("sale_date", rep.SaleDate)

	exists, err := w.Checker.SaleDateExists(ctx, rep.SaleDate)
	if err != nil {
		return w.fail(log, rep, err)
	}
	if exists {
		rep.Status = StatusSkippedExisting
		rep.Message = fmt.Sprintf("sale rows for %s already loaded", rep.SaleDate)
		log.Warn("run skipped", "reason", "date already loaded")
		return rep
	}

	log.Info("fetching extract", "bucket", w.Bucket, "key", w.Key)
	body, err := w.Fetcher.Fetch(ctx, w.Bucket, w.Key)
	if err != nil {
		return w.fail(log, rep, &ExtractionError{Bucket: w.Bucket, Key: w.Key, Err: err})
	}
	rows, err := FilterExtract(body, rep.SaleDate)
	body.Close()
	if err != nil {
		return w.fail(log, rep, &ExtractionError{Bucket: w.Bucket, Key: w.Key, Err: err})
	}
	if len(rows) == 0 {
		rep.Status = StatusSkippedNoData
		rep.Message = fmt.Sprintf("no rows for %s in extract", rep.SaleDate)
		log.Warn("run skipped", "reason", "no rows after filtering")
		return rep
	}

	log.Info("loading rows", "rows", len(rows))
	res, err := w.Loader.LoadSales(ctx, rows)
	if err != nil {
		return w.fail(log, rep, err)
	}

	rep.Status = StatusCompleted
	rep.RowsInserted = res.RowsInserted
	rep.TotalRows = res.TotalRows
	rep.Message = res.Message
	log.Info("run completed", "rows_inserted", rep.RowsInserted, "total_rows", rep.TotalRows)
	return rep
}

// fail maps a run-level error to the failed terminal state. Raw storage and
// extraction errors stop here; callers only ever see the report.
func (w *Workflow) fail(log *slog.Logger, rep Report, err error) Report {
	rep.Status = StatusFailed
	rep.Message = err.Error()
	log.Error("run failed", "error", err)
	return rep
}

func (w *Workflow) logger() *slog.Logger {
	if w.Logger != nil {
		return w.Logger
	}
	return slog.Default()
}
