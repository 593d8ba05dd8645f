package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	exists bool
	err    error
	calls  int
}

func (f *fakeChecker) SaleDateExists(ctx context.Context, date string) (bool, error) {
	f.calls++
	return f.exists, f.err
}

type fakeFetcher struct {
	data  string
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.data)), nil
}

type fakeLoader struct {
	err   error
	got   []SaleRecord
	calls int
}

func (f *fakeLoader) LoadSales(ctx context.Context, rows []SaleRecord) (LoadResult, error) {
	f.calls++
	f.got = rows
	if f.err != nil {
		return LoadResult{}, f.err
	}
	outcomes := make([]RowOutcome, len(rows))
	for i, r := range rows {
		outcomes[i] = RowOutcome{Index: i, SaleID: r.SaleID, ItemID: r.ItemID}
	}
	return SummarizeOutcomes(outcomes), nil
}

func testWorkflow(checker *fakeChecker, fetcher *fakeFetcher, loader *fakeLoader) *Workflow {
	return &Workflow{
		Checker: checker,
		Fetcher: fetcher,
		Loader:  loader,
		Bucket:  "sales",
		Key:     "fashion_store_sales.csv",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestWorkflow_RejectsInvalidDate(t *testing.T) {
	// Nil collaborators: a rejected date must short-circuit before any of
	// them is touched.
	wf := &Workflow{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	rep := wf.Run(context.Background(), "2023-06-15")
	require.Equal(t, StatusRejected, rep.Status)
	require.Contains(t, rep.Message, "YYYYMMDD")
	require.NotEmpty(t, rep.RunID)
}

func TestWorkflow_SkippedExistingWithoutFetch(t *testing.T) {
	checker := &fakeChecker{exists: true}
	fetcher := &fakeFetcher{}
	loader := &fakeLoader{}
	wf := testWorkflow(checker, fetcher, loader)

	rep := wf.Run(context.Background(), "20230615")
	require.Equal(t, StatusSkippedExisting, rep.Status)
	require.Equal(t, 1, checker.calls)
	require.Zero(t, fetcher.calls, "object store must not be contacted when the date exists")
	require.Zero(t, loader.calls)
}

func TestWorkflow_SkippedNoData(t *testing.T) {
	checker := &fakeChecker{}
	fetcher := &fakeFetcher{data: extractCSV(extractRow("C1", "P1", "S1", "I1", "2023-06-16"))}
	loader := &fakeLoader{}
	wf := testWorkflow(checker, fetcher, loader)

	rep := wf.Run(context.Background(), "20230615")
	require.Equal(t, StatusSkippedNoData, rep.Status)
	require.Zero(t, loader.calls, "no database writes for an empty extract")
}

func TestWorkflow_Completed(t *testing.T) {
	checker := &fakeChecker{}
	fetcher := &fakeFetcher{data: extractCSV(
		extractRow("C1", "P1", "S1", "I1", "2023-06-15"),
		extractRow("C2", "P2", "S2", "I2", "2023-06-15"),
		extractRow("C3", "P3", "S3", "I3", "2023-06-15"),
	)}
	loader := &fakeLoader{}
	wf := testWorkflow(checker, fetcher, loader)

	rep := wf.Run(context.Background(), "20230615")
	require.Equal(t, StatusCompleted, rep.Status)
	require.Equal(t, 3, rep.RowsInserted)
	require.Equal(t, 3, rep.TotalRows)
	require.Equal(t, "2023-06-15", rep.SaleDate)
	require.Len(t, loader.got, 3)
}

func TestWorkflow_FailedOnCheckerError(t *testing.T) {
	checker := &fakeChecker{err: &StorageError{Op: "check", Err: errors.New("connection refused")}}
	fetcher := &fakeFetcher{}
	wf := testWorkflow(checker, fetcher, &fakeLoader{})

	rep := wf.Run(context.Background(), "20230615")
	require.Equal(t, StatusFailed, rep.Status)
	require.Contains(t, rep.Message, "storage check")
	require.Zero(t, fetcher.calls, "a failed existence check is fatal, not a fallback to extraction")
}

func TestWorkflow_FailedOnFetchError(t *testing.T) {
	checker := &fakeChecker{}
	fetcher := &fakeFetcher{err: errors.New("object not found")}
	loader := &fakeLoader{}
	wf := testWorkflow(checker, fetcher, loader)

	rep := wf.Run(context.Background(), "20230615")
	require.Equal(t, StatusFailed, rep.Status)
	require.Contains(t, rep.Message, "extract sales/fashion_store_sales.csv")
	require.Zero(t, loader.calls)
}

func TestWorkflow_FailedOnUnparseableExtract(t *testing.T) {
	checker := &fakeChecker{}
	fetcher := &fakeFetcher{data: "not,a,sales\nextract,at,all\n"}
	wf := testWorkflow(checker, fetcher, &fakeLoader{})

	rep := wf.Run(context.Background(), "20230615")
	require.Equal(t, StatusFailed, rep.Status)
	require.Contains(t, rep.Message, "missing column")
}

func TestWorkflow_FailedOnLoaderError(t *testing.T) {
	checker := &fakeChecker{}
	fetcher := &fakeFetcher{data: extractCSV(extractRow("C1", "P1", "S1", "I1", "2023-06-15"))}
	loader := &fakeLoader{err: &StorageError{Op: "commit", Err: errors.New("server shutdown")}}
	wf := testWorkflow(checker, fetcher, loader)

	rep := wf.Run(context.Background(), "20230615")
	require.Equal(t, StatusFailed, rep.Status)
	require.Contains(t, rep.Message, "storage commit")
}
