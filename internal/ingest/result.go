package ingest

import "fmt"

// LoadStatus describes the outcome of one load call.
type LoadStatus string

const (
	// LoadLoaded: the batch transaction committed.
	LoadLoaded LoadStatus = "loaded"

	// LoadSkipped: the input was empty; no database access happened.
	LoadSkipped LoadStatus = "skipped"
)

// RowOutcome is the structured result of one row's four-insert sequence.
// Err is nil when all four inserts ran without error.
type RowOutcome struct {
	Index  int
	SaleID string
	ItemID string
	Err    error
}

// LoadResult summarizes one load: per-row outcomes plus counts derived from
// them. RowsInserted counts rows whose whole insert sequence succeeded;
// failed rows are skipped, never retried, and never fail the run.
type LoadResult struct {
	Status       LoadStatus
	RowsInserted int
	TotalRows    int
	Message      string
	Outcomes     []RowOutcome
}

// SummarizeOutcomes builds a LoadResult from structured row outcomes, so
// counts come from the accumulator rather than side-effect counters.
func SummarizeOutcomes(outcomes []RowOutcome) LoadResult {
	res := LoadResult{
		Status:    LoadLoaded,
		TotalRows: len(outcomes),
		Outcomes:  outcomes,
	}
	for _, o := range outcomes {
		if o.Err == nil {
			res.RowsInserted++
		}
	}
	res.Message = fmt.Sprintf("%d/%d rows inserted", res.RowsInserted, res.TotalRows)
	return res
}
