// Package ingest implements the daily sales injection workflow.
//
// One run handles exactly one target date: validate the date, check whether
// the store already holds sale rows for it, fetch and filter the CSV
// extract, and load the surviving rows through the conflict-tolerant
// four-table upsert. Each step can short-circuit the run into a terminal
// state; the orchestrator reports the state to its caller instead of
// raising.
//
// Storage and object-store access live behind the DuplicateChecker,
// ObjectFetcher and Loader interfaces so the workflow is testable without
// either backend.
package ingest
