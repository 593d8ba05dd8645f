package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fashionstore/ingest/internal/config"
	"github.com/fashionstore/ingest/internal/ingest"
	"github.com/fashionstore/ingest/internal/objstore"
	"github.com/fashionstore/ingest/internal/store"
)

// NewRunCommand creates the run command: the operator-facing adapter that
// takes the target date as its sole positional argument.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <date>",
		Short: "Run one injection for a YYYYMMDD date",
		Long: `Run the injection workflow for one target date.

The date is given in YYYYMMDD form. The run short-circuits when sale rows
for that date are already loaded, or when the extract holds no rows for it.

Example:
  ingest run 20230615
  ingest run 20230615 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

// executeRun wires the workflow collaborators and runs one date. Both
// invocation adapters (run and cron) end up here, so the orchestrator
// exists exactly once.
func executeRun(cmd *cobra.Command, opts *RootOptions, date string) error {
	log := newLogger(opts, cmd.ErrOrStderr())

	// Validation happens before any connection is opened; an invalid date
	// must abort with zero I/O.
	if !ingest.ValidateDate(date) {
		wf := &ingest.Workflow{Logger: log}
		rep := wf.Run(cmd.Context(), date)
		if err := WriteReport(cmd.OutOrStdout(), opts.Format, rep); err != nil {
			return WrapExitError(ExitFailure, "write report", err)
		}
		return NewExitError(ExitUsage, rep.Message)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitUsage, "load configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return WrapExitError(ExitUsage, "configuration", err)
	}

	st, err := store.Open("postgres", cfg.DatabaseURL, log)
	if err != nil {
		return WrapExitError(ExitFailure, "connect to database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	oc, err := objstore.New(objstore.Config{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "connect to object store", err)
	}

	wf := &ingest.Workflow{
		Checker: st,
		Fetcher: oc,
		Loader:  st,
		Bucket:  cfg.Bucket,
		Key:     cfg.ObjectKey,
		Logger:  log,
	}
	rep := wf.Run(cmd.Context(), date)

	if err := WriteReport(cmd.OutOrStdout(), opts.Format, rep); err != nil {
		return WrapExitError(ExitFailure, "write report", err)
	}

	switch rep.Status {
	case ingest.StatusFailed:
		return NewExitError(ExitFailure, rep.Message)
	case ingest.StatusRejected:
		return NewExitError(ExitUsage, rep.Message)
	default:
		logOutcome(log, rep)
		return nil
	}
}

func logOutcome(log *slog.Logger, rep ingest.Report) {
	switch rep.Status {
	case ingest.StatusCompleted:
		log.Info("SUCCESS", "rows_inserted", rep.RowsInserted, "sale_date", rep.SaleDate)
	default:
		log.Info("SKIPPED", "reason", rep.Message, "sale_date", rep.SaleDate)
	}
}
