package cli

import (
	"github.com/spf13/cobra"

	"github.com/fashionstore/ingest/internal/config"
	"github.com/fashionstore/ingest/internal/store"
)

// NewInitDBCommand creates the initdb command, which applies the embedded
// sales schema. Safe to re-run: every statement is IF NOT EXISTS.
func NewInitDBCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "initdb",
		Short:         "Create the sales tables if they do not exist",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(rootOpts, cmd.ErrOrStderr())

			cfg, err := config.Load(rootOpts.Config)
			if err != nil {
				return WrapExitError(ExitUsage, "load configuration", err)
			}
			if cfg.DatabaseURL == "" {
				return NewExitError(ExitUsage, "missing required configuration: DATABASE_URL")
			}

			st, err := store.Open("postgres", cfg.DatabaseURL, log)
			if err != nil {
				return WrapExitError(ExitFailure, "connect to database", err)
			}
			defer st.Close()

			if err := st.EnsureSchema(cmd.Context()); err != nil {
				return WrapExitError(ExitFailure, "apply schema", err)
			}
			log.Info("sales schema ready")
			return nil
		},
	}
	return cmd
}
