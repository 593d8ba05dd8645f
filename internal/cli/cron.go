package cli

import (
	"github.com/spf13/cobra"
)

// CronOptions holds flags and the clock for the cron command.
type CronOptions struct {
	*RootOptions

	// Clock is overridable for tests; nil means the system clock.
	Clock Clock
}

// NewCronCommand creates the cron command: the scheduled-harness adapter.
// It derives the target date from the clock instead of an argument: for a
// daily schedule firing after midnight, the data day is the previous
// calendar day.
func NewCronCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CronOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "cron",
		Short: "Run the injection for the previous calendar day",
		Long: `Run the injection workflow for yesterday's date.

Intended for scheduled invocation (cron, systemd timer, workflow
orchestrator): the target date is derived from the current time, matching
a daily schedule where each firing loads the day that just ended.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd, opts.RootOptions, CronDate(opts.clock()))
		},
	}
	return cmd
}

func (o *CronOptions) clock() Clock {
	if o.Clock != nil {
		return o.Clock
	}
	return systemClock{}
}

// CronDate formats the previous calendar day of now as YYYYMMDD.
func CronDate(c Clock) string {
	return c.Now().AddDate(0, 0, -1).Format("20060102")
}
