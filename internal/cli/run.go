package cli

import (
	"github.com/spf13/cobra"

	"github.com/five82/wxsched/internal/app"
)

func newRunCommand(opts *globalOptions) *cobra.Command {
	var (
		headless bool
		dryRun   bool
		poll     int
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scheduler with the terminal monitor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: opts.configPath,
				PrefsPath:  opts.prefsPath,
				PollEvery:  poll,
				Headless:   headless,
				DryRun:     dryRun,
			})
		},
	}
	cmd.Flags().BoolVar(&headless, "headless", false, "run without the terminal monitor")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log actions instead of sending them to the executor")
	cmd.Flags().IntVar(&poll, "poll", 0, "poll interval in seconds (default 1)")
	return cmd
}
