package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/five82/wxsched/internal/app"
	"github.com/five82/wxsched/internal/executor"
	"github.com/five82/wxsched/internal/history"
	"github.com/five82/wxsched/internal/schedule"
)

func newDisconnectCommand(opts *globalOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "disconnect",
		Short: "Force the gateway to disconnect now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			exec, _, err := app.NewExecutor(s.cfg, dryRun)
			if err != nil {
				return fmt.Errorf("init executor: %w", err)
			}

			req := executor.DisconnectRequest()
			ctx, cancel := context.WithTimeout(cmd.Context(), s.cfg.ExecutorTimeout)
			res, execErr := exec.Execute(ctx, req)
			cancel()

			entry := history.Entry{
				At:      now(),
				Request: req.Summary(),
				Status:  res.Status,
				OK:      execErr == nil,
			}
			if m, err := schedule.NewClock(now).Now(s.cfg.DisplayTimezone); err == nil {
				entry.ClockText = m.Text()
			}
			if execErr != nil {
				entry.Status = fmt.Sprintf("EXCEPTION during: %s: %v", req.Summary(), execErr)
			}
			recordHistory(cmd.Context(), s.cfg.HistoryDB, entry)

			if execErr != nil {
				return execErr
			}
			color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), res.Status)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log the request instead of sending it")
	return cmd
}

func recordHistory(ctx context.Context, path string, e history.Entry) {
	hist, err := history.Open(path)
	if err != nil {
		log.Warn("open history", "err", err)
		return
	}
	defer func() { _ = hist.Close() }()
	if _, err := hist.Append(ctx, e); err != nil {
		log.Warn("record history", "err", err)
	}
}

func newHistoryCommand(opts *globalOptions) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently executed actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			hist, err := history.Open(s.cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer func() { _ = hist.Close() }()
			entries, err := hist.Recent(cmd.Context(), count)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No actions recorded.")
				return nil
			}
			failed := color.New(color.FgRed)
			for _, e := range entries {
				if e.OK {
					fmt.Fprintln(out, e.Line())
				} else {
					failed.Fprintln(out, e.Line())
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 20, "number of entries to show")
	return cmd
}
