package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/wxsched/internal/lastheard"
	"github.com/five82/wxsched/internal/logtail"
)

func newLastHeardCommand(opts *globalOptions) *cobra.Command {
	var (
		write bool
		raw   bool
		tail  int
	)
	cmd := &cobra.Command{
		Use:   "lastheard",
		Short: "Print the last heard list from the access log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			if raw {
				return printRawLog(cmd, s.cfg.AccessLog, tail)
			}
			target := ""
			if write {
				target = s.cfg.LastHeardHTML
			}
			res, err := lastheard.NewDiffer(target).Refresh(s.cfg.AccessLog)
			if err != nil {
				return fmt.Errorf("read access log: %w", err)
			}
			out := cmd.OutOrStdout()
			if !res.Changed {
				fmt.Fprintf(out, "No access log at %s\n", s.cfg.AccessLog)
				return nil
			}
			for _, msg := range res.Diagnostics {
				warn(cmd.ErrOrStderr(), "%s", msg)
			}
			for _, line := range res.Plain {
				fmt.Fprintln(out, line)
			}
			if res.WriteErr != nil {
				return res.WriteErr
			}
			if write && target != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", target)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "also write the HTML last heard page")
	cmd.Flags().BoolVar(&raw, "raw", false, "print access log lines as recorded")
	cmd.Flags().IntVarP(&tail, "tail", "n", 20, "with --raw, number of lines from the end (0 for all)")
	return cmd
}

func printRawLog(cmd *cobra.Command, path string, tail int) error {
	lines, err := logtail.Read(path, tail)
	if err != nil {
		return fmt.Errorf("read access log: %w", err)
	}
	out := cmd.OutOrStdout()
	if lines == nil {
		fmt.Fprintf(out, "No access log at %s\n", path)
		return nil
	}
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
	return nil
}
