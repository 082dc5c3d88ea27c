package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/five82/wxsched/internal/config"
)

func newConfigCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}
	cmd.AddCommand(newConfigShowCommand(opts), newConfigSetCommand(opts))
	return cmd
}

func newConfigShowCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			for _, key := range s.doc.Unknown {
				warn(cmd.ErrOrStderr(), "unknown setting %q is ignored", key)
			}
			cfg := s.cfg
			values := map[string]string{
				config.KeyTheme:           cfg.Theme,
				config.KeyWXApplication:   cfg.WXApplication,
				config.KeyAccessLog:       cfg.AccessLog,
				config.KeyLastHeardHTML:   cfg.LastHeardHTML,
				config.KeyDisplayTimezone: cfg.DisplayTimezone,
				config.KeyExecutorURL:     cfg.ExecutorURL,
				config.KeyExecutorTimeout: fmt.Sprint(int(cfg.ExecutorTimeout.Seconds())),
				config.KeyHistoryDB:       cfg.HistoryDB,
				config.KeyListen:          cfg.Listen,
				config.KeyLogLevel:        cfg.LogLevel,
				config.KeyLogFile:         cfg.LogFile,
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "file\t%s\n", s.doc.Path)
			for _, key := range config.Keys() {
				fmt.Fprintf(w, "%s\t%s\n", key, values[key])
			}
			fmt.Fprintf(w, "events\t%d\n", s.schedule.Len())
			return w.Flush()
		},
	}
}

func newConfigSetCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting and save the file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}
			if err := s.doc.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := s.doc.Save(); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], s.doc.Path)
			return nil
		},
	}
}
