// Package cli defines the wxsched command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/five82/wxsched/internal/config"
	"github.com/five82/wxsched/internal/logging"
	"github.com/five82/wxsched/internal/schedule"
)

// now is replaced in tests.
var now = time.Now

type globalOptions struct {
	configPath string
	prefsPath  string
}

// NewRootCommand builds the wxsched command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "wxsched",
		Short:         "Schedule Wires-X gateway actions and publish a last heard list",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "settings file (default "+config.DefaultPath+")")
	root.PersistentFlags().StringVar(&opts.prefsPath, "prefs", "", "preferences file (default ~/.config/wxsched/prefs.toml)")

	root.AddCommand(
		newRunCommand(opts),
		newScheduleCommand(opts),
		newLastHeardCommand(opts),
		newDisconnectCommand(opts),
		newHistoryCommand(opts),
		newConfigCommand(opts),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, version string, args []string) int {
	root := NewRootCommand(version)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	var verr *schedule.ValidationError
	if errors.As(err, &verr) {
		red.Fprintln(w, "wxsched: the event is not valid:")
		for _, p := range verr.Problems {
			fmt.Fprintf(w, "  - %s\n", p)
		}
		return
	}
	red.Fprintf(w, "wxsched: %v\n", err)
}

func warn(w io.Writer, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(w, format+"\n", args...)
}

// settings is the loaded settings document with its schedule.
type settings struct {
	doc      *config.Document
	cfg      config.Config
	schedule *schedule.Store
}

func loadSettings(cmd *cobra.Command, opts *globalOptions) (*settings, error) {
	doc, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	cfg := doc.Config()
	log.SetLevel(logging.ParseLevel(cfg.LogLevel))
	store, errs := schedule.Load(doc.Schedule)
	for _, e := range errs {
		warn(cmd.ErrOrStderr(), "skipping %v", e)
	}
	return &settings{doc: doc, cfg: cfg, schedule: store}, nil
}
