package app

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/wxsched/internal/config"
	"github.com/five82/wxsched/internal/engine"
	"github.com/five82/wxsched/internal/executor"
	"github.com/five82/wxsched/internal/history"
	"github.com/five82/wxsched/internal/logging"
	"github.com/five82/wxsched/internal/prefs"
	"github.com/five82/wxsched/internal/schedule"
	"github.com/five82/wxsched/internal/state"
	"github.com/five82/wxsched/internal/ui"
	"github.com/five82/wxsched/internal/web"
)

// Options configure the wxsched application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/wxsched/prefs.toml
	PollEvery  int    // seconds; zero uses default
	Headless   bool   // run the poll loop without the monitor
	DryRun     bool   // never call the executor agent
}

// Run loads the settings and drives the scheduler until the context is
// cancelled or the user quits the monitor.
func Run(ctx context.Context, opts Options) error {
	doc, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	cfg := doc.Config()

	logFile := cfg.LogFile
	if logFile == "" && !opts.Headless {
		logFile, _ = config.ExpandPath(config.DefaultMonitorLogFile)
	}
	closer, err := logging.Setup(cfg.LogLevel, logFile)
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	for _, key := range doc.Unknown {
		log.Warn("ignoring unknown setting", "key", key)
	}
	store, errs := schedule.Load(doc.Schedule)
	for _, e := range errs {
		log.Warn("skipping schedule entry", "err", e)
	}

	eng, err := engine.New(engine.Options{
		DisplayZone:   cfg.DisplayTimezone,
		AccessLog:     cfg.AccessLog,
		LastHeardHTML: cfg.LastHeardHTML,
	}, store)
	if err != nil {
		return err
	}

	exec, dryRun, err := NewExecutor(cfg, opts.DryRun)
	if err != nil {
		return fmt.Errorf("init executor: %w", err)
	}

	hist, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer func() { _ = hist.Close() }()

	st := &state.Store{}
	if recent, err := hist.Recent(ctx, state.MaxHistory); err != nil {
		log.Warn("load history", "err", err)
	} else {
		st.SetHistory(recent)
	}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}
	poller := NewPoller(PollerOptions{
		Engine:          eng,
		Executor:        exec,
		History:         hist,
		Store:           st,
		SettingsPath:    doc.Path,
		ExecutorTimeout: cfg.ExecutorTimeout,
		Interval:        interval,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Listen != "" {
		srv := web.New(st, cfg.LastHeardHTML)
		go func() {
			if err := srv.Serve(ctx, cfg.Listen); err != nil {
				log.Error("status server stopped", "err", err)
			}
		}()
	}

	log.Info("wxsched started", "events", store.Len(), "zone", cfg.DisplayTimezone, "dry_run", dryRun)
	if opts.Headless {
		return poller.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- poller.Run(ctx)
		// Stops the monitor when the loop fails.
		cancel()
	}()

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	uiErr := ui.Run(ui.Options{
		Context:    ctx,
		Store:      st,
		PollTick:   ui.DefaultUIInterval,
		ThemeName:  userPrefs.ThemeOr(cfg.Theme),
		PrefsPath:  opts.PrefsPath,
		DryRun:     dryRun,
		Disconnect: func() bool { return poller.Send(CommandForceDisconnect) },
	})

	if !poller.Send(CommandQuit) {
		cancel()
	}
	if err := <-errCh; err != nil {
		return err
	}
	return uiErr
}

// NewExecutor returns the HTTP executor for cfg, or a dry run executor
// when dryRun is set or no executor URL is configured.
func NewExecutor(cfg config.Config, dryRun bool) (executor.Executor, bool, error) {
	if dryRun || cfg.ExecutorURL == "" {
		return executor.DryRun{}, true, nil
	}
	client, err := executor.NewHTTPClient(cfg.ExecutorURL, cfg.WXApplication, cfg.ExecutorTimeout)
	if err != nil {
		return nil, false, err
	}
	return client, false, nil
}
