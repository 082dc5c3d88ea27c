package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/wxsched/internal/engine"
	"github.com/five82/wxsched/internal/executor"
	"github.com/five82/wxsched/internal/history"
	"github.com/five82/wxsched/internal/schedule"
	"github.com/five82/wxsched/internal/state"
)

const (
	defaultPollInterval    = time.Second
	defaultExecutorTimeout = 30 * time.Second
	commandQueue           = 8
)

// Command is a request from the monitor or another goroutine to the poll
// loop.
type Command int

const (
	CommandForceDisconnect Command = iota
	CommandQuit
)

var errQuit = errors.New("quit requested")

// Poller owns the engine and drives it from a single goroutine.
type Poller struct {
	engine   *engine.Engine
	exec     executor.Executor
	history  *history.Store
	store    *state.Store
	settings *settingsWatcher
	timeout  time.Duration
	interval time.Duration
	commands chan Command
}

// PollerOptions configure a Poller. History and Settings are optional.
type PollerOptions struct {
	Engine          *engine.Engine
	Executor        executor.Executor
	History         *history.Store
	Store           *state.Store
	SettingsPath    string
	ExecutorTimeout time.Duration
	Interval        time.Duration
}

// NewPoller builds a poller.
func NewPoller(opts PollerOptions) *Poller {
	p := &Poller{
		engine:   opts.Engine,
		exec:     opts.Executor,
		history:  opts.History,
		store:    opts.Store,
		timeout:  opts.ExecutorTimeout,
		interval: opts.Interval,
		commands: make(chan Command, commandQueue),
	}
	if p.timeout <= 0 {
		p.timeout = defaultExecutorTimeout
	}
	if p.interval <= 0 {
		p.interval = defaultPollInterval
	}
	if p.store == nil {
		p.store = &state.Store{}
	}
	if opts.SettingsPath != "" {
		p.settings = newSettingsWatcher(opts.SettingsPath)
	}
	return p
}

// Send queues a command for the next tick. It reports false when the queue
// is full.
func (p *Poller) Send(cmd Command) bool {
	select {
	case p.commands <- cmd:
		return true
	default:
		return false
	}
}

// Run ticks until ctx is cancelled or a quit command arrives. It returns an
// error only for failures the loop cannot recover from, such as an unknown
// timezone.
func (p *Poller) Run(ctx context.Context) error {
	if p.settings != nil {
		p.settings.prime()
	}
	p.refreshSchedule(time.Now())

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		if err := p.step(ctx, time.Now()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (p *Poller) step(ctx context.Context, now time.Time) error {
	res, err := p.engine.TickAt(now)
	if err != nil {
		p.store.Update(res.ClockText, err)
		if errors.Is(err, schedule.ErrUnknownZone) {
			return err
		}
		log.Error("tick failed", "err", err)
	}

	var tickErr error
	if res.LogErr != nil {
		tickErr = res.LogErr
		log.Warn("read access log", "err", res.LogErr)
	}
	if lh := res.LastHeard; lh != nil {
		if lh.Changed {
			p.store.SetLastHeard(lh.Plain)
		}
		if lh.WriteErr != nil {
			tickErr = lh.WriteErr
			log.Warn("write last heard page", "err", lh.WriteErr)
		}
	}

	if res.Due != nil {
		p.execute(ctx, executor.EventRequest(*res.Due), res.ClockText)
	}
	if quit := p.drain(ctx, res.ClockText); quit {
		return errQuit
	}

	reloaded := false
	if p.settings != nil {
		store, changed, rerr := p.settings.check()
		switch {
		case rerr != nil:
			tickErr = rerr
			log.Warn("reload settings", "err", rerr)
		case changed:
			p.engine.ReplaceSchedule(store)
			reloaded = true
			log.Info("schedule reloaded", "events", store.Len())
		}
	}
	if reloaded || res.MinuteChanged {
		p.refreshSchedule(now)
	}

	if err == nil {
		p.store.Update(res.ClockText, tickErr)
	}
	return nil
}

func (p *Poller) drain(ctx context.Context, clockText string) bool {
	for {
		select {
		case cmd := <-p.commands:
			switch cmd {
			case CommandQuit:
				return true
			case CommandForceDisconnect:
				p.execute(ctx, executor.DisconnectRequest(), clockText)
			}
		default:
			return false
		}
	}
}

// execute runs req with a deadline and records the outcome. Executor
// errors become history text and never stop the loop.
func (p *Poller) execute(ctx context.Context, req executor.Request, clockText string) {
	summary := req.Summary()
	log.Info("executing", "request", summary)

	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	res, err := p.exec.Execute(callCtx, req)
	cancel()

	entry := history.Entry{
		At:        time.Now(),
		ClockText: clockText,
		Request:   summary,
		Status:    res.Status,
		OK:        err == nil,
	}
	if err != nil {
		entry.Status = fmt.Sprintf("EXCEPTION during: %s: %v", summary, err)
		log.Error("execute failed", "request", summary, "kind", executor.KindOf(err), "err", err)
	} else {
		log.Info("executed", "request", summary, "status", res.Status)
	}

	if p.history != nil {
		saved, herr := p.history.Append(ctx, entry)
		if herr != nil {
			log.Warn("record history", "err", herr)
		} else {
			entry = saved
		}
	}
	p.store.AddHistory(entry)
}

func (p *Poller) refreshSchedule(now time.Time) {
	p.store.SetSchedule(ScheduleLines(p.engine.Schedule(), now))
}

// ScheduleLines lists the events in key order with their next run after now.
// Events whose next run cannot be computed get a zero time.
func ScheduleLines(s *schedule.Store, now time.Time) []state.ScheduleLine {
	events := s.Events()
	lines := make([]state.ScheduleLine, 0, len(events))
	for _, e := range events {
		next, err := schedule.NextRun(e, now)
		if err != nil {
			log.Debug("next run", "event", e.Key(), "err", err)
		}
		lines = append(lines, state.ScheduleLine{Summary: e.Summary(), NextRun: next})
	}
	return lines
}
