// Package engine is the UI-free core of wxsched. One Tick reads the clock,
// refreshes the last heard listing and, when a new minute has started,
// picks the scheduled event that is due.
//
// An Engine is owned by a single goroutine; nothing in it is locked.
package engine

import (
	"fmt"
	"time"

	"github.com/five82/wxsched/internal/lastheard"
	"github.com/five82/wxsched/internal/schedule"
)

// Options configure an Engine.
type Options struct {
	DisplayZone   string
	AccessLog     string
	LastHeardHTML string
	Now           func() time.Time // nil uses time.Now
}

// TickResult is everything one Tick produced.
type TickResult struct {
	Moment    schedule.Moment
	ClockText string

	// MinuteChanged is true when this tick starts a new minute. Due is only
	// evaluated then.
	MinuteChanged bool
	Due           *schedule.Event

	// LastHeard is non-nil when the access log content changed or a pending
	// artifact write was retried.
	LastHeard *lastheard.Result
	LogErr    error
}

// Engine holds the schedule, the clock and the log differ.
type Engine struct {
	now         func() time.Time
	clock       *schedule.Clock
	differ      *lastheard.Differ
	store       *schedule.Store
	displayZone string
	accessLog   string
	lastMinute  string
}

// New validates the display zone and returns an Engine over store.
func New(opts Options, store *schedule.Store) (*Engine, error) {
	zone := opts.DisplayZone
	if zone == "" {
		zone = "Local"
	}
	if _, err := schedule.LoadZone(zone); err != nil {
		return nil, fmt.Errorf("display timezone: %w", err)
	}
	if store == nil {
		store = schedule.NewStore()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		now:         now,
		clock:       schedule.NewClock(now),
		differ:      lastheard.NewDiffer(opts.LastHeardHTML),
		store:       store,
		displayZone: zone,
		accessLog:   opts.AccessLog,
	}, nil
}

// Tick runs one poll step at the current time.
func (e *Engine) Tick() (TickResult, error) {
	return e.TickAt(e.now())
}

// TickAt runs one poll step at t. Every event is judged against the same
// instant.
func (e *Engine) TickAt(t time.Time) (TickResult, error) {
	now := clockFunc(func(zone string) (schedule.Moment, error) {
		return e.clock.At(t, zone)
	})
	var res TickResult
	m, err := now.Now(e.displayZone)
	if err != nil {
		return res, err
	}
	res.Moment = m
	res.ClockText = m.Text()

	if e.accessLog != "" {
		lh, err := e.differ.Refresh(e.accessLog)
		switch {
		case err != nil:
			res.LogErr = err
		case lh.Changed, lh.WriteErr != nil:
			res.LastHeard = &lh
		}
	}

	minute := m.MinuteText()
	if minute == e.lastMinute {
		return res, nil
	}
	primed := e.lastMinute != ""
	e.lastMinute = minute
	if !primed {
		return res, nil
	}
	res.MinuteChanged = true

	due, err := schedule.DueEvent(e.store, now)
	if err != nil {
		return res, fmt.Errorf("evaluate schedule: %w", err)
	}
	res.Due = due
	return res, nil
}

// ReplaceSchedule swaps in a new schedule, e.g. after the settings file was
// edited.
func (e *Engine) ReplaceSchedule(store *schedule.Store) {
	if store == nil {
		store = schedule.NewStore()
	}
	e.store = store
}

// Schedule returns the schedule the engine evaluates.
func (e *Engine) Schedule() *schedule.Store { return e.store }

// LastHeard returns the last good plain projection.
func (e *Engine) LastHeard() []string { return e.differ.Plain() }

type clockFunc func(zone string) (schedule.Moment, error)

func (f clockFunc) Now(zone string) (schedule.Moment, error) { return f(zone) }
