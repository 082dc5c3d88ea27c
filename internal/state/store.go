package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/wxsched/internal/history"
)

// MaxHistory bounds the execution history kept in memory.
const MaxHistory = 50

// ScheduleLine is one schedule entry as displayed.
type ScheduleLine struct {
	Summary string    `json:"summary"`
	NextRun time.Time `json:"next_run"`
}

// Snapshot represents the latest data available to the monitor and the
// status server.
type Snapshot struct {
	ClockText           string
	LastHeard           []string        // oldest first
	History             []history.Entry // newest first
	Schedule            []ScheduleLine
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // consecutive ticks that reported an error
}

// IsDegraded returns true when several ticks in a row failed.
func (s Snapshot) IsDegraded() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent access to the snapshot. The poll loop is the
// only writer.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update records the outcome of one tick. When err is non-nil the previous
// data is kept but the error is recorded for visibility.
func (s *Store) Update(clockText string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if clockText != "" {
		s.snapshot.ClockText = clockText
	}
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// SetLastHeard replaces the last heard listing.
func (s *Store) SetLastHeard(lines []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastHeard = clone(lines)
}

// SetSchedule replaces the schedule listing.
func (s *Store) SetSchedule(lines []ScheduleLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Schedule = clone(lines)
}

// SetHistory replaces the history, newest first.
func (s *Store) SetHistory(entries []history.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(entries) > MaxHistory {
		entries = entries[:MaxHistory]
	}
	s.snapshot.History = clone(entries)
}

// AddHistory puts e at the front of the history.
func (s *Store) AddHistory(e history.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := append([]history.Entry{e}, s.snapshot.History...)
	if len(h) > MaxHistory {
		h = h[:MaxHistory]
	}
	s.snapshot.History = h
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.LastHeard = clone(s.snapshot.LastHeard)
	snap.History = clone(s.snapshot.History)
	snap.Schedule = clone(s.snapshot.Schedule)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func clone[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
