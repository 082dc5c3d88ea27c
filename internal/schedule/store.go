package schedule

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned when a selected event is not in the store.
var ErrNotFound = errors.New("event not found")

// Store holds the scheduled events keyed by Key.String. It is not safe for
// concurrent use; the poll loop owns it.
type Store struct {
	events map[string]Event
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{events: make(map[string]Event)}
}

// Load builds a store from raw settings entries. Entries whose key is not a
// schedule key are ignored. Malformed entries are skipped and reported.
func Load(entries map[string][]string) (*Store, []error) {
	s := NewStore()
	var errs []error
	for _, k := range sortedKeys(entries) {
		if !IsKey(k) {
			continue
		}
		ev, err := decodeEntry(k, entries[k])
		if err != nil {
			errs = append(errs, fmt.Errorf("schedule entry %s: %w", k, err))
			continue
		}
		s.events[k] = ev
	}
	return s, errs
}

func decodeEntry(key string, rec []string) (Event, error) {
	if _, err := ParseKey(key); err != nil {
		return Event{}, err
	}
	d, err := DraftFromRecord(rec)
	if err != nil {
		return Event{}, err
	}
	ev, err := Build(d)
	if err != nil {
		return Event{}, err
	}
	if got := ev.Key().String(); got != key {
		return Event{}, fmt.Errorf("record describes %s", got)
	}
	return ev, nil
}

// Put inserts or replaces an event. When an event with the same key existed
// the returned warning names both; otherwise it is empty.
func (s *Store) Put(e Event) string {
	k := e.Key().String()
	old, existed := s.events[k]
	s.events[k] = e
	if !existed {
		return ""
	}
	return fmt.Sprintf("WARNING: Replaced [%s; %s] with [%s; %s]",
		old.Summary(), old.Parameters(), e.Summary(), e.Parameters())
}

// Add validates a draft and stores the resulting event.
func (s *Store) Add(d Draft) (Event, string, error) {
	e, err := Build(d)
	if err != nil {
		return Event{}, "", err
	}
	return e, s.Put(e), nil
}

// Get returns the event stored under k.
func (s *Store) Get(k Key) (Event, bool) {
	e, ok := s.events[k.String()]
	return e, ok
}

// Delete removes the event stored under k and reports whether it existed.
func (s *Store) Delete(k Key) bool {
	ks := k.String()
	if _, ok := s.events[ks]; !ok {
		return false
	}
	delete(s.events, ks)
	return true
}

// DeleteSummary removes the event a summary line refers to.
func (s *Store) DeleteSummary(summary string) (Event, error) {
	k, err := DecodeSummary(summary)
	if err != nil {
		return Event{}, err
	}
	e, ok := s.Get(k)
	if !ok {
		return Event{}, fmt.Errorf("%w: %s", ErrNotFound, k)
	}
	s.Delete(k)
	return e, nil
}

// Len returns the number of stored events.
func (s *Store) Len() int { return len(s.events) }

// Events returns the stored events in key order.
func (s *Store) Events() []Event {
	out := make([]Event, 0, len(s.events))
	for _, k := range sortedKeys(s.events) {
		out = append(out, s.events[k])
	}
	return out
}

// Summaries returns Event.Summary for every event in key order.
func (s *Store) Summaries() []string {
	events := s.Events()
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Summary()
	}
	return out
}

// Entries returns the persisted form of the store.
func (s *Store) Entries() map[string][]string {
	out := make(map[string][]string, len(s.events))
	for k, e := range s.events {
		out[k] = e.Draft().Record()
	}
	return out
}

// Clone returns an independent copy.
func (s *Store) Clone() *Store {
	c := NewStore()
	for k, e := range s.events {
		c.events[k] = e
	}
	return c
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
