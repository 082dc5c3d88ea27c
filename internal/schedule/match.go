package schedule

// ZoneClock is the part of Clock the matcher needs.
type ZoneClock interface {
	Now(zone string) (Moment, error)
}

// Matches reports whether e fires at m, which must be in e's zone.
func (e Event) Matches(m Moment) bool {
	if e.Hour != m.Hour || e.Minute != m.Minute {
		return false
	}
	if e.Weekday != AnyDay && e.Weekday != m.Weekday {
		return false
	}
	return e.Occurrence == Every || e.Occurrence == m.Nth
}

// DueEvent returns the first event, in key order, that fires at the current
// minute in its own timezone, or nil when none does. A zone lookup failure
// is returned as is and wraps ErrUnknownZone.
func DueEvent(s *Store, clock ZoneClock) (*Event, error) {
	for _, e := range s.Events() {
		m, err := clock.Now(e.Timezone)
		if err != nil {
			return nil, err
		}
		if e.Matches(m) {
			return &e, nil
		}
	}
	return nil, nil
}
