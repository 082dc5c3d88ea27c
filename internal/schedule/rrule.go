package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

var ruleDays = [...]rrule.Weekday{
	Sunday:    rrule.SU,
	Monday:    rrule.MO,
	Tuesday:   rrule.TU,
	Wednesday: rrule.WE,
	Thursday:  rrule.TH,
	Friday:    rrule.FR,
	Saturday:  rrule.SA,
}

// ruleOption describes e as an RFC 5545 recurrence starting at dtstart.
func ruleOption(e Event, dtstart time.Time) rrule.ROption {
	opt := rrule.ROption{
		Freq:     rrule.DAILY,
		Dtstart:  dtstart,
		Byhour:   []int{e.Hour},
		Byminute: []int{e.Minute},
		Bysecond: []int{0},
	}
	if e.Weekday == AnyDay {
		return opt
	}
	day := ruleDays[e.Weekday]
	if e.Occurrence == Every {
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{day}
		return opt
	}
	opt.Freq = rrule.MONTHLY
	opt.Byweekday = []rrule.Weekday{day.Nth(int(e.Occurrence))}
	return opt
}

// RuleString returns the RRULE value for e, e.g. "FREQ=MONTHLY;BYDAY=2MO;...".
func RuleString(e Event) string {
	opt := ruleOption(e, time.Time{})
	return opt.RRuleString()
}

// NextRun returns the first time strictly after after at which e fires.
func NextRun(e Event, after time.Time) (time.Time, error) {
	loc, err := LoadZone(e.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	a := after.In(loc)
	start := time.Date(a.Year(), a.Month(), 1, 0, 0, 0, 0, loc)
	r, err := rrule.NewRRule(ruleOption(e, start))
	if err != nil {
		return time.Time{}, fmt.Errorf("build rule for %s: %w", e.Key(), err)
	}
	next := r.After(a, false)
	if next.IsZero() {
		return time.Time{}, errors.New("no further occurrences")
	}
	return next, nil
}
