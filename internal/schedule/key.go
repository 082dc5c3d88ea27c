package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// KeyPrefix marks schedule entries in the settings document.
const KeyPrefix = "@"

// ErrInvalidSelection is returned when a summary or key cannot be decoded.
var ErrInvalidSelection = errors.New("invalid selection")

// Key identifies a recurrence rule. Its String form sorts by weekday,
// occurrence, hour, minute and then timezone name.
type Key struct {
	Weekday    Weekday
	Occurrence Occurrence
	Hour       int
	Minute     int
	Timezone   string
}

// String encodes the key as "@{weekday}-{occurrence}-{HH}-{MM}-{zone}".
func (k Key) String() string {
	return fmt.Sprintf("%s%d-%d-%02d-%02d-%s", KeyPrefix, int(k.Weekday), int(k.Occurrence), k.Hour, k.Minute, k.Timezone)
}

// IsKey reports whether a settings document key belongs to the schedule.
func IsKey(s string) bool {
	return strings.HasPrefix(s, KeyPrefix)
}

// ParseKey decodes the output of Key.String.
func ParseKey(s string) (Key, error) {
	if !IsKey(s) {
		return Key{}, fmt.Errorf("%w: key %q lacks %q prefix", ErrInvalidSelection, s, KeyPrefix)
	}
	// Zone names may contain '-', so it is always the remainder.
	parts := strings.SplitN(strings.TrimPrefix(s, KeyPrefix), "-", 5)
	if len(parts) != 5 || parts[4] == "" {
		return Key{}, fmt.Errorf("%w: malformed key %q", ErrInvalidSelection, s)
	}
	wd, err1 := rank(parts[0], int(Saturday))
	occ, err2 := rank(parts[1], int(Fifth))
	hour, err3 := twoDigits(parts[2], 23)
	minute, err4 := twoDigits(parts[3], 59)
	if err := errors.Join(err1, err2, err3, err4); err != nil {
		return Key{}, fmt.Errorf("%w: malformed key %q", ErrInvalidSelection, s)
	}
	return Key{
		Weekday:    Weekday(wd),
		Occurrence: Occurrence(occ),
		Hour:       hour,
		Minute:     minute,
		Timezone:   parts[4],
	}, nil
}

func rank(s string, max int) (int, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("rank %q", s)
	}
	n := int(s[0] - '0')
	if n < 0 || n > max {
		return 0, fmt.Errorf("rank %q out of range", s)
	}
	return n, nil
}

func twoDigits(s string, max int) (int, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("field %q", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > max {
		return 0, fmt.Errorf("field %q out of range", s)
	}
	return n, nil
}

// Summary is the one line, human readable description of an event as shown
// in listings and selection prompts. DecodeSummary reverses it.
func (e Event) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%5s %3s %02d:%02d %s %s", e.Occurrence, e.Weekday, e.Hour, e.Minute, e.Timezone, e.Command)
	if e.Argument != "" {
		b.WriteString(" " + e.Argument)
	}
	if e.Description != "" {
		b.WriteString(" (" + e.Description + ")")
	}
	return b.String()
}

// Parameters lists the room automation settings that Summary leaves out,
// e.g. "TOT 30, round QSO off, calls in round off, return to round off,
// return room off".
func (e Event) Parameters() string {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	tot := fmt.Sprintf("TOT %d", e.TimeoutMinutes)
	if e.UnlimitedTimeout {
		tot = "TOT unlimited"
	}
	room := "off"
	if e.ReturnToRoomEnabled {
		room = e.ReturnToRoomID
	}
	return fmt.Sprintf("%s, round QSO %s, calls in round %s, return to round %s, return room %s",
		tot, onOff(e.PermitRoundQSO), onOff(e.AcceptCallsInRound),
		onOff(e.ReturnToRoundAfterDisconnect), room)
}

// DecodeSummary recovers the key of the event a summary line was built from.
func DecodeSummary(summary string) (Key, error) {
	fields := strings.Fields(summary)
	if len(fields) < 4 {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidSelection, summary)
	}
	occ, ok1 := ParseOccurrence(fields[0])
	wd, ok2 := ParseWeekday(fields[1])
	hh, mm, ok3 := strings.Cut(fields[2], ":")
	if !ok1 || !ok2 || !ok3 {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidSelection, summary)
	}
	hour, err1 := twoDigits(hh, 23)
	minute, err2 := twoDigits(mm, 59)
	if err1 != nil || err2 != nil {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidSelection, summary)
	}
	return Key{
		Weekday:    wd,
		Occurrence: occ,
		Hour:       hour,
		Minute:     minute,
		Timezone:   fields[3],
	}, nil
}
