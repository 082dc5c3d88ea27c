package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Limits enforced by Build.
const (
	MinTimeoutMinutes     = 5
	MaxTimeoutMinutes     = 60
	DefaultTimeoutMinutes = 30
	MinNodeID             = 10000
	MaxNodeID             = 99999
	MinRoomID             = 20000
	MaxRoomID             = 89999
	MaxRoomNameLen        = 16
)

// ValidationError lists every problem found in a Draft.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "\n")
}

// Build validates a draft and converts it to an Event. All problems are
// reported together in a *ValidationError.
func Build(d Draft) (Event, error) {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	occ, ok := ParseOccurrence(d.Occurrence)
	if !ok {
		addf("%q is not a valid Occurs setting", d.Occurrence)
	}
	wd, okDay := ParseWeekday(d.Weekday)
	if !okDay {
		addf("%q is not a valid Day of Week setting", d.Weekday)
	}
	if ok && okDay && wd == AnyDay && occ != Every {
		addf("Day of Week %s requires Occurs %s", AnyDay, Every)
	}

	hour, err := clockField(d.Hour, 23)
	if err != nil {
		addf("%q is not a valid Hour setting", d.Hour)
	}
	minute, err := clockField(d.Minute, 59)
	if err != nil {
		addf("%q is not a valid Minute setting", d.Minute)
	}

	zone := strings.TrimSpace(d.Timezone)
	if _, err := LoadZone(zone); err != nil {
		addf("%q is not a recognized timezone", d.Timezone)
	}

	cmd, ok := ParseCommand(d.Command)
	if !ok {
		addf("%q is not a valid command", d.Command)
	}
	arg := ""
	if cmd == CommandConnect {
		arg = strings.TrimSpace(d.Argument)
		if n, err := strconv.Atoi(arg); err != nil || n < MinNodeID || n > MaxNodeID {
			addf("Argument must be a valid Node or Room number (between %d and %d inclusive)", MinNodeID, MaxNodeID)
		}
	}

	timeout, err := strconv.Atoi(strings.TrimSpace(d.TimeoutMinutes))
	inRange := err == nil && timeout >= MinTimeoutMinutes && timeout <= MaxTimeoutMinutes
	if !inRange {
		if d.UnlimitedTimeout {
			timeout = DefaultTimeoutMinutes
		} else {
			addf("Timeout must be a number between %d and %d inclusive", MinTimeoutMinutes, MaxTimeoutMinutes)
		}
	}

	room := strings.TrimSpace(d.ReturnToRoomID)
	switch {
	case room == "":
		if d.ReturnToRoomEnabled {
			addf("Return to room is enabled but no room ID was given")
		}
	case isDigits(room):
		if n, err := strconv.Atoi(room); err != nil || n < MinRoomID || n > MaxRoomID {
			addf("Return to room ID %s must be between %d and %d inclusive", room, MinRoomID, MaxRoomID)
		}
	case len([]rune(room)) > MaxRoomNameLen:
		addf("Return to room ID %q is longer than %d characters", room, MaxRoomNameLen)
	}

	if len(problems) > 0 {
		return Event{}, &ValidationError{Problems: problems}
	}
	return Event{
		Occurrence:                   occ,
		Weekday:                      wd,
		Hour:                         hour,
		Minute:                       minute,
		Timezone:                     zone,
		Description:                  strings.TrimSpace(d.Description),
		PermitRoundQSO:               d.PermitRoundQSO,
		AcceptCallsInRound:           d.AcceptCallsInRound,
		ReturnToRoundAfterDisconnect: d.ReturnToRoundAfterDisconnect,
		ReturnToRoomEnabled:          d.ReturnToRoomEnabled,
		ReturnToRoomID:               room,
		UnlimitedTimeout:             d.UnlimitedTimeout,
		TimeoutMinutes:               timeout,
		Command:                      cmd,
		Argument:                     arg,
	}, nil
}

// clockField parses a one or two digit hour or minute.
func clockField(s string, max int) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 2 || !isDigits(s) {
		return 0, fmt.Errorf("invalid clock field %q", s)
	}
	n, _ := strconv.Atoi(s)
	if n > max {
		return 0, fmt.Errorf("clock field %d out of range", n)
	}
	return n, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
