package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Occurrence selects which week of the month an event fires in.
type Occurrence int

const (
	Every Occurrence = iota
	First
	Second
	Third
	Fourth
	Fifth
)

var occurrenceNames = [...]string{"every", "1st", "2nd", "3rd", "4th", "5th"}

func (o Occurrence) String() string {
	if o < Every || o > Fifth {
		return fmt.Sprintf("Occurrence(%d)", int(o))
	}
	return occurrenceNames[o]
}

// ParseOccurrence accepts the names produced by String, case-insensitively.
func ParseOccurrence(s string) (Occurrence, bool) {
	for i, name := range occurrenceNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Occurrence(i), true
		}
	}
	return Every, false
}

func (o Occurrence) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Occurrence) UnmarshalText(b []byte) error {
	v, ok := ParseOccurrence(string(b))
	if !ok {
		return fmt.Errorf("invalid occurrence %q", b)
	}
	*o = v
	return nil
}

// Weekday is a day of the week, or AnyDay for daily events.
type Weekday int

const (
	AnyDay Weekday = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{"Any", "Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func (w Weekday) String() string {
	if w < AnyDay || w > Saturday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// ParseWeekday accepts the three letter names produced by String.
func ParseWeekday(s string) (Weekday, bool) {
	for i, name := range weekdayNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Weekday(i), true
		}
	}
	return AnyDay, false
}

func (w Weekday) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

func (w *Weekday) UnmarshalText(b []byte) error {
	v, ok := ParseWeekday(string(b))
	if !ok {
		return fmt.Errorf("invalid weekday %q", b)
	}
	*w = v
	return nil
}

// Command is the Wires-X action an event triggers.
type Command int

const (
	CommandNone Command = iota
	CommandConnect
	CommandDisconnect
	CommandRestart
)

var commandNames = [...]string{"None", "Connect", "Disconnect", "Restart"}

func (c Command) String() string {
	if c < CommandNone || c > CommandRestart {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return commandNames[c]
}

// ParseCommand accepts the names produced by String.
func ParseCommand(s string) (Command, bool) {
	for i, name := range commandNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Command(i), true
		}
	}
	return CommandNone, false
}

func (c Command) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Command) UnmarshalText(b []byte) error {
	v, ok := ParseCommand(string(b))
	if !ok {
		return fmt.Errorf("invalid command %q", b)
	}
	*c = v
	return nil
}

// Names of the selectable values, in display order.
func OccurrenceNames() []string { return append([]string(nil), occurrenceNames[:]...) }
func WeekdayNames() []string    { return append([]string(nil), weekdayNames[:]...) }
func CommandNames() []string    { return append([]string(nil), commandNames[:]...) }

// Event is a validated scheduled event. Build it from a Draft.
type Event struct {
	Occurrence  Occurrence `json:"occurrence"`
	Weekday     Weekday    `json:"weekday"`
	Hour        int        `json:"hour"`
	Minute      int        `json:"minute"`
	Timezone    string     `json:"timezone"`
	Description string     `json:"description"`

	PermitRoundQSO               bool   `json:"permit_round_qso"`
	AcceptCallsInRound           bool   `json:"accept_calls_in_round"`
	ReturnToRoundAfterDisconnect bool   `json:"return_to_round_after_disconnect"`
	ReturnToRoomEnabled          bool   `json:"return_to_room_enabled"`
	ReturnToRoomID               string `json:"return_to_room_id"`
	UnlimitedTimeout             bool   `json:"unlimited_timeout"`
	TimeoutMinutes               int    `json:"timeout_minutes"`

	Command  Command `json:"command"`
	Argument string  `json:"argument"`
}

// Key returns the recurrence key the event is stored under.
func (e Event) Key() Key {
	return Key{
		Weekday:    e.Weekday,
		Occurrence: e.Occurrence,
		Hour:       e.Hour,
		Minute:     e.Minute,
		Timezone:   e.Timezone,
	}
}

// Action is the short "Connect 21080" form used in history and dry runs.
func (e Event) Action() string {
	if e.Argument == "" {
		return e.Command.String()
	}
	return e.Command.String() + " " + e.Argument
}

// Draft returns the text form of the event, e.g. to pre-fill a form.
func (e Event) Draft() Draft {
	return Draft{
		Occurrence:                   e.Occurrence.String(),
		Weekday:                      e.Weekday.String(),
		Hour:                         fmt.Sprintf("%02d", e.Hour),
		Minute:                       fmt.Sprintf("%02d", e.Minute),
		Timezone:                     e.Timezone,
		Description:                  e.Description,
		PermitRoundQSO:               e.PermitRoundQSO,
		AcceptCallsInRound:           e.AcceptCallsInRound,
		ReturnToRoundAfterDisconnect: e.ReturnToRoundAfterDisconnect,
		ReturnToRoomEnabled:          e.ReturnToRoomEnabled,
		ReturnToRoomID:               e.ReturnToRoomID,
		UnlimitedTimeout:             e.UnlimitedTimeout,
		TimeoutMinutes:               strconv.Itoa(e.TimeoutMinutes),
		Command:                      e.Command.String(),
		Argument:                     e.Argument,
	}
}

// Draft is the unvalidated, text-valued form of an Event. Its fields are the
// persisted record in order.
type Draft struct {
	Occurrence  string `toml:"occurrence"`
	Weekday     string `toml:"weekday"`
	Hour        string `toml:"hour"`
	Minute      string `toml:"minute"`
	Timezone    string `toml:"timezone"`
	Description string `toml:"description"`

	PermitRoundQSO               bool   `toml:"permit_round_qso"`
	AcceptCallsInRound           bool   `toml:"accept_calls_in_round"`
	ReturnToRoundAfterDisconnect bool   `toml:"return_to_round_after_disconnect"`
	ReturnToRoomEnabled          bool   `toml:"return_to_room_enabled"`
	ReturnToRoomID               string `toml:"return_to_room_id"`
	UnlimitedTimeout             bool   `toml:"unlimited_timeout"`
	TimeoutMinutes               string `toml:"timeout_minutes"`

	Command  string `toml:"command"`
	Argument string `toml:"argument"`
}

// RecordLen is the number of elements in a persisted schedule record.
const RecordLen = 15

// DefaultDraft is the form content offered when nothing was entered before.
func DefaultDraft() Draft {
	return Draft{
		Occurrence:     Every.String(),
		Weekday:        Sunday.String(),
		Hour:           "00",
		Minute:         "00",
		Timezone:       "UTC",
		TimeoutMinutes: strconv.Itoa(DefaultTimeoutMinutes),
		Command:        CommandConnect.String(),
	}
}

// Record returns the draft as the ordered persisted record.
func (d Draft) Record() []string {
	return []string{
		d.Occurrence,
		d.Weekday,
		d.Hour,
		d.Minute,
		d.Timezone,
		d.Description,
		strconv.FormatBool(d.PermitRoundQSO),
		strconv.FormatBool(d.AcceptCallsInRound),
		strconv.FormatBool(d.ReturnToRoundAfterDisconnect),
		strconv.FormatBool(d.ReturnToRoomEnabled),
		d.ReturnToRoomID,
		strconv.FormatBool(d.UnlimitedTimeout),
		d.TimeoutMinutes,
		d.Command,
		d.Argument,
	}
}

// DraftFromRecord is the inverse of Draft.Record.
func DraftFromRecord(rec []string) (Draft, error) {
	if len(rec) != RecordLen {
		return Draft{}, fmt.Errorf("schedule record has %d fields, want %d", len(rec), RecordLen)
	}
	var problems []string
	flag := func(i int, name string) bool {
		v, err := strconv.ParseBool(strings.TrimSpace(rec[i]))
		if err != nil {
			problems = append(problems, fmt.Sprintf("%q is not a valid %s setting", rec[i], name))
		}
		return v
	}
	d := Draft{
		Occurrence:                   rec[0],
		Weekday:                      rec[1],
		Hour:                         rec[2],
		Minute:                       rec[3],
		Timezone:                     rec[4],
		Description:                  rec[5],
		PermitRoundQSO:               flag(6, "permit round QSO"),
		AcceptCallsInRound:           flag(7, "accept calls in round"),
		ReturnToRoundAfterDisconnect: flag(8, "return to round"),
		ReturnToRoomEnabled:          flag(9, "return to room"),
		ReturnToRoomID:               rec[10],
		UnlimitedTimeout:             flag(11, "unlimited timeout"),
		TimeoutMinutes:               rec[12],
		Command:                      rec[13],
		Argument:                     rec[14],
	}
	if len(problems) > 0 {
		return d, &ValidationError{Problems: problems}
	}
	return d, nil
}
