package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownZone is returned for timezone names missing from the zone
// database. Callers running the schedule treat it as fatal.
var ErrUnknownZone = errors.New("unknown timezone")

// LoadZone resolves an IANA zone name. The empty name is rejected rather
// than silently mapped to UTC.
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownZone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownZone, name)
	}
	return loc, nil
}

// Moment is wall-clock time broken down in a particular zone.
type Moment struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday Weekday
	Nth     Occurrence
	Zone    string
}

// MomentOf breaks t down in its own location.
func MomentOf(t time.Time, zone string) Moment {
	return Moment{
		Year:    t.Year(),
		Month:   t.Month(),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: FromTime(t.Weekday()),
		Nth:     NthOfMonth(t.Day()),
		Zone:    zone,
	}
}

// FromTime converts a time.Weekday.
func FromTime(d time.Weekday) Weekday {
	return Weekday(int(d) + 1)
}

// NthOfMonth returns which occurrence of its weekday a day of month is.
func NthOfMonth(day int) Occurrence {
	return Occurrence((day + 6) / 7)
}

// Text formats the moment as "2006/01/02 15:04:05 (1st Mon)".
func (m Moment) Text() string {
	return fmt.Sprintf("%s:%02d (%s %s)", m.MinuteText(), m.Second, m.Nth, m.Weekday)
}

// MinuteText identifies the calendar minute; it changes exactly when a new
// minute starts.
func (m Moment) MinuteText() string {
	return fmt.Sprintf("%04d/%02d/%02d %02d:%02d", m.Year, int(m.Month), m.Day, m.Hour, m.Minute)
}

// Clock reports the current time in named zones. Locations are cached. A
// Clock is not safe for concurrent use.
type Clock struct {
	now   func() time.Time
	zones map[string]*time.Location
}

// NewClock returns a clock reading now, or time.Now when now is nil.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, zones: make(map[string]*time.Location)}
}

// Now returns the current moment in zone.
func (c *Clock) Now(zone string) (Moment, error) {
	return c.At(c.now(), zone)
}

// At breaks t down in zone.
func (c *Clock) At(t time.Time, zone string) (Moment, error) {
	loc, ok := c.zones[zone]
	if !ok {
		var err error
		loc, err = LoadZone(zone)
		if err != nil {
			return Moment{}, err
		}
		c.zones[zone] = loc
	}
	return MomentOf(t.In(loc), zone), nil
}
