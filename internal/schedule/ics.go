package schedule

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
)

const icsLayout = "20060102T150405"

// ExportICS writes events as an iCalendar document with one recurring
// VEVENT each, anchored at its next run after now.
func ExportICS(w io.Writer, events []Event, now time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//wxsched//schedule//EN")

	for _, e := range events {
		first, err := NextRun(e, now)
		if err != nil {
			return fmt.Errorf("export %s: %w", e.Key(), err)
		}
		ev := cal.AddEvent(e.Key().String() + "@wxsched")
		ev.SetDtStampTime(now)
		ev.AddProperty(ics.ComponentPropertyDtStart, first.Format(icsLayout), ics.WithTZID(e.Timezone))
		ev.AddProperty(ics.ComponentPropertyDtEnd, first.Add(time.Minute).Format(icsLayout), ics.WithTZID(e.Timezone))
		ev.AddRrule(RuleString(e))
		ev.SetSummary(calendarTitle(e))
		ev.SetDescription(e.Summary())
	}
	return cal.SerializeTo(w)
}

func calendarTitle(e Event) string {
	if e.Description != "" {
		return e.Description
	}
	return e.Action()
}
