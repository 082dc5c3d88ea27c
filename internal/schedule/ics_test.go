package schedule

import (
	"bytes"
	"strings"
	"testing"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportICS(t *testing.T) {
	d := validDraft()
	net := mustBuild(t, d)
	restart := mustBuild(t, draftAt("every", "Any", "03", "00", "America/Chicago"))

	var buf bytes.Buffer
	require.NoError(t, ExportICS(&buf, []Event{restart, net}, secondMonday))

	cal, err := ics.ParseCalendar(strings.NewReader(buf.String()))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)

	byID := map[string]*ics.VEvent{}
	for _, ev := range events {
		byID[ev.Id()] = ev
	}

	ev := byID[net.Key().String()+"@wxsched"]
	require.NotNil(t, ev)
	assert.Equal(t, "Regional net", ev.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Contains(t, ev.GetProperty(ics.ComponentPropertyRrule).Value, "BYDAY=+2MO")
	start := ev.GetProperty(ics.ComponentPropertyDtStart)
	assert.Equal(t, "20240212T143000", start.Value)
	assert.Equal(t, []string{"UTC"}, start.ICalParameters["TZID"])

	ev = byID[restart.Key().String()+"@wxsched"]
	require.NotNil(t, ev)
	assert.Equal(t, "Restart", ev.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Contains(t, ev.GetProperty(ics.ComponentPropertyRrule).Value, "FREQ=DAILY")
	assert.Equal(t, "20240109T030000", ev.GetProperty(ics.ComponentPropertyDtStart).Value)
}
