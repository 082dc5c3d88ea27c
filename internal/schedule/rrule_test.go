package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextRun(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name  string
		draft Draft
		want  time.Time
	}{
		{"next month second monday", draftAt("2nd", "Mon", "14", "30", "UTC"),
			time.Date(2024, time.February, 12, 14, 30, 0, 0, time.UTC)},
		{"later today", draftAt("every", "Any", "20", "00", "UTC"),
			time.Date(2024, time.January, 8, 20, 0, 0, 0, time.UTC)},
		{"tomorrow", draftAt("every", "Any", "00", "00", "UTC"),
			time.Date(2024, time.January, 9, 0, 0, 0, 0, time.UTC)},
		{"next week in own zone", draftAt("every", "Mon", "09", "30", "America/New_York"),
			time.Date(2024, time.January, 15, 9, 30, 0, 0, ny)},
		{"fifth friday skips short months", draftAt("5th", "Fri", "18", "00", "UTC"),
			time.Date(2024, time.March, 29, 18, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustBuild(t, tt.draft)
			got, err := NextRun(e, secondMonday)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestNextRun_AgreesWithMatcher(t *testing.T) {
	drafts := []Draft{
		draftAt("every", "Any", "06", "15", "Australia/Sydney"),
		draftAt("1st", "Sun", "02", "30", "Europe/Berlin"),
		draftAt("4th", "Thu", "19", "00", "America/Chicago"),
		draftAt("every", "Sat", "23", "59", "Asia/Kolkata"),
	}
	clock := NewClock(nil)
	for _, d := range drafts {
		e := mustBuild(t, d)
		after := secondMonday
		for i := 0; i < 6; i++ {
			next, err := NextRun(e, after)
			require.NoError(t, err)
			m, err := clock.At(next, e.Timezone)
			require.NoError(t, err)
			assert.True(t, e.Matches(m), "%s at %s", e.Summary(), m.Text())
			after = next
		}
	}
}

func TestRuleString(t *testing.T) {
	tests := []struct {
		draft Draft
		parts []string
	}{
		{draftAt("every", "Any", "06", "15", "UTC"), []string{"FREQ=DAILY", "BYHOUR=6", "BYMINUTE=15"}},
		{draftAt("every", "Mon", "06", "15", "UTC"), []string{"FREQ=WEEKLY", "BYDAY=MO"}},
		{draftAt("2nd", "Mon", "06", "15", "UTC"), []string{"FREQ=MONTHLY", "BYDAY=+2MO"}},
	}
	for _, tt := range tests {
		rule := RuleString(mustBuild(t, tt.draft))
		for _, p := range tt.parts {
			assert.True(t, strings.Contains(rule, p), "%q missing %q", rule, p)
		}
	}
}
