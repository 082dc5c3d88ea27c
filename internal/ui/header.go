package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the clock line with the loop status.
func (m Model) renderHeader() string {
	styles := m.theme.On(m.theme.Surface)
	bar := newSurface(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	clock := m.snapshot.ClockText
	if clock == "" {
		clock = "Starting..."
	}
	parts := []string{
		bar.text("wxsched", styles.Logo),
		bar.text(clock, styles.Text.Bold(true)),
	}

	switch {
	case m.snapshot.IsDegraded():
		parts = append(parts, styles.Badge(badgeDegraded, "DEGRADED"))
	case m.dryRun:
		parts = append(parts, styles.Badge(badgeDryRun, "DRY RUN"))
	default:
		parts = append(parts, bar.text("● ON", styles.SuccessText))
	}

	if !compact {
		parts = append(parts,
			bar.pair("Heard:", " ", fmt.Sprint(len(m.snapshot.LastHeard)), styles.MutedText, styles.Text),
			bar.pair("Events:", " ", fmt.Sprint(len(m.snapshot.Schedule)), styles.MutedText, styles.Text),
		)
	}

	if err := m.snapshot.LastError; err != nil {
		limit := 60
		if compact {
			limit = 30
		}
		parts = append(parts, bar.text(truncate(err.Error(), limit), styles.DangerText))
	} else if m.notice != "" {
		parts = append(parts, bar.text(m.notice, styles.WarningText))
	}

	return m.barStyle().Render(bar.join(parts, 2))
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.On(m.theme.Surface)
	bar := newSurface(m.theme.Surface)

	commands := []struct{ key, desc string }{
		{"l", ViewLastHeard.title()},
		{"x", ViewHistory.title()},
		{"s", ViewSchedule.title()},
		{"j/k", "Scroll"},
		{"d", "Disconnect"},
		{"q", "Quit"},
		{"?", "More"},
	}

	segments := make([]string, 0, len(commands)+2)
	segments = append(segments, bar.text("["+m.currentView.title()+"]", styles.AccentText.Bold(true)))
	for _, c := range commands {
		segments = append(segments, bar.pair(c.key, ":", c.desc, styles.AccentText, styles.MutedText))
	}
	segments = append(segments, bar.pair("T", ":", m.theme.Name, styles.AccentText, styles.FaintText))

	return m.barStyle().Render(bar.join(segments, 2))
}

func (m Model) barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Padding(0, 1).
		Width(m.width)
}
