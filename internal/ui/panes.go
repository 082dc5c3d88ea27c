package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/five82/wxsched/internal/history"
	"github.com/five82/wxsched/internal/state"
)

const (
	requestColumn = 36
	nextRunLayout = "2006/01/02 15:04 MST"
)

// renderContent renders the active pane.
func (m Model) renderContent() string {
	var lines []string
	switch m.currentView {
	case ViewHistory:
		lines = m.historyLines()
	case ViewSchedule:
		lines = m.scheduleLines()
	default:
		lines = m.lastHeardLines()
	}

	pane := newSurface(m.theme.Background)
	for i, l := range lines {
		lines[i] = pane.fill(l, m.width)
	}
	return strings.Join(lines, "\n")
}

// lastHeardLines lists stations newest first.
func (m Model) lastHeardLines() []string {
	styles := m.theme.On(m.theme.Background)
	if len(m.snapshot.LastHeard) == 0 {
		return []string{styles.MutedText.Render("No stations heard yet")}
	}
	out := make([]string, 0, len(m.snapshot.LastHeard))
	for _, l := range reversed(m.snapshot.LastHeard) {
		out = append(out, styles.Text.Render(l))
	}
	return out
}

func (m Model) historyLines() []string {
	styles := m.theme.On(m.theme.Background)
	if len(m.snapshot.History) == 0 {
		return []string{styles.MutedText.Render("Nothing executed yet")}
	}
	out := make([]string, 0, len(m.snapshot.History))
	for _, e := range m.snapshot.History {
		out = append(out, m.historyLine(styles, e))
	}
	return out
}

func (m Model) historyLine(styles Styles, e history.Entry) string {
	badge := styles.Badge(badgeOK, "OK  ")
	if !e.OK {
		badge = styles.Badge(badgeFailed, "FAIL")
	}
	return styles.MutedText.Render(e.ClockText) + " " + badge + " " +
		styles.Text.Render(padRight(truncate(e.Request, requestColumn), requestColumn)) + " " +
		styles.FaintText.Render(e.Status)
}

func (m Model) scheduleLines() []string {
	styles := m.theme.On(m.theme.Background)
	if len(m.snapshot.Schedule) == 0 {
		return []string{styles.MutedText.Render("No events scheduled")}
	}
	width := 0
	for _, s := range m.snapshot.Schedule {
		width = maxInt(width, runewidth.StringWidth(s.Summary))
	}
	out := make([]string, 0, len(m.snapshot.Schedule))
	for _, s := range m.snapshot.Schedule {
		out = append(out, styles.Text.Render(padRight(s.Summary, width))+"  "+nextRunCell(styles, s))
	}
	return out
}

func nextRunCell(styles Styles, s state.ScheduleLine) string {
	if s.NextRun.IsZero() {
		return styles.WarningText.Render("next: unknown")
	}
	return styles.MutedText.Render("next:") + " " + styles.AccentText.Render(s.NextRun.Format(nextRunLayout))
}
