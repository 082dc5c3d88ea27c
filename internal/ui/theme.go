package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Badge names understood by Styles.Badge.
const (
	badgeOK       = "ok"
	badgeFailed   = "failed"
	badgeDegraded = "degraded"
	badgeDryRun   = "dryrun"
)

// Theme is a monitor palette.
type Theme struct {
	Name string

	Background string // panes
	Surface    string // header and command bar

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// Badges maps a badge name to its fill color.
	Badges map[string]string
}

// Styles holds the text styles of a theme drawn on one background.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	Logo        lipgloss.Style

	badges map[string]string
	ink    string
	muted  string
}

// On returns the theme's styles with bg as the background of every style.
// An empty bg leaves the terminal background showing.
func (t Theme) On(bg string) Styles {
	fg := func(color string) lipgloss.Style {
		s := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		if bg != "" {
			s = s.Background(lipgloss.Color(bg))
		}
		return s
	}
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		Logo:        fg(t.Warning).Bold(true),

		badges: t.Badges,
		ink:    t.Background,
		muted:  t.Muted,
	}
}

// Badge renders label as a filled tag in the color named by badge, or in
// the muted color for unknown names.
func (s Styles) Badge(badge, label string) string {
	fill := s.badges[badge]
	if fill == "" {
		fill = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.ink)).
		Background(lipgloss.Color(fill)).
		Padding(0, 1).
		Render(label)
}

var themes = map[string]Theme{
	"Dracula":  draculaTheme(),
	"Nightfox": nightfoxTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Dracula", "Nightfox", "Slate"}

// GetTheme returns a theme by name, falling back to Dracula.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

// https://draculatheme.com/contribute
func draculaTheme() Theme {
	return Theme{
		Name:       "Dracula",
		Background: "#21222c",
		Surface:    "#282a36",
		Text:       "#f8f8f2",
		Muted:      "#6272a4",
		Faint:      "#565f89",
		Accent:     "#bd93f9",
		Success:    "#50fa7b",
		Warning:    "#f1fa8c",
		Danger:     "#ff5555",
		Badges: map[string]string{
			badgeOK:       "#50fa7b",
			badgeFailed:   "#ff5555",
			badgeDegraded: "#ffb86c",
			badgeDryRun:   "#8be9fd",
		},
	}
}

// https://github.com/EdenEast/nightfox.nvim
func nightfoxTheme() Theme {
	return Theme{
		Name:       "Nightfox",
		Background: "#131a24",
		Surface:    "#192330",
		Text:       "#cdcecf",
		Muted:      "#738091",
		Faint:      "#71839b",
		Accent:     "#719cd6",
		Success:    "#81b29a",
		Warning:    "#dbc074",
		Danger:     "#c94f6d",
		Badges: map[string]string{
			badgeOK:       "#81b29a",
			badgeFailed:   "#c94f6d",
			badgeDegraded: "#f4a261",
			badgeDryRun:   "#63cdcf",
		},
	}
}

// Tailwind slate and sky.
func slateTheme() Theme {
	return Theme{
		Name:       "Slate",
		Background: "#020617",
		Surface:    "#0f172a",
		Text:       "#f1f5f9",
		Muted:      "#94a3b8",
		Faint:      "#64748b",
		Accent:     "#38bdf8",
		Success:    "#22c55e",
		Warning:    "#f59e0b",
		Danger:     "#ef4444",
		Badges: map[string]string{
			badgeOK:       "#16a34a",
			badgeFailed:   "#dc2626",
			badgeDegraded: "#f59e0b",
			badgeDryRun:   "#06b6d4",
		},
	}
}
