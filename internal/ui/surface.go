package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// surface paints text onto a solid background. Rendering a multi-word string
// with one lipgloss style leaves the spaces between words unpainted once an
// inner reset code is emitted, so each word is rendered separately and the
// gaps are painted explicitly.
type surface struct {
	bg    lipgloss.Color
	blank lipgloss.Style
}

func newSurface(color string) surface {
	bg := lipgloss.Color(color)
	return surface{bg: bg, blank: lipgloss.NewStyle().Background(bg)}
}

// text renders s in style on the surface background.
func (s surface) text(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(s.bg)
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, s.blank.Render(" "))
}

// pair renders "label<sep>value", e.g. a key hint or a counter.
func (s surface) pair(label, sep, value string, labelStyle, valueStyle lipgloss.Style) string {
	return s.text(label, labelStyle) + s.blank.Render(sep) + s.text(value, valueStyle)
}

// join joins rendered parts with n painted spaces.
func (s surface) join(parts []string, n int) string {
	return strings.Join(parts, s.blank.Render(strings.Repeat(" ", n)))
}

// fill pads a rendered line to width.
func (s surface) fill(line string, width int) string {
	return s.blank.Width(width).Render(line)
}
