package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Dracula" || names[1] != "Nightfox" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Dracula Nightfox Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Nightfox" {
		t.Fatalf("NextTheme(Dracula) = %q, want Nightfox", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("Unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(Unknown) = %q, want Dracula", got)
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%s).Name = %q", name, got)
		}
	}
	if got := GetTheme("Unknown").Name; got != "Dracula" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Dracula (fallback)", got)
	}
}

func TestThemesDefineBadges(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, status := range []string{badgeOK, badgeFailed, badgeDegraded, badgeDryRun} {
			if th.Badges[status] == "" {
				t.Fatalf("%s: no color for badge %q", name, status)
			}
		}
	}
}

func TestBadgeFallsBackToMuted(t *testing.T) {
	styles := GetTheme("Slate").On("#000000")
	if got := styles.Badge("unknown", "X"); !strings.Contains(got, "X") {
		t.Fatalf("Badge(unknown) = %q, want label rendered", got)
	}
	if got := styles.Badge(badgeFailed, "FAIL"); !strings.Contains(got, "FAIL") {
		t.Fatalf("Badge(failed) = %q", got)
	}
}

func TestSurfaceKeepsText(t *testing.T) {
	s := newSurface("#282a36")
	st := GetTheme("Dracula").On("")
	if got := s.text("", st.Text); got != "" {
		t.Fatalf("text(\"\") = %q, want empty", got)
	}
	got := s.join([]string{s.text("two  words", st.Text), s.pair("d", ":", "Disconnect", st.AccentText, st.MutedText)}, 2)
	if !strings.Contains(got, "two") || !strings.Contains(got, "words") || !strings.Contains(got, "Disconnect") {
		t.Fatalf("joined = %q", got)
	}
	if w := lipgloss.Width(s.fill("abc", 10)); w != 10 {
		t.Fatalf("fill width = %d, want 10", w)
	}
}
