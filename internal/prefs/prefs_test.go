package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/five82/wxsched/internal/schedule"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "" {
		t.Fatalf("Theme = %q, want unset", p.Theme)
	}
	if p.ThemeOr("Dracula") != "Dracula" {
		t.Fatalf("ThemeOr = %q, want fallback", p.ThemeOr("Dracula"))
	}
	if p.FormDefaults != schedule.DefaultDraft() {
		t.Fatalf("FormDefaults = %#v, want DefaultDraft", p.FormDefaults)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "wxsched")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	content := `theme = "Slate"

[form_defaults]
occurrence = "3rd"
weekday = "Wed"
hour = "20"
minute = "45"
timezone = "Europe/London"
command = "Connect"
argument = "28558"
timeout_minutes = "15"
`
	if err := os.WriteFile(prefsFile, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.ThemeOr("Dracula") != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
	if p.FormDefaults.Weekday != "Wed" || p.FormDefaults.Argument != "28558" {
		t.Fatalf("FormDefaults = %#v", p.FormDefaults)
	}
	if _, err := schedule.Build(p.FormDefaults); err != nil {
		t.Fatalf("FormDefaults should build: %v", err)
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	d := schedule.DefaultDraft()
	d.Weekday = "Fri"
	d.ReturnToRoomEnabled = true
	d.ReturnToRoomID = "21080"
	p := Prefs{Theme: "Slate", FormDefaults: d}
	if err := Save(prefsFile, p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded != p {
		t.Fatalf("loaded = %#v, want %#v", loaded, p)
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "" || p.FormDefaults != schedule.DefaultDraft() {
		t.Fatalf("prefs = %#v, want defaults", p)
	}
}
