// Package prefs persists wxsched user preferences: the monitor theme and
// the values last entered in the add-event form.
// Preferences are stored in ~/.config/wxsched/prefs.toml.
package prefs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/wxsched/internal/schedule"
)

// Prefs holds user preferences.
type Prefs struct {
	// Theme is empty until the user picks one in the monitor; the settings
	// document's theme applies until then.
	Theme string `toml:"theme"`

	// FormDefaults pre-fills the next add-event form.
	FormDefaults schedule.Draft `toml:"form_defaults"`
}

const defaultPrefsPath = "~/.config/wxsched/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// ThemeOr returns the chosen theme, or fallback when none was chosen.
func (p Prefs) ThemeOr(fallback string) string {
	if t := strings.TrimSpace(p.Theme); t != "" {
		return t
	}
	return fallback
}

func defaults() Prefs {
	return Prefs{FormDefaults: schedule.DefaultDraft()}
}

// Load reads preferences from the given path, falling back to defaults if
// the file is missing or unreadable.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return defaults(), nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return defaults(), nil // Graceful degradation
	}

	prefs := defaults()
	if err := toml.Unmarshal(data, &prefs); err != nil {
		return defaults(), nil // Graceful degradation
	}
	if strings.TrimSpace(prefs.FormDefaults.Occurrence) == "" {
		prefs.FormDefaults = schedule.DefaultDraft()
	}
	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := atomic.WriteFile(resolved, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
