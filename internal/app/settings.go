package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/wxsched/internal/config"
	"github.com/five82/wxsched/internal/schedule"
)

// settingsWatcher reloads the schedule when the settings file is edited
// while wxsched runs, e.g. by "wxsched schedule add" in another terminal.
type settingsWatcher struct {
	path    string
	modTime time.Time
}

func newSettingsWatcher(path string) *settingsWatcher {
	return &settingsWatcher{path: path}
}

func (w *settingsWatcher) prime() {
	if info, err := os.Stat(w.path); err == nil {
		w.modTime = info.ModTime()
	}
}

// check returns a freshly loaded schedule when the file's modification time
// moved. A missing file is not a change.
func (w *settingsWatcher) check() (*schedule.Store, bool, error) {
	info, err := os.Stat(w.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stat settings: %w", err)
	}
	if info.ModTime().Equal(w.modTime) {
		return nil, false, nil
	}

	// A broken edit is reported once; the next save is picked up again.
	w.modTime = info.ModTime()
	doc, err := config.Load(w.path)
	if err != nil {
		return nil, false, err
	}
	store, errs := schedule.Load(doc.Schedule)
	for _, e := range errs {
		log.Warn("skipping schedule entry", "err", e)
	}
	return store, true, nil
}
