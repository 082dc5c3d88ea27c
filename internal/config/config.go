package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/five82/wxsched/internal/schedule"
)

// Setting keys.
const (
	KeyTheme           = "theme"
	KeyWXApplication   = "wx_application"
	KeyAccessLog       = "access_log"
	KeyLastHeardHTML   = "last_heard_html"
	KeyDisplayTimezone = "display_timezone"
	KeyExecutorURL     = "executor_url"
	KeyExecutorTimeout = "executor_timeout_seconds"
	KeyHistoryDB       = "history_db"
	KeyListen          = "listen"
	KeyLogLevel        = "log_level"
	KeyLogFile         = "log_file"
)

const (
	DefaultPath            = "~/.config/wxsched/settings.toml"
	DefaultMonitorLogFile  = "~/.local/state/wxsched/wxsched.log"
	defaultTheme           = "Dracula"
	defaultAccessLog       = "~/Documents/WIRESXA/AccHistory/WiresAccess.log"
	defaultLastHeardHTML   = "~/Documents/WIRESXA/WX_last_heard.html"
	defaultDisplayTimezone = "Local"
	defaultExecutorTimeout = 30 * time.Second
	defaultHistoryDB       = "~/.local/share/wxsched/history.db"
	defaultLogLevel        = "info"
)

var knownKeys = []string{
	KeyTheme, KeyWXApplication, KeyAccessLog, KeyLastHeardHTML, KeyDisplayTimezone,
	KeyExecutorURL, KeyExecutorTimeout, KeyHistoryDB, KeyListen, KeyLogLevel, KeyLogFile,
}

// legacyKeys maps WXscheduler.cfg names onto current keys.
var legacyKeys = map[string]string{
	"WXapplication": KeyWXApplication,
	"WXaccesslog":   KeyAccessLog,
	"WXlastheard":   KeyLastHeardHTML,
}

// Environment overrides, applied after .env is loaded.
var envOverrides = map[string]string{
	"WXSCHED_ACCESS_LOG":      KeyAccessLog,
	"WXSCHED_LAST_HEARD_HTML": KeyLastHeardHTML,
	"WXSCHED_EXECUTOR_URL":    KeyExecutorURL,
	"WXSCHED_LISTEN":          KeyListen,
	"WXSCHED_LOG_LEVEL":       KeyLogLevel,
}

// Config is the resolved, typed view of the settings document.
type Config struct {
	Theme           string
	WXApplication   string
	AccessLog       string
	LastHeardHTML   string
	DisplayTimezone string
	ExecutorURL     string
	ExecutorTimeout time.Duration
	HistoryDB       string
	Listen          string
	LogLevel        string
	LogFile         string
}

// Document is the settings file: configuration keys and schedule entries
// side by side in one flat map.
type Document struct {
	Path     string
	Settings map[string]string
	Schedule map[string][]string

	// Unknown lists keys that were neither settings nor schedule entries.
	// They are dropped on Save.
	Unknown []string
}

// Load reads and classifies the settings document at path (DefaultPath when
// empty). A missing file yields an empty document.
func Load(path string) (*Document, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	doc := &Document{
		Path:     resolved,
		Settings: map[string]string{},
		Schedule: map[string][]string{},
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	raw, err := codecFor(resolved).decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := doc.classify(raw); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Document) classify(raw map[string]any) error {
	for key, value := range raw {
		switch {
		case schedule.IsKey(key):
			rec, ok := toRecord(value)
			if !ok {
				return fmt.Errorf("parse config: schedule entry %s is not a list of values", key)
			}
			d.Schedule[key] = rec
		case isKnown(canonical(key)):
			s, ok := scalar(value)
			if !ok {
				return fmt.Errorf("parse config: %s must be a single value", key)
			}
			d.Settings[canonical(key)] = s
		default:
			d.Unknown = append(d.Unknown, key)
		}
	}
	sort.Strings(d.Unknown)
	return nil
}

// Set stores a configuration value.
func (d *Document) Set(key, value string) error {
	key = canonical(key)
	if !isKnown(key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	d.Settings[key] = value
	return nil
}

// Config resolves the document into a Config: defaults fill empty values,
// WXSCHED_* environment variables override, and paths are expanded.
func (d *Document) Config() Config {
	get := func(key, def string) string {
		for env, k := range envOverrides {
			if k != key {
				continue
			}
			if v := strings.TrimSpace(os.Getenv(env)); v != "" {
				return v
			}
		}
		if v := strings.TrimSpace(d.Settings[key]); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Theme:           get(KeyTheme, defaultTheme),
		WXApplication:   get(KeyWXApplication, ""),
		AccessLog:       mustExpand(get(KeyAccessLog, defaultAccessLog)),
		LastHeardHTML:   mustExpand(get(KeyLastHeardHTML, defaultLastHeardHTML)),
		DisplayTimezone: get(KeyDisplayTimezone, defaultDisplayTimezone),
		ExecutorURL:     get(KeyExecutorURL, ""),
		ExecutorTimeout: defaultExecutorTimeout,
		HistoryDB:       mustExpand(get(KeyHistoryDB, defaultHistoryDB)),
		Listen:          get(KeyListen, ""),
		LogLevel:        strings.ToLower(get(KeyLogLevel, defaultLogLevel)),
		LogFile:         get(KeyLogFile, ""),
	}
	if cfg.LogFile != "" {
		cfg.LogFile = mustExpand(cfg.LogFile)
	}
	if secs, err := strconv.Atoi(get(KeyExecutorTimeout, "")); err == nil && secs > 0 {
		cfg.ExecutorTimeout = time.Duration(secs) * time.Second
	}
	return cfg
}

// Save writes the settings and schedule back to d.Path atomically, in the
// format implied by its extension.
func (d *Document) Save() error {
	raw := make(map[string]any, len(d.Settings)+len(d.Schedule))
	for k, v := range d.Settings {
		raw[k] = v
	}
	for k, rec := range d.Schedule {
		raw[k] = rec
	}
	data, err := codecFor(d.Path).encode(raw)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := writeAtomic(d.Path, data); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Keys lists the recognized setting keys.
func Keys() []string {
	return append([]string(nil), knownKeys...)
}

func canonical(key string) string {
	if k, ok := legacyKeys[key]; ok {
		return k
	}
	return key
}

func isKnown(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}

func scalar(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

func toRecord(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...), true
	case []any:
		rec := make([]string, len(t))
		for i, item := range t {
			s, ok := scalar(item)
			if !ok {
				return nil, false
			}
			rec[i] = s
		}
		return rec, true
	default:
		return nil, false
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(DefaultPath)
	}
	return expandPath(path)
}

// ExpandPath resolves a leading "~" and makes path absolute.
func ExpandPath(path string) (string, error) { return expandPath(path) }

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
