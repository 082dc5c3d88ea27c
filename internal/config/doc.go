// Package config loads and saves the wxsched settings document.
//
// # Overview
//
// One flat document holds both the configuration keys and the schedule.
// Schedule entries are the keys starting with "@"; their values are the
// 15-field event records understood by schedule.Load. Load classifies the
// document once, and the rest of the program works with typed values.
//
// # Formats
//
// The file extension picks the encoding:
//
//   - .toml (default): ~/.config/wxsched/settings.toml
//   - .yaml, .yml
//   - .json, .cfg: the WXscheduler.cfg layout, including its WXapplication,
//     WXaccesslog and WXlastheard key names
//
// Example settings.toml:
//
//	theme = "Dracula"
//	access_log = "~/Documents/WIRESXA/AccHistory/WiresAccess.log"
//	executor_url = "127.0.0.1:7600"
//	"@2-2-20-00-America/Chicago" = ["2nd", "Mon", "20", "00", "America/Chicago",
//	  "Club net", "false", "false", "false", "false", "", "false", "30",
//	  "Connect", "21080"]
//
// # Resolution
//
// Document.Config resolves values in this order:
//
//  1. WXSCHED_* environment variables (WXSCHED_ACCESS_LOG, WXSCHED_LAST_HEARD_HTML,
//     WXSCHED_EXECUTOR_URL, WXSCHED_LISTEN, WXSCHED_LOG_LEVEL)
//  2. the value in the document, trimmed
//  3. the built-in default
//
// Paths are tilde-expanded and made absolute. Environment overrides are
// never written back by Save.
//
// # Error Handling
//
// A missing file is not an error; Load returns an empty document so wxsched
// works before anything was configured. Parse failures and values of the
// wrong shape are errors mentioning "parse config". Keys that are neither
// settings nor schedule entries are listed in Document.Unknown and dropped on
// the next Save.
//
// Save writes through a temporary file and rename, so a crash never leaves a
// truncated settings file behind.
package config
