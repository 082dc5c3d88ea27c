// Package app is the composition root of wxsched.
//
// # Overview
//
// Run loads the settings document, sets up logging, builds the engine over
// the stored schedule and starts the poll loop. In monitor mode the
// terminal UI runs in the foreground; headless mode (wxsched run --headless)
// runs the loop alone, which suits a service manager.
//
// # Components
//
//   - app.go: Run and executor selection
//   - poller.go: the poll loop, executor calls and the command queue
//   - settings.go: reload of the schedule when the settings file changes
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Settings and schedule entries
//	       ├─────> logging.Setup()    Stderr, or a rotated file under the monitor
//	       ├─────> engine.New()       Clock, log differ, schedule
//	       ├─────> history.Open()     sqlite execution history
//	       ├─────> web.New().Serve()  Optional status server
//	       ├─────> Poller.Run()       The only goroutine touching the engine
//	       └─────> ui.Run()           Monitor (blocks)
//
//	Poll loop, once per second:
//	┌─────────────────────────────────────────┐
//	│ engine.TickAt(now)                      │
//	│  ├─> last heard changed? SetLastHeard   │
//	│  ├─> due event? Execute with timeout    │
//	│  │     └─> history.Append, AddHistory   │
//	│  ├─> drain commands (disconnect, quit)  │
//	│  ├─> settings file changed? reload      │
//	│  └─> store.Update(clock, err)           │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal (returned from Run, the process exits 1):
//   - unreadable or malformed settings file at startup
//   - an invalid display timezone, or ErrUnknownZone while evaluating
//   - history database cannot be opened
//
// Recoverable (logged, recorded in the snapshot, retried next tick):
//   - access log read or last heard write failures
//   - executor failures, recorded as "EXCEPTION during: ..." history text
//   - a broken edit of the settings file while running
package app
