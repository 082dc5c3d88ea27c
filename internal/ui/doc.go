// Package ui provides the wxsched terminal monitor.
//
// # Architecture Overview
//
// The monitor is a Bubble Tea program that only reads. The poll loop in the
// app package owns the engine and publishes a state.Snapshot; the monitor
// fetches a copy once per second and renders it. The only thing the monitor
// sends back is a force disconnect request, through Options.Disconnect.
//
// # Package Structure
//
//   - app.go: Model, key handling, tick and snapshot messages, Run
//   - header.go: clock line and command bar
//   - panes.go: last heard, executed history and schedule panes
//   - help.go: help overlay built from the key map
//   - keys.go: key bindings
//   - theme.go: palettes, per-background styles and badges
//   - surface.go: painting text runs on a solid background
//
// # Views
//
//   - Last heard: the plain projection of the access log, newest first
//   - Executed: actions handed to the executor and their status text
//   - Schedule: stored events in key order with their next run
//
// # Key Bindings
//
//   - l/x/s: Last heard, Executed, Schedule
//   - Tab, Shift+Tab: cycle views
//   - j/k, g/G, ctrl+d/ctrl+u: scroll
//   - d: force disconnect
//   - T: cycle theme (saved to prefs)
//   - h/?: help
//   - q, ctrl+c: quit
//
// Log output must not go to the terminal while the monitor runs; the app
// package points the logger at a file first.
package ui
