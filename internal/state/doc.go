// Package state shares the poll loop's results with the terminal monitor and
// the HTTP status server.
//
// The poll loop is the only writer. It records each tick with Update and
// replaces the listings (last heard, history, schedule) when they change.
// Readers call Snapshot on their own schedule and get a copy they may keep:
// slices are cloned and the error is re-wrapped, so nothing a reader holds
// is shared with the store.
//
//	// poll goroutine
//	res, err := eng.Tick()
//	store.Update(res.ClockText, err)
//
//	// monitor goroutine
//	snap := store.Snapshot()
//	render(snap)
//
// Update keeps the previous listings when it records an error, and counts
// consecutive failures so the monitor can flag a degraded gateway.
//
// The zero Store is ready to use.
package state
