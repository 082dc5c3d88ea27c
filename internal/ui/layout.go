package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100
)

// DefaultUIInterval is the default UI refresh interval.
const DefaultUIInterval = time.Second

// headerLines is the height of the header plus the command bar.
const headerLines = 2
