// Package executor is the boundary to the Wires-X automation layer.
//
// wxsched decides what to do and when; something else clicks the buttons.
// HTTPClient hands each Request to an automation agent running next to the
// Wires-X application, and DryRun only describes the request. Both return the
// agent's status text verbatim. Failures come back as *Error with a Kind so
// callers can tell an unreachable agent from a refused action.
package executor
