// Package schedule holds the recurring Wires-X events and decides when one
// is due.
//
// Events recur every week, on the nth weekday of each month, or daily. Each is
// evaluated in its own IANA timezone so that a net held at 20:00 in
// America/Chicago stays at 20:00 local time across daylight saving changes.
//
// An event is stored under a Key whose string form,
//
//	@{weekday}-{occurrence}-{HH}-{MM}-{zone}
//
// sorts by weekday, occurrence, hour, minute and zone name. The same string is
// the event's key in the settings document. Summary renders the line shown to
// people; DecodeSummary turns a selected line back into its Key.
//
// Draft is the text form edited by forms and persisted on disk. Build
// validates a Draft and reports every problem at once.
//
// DueEvent is evaluated once per minute by the engine. NextRun and ExportICS
// express the same recurrences as RFC 5545 rules.
package schedule
