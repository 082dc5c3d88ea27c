// Package logtail provides tolerant readers for the Wires-X access log.
//
// # Overview
//
// WiresAccess.log is appended to by a Windows application and its byte
// encoding is not reliable: node names and remarks occasionally contain bytes
// from legacy code pages. Everything in this package decodes permissively so
// that one bad byte never hides an otherwise readable log.
//
// # Core Functionality
//
//  1. ReadAll: the whole file as a string, ill-formed UTF-8 replaced by U+FFFD
//  2. Read: the last N lines (or all of them) using a ring buffer
//  3. ModTime: a cheap stat so callers only read when the file was touched
//
// # Reading Log Files
//
// The Read function uses a ring buffer algorithm to extract the last maxLines
// from a file, regardless of file size:
//
//  1. Allocate ring buffer of size maxLines
//  2. For each line in file store it at the current index, wrapping at maxLines
//  3. If fewer than maxLines were seen return them in order, otherwise
//     return the buffer starting at the oldest entry
//
// Example usage:
//
//	lines, err := logtail.Read(cfg.AccessLog, 20)
//	if err != nil {
//		log.Error("tail access log", "err", err)
//	}
//
// # Error Handling
//
// Read returns nil, nil for non-existent files (graceful degradation), as does
// ModTime (exists=false). ReadAll treats a missing file as an error because
// callers only invoke it after ModTime reported the file present.
//
// # Design Rationale
//
// This package only reads. Change detection, parsing and rendering live in
// the lastheard and accesslog packages; scheduling of reads is the poller's
// job.
package logtail
