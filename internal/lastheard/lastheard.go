// Package lastheard turns WiresAccess.log into the "last heard" listing and
// its HTML artifact, re-rendering only when the log content changed.
package lastheard

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"
	"github.com/microcosm-cc/bluemonday"

	"github.com/five82/wxsched/internal/accesslog"
	"github.com/five82/wxsched/internal/callsign"
	"github.com/five82/wxsched/internal/logtail"
)

// radioColumn is the display width of the radio model column.
const radioColumn = 9

// Result describes one Refresh. Plain and HTML are only set when Changed.
type Result struct {
	Changed     bool
	Plain       []string
	HTML        []string
	Records     []accesslog.Record
	Diagnostics []string

	// WriteErr is set when the HTML artifact could not be written. It does
	// not affect Changed.
	WriteErr error
}

// Differ watches one log file. It is not safe for concurrent use.
type Differ struct {
	target string
	policy *bluemonday.Policy

	modTime time.Time
	sum     uint64
	primed  bool

	pendingWrite bool
	plain   []string
	html    []string
}

// NewDiffer returns a Differ that writes the HTML artifact to target. An
// empty target disables the artifact.
func NewDiffer(target string) *Differ {
	return &Differ{target: target, policy: linkPolicy()}
}

func linkPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("https")
	p.RequireParseableURLs(true)
	return p
}

// Plain returns the last good plain projection.
func (d *Differ) Plain() []string { return d.plain }

// HTML returns the last good HTML projection.
func (d *Differ) HTML() []string { return d.html }

// Refresh re-reads path if its modification time moved. A missing file, an
// untouched file and a touched file with identical content all return a zero
// Result and nil error, except that a failed artifact write is retried and
// its outcome reported in WriteErr. A read failure returns the error and keeps the
// previous projections; the next call retries.
func (d *Differ) Refresh(path string) (Result, error) {
	mod, exists, err := logtail.ModTime(path)
	if err != nil {
		return Result{}, err
	}
	if !exists {
		return Result{}, nil
	}
	if d.primed && mod.Equal(d.modTime) {
		return d.retryWrite(), nil
	}

	content, err := logtail.ReadAll(path)
	if err != nil {
		return Result{}, err
	}
	d.modTime = mod

	sum := xxhash.Sum64String(content)
	if d.primed && sum == d.sum {
		return d.retryWrite(), nil
	}
	d.primed = true
	d.sum = sum

	res := d.render(content)
	d.plain, d.html = res.Plain, res.HTML
	res.Changed = true

	res.WriteErr = d.write(res.HTML)
	for _, msg := range res.Diagnostics {
		log.Debug("last heard", "diagnostic", msg)
	}
	return res, nil
}

// write publishes html to the target. A failure leaves the write pending so
// the next Refresh retries it even when the log did not change.
func (d *Differ) write(html []string) error {
	d.pendingWrite = false
	if d.target == "" {
		return nil
	}
	if err := writeDocument(d.target, html); err != nil {
		d.pendingWrite = true
		return fmt.Errorf("write last heard html: %w", err)
	}
	return nil
}

func (d *Differ) retryWrite() Result {
	if !d.pendingWrite {
		return Result{}
	}
	return Result{WriteErr: d.write(d.html)}
}

func (d *Differ) render(content string) Result {
	var res Result
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		rec, err := accesslog.ParseLine(line)
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("Ignoring %v [%s]", err, line))
			continue
		}
		if !rec.RadioKnown {
			res.Diagnostics = append(res.Diagnostics, fmt.Sprintf("Corrupt radio ID {%s} [%s]", rec.RadioID, line))
		}
		res.Records = append(res.Records, rec)
		res.Plain = append(res.Plain, PlainLine(rec))
		res.HTML = append(res.HTML, d.policy.Sanitize(HTMLLine(rec)))
	}
	sort.Strings(res.Plain)
	sort.Strings(res.HTML)
	return res
}

// PlainLine renders a record for terminals.
func PlainLine(r accesslog.Record) string {
	station := r.Callsign
	if r.Callsign != r.NodeName {
		station += " {" + r.NodeName + "}"
	}
	return fmt.Sprintf("%s %s [%s] %s %s %s",
		r.Timestamp, r.Source.Label(), r.RadioID, radioCell(r.RadioName), station, r.GridLocator)
}

// HTMLLine renders a record with callsigns linked to their lookup page.
// Everything else is escaped.
func HTMLLine(r accesslog.Record) string {
	esc := html.EscapeString
	station := link(r.Callsign)
	if r.Callsign != r.NodeName {
		station += " {" + link(r.NodeName) + "}"
	}
	return fmt.Sprintf("%s %s [%s] %s %s %s",
		esc(r.Timestamp), esc(r.Source.Label()), esc(r.RadioID), esc(radioCell(r.RadioName)), station, esc(r.GridLocator))
}

// link annotates an identity, escaping it when it is not a callsign.
func link(s string) string {
	if out := callsign.Annotate(s); out != s {
		return out
	}
	return html.EscapeString(s)
}

func radioCell(name string) string {
	return runewidth.FillRight(runewidth.Truncate(name, radioColumn, ""), radioColumn)
}
