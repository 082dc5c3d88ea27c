// Package accesslog parses the '%'-delimited records Wires-X appends to
// WiresAccess.log.
//
// A typical line looks like:
//
//	W9LBR-BILL%E5cN9%W9LBR-BILL%2019/09/25 19:44:39%V-CH%5431555037...%N:41 50' 42" / W:088 07' 58"%0%%%%%
//
// Only the first seven fields are interpreted.
package accesslog

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/five82/wxsched/internal/gridsquare"
)

// MinFields is the number of '%' separated fields a usable line carries.
const MinFields = 7

// NoRadioID replaces an empty radio ID field.
const NoRadioID = "_null"

// ErrShortLine marks a line with fewer than MinFields fields.
var ErrShortLine = errors.New("access log line has too few fields")

// Source identifies how a station reached the node.
type Source int

const (
	SourceUnknown Source = iota
	SourceInternet
	SourceLocalRF
	SourceRoom
)

// ParseSource maps the log lexicon onto a Source.
func ParseSource(s string) Source {
	switch s {
	case "Net":
		return SourceInternet
	case "V-CH":
		return SourceLocalRF
	case "Room":
		return SourceRoom
	default:
		return SourceUnknown
	}
}

// Label returns the fixed 8 column label used in the last heard listing.
func (s Source) Label() string {
	switch s {
	case SourceInternet:
		return "Internet"
	case SourceLocalRF:
		return "Local/RF"
	case SourceRoom:
		return "Room    "
	default:
		return "?source?"
	}
}

// Record is one parsed access log line.
type Record struct {
	NodeName    string
	RadioID     string
	RadioName   string
	Callsign    string
	Timestamp   string
	Source      Source
	Payload     string
	GridLocator string

	// RadioKnown is false when RadioName is the "?id?" placeholder.
	RadioKnown bool
}

// ParseLine splits one log line into a Record. Lines with fewer than
// MinFields fields return ErrShortLine.
func ParseLine(line string) (Record, error) {
	f := strings.Split(line, "%")
	if len(f) < MinFields {
		return Record{}, fmt.Errorf("%w: %d fields", ErrShortLine, len(f))
	}

	rec := Record{
		NodeName:    f[0],
		RadioID:     f[1],
		Callsign:    f[2],
		Timestamp:   f[3],
		Source:      ParseSource(f[4]),
		Payload:     f[5],
		GridLocator: gridsquare.FromDMS(f[6]),
	}
	if rec.RadioID == "" {
		rec.RadioID = NoRadioID
	}
	rec.RadioName, rec.RadioKnown = RadioName(rec.RadioID)
	return rec, nil
}

// radioModels is keyed by the first two characters of a radio ID.
var radioModels = map[string]string{
	"E0": "FT1-D",
	"E5": "FT2D",
	"EA": "FT3-D",
	"F0": "FTM-400D",
	"F5": "FTM-100D",
	"FA": "FTM-300D",
	"G0": "FT-991",
	"H0": "FTM-3200D",
	"H5": "FT-70D",
	"HA": "FTM-3207D",
	"HF": "FTM-7250D",
	"R0": "DR-1X",
	"R5": "DR-2X",
}

// RadioName resolves a radio ID to a model name. Purely numeric IDs are nodes
// (odd leading digit) or rooms (even leading digit). Unknown models return
// "?id?" and false.
func RadioName(id string) (string, bool) {
	if isNumeric(id) {
		if (id[0]-'0')%2 == 1 {
			return "Node", true
		}
		return "Room", true
	}
	if len(id) >= 2 {
		if name, ok := radioModels[id[:2]]; ok {
			return name, true
		}
	}
	return "?" + id + "?", false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
