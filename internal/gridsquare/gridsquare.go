// Package gridsquare converts degree/minute/second coordinates, as written by
// the Wires-X access log, into 6-character Maidenhead grid locators.
package gridsquare

import (
	"math"
	"strconv"
	"strings"
)

// Failed is returned when a coordinate string cannot be converted.
const Failed = "xxxxxx"

const keepers = "0123456789NEWS: "

type dms struct {
	hemisphere string
	degrees    float64
	minutes    float64
	seconds    float64
}

func (c dms) decimal() float64 {
	dd := c.degrees + c.minutes/60 + c.seconds/3600
	if c.hemisphere == "S" || c.hemisphere == "W" {
		dd = -dd
	}
	return dd
}

// FromDMS converts a string such as `N:41 50' 42" / W:088 07' 58"` into a
// locator ("EN51wu"). An empty input yields "", anything unparseable yields
// Failed.
func FromDMS(s string) string {
	if s == "" {
		return ""
	}
	lat, lon, ok := scan(s)
	if !ok {
		return Failed
	}
	return locator(lat.decimal()+90, lon.decimal()+180)
}

func scan(s string) (lat, lon dms, ok bool) {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(keepers, r) {
			b.WriteRune(r)
		}
	}
	tokens := strings.Fields(strings.ReplaceAll(b.String(), ":", " "))

	haveLat := false
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "N", "S":
			group, good := parseGroup(tokens, i)
			if !good {
				return dms{}, dms{}, false
			}
			lat, haveLat = group, true
			i += 3
		case "E", "W":
			group, good := parseGroup(tokens, i)
			if !good || !haveLat {
				return dms{}, dms{}, false
			}
			return lat, group, true
		}
	}
	return dms{}, dms{}, false
}

func parseGroup(tokens []string, at int) (dms, bool) {
	if at+3 >= len(tokens) {
		return dms{}, false
	}
	var vals [3]float64
	for j := range vals {
		v, err := strconv.ParseFloat(tokens[at+1+j], 64)
		if err != nil {
			return dms{}, false
		}
		vals[j] = v
	}
	return dms{hemisphere: tokens[at], degrees: vals[0], minutes: vals[1], seconds: vals[2]}, true
}

func locator(lat, lon float64) string {
	if lat < 0 || lat >= 180 || lon < 0 || lon >= 360 {
		return Failed
	}
	out := []byte{
		'A' + byte(math.Floor(lon/20)),
		'A' + byte(math.Floor(lat/10)),
		'0' + byte(math.Floor(math.Mod(lon, 20)/2)),
		'0' + byte(math.Floor(math.Mod(lat, 10))),
		'a' + byte(math.Floor(math.Mod(lon, 2)*12)),
		'a' + byte(math.Floor(math.Mod(lat, 1)*24)),
	}
	return string(out)
}
