// Package callsign decides whether a log identity looks like an amateur radio
// callsign and, if so, decorates it with a qrz.com lookup link.
package callsign

import (
	"fmt"
	"html"
	"strings"
	"unicode"
)

// LookupURL is the qrz.com database prefix; the site accepts "/" as the
// callsign/suffix delimiter but not "-".
const LookupURL = "https://www.qrz.com/db/"

// Annotate returns s unchanged when it holds no digits (a room or node name),
// otherwise an HTML anchor pointing at the callsign lookup. Any internal
// failure degrades to "*s*".
func Annotate(s string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = "*" + s + "*"
		}
	}()

	runes := []rune(s)
	var digits []int
	for i, r := range runes {
		if unicode.IsDigit(r) {
			digits = append(digits, i)
		}
	}
	if len(digits) == 0 {
		return s
	}

	call := strings.ReplaceAll(s, "-", "/")
	if strings.Contains(call, "/") {
		return anchor(call, s)
	}

	// International format: leading digit, or a second digit near the start.
	if digits[0] == 0 || (len(digits) > 1 && digits[1] < 4) {
		return anchor(call, s)
	}

	pos := digits[0]
	if len(runes)-pos <= 4 {
		return anchor(call, s)
	}

	// Callsign with a concatenated name: assume a 3 letter suffix.
	callRunes := []rune(call)
	canonical := string(callRunes[:pos+4])
	name := string(callRunes[pos+4:])
	return anchor(canonical, canonical+"/"+name)
}

func anchor(call, text string) string {
	return fmt.Sprintf(`<a href="%s%s">%s</a>`, LookupURL, html.EscapeString(call), html.EscapeString(text))
}
