package gridsquare

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromDMS(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"reference example", `N:41 50' 42" / W:088 07' 58"`, "EN51wu"},
		{"southern and eastern hemispheres", `S:33 52' 00" / E:151 12' 00"`, "QF56od"},
		{"extra noise around groups", `pos N 41 50 42 lat, W 088 07 58 lon`, "EN51wu"},
		{"no hemisphere letters", "41 50 42 088 07 58", Failed},
		{"latitude only", `N:41 50' 42"`, Failed},
		{"longitude before latitude", `W:088 07' 58" / N:41 50' 42"`, Failed},
		{"truncated longitude group", `N:41 50' 42" / W:088 07'`, Failed},
		{"out of range latitude", `N:95 00' 00" / W:088 07' 58"`, Failed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromDMS(tt.input))
		})
	}
}

func TestFromDMS_AlwaysSixCharacters(t *testing.T) {
	inputs := []string{
		`N:0 0' 0" / E:0 0' 0"`,
		`S:89 59' 59" / W:179 59' 59"`,
		`N:89 59' 59" / E:179 59' 59"`,
		"NEWS",
		"::::",
	}
	for _, in := range inputs {
		assert.Len(t, FromDMS(in), 6, "input %q", in)
	}
}
