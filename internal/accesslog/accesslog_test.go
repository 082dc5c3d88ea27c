package accesslog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLine = `W9LBR-BILL%E5cN9%W9LBR-BILL%2019/09/25 19:44:39%V-CH%543155503750745F7C6C2078002020202020%N:41 50' 42" / W:088 07' 58"%0%%%%%`

func TestParseLine(t *testing.T) {
	rec, err := ParseLine(sampleLine)
	require.NoError(t, err)

	assert.Equal(t, "W9LBR-BILL", rec.NodeName)
	assert.Equal(t, "E5cN9", rec.RadioID)
	assert.Equal(t, "FT2D", rec.RadioName)
	assert.True(t, rec.RadioKnown)
	assert.Equal(t, "W9LBR-BILL", rec.Callsign)
	assert.Equal(t, "2019/09/25 19:44:39", rec.Timestamp)
	assert.Equal(t, SourceLocalRF, rec.Source)
	assert.Equal(t, "EN51wu", rec.GridLocator)
}

func TestParseLine_ShortLine(t *testing.T) {
	_, err := ParseLine("only%three%fields")
	require.ErrorIs(t, err, ErrShortLine)
}

func TestParseLine_EmptyRadioIDUsesSentinel(t *testing.T) {
	rec, err := ParseLine("ROOM%%ROOM%2020/01/01 00:00:00%Room%%%")
	require.NoError(t, err)
	assert.Equal(t, NoRadioID, rec.RadioID)
	assert.False(t, rec.RadioKnown)
	assert.Equal(t, "", rec.GridLocator)
	assert.Equal(t, SourceRoom, rec.Source)
}

func TestRadioName(t *testing.T) {
	tests := []struct {
		id        string
		want      string
		wantKnown bool
	}{
		{"12345", "Node", true},
		{"21080", "Room", true},
		{"EA1xx", "FT3-D", true},
		{"HFzzz", "FTM-7250D", true},
		{"ZZ123", "?ZZ123?", false},
		{"E", "?E?", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, known := RadioName(tt.id)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantKnown, known)
		})
	}
}

func TestSourceLabels(t *testing.T) {
	assert.Equal(t, "Internet", ParseSource("Net").Label())
	assert.Equal(t, "Local/RF", ParseSource("V-CH").Label())
	assert.Equal(t, "Room    ", ParseSource("Room").Label())
	assert.Equal(t, "?source?", ParseSource("bogus").Label())
	for _, s := range []Source{SourceUnknown, SourceInternet, SourceLocalRF, SourceRoom} {
		assert.Len(t, s.Label(), 8)
	}
}
