package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		Occurrence:     "2nd",
		Weekday:        "Mon",
		Hour:           "14",
		Minute:         "30",
		Timezone:       "UTC",
		Description:    "Regional net",
		TimeoutMinutes: "30",
		Command:        "Connect",
		Argument:       "21080",
	}
}

func TestBuild_Valid(t *testing.T) {
	e, err := Build(validDraft())
	require.NoError(t, err)
	assert.Equal(t, Second, e.Occurrence)
	assert.Equal(t, Monday, e.Weekday)
	assert.Equal(t, 14, e.Hour)
	assert.Equal(t, 30, e.Minute)
	assert.Equal(t, CommandConnect, e.Command)
	assert.Equal(t, "21080", e.Argument)
	assert.Equal(t, 30, e.TimeoutMinutes)
}

func TestBuild_Problems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		want   []string
	}{
		{
			name:   "connect argument too small",
			mutate: func(d *Draft) { d.Argument = "5" },
			want:   []string{"Argument must be a valid Node or Room number (between 10000 and 99999 inclusive)"},
		},
		{
			name:   "timeout above range",
			mutate: func(d *Draft) { d.TimeoutMinutes = "61" },
			want:   []string{"Timeout must be a number between 5 and 60 inclusive"},
		},
		{
			name: "argument and timeout together",
			mutate: func(d *Draft) {
				d.Argument = "5"
				d.TimeoutMinutes = "61"
			},
			want: []string{
				"Argument must be a valid Node or Room number (between 10000 and 99999 inclusive)",
				"Timeout must be a number between 5 and 60 inclusive",
			},
		},
		{
			name:   "any day needs every",
			mutate: func(d *Draft) { d.Weekday = "Any" },
			want:   []string{"Day of Week Any requires Occurs every"},
		},
		{
			name:   "hour out of range",
			mutate: func(d *Draft) { d.Hour = "24" },
			want:   []string{`"24" is not a valid Hour setting`},
		},
		{
			name:   "minute not numeric",
			mutate: func(d *Draft) { d.Minute = "3o" },
			want:   []string{`"3o" is not a valid Minute setting`},
		},
		{
			name:   "unknown zone",
			mutate: func(d *Draft) { d.Timezone = "Mars/Olympus_Mons" },
			want:   []string{`"Mars/Olympus_Mons" is not a recognized timezone`},
		},
		{
			name:   "unknown occurrence and command",
			mutate: func(d *Draft) { d.Occurrence = "6th"; d.Command = "Explode" },
			want:   []string{`"6th" is not a valid Occurs setting`, `"Explode" is not a valid command`},
		},
		{
			name:   "return to room without id",
			mutate: func(d *Draft) { d.ReturnToRoomEnabled = true },
			want:   []string{"Return to room is enabled but no room ID was given"},
		},
		{
			name:   "numeric room id out of range",
			mutate: func(d *Draft) { d.ReturnToRoomEnabled = true; d.ReturnToRoomID = "12345" },
			want:   []string{"Return to room ID 12345 must be between 20000 and 89999 inclusive"},
		},
		{
			name:   "room name too long",
			mutate: func(d *Draft) { d.ReturnToRoomID = "AMERICA-LINK-ROOM-X" },
			want:   []string{`Return to room ID "AMERICA-LINK-ROOM-X" is longer than 16 characters`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			_, err := Build(d)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "err = %v", err)
			assert.Equal(t, tt.want, verr.Problems)
		})
	}
}

func TestBuild_NonConnectBlanksArgument(t *testing.T) {
	d := validDraft()
	d.Command = "Disconnect"
	d.Argument = "not a node"
	e, err := Build(d)
	require.NoError(t, err)
	assert.Empty(t, e.Argument)
}

func TestBuild_UnlimitedTimeoutSkipsRange(t *testing.T) {
	d := validDraft()
	d.UnlimitedTimeout = true
	d.TimeoutMinutes = "999"
	e, err := Build(d)
	require.NoError(t, err)
	assert.True(t, e.UnlimitedTimeout)
	assert.Equal(t, DefaultTimeoutMinutes, e.TimeoutMinutes)
}

func TestBuild_RoomAccepted(t *testing.T) {
	for _, id := range []string{"21080", "AMERICA-LINK"} {
		d := validDraft()
		d.ReturnToRoomEnabled = true
		d.ReturnToRoomID = id
		e, err := Build(d)
		require.NoError(t, err, id)
		assert.Equal(t, id, e.ReturnToRoomID)
	}
}

func TestRecord_RoundTrip(t *testing.T) {
	d := validDraft()
	d.PermitRoundQSO = true
	d.ReturnToRoomEnabled = true
	d.ReturnToRoomID = "AMERICA-LINK"
	e, err := Build(d)
	require.NoError(t, err)

	rec := e.Draft().Record()
	require.Len(t, rec, RecordLen)
	assert.Equal(t, []string{
		"2nd", "Mon", "14", "30", "UTC", "Regional net",
		"true", "false", "false", "true", "AMERICA-LINK",
		"false", "30", "Connect", "21080",
	}, rec)

	back, err := DraftFromRecord(rec)
	require.NoError(t, err)
	e2, err := Build(back)
	require.NoError(t, err)
	assert.Equal(t, e, e2)
}

func TestDraftFromRecord_Invalid(t *testing.T) {
	_, err := DraftFromRecord([]string{"every", "Mon"})
	assert.Error(t, err)

	rec := DefaultDraft().Record()
	rec[6] = "maybe"
	_, err = DraftFromRecord(rec)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Problems, 1)
}
