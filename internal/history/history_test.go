package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AppendAndRecent(t *testing.T) {
	s, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	ctx := context.Background()

	base := time.Date(2024, time.January, 8, 14, 30, 0, 0, time.UTC)
	for i, req := range []string{"Connect 21080", "Disconnect", "Restart"} {
		e, err := s.Append(ctx, Entry{
			At:        base.Add(time.Duration(i) * time.Minute),
			ClockText: "2024/01/08",
			Request:   req,
			Status:    "ok",
			OK:        true,
		})
		require.NoError(t, err)
		_, err = uuid.Parse(e.ID)
		assert.NoError(t, err)
	}

	got, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Restart", got[0].Request)
	assert.Equal(t, "Disconnect", got[1].Request)
	assert.True(t, got[0].At.Equal(base.Add(2*time.Minute)))
	assert.True(t, got[0].OK)

	none, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Append(ctx, Entry{ID: "fixed", Request: "Force disconnect", Status: "EXCEPTION during: Force disconnect: refused"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fixed", got[0].ID)
	assert.False(t, got[0].OK)
	assert.False(t, got[0].At.IsZero())
}

func TestEntry_Line(t *testing.T) {
	e := Entry{ClockText: "2024/01/08 14:30:00 (2nd Mon)", Request: "Restart", Status: "done"}
	assert.Equal(t, "2024/01/08 14:30:00 (2nd Mon) Restart: done", e.Line())
}
