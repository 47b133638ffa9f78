package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_RecordAndRecent(t *testing.T) {
	s := openTestStore(t)

	for i, mode := range []string{"orbit", "arc", "fixed"} {
		require.NoError(t, s.Record(&Entry{
			SourceFile: "benchy.gcode",
			OutputFile: "benchy_" + mode + ".gcode",
			Mode:       mode,
			Firmware:   "klipper",
			Snapshots:  10 + i,
			LinesIn:    100,
			LinesOut:   180,
		}))
	}

	entries, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "fixed", entries[0].Mode)
	assert.Equal(t, "arc", entries[1].Mode)
}

func TestStore_RecentOnEmptyLedger(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpen_ReopensExistingLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(&Entry{Mode: "orbit", SourceFile: "benchy.gcode"}))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	entries, err := s2.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "orbit", entries[0].Mode)
}
