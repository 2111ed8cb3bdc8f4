package dedupe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errDuplicate = errors.New("duplicate")

func TestTrackerDetectsDuplicate(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.Track("a", errDuplicate))
	require.NoError(t, tr.Track("b", errDuplicate))
	require.ErrorIs(t, tr.Track("a", errDuplicate), errDuplicate)
	require.Equal(t, 2, tr.Count())
}

func TestTrackerSeen(t *testing.T) {
	tr := NewTracker()
	require.False(t, tr.Seen("x"))
	require.NoError(t, tr.Track("x", errDuplicate))
	require.True(t, tr.Seen("x"))
}

func TestTrackerKeysPreservesOrder(t *testing.T) {
	tr := NewTracker()
	for _, k := range []string{"c", "a", "b"} {
		require.NoError(t, tr.Track(k, errDuplicate))
	}
	require.Equal(t, []string{"c", "a", "b"}, tr.Keys())
}

func TestTrackerReset(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.Track("a", errDuplicate))
	tr.Reset()
	require.Equal(t, 0, tr.Count())
	require.False(t, tr.Seen("a"))
	require.NoError(t, tr.Track("a", errDuplicate))
}
