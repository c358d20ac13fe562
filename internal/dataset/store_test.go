package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halfmoss/quern/internal/tabular"
)

func testFrame(t *testing.T, csv string) *tabular.Frame {
	t.Helper()
	f, err := tabular.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return f
}

func TestStore_PutAndGet(t *testing.T) {
	t.Parallel()

	s := NewStore()
	defer s.Release()

	replaced := s.Put("iris", testFrame(t, "a\n1\n"))
	assert.False(t, replaced)

	f, ok := s.Get("iris")
	require.True(t, ok)
	assert.Equal(t, 1, f.NumRows())

	_, ok = s.Get("ghost")
	assert.False(t, ok)
}

func TestStore_PutReplaces(t *testing.T) {
	t.Parallel()

	s := NewStore()
	defer s.Release()

	s.Put("d", testFrame(t, "a\n1\n"))
	replaced := s.Put("d", testFrame(t, "a\n1\n2\n"))
	assert.True(t, replaced)

	f, ok := s.Get("d")
	require.True(t, ok)
	assert.Equal(t, 2, f.NumRows())
	assert.Equal(t, 1, s.Len())
}

func TestStore_Names(t *testing.T) {
	t.Parallel()

	s := NewStore()
	defer s.Release()

	s.Put("zeta", testFrame(t, "a\n1\n"))
	s.Put("alpha", testFrame(t, "a\n1\n"))
	assert.Equal(t, []string{"alpha", "zeta"}, s.Names())
}

func TestStore_SnapshotIsDetached(t *testing.T) {
	t.Parallel()

	s := NewStore()
	defer s.Release()

	s.Put("d", testFrame(t, "a\n1\n"))
	snap := s.Snapshot()
	require.Len(t, snap, 1)

	// Rebinding in the snapshot must not touch the store.
	snap["d"] = nil
	snap["extra"] = nil
	f, ok := s.Get("d")
	require.True(t, ok)
	assert.NotNil(t, f)
	assert.Equal(t, 1, s.Len())

	// The snapshot shares frames with the store.
	snap2 := s.Snapshot()
	assert.Same(t, f, snap2["d"])
}

func TestStore_Release(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.Put("a", testFrame(t, "x\n1\n"))
	s.Put("b", testFrame(t, "x\n1\n"))

	s.Release()
	assert.Equal(t, 0, s.Len())

	// The store stays usable after a release.
	s.Put("c", testFrame(t, "x\n1\n"))
	assert.Equal(t, 1, s.Len())
	s.Release()
}
