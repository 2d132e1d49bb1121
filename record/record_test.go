package record

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	require.Equal(t, -1, Compare(Record{Key: 1}, Record{Key: 2}))
	require.Equal(t, 1, Compare(Record{Key: 2}, Record{Key: 1}))
	require.Equal(t, 0, Compare(Record{Key: 5}, Record{Key: 5}))
}

func TestLess(t *testing.T) {
	require.True(t, Less(Record{Key: 1}, Record{Key: 2}))
	require.False(t, Less(Record{Key: 2}, Record{Key: 1}))
	require.False(t, Less(Record{Key: 2}, Record{Key: 2}))
}

func TestCheckSorted(t *testing.T) {
	require.True(t, CheckSorted(nil))
	require.True(t, CheckSorted([]Record{{Key: 1}}))
	require.True(t, CheckSorted([]Record{{Key: 1}, {Key: 1}, {Key: 2}}))
	require.False(t, CheckSorted([]Record{{Key: 2}, {Key: 1}}))
}

func TestKeys(t *testing.T) {
	seq := []Record{{Key: 3}, {Key: 1}, {Key: 2}}
	require.Equal(t, []uint64{3, 1, 2}, Keys(seq))
}

func TestGenerator_Deterministic(t *testing.T) {
	g1 := NewDefaultGenerator()
	g2 := NewDefaultGenerator()

	r1 := g1.Generate(100, 16)
	r2 := g2.Generate(100, 16)

	require.Equal(t, r1, r2)
	for _, r := range r1 {
		require.GreaterOrEqual(t, r.Key, uint64(minKey))
		require.LessOrEqual(t, r.Key, uint64(maxKey))
		require.Len(t, r.Payload, 16)
	}
}

func TestGenerator_GenerateWithKeys(t *testing.T) {
	g := NewDefaultGenerator()
	recs, keys := g.GenerateWithKeys(50, 4)
	require.Equal(t, Keys(recs), keys)
}
