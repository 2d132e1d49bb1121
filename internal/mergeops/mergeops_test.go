package mergeops

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpcsort/mergesort/record"
)

func recs(keys ...uint64) []record.Record {
	out := make([]record.Record, len(keys))
	for i, k := range keys {
		out[i] = record.Record{Key: k}
	}
	return out
}

func keysOf(seq []record.Record) []uint64 {
	out := make([]uint64, len(seq))
	for i, r := range seq {
		out[i] = r.Key
	}
	return out
}

func TestSortInplace_SortsRangeOnly(t *testing.T) {
	seq := recs(9, 5, 3, 8, 1, 0)
	SortInplace(seq, 1, 4)
	require.Equal(t, []uint64{9, 1, 3, 5, 8, 0}, keysOf(seq))
}

func TestMergeInplace_Basic(t *testing.T) {
	seq := recs(1, 3, 5, 2, 4, 6)
	MergeInplace(seq, 0, 2, 5)
	require.True(t, record.CheckSorted(seq))
	require.Equal(t, []uint64{1, 2, 3, 4, 5, 6}, keysOf(seq))
}

func TestMergeInplace_FastPathNoWork(t *testing.T) {
	seq := recs(1, 2, 3, 4, 5, 6)
	MergeInplace(seq, 0, 2, 5)
	require.Equal(t, []uint64{1, 2, 3, 4, 5, 6}, keysOf(seq))
}

func TestMergeInplace_AllEqualKeysTakesFastPath(t *testing.T) {
	seq := recs(9, 9, 9, 9, 9)
	MergeInplace(seq, 0, 2, 4)
	require.Equal(t, []uint64{9, 9, 9, 9, 9}, keysOf(seq))
}

func TestMergeInplace_SingleElementHalves(t *testing.T) {
	seq := recs(2, 1)
	MergeInplace(seq, 0, 0, 1)
	require.Equal(t, []uint64{1, 2}, keysOf(seq))
}

func TestMergeAppending_MergesDisjointSortedSlices(t *testing.T) {
	left := recs(1, 3, 5)
	right := recs(2, 4, 6)
	merged := MergeAppending(left, right)
	require.True(t, record.CheckSorted(merged))
	require.Equal(t, []uint64{1, 2, 3, 4, 5, 6}, keysOf(merged))
}

func TestMergeAppending_EmptyRight(t *testing.T) {
	left := recs(1, 2, 3)
	merged := MergeAppending(left, nil)
	require.Equal(t, []uint64{1, 2, 3}, keysOf(merged))
}

func TestMergeAppending_EmptyLeft(t *testing.T) {
	right := recs(1, 2, 3)
	merged := MergeAppending(nil, right)
	require.Equal(t, []uint64{1, 2, 3}, keysOf(merged))
}

func TestMergeAppending_PreservesKeyMultiset(t *testing.T) {
	g := record.NewDefaultGenerator()
	a := g.Generate(137, 4)
	b := g.Generate(263, 4)
	sort.Slice(a, func(i, j int) bool { return record.Less(a[i], a[j]) })
	sort.Slice(b, func(i, j int) bool { return record.Less(b[i], b[j]) })

	merged := MergeAppending(append([]record.Record(nil), a...), b)
	require.Len(t, merged, len(a)+len(b))
	require.True(t, record.CheckSorted(merged))

	want := make(map[uint64]int)
	for _, r := range a {
		want[r.Key]++
	}
	for _, r := range b {
		want[r.Key]++
	}
	got := make(map[uint64]int)
	for _, r := range merged {
		got[r.Key]++
	}
	require.Equal(t, want, got)
}
