package sorter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpcsort/mergesort/record"
)

func toRecords(keys ...uint64) []record.Record {
	out := make([]record.Record, len(keys))
	for i, k := range keys {
		out[i] = record.Record{Key: k}
	}
	return out
}

func TestSorter_EightKeysTwoWorkers(t *testing.T) {
	seq := toRecords(5, 3, 8, 1, 7, 2, 6, 4)
	s, err := New(seq, 2, 2)
	require.NoError(t, err)
	require.NoError(t, s.RunUntilDone(context.Background()))
	require.True(t, record.CheckSorted(seq))
	require.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7, 8}, record.Keys(seq))
}

func TestSorter_AllEqualKeysTakesFastPathThroughout(t *testing.T) {
	seq := toRecords(9, 9, 9, 9, 9)
	s, err := New(seq, 3, 0)
	require.NoError(t, err)
	require.NoError(t, s.RunUntilDone(context.Background()))
	require.True(t, record.CheckSorted(seq))
	require.Len(t, seq, 5)
}

func TestSorter_LargeRandomFixedSeed(t *testing.T) {
	g := record.NewDefaultGenerator()
	seq := g.Generate(1000, 4)
	s, err := New(seq, 4, 0)
	require.NoError(t, err)
	require.NoError(t, s.RunUntilDone(context.Background()))
	require.True(t, record.CheckSorted(seq))
	require.Len(t, seq, 1000)
}

func TestSorter_SingleElement(t *testing.T) {
	seq := toRecords(42)
	s, err := New(seq, 4, 0)
	require.NoError(t, err)
	require.NoError(t, s.RunUntilDone(context.Background()))
	require.Equal(t, []uint64{42}, record.Keys(seq))
}

func TestSorter_EmptySequence(t *testing.T) {
	var seq []record.Record
	s, err := New(seq, 4, 0)
	require.NoError(t, err)
	require.NoError(t, s.RunUntilDone(context.Background()))
}

func TestSorter_MoreWorkersThanLeaves(t *testing.T) {
	seq := toRecords(3, 1, 2)
	s, err := New(seq, 8, 1)
	require.NoError(t, err)
	require.NoError(t, s.RunUntilDone(context.Background()))
	require.Equal(t, []uint64{1, 2, 3}, record.Keys(seq))
}

func TestSorter_RejectsNonPositiveWorkerCount(t *testing.T) {
	_, err := New(toRecords(1, 2), 0, 0)
	require.Error(t, err)
}

func TestSorter_RejectsNegativeBaseCase(t *testing.T) {
	_, err := New(toRecords(1, 2), 2, -1)
	require.Error(t, err)
}
