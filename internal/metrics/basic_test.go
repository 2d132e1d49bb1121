package metrics

import (
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBasicProvider_Counter_ReusedAndAccumulates(t *testing.T) {
	p := NewBasicProvider()

	c1 := p.Counter("tasks_dispatched")
	c2 := p.Counter("tasks_dispatched")
	require.Equal(t, reflect.ValueOf(c1).Pointer(), reflect.ValueOf(c2).Pointer())

	bc, ok := c1.(*BasicCounter)
	require.True(t, ok)

	c1.Add(3)
	c2.Add(2)
	require.Equal(t, int64(5), bc.Snapshot())

	cOther := p.Counter("other")
	require.NotEqual(t, reflect.ValueOf(c1).Pointer(), reflect.ValueOf(cOther).Pointer())
}

func TestBasicProvider_UpDownCounter_ReusedAndMoves(t *testing.T) {
	p := NewBasicProvider()
	u1 := p.UpDownCounter("inflight_tasks")
	u2 := p.UpDownCounter("inflight_tasks")
	require.Equal(t, reflect.ValueOf(u1).Pointer(), reflect.ValueOf(u2).Pointer())

	bu, ok := u1.(*BasicUpDownCounter)
	require.True(t, ok)

	u1.Add(+3)
	u2.Add(-1)
	u1.Add(+10)
	require.Equal(t, int64(12), bu.Snapshot())
}

func TestBasicProvider_Histogram_RecordsStats(t *testing.T) {
	p := NewBasicProvider()
	h := p.Histogram("level_duration_seconds")

	bh, ok := h.(*BasicHistogram)
	require.True(t, ok)

	h.Record(0.1)
	h.Record(0.3)
	h.Record(0.2)
	s := bh.Snapshot()
	require.Equal(t, int64(3), s.Count)
	require.Equal(t, 0.1, s.Min)
	require.Equal(t, 0.3, s.Max)
	require.InDelta(t, 0.6, s.Sum, 0.01)
	require.InDelta(t, 0.2, s.Mean, 0.01)
}

func TestBasicProvider_Concurrent_GetSameInstrument(t *testing.T) {
	p := NewBasicProvider()
	n := 50
	ptrs := make([]uintptr, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(idx int) {
			defer wg.Done()
			c := p.Counter("shared")
			ptrs[idx] = reflect.ValueOf(c).Pointer()
		}(i)
	}
	wg.Wait()
	for i := 1; i < n; i++ {
		require.Equal(t, ptrs[0], ptrs[i])
	}
}

func TestBasicProvider_Concurrent_CounterAdd(t *testing.T) {
	p := NewBasicProvider()
	c := p.Counter("leaf_sorts_completed")
	bc := c.(*BasicCounter)

	workers := runtime.NumCPU() * 2
	iters := 1000
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int64(workers*iters), bc.Snapshot())
}
