// Package chunkdispatcher implements the dynamic chunk dispatcher pattern
// described in spec §9: a single integer cursor, protected so that
// repeated pulls hand out disjoint fixed-stride intervals of an index
// range. It is the same shape as the Collatz exercise's dynamic index
// scheduler, reused here for leaf-sort dispatch: the Coordinator is its
// only puller, takes leaf ranges from it in order, and assigns the i-th
// leaf to worker i mod P.
package chunkdispatcher

import "sync/atomic"

// Dispatcher hands out disjoint [start, end] index intervals of fixed
// stride over [0, n) to concurrent pullers. It is safe for concurrent use.
type Dispatcher struct {
	n      int
	stride int
	cursor atomic.Int64
}

// New creates a dispatcher over the half-open range [0, n) with the given
// stride. A stride <= 0 is treated as 1.
func New(n, stride int) *Dispatcher {
	if stride <= 0 {
		stride = 1
	}
	return &Dispatcher{n: n, stride: stride}
}

// Chunk is one disjoint interval handed out by Next.
type Chunk struct {
	Start, End int // closed range [Start, End]
}

// Next atomically claims the next chunk of up to Stride elements. The
// second return value is false once the range is exhausted; every prior
// call's chunk, taken together, forms a disjoint cover of [0, n).
func (d *Dispatcher) Next() (Chunk, bool) {
	start := int(d.cursor.Add(int64(d.stride)) - int64(d.stride))
	if start >= d.n {
		return Chunk{}, false
	}
	end := start + d.stride - 1
	if end >= d.n {
		end = d.n - 1
	}
	return Chunk{Start: start, End: end}, true
}
