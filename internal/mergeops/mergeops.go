// Package mergeops implements the correctness-critical kernels of spec
// §4.2: SortInplace, MergeInplace, and MergeAppending. All three operate
// on contiguous record slices; none returns a new buffer for the sorted
// range itself (MergeAppending grows its destination, but the union
// always ends up addressable through the same slice header the caller
// holds after the call returns).
package mergeops

import (
	"sort"

	"github.com/hpcsort/mergesort/record"
)

// SortInplace sorts the closed range [start, end] of seq in place. Go's
// sort.Slice is introsort-derived (quicksort with a heapsort fallback),
// giving the O(n log n) worst case spec §4.2 requires without hand-rolling
// a comparison sort.
func SortInplace(seq []record.Record, start, end int) {
	view := seq[start : end+1]
	sort.Slice(view, func(i, j int) bool {
		return record.Less(view[i], view[j])
	})
}

// MergeInplace merges the two adjacent sorted halves [start, middle] and
// [middle+1, end] of seq, leaving [start, end] sorted. Precondition: both
// halves are already sorted.
//
// Fast-path shortcut: if the right half's first element is not less than
// the left half's last element, the two halves are already in order
// across the boundary and the function returns without doing any work.
func MergeInplace(seq []record.Record, start, middle, end int) {
	if middle+1 <= end && !record.Less(seq[middle+1], seq[middle]) {
		return
	}

	left := append([]record.Record(nil), seq[start:middle+1]...)
	right := seq[middle+1 : end+1]

	i, j, k := 0, 0, start
	for i < len(left) && j < len(right) {
		if record.Less(right[j], left[i]) {
			seq[k] = right[j]
			j++
		} else {
			seq[k] = left[i]
			i++
		}
		k++
	}
	for i < len(left) {
		seq[k] = left[i]
		i++
		k++
	}
	// Any remaining right-half elements are already in place at seq[k:end+1].
}

// MergeAppending merges two disjoint, separately-allocated sorted slices.
// It grows left to hold both, performs a tail-to-head merge (descending
// write index so the last write position never overlaps an unread source
// cell in left), and returns left fully sorted and holding
// len(left)+len(right) elements.
//
// This is used only by the distributed layer, where the right half
// arrives via message passing into a separate buffer rather than being
// adjacent in the same backing array (spec §4.2).
func MergeAppending(left, right []record.Record) []record.Record {
	origLeftLen := len(left)
	total := origLeftLen + len(right)
	if cap(left) < total {
		grown := make([]record.Record, origLeftLen, total)
		copy(grown, left)
		left = grown
	}
	left = left[:total]

	i := origLeftLen - 1 // last index of the original left data
	j := len(right) - 1
	k := total - 1

	for i >= 0 && j >= 0 {
		if record.Less(right[j], left[i]) {
			left[k] = left[i]
			i--
		} else {
			left[k] = right[j]
			j--
		}
		k--
	}
	for j >= 0 {
		left[k] = right[j]
		j--
		k--
	}
	// Any remaining original left-half elements are already at left[0:k+1].
	return left
}
