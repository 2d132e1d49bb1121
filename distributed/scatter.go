package distributed

import "github.com/hpcsort/mergesort/record"

// ChunkPlan describes one rank's share of the input (spec §4.4.2): a
// contiguous, half-open-by-count slice of the full record set, expressed
// as explicit count and displacement so the last chunk's shorter length
// is handled exactly.
type ChunkPlan struct {
	Rank         int
	Count        int
	Displacement int
}

// PlanScatter divides n records across p' participants into contiguous
// chunks of size ceil(n/p') each, the last possibly shorter (spec §4.4.2).
func PlanScatter(n, pPrime int) []ChunkPlan {
	if pPrime <= 0 {
		return nil
	}
	base := (n + pPrime - 1) / pPrime
	plans := make([]ChunkPlan, pPrime)
	disp := 0
	for r := 0; r < pPrime; r++ {
		count := base
		if disp+count > n {
			count = n - disp
		}
		if count < 0 {
			count = 0
		}
		plans[r] = ChunkPlan{Rank: r, Count: count, Displacement: disp}
		disp += count
	}
	return plans
}

// Scatter slices all into the per-rank chunks described by plans. The
// slices alias all's backing array; rank 0 (the origin, spec §4.4.1) must
// not mutate a chunk it has handed off until ownership returns through a
// merge round.
func Scatter(all []record.Record, plans []ChunkPlan) [][]record.Record {
	out := make([][]record.Record, len(plans))
	for _, p := range plans {
		out[p.Rank] = all[p.Displacement : p.Displacement+p.Count]
	}
	return out
}

// BaseChunkSize returns ceil(n/p'), the size used to upper-bound every
// level's pre-posted receive buffer (spec §4.4.5).
func BaseChunkSize(n, pPrime int) int {
	if pPrime <= 0 {
		return n
	}
	return (n + pPrime - 1) / pPrime
}
