// Package record defines the datum being sorted and the strict total
// ordering over it, the single contract every other package in this
// module depends on.
package record

// Record is an entity with two attributes: Key (an unsigned 64-bit
// integer) and Payload (an opaque byte sequence, length fixed at
// generation time for the run). Records are compared solely by Key;
// Payload is carried and moved but never inspected.
type Record struct {
	Key     uint64
	Payload []byte
}

// Less reports whether a sorts before b by key. Equal keys are neither
// less nor greater; the sort does not promise to preserve their relative
// input order (spec §1 Non-goals: stability is not required).
func Less(a, b Record) bool {
	return a.Key < b.Key
}

// Compare returns -1, 0, or 1 according to a.Key versus b.Key.
func Compare(a, b Record) int {
	switch {
	case a.Key < b.Key:
		return -1
	case a.Key > b.Key:
		return 1
	default:
		return 0
	}
}

// CheckSorted returns true iff every adjacent pair in seq is
// non-decreasing by key. Used only by tests and post-conditions, never by
// the sort itself.
func CheckSorted(seq []Record) bool {
	for i := 1; i < len(seq); i++ {
		if seq[i-1].Key > seq[i].Key {
			return false
		}
	}
	return true
}

// Keys extracts the key column of seq, e.g. for a distributed scatter
// that separates keys from their records (mirroring the original's
// generate_input_array_to_distribute, which hands a sender the keys
// separately from the full Record slice).
func Keys(seq []Record) []uint64 {
	keys := make([]uint64, len(seq))
	for i, r := range seq {
		keys[i] = r.Key
	}
	return keys
}
