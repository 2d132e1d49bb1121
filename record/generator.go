package record

import "math/rand"

// DefaultSeed reproduces the original coursework generator's fixed seed so
// test assertions and performance runs are comparable across invocations
// (spec §6: "a reproducible deterministic source (fixed seed)").
const DefaultSeed = 42

const (
	minKey = 1
	maxKey = 100000
)

// Generator produces records with keys drawn from a reproducible
// deterministic source.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator constructs a Generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// NewDefaultGenerator constructs a Generator seeded with DefaultSeed.
func NewDefaultGenerator() *Generator {
	return NewGenerator(DefaultSeed)
}

// Generate produces n records, each with a key uniformly drawn from
// [1, 100000] and a payload of payloadSize bytes drawn from 'A'-'Z'.
func (g *Generator) Generate(n, payloadSize int) []Record {
	out := make([]Record, n)
	for i := range out {
		out[i] = g.next(payloadSize)
	}
	return out
}

// GenerateWithKeys is Generate's distributed-path sibling: it additionally
// returns the extracted key column, mirroring the original
// generate_input_array_to_distribute, which keeps a separate key array
// alongside the full Record slice for the scatter call.
func (g *Generator) GenerateWithKeys(n, payloadSize int) ([]Record, []uint64) {
	recs := g.Generate(n, payloadSize)
	return recs, Keys(recs)
}

func (g *Generator) next(payloadSize int) Record {
	key := uint64(minKey + g.rng.Intn(maxKey-minKey+1))
	payload := make([]byte, payloadSize)
	for i := range payload {
		payload[i] = byte('A' + g.rng.Intn('Z'-'A'+1))
	}
	return Record{Key: key, Payload: payload}
}
