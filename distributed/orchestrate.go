package distributed

import (
	"context"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hpcsort/mergesort/internal/errs"
	"github.com/hpcsort/mergesort/internal/metrics"
	"github.com/hpcsort/mergesort/record"
)

// maxMessageCount is the platform's per-message element count limit (spec
// §4.4.6), sized like MPI's int-typed count parameters (the transport this
// design is grounded on, e.g. MPI_Scatter's count argument). The wire
// format itself carries no count field; Run refuses any array larger than
// this limit before scattering it.
var maxMessageCount = math.MaxInt32

// RunConfig parameterizes a single-process simulation of a distributed
// run: all P' ranks execute in this process over LocalTransport, which is
// useful for integration tests and the CLI's non-networked mode. A real
// multi-host deployment instead constructs one Rank per process with an
// RPCTransport dialed to its peers.
type RunConfig struct {
	Participants int // P before power-of-two reduction (spec §4.4.1)
	LocalWorkers int
	BaseCaseSize int
	PayloadSize  int

	Log      *zap.Logger
	Provider metrics.Provider
}

// Run scatters all across ActiveParticipants(cfg.Participants) simulated
// ranks, sorts and merges them, and returns the fully sorted sequence
// rank 0 ends up owning (spec §4.4.1: "Rank 0 ... receives the fully
// sorted output").
func Run(ctx context.Context, cfg RunConfig, all []record.Record) ([]record.Record, error) {
	if len(all) > maxMessageCount {
		return nil, errs.ConfigurationError("array size %d exceeds the platform's per-message count limit %d", len(all), maxMessageCount)
	}

	pPrime := ActiveParticipants(cfg.Participants)
	if pPrime <= 0 {
		return nil, errs.ConfigurationError("participant count must be positive, got %d", cfg.Participants)
	}
	if pPrime < cfg.Participants {
		log := cfg.Log
		if log == nil {
			log = zap.NewNop()
		}
		log.Warn("participant count is not a power of two; excluding surplus ranks",
			zap.Int("requested", cfg.Participants), zap.Int("active", pPrime))
	}

	plans := PlanScatter(len(all), pPrime)
	chunks := Scatter(all, plans)
	transports := NewLocalTransports(pPrime)

	results := make([][]record.Record, pPrime)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < pPrime; i++ {
		i := i
		g.Go(func() error {
			rank := NewRank(RankConfig{
				Rank:         i,
				Participants: cfg.Participants,
				LocalWorkers: cfg.LocalWorkers,
				BaseCaseSize: cfg.BaseCaseSize,
				PayloadSize:  cfg.PayloadSize,
			}, transports[i], WithRankLogger(cfg.Log), WithRankMetrics(cfg.Provider))

			owned, err := rank.Run(gctx, chunks[i])
			if err != nil {
				return err
			}
			results[i] = owned
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	final := results[0]
	if !record.CheckSorted(final) {
		return nil, errs.PostConditionError("distributed output is not sorted")
	}
	return final, nil
}
