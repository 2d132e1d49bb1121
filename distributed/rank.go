package distributed

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/hpcsort/mergesort/internal/errs"
	"github.com/hpcsort/mergesort/internal/mergeops"
	"github.com/hpcsort/mergesort/internal/metrics"
	"github.com/hpcsort/mergesort/record"
	"github.com/hpcsort/mergesort/sorter"
)

// RankConfig describes one participant's view of a distributed run.
type RankConfig struct {
	Rank         int
	Participants int // raw P before power-of-two reduction

	LocalWorkers int
	BaseCaseSize int // local Task-Graph Sorter base-case; 0 derives

	PayloadSize int
}

// Rank runs the Distributed Merge Tree's per-rank lifecycle (spec §4.4)
// over transport: local sort, then log2(P') rounds of send-or-merge.
type Rank struct {
	cfg       RankConfig
	transport Transport
	log       *zap.Logger
	provider  metrics.Provider
	tracer    trace.Tracer
}

// RankOption configures a Rank.
type RankOption func(*Rank)

func WithRankLogger(log *zap.Logger) RankOption {
	return func(r *Rank) { r.log = log }
}

func WithRankMetrics(p metrics.Provider) RankOption {
	return func(r *Rank) { r.provider = p }
}

func WithRankTracer(t trace.Tracer) RankOption {
	return func(r *Rank) { r.tracer = t }
}

// NewRank constructs a Rank that communicates over transport.
func NewRank(cfg RankConfig, transport Transport, opts ...RankOption) *Rank {
	r := &Rank{cfg: cfg, transport: transport}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.provider == nil {
		r.provider = metrics.NewNoopProvider()
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer("github.com/hpcsort/mergesort/distributed")
	}
	return r
}

// levelReceipt is the outcome of one pre-posted receive: the decoded
// records, or an error if the receive or decode failed.
type levelReceipt struct {
	recs []record.Record
	err  error
}

// Run sorts chunk (this rank's scattered share) and returns the rank's
// final owned range. Non-participating ranks (rank >= P') should not call
// Run; the caller is expected to have already excluded them per
// spec §4.4.7.
func (r *Rank) Run(ctx context.Context, chunk []record.Record) ([]record.Record, error) {
	ctx, span := r.tracer.Start(ctx, "distributed.rank.run")
	defer span.End()

	pPrime := ActiveParticipants(r.cfg.Participants)
	levels := Levels(pPrime)

	sends := r.provider.Counter("distributed_sends",
		metrics.WithDescription("messages sent across the merge tree"), metrics.WithRank(r.cfg.Rank))
	recvs := r.provider.Counter("distributed_receives",
		metrics.WithDescription("messages received across the merge tree"), metrics.WithRank(r.cfg.Rank))

	// Pre-post inbound receives (spec §4.4.5): kick off a goroutine per
	// level at which this rank is a receiver, before starting the local
	// sort, so communication overlaps with compute. Each level gets its
	// own result channel so the merge loop below can wait on exactly the
	// level it has reached, instead of blocking on every pre-posted
	// receive at once.
	pending := make([]chan levelReceipt, levels)
	for level := 0; level < levels; level++ {
		if !IsReceiver(r.cfg.Rank, level, levels) {
			continue
		}
		level := level
		ch := make(chan levelReceipt, 1)
		pending[level] = ch
		go func() {
			payload, err := r.transport.Receive(ctx, r.cfg.Rank, level)
			if err != nil {
				ch <- levelReceipt{err: errs.MessagingError("rank %d receiving at level %d: %v", r.cfg.Rank, level, err)}
				return
			}
			// Actual element count comes from the payload itself (spec
			// §4.4.5), not from a nominal baseChunk*2^level formula: an
			// uneven scatter (record/../scatter.go's last chunk shorter
			// than the rest) means a sender's real message size can fall
			// short of that formula's prediction.
			stride := record.WireSize(r.cfg.PayloadSize)
			count := len(payload) / stride
			recs, _, err := record.Decode(payload, count, r.cfg.PayloadSize)
			if err != nil {
				ch <- levelReceipt{err: errs.MessagingError("rank %d decoding level %d message: %v", r.cfg.Rank, level, err)}
				return
			}
			recvs.Add(1)
			ch <- levelReceipt{recs: recs}
		}()
	}

	owned := chunk
	localSorter, err := sorter.New(owned, r.cfg.LocalWorkers, r.cfg.BaseCaseSize,
		sorter.WithLogger(r.log), sorter.WithMetrics(r.provider), sorter.WithTracer(r.tracer))
	if err != nil {
		return nil, err
	}
	if err := localSorter.RunUntilDone(ctx); err != nil {
		return nil, err
	}

	for level := 0; level < levels; level++ {
		if IsSender(r.cfg.Rank, level) {
			encoded, err := record.Encode(nil, owned, r.cfg.PayloadSize)
			if err != nil {
				return nil, errs.MessagingError("rank %d encoding level %d message: %v", r.cfg.Rank, level, err)
			}
			partner := SenderPartner(r.cfg.Rank, level)
			if err := r.transport.Send(ctx, partner, level, encoded); err != nil {
				return nil, err
			}
			sends.Add(1)
			r.log.Debug("rank sent block", zap.Int("rank", r.cfg.Rank), zap.Int("level", level), zap.Int("to", partner))
			return owned, nil // a sender exits the merge loop once it has sent (spec §4.4.4)
		}

		if IsReceiver(r.cfg.Rank, level, levels) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case receipt := <-pending[level]:
				if receipt.err != nil {
					return nil, receipt.err
				}
				owned = mergeops.MergeAppending(owned, receipt.recs)
				r.log.Debug("rank merged incoming block", zap.Int("rank", r.cfg.Rank), zap.Int("level", level), zap.Int("new_size", len(owned)))
			}
		}
	}

	return owned, nil
}
