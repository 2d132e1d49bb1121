package sorter

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/hpcsort/mergesort/internal/chunkdispatcher"
	"github.com/hpcsort/mergesort/internal/errs"
	"github.com/hpcsort/mergesort/internal/metrics"
	"github.com/hpcsort/mergesort/internal/mergeops"
	"github.com/hpcsort/mergesort/internal/taskpool"
	"github.com/hpcsort/mergesort/record"
)

// state is the Coordinator's state machine (spec §4.3.7).
type state int

const (
	stateDispatchingLeaves state = iota
	stateAwaitingLevel
	stateAdvancingLevel
	stateDone
)

func (s state) String() string {
	switch s {
	case stateDispatchingLeaves:
		return "dispatching-leaves"
	case stateAwaitingLevel:
		return "awaiting-level"
	case stateAdvancingLevel:
		return "advancing-level"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Sorter is the Task-Graph Sorter's public surface (spec §4.3): construct
// with a mutable view, a worker count P, and an optional base-case size B
// (0 means "derive from P"), then call RunUntilDone.
type Sorter struct {
	seq []record.Record
	p   int
	b   int

	log      *zap.Logger
	provider metrics.Provider
	tracer   trace.Tracer
}

// Option configures a Sorter.
type Option func(*Sorter)

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Sorter) { s.log = log }
}

// WithMetrics attaches a metrics.Provider. Defaults to metrics.NewNoopProvider().
func WithMetrics(p metrics.Provider) Option {
	return func(s *Sorter) { s.provider = p }
}

// WithTracer attaches an OpenTelemetry tracer. Defaults to the global
// tracer provider's tracer for this package.
func WithTracer(t trace.Tracer) Option {
	return func(s *Sorter) { s.tracer = t }
}

// New constructs a Sorter over seq with P workers and base-case size b (0
// to derive B = ⌈N/P⌉ at RunUntilDone time, per spec §4.3.3).
func New(seq []record.Record, p int, b int, opts ...Option) (*Sorter, error) {
	if p <= 0 {
		return nil, errs.ConfigurationError("worker count must be positive, got %d", p)
	}
	if b < 0 {
		return nil, errs.ConfigurationError("base-case size must be non-negative, got %d", b)
	}
	s := &Sorter{seq: seq, p: p, b: b}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.provider == nil {
		s.provider = metrics.NewNoopProvider()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("github.com/hpcsort/mergesort/sorter")
	}
	return s, nil
}

// RunUntilDone sorts the configured range and returns after it is fully
// sorted, or returns a fatal error per spec §4.3.6 if a worker panics or
// the feedback channel closes unexpectedly.
func (s *Sorter) RunUntilDone(ctx context.Context) error {
	n := len(s.seq)
	if n == 0 {
		return nil
	}

	ctx, span := s.tracer.Start(ctx, "sorter.run_until_done")
	defer span.End()

	// No more workers than records are started.
	p := s.p
	if p > n {
		p = n
	}

	b := s.b
	if b == 0 {
		b = ceilDiv(n, p)
	}
	if b <= 0 {
		return errs.ConfigurationError("derived base-case size must be positive (N=%d, P=%d)", n, p)
	}

	tasksCounter := s.provider.Counter("tasks_dispatched", metrics.WithDescription("number of Sort/Merge tasks dispatched"))
	levelHist := s.provider.Histogram("level_duration_seconds", metrics.WithDescription("wall time spent per merge level"), metrics.WithUnit("seconds"))

	// Sized per spec §3's Reusable Task Pool rule: a full merge tree's worth
	// of slots, so every Acquire below is guaranteed a free index without
	// allocating. Reported to metrics so operators can see how large a
	// merge tree a run built.
	arenaCapacity := taskpool.Capacity(ceilDiv(n, b))
	s.provider.UpDownCounter("task_pool_slots", metrics.WithDescription("Reusable Task Pool arena size for the current run")).Add(int64(arenaCapacity))
	pool := taskpool.New(arenaCapacity)

	inboxes := make([]chan taskMsg, p)
	// Room for one completion per leaf task, so a worker never blocks
	// reporting while the Coordinator is still dispatching leaves.
	feedback := make(chan completionMsg, ceilDiv(n, b))
	for i := range inboxes {
		inboxes[i] = make(chan taskMsg, 1)
		w := newWorker(i, inboxes[i], feedback, s.seq, pool, s.log, tasksCounter)
		go w.run()
	}

	st := stateDispatchingLeaves
	currentP := p
	var queue []levelEntry
	expected, completed := 0, 0

	// Start-up protocol (spec §4.3.3): dispatch leaf Sort tasks, keeping the
	// (possibly short) last leaf locally on the Coordinator. Chunks are
	// pulled one after another from a chunkdispatcher cursor, and the i-th
	// dispatched leaf goes to worker i mod P.
	dispatcher := chunkdispatcher.New(n, b)
	leafIdx := 0
	for {
		chunk, ok := dispatcher.Next()
		if !ok {
			break
		}
		if chunk.End == n-1 && (chunk.End-chunk.Start+1) < b {
			mergeops.SortInplace(s.seq, chunk.Start, chunk.End)
			queue = append(queue, levelEntry{start: chunk.Start, end: chunk.End})
			continue
		}
		worker := leafIdx % p
		slot := pool.Acquire(taskpool.Sort(chunk.Start, chunk.End))
		inboxes[worker] <- taskMsg{slot: slot}
		queue = append(queue, levelEntry{start: chunk.Start, end: chunk.End})
		expected++
		leafIdx++
	}
	// Single local leaf: the whole range was one chunk shorter than B, the
	// Coordinator sorted it above and dispatched nothing, so it is done.
	if expected == 0 && len(queue) == 1 {
		s.shutdown(inboxes)
		st = stateDone
	} else {
		st = stateAwaitingLevel
	}

	s.log.Debug("leaves dispatched", zap.Int("leaf_count", len(queue)), zap.Int("expected", expected), zap.Int("base_case_size", b))

	levelStart := time.Now()

	for st != stateDone {
		select {
		case <-ctx.Done():
			s.shutdown(inboxes)
			return ctx.Err()
		case c, ok := <-feedback:
			if !ok {
				s.shutdown(inboxes)
				return errs.SchedulingError("feedback channel closed unexpectedly")
			}
			if c.err != nil {
				s.shutdown(inboxes)
				return errs.SchedulingError("%v", c.err)
			}
			completed++
			if completed < expected {
				continue
			}
			levelHist.Record(time.Since(levelStart).Seconds())
			levelStart = time.Now()

			if len(queue) <= 2 {
				if len(queue) == 2 {
					left, right := queue[0], queue[1]
					mergeops.MergeInplace(s.seq, left.start, left.end, right.end)
				}
				s.shutdown(inboxes)
				st = stateDone
				continue
			}

			st = stateAdvancingLevel
			var next []levelEntry
			newExpected := 0
			k := 0
			for idx := 0; idx+1 < len(queue); idx += 2 {
				left, right := queue[idx], queue[idx+1]
				worker := k % currentP
				slot := pool.Acquire(taskpool.Merge(left.start, left.end, right.end))
				inboxes[worker] <- taskMsg{slot: slot}
				next = append(next, levelEntry{start: left.start, end: right.end})
				newExpected++
				k++
			}
			if len(queue)%2 == 1 {
				next = append(next, queue[len(queue)-1])
			}

			newP := currentP
			if newExpected < currentP {
				newP = newExpected
				if newP == 0 {
					newP = 1
				}
				for surplus := newP; surplus < currentP; surplus++ {
					inboxes[surplus] <- taskMsg{done: true}
				}
			}
			currentP = newP

			queue = next
			expected = newExpected
			completed = 0
			st = stateAwaitingLevel
		}
	}

	if !record.CheckSorted(s.seq) {
		return errs.PostConditionError("output range is not sorted after run_until_done")
	}
	return nil
}

func (s *Sorter) shutdown(inboxes []chan taskMsg) {
	for i, in := range inboxes {
		select {
		case in <- taskMsg{done: true}:
		default:
			// worker already exited (pruned in an earlier level); don't block.
			_ = i
		}
	}
}

func ceilDiv(n, d int) int {
	if d <= 0 {
		return n
	}
	return (n + d - 1) / d
}
