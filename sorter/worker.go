package sorter

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hpcsort/mergesort/internal/metrics"
	"github.com/hpcsort/mergesort/internal/mergeops"
	"github.com/hpcsort/mergesort/internal/taskpool"
	"github.com/hpcsort/mergesort/record"
)

// worker is one of P cooperating actors (spec §4.3.1). It owns no data
// beyond the view borrowed from the Coordinator; it reads taskMsg values
// off its own input channel, resolves the slot against the shared arena,
// and reports completion on the shared feedback channel.
type worker struct {
	id       int
	in       <-chan taskMsg
	feedback chan<- completionMsg
	seq      []record.Record
	pool     *taskpool.Pool
	log      *zap.Logger
	tasks    metrics.Counter
}

func newWorker(id int, in <-chan taskMsg, feedback chan<- completionMsg, seq []record.Record, pool *taskpool.Pool, log *zap.Logger, tasks metrics.Counter) *worker {
	if log == nil {
		log = zap.NewNop()
	}
	return &worker{id: id, in: in, feedback: feedback, seq: seq, pool: pool, log: log, tasks: tasks}
}

// run consumes tasks until it observes an end-of-stream marker. Per spec
// §5, a worker's only suspension point is its input channel being empty;
// Sort and Merge bodies always run to completion.
func (w *worker) run() {
	for m := range w.in {
		if m.done {
			return
		}
		w.execute(m)
	}
}

func (w *worker) execute(m taskMsg) {
	t := w.pool.Get(m.slot)
	defer func() {
		w.pool.Release(m.slot)
		if p := recover(); p != nil {
			w.feedback <- completionMsg{workerID: w.id, err: fmt.Errorf("worker %d: task %s panicked: %v", w.id, t, p)}
		}
	}()

	switch t.Kind {
	case taskpool.KindSort:
		mergeops.SortInplace(w.seq, t.Start, t.End)
	case taskpool.KindMerge:
		mergeops.MergeInplace(w.seq, t.Start, t.Middle, t.End)
	}

	if w.tasks != nil {
		w.tasks.Add(1)
	}
	w.log.Debug("worker completed task", zap.Int("worker_id", w.id), zap.Stringer("task", t))
	w.feedback <- completionMsg{workerID: w.id}
}
