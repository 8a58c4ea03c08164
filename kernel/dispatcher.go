package kernel

import "context"

// Run is the ModeDispatcher superloop (spec.md §4.5). Callers must have
// already run Startup (spec.md §4.6) before calling Run.
//
// maxTicks bounds the run for the CLI test harness (spec.md §6): a
// negative value runs unlimited, 0 terminates before the superloop body
// ever executes, and N > 0 terminates once N scheduler ticks have been
// observed (e.Ticks(), advanced by Scheduler, not by this loop — the
// same systick_handler_count the original C source checked at the
// bottom of its while(1), after a normal completion). This has no
// bearing on the flight contract itself — on real hardware Run is
// simply never asked to stop.
func (e *Executive) Run(ctx context.Context, maxTicks int64) {
	SystemsCheck(&e.table, &e.Status, e.defaultMode)
	e.currTask.Store(&e.table[0])

	if maxTicks == 0 {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		completed := e.runIteration(ctx)
		if completed && maxTicks >= 0 && int64(e.Ticks()) >= maxTicks {
			return
		}
	}
}

// runIteration is one pass of the superloop's body: the reentry point a
// preempting tick jumps back to is exactly "return from runIteration and
// loop", so there is nothing to capture explicitly — the Go call stack
// unwinding back to Run's for-loop *is* the reentry point spec.md §4.5
// calls ModeSelectReentry. It reports whether the selected task ran to
// normal completion (true) or was preempted (false).
func (e *Executive) runIteration(parent context.Context) bool {
	iterCtx, cancel := context.WithCancel(parent)
	defer cancel()

	mode := modeSelect(&e.Status, e.defaultMode)
	task := e.table.lookup(mode)

	task.Configure()
	e.currTask.Store(task)

	// currTask must be updated before reentry is armed: Scheduler reads
	// currTask and, on a mismatch, fires reentry to preempt. Arming
	// reentry first would let a tick land in between and compare against
	// the previous iteration's currTask, cancelling this iteration
	// before its Run even starts.
	cancelIface := context.CancelFunc(cancel)
	e.reentry.Store(&cancelIface)
	defer e.reentry.Store(nil)

	e.logf("mode select: running %s", task.ID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		task.Run(iterCtx)
	}()

	select {
	case <-done:
	case <-iterCtx.Done():
		// Preempted (by the scheduler, or by the caller's own ctx being
		// cancelled for shutdown): wait for Run to actually observe
		// iterCtx.Done() and return — it is required to poll at bounded
		// intervals (spec.md §9) — then treat the mode as not having
		// completed.
		<-done
	}

	if iterCtx.Err() != nil {
		e.logf("mode %s preempted before completion", task.ID)
		if task.Clean != nil {
			task.Clean()
		}
		return false
	}

	e.Status.ClearMode(task.ID)
	e.logf("mode %s completed", task.ID)
	return true
}
