package kernel

// Scheduler is the tick handler's body (spec.md §4.4): on every tick it
// re-runs the arbiter, and if the winning mode differs from the one
// presently running, performs the non-local jump — here, cancelling the
// running iteration's context — so the dispatcher unwinds the current
// task and re-enters mode selection without letting its body finish.
//
// In the original C source this was a SIGALRM handler doing
// sigsetjmp/siglongjmp on the same thread as the task it interrupted.
// Go has no safe equivalent of asynchronously unwinding another
// goroutine's stack, so per spec.md §9's own recommendation this is
// modeled as explicit cooperative cancellation: Scheduler only ever
// requests the abort; TaskEntry.Run is responsible for observing
// ctx.Done() at bounded intervals (spec.md §5's "run() procedures are
// permitted to block for bounded durations... ISR may fire at any
// time"). Scheduler itself never blocks and never touches modeBits
// beyond what SystemsCheck already does.
func (e *Executive) Scheduler() {
	defer e.ticks.Add(1)

	next := SystemsCheck(&e.table, &e.Status, e.defaultMode)

	cur := e.currTask.Load()
	if cur != nil && cur.ID == next {
		return
	}

	if cancelPtr := e.reentry.Load(); cancelPtr != nil {
		(*cancelPtr)()
	}
}

// RunTicks drives Scheduler from a TickSource until the source's channel
// closes or stop is closed, whichever comes first. It plays the role
// the original C source's SIGALRM-driven sysTickHandler played, minus
// the signal-handler restrictions (it is an ordinary goroutine, not an
// async-signal context). The composition roots in main_host.go and
// main_tinygo.go instead pump ticks from their hal.Platform's Time
// directly (hal.Time's channel shape differs from TickSource's); this
// method is the entry point for a caller that already has a TickSource
// rather than a hal.Platform. Nothing in this repository calls it.
func (e *Executive) RunTicks(src TickSource, stop <-chan struct{}) {
	ticks := src.Ticks()
	for {
		select {
		case <-stop:
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			e.Scheduler()
		}
	}
}
