package kernel

import "sync"

// FatalInfo describes a programming error: an out-of-range mode id or a
// corrupt task table (spec.md §7.1). These are not recoverable and are
// not propagated across the scheduler/dispatcher boundary as errors —
// they funnel through a single fatal handler instead.
type FatalInfo struct {
	Mode ModeID
	Msg  string
}

var (
	fatalMu      sync.Mutex
	fatalHandler func(FatalInfo)
)

// SetFatalHandler installs a process-wide fatal-error handler, invoked
// before fatal() panics — e.g. to flush a log or flag ground control.
// It must not itself panic or block.
func SetFatalHandler(fn func(FatalInfo)) {
	fatalMu.Lock()
	fatalHandler = fn
	fatalMu.Unlock()
}

// fatal reports a programming error and halts the calling goroutine.
// Unlike a transient mode failure (spec.md §7.2), there is no recovery
// path: an out-of-range mode id or corrupt table means the static
// TaskTable itself cannot be trusted.
func fatal(info FatalInfo) {
	fatalMu.Lock()
	h := fatalHandler
	fatalMu.Unlock()
	if h != nil {
		h(info)
	}
	panic("kernel: fatal: " + info.Msg)
}
