package kernel

import "time"

// DefaultTickPeriod is the systick period spec.md §6 defaults to
// (SYSTICK_DUR_U = 10000 µs in the original C source).
const DefaultTickPeriod = 10 * time.Millisecond

// TickSource is the periodic timer abstraction spec.md §4/§6
// describes: on hosted platforms a periodic interval timer, on bare
// metal a hardware timer interrupt. Either way, the executive only ever
// needs a stream of tick events and a way to stop it.
//
// Grounded on hal.Time/hal/host_time.go's time.Ticker-backed
// tickstream; kept as its own small interface here (rather than reusing
// hal.Time directly), while the platform tick wiring lives in the
// composition roots (main_host.go, main_tinygo.go).
type TickSource interface {
	Ticks() <-chan time.Time
	Stop()
}

// IntervalTicker is a TickSource backed by time.Ticker — the default
// hosted realization of TickSource, for a composition root that wants
// kernel to own its tick source directly rather than bridging through a
// hal.Platform's Time (as main_host.go/main_tinygo.go both do instead,
// since hal.Time's sequence-numbered channel and TickSource's
// time.Time-stamped one are deliberately different shapes).
type IntervalTicker struct {
	t *time.Ticker
}

// NewIntervalTicker starts a periodic ticker at period (DefaultTickPeriod
// if period <= 0).
func NewIntervalTicker(period time.Duration) *IntervalTicker {
	if period <= 0 {
		period = DefaultTickPeriod
	}
	return &IntervalTicker{t: time.NewTicker(period)}
}

func (s *IntervalTicker) Ticks() <-chan time.Time { return s.t.C }
func (s *IntervalTicker) Stop()                   { s.t.Stop() }
