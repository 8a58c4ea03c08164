// Package modes builds the six-entry TaskTable the flight executive
// runs: CHARGING, DETUMBLE, COMMS, HDD, MRW, ECC, in priority order.
//
// Every sense odd, the run() timing envelope, and the clean() trace
// format are carried over unchanged from
// original_source/src/scheduler/task.c; only CHARGING's sense is
// replaced with a real threshold comparison (SPEC_FULL.md §2.3).
package modes

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/JakeRoggenbuck/IntelliSat-Prototype/config"
	"github.com/JakeRoggenbuck/IntelliSat-Prototype/hal"
	"github.com/JakeRoggenbuck/IntelliSat-Prototype/kernel"
)

// pollSlice bounds how long a run() body sleeps between checks of
// ctx.Done(), so a preempting tick is honored promptly (spec.md §9).
const pollSlice = 10 * time.Millisecond

// BatteryLevel reports the present battery level as a percentage. The
// physical reading is the only excluded collaborator here; the
// threshold comparison against it is core scheduling logic and lives
// in this package (SPEC_FULL.md §2.3).
type BatteryLevel func() int

// rng wraps math/rand.Rand with a mutex: SystemsCheck can be invoked
// concurrently from the tick goroutine (the composition roots' tick pump
// calling kernel.Executive.Scheduler) and
// the dispatcher's own startup call, and rand.Rand is not safe for
// concurrent use on its own.
type rng struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newRNG(seed int64) *rng {
	return &rng{r: rand.New(rand.NewSource(seed))}
}

func (g *rng) oneInN(n int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.Intn(n) == 0
}

func (g *rng) runDuration() time.Duration {
	g.mu.Lock()
	micros := g.r.Intn(11)*100_000 + 10_000
	g.mu.Unlock()
	return time.Duration(micros) * time.Microsecond
}

// New builds the TaskTable. seed seeds the sense and run-duration RNG;
// any given seed (zero included) always reproduces the same sequence,
// and seed 2 mirrors original_source/'s `srand(2)`; battery defaults to
// reporting a full charge (CHARGING never senses) when nil, matching
// the C original's tautological coin flip being effectively dormant
// absent a real reading.
func New(cfg config.MissionConfig, log hal.Logger, battery BatteryLevel, seed int64) kernel.TaskTable {
	if battery == nil {
		battery = func() int { return 100 }
	}
	g := newRNG(seed)

	runBody := func(name string) func(context.Context) {
		return func(ctx context.Context) {
			logf(log, "Run '%s'", name)
			sleepPollable(ctx, g.runDuration())
		}
	}
	cleanBody := func(id kernel.ModeID) func() {
		return func() { logf(log, "cleanup ID: %d", int(id)) }
	}

	return kernel.NewTaskTable(
		kernel.TaskEntry{
			ID:        kernel.CHARGING,
			Sense:     func() bool { return battery() <= cfg.BatteryThresholdPercent },
			Configure: func() { logf(log, "Configure Charging is running") },
			Run:       runBody("charging"),
			Clean:     cleanBody(kernel.CHARGING),
		},
		kernel.TaskEntry{
			ID:        kernel.DETUMBLE,
			Sense:     func() bool { return g.oneInN(4) },
			Configure: func() {},
			Run:       runBody("detumble"),
			Clean:     cleanBody(kernel.DETUMBLE),
		},
		kernel.TaskEntry{
			ID:        kernel.COMMS,
			Sense:     func() bool { return g.oneInN(4) },
			Configure: func() {},
			Run:       runBody("comms"),
			Clean:     cleanBody(kernel.COMMS),
		},
		kernel.TaskEntry{
			ID:        kernel.HDD,
			Sense:     func() bool { return g.oneInN(4) },
			Configure: func() {},
			Run:       runBody("hdd"),
			Clean:     cleanBody(kernel.HDD),
		},
		kernel.TaskEntry{
			ID:        kernel.MRW,
			Sense:     func() bool { return g.oneInN(4) },
			Configure: func() {},
			Run:       runBody("mrw"),
			Clean:     cleanBody(kernel.MRW),
		},
		kernel.TaskEntry{
			ID:        kernel.ECC,
			Sense:     func() bool { return g.oneInN(4) },
			Configure: func() {},
			Run:       runBody("ecc"),
			Clean:     cleanBody(kernel.ECC),
		},
	)
}

// sleepPollable sleeps d in pollSlice-sized increments so ctx
// cancellation is observed within one slice instead of only at the end
// of the full duration.
func sleepPollable(ctx context.Context, d time.Duration) {
	for d > 0 {
		slice := pollSlice
		if d < slice {
			slice = d
		}
		timer := time.NewTimer(slice)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		d -= slice
	}
}

func logf(log hal.Logger, format string, args ...any) {
	if log == nil {
		return
	}
	log.WriteLineString(fmt.Sprintf(format, args...))
}
