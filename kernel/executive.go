package kernel

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/JakeRoggenbuck/IntelliSat-Prototype/hal"
)

// Executive bundles the flight executive's process-wide state into one
// value constructed at startup and threaded through the superloop, per
// spec.md §9's "Global state" recommendation ("collect them into a
// single Executive value... the ISR obtains access via a narrowly typed
// handle exposing only what the tick path needs").
type Executive struct {
	Status StatusWord
	table  TaskTable
	log    hal.Logger

	// defaultMode is the keep-alive mode SystemsCheck/modeSelect fall
	// back to when nothing else is pending (config.MissionConfig's
	// DefaultMode field, ECC by default).
	defaultMode ModeID

	// currTask is read by the scheduler (tick handler) and written only
	// by the dispatcher, single-word atomic per spec.md §5's ordering
	// guarantee ("assignment of currTask must be atomic... or guarded").
	currTask atomic.Pointer[TaskEntry]

	// reentry holds the cancel func for the iteration currently in
	// flight; the scheduler calls it to perform the non-local jump back
	// to mode selection (spec.md §4.4). nil between iterations.
	reentry atomic.Pointer[context.CancelFunc]

	// RebootCount is the monotonic per-boot counter spec.md §3
	// describes; persistence across power cycles is the external
	// snapshot collaborator's job (spec.md §4.6/§6), not this field's.
	RebootCount atomic.Uint64

	// ticks counts completed scheduler invocations, for the CLI test
	// harness's N-tick termination condition (spec.md §6) and for
	// diagnostics. Not part of the flight contract.
	ticks atomic.Uint64
}

// NewExecutive constructs an Executive around a fixed TaskTable and log
// sink. The table must already satisfy TaskTable's invariants (build it
// with NewTaskTable). defaultMode is the keep-alive mode the arbiter
// falls back to once nothing senses true; pass ECC for the spec's
// default policy.
func NewExecutive(table TaskTable, log hal.Logger, defaultMode ModeID) *Executive {
	return &Executive{table: table, log: log, defaultMode: defaultMode}
}

// CurrentTask returns the task the dispatcher is presently running, or
// nil before the first iteration.
func (e *Executive) CurrentTask() *TaskEntry { return e.currTask.Load() }

// Ticks returns the number of completed scheduler ticks observed so far.
func (e *Executive) Ticks() uint64 { return e.ticks.Load() }

func (e *Executive) logf(format string, args ...any) {
	if e.log == nil {
		return
	}
	e.log.WriteLineString(fmt.Sprintf(format, args...))
}
