package kernel

import "context"

// TaskEntry is the capability record spec.md §3/§4.2 calls a quadruple:
// the four opaque effect procedures for one mode. Sense/Configure/Clean
// share the original C signature (no arguments, no return beyond
// Sense's bool); Run additionally takes a context.Context so it can
// honor preemption — the idiomatic Go realization of spec.md §9's
// "cooperative cancellation token checked at known safe points"
// recommendation, generalizing sparkos/kernel.Task's single Step method
// into the four-phase shape spec.md actually calls for.
//
// All four are expected to be pure with respect to the TaskTable itself
// (spec.md §3): they may have side effects on hardware/state elsewhere,
// but never mutate the table that holds them.
type TaskEntry struct {
	ID        ModeID
	Sense     func() bool
	Configure func()
	Run       func(ctx context.Context)
	Clean     func()
}

// TaskTable is the static, priority-ordered catalogue of modes,
// constructed once at startup and never mutated afterward (spec.md
// §3/§4.2). Index i always holds the entry for ModeID(i).
type TaskTable [NumModes]TaskEntry

// NewTaskTable builds a table from entries, indexing each by its ID. A
// missing or duplicate ID is a construction-time programming error and
// is fatal immediately rather than deferred to first lookup.
func NewTaskTable(entries ...TaskEntry) TaskTable {
	var t TaskTable
	var seen [NumModes]bool
	for _, e := range entries {
		if !e.ID.valid() {
			fatal(FatalInfo{Mode: e.ID, Msg: "task table: out-of-range mode id at construction"})
			continue
		}
		if seen[e.ID] {
			fatal(FatalInfo{Mode: e.ID, Msg: "task table: duplicate mode id at construction"})
			continue
		}
		seen[e.ID] = true
		t[e.ID] = e
	}
	for id := ModeID(0); id < ModeID(NumModes); id++ {
		if !seen[id] {
			fatal(FatalInfo{Mode: id, Msg: "task table: missing mode id at construction"})
		}
	}
	return t
}

// lookup returns the entry for id. An out-of-range id is a programming
// error and is fatal (spec.md §4.2).
func (t *TaskTable) lookup(id ModeID) *TaskEntry {
	if !id.valid() {
		fatal(FatalInfo{Mode: id, Msg: "task table: out-of-range lookup"})
	}
	e := &t[id]
	if e.ID != id {
		fatal(FatalInfo{Mode: id, Msg: "task table: corrupt entry (id mismatch)"})
	}
	return e
}
