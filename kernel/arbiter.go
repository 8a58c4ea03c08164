package kernel

// SystemsCheck is the priority arbiter (spec.md §4.3). It consults each
// mode's Sense in priority order, sets modeBits for every mode whose
// Sense returns true, then returns the single highest-priority mode
// whose bit ended up set. If sensing leaves nothing pending, defaultMode
// is set and returned as the keep-alive fallback (spec.md's policy,
// mirroring original_source's always-resident eccTime(); a mission
// config can move this off ECC for a ground test harness, per
// config.MissionConfig.DefaultMode).
//
// SystemsCheck never touches statusBits (spec.md: "idempotent over
// statusBits") and never clears a mode bit — pending-but-not-selected
// modes stay pending for the next tick's reconsideration.
func SystemsCheck(table *TaskTable, status *StatusWord, defaultMode ModeID) ModeID {
	for id := ModeID(0); id < ModeID(NumModes); id++ {
		entry := table.lookup(id)
		if entry.Sense != nil && entry.Sense() {
			status.SetMode(id)
		}
	}

	for id := ModeID(0); id < ModeID(NumModes); id++ {
		if status.TestMode(id) {
			return id
		}
	}

	status.SetMode(defaultMode)
	return defaultMode
}

// modeSelect reads pending bits without sensing — distinct from
// SystemsCheck per spec.md §4.5 — and returns the highest-priority
// pending mode. Used only by the dispatcher between ticks; if nothing
// is pending (shouldn't happen once SystemsCheck has run at least once)
// it falls back to defaultMode, matching the arbiter's own default.
func modeSelect(status *StatusWord, defaultMode ModeID) ModeID {
	for id := ModeID(0); id < ModeID(NumModes); id++ {
		if status.TestMode(id) {
			return id
		}
	}
	return defaultMode
}
