package kernel

import "time"

// Startup is the first-boot/warm-restart precondition to entering the
// superloop (spec.md §4.6). Restore is the external snapshot
// collaborator's hook — spec.md explicitly treats snapshot restore
// itself as out of scope, so Restore may be nil (no-op) for a build
// with no persistence backend wired up.
type Startup struct {
	// ReleaseDelay is the one-time wait after release from the host
	// vehicle on cold boot. Mission parameter; test builds shorten it
	// (original_source/src/main.c's 5s stand-in for a 30 minute wait).
	ReleaseDelay time.Duration

	// Restore loads persisted statusBits/mission flags on a warm boot.
	// Persistence itself (the flash snapshot) is an external
	// collaborator; Run only calls this hook.
	Restore func(*StatusWord) error
}

// Run performs the startup sequence and increments RebootCount
// unconditionally, on both the cold and warm path, per spec.md §4.6.
func (s *Startup) Run(e *Executive) error {
	e.RebootCount.Add(1)

	if !e.Status.TestStatus(START) {
		e.logf("first startup detected, release delay %s", s.ReleaseDelay)
		if s.ReleaseDelay > 0 {
			time.Sleep(s.ReleaseDelay)
		}
		e.Status.SetStatus(START)
		return nil
	}

	e.logf("warm boot detected, restoring snapshot")
	if s.Restore == nil {
		return nil
	}
	return s.Restore(&e.Status)
}
