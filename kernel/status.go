package kernel

import "sync/atomic"

// StatusFlag names a bit in statusBits (mission flags, not mode
// requests).
type StatusFlag uint8

const (
	// START marks first-boot complete; set once the release-delay wait
	// has finished, cleared never (spec.md §4.6).
	START StatusFlag = iota
)

// StatusWord holds the two bitfields spec.md §3 specifies: statusBits
// (persistent mission flags) and modeBits (pending-mode requests). Both
// fields are single atomic words, and set/clear use a compare-and-swap
// retry loop, so set/clear/test are atomic with respect to the tick
// handler, per spec.md §4.1/§5.
type StatusWord struct {
	statusBits atomic.Uint32
	modeBits   atomic.Uint32
}

// SetStatus sets a statusBits flag. Setting an already-set flag is a
// no-op (spec.md §8 idempotence).
func (s *StatusWord) SetStatus(f StatusFlag) { setBit(&s.statusBits, uint32(f)) }

// ClearStatus clears a statusBits flag. Clearing an already-clear flag
// is a no-op.
func (s *StatusWord) ClearStatus(f StatusFlag) { clearBit(&s.statusBits, uint32(f)) }

// TestStatus reports whether a statusBits flag is set.
func (s *StatusWord) TestStatus(f StatusFlag) bool { return testBit(&s.statusBits, uint32(f)) }

// SetMode marks a mode pending. Called only by the arbiter (SystemsCheck)
// or a mode's Configure step, per spec.md §3's invariant.
func (s *StatusWord) SetMode(m ModeID) { setBit(&s.modeBits, uint32(m)) }

// ClearMode marks a mode no longer pending. Called only by the
// dispatcher immediately after a successful run, per spec.md §3's
// invariant.
func (s *StatusWord) ClearMode(m ModeID) { clearBit(&s.modeBits, uint32(m)) }

// TestMode reports whether a mode is pending.
func (s *StatusWord) TestMode(m ModeID) bool { return testBit(&s.modeBits, uint32(m)) }

// ModeBits returns a snapshot of the pending-mode bitset, mode bit i set
// iff ModeID(i) is pending. Exposed for tests and diagnostics; the
// scheduling logic itself only ever tests one bit at a time.
func (s *StatusWord) ModeBits() uint32 { return s.modeBits.Load() }

func setBit(word *atomic.Uint32, bit uint32) {
	mask := uint32(1) << bit
	for {
		old := word.Load()
		if old&mask != 0 {
			return
		}
		if word.CompareAndSwap(old, old|mask) {
			return
		}
	}
}

func clearBit(word *atomic.Uint32, bit uint32) {
	mask := uint32(1) << bit
	for {
		old := word.Load()
		if old&mask == 0 {
			return
		}
		if word.CompareAndSwap(old, old&^mask) {
			return
		}
	}
}

func testBit(word *atomic.Uint32, bit uint32) bool {
	return word.Load()&(uint32(1)<<bit) != 0
}
