package kernel

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/JakeRoggenbuck/IntelliSat-Prototype/hal"
)

// snapshotMagic tags a valid record so Restore can distinguish a
// freshly-erased flash region (all 0xFF) from one holding real state.
const snapshotMagic = 0x49534154 // "ISAT"

// snapshotRecordSize is statusBits, rebootCount, and magic.
const snapshotRecordSize = 4 + 8 + 4

var ErrSnapshotNotFound = errors.New("kernel: no snapshot record present")

// SaveSnapshot writes statusBits and rebootCount to offset 0 of f. This
// is the save side of spec.md §6's "persisted state layout" contract;
// the record layout itself is this repo's own choice, since the source
// only contracts that the record round-trips.
func SaveSnapshot(f hal.Flash, status *StatusWord, rebootCount uint64) error {
	var buf [snapshotRecordSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], status.statusBits.Load())
	binary.LittleEndian.PutUint64(buf[4:12], rebootCount)
	binary.LittleEndian.PutUint32(buf[12:16], snapshotMagic)

	if err := f.Erase(0, f.EraseBlockBytes()); err != nil {
		return fmt.Errorf("snapshot: erase: %w", err)
	}
	if _, err := f.WriteAt(buf[:], 0); err != nil {
		return fmt.Errorf("snapshot: write: %w", err)
	}
	return nil
}

// RestoreSnapshot is a Startup.Restore hook backed by hal.Flash. It only
// ever sets statusBits; RebootCount is owned by Startup.Run itself
// (incremented unconditionally, spec.md §4.6), not restored from flash.
func RestoreSnapshot(f hal.Flash) func(*StatusWord) error {
	return func(status *StatusWord) error {
		var buf [snapshotRecordSize]byte
		if _, err := f.ReadAt(buf[:], 0); err != nil {
			return fmt.Errorf("snapshot: read: %w", err)
		}
		if binary.LittleEndian.Uint32(buf[12:16]) != snapshotMagic {
			return ErrSnapshotNotFound
		}
		bits := binary.LittleEndian.Uint32(buf[0:4])
		for flag := StatusFlag(0); flag < StatusFlag(32); flag++ {
			if bits&(1<<flag) != 0 {
				status.SetStatus(flag)
			}
		}
		return nil
	}
}
