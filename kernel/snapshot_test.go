package kernel

import (
	"errors"
	"testing"

	"github.com/JakeRoggenbuck/IntelliSat-Prototype/hal"
)

// memFlash is a minimal in-memory hal.Flash for exercising
// SaveSnapshot/RestoreSnapshot without touching the filesystem.
type memFlash struct {
	buf [4096]byte
}

func (m *memFlash) SizeBytes() uint32       { return uint32(len(m.buf)) }
func (m *memFlash) EraseBlockBytes() uint32 { return uint32(len(m.buf)) }

func (m *memFlash) ReadAt(p []byte, off uint32) (int, error) {
	return copy(p, m.buf[off:]), nil
}

func (m *memFlash) WriteAt(p []byte, off uint32) (int, error) {
	return copy(m.buf[off:], p), nil
}

func (m *memFlash) Erase(off, size uint32) error {
	for i := off; i < off+size; i++ {
		m.buf[i] = 0xFF
	}
	return nil
}

var _ hal.Flash = (*memFlash)(nil)

func TestSnapshotRoundTrip(t *testing.T) {
	f := &memFlash{}
	var status StatusWord
	status.SetStatus(START)

	if err := SaveSnapshot(f, &status, 7); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	var restored StatusWord
	if err := RestoreSnapshot(f)(&restored); err != nil {
		t.Fatalf("RestoreSnapshot: %v", err)
	}
	if !restored.TestStatus(START) {
		t.Fatal("expected START restored from snapshot")
	}
}

func TestRestoreSnapshotBlankFlashIsNotFound(t *testing.T) {
	f := &memFlash{}
	for i := range f.buf {
		f.buf[i] = 0xFF
	}

	var status StatusWord
	if err := RestoreSnapshot(f)(&status); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("expected ErrSnapshotNotFound, got %v", err)
	}
}
