//go:build !tinygo

package hal

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestFlash(t *testing.T) *hostFlash {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.snapshot")
	t.Setenv("INTELLISAT_SNAPSHOT_PATH", path)
	f := newHostFlash()
	if f.f == nil {
		t.Fatal("expected backing file to open")
	}
	return f
}

func TestHostFlashWriteRequiresErase(t *testing.T) {
	f := newTestFlash(t)

	if err := f.Erase(0, f.EraseBlockBytes()); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if _, err := f.WriteAt([]byte{0x00, 0x0F}, 0); err != nil {
		t.Fatalf("first write after erase: %v", err)
	}
	if _, err := f.WriteAt([]byte{0xFF, 0x0F}, 0); err == nil {
		t.Fatal("expected second write without erase to fail")
	}
}

func TestHostFlashReadAfterWriteRoundTrips(t *testing.T) {
	f := newTestFlash(t)
	want := []byte{0x12, 0x34, 0x56, 0x78}

	if err := f.Erase(0, f.EraseBlockBytes()); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if _, err := f.WriteAt(want, 0); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}

	got := make([]byte, len(want))
	if _, err := f.ReadAt(got, 0); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d: got %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestHostFlashOutOfRangeOffsetErrors(t *testing.T) {
	f := newTestFlash(t)

	if _, err := f.ReadAt(make([]byte, 4), f.SizeBytes()); err == nil {
		t.Fatal("expected error reading at/past size")
	}
	if err := f.Erase(1, f.EraseBlockBytes()); err == nil {
		t.Fatal("expected error erasing at a non-block-aligned offset")
	}
}

func TestNewHostFlashMissingDirFallsBackToNotImplemented(t *testing.T) {
	t.Setenv("INTELLISAT_SNAPSHOT_PATH", filepath.Join(string(os.PathSeparator), "no", "such", "dir", "x"))
	f := newHostFlash()
	if _, err := f.ReadAt(make([]byte, 1), 0); err != ErrNotImplemented {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}
