// Package hal is the narrow seam between the flight executive and the
// outside world: a log sink, a tick source, and a non-volatile snapshot
// store. Everything else a spacecraft needs (sensors, radios, reaction
// wheels) is an opaque collaborator the mode bodies in package modes talk
// to directly; it is not part of this contract.
package hal

import "errors"

// ErrNotImplemented is returned by a platform that has no backing device
// for a capability (e.g. the host-file Flash stand-in when it failed to
// open its backing file).
var ErrNotImplemented = errors.New("not implemented")

// Logger writes newline-delimited trace lines.
//
// Kept as a capability interface (rather than *log.Logger or an
// io.Writer) so a TinyGo build can back it with a raw UART writer with
// no allocation, while a hosted build backs it with a structured logger.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Flash provides raw access to non-volatile memory for the snapshot
// collaborator referenced in spec.md §4.6/§6.
//
// It is intentionally low-level: addresses and erase blocks only. The
// record layout and restore semantics are owned by the caller (kernel's
// SaveSnapshot/RestoreSnapshot), not by this interface.
type Flash interface {
	SizeBytes() uint32
	EraseBlockBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Erase(off, size uint32) error
}

// Time provides the base tick stream the flight executive's TickSource
// rides on.
//
// The tick duration is platform-defined; the composition roots
// (main_host.go, main_tinygo.go) feed this stream into
// kernel.Executive.Scheduler. kernel.TickSource is a separate tick
// interface and is not built on this one.
type Time interface {
	Ticks() <-chan uint64
	Stop()
}

// Platform provides the only contact point between the flight executive
// and the outside world.
type Platform interface {
	Logger() Logger
	Flash() Flash
	Time() Time
}
