//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

type hostPlatform struct {
	logger Logger
	t      Time
	flash  *hostFlash
}

// New returns a hosted Platform implementation: a real time.Ticker
// tickstream and a file-backed Flash stand-in. If logger is nil, a plain
// stdout logger is used; callers that want structured trace lines should
// pass the result of NewZapLogger instead.
func New(tickPeriod time.Duration, logger Logger) Platform {
	if logger == nil {
		logger = &hostLogger{w: os.Stdout}
	}
	return &hostPlatform{
		logger: logger,
		t:      NewHostTime(tickPeriod),
		flash:  newHostFlash(),
	}
}

func (h *hostPlatform) Logger() Logger { return h.logger }
func (h *hostPlatform) Flash() Flash   { return h.flash }
func (h *hostPlatform) Time() Time     { return h.t }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
