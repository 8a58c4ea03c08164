//go:build tinygo

package hal

import (
	"machine"
	"time"
)

// tinyGoPlatform is the bare-metal Platform: a UART logger and a
// periodic tickstream. It has no Flash (Flash returns nil). This is the
// board-agnostic shape;
// a real Intellisat board build supplies the concrete UART/flash wiring,
// trimmed here since board bring-up is outside this spec's scope
// (spec.md §1, physical hardware is an external collaborator).
type tinyGoPlatform struct {
	logger *uartLogger
	t      *tinyGoTime
}

// New returns the bare-metal Platform backed by the given UART.
func New(uart *machine.UART, tickPeriod time.Duration) Platform {
	return &tinyGoPlatform{
		logger: &uartLogger{uart: uart},
		t:      newTinyGoTime(tickPeriod),
	}
}

func (p *tinyGoPlatform) Logger() Logger { return p.logger }
func (p *tinyGoPlatform) Flash() Flash   { return nil }
func (p *tinyGoPlatform) Time() Time     { return p.t }

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// tinyGoTime drives the tick channel from a software time.Ticker
// goroutine at a configurable period; no hardware timer interrupt is
// wired up. Stop is a no-op.
type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime(period time.Duration) *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }
func (t *tinyGoTime) Stop()                {}
