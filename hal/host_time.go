//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

// hostTime is a hal.Time backed by a real time.Ticker — the hosted
// stand-in for the hardware systick the flight core expects on real
// Intellisat hardware.
type hostTime struct {
	period time.Duration

	mu     sync.Mutex
	ticker *time.Ticker
	ch     chan uint64
	seq    uint64
	done   chan struct{}
}

// NewHostTime starts a periodic tick stream at the given period.
func NewHostTime(period time.Duration) Time {
	if period <= 0 {
		period = 10 * time.Millisecond
	}
	t := &hostTime{
		period: period,
		ticker: time.NewTicker(period),
		ch:     make(chan uint64, 16),
		done:   make(chan struct{}),
	}
	go t.pump()
	return t
}

func (t *hostTime) pump() {
	defer close(t.ch)
	for {
		select {
		case <-t.done:
			return
		case <-t.ticker.C:
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
				// Slow consumer: drop the tick rather than block the
				// pump, matching the original hardware ISR's "next tick
				// observes the next decision" guarantee rather than a
				// queued backlog.
			}
		}
	}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	select {
	case <-t.done:
		return
	default:
		close(t.done)
	}
	t.ticker.Stop()
}
