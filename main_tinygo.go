//go:build tinygo

package main

import (
	"context"
	"machine"

	"github.com/JakeRoggenbuck/IntelliSat-Prototype/config"
	"github.com/JakeRoggenbuck/IntelliSat-Prototype/hal"
	"github.com/JakeRoggenbuck/IntelliSat-Prototype/kernel"
	"github.com/JakeRoggenbuck/IntelliSat-Prototype/modes"
)

func main() {
	cfg := config.Default()

	machine.UART0.Configure(machine.UARTConfig{BaudRate: 115200})
	platform := hal.New(machine.UART0, cfg.TickPeriod)
	logger := platform.Logger()

	table := modes.New(cfg, logger, nil, 2)
	executive := kernel.NewExecutive(table, logger, cfg.DefaultMode)

	startup := kernel.Startup{ReleaseDelay: cfg.ReleaseDelay}
	if err := startup.Run(executive); err != nil {
		logger.WriteLineString("startup failed, halting")
		for {
		}
	}

	stop := make(chan struct{})
	go pumpHardwareTicks(executive, platform, stop)

	executive.Run(context.Background(), -1)
}

// pumpHardwareTicks bridges the board's hal.Time tickstream into
// Executive.Scheduler, since kernel.TickSource (time.Time-stamped) and
// hal.Time (bare sequence numbers) are deliberately different shapes —
// hal stays hardware-agnostic, kernel stays platform-agnostic.
func pumpHardwareTicks(e *kernel.Executive, p hal.Platform, stop <-chan struct{}) {
	ticks := p.Time().Ticks()
	for {
		select {
		case <-stop:
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			e.Scheduler()
		}
	}
}
