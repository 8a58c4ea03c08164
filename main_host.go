//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/JakeRoggenbuck/IntelliSat-Prototype/config"
	"github.com/JakeRoggenbuck/IntelliSat-Prototype/hal"
	"github.com/JakeRoggenbuck/IntelliSat-Prototype/internal/buildinfo"
	"github.com/JakeRoggenbuck/IntelliSat-Prototype/kernel"
	"github.com/JakeRoggenbuck/IntelliSat-Prototype/modes"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to a MissionConfig YAML file (optional).")
		seed       = flag.Int64("seed", 2, "Deterministic sense RNG seed (original_source/ uses srand(2)).")
	)
	flag.Parse()

	// Test-harness contract (spec.md §6, not part of the flight core):
	// argv[1] = tick limit, argv[2] == 1 pre-sets START. Trailing
	// positionals survive flag.Parse() in flag.Args().
	args := flag.Args()
	maxTicks := int64(-1)
	if len(args) >= 1 {
		if n, err := strconv.ParseInt(args[0], 10, 64); err == nil {
			maxTicks = n
		}
	}
	presetStart := len(args) >= 2 && args[1] == "1"

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger, syncLogger, err := hal.NewZapLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "intellisat: logger init:", err)
		os.Exit(1)
	}
	defer syncLogger()

	logger.WriteLineString(fmt.Sprintf("intellisat %s starting", buildinfo.Short()))

	platform := hal.New(cfg.TickPeriod, logger)
	flash := platform.Flash()
	defer platform.Time().Stop()

	table := modes.New(cfg, logger, nil, *seed)
	executive := kernel.NewExecutive(table, logger, cfg.DefaultMode)
	if presetStart {
		executive.Status.SetStatus(kernel.START)
	}

	// Peek the persisted statusBits before Startup decides cold vs. warm
	// boot: on real hardware this is the "retrieve base info from flash"
	// step original_source/src/main.c's startup() left as a TODO. A
	// missing/blank snapshot (first-ever boot) is not an error.
	if err := kernel.RestoreSnapshot(flash)(&executive.Status); err != nil && !errors.Is(err, kernel.ErrSnapshotNotFound) {
		logger.WriteLineString(fmt.Sprintf("snapshot peek: %v", err))
	}

	startup := kernel.Startup{ReleaseDelay: cfg.ReleaseDelay, Restore: kernel.RestoreSnapshot(flash)}
	if err := startup.Run(executive); err != nil && !errors.Is(err, kernel.ErrSnapshotNotFound) {
		logger.WriteLineString(fmt.Sprintf("startup: %v", err))
		os.Exit(1)
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// runCtx ends the tick pump as soon as the dispatcher itself returns
	// (maxTicks reached, or N=0's immediate return) — not only on an OS
	// signal — so the CLI test harness actually exits instead of leaving
	// the tick goroutine running forever.
	runCtx, cancelRun := context.WithCancel(signalCtx)
	defer cancelRun()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		stopTicks := make(chan struct{})
		go func() {
			<-gctx.Done()
			close(stopTicks)
		}()
		pumpTicks(executive, platform, stopTicks)
		return nil
	})
	g.Go(func() error {
		executive.Run(gctx, maxTicks)
		cancelRun()
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := kernel.SaveSnapshot(flash, &executive.Status, executive.RebootCount.Load()); err != nil {
		logger.WriteLineString(fmt.Sprintf("snapshot save: %v", err))
	}
}

// pumpTicks bridges the platform's hal.Time tickstream into
// Executive.Scheduler, the same shape main_tinygo.go's pumpHardwareTicks
// uses for the bare-metal build — kernel.TickSource (time.Time-stamped)
// and hal.Time (bare sequence numbers) are deliberately different
// shapes, so both composition roots do this translation themselves
// rather than the kernel consuming hal.Time.
func pumpTicks(e *kernel.Executive, p hal.Platform, stop <-chan struct{}) {
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
