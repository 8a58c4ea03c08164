package modes

import (
	"context"
	"testing"
	"time"

	"github.com/JakeRoggenbuck/IntelliSat-Prototype/config"
	"github.com/JakeRoggenbuck/IntelliSat-Prototype/kernel"
)

func TestNewBuildsAllSixModesInOrder(t *testing.T) {
	table := New(config.Default(), nil, nil, 2)
	for id := kernel.ModeID(0); id < kernel.ModeID(kernel.NumModes); id++ {
		entry := table[id]
		if entry.ID != id {
			t.Fatalf("table[%d].ID = %s, want %s", id, entry.ID, id)
		}
		if entry.Sense == nil || entry.Configure == nil || entry.Run == nil || entry.Clean == nil {
			t.Fatalf("mode %s has a nil quadruple member", id)
		}
	}
}

func TestChargingSensesOnLowBattery(t *testing.T) {
	cfg := config.Default()
	cfg.BatteryThresholdPercent = 20

	battery := 15
	table := New(cfg, nil, func() int { return battery }, 2)

	if !table[kernel.CHARGING].Sense() {
		t.Fatal("expected CHARGING to sense true at 15% with a 20% threshold")
	}

	battery = 80
	if table[kernel.CHARGING].Sense() {
		t.Fatal("expected CHARGING to sense false at 80% with a 20% threshold")
	}
}

func TestRunBodyHonorsCancellation(t *testing.T) {
	table := New(config.Default(), nil, nil, 2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		table[kernel.HDD].Run(ctx)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Run to return promptly after cancellation")
	}
}

func TestCleanDoesNotPanicWithoutLogger(t *testing.T) {
	table := New(config.Default(), nil, nil, 2)
	for id := kernel.ModeID(0); id < kernel.ModeID(kernel.NumModes); id++ {
		table[id].Clean()
	}
}
