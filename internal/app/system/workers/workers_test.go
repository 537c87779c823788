package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type countingCloser struct{ calls atomic.Int32 }

func (c *countingCloser) CloseInactive(ctx context.Context, threshold time.Duration) (int64, error) {
	c.calls.Add(1)
	return 1, nil
}

type countingSweeper struct{ calls atomic.Int32 }

func (c *countingSweeper) Sweep(ctx context.Context) (int, error) {
	c.calls.Add(1)
	return 2, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSessionCleanup_RunsUntilStopped(t *testing.T) {
	c := &countingCloser{}
	w := NewSessionCleanup(c, zap.NewNop(), 10*time.Millisecond, time.Minute)
	w.Start()
	waitFor(t, func() bool { return c.calls.Load() >= 2 })
	w.Stop()

	after := c.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if c.calls.Load() != after {
		t.Error("worker kept running after Stop")
	}
}

func TestCacheSweep_RunsUntilStopped(t *testing.T) {
	s := &countingSweeper{}
	w := NewCacheSweep(s, zap.NewNop(), 10*time.Millisecond)
	w.Start()
	waitFor(t, func() bool { return s.calls.Load() >= 1 })
	w.Stop()
}

func TestSweepFunc_DrivesCacheSweep(t *testing.T) {
	var calls atomic.Int32
	fn := SweepFunc(func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 0, nil
	})

	w := NewCacheSweep(fn, zap.NewNop(), 5*time.Millisecond)
	w.Start()
	waitFor(t, func() bool { return calls.Load() >= 1 })
	w.Stop()
}

func TestStop_Idempotent(t *testing.T) {
	w := NewCacheSweep(&countingSweeper{}, zap.NewNop(), time.Hour)
	w.Start()
	w.Stop()
	w.Stop()
}
