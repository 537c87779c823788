// internal/app/system/workers/cachesweep.go
package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper evicts expired entries from an in-process cache.
// *query.MemoryStore satisfies it.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// SweepFunc adapts a plain function to Sweeper.
type SweepFunc func(ctx context.Context) (int, error)

func (f SweepFunc) Sweep(ctx context.Context) (int, error) { return f(ctx) }

// CacheSweep periodically evicts expired entries. Bootstrap runs one for
// the memory query cache (Redis expires keys itself) and one for the login
// rate limiter buckets.
type CacheSweep struct {
	target Sweeper
	*loop
}

func NewCacheSweep(target Sweeper, logger *zap.Logger, interval time.Duration) *CacheSweep {
	w := &CacheSweep{target: target}
	w.loop = newLoop("cache sweep", interval, 10*time.Second, logger, w.sweep)
	return w
}

func (w *CacheSweep) Start() { w.start() }
func (w *CacheSweep) Stop()  { w.stop() }

func (w *CacheSweep) sweep(ctx context.Context) {
	n, err := w.target.Sweep(ctx)
	if err != nil {
		w.log.Warn("cache sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		w.log.Debug("swept expired entries", zap.Int("count", n))
	}
}
