// Package timeouts holds the process-wide deadlines for outbound work.
//
//   - Ping: health checks against the API, Redis and Mongo
//   - Short: single small reads/writes (session records, cache lookups)
//   - Fetch: a dashboard panel's remote API queries, end to end
package timeouts

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPing  = 2 * time.Second
	DefaultShort = 5 * time.Second
	DefaultFetch = 15 * time.Second
)

// Config is a set of deadlines. In Configure, zero fields leave the
// current value unchanged.
type Config struct {
	Ping  time.Duration
	Short time.Duration
	Fetch time.Duration
}

var defaults = Config{Ping: DefaultPing, Short: DefaultShort, Fetch: DefaultFetch}

var (
	mu  sync.RWMutex
	cur = defaults
)

func Ping() time.Duration  { return Current().Ping }
func Short() time.Duration { return Current().Short }
func Fetch() time.Duration { return Current().Fetch }

// Current returns a copy of the active deadlines.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cur
}

// Configure overrides the non-zero fields of cfg. Bootstrap calls it once
// at startup with the configured API timeout.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	cur.Ping = pick(cfg.Ping, cur.Ping)
	cur.Short = pick(cfg.Short, cur.Short)
	cur.Fetch = pick(cfg.Fetch, cur.Fetch)
}

// Reset restores the defaults (tests).
func Reset() {
	mu.Lock()
	cur = defaults
	mu.Unlock()
}

func pick(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}

// WithTimeout derives a bounded context. Its cancel func logs a warning
// when the deadline, rather than the caller, ended the operation.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "sponsor dashboard panel")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if log != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout))
		}
		cancel()
	}
}
