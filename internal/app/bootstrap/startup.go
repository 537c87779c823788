// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/supporthub/internal/app/resources"
	"github.com/dalemusser/supporthub/internal/app/system/query"
	"github.com/dalemusser/supporthub/internal/app/system/timeouts"
	"github.com/dalemusser/supporthub/internal/app/system/viewdata"
	"github.com/dalemusser/supporthub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

const (
	sweepInterval   = time.Minute
	cleanupInterval = time.Minute
)

// Startup runs one-time application initialization after backends are
// connected, but before the HTTP handler is built. It loads the shared
// templates, applies timeouts and view settings, and starts the workers.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	timeouts.Configure(timeouts.Config{Fetch: appCfg.APITimeout})
	viewdata.Init(appCfg.SiteName, appCfg.RefreshInterval)

	startWorkers(deps, appCfg, logger)
	return nil
}

func startWorkers(deps DBDeps, appCfg AppConfig, logger *zap.Logger) {
	if deps.Workers == nil {
		return
	}

	// Redis expires keys on its own.
	if mem, ok := deps.QueryStore.(*query.MemoryStore); ok {
		deps.Workers.CacheSweep = workers.NewCacheSweep(mem, logger, sweepInterval)
		deps.Workers.CacheSweep.Start()
	}

	if deps.LoginLimiter != nil {
		lim := deps.LoginLimiter
		deps.Workers.LimiterSweep = workers.NewCacheSweep(workers.SweepFunc(func(context.Context) (int, error) {
			return lim.Cleanup(), nil
		}), logger, sweepInterval)
		deps.Workers.LimiterSweep.Start()
	}

	if deps.Sessions != nil {
		deps.Workers.SessionCleanup = workers.NewSessionCleanup(deps.Sessions, logger, cleanupInterval, appCfg.SessionIdleTimeout)
		deps.Workers.SessionCleanup.Start()
	}
}

func stopWorkers(w *Workers) {
	if w == nil {
		return
	}
	if w.CacheSweep != nil {
		w.CacheSweep.Stop()
	}
	if w.LimiterSweep != nil {
		w.LimiterSweep.Stop()
	}
	if w.SessionCleanup != nil {
		w.SessionCleanup.Stop()
	}
}
