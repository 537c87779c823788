// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/supporthub/internal/app/store/sessions"
	"github.com/dalemusser/supporthub/internal/app/system/apiclient"
	"github.com/dalemusser/supporthub/internal/app/system/query"
	"github.com/dalemusser/supporthub/internal/app/system/ratelimit"
	"github.com/dalemusser/supporthub/internal/app/system/workers"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the back-end dependencies for the app. WAFFLE passes it by
// value between hooks, so anything started later hangs off a pointer.
type DBDeps struct {
	API *apiclient.Client

	Query      *query.Client
	QueryStore query.Store
	Redis      *query.RedisStore // nil with the memory backend

	Metrics *prometheus.Registry

	// Activity tracking; nil when mongo_uri is blank.
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Sessions      *sessions.Store

	LoginLimiter *ratelimit.Limiter

	Workers *Workers
}

// Workers are the background loops started in Startup and stopped in
// Shutdown.
type Workers struct {
	CacheSweep     *workers.CacheSweep
	LimiterSweep   *workers.CacheSweep
	SessionCleanup *workers.SessionCleanup
}
