// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/supporthub/internal/app/store/sessions"
	"github.com/dalemusser/supporthub/internal/app/system/apiclient"
	"github.com/dalemusser/supporthub/internal/app/system/query"
	"github.com/dalemusser/supporthub/internal/app/system/ratelimit"
	"github.com/dalemusser/supporthub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectDB builds the API client and query cache and, when activity
// tracking is configured, connects to MongoDB.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps := DBDeps{
		API: apiclient.New(apiclient.Config{
			BaseURL: appCfg.APIBaseURL,
			Timeout: appCfg.APITimeout,
			Logger:  logger,
		}),
		Metrics:      reg,
		LoginLimiter: ratelimit.New(appCfg.LoginRateLimit, time.Minute),
		Workers:      &Workers{},
	}

	store, rdb, err := openQueryStore(ctx, appCfg, logger)
	if err != nil {
		return DBDeps{}, err
	}
	deps.QueryStore = store
	deps.Redis = rdb
	deps.Query = query.NewClient(query.Options{
		Store:     store,
		StaleTime: appCfg.QueryStaleTime,
		TTL:       appCfg.QueryCacheTTL,
		Metrics:   query.NewMetrics(reg),
		Logger:    logger,
	})

	if !appCfg.TrackingEnabled() {
		logger.Info("activity tracking disabled (mongo_uri not set)")
		return deps, nil
	}

	client, err := connectMongo(ctx, appCfg.MongoURI)
	if err != nil {
		_ = deps.Query.Close()
		logger.Error("MongoDB connect failed", zap.Error(err))
		return DBDeps{}, err
	}
	deps.MongoClient = client
	deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
	deps.Sessions = sessions.New(deps.MongoDatabase)
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	return deps, nil
}

func openQueryStore(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (query.Store, *query.RedisStore, error) {
	if appCfg.QueryCacheBackend != cacheRedis {
		logger.Info("query cache: memory")
		return query.NewMemoryStore(), nil, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	rdb, err := query.NewRedisStore(pingCtx, appCfg.RedisURL, "supporthub:query:")
	if err != nil {
		logger.Error("redis connect failed", zap.Error(err))
		return nil, nil, fmt.Errorf("query cache: %w", err)
	}
	logger.Info("query cache: redis")
	return rdb, rdb, nil
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// EnsureSchema sets up indexes for the activity sessions collection.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Sessions == nil {
		return nil
	}
	if err := deps.Sessions.EnsureIndexes(ctx); err != nil {
		logger.Error("ensure activity session indexes", zap.Error(err))
		return fmt.Errorf("ensure indexes: %w", err)
	}
	return nil
}
