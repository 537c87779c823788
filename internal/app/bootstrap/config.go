// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const (
	cacheMemory = "memory"
	cacheRedis  = "redis"
)

// appConfigKeys defines the configuration keys for SupportHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, session_name, etc.
//   - Environment variables: SUPPORTHUB_API_BASE_URL, SUPPORTHUB_SESSION_NAME, etc.
//   - Command-line flags: --api_base_url, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:8080/api", Desc: "Base URL of the remote platform API"},
	{Name: "api_timeout", Default: "10s", Desc: "Timeout for a single API request"},

	// Query cache
	{Name: "query_cache_backend", Default: cacheMemory, Desc: "Query cache backend: 'memory' or 'redis'"},
	{Name: "query_stale_time", Default: "30s", Desc: "Age after which cached API results are refetched"},
	{Name: "query_cache_ttl", Default: "10m", Desc: "How long cached API results are retained"},
	{Name: "redis_url", Default: "", Desc: "Redis URL for the shared query cache (e.g., redis://localhost:6379/0)"},
	{Name: "refresh_interval", Default: "30s", Desc: "How often dashboard panels refresh themselves"},

	// Activity tracking
	{Name: "mongo_uri", Default: "", Desc: "MongoDB URI for activity tracking (blank disables tracking)"},
	{Name: "mongo_database", Default: "supporthub", Desc: "MongoDB database name"},
	{Name: "session_idle_timeout", Default: "30m", Desc: "Idle time before an activity session is closed"},

	// Sessions
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "supporthub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},

	{Name: "site_name", Default: "SupportHub", Desc: "Site name shown in page titles and the header"},
	{Name: "login_rate_limit", Default: 10, Desc: "Sign-in attempts allowed per client IP per minute"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, SUPPORTHUB_* for app) and
// command-line flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SUPPORTHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: strings.TrimRight(strings.TrimSpace(appValues.String("api_base_url")), "/"),
		APITimeout: appValues.Duration("api_timeout", 10*time.Second),

		QueryCacheBackend: strings.ToLower(strings.TrimSpace(appValues.String("query_cache_backend"))),
		QueryStaleTime:    appValues.Duration("query_stale_time", 30*time.Second),
		QueryCacheTTL:     appValues.Duration("query_cache_ttl", 10*time.Minute),
		RedisURL:          appValues.String("redis_url"),
		RefreshInterval:   appValues.Duration("refresh_interval", 30*time.Second),

		MongoURI:           strings.TrimSpace(appValues.String("mongo_uri")),
		MongoDatabase:      appValues.String("mongo_database"),
		SessionIdleTimeout: appValues.Duration("session_idle_timeout", 30*time.Minute),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		SiteName:       appValues.String("site_name"),
		LoginRateLimit: appValues.Int("login_rate_limit"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := validateAppConfig(appCfg, coreCfg.Env == "prod"); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}
	return nil
}

func validateAppConfig(appCfg AppConfig, prod bool) error {
	u, err := url.Parse(appCfg.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_base_url must be an absolute http(s) URL, got %q", appCfg.APIBaseURL)
	}
	if appCfg.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be positive")
	}

	switch appCfg.QueryCacheBackend {
	case cacheMemory:
	case cacheRedis:
		if appCfg.RedisURL == "" {
			return fmt.Errorf("query_cache_backend=redis requires redis_url")
		}
	default:
		return fmt.Errorf("query_cache_backend must be %q or %q, got %q", cacheMemory, cacheRedis, appCfg.QueryCacheBackend)
	}
	if appCfg.QueryStaleTime <= 0 {
		return fmt.Errorf("query_stale_time must be positive")
	}
	if appCfg.QueryCacheTTL < appCfg.QueryStaleTime {
		return fmt.Errorf("query_cache_ttl (%s) must not be shorter than query_stale_time (%s)", appCfg.QueryCacheTTL, appCfg.QueryStaleTime)
	}
	if appCfg.RefreshInterval < time.Second {
		return fmt.Errorf("refresh_interval must be at least 1s")
	}

	if appCfg.TrackingEnabled() {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("mongo_database is required when mongo_uri is set")
		}
	}

	if prod && strings.HasPrefix(appCfg.SessionKey, "dev-only") {
		return fmt.Errorf("session_key must be changed in production")
	}
	if len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters")
	}
	if appCfg.LoginRateLimit < 1 {
		return fmt.Errorf("login_rate_limit must be at least 1")
	}
	return nil
}
