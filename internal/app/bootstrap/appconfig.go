// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like ports, TLS,
// logging and CORS. AppConfig is where SupportHub keeps the remote API
// location, the query cache, sessions and optional activity tracking.
type AppConfig struct {
	// Remote API
	APIBaseURL string        // e.g. https://api.example.org
	APITimeout time.Duration // per-request timeout for API calls

	// Query cache
	QueryCacheBackend string        // "memory" or "redis"
	QueryStaleTime    time.Duration // age after which a cached result is refetched
	QueryCacheTTL     time.Duration // how long results are retained at all
	RedisURL          string        // required when QueryCacheBackend is "redis"
	RefreshInterval   time.Duration // how often dashboard panels poll

	// Activity tracking (optional; disabled when MongoURI is blank)
	MongoURI           string
	MongoDatabase      string
	SessionIdleTimeout time.Duration // idle time before an activity session is closed

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: supporthub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // cookie lifetime

	// Presentation
	SiteName string

	// Sign-in attempts allowed per client IP per minute
	LoginRateLimit int
}

// TrackingEnabled reports whether activity sessions are stored in MongoDB.
func (c AppConfig) TrackingEnabled() bool { return c.MongoURI != "" }
