// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	adminstatsfeature "github.com/dalemusser/supporthub/internal/app/features/adminstats"
	dashboardfeature "github.com/dalemusser/supporthub/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/supporthub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/supporthub/internal/app/features/health"
	heartbeatfeature "github.com/dalemusser/supporthub/internal/app/features/heartbeat"
	homefeature "github.com/dalemusser/supporthub/internal/app/features/home"
	loginfeature "github.com/dalemusser/supporthub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/supporthub/internal/app/features/logout"
	rosterfeature "github.com/dalemusser/supporthub/internal/app/features/roster"
	sponsordashfeature "github.com/dalemusser/supporthub/internal/app/features/sponsordash"
	"github.com/dalemusser/supporthub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend connections, schema setup,
// and the Startup hook have completed. SupportHub creates the session
// manager, boots the template engine and mounts the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	return newRouter(deps, sessionMgr, logger), nil
}

// newRouter mounts every feature. It does not touch the template engine,
// so tests can exercise routing and middleware directly.
func newRouter(deps DBDeps, sessionMgr *auth.SessionManager, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// Set before mounting so subrouters inherit it.
	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)

	// Health check endpoint for load balancers and orchestrators.
	// A nil *RedisStore must not become a non-nil Pinger.
	var cachePinger healthfeature.Pinger
	if deps.Redis != nil {
		cachePinger = deps.Redis
	}
	healthHandler := healthfeature.NewHandler(deps.API, cachePinger, deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	if deps.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// Public pages
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.API, sessionMgr, deps.Sessions, deps.LoginLimiter, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, deps.Sessions, deps.Query, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	heartbeatHandler := heartbeatfeature.NewHandler(deps.Sessions, sessionMgr, logger)
	r.Mount("/api/heartbeat", heartbeatfeature.Routes(heartbeatHandler, sessionMgr))

	// Error pages
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Role dispatcher
	dashboardHandler := dashboardfeature.NewHandler(logger)
	r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))

	// Admin statistics
	adminHandler := adminstatsfeature.NewHandler(deps.API, deps.Query, logger)
	r.Mount("/admin/dashboard", adminstatsfeature.Routes(adminHandler, sessionMgr))

	// Sponsor views
	sponsorHandler := sponsordashfeature.NewHandler(deps.API, deps.Query, logger)
	r.Mount("/sponsor/dashboard", sponsordashfeature.Routes(sponsorHandler, sessionMgr))

	rosterHandler := rosterfeature.NewHandler(deps.API, deps.Query, logger)
	r.Mount("/sponsor/mentees", rosterfeature.MenteeRoutes(rosterHandler, sessionMgr))
	r.Mount("/sponsor/requests", rosterfeature.RequestRoutes(rosterHandler, sessionMgr))

	return r
}
