package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/supporthub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is anything that can report its own reachability.
// *apiclient.Client and *query.RedisStore satisfy it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies needed for health checks. Cache and Mongo
// are optional; a nil one is reported as disabled.
type Handler struct {
	API   Pinger
	Cache Pinger
	Mongo *mongo.Client
	Log   *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(api, cache Pinger, client *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{
		API:   api,
		Cache: cache,
		Mongo: client,
		Log:   logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	API      string `json:"api"`
	Cache    string `json:"cache"`
	Database string `json:"database"`
	Message  string `json:"message,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "api":"reachable", "cache":"memory", "database":"disabled" }
//
// When any configured dependency fails: 503 and "status":"error", with the
// failing dependency marked unreachable or disconnected.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	resp := healthResponse{
		Status:   "ok",
		API:      "reachable",
		Cache:    "memory",
		Database: "disabled",
	}

	if err := h.API.Ping(ctx); err != nil {
		h.Log.Error("health-check: api ping failed", zap.Error(err))
		resp.Status, resp.API = "error", "unreachable"
	}

	if h.Cache != nil {
		resp.Cache = "connected"
		if err := h.Cache.Ping(ctx); err != nil {
			h.Log.Error("health-check: redis ping failed", zap.Error(err))
			resp.Status, resp.Cache = "error", "disconnected"
		}
	}

	if h.Mongo != nil {
		resp.Database = "connected"
		if err := h.Mongo.Ping(ctx, readpref.Primary()); err != nil {
			h.Log.Error("health-check: mongo ping failed", zap.Error(err))
			resp.Status, resp.Database = "error", "disconnected"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if resp.Status != "ok" {
		resp.Message = "One or more dependencies are unavailable"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}
