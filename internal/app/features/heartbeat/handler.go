// internal/app/features/heartbeat/handler.go
package heartbeat

import (
	"net/http"
	"strings"

	"github.com/dalemusser/supporthub/internal/app/store/sessions"
	"github.com/dalemusser/supporthub/internal/app/system/auth"
	"github.com/dalemusser/supporthub/internal/app/system/limits"
	"github.com/dalemusser/supporthub/internal/app/system/ratelimit"
	"github.com/dalemusser/supporthub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler handles heartbeat requests for activity tracking.
type Handler struct {
	Sessions   *sessions.Store
	SessionMgr *auth.SessionManager
	Log        *zap.Logger
}

// NewHandler creates a new heartbeat handler.
func NewHandler(sessStore *sessions.Store, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Sessions:   sessStore,
		SessionMgr: sessionMgr,
		Log:        logger,
	}
}

// ServeHeartbeat handles POST /api/heartbeat.
// Updates last_active_at for the user's activity session. If the session
// was closed for inactivity, a new one is opened and stored in the cookie.
// Failures are logged and never surfaced; the page keeps polling.
func (h *Handler) ServeHeartbeat(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok || h.Sessions == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxHeartbeatFormSize)
	page := strings.TrimSpace(r.FormValue("page"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "heartbeat")
	defer cancel()

	if u.ActivityID != "" {
		updated, err := h.Sessions.Touch(ctx, u.ActivityID, page)
		if err != nil {
			h.Log.Warn("failed to update session last_active_at",
				zap.Error(err),
				zap.String("session_id", u.ActivityID))
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if updated {
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	// No open activity session: start a new one.
	sess, err := h.Sessions.Create(ctx, u.ID, u.LoginID, u.Role, ratelimit.ClientIP(r), r.UserAgent())
	if err != nil {
		h.Log.Warn("failed to create new activity session after timeout",
			zap.Error(err),
			zap.String("user_id", u.ID))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if page != "" {
		_, _ = h.Sessions.Touch(ctx, sess.ID.Hex(), page)
	}
	if err := h.SessionMgr.SetActivityID(w, r, sess.ID.Hex()); err != nil {
		h.Log.Warn("failed to save session with new activity_session_id", zap.Error(err))
	}

	h.Log.Info("created new activity session after inactivity timeout",
		zap.String("user_id", u.ID),
		zap.String("new_session_id", sess.ID.Hex()))
	w.WriteHeader(http.StatusNoContent)
}
