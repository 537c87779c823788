// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/supporthub/internal/app/store/queries/dashqueries"
	"github.com/dalemusser/supporthub/internal/app/store/sessions"
	"github.com/dalemusser/supporthub/internal/app/system/auth"
	"github.com/dalemusser/supporthub/internal/app/system/query"
	"github.com/dalemusser/supporthub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Sessions   *sessions.Store // nil when activity tracking is off
	Query      *query.Client   // nil skips cache cleanup
}

func NewHandler(sessionMgr *auth.SessionManager, sessStore *sessions.Store, qc *query.Client, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Sessions:   sessStore,
		Query:      qc,
	}
}

// ServeLogout handles GET and POST /logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	u, signedIn := auth.CurrentUser(r)

	activityID, err := h.SessionMgr.SignOut(w, r)
	if err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "logout")
	defer cancel()

	if h.Sessions != nil && activityID != "" {
		if err := h.Sessions.Close(ctx, activityID, sessions.EndLogout); err != nil {
			h.Log.Warn("logout: close activity session", zap.String("activity_id", activityID), zap.Error(err))
		}
	}

	// The sponsor's roster snapshot is scoped to them; drop it with the session.
	if h.Query != nil && signedIn {
		if err := h.Query.Invalidate(ctx, dashqueries.SponsorPrefix(u.ID)); err != nil {
			h.Log.Warn("logout: invalidate cached queries", zap.String("user_id", u.ID), zap.Error(err))
		}
	}

	// HTMX handling: use HX-Redirect to force a client-side navigation to "/".
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
