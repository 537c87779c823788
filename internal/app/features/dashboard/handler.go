// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/supporthub/internal/app/system/authz"
	"go.uber.org/zap"
)

// Role-specific dashboard locations.
const (
	AdminPath   = "/admin/dashboard"
	SponsorPath = "/sponsor/dashboard"
)

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

// ServeDashboard sends the signed-in user to the dashboard for their role.
// Roles without a dashboard land on the home page.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	switch {
	case authz.IsAdmin(r):
		http.Redirect(w, r, AdminPath, http.StatusSeeOther)
	case authz.IsSponsor(r):
		http.Redirect(w, r, SponsorPath, http.StatusSeeOther)
	default:
		h.Log.Debug("no dashboard for role", zap.String("role", role), zap.String("user_id", uid))
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
