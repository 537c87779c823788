// internal/app/features/roster/routes.go
package roster

import (
	"github.com/dalemusser/supporthub/internal/app/system/auth"
	"github.com/dalemusser/supporthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// MenteeRoutes wires the roster (mounted at "/sponsor/mentees").
func MenteeRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleSponsor))
		pr.Get("/", h.ServeMentees)
		pr.Get("/panel", h.ServeMenteesPanel)
		pr.Post("/refresh", h.ServeMenteesRefresh)
	})
	return r
}

// RequestRoutes wires the pending-request list (mounted at "/sponsor/requests").
func RequestRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleSponsor))
		pr.Get("/", h.ServeRequests)
		pr.Get("/panel", h.ServeRequestsPanel)
		pr.Post("/refresh", h.ServeRequestsRefresh)
	})
	return r
}
