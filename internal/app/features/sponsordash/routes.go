// internal/app/features/sponsordash/routes.go
package sponsordash

import (
	"github.com/dalemusser/supporthub/internal/app/system/auth"
	"github.com/dalemusser/supporthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes wires the sponsor dashboard (mounted at "/sponsor/dashboard").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleSponsor))
		pr.Get("/", h.ServePage)
		pr.Get("/panel", h.ServePanel)
		pr.Post("/refresh", h.ServeRefresh)
	})

	return r
}
