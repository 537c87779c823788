// internal/app/features/adminstats/routes.go
package adminstats

import (
	"github.com/dalemusser/supporthub/internal/app/system/auth"
	"github.com/dalemusser/supporthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes wires the admin dashboard under its mount point
// (e.g., "/admin/dashboard"). Admins only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(models.RoleAdmin))
		pr.Get("/", h.ServePage)
		pr.Get("/panel", h.ServePanel)
		pr.Post("/refresh", h.ServeRefresh)
		pr.Get("/cards/{category}/activate", h.ServeActivate)
	})

	return r
}
