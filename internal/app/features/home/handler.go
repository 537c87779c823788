package home

import (
	"net/http"

	"github.com/dalemusser/supporthub/internal/app/system/authz"
	"github.com/dalemusser/supporthub/internal/app/system/viewdata"
	"github.com/dalemusser/supporthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	Log *zap.Logger

	render func(w http.ResponseWriter, r *http.Request, name string, data any)
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		Log:    logger,
		render: templates.Render,
	}
}

type homeData struct {
	viewdata.BaseVM
	HasDashboard bool
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	vm := viewdata.NewBaseVM(r, "Welcome", "/")
	h.render(w, r, "home", homeData{
		BaseVM:       vm,
		HasDashboard: authz.HasAnyRole(r, models.RoleAdmin, models.RoleSponsor),
	})
}
