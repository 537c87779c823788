// internal/app/features/adminstats/handler.go
package adminstats

import (
	"net/http"

	"github.com/dalemusser/supporthub/internal/app/store/queries/dashqueries"
	"github.com/dalemusser/supporthub/internal/app/system/authz"
	"github.com/dalemusser/supporthub/internal/app/system/navigation"
	"github.com/dalemusser/supporthub/internal/app/system/query"
	"github.com/dalemusser/supporthub/internal/app/system/timeouts"
	"github.com/dalemusser/supporthub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the admin statistics dashboard.
type Handler struct {
	API   dashqueries.StatsAPI
	Query *query.Client
	Log   *zap.Logger

	render  func(w http.ResponseWriter, r *http.Request, name string, data any)
	snippet func(w http.ResponseWriter, name string, data any)
}

func NewHandler(api dashqueries.StatsAPI, qc *query.Client, logger *zap.Logger) *Handler {
	return &Handler{
		API:     api,
		Query:   qc,
		Log:     logger,
		render:  templates.Render,
		snippet: templates.RenderSnippet,
	}
}

type pageData struct {
	viewdata.BaseVM
	Stats panelData
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/dashboard                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// ServePage renders the page frame from whatever is cached. Without a
// cached snapshot the panel renders as loading and fetches itself.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "admin dashboard page")
	defer cancel()

	st := query.Peek(ctx, h.Query, dashqueries.AdminStats(h.API, authz.APIToken(r)))

	h.render(w, r, "admin_stats", pageData{
		BaseVM: viewdata.NewBaseVM(r, "Admin Dashboard", "/dashboard"),
		Stats:  buildPanel(st),
	})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/dashboard/panel                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// ServePanel resolves the stats query and renders the panel fragment.
func (h *Handler) ServePanel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "admin dashboard panel")
	defer cancel()

	st := query.Fetch(ctx, h.Query, dashqueries.AdminStats(h.API, authz.APIToken(r)))
	if r.Context().Err() != nil {
		// Client went away; the result is cached for the next render.
		return
	}
	if st.Err != nil {
		_, name, uid, _ := authz.UserCtx(r)
		h.Log.Warn("admin stats unavailable", zap.String("user_id", uid), zap.String("user", name), zap.Error(st.Err))
	}

	h.snippet(w, "admin_stats_panel", buildPanel(st))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /admin/dashboard/refresh                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeRefresh drops the cached snapshot and re-renders the panel. It only
// answers HTMX requests; a cross-site form cannot set the HX-Request header.
func (h *Handler) ServeRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") != "true" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	_ = h.Query.Invalidate(r.Context(), dashqueries.AdminPrefix)
	h.ServePanel(w, r)
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /admin/dashboard/cards/{category}/activate                              |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeActivate follows a card's link when the trigger is a pointer click,
// Enter or Space. Any other key is ignored with 204 so HTMX leaves the
// page alone.
func (h *Handler) ServeActivate(w http.ResponseWriter, r *http.Request) {
	link, ok := cardLink(chi.URLParam(r, "category"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if !navigation.ParseTrigger(r.URL.Query().Get("trigger")).Activates() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	navigation.Navigate(w, r, link)
}
