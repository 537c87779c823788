// internal/app/features/sponsordash/handler.go
package sponsordash

import (
	"net/http"

	"github.com/dalemusser/supporthub/internal/app/store/queries/dashqueries"
	"github.com/dalemusser/supporthub/internal/app/system/authz"
	"github.com/dalemusser/supporthub/internal/app/system/query"
	"github.com/dalemusser/supporthub/internal/app/system/timeouts"
	"github.com/dalemusser/supporthub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// Handler serves the sponsor dashboard.
type Handler struct {
	API   dashqueries.SponsorAPI
	Query *query.Client
	Log   *zap.Logger

	render  func(w http.ResponseWriter, r *http.Request, name string, data any)
	snippet func(w http.ResponseWriter, name string, data any)
}

func NewHandler(api dashqueries.SponsorAPI, qc *query.Client, logger *zap.Logger) *Handler {
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
	Welcome string
	Sponsor panelData
}

// ServePage renders the dashboard frame and whatever is cached.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	_, name, uid, _ := authz.UserCtx(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "sponsor dashboard page")
	defer cancel()

	s := peekBoth(ctx, h.Query, h.API, uid, authz.APIToken(r))

	h.render(w, r, "sponsor_dashboard", pageData{
		BaseVM:  viewdata.NewBaseVM(r, "Sponsor Dashboard", "/dashboard"),
		Welcome: Welcome(name),
		Sponsor: buildPanel(s),
	})
}

// ServePanel waits for both queries and renders the panel fragment.
func (h *Handler) ServePanel(w http.ResponseWriter, r *http.Request) {
	_, _, uid, _ := authz.UserCtx(r)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "sponsor dashboard panel")
	defer cancel()

	s := loadBoth(ctx, h.Query, h.API, uid, authz.APIToken(r))
	if r.Context().Err() != nil {
		return
	}
	if s.err != nil {
		h.Log.Warn("sponsor dashboard unavailable", zap.String("user_id", uid), zap.Error(s.err))
	}

	h.snippet(w, "sponsor_dashboard_panel", buildPanel(s))
}

// ServeRefresh drops this sponsor's cached queries and re-renders the panel.
func (h *Handler) ServeRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") != "true" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	_, _, uid, _ := authz.UserCtx(r)
	_ = h.Query.Invalidate(r.Context(), dashqueries.SponsorPrefix(uid))
	h.ServePanel(w, r)
}
