// internal/app/features/roster/handler.go
package roster

import (
	"net/http"

	"github.com/dalemusser/supporthub/internal/app/store/queries/dashqueries"
	"github.com/dalemusser/supporthub/internal/app/system/authz"
	"github.com/dalemusser/supporthub/internal/app/system/i18n"
	"github.com/dalemusser/supporthub/internal/app/system/query"
	"github.com/dalemusser/supporthub/internal/app/system/timeouts"
	"github.com/dalemusser/supporthub/internal/app/system/viewdata"
	"github.com/dalemusser/supporthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Handler serves the sponsor's mentee roster and pending-request list.
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

/*─────────────────────────────────────────────────────────────────────────────*
| Mentees                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

type menteesPanel struct {
	Panel   viewdata.PanelVM
	Mentees []MenteeCard
}

type menteesPage struct {
	viewdata.BaseVM
	Roster menteesPanel
}

func buildMenteesPanel(st query.State[[]models.ActiveMentee], loc language.Tag) menteesPanel {
	status := query.Combine(st)
	p := menteesPanel{Panel: viewdata.NewPanel("sponsor-mentees-panel", "/sponsor/mentees/panel", "/sponsor/mentees/refresh", "your mentees", status)}
	if status.Phase == query.PhaseReady {
		p.Mentees = MenteeCards(st.Data, loc)
	}
	return p
}

func (h *Handler) menteesQuery(r *http.Request) query.Descriptor[[]models.ActiveMentee] {
	_, _, uid, _ := authz.UserCtx(r)
	return dashqueries.ActiveMentees(h.API, uid, authz.APIToken(r))
}

// ServeMentees renders the roster page from whatever is cached.
func (h *Handler) ServeMentees(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "mentee roster page")
	defer cancel()

	st := query.Peek(ctx, h.Query, h.menteesQuery(r))

	h.render(w, r, "sponsor_mentees", menteesPage{
		BaseVM: viewdata.NewBaseVM(r, "My Mentees", "/sponsor/dashboard"),
		Roster: buildMenteesPanel(st, i18n.Locale(r)),
	})
}

// ServeMenteesPanel resolves the roster and renders the panel fragment.
func (h *Handler) ServeMenteesPanel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "mentee roster panel")
	defer cancel()

	d := h.menteesQuery(r)
	st := query.Fetch(ctx, h.Query, d)
	if r.Context().Err() != nil {
		return
	}
	if st.Err != nil {
		h.Log.Warn("mentee roster unavailable", zap.String("key", d.Key), zap.Error(st.Err))
	}

	h.snippet(w, "sponsor_mentees_panel", buildMenteesPanel(st, i18n.Locale(r)))
}

// ServeMenteesRefresh drops the cached roster and re-renders the panel.
func (h *Handler) ServeMenteesRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") != "true" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	_ = h.Query.Invalidate(r.Context(), h.menteesQuery(r).Key)
	h.ServeMenteesPanel(w, r)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Pending requests                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

type requestsPanel struct {
	Panel    viewdata.PanelVM
	Requests []RequestCard
}

type requestsPage struct {
	viewdata.BaseVM
	Pending requestsPanel
}

func buildRequestsPanel(st query.State[[]models.RelationshipRequest], loc language.Tag) requestsPanel {
	status := query.Combine(st)
	p := requestsPanel{Panel: viewdata.NewPanel("sponsor-requests-panel", "/sponsor/requests/panel", "/sponsor/requests/refresh", "your requests", status)}
	if status.Phase == query.PhaseReady {
		p.Requests = RequestCards(st.Data, loc)
	}
	return p
}

func (h *Handler) requestsQuery(r *http.Request) query.Descriptor[[]models.RelationshipRequest] {
	_, _, uid, _ := authz.UserCtx(r)
	return dashqueries.PendingRequests(h.API, uid, authz.APIToken(r))
}

// ServeRequests renders the pending-request page from whatever is cached.
func (h *Handler) ServeRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "pending requests page")
	defer cancel()

	st := query.Peek(ctx, h.Query, h.requestsQuery(r))

	h.render(w, r, "sponsor_requests", requestsPage{
		BaseVM:  viewdata.NewBaseVM(r, "Pending Requests", "/sponsor/dashboard"),
		Pending: buildRequestsPanel(st, i18n.Locale(r)),
	})
}

// ServeRequestsPanel resolves pending requests and renders the panel fragment.
func (h *Handler) ServeRequestsPanel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Fetch(), h.Log, "pending requests panel")
	defer cancel()

	d := h.requestsQuery(r)
	st := query.Fetch(ctx, h.Query, d)
	if r.Context().Err() != nil {
		return
	}
	if st.Err != nil {
		h.Log.Warn("pending requests unavailable", zap.String("key", d.Key), zap.Error(st.Err))
	}

	h.snippet(w, "sponsor_requests_panel", buildRequestsPanel(st, i18n.Locale(r)))
}

// ServeRequestsRefresh drops the cached requests and re-renders the panel.
func (h *Handler) ServeRequestsRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") != "true" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	_ = h.Query.Invalidate(r.Context(), h.requestsQuery(r).Key)
	h.ServeRequestsPanel(w, r)
}
