// internal/app/features/sponsordash/summary.go
package sponsordash

import (
	"context"

	"github.com/dalemusser/supporthub/internal/app/store/queries/dashqueries"
	"github.com/dalemusser/supporthub/internal/app/system/i18n"
	"github.com/dalemusser/supporthub/internal/app/system/query"
	"github.com/dalemusser/supporthub/internal/app/system/viewdata"
	"github.com/dalemusser/supporthub/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// Status is the relationship status label shown on the summary. It is a
// label, not a count, so it is typed apart from the counters.
type Status string

const StatusActive Status = "Active"

// Summary is derived from the two collections on every render.
type Summary struct {
	PendingRequests int
	ActiveMentees   int
	Status          Status
}

// Summarize counts the collections. A nil collection counts as 0.
func Summarize(reqs []models.RelationshipRequest, mentees []models.ActiveMentee) Summary {
	return Summary{
		PendingRequests: len(reqs),
		ActiveMentees:   len(mentees),
		Status:          StatusActive,
	}
}

// Welcome greets the sponsor by display name when there is one.
func Welcome(name string) string {
	if name == "" {
		return "Welcome back!"
	}
	return "Welcome back, " + name + "!"
}

// sources is what the dashboard panel needs from the API.
type sources struct {
	requests query.State[[]models.RelationshipRequest]
	mentees  query.State[[]models.ActiveMentee]
	err      error // first failure, as reported by the group
}

// loadBoth resolves both queries concurrently. The first failure cancels
// the other wait; its flight still completes into the cache.
func loadBoth(ctx context.Context, qc *query.Client, api dashqueries.SponsorAPI, userID, token string) sources {
	var s sources
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.requests = query.Fetch(gctx, qc, dashqueries.PendingRequests(api, userID, token))
		return s.requests.Err
	})
	g.Go(func() error {
		s.mentees = query.Fetch(gctx, qc, dashqueries.ActiveMentees(api, userID, token))
		return s.mentees.Err
	})
	s.err = g.Wait()
	return s
}

// peekBoth reads both queries from the cache only.
func peekBoth(ctx context.Context, qc *query.Client, api dashqueries.SponsorAPI, userID, token string) sources {
	return sources{
		requests: query.Peek(ctx, qc, dashqueries.PendingRequests(api, userID, token)),
		mentees:  query.Peek(ctx, qc, dashqueries.ActiveMentees(api, userID, token)),
	}
}

type panelData struct {
	Panel         viewdata.PanelVM
	Summary       Summary
	RequestsLabel string
	MenteesLabel  string
}

const (
	panelID    = "sponsor-dashboard-panel"
	panelURL   = "/sponsor/dashboard/panel"
	refreshURL = "/sponsor/dashboard/refresh"
)

func buildPanel(s sources) panelData {
	status := query.Combine(s.requests, s.mentees)
	if s.err != nil {
		status = query.Composite{Phase: query.PhaseError, Err: s.err}
	}
	pd := panelData{Panel: viewdata.NewPanel(panelID, panelURL, refreshURL, "your dashboard", status)}
	if status.Phase != query.PhaseReady {
		return pd
	}
	pd.Summary = Summarize(s.requests.Data, s.mentees.Data)
	pd.RequestsLabel = i18n.Sprintf(i18n.KeyRequestCount, pd.Summary.PendingRequests)
	pd.MenteesLabel = i18n.Sprintf(i18n.KeyMenteeCount, pd.Summary.ActiveMentees)
	return pd
}
