// internal/app/features/adminstats/stats.go
package adminstats

import (
	"github.com/dalemusser/supporthub/internal/app/system/i18n"
	"github.com/dalemusser/supporthub/internal/app/system/query"
	"github.com/dalemusser/supporthub/internal/app/system/viewdata"
	"github.com/dalemusser/supporthub/internal/domain/models"
)

// Severity styles a pending-category card.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Card is one pending-approval category. Cards are derived from the stats
// snapshot on every render and never stored.
type Card struct {
	Category    string
	Title       string
	Value       int64
	Description string
	Link        string
	Severity    Severity
}

// ActivateURL is the card's activation endpoint.
func (c Card) ActivateURL() string {
	return "/admin/dashboard/cards/" + c.Category + "/activate"
}

type cardDef struct {
	category    string
	title       string
	description string
	link        string
	severity    Severity
	value       func(models.AggregateStats) int64
}

// cardDefs is the fixed category → card mapping, in display order.
var cardDefs = []cardDef{
	{
		category:    "sponsor-applications",
		title:       "Sponsor Applications",
		description: "Applications waiting for review",
		link:        "/admin/sponsor-applications",
		severity:    SeverityWarning,
		value:       func(s models.AggregateStats) int64 { return s.PendingSponsorApplications },
	},
	{
		category:    "support-groups",
		title:       "Support Groups",
		description: "Groups waiting for approval",
		link:        "/admin/support-groups",
		severity:    SeverityWarning,
		value:       func(s models.AggregateStats) int64 { return s.PendingSupportGroups },
	},
	{
		category:    "resources",
		title:       "Resources",
		description: "Resources waiting for approval",
		link:        "/admin/resources",
		severity:    SeverityWarning,
		value:       func(s models.AggregateStats) int64 { return s.PendingResources },
	},
	{
		category:    "reports",
		title:       "Unresolved Reports",
		description: "Reports that need a moderator",
		link:        "/admin/reports",
		severity:    SeverityDanger,
		value:       func(s models.AggregateStats) int64 { return s.UnresolvedReports },
	},
}

// Cards derives the four pending-category cards.
func Cards(s models.AggregateStats) []Card {
	cards := make([]Card, 0, len(cardDefs))
	for _, d := range cardDefs {
		v := d.value(s)
		if v < 0 {
			v = 0
		}
		cards = append(cards, Card{
			Category:    d.category,
			Title:       d.title,
			Value:       v,
			Description: d.description,
			Link:        d.link,
			Severity:    d.severity,
		})
	}
	return cards
}

// TotalPending sums the card values.
func TotalPending(cards []Card) int64 {
	var total int64
	for _, c := range cards {
		total += c.Value
	}
	return total
}

// cardLink returns the link for a category.
func cardLink(category string) (string, bool) {
	for _, d := range cardDefs {
		if d.category == category {
			return d.link, true
		}
	}
	return "", false
}

// Totals is the platform-wide totals row.
type Totals struct {
	Users         int64
	Sponsors      int64
	Resources     int64
	SupportGroups int64
}

func totalsFrom(s models.AggregateStats) Totals {
	return Totals{
		Users:         s.UserCounts.Total,
		Sponsors:      s.UserCounts.Sponsors,
		Resources:     s.ResourceCounts.Total,
		SupportGroups: s.SupportGroupCounts.Total,
	}
}

// panelData is the reactive region of the admin dashboard.
type panelData struct {
	Panel         viewdata.PanelVM
	Cards         []Card
	TotalPending  int64
	Summary       string
	Totals        Totals
	Registrations []models.MonthlyCount
}

const (
	panelID    = "admin-stats-panel"
	panelURL   = "/admin/dashboard/panel"
	refreshURL = "/admin/dashboard/refresh"
)

// buildPanel turns the stats query state into the panel view model. Only
// the ready phase carries content.
func buildPanel(st query.State[models.AggregateStats]) panelData {
	status := query.Combine(st)
	pd := panelData{Panel: viewdata.NewPanel(panelID, panelURL, refreshURL, "admin statistics", status)}
	if status.Phase != query.PhaseReady {
		return pd
	}
	pd.Cards = Cards(st.Data)
	pd.TotalPending = TotalPending(pd.Cards)
	pd.Summary = i18n.PendingSummary(pd.TotalPending)
	pd.Totals = totalsFrom(st.Data)
	pd.Registrations = st.Data.UserRegistrationsByMonth
	return pd
}
