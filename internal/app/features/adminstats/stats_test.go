package adminstats

import (
	"errors"
	"testing"

	"github.com/dalemusser/supporthub/internal/app/system/query"
	"github.com/dalemusser/supporthub/internal/domain/models"
)

func TestCards_FixedMapping(t *testing.T) {
	cards := Cards(models.AggregateStats{
		PendingSponsorApplications: 2,
		PendingSupportGroups:       1,
		UnresolvedReports:          3,
	})

	want := []struct {
		category string
		title    string
		link     string
		severity Severity
		value    int64
	}{
		{"sponsor-applications", "Sponsor Applications", "/admin/sponsor-applications", SeverityWarning, 2},
		{"support-groups", "Support Groups", "/admin/support-groups", SeverityWarning, 1},
		{"resources", "Resources", "/admin/resources", SeverityWarning, 0},
		{"reports", "Unresolved Reports", "/admin/reports", SeverityDanger, 3},
	}
	if len(cards) != len(want) {
		t.Fatalf("cards: got %d, want %d", len(cards), len(want))
	}
	for i, w := range want {
		c := cards[i]
		if c.Category != w.category || c.Title != w.title || c.Link != w.link || c.Severity != w.severity || c.Value != w.value {
			t.Errorf("card %d: got %+v", i, c)
		}
	}
	if got := TotalPending(cards); got != 6 {
		t.Errorf("TotalPending: got %d, want 6", got)
	}
}

func TestCards_AbsentFieldsAreZero(t *testing.T) {
	cards := Cards(models.AggregateStats{})
	for _, c := range cards {
		if c.Value != 0 {
			t.Errorf("%s: got %d, want 0", c.Category, c.Value)
		}
	}
	if TotalPending(cards) != 0 {
		t.Error("TotalPending of empty stats should be 0")
	}
}

func TestBuildPanel_Phases(t *testing.T) {
	loading := buildPanel(query.State[models.AggregateStats]{IsLoading: true})
	if !loading.Panel.Loading() || loading.Cards != nil {
		t.Errorf("loading panel should carry no content: %+v", loading)
	}

	failed := buildPanel(query.State[models.AggregateStats]{Err: errors.New("boom")})
	if !failed.Panel.Failed() || failed.Cards != nil || failed.Summary != "" {
		t.Errorf("failed panel should carry no content: %+v", failed)
	}

	ready := buildPanel(query.State[models.AggregateStats]{Data: models.AggregateStats{
		PendingResources:   1,
		UserCounts:         models.UserCounts{Total: 50, Sponsors: 5},
		SupportGroupCounts: models.SupportGroupCounts{Total: 4},
	}})
	if ready.Summary != "You have 1 pending item that needs attention." {
		t.Errorf("Summary: got %q", ready.Summary)
	}
	if ready.Totals != (Totals{Users: 50, Sponsors: 5, Resources: 0, SupportGroups: 4}) {
		t.Errorf("Totals: got %+v", ready.Totals)
	}
}

func TestCardLink(t *testing.T) {
	if link, ok := cardLink("reports"); !ok || link != "/admin/reports" {
		t.Errorf("reports: got %q %v", link, ok)
	}
	if _, ok := cardLink("nope"); ok {
		t.Error("unknown category should not resolve")
	}
}
