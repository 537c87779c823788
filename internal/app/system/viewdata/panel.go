package viewdata

import (
	"fmt"

	"github.com/dalemusser/supporthub/internal/app/system/query"
)

// PanelVM drives an HTMX panel: the region of a dashboard that loads its
// queries, re-polls itself and shows the loading or error state in place
// of its content.
type PanelVM struct {
	ID         string // DOM id; also the hx-target of the refresh action
	URL        string // GET endpoint that renders the panel
	RefreshURL string // POST endpoint that invalidates then renders
	Subject    string // used in the error notice ("Error loading {Subject}.")
	Status     query.Composite
}

// NewPanel builds a PanelVM for the given combined status.
func NewPanel(id, url, refreshURL, subject string, status query.Composite) PanelVM {
	return PanelVM{ID: id, URL: url, RefreshURL: refreshURL, Subject: subject, Status: status}
}

// Loading reports whether the panel should show only the loading indicator.
func (p PanelVM) Loading() bool { return p.Status.Phase == query.PhaseLoading }

// Failed reports whether the panel should show only the error notice.
func (p PanelVM) Failed() bool { return p.Status.Phase == query.PhaseError }

// Trigger is the panel's hx-trigger. A panel rendered without data loads
// itself as soon as it is on the page; otherwise it polls.
func (p PanelVM) Trigger() string {
	if p.Loading() {
		return "load"
	}
	return fmt.Sprintf("every %ds", RefreshSeconds())
}
