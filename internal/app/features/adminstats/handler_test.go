package adminstats

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/supporthub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeAPI) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	h := NewHandler(api.Client(), testutil.NewQueryClient(t), zap.NewNop())
	rd := testutil.NewRenderer(t, FS, "templates/*.gohtml")
	h.render = rd.Page
	h.snippet = rd.Snippet
	return h, api
}

func TestServePanel_Ready(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServePanel(rec, testutil.NewHTMXRequest("GET", "/admin/dashboard/panel", testutil.AdminUser()))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "You have 6 pending items that need attention.")
	rec.AssertContains(t, `data-category="sponsor-applications"`)
	rec.AssertContains(t, `data-category="reports"`)
	rec.AssertContains(t, `card-danger`)
	rec.AssertContains(t, `data-testid="total-users">120<`)
	rec.AssertContains(t, `data-testid="total-resources">42<`)
	rec.AssertContains(t, "2024-02")
	rec.AssertContains(t, `hx-trigger="every 30s"`)
}

func TestServePanel_SingularSummaryWithAbsentFields(t *testing.T) {
	h, api := newTestHandler(t)
	api.Set(func(f *testutil.FakeAPI) {
		f.StatsBody = `{"success":true,"data":{"unresolved_reports":1}}`
	})

	rec := testutil.NewRecorder()
	h.ServePanel(rec, testutil.NewHTMXRequest("GET", "/admin/dashboard/panel", testutil.AdminUser()))

	rec.AssertContains(t, "You have 1 pending item that needs attention.")
	rec.AssertContains(t, `data-testid="total-users">0<`)
	if strings.Contains(rec.Body.String(), "Registrations by month") {
		t.Error("empty series should not render the registrations table")
	}
}

func TestServePanel_ErrorShowsOnlyNotice(t *testing.T) {
	h, api := newTestHandler(t)
	api.Set(func(f *testutil.FakeAPI) { f.FailStats = true })

	rec := testutil.NewRecorder()
	h.ServePanel(rec, testutil.NewHTMXRequest("GET", "/admin/dashboard/panel", testutil.AdminUser()))

	rec.AssertContains(t, "Error loading admin statistics. Please try again later.")
	body := rec.Body.String()
	if strings.Contains(body, "data-category=") || strings.Contains(body, "pending item") {
		t.Error("error panel must not render cards or summary")
	}
}

func TestServePanel_UnsuccessfulEnvelopeIsError(t *testing.T) {
	h, api := newTestHandler(t)
	api.Set(func(f *testutil.FakeAPI) {
		f.StatsBody = `{"success":false,"message":"nope","data":{"pending_resources":9}}`
	})

	rec := testutil.NewRecorder()
	h.ServePanel(rec, testutil.NewHTMXRequest("GET", "/admin/dashboard/panel", testutil.AdminUser()))

	rec.AssertContains(t, "Error loading admin statistics.")
}

func TestServePage_LoadingThenCached(t *testing.T) {
	h, api := newTestHandler(t)
	user := testutil.AdminUser()

	rec := testutil.NewRecorder()
	h.ServePage(rec, testutil.NewAuthenticatedRequest("GET", "/admin/dashboard", user))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Admin Dashboard")
	rec.AssertContains(t, "Loading")
	rec.AssertContains(t, `hx-trigger="load"`)
	if strings.Contains(rec.Body.String(), "pending item") {
		t.Error("loading page must not render the summary")
	}
	if api.StatsCalls.Load() != 0 {
		t.Error("page render must not call the API")
	}

	h.ServePanel(testutil.NewRecorder(), testutil.NewHTMXRequest("GET", "/admin/dashboard/panel", user))

	rec = testutil.NewRecorder()
	h.ServePage(rec, testutil.NewAuthenticatedRequest("GET", "/admin/dashboard", user))
	rec.AssertContains(t, "You have 6 pending items that need attention.")
	if got := api.StatsCalls.Load(); got != 1 {
		t.Errorf("StatsCalls: got %d, want 1", got)
	}
}

func TestServePanel_CanceledRequestWritesNothing(t *testing.T) {
	h, api := newTestHandler(t)
	user := testutil.AdminUser()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := testutil.NewHTMXRequest("GET", "/admin/dashboard/panel", user).WithContext(ctx)

	rec := testutil.NewRecorder()
	h.ServePanel(rec, req)
	if rec.Body.Len() != 0 {
		t.Errorf("expected no output, got %q", rec.Body.String())
	}

	// The late result is still cached for the next render.
	testutil.Eventually(t, func() bool {
		rec := testutil.NewRecorder()
		h.ServePage(rec, testutil.NewAuthenticatedRequest("GET", "/admin/dashboard", user))
		return strings.Contains(rec.Body.String(), "You have 6 pending items")
	}, "detached fetch never reached the cache")
	if api.StatsCalls.Load() != 1 {
		t.Errorf("StatsCalls: got %d, want 1", api.StatsCalls.Load())
	}
}

func TestServeRefresh(t *testing.T) {
	h, api := newTestHandler(t)
	user := testutil.AdminUser()

	rec := testutil.NewRecorder()
	h.ServeRefresh(rec, testutil.NewAuthenticatedRequest("POST", "/admin/dashboard/refresh", user))
	rec.AssertStatus(t, http.StatusBadRequest)

	h.ServePanel(testutil.NewRecorder(), testutil.NewHTMXRequest("GET", "/admin/dashboard/panel", user))
	api.Set(func(f *testutil.FakeAPI) {
		f.StatsBody = `{"success":true,"data":{"pending_resources":2}}`
	})

	rec = testutil.NewRecorder()
	h.ServeRefresh(rec, testutil.NewHTMXRequest("POST", "/admin/dashboard/refresh", user))
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "You have 2 pending items that need attention.")
	if got := api.StatsCalls.Load(); got != 2 {
		t.Errorf("StatsCalls: got %d, want 2", got)
	}
}

func TestServeActivate(t *testing.T) {
	h, _ := newTestHandler(t)
	user := testutil.AdminUser()

	tests := []struct {
		name     string
		category string
		trigger  string
		htmx     bool
		status   int
		location string
		hxTarget string
	}{
		{"click", "sponsor-applications", "click", false, http.StatusSeeOther, "/admin/sponsor-applications", ""},
		{"plain link", "reports", "", false, http.StatusSeeOther, "/admin/reports", ""},
		{"enter via htmx", "support-groups", "Enter", true, http.StatusOK, "", "/admin/support-groups"},
		{"space via htmx", "resources", " ", true, http.StatusOK, "", "/admin/resources"},
		{"other key", "resources", "a", true, http.StatusNoContent, "", ""},
		{"unknown category", "bogus", "click", false, http.StatusNotFound, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/admin/dashboard/cards/" + tt.category + "/activate?trigger=" + url.QueryEscape(tt.trigger)
			req := testutil.NewAuthenticatedRequest("GET", target, user)
			if tt.htmx {
				req.Header.Set("HX-Request", "true")
			}
			req = testutil.WithChiURLParam(req, "category", tt.category)

			rec := testutil.NewRecorder()
			h.ServeActivate(rec, req)

			rec.AssertStatus(t, tt.status)
			if got := rec.Header().Get("Location"); got != tt.location {
				t.Errorf("Location: got %q, want %q", got, tt.location)
			}
			if got := rec.Header().Get("HX-Redirect"); got != tt.hxTarget {
				t.Errorf("HX-Redirect: got %q, want %q", got, tt.hxTarget)
			}
		})
	}
}
