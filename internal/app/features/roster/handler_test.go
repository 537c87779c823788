package roster

import (
	"net/http"
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

func TestServeMenteesPanel_Ready(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeMenteesPanel(rec, testutil.NewHTMXRequest("GET", "/sponsor/mentees/panel", testutil.SponsorUser()))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `data-key="m-1"`)
	rec.AssertContains(t, `data-key="m-2"`)
	rec.AssertContains(t, "Alex Kim")
	rec.AssertContains(t, "English, Spanish")
	rec.AssertContains(t, "Mon, Wed")
	rec.AssertContains(t, `href="/messages/alex"`)
	rec.AssertContains(t, `href="/messages/riley%20rae"`)
	rec.AssertContains(t, "Mentoring since Feb 1, 2024, 9:00 AM")
	rec.AssertNotContains(t, `data-testid="empty"`)

	// m-2 has no profile attributes at all; m-1 has an empty experience list.
	body := rec.Body.String()
	if n := strings.Count(body, "Not specified"); n != 5 {
		t.Errorf("Not specified count: got %d, want 5", n)
	}
}

func TestServeMenteesPanel_LocaleDates(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewHTMXRequest("GET", "/sponsor/mentees/panel", testutil.SponsorUser())
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9")
	rec := testutil.NewRecorder()
	h.ServeMenteesPanel(rec, req)

	rec.AssertContains(t, "Mentoring since 01.02.2024, 09:00")
}

func TestServeMenteesPanel_UniqueKeysAndMissingFields(t *testing.T) {
	h, api := newTestHandler(t)
	api.Set(func(f *testutil.FakeAPI) {
		f.MenteesBody = `[
			{"created_at":"2024-02-01T09:00:00Z","mentee":{"username":"nokey"}},
			{"matching_request_id":"","mentee":{"username":"blank"}},
			{"matching_request_id":"x","mentee":{"username":"first"}},
			{"matching_request_id":"x","mentee":{"username":"second"}},
			{"matching_request_id":"y","mentee":{"full_name":"No Handle"}}
		]`
	})

	rec := testutil.NewRecorder()
	h.ServeMenteesPanel(rec, testutil.NewHTMXRequest("GET", "/sponsor/mentees/panel", testutil.SponsorUser()))

	body := rec.Body.String()
	if n := strings.Count(body, "data-key="); n != 2 {
		t.Errorf("cards: got %d, want 2", n)
	}
	if n := strings.Count(body, `data-key="x"`); n != 1 {
		t.Errorf(`data-key="x" count: got %d, want 1`, n)
	}
	rec.AssertNotContains(t, `data-key=""`)
	rec.AssertNotContains(t, "second")
	rec.AssertContains(t, `href="/messages/first"`)
	rec.AssertNotContains(t, `href="/messages/"`)
	rec.AssertNotContains(t, "Mentoring since")
}

func TestServeMenteesPanel_Empty(t *testing.T) {
	h, api := newTestHandler(t)
	api.Set(func(f *testutil.FakeAPI) { f.MenteesBody = `[]` })

	rec := testutil.NewRecorder()
	h.ServeMenteesPanel(rec, testutil.NewHTMXRequest("GET", "/sponsor/mentees/panel", testutil.SponsorUser()))

	rec.AssertContains(t, "You don't have any active mentees yet.")
	rec.AssertNotContains(t, "data-key=")
}

func TestServeMenteesPanel_Error(t *testing.T) {
	h, api := newTestHandler(t)
	api.Set(func(f *testutil.FakeAPI) { f.FailMentees = true })

	rec := testutil.NewRecorder()
	h.ServeMenteesPanel(rec, testutil.NewHTMXRequest("GET", "/sponsor/mentees/panel", testutil.SponsorUser()))

	rec.AssertContains(t, "Error loading your mentees. Please try again later.")
	rec.AssertNotContains(t, "data-key=")
	rec.AssertNotContains(t, "You don't have any active mentees yet.")
}

func TestServeMentees_PageLoading(t *testing.T) {
	h, api := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeMentees(rec, testutil.NewAuthenticatedRequest("GET", "/sponsor/mentees", testutil.SponsorUser()))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "My Mentees")
	rec.AssertContains(t, `hx-get="/sponsor/mentees/panel"`)
	rec.AssertContains(t, `hx-trigger="load"`)
	rec.AssertNotContains(t, "You don't have any active mentees yet.")
	if api.MenteeCalls.Load() != 0 {
		t.Error("page render must not call the API")
	}
}

func TestServeMenteesRefresh(t *testing.T) {
	h, api := newTestHandler(t)
	user := testutil.SponsorUser()

	h.ServeMenteesPanel(testutil.NewRecorder(), testutil.NewHTMXRequest("GET", "/sponsor/mentees/panel", user))
	api.Set(func(f *testutil.FakeAPI) { f.MenteesBody = `[]` })

	rec := testutil.NewRecorder()
	h.ServeMenteesRefresh(rec, testutil.NewHTMXRequest("POST", "/sponsor/mentees/refresh", user))
	rec.AssertContains(t, "You don't have any active mentees yet.")
	if api.MenteeCalls.Load() != 2 {
		t.Errorf("MenteeCalls: got %d, want 2", api.MenteeCalls.Load())
	}
}

func TestServeRequestsPanel(t *testing.T) {
	h, api := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeRequestsPanel(rec, testutil.NewHTMXRequest("GET", "/sponsor/requests/panel", testutil.SponsorUser()))

	rec.AssertContains(t, `data-key="req-1"`)
	rec.AssertContains(t, "Jordan Park")
	rec.AssertContains(t, "Hoping to connect")
	rec.AssertNotContains(t, "<b>")
	rec.AssertContains(t, "Received Mar 5, 2024, 2:30 PM")

	api.Set(func(f *testutil.FakeAPI) { f.RequestsBody = `{"success":true,"data":[]}` })
	rec = testutil.NewRecorder()
	h.ServeRequestsRefresh(rec, testutil.NewHTMXRequest("POST", "/sponsor/requests/refresh", testutil.SponsorUser()))
	rec.AssertContains(t, "No pending requests.")
}
