package login

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/supporthub/internal/app/store/sessions"
	"github.com/dalemusser/supporthub/internal/app/system/auth"
	"github.com/dalemusser/supporthub/internal/app/system/ratelimit"
	"github.com/dalemusser/supporthub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.FakeAPI) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	h := NewHandler(api.Client(), sm, nil, ratelimit.New(5, time.Minute), zap.NewNop())
	h.render = testutil.NewRenderer(t, FS, "templates/*.gohtml").Page
	return h, api
}

func postLogin(h *Handler, form url.Values) *testutil.ResponseRecorder {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := testutil.NewRecorder()
	h.HandleLoginPost(rec, req)
	return rec
}

func goodCreds() url.Values {
	return url.Values{"login_id": {testutil.FakeLoginID}, "password": {testutil.FakePassword}}
}

func TestServeLogin_RendersForm(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeLogin(rec, testutil.NewRequest("GET", "/login?return=/sponsor/mentees"))

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `name="login_id"`)
	rec.AssertContains(t, `name="return" value="/sponsor/mentees"`)
	rec.AssertNotContains(t, `role="alert"`)
}

func TestServeLogin_SignedInRedirects(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.ServeLogin(rec, testutil.NewAuthenticatedRequest("GET", "/login", testutil.SponsorUser()))

	rec.AssertRedirect(t, "/dashboard")
}

func TestHandleLoginPost_Success(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postLogin(h, goodCreds())
	rec.AssertRedirect(t, "/dashboard")

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	var got *auth.SessionUser
	load := h.SessionMgr.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))
	req := httptest.NewRequest("GET", "/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	load.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected a signed-in user")
	}
	if got.ID != "u-sam" || got.Role != "sponsor" || got.Token != testutil.FakeToken {
		t.Errorf("session user: got %+v", got)
	}
}

func TestHandleLoginPost_ReturnURL(t *testing.T) {
	tests := []struct {
		ret  string
		want string
	}{
		{"/sponsor/mentees", "/sponsor/mentees"},
		{"https://evil.example.com/", "/dashboard"},
		{"//evil.example.com", "/dashboard"},
		{"", "/dashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.ret, func(t *testing.T) {
			h, _ := newTestHandler(t)
			form := goodCreds()
			form.Set("return", tt.ret)

			rec := postLogin(h, form)
			rec.AssertRedirect(t, tt.want)
		})
	}
}

func TestHandleLoginPost_InvalidCredentials(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postLogin(h, url.Values{"login_id": {"sam"}, "password": {"wrong"}})

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, msgInvalid)
	rec.AssertContains(t, `value="sam"`)
	if len(rec.Result().Cookies()) != 0 {
		t.Error("failed login must not set a session cookie")
	}
}

func TestHandleLoginPost_MissingFieldsSkipsAPI(t *testing.T) {
	h, api := newTestHandler(t)

	rec := postLogin(h, url.Values{"login_id": {"sam"}})

	rec.AssertContains(t, msgMissing)
	if n := api.LoginCalls.Load(); n != 0 {
		t.Errorf("API called %d times, want 0", n)
	}
}

func TestHandleLoginPost_APIUnavailable(t *testing.T) {
	h, api := newTestHandler(t)
	api.Server.Close()

	rec := postLogin(h, goodCreds())

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, msgUnavailable)
}

func TestHandleLoginPost_RateLimited(t *testing.T) {
	h, api := newTestHandler(t)
	h.Limiter = ratelimit.New(2, time.Minute)
	bad := url.Values{"login_id": {"sam"}, "password": {"wrong"}}

	postLogin(h, bad)
	postLogin(h, bad)
	rec := postLogin(h, goodCreds())

	rec.AssertStatus(t, http.StatusTooManyRequests)
	rec.AssertContains(t, msgTooMany)
	if n := api.LoginCalls.Load(); n != 2 {
		t.Errorf("API called %d times, want 2", n)
	}
}

func TestHandleLoginPost_SuccessResetsLimiter(t *testing.T) {
	h, _ := newTestHandler(t)
	h.Limiter = ratelimit.New(2, time.Minute)
	bad := url.Values{"login_id": {"sam"}, "password": {"wrong"}}

	postLogin(h, bad)
	postLogin(h, goodCreds()).AssertRedirect(t, "/dashboard")

	// Without the reset this third attempt would be over the limit.
	rec := postLogin(h, bad)
	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, msgInvalid)
}

func TestHandleLoginPost_RecordsActivitySession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h, _ := newTestHandler(t)
	h.Sessions = sessions.New(db)

	postLogin(h, goodCreds()).AssertRedirect(t, "/dashboard")

	ctx, cancel := testutil.TestContext()
	defer cancel()
	active, err := h.Sessions.GetActiveByUser(ctx, "u-sam")
	if err != nil {
		t.Fatalf("GetActiveByUser: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("active sessions: got %d, want 1", len(active))
	}
	if active[0].LoginID != "sam" || active[0].Role != "sponsor" {
		t.Errorf("session: got %+v", active[0])
	}
}
