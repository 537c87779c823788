package heartbeat_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/supporthub/internal/app/features/heartbeat"
	"github.com/dalemusser/supporthub/internal/app/store/sessions"
	"github.com/dalemusser/supporthub/internal/app/system/auth"
	"github.com/dalemusser/supporthub/internal/domain/models"
	"github.com/dalemusser/supporthub/internal/testutil"
	"go.uber.org/zap"
)

func newSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only", "test-session", "", 24*time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return sm
}

func heartbeatRequest(user *auth.SessionUser, page string) *http.Request {
	form := url.Values{"page": {page}}
	req := httptest.NewRequest("POST", "/api/heartbeat", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if user != nil {
		req = auth.WithTestUser(req, user)
	}
	return req
}

func TestServeHeartbeat_Unauthenticated(t *testing.T) {
	h := heartbeat.NewHandler(nil, newSessionManager(t), zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeHeartbeat(rec, heartbeatRequest(nil, "/dashboard"))

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
}

func TestServeHeartbeat_TrackingDisabled(t *testing.T) {
	h := heartbeat.NewHandler(nil, newSessionManager(t), zap.NewNop())

	rec := httptest.NewRecorder()
	h.ServeHeartbeat(rec, heartbeatRequest(&auth.SessionUser{ID: "u1", Role: models.RoleSponsor}, "/sponsor/dashboard"))

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d", http.StatusNoContent, rec.Code)
	}
}

func TestServeHeartbeat_TouchesOpenSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sessions.New(db)
	h := heartbeat.NewHandler(store, newSessionManager(t), zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	act, err := store.Create(ctx, "u1", "sam", models.RoleSponsor, "192.0.2.1", "test")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec := httptest.NewRecorder()
	user := &auth.SessionUser{ID: "u1", LoginID: "sam", Role: models.RoleSponsor, ActivityID: act.ID.Hex()}
	h.ServeHeartbeat(rec, heartbeatRequest(user, "/sponsor/mentees"))

	got, err := store.GetByID(ctx, act.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.CurrentPage != "/sponsor/mentees" {
		t.Errorf("current page: got %q", got.CurrentPage)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("an open session should not rewrite the cookie")
	}
}

func TestServeHeartbeat_ReopensClosedSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := sessions.New(db)
	h := heartbeat.NewHandler(store, newSessionManager(t), zap.NewNop())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	act, err := store.Create(ctx, "u1", "sam", models.RoleSponsor, "192.0.2.1", "test")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Close(ctx, act.ID.Hex(), sessions.EndInactive); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rec := httptest.NewRecorder()
	user := &auth.SessionUser{ID: "u1", LoginID: "sam", Role: models.RoleSponsor, ActivityID: act.ID.Hex()}
	h.ServeHeartbeat(rec, heartbeatRequest(user, "/sponsor/dashboard"))

	active, err := store.GetActiveByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("GetActiveByUser: %v", err)
	}
	if len(active) != 1 || active[0].ID == act.ID {
		t.Fatalf("expected one new open session, got %+v", active)
	}
	if active[0].CurrentPage != "/sponsor/dashboard" {
		t.Errorf("current page: got %q", active[0].CurrentPage)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected the cookie to carry the new activity session")
	}
}
