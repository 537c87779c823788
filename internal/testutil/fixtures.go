package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/supporthub/internal/app/system/apiclient"
	"github.com/dalemusser/supporthub/internal/app/system/query"
	"go.uber.org/zap"
)

// Canned API payloads, in the shapes the remote API sends them.
const (
	StatsJSON = `{"success":true,"data":{
		"total_users":120,
		"total_sponsors":14,
		"pending_sponsor_applications":2,
		"pending_support_groups":1,
		"pending_resources":0,
		"unresolved_reports":3,
		"userCounts":{"total":120,"sponsors":14,"mentees":100,"admins":6},
		"resourceCounts":{"total":42,"pending":0,"approved":42},
		"supportGroupCounts":{"total":9,"pending":1,"active":8},
		"reportCounts":{"total":11,"unresolved":3,"resolved":8},
		"userRegistrationsByMonth":[{"month":"2024-01","count":12},{"month":"2024-02","count":9}]
	}}`

	RequestsJSON = `[{
		"matching_request_id":"req-1",
		"status":"pending",
		"message":"Hoping to <b>connect</b>",
		"created_at":"2024-03-05T14:30:00Z",
		"mentee":{"username":"jordan","full_name":"Jordan Park","languages":["English"]}
	}]`

	MenteesJSON = `{"success":true,"data":[
		{"matching_request_id":"m-1","created_at":"2024-02-01T09:00:00Z",
		 "mentee":{"username":"alex","full_name":"Alex Kim","location":"Denver",
		           "available_days":["Mon","Wed"],"languages":["English","Spanish"],"experience":[]}},
		{"matching_request_id":"m-2","created_at":"2024-02-10T09:00:00Z",
		 "mentee":{"username":"riley rae"}}
	]}`
)

// FakeAPI is an httptest stand-in for the remote API. Bodies are served
// as-is; set Fail* to make a route answer 500.
type FakeAPI struct {
	Server *httptest.Server

	mu           sync.Mutex
	StatsBody    string
	RequestsBody string
	MenteesBody  string
	FailStats    bool
	FailRequests bool
	FailMentees  bool

	StatsCalls   atomic.Int32
	RequestCalls atomic.Int32
	MenteeCalls  atomic.Int32
	LoginCalls   atomic.Int32
}

// Credentials accepted by the fake /auth/login endpoint.
const (
	FakeLoginID  = "sam"
	FakePassword = "correct-horse"
	FakeToken    = "tok-sam"
)

const loginJSON = `{"success":true,"data":{"token":"tok-sam","user":{"id":"u-sam","username":"sam","name":"Sam Lee","email":"sam@example.com","role":"Sponsor"}}}`

// NewFakeAPI starts a FakeAPI serving the canned payloads. It is closed
// when the test finishes.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	f := &FakeAPI{StatsBody: StatsJSON, RequestsBody: RequestsJSON, MenteesBody: MenteesJSON}

	mux := http.NewServeMux()
	mux.HandleFunc("/admin/stats", func(w http.ResponseWriter, r *http.Request) {
		f.StatsCalls.Add(1)
		f.serve(w, func() (string, bool) { return f.StatsBody, f.FailStats })
	})
	mux.HandleFunc("/sponsor/requests", func(w http.ResponseWriter, r *http.Request) {
		f.RequestCalls.Add(1)
		f.serve(w, func() (string, bool) { return f.RequestsBody, f.FailRequests })
	})
	mux.HandleFunc("/sponsor/mentees", func(w http.ResponseWriter, r *http.Request) {
		f.MenteeCalls.Add(1)
		f.serve(w, func() (string, bool) { return f.MenteesBody, f.FailMentees })
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.LoginCalls.Add(1)
		var creds struct {
			LoginID  string `json:"login_id"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if creds.LoginID != FakeLoginID || creds.Password != FakePassword {
			http.Error(w, `{"success":false,"message":"invalid credentials"}`, http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(loginJSON))
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// Set updates the fake under its lock.
func (f *FakeAPI) Set(fn func(f *FakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *FakeAPI) serve(w http.ResponseWriter, pick func() (string, bool)) {
	f.mu.Lock()
	body, fail := pick()
	f.mu.Unlock()
	if fail {
		http.Error(w, `{"success":false,"message":"boom"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

// Client returns an API client pointed at the fake.
func (f *FakeAPI) Client() *apiclient.Client {
	return apiclient.New(apiclient.Config{
		BaseURL:    f.Server.URL,
		Timeout:    5 * time.Second,
		HTTPClient: f.Server.Client(),
		Logger:     zap.NewNop(),
	})
}

// NewQueryClient returns an in-memory query client for handler tests.
func NewQueryClient(t *testing.T) *query.Client {
	t.Helper()
	qc := query.NewClient(query.Options{StaleTime: time.Minute, Logger: zap.NewNop()})
	t.Cleanup(func() { _ = qc.Close() })
	return qc
}
