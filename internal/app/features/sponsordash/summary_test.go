package sponsordash

import (
	"errors"
	"testing"

	"github.com/dalemusser/supporthub/internal/app/system/query"
	"github.com/dalemusser/supporthub/internal/domain/models"
)

func TestSummarize(t *testing.T) {
	got := Summarize(nil, nil)
	if got.PendingRequests != 0 || got.ActiveMentees != 0 || got.Status != StatusActive {
		t.Errorf("empty: got %+v", got)
	}

	got = Summarize(
		[]models.RelationshipRequest{{MatchingRequestID: "a"}, {MatchingRequestID: "b"}},
		[]models.ActiveMentee{{MatchingRequestID: "c"}},
	)
	if got.PendingRequests != 2 || got.ActiveMentees != 1 {
		t.Errorf("counts: got %+v", got)
	}
}

func TestWelcome(t *testing.T) {
	if got := Welcome("Sam"); got != "Welcome back, Sam!" {
		t.Errorf("named: got %q", got)
	}
	if got := Welcome(""); got != "Welcome back!" {
		t.Errorf("anonymous: got %q", got)
	}
}

func TestBuildPanel_Phases(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name  string
		src   sources
		phase query.Phase
	}{
		{"both ready", sources{}, query.PhaseReady},
		{"one loading", sources{requests: query.State[[]models.RelationshipRequest]{IsLoading: true}}, query.PhaseLoading},
		{"error beats loading", sources{
			requests: query.State[[]models.RelationshipRequest]{IsLoading: true},
			mentees:  query.State[[]models.ActiveMentee]{Err: boom},
		}, query.PhaseError},
		{"group error", sources{err: boom}, query.PhaseError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pd := buildPanel(tt.src)
			if pd.Panel.Status.Phase != tt.phase {
				t.Errorf("phase: got %v, want %v", pd.Panel.Status.Phase, tt.phase)
			}
			if tt.phase != query.PhaseReady && pd.Summary.Status != "" {
				t.Error("non-ready panel must not carry a summary")
			}
		})
	}
}
