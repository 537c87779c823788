package query

import (
	"errors"
	"testing"
)

func TestCombine(t *testing.T) {
	boom := errors.New("boom")
	ready := State[int]{Data: 1}
	loading := State[int]{IsLoading: true}
	failed := State[int]{Err: boom}

	tests := []struct {
		name   string
		states []Status
		want   Phase
	}{
		{"no queries", nil, PhaseReady},
		{"all ready", []Status{ready, ready}, PhaseReady},
		{"one loading", []Status{ready, loading}, PhaseLoading},
		{"error then ready", []Status{failed, ready}, PhaseError},
		{"ready then error", []Status{ready, failed}, PhaseError},
		{"error wins over loading", []Status{loading, failed}, PhaseError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Combine(tc.states...)
			if got.Phase != tc.want {
				t.Errorf("Phase: got %v, want %v", got.Phase, tc.want)
			}
			if tc.want == PhaseError && !errors.Is(got.Err, boom) {
				t.Errorf("Err: got %v, want boom", got.Err)
			}
		})
	}
}
