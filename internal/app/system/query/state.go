package query

// State is the result shape every view consumes: the latest data, whether
// it is still loading, and the fetch error if any.
type State[T any] struct {
	Data      T
	IsLoading bool
	Err       error
}

// Loading reports whether the query has not resolved yet.
func (s State[T]) Loading() bool { return s.IsLoading }

// Failure returns the fetch error, or nil.
func (s State[T]) Failure() error { return s.Err }

// Status is the part of a State that Combine needs.
type Status interface {
	Loading() bool
	Failure() error
}

// Phase is the composite status of one or more queries.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseLoading
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	default:
		return "ready"
	}
}

// Composite is the combined status of the queries a view requires.
type Composite struct {
	Phase Phase
	Err   error // first error seen, set when Phase is PhaseError
}

// Combine folds the states a view depends on. Any error wins, then any
// loading state; otherwise every query is ready. Order of the arguments
// does not matter beyond which error is reported.
func Combine(states ...Status) Composite {
	loading := false
	for _, s := range states {
		if err := s.Failure(); err != nil {
			return Composite{Phase: PhaseError, Err: err}
		}
		if s.Loading() {
			loading = true
		}
	}
	if loading {
		return Composite{Phase: PhaseLoading}
	}
	return Composite{Phase: PhaseReady}
}
