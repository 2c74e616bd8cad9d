// Package state models the request lifecycle of one component as a tagged value.
package state

// Phase is the lifecycle tag.
type Phase string

// Lifecycle phases.
const (
	Idle    Phase = "idle"
	Loading Phase = "loading"
	Success Phase = "success"
	Failure Phase = "failure"
)

// State holds exactly one of: nothing (Idle, Loading), a value (Success) or an error (Failure).
// Fields are unexported so impossible combinations cannot be built.
type State[T any] struct {
	phase Phase
	value T
	err   error
}

// NewIdle returns the initial state.
func NewIdle[T any]() State[T] { return State[T]{phase: Idle} }

// NewLoading returns a loading state.
func NewLoading[T any]() State[T] { return State[T]{phase: Loading} }

// NewSuccess returns a settled state carrying v.
func NewSuccess[T any](v T) State[T] { return State[T]{phase: Success, value: v} }

// NewFailure returns a settled state carrying err.
func NewFailure[T any](err error) State[T] { return State[T]{phase: Failure, err: err} }

// Phase returns the lifecycle tag. The zero State reports Idle.
func (s State[T]) Phase() Phase {
	if s.phase == "" {
		return Idle
	}
	return s.phase
}

// Value returns the settled value when the phase is Success.
func (s State[T]) Value() (T, bool) {
	return s.value, s.phase == Success
}

// Err returns the failure when the phase is Failure.
func (s State[T]) Err() error {
	if s.phase != Failure {
		return nil
	}
	return s.err
}

// IsLoading reports whether a request is outstanding.
func (s State[T]) IsLoading() bool { return s.phase == Loading }

// Settled reports whether the state is Success or Failure.
func (s State[T]) Settled() bool { return s.phase == Success || s.phase == Failure }
