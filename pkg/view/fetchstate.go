package view

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned for a fetch state change outside Idle->Loading->Loaded|Failed
var ErrInvalidTransition = errors.New("invalid fetch state transition")

// Phase is the fetch lifecycle phase of a feed view
type Phase int

// fetch phases
const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseFailed
)

// String returns phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// FetchState is a tagged union over the fetch lifecycle. Exactly one phase is active,
// Loaded carries the fetched value and Failed carries the fallback shown in its place.
type FetchState[T any] struct {
	phase Phase
	value T
	err   error
}

// Loading makes a pending state
func Loading[T any]() FetchState[T] { return FetchState[T]{phase: PhaseLoading} }

// Loaded makes a state holding fetched value
func Loaded[T any](v T) FetchState[T] { return FetchState[T]{phase: PhaseLoaded, value: v} }

// Failed makes a degraded state holding the fallback value and the cause
func Failed[T any](fallback T, err error) FetchState[T] {
	return FetchState[T]{phase: PhaseFailed, value: fallback, err: err}
}

// Phase returns the active phase
func (s FetchState[T]) Phase() Phase { return s.phase }

// Settled reports whether the fetch has completed either way
func (s FetchState[T]) Settled() bool { return s.phase == PhaseLoaded || s.phase == PhaseFailed }

// Value returns the value to render, fetched data or the fallback. ok is false before settling.
func (s FetchState[T]) Value() (v T, ok bool) {
	if !s.Settled() {
		return v, false
	}
	return s.value, true
}

// Err returns the failure cause for Failed, nil otherwise
func (s FetchState[T]) Err() error { return s.err }

// Next validates the transition to next and returns the new state.
// On error the receiver is returned unchanged.
func (s FetchState[T]) Next(next FetchState[T]) (FetchState[T], error) {
	switch {
	case s.phase == PhaseIdle && next.phase == PhaseLoading:
		return next, nil
	case s.phase == PhaseLoading && (next.phase == PhaseLoaded || next.phase == PhaseFailed):
		return next, nil
	default:
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.phase, next.phase)
	}
}
