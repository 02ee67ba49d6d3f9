// Package fsmtest provides testing utilities for transit engines.
package fsmtest

import (
	"context"
	"testing"

	"github.com/amp-labs/transit"
	"github.com/stretchr/testify/require"
)

// Invocation records a single handler call observed by a Recorder.
type Invocation[T any] struct {
	Name    string
	Payload T
}

// Recorder captures handler invocations across an engine's registry slots so
// tests can assert on ordering and payloads.
type Recorder[T any] struct {
	Invocations []Invocation[T]
}

// NewRecorder creates an empty recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{}
}

// On returns a handler that records its invocations under name.
func (r *Recorder[T]) On(name string) transit.Handler[T] {
	return func(ctx context.Context, payload T) error {
		r.Invocations = append(r.Invocations, Invocation[T]{Name: name, Payload: payload})

		return nil
	}
}

// Names returns the recorded handler names in invocation order.
func (r *Recorder[T]) Names() []string {
	names := make([]string, len(r.Invocations))
	for i, inv := range r.Invocations {
		names[i] = inv.Name
	}

	return names
}

// Count returns how many times the named handler was invoked.
func (r *Recorder[T]) Count(name string) int {
	count := 0

	for _, inv := range r.Invocations {
		if inv.Name == name {
			count++
		}
	}

	return count
}

// Reset clears the recorded invocations.
func (r *Recorder[T]) Reset() {
	r.Invocations = nil
}

// FailingHandler returns a handler that always fails with err.
func FailingHandler[T any](err error) transit.Handler[T] {
	return func(ctx context.Context, payload T) error {
		return err
	}
}

// RequireDispatch dispatches to target and fails the test unless the
// transition succeeds and the engine lands on target.
func RequireDispatch[T any](t *testing.T, engine *transit.Engine[T], target string, payload T) {
	t.Helper()

	ok, err := engine.Dispatch(context.Background(), target, payload)
	require.NoError(t, err, "dispatch to %s failed", target)
	require.True(t, ok, "dispatch to %s was rejected", target)
	require.Equal(t, target, engine.Current())
}

// RequireRejected dispatches to target and fails the test unless the
// transition is rejected and the current state is left untouched.
func RequireRejected[T any](t *testing.T, engine *transit.Engine[T], target string, payload T) {
	t.Helper()

	before := engine.Current()

	ok, _ := engine.Dispatch(context.Background(), target, payload)
	require.False(t, ok, "dispatch to %s unexpectedly succeeded", target)
	require.Equal(t, before, engine.Current(), "rejected dispatch moved the current state")
}

// RequireCurrent fails the test unless the engine's current state is state.
func RequireCurrent[T any](t *testing.T, engine *transit.Engine[T], state string) {
	t.Helper()

	require.Equal(t, state, engine.Current())
}
