package transit

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Engine validates requested transitions against a declarative table and runs
// registered handlers on the ones that succeed. The current state is the only
// piece of engine state Dispatch mutates, and it is updated only after every
// handler for the transition has returned nil.
//
// Engine is single-threaded by design: Dispatch, Register and Unregister must
// not be called concurrently.
type Engine[T any] struct {
	id       string
	name     string
	table    Table
	current  string
	handlers map[string][]Handler[T]
	onError  ErrorHandler
	logger   Logger
}

// Option configures an Engine during construction.
type Option[T any] func(*Engine[T])

// WithName sets the machine name used in logs, metrics and spans.
func WithName[T any](name string) Option[T] {
	return func(e *Engine[T]) {
		e.name = name
	}
}

// WithLogger sets the logger for dispatch events.
func WithLogger[T any](logger Logger) Option[T] {
	return func(e *Engine[T]) {
		e.logger = logger
	}
}

// WithErrorHandler sets the handler for rejected dispatches.
func WithErrorHandler[T any](handler ErrorHandler) Option[T] {
	return func(e *Engine[T]) {
		e.onError = handler
	}
}

// New creates an engine over the given table, starting at initial.
//
// The initial state is not validated against the table: an unknown initial
// state is accepted silently, and every subsequent dispatch from it is
// rejected as an invalid transition. Use FromDefinition for a validated
// construction path.
func New[T any](table Table, initial string, opts ...Option[T]) *Engine[T] {
	e := &Engine[T]{
		id:       uuid.NewString(),
		table:    table,
		current:  initial,
		handlers: make(map[string][]Handler[T], len(table)+1),
	}

	// The wildcard slot always exists, as does one per known state.
	e.handlers[Wildcard] = nil
	for state := range table {
		e.handlers[state] = nil
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ID returns the unique identifier assigned to this engine instance.
func (e *Engine[T]) ID() string {
	return e.id
}

// Name returns the machine name, empty if none was set.
func (e *Engine[T]) Name() string {
	return e.name
}

// Current returns the current state.
func (e *Engine[T]) Current() string {
	return e.current
}

// IsValid reports whether state is a member of the known-state set. The
// wildcard marker is never a valid state.
func (e *Engine[T]) IsValid(state string) bool {
	if state == Wildcard {
		return false
	}

	_, ok := e.table[state]

	return ok
}

// CanTransitionTo reports whether state is directly reachable from the
// current state.
func (e *Engine[T]) CanTransitionTo(state string) bool {
	return slices.Contains(e.table[e.current], state)
}

// Register appends handler to the given state's handler list. The same
// handler may be registered more than once and is then invoked once per
// registration. Registering under Wildcard is always legal.
func (e *Engine[T]) Register(state string, handler Handler[T]) error {
	if state != Wildcard && !e.IsValid(state) {
		return fmt.Errorf("%w: %s", ErrUnknownState, state)
	}

	e.handlers[state] = append(e.handlers[state], handler)

	return nil
}

// Unregister removes every occurrence of handler from the given state's
// handler list, preserving the relative order of the remainder. Handlers are
// matched by function identity. Removing a handler that was never registered
// is a no-op.
func (e *Engine[T]) Unregister(state string, handler Handler[T]) error {
	if state != Wildcard && !e.IsValid(state) {
		return fmt.Errorf("%w: %s", ErrUnknownState, state)
	}

	ptr := reflect.ValueOf(handler).Pointer()

	handlers := e.handlers[state]
	kept := handlers[:0]

	for _, h := range handlers {
		if reflect.ValueOf(h).Pointer() != ptr {
			kept = append(kept, h)
		}
	}

	// Release the removed handlers from the backing array so they can be
	// collected.
	clear(handlers[len(kept):])

	e.handlers[state] = kept

	return nil
}

// SetErrorHandler replaces the error handler unconditionally; the last writer
// wins. With a handler set, rejected dispatches report through it and return
// false without an error. Without one, they return a *RejectedError.
func (e *Engine[T]) SetErrorHandler(handler ErrorHandler) {
	e.onError = handler
}

// SetLogger sets the logger for dispatch events.
func (e *Engine[T]) SetLogger(logger Logger) {
	e.logger = logger
}

// Dispatch requests a transition to target, passing payload to every matching
// handler. Wildcard handlers run first, then target-state handlers, each in
// registration order. On success the current state becomes target and Dispatch
// returns (true, nil).
//
// A rejected dispatch (unknown target, or target unreachable from the current
// state) leaves the current state untouched and either reports through the
// configured ErrorHandler and returns (false, nil), or returns (false, err)
// with a *RejectedError when none is set.
//
// A handler error aborts the dispatch: it propagates to the caller unmodified,
// the current state stays unchanged, and side effects of handlers that already
// ran are not rolled back.
func (e *Engine[T]) Dispatch(ctx context.Context, target string, payload T) (ok bool, err error) {
	ctx, span := startDispatchSpan(ctx, e, target)
	defer func() {
		endDispatchSpan(span, ok, err)
	}()

	if !e.IsValid(target) {
		return false, e.reject(ctx, target, reasonUnknownState,
			fmt.Sprintf("Invalid state requested: %s", target))
	}

	if !e.CanTransitionTo(target) {
		return false, e.reject(ctx, target, reasonInvalidTransition,
			fmt.Sprintf("Invalid transition from %s requested: %s", e.current, target))
	}

	from := e.current

	for _, slot := range [2]string{Wildcard, target} {
		for _, handler := range e.handlers[slot] {
			start := time.Now()
			herr := handler(ctx, payload)
			elapsed := time.Since(start)

			handlerDuration.WithLabelValues(
				sanitizeMachine(e.name),
				slot,
			).Observe(elapsed.Seconds())

			if e.logger != nil {
				e.logger.HandlerCompleted(ctx, slot, elapsed, herr)
			}

			if herr != nil {
				dispatchesTotal.WithLabelValues(
					sanitizeMachine(e.name), from, target, outcomeError,
				).Inc()

				// Handler failures are the caller's problem, never the
				// ErrorHandler's. State stays where it was.
				return false, herr
			}
		}
	}

	e.current = target

	dispatchesTotal.WithLabelValues(
		sanitizeMachine(e.name), from, target, outcomeSuccess,
	).Inc()

	if e.logger != nil {
		e.logger.TransitionExecuted(ctx, from, target)
	}

	return true, nil
}

// reject routes an invalid-dispatch condition through the error handler when
// one is set, and escalates otherwise.
func (e *Engine[T]) reject(ctx context.Context, target, reason, message string) error {
	rejectionsTotal.WithLabelValues(sanitizeMachine(e.name), reason).Inc()

	if e.logger != nil {
		e.logger.TransitionRejected(ctx, e.current, target, message)
	}

	if e.onError != nil {
		e.onError(message)

		return nil
	}

	return &RejectedError{Message: message}
}
