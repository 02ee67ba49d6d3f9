package transit

import "errors"

// registration is a deferred handler registration, replayed in order at Build.
type registration[T any] struct {
	state   string
	handler Handler[T]
}

// Builder provides a fluent API for constructing engines. Errors from the
// individual steps are collected and surfaced by Build.
type Builder[T any] struct {
	name          string
	initial       string
	table         Table
	registrations []registration[T]
	onError       ErrorHandler
	logger        Logger
}

// NewBuilder creates a builder for a machine with the given name.
func NewBuilder[T any](name string) *Builder[T] {
	return &Builder[T]{
		name:  name,
		table: make(Table),
	}
}

// WithInitialState sets the initial state.
func (b *Builder[T]) WithInitialState(state string) *Builder[T] {
	b.initial = state

	return b
}

// AddState declares a state and the states reachable from it. No targets
// declares a terminal state. Redeclaring a state appends to its existing
// targets; it never discards them.
func (b *Builder[T]) AddState(name string, targets ...string) *Builder[T] {
	b.table[name] = append(b.table[name], targets...)

	return b
}

// AddTerminalState declares a state with no outgoing transitions.
func (b *Builder[T]) AddTerminalState(name string) *Builder[T] {
	return b.AddState(name)
}

// OnTransition registers a handler for transitions into state.
func (b *Builder[T]) OnTransition(state string, handler Handler[T]) *Builder[T] {
	b.registrations = append(b.registrations, registration[T]{state: state, handler: handler})

	return b
}

// OnAny registers a handler invoked on every successful transition, before the
// state-specific handlers.
func (b *Builder[T]) OnAny(handler Handler[T]) *Builder[T] {
	return b.OnTransition(Wildcard, handler)
}

// WithErrorHandler sets the handler for rejected dispatches.
func (b *Builder[T]) WithErrorHandler(handler ErrorHandler) *Builder[T] {
	b.onError = handler

	return b
}

// WithLogger sets the logger for dispatch events.
func (b *Builder[T]) WithLogger(logger Logger) *Builder[T] {
	b.logger = logger

	return b
}

// Build constructs the engine, replaying handler registrations in the order
// they were added. Registrations against undeclared states fail here.
func (b *Builder[T]) Build() (*Engine[T], error) {
	if len(b.table) == 0 {
		return nil, ErrStateRequired
	}

	if b.initial == "" {
		return nil, ErrInitialStateRequired
	}

	engine := New(b.table, b.initial, WithName[T](b.name))

	if b.onError != nil {
		engine.SetErrorHandler(b.onError)
	}

	if b.logger != nil {
		engine.SetLogger(b.logger)
	}

	var errs []error

	for _, reg := range b.registrations {
		err := engine.Register(reg.state, reg.handler)
		if err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return engine, nil
}
