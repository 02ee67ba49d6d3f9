// Package transit provides a minimal declarative transition engine for a single
// logical object: a table of allowed transitions, a current state, and handlers
// invoked when a transition succeeds.
//
// The engine owns only the state pointer. Handlers receive the caller-supplied
// payload and are responsible for mutating any external object themselves.
// Dispatch runs handlers synchronously on the caller's stack; the engine is not
// safe for concurrent use and callers needing that must serialize externally.
package transit
