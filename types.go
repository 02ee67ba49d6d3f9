package transit

import "context"

// Wildcard is the reserved registry key whose handlers run before the
// state-specific handlers on every successful transition. It is never a member
// of the known-state set; callers must not use it as a real state name.
const Wildcard = "*"

// Table maps a state to the ordered list of states reachable directly from it.
// A nil or empty list marks a terminal state. The keys form the known-state
// set, fixed at engine construction; the table must not be mutated afterwards.
type Table map[string][]string

// Handler runs when a transition into a state succeeds. A non-nil error aborts
// the dispatch and propagates to the Dispatch caller unmodified.
type Handler[T any] func(ctx context.Context, payload T) error

// ErrorHandler receives the human-readable message for a rejected dispatch.
type ErrorHandler func(message string)
