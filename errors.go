package transit

import "errors"

// Predefined error types.
var (
	// ErrUnknownState indicates a state name outside the known-state set.
	ErrUnknownState = errors.New("unknown state")
	// ErrNoErrorHandler indicates a rejected dispatch with no ErrorHandler set.
	ErrNoErrorHandler = errors.New("no error handler registered")

	// ErrDefinitionNameRequired indicates that a definition name is required.
	ErrDefinitionNameRequired = errors.New("definition name is required")
	// ErrInitialStateRequired indicates that an initial state is required.
	ErrInitialStateRequired = errors.New("initial state is required")
	// ErrInitialStateUnknown indicates that the initial state is not a declared state.
	ErrInitialStateUnknown = errors.New("initial state does not exist")
	// ErrTransitionTargetUnknown indicates that a transition target is not a declared state.
	ErrTransitionTargetUnknown = errors.New("transition target does not exist")
	// ErrStateRequired indicates that at least one state is required.
	ErrStateRequired = errors.New("at least one state is required")
	// ErrReservedStateName indicates that a definition uses the wildcard marker as a state name.
	ErrReservedStateName = errors.New("state name is reserved")
)

// RejectedError reports an invalid dispatch when no ErrorHandler is set.
// Its message is exactly what a configured ErrorHandler would have received.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

func (e *RejectedError) Unwrap() error {
	return ErrNoErrorHandler
}
