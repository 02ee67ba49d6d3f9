package validator

import (
	"fmt"
	"sort"

	"github.com/amp-labs/transit"
)

// RuleResult contains errors, warnings, and suggestions from a rule check.
type RuleResult struct {
	Errors      []ValidationError
	Warnings    []ValidationWarning
	Suggestions []Suggestion
}

// Rule defines a validation rule that checks a definition for specific issues.
type Rule interface {
	Name() string
	Check(def *transit.Definition) RuleResult
}

// DefaultRules returns the standard set of validation rules.
func DefaultRules() []Rule {
	return []Rule{
		&unknownTargetRule{},
		&reservedStateRule{},
		&unreachableStateRule{},
		&noTerminalStateRule{},
		&duplicateTargetRule{},
		&selfLoopRule{},
	}
}

// RegisteredRules stores custom validation rules.
var RegisteredRules []Rule

// RegisterRule adds a custom validation rule.
func RegisterRule(rule Rule) {
	RegisteredRules = append(RegisteredRules, rule)
}

// sortedStates returns definition state names in a stable order so rule output
// is deterministic across runs.
func sortedStates(def *transit.Definition) []string {
	states := make([]string, 0, len(def.Transitions))
	for state := range def.Transitions {
		states = append(states, state)
	}

	sort.Strings(states)

	return states
}

// unknownTargetRule checks for transitions pointing at undeclared states.
type unknownTargetRule struct{}

func (r *unknownTargetRule) Name() string {
	return "UnknownTarget"
}

func (r *unknownTargetRule) Check(def *transit.Definition) RuleResult {
	var errs []ValidationError

	for _, state := range sortedStates(def) {
		for _, target := range def.Transitions[state] {
			if _, ok := def.Transitions[target]; ok {
				continue
			}

			errs = append(errs, ValidationError{
				Code:     "UNKNOWN_TARGET",
				Message:  fmt.Sprintf("State '%s' declares a transition to undeclared state '%s'", state, target),
				Location: Location{State: state},
				Fix: &Fix{
					Description: fmt.Sprintf("Declare state '%s' or remove the transition", target),
					Apply: func(d *transit.Definition) {
						if _, ok := d.Transitions[target]; !ok {
							d.Transitions[target] = nil
						}
					},
				},
			})
		}
	}

	return RuleResult{Errors: errs}
}

// reservedStateRule checks for the wildcard marker used as a state name.
type reservedStateRule struct{}

func (r *reservedStateRule) Name() string {
	return "ReservedStateName"
}

func (r *reservedStateRule) Check(def *transit.Definition) RuleResult {
	if _, ok := def.Transitions[transit.Wildcard]; !ok {
		return RuleResult{}
	}

	return RuleResult{Errors: []ValidationError{
		{
			Code:     "RESERVED_STATE_NAME",
			Message:  fmt.Sprintf("'%s' is the wildcard registry key and cannot name a state", transit.Wildcard),
			Location: Location{State: transit.Wildcard},
		},
	}}
}

// unreachableStateRule checks for states unreachable from the initial state.
// The engine itself is permissive about this, so it is advisory only.
type unreachableStateRule struct{}

func (r *unreachableStateRule) Name() string {
	return "UnreachableState"
}

func (r *unreachableStateRule) Check(def *transit.Definition) RuleResult {
	reachable := map[string]bool{def.InitialState: true}

	queue := []string{def.InitialState}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, target := range def.Transitions[current] {
			if !reachable[target] {
				reachable[target] = true
				queue = append(queue, target)
			}
		}
	}

	var warnings []ValidationWarning

	for _, state := range sortedStates(def) {
		if !reachable[state] {
			warnings = append(warnings, ValidationWarning{
				Code:     "UNREACHABLE_STATE",
				Message:  fmt.Sprintf("State '%s' cannot be reached from initial state '%s'", state, def.InitialState),
				Location: Location{State: state},
			})
		}
	}

	return RuleResult{Warnings: warnings}
}

// noTerminalStateRule warns when every state has outgoing transitions.
type noTerminalStateRule struct{}

func (r *noTerminalStateRule) Name() string {
	return "NoTerminalState"
}

func (r *noTerminalStateRule) Check(def *transit.Definition) RuleResult {
	for _, targets := range def.Transitions {
		if len(targets) == 0 {
			return RuleResult{}
		}
	}

	return RuleResult{Warnings: []ValidationWarning{
		{
			Code:    "NO_TERMINAL_STATE",
			Message: "Machine has no terminal state; every state has outgoing transitions",
		},
	}}
}

// duplicateTargetRule warns about a target listed twice in one outgoing list.
type duplicateTargetRule struct{}

func (r *duplicateTargetRule) Name() string {
	return "DuplicateTarget"
}

func (r *duplicateTargetRule) Check(def *transit.Definition) RuleResult {
	var warnings []ValidationWarning

	for _, state := range sortedStates(def) {
		seen := make(map[string]bool)

		for _, target := range def.Transitions[state] {
			if seen[target] {
				warnings = append(warnings, ValidationWarning{
					Code:     "DUPLICATE_TARGET",
					Message:  fmt.Sprintf("State '%s' lists target '%s' more than once", state, target),
					Location: Location{State: state},
				})

				continue
			}

			seen[target] = true
		}
	}

	return RuleResult{Warnings: warnings}
}

// selfLoopRule surfaces self-transitions; legal, but often a modeling smell.
type selfLoopRule struct{}

func (r *selfLoopRule) Name() string {
	return "SelfLoop"
}

func (r *selfLoopRule) Check(def *transit.Definition) RuleResult {
	var suggestions []Suggestion

	for _, state := range sortedStates(def) {
		for _, target := range def.Transitions[state] {
			if target == state {
				suggestions = append(suggestions, Suggestion{
					Message: fmt.Sprintf("State '%s' transitions to itself; wildcard handlers run on every such dispatch", state),
					Example: fmt.Sprintf("%s: [%s]", state, state),
				})
			}
		}
	}

	return RuleResult{Suggestions: suggestions}
}
