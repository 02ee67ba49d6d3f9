// Package validator performs static analysis on machine definitions beyond the
// structural checks Definition.Validate applies.
package validator

import (
	"fmt"

	"github.com/amp-labs/transit"
)

// ValidationResult contains the results of validating a machine definition.
type ValidationResult struct {
	Valid       bool
	Errors      []ValidationError
	Warnings    []ValidationWarning
	Suggestions []Suggestion
}

// ValidationError represents a validation error with fix suggestions.
type ValidationError struct {
	Code     string   // Error code like "UNKNOWN_TARGET", "RESERVED_STATE_NAME"
	Message  string   // Human-readable error message
	Location Location // Where the error occurred
	Fix      *Fix     // Optional auto-fix suggestion
}

// ValidationWarning represents a non-critical issue.
type ValidationWarning struct {
	Code     string   // Warning code
	Message  string   // Human-readable warning message
	Location Location // Where the warning occurred
}

// Suggestion provides improvement recommendations.
type Suggestion struct {
	Message string // Suggestion description
	Example string // Example showing the improvement
}

// Location identifies where an issue occurred.
type Location struct {
	File  string // Definition file path
	State string // State name if applicable
}

// Fix describes how an issue could be repaired.
type Fix struct {
	Description string
	Apply       func(*transit.Definition)
}

// Validate runs the default rule set against a definition.
func Validate(def *transit.Definition) ValidationResult {
	return ValidateWithRules(def, DefaultRules())
}

// ValidateWithRules runs a custom rule set against a definition.
func ValidateWithRules(def *transit.Definition, rules []Rule) ValidationResult {
	var result ValidationResult

	for _, rule := range append(rules, RegisteredRules...) {
		ruleResult := rule.Check(def)
		result.Errors = append(result.Errors, ruleResult.Errors...)
		result.Warnings = append(result.Warnings, ruleResult.Warnings...)
		result.Suggestions = append(result.Suggestions, ruleResult.Suggestions...)
	}

	result.Valid = len(result.Errors) == 0

	return result
}

// ValidateFile loads a definition from a file and validates it.
func ValidateFile(path string) (ValidationResult, error) {
	def, err := transit.LoadDefinition(path)
	if err != nil {
		return ValidationResult{
			Valid: false,
			Errors: []ValidationError{
				{
					Code:     "DEFINITION_LOAD_FAILED",
					Message:  fmt.Sprintf("Failed to load definition: %v", err),
					Location: Location{File: path},
				},
			},
		}, err
	}

	result := Validate(def)

	// Stamp the file location on every issue.
	for i := range result.Errors {
		if result.Errors[i].Location.File == "" {
			result.Errors[i].Location.File = path
		}
	}

	for i := range result.Warnings {
		if result.Warnings[i].Location.File == "" {
			result.Warnings[i].Location.File = path
		}
	}

	return result, nil
}
