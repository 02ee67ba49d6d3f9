package validator

import (
	"testing"

	"github.com/amp-labs/transit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func articleDefinition() *transit.Definition {
	return &transit.Definition{
		Name:         "article-workflow",
		InitialState: "draft",
		Transitions: map[string][]string{
			"draft":         {"inReview"},
			"inReview":      {"changesNeeded", "approved"},
			"changesNeeded": {"inReview", "approved"},
			"approved":      {"draft", "scheduled", "published"},
			"scheduled":     {"draft", "published"},
			"published":     nil,
		},
	}
}

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}

	return out
}

func warningCodes(warnings []ValidationWarning) []string {
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = w.Code
	}

	return out
}

func TestValidateCleanDefinition(t *testing.T) {
	t.Parallel()

	result := Validate(articleDefinition())

	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Suggestions)
}

func TestUnknownTarget(t *testing.T) {
	t.Parallel()

	def := articleDefinition()
	def.Transitions["approved"] = append(def.Transitions["approved"], "archived")

	result := Validate(def)

	require.False(t, result.Valid)
	assert.Contains(t, codes(result.Errors), "UNKNOWN_TARGET")
}

func TestUnknownTargetFix(t *testing.T) {
	t.Parallel()

	def := articleDefinition()
	def.Transitions["approved"] = append(def.Transitions["approved"], "archived")

	result := Validate(def)
	require.NotEmpty(t, result.Errors)

	fix := result.Errors[0].Fix
	require.NotNil(t, fix)

	fix.Apply(def)

	assert.True(t, Validate(def).Valid)
}

func TestReservedStateName(t *testing.T) {
	t.Parallel()

	def := articleDefinition()
	def.Transitions[transit.Wildcard] = nil

	result := Validate(def)

	require.False(t, result.Valid)
	assert.Contains(t, codes(result.Errors), "RESERVED_STATE_NAME")
}

func TestUnreachableState(t *testing.T) {
	t.Parallel()

	def := articleDefinition()
	def.Transitions["orphaned"] = []string{"draft"}

	result := Validate(def)

	assert.True(t, result.Valid, "unreachability is advisory")
	assert.Contains(t, warningCodes(result.Warnings), "UNREACHABLE_STATE")
}

func TestNoTerminalState(t *testing.T) {
	t.Parallel()

	def := &transit.Definition{
		Name:         "spinner",
		InitialState: "a",
		Transitions:  map[string][]string{"a": {"b"}, "b": {"a"}},
	}

	result := Validate(def)

	assert.Contains(t, warningCodes(result.Warnings), "NO_TERMINAL_STATE")
}

func TestDuplicateTarget(t *testing.T) {
	t.Parallel()

	def := articleDefinition()
	def.Transitions["draft"] = []string{"inReview", "inReview"}

	result := Validate(def)

	assert.Contains(t, warningCodes(result.Warnings), "DUPLICATE_TARGET")
}

func TestSelfLoopSuggestion(t *testing.T) {
	t.Parallel()

	def := articleDefinition()
	def.Transitions["inReview"] = append(def.Transitions["inReview"], "inReview")

	result := Validate(def)

	assert.True(t, result.Valid)
	require.Len(t, result.Suggestions, 1)
	assert.Contains(t, result.Suggestions[0].Message, "inReview")
}

func TestValidateFileMissing(t *testing.T) {
	t.Parallel()

	result, err := ValidateFile("testdata/does-not-exist.yaml")

	require.Error(t, err)
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "DEFINITION_LOAD_FAILED", result.Errors[0].Code)
}

func TestValidateFile(t *testing.T) {
	t.Parallel()

	result, err := ValidateFile("testdata/article.yaml")

	require.NoError(t, err)
	assert.True(t, result.Valid)
}
