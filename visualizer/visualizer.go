// Package visualizer generates Mermaid and Graphviz diagrams from machine
// definitions.
package visualizer

import (
	"errors"
	"fmt"
	"strings"

	"facette.io/natsort"
	"github.com/amp-labs/transit"
)

// Visualizer errors.
var (
	ErrDefinitionNil  = errors.New("definition cannot be nil")
	ErrNoInitialState = errors.New("definition must have an initial state")
)

// GenerateMermaid converts a definition to a Mermaid state diagram.
func GenerateMermaid(def *transit.Definition) (string, error) {
	return GenerateMermaidWithOptions(def, DefaultOptions())
}

// GenerateMermaidFromFile loads a definition from a file and generates a
// Mermaid diagram.
func GenerateMermaidFromFile(path string) (string, error) {
	def, err := transit.LoadDefinition(path)
	if err != nil {
		return "", fmt.Errorf("failed to load definition: %w", err)
	}

	return GenerateMermaid(def)
}

// GenerateMermaidWithOptions generates a Mermaid diagram with custom options.
func GenerateMermaidWithOptions(def *transit.Definition, opts Options) (string, error) {
	states, err := orderedStates(def)
	if err != nil {
		return "", err
	}

	highlightMap := make(map[string]bool)
	for _, state := range opts.HighlightPath {
		highlightMap[state] = true
	}

	var sb strings.Builder

	sb.WriteString("```mermaid\n")
	sb.WriteString(fmt.Sprintf("stateDiagram-%s\n", opts.Direction))
	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", def.InitialState))

	for _, state := range states {
		targets := def.Transitions[state]

		switch {
		case highlightMap[state]:
			sb.WriteString(fmt.Sprintf("    class %s highlighted\n", state))
		case len(targets) == 0:
			sb.WriteString(fmt.Sprintf("    class %s terminalState\n", state))
		}

		for _, target := range targets {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", state, target))
		}

		if opts.ShowTerminal && len(targets) == 0 {
			sb.WriteString(fmt.Sprintf("    %s --> [*]\n", state))
		}
	}

	sb.WriteString("\n")
	sb.WriteString("    classDef terminalState fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px\n")
	sb.WriteString("    classDef highlighted fill:#fff9c4,stroke:#f57f17,stroke-width:3px\n")
	sb.WriteString("```\n")

	return sb.String(), nil
}

// GenerateDOT converts a definition to a Graphviz digraph.
func GenerateDOT(def *transit.Definition) (string, error) {
	return GenerateDOTWithOptions(def, DefaultOptions())
}

// GenerateDOTWithOptions generates a Graphviz digraph with custom options.
func GenerateDOTWithOptions(def *transit.Definition, opts Options) (string, error) {
	states, err := orderedStates(def)
	if err != nil {
		return "", err
	}

	highlightMap := make(map[string]bool)
	for _, state := range opts.HighlightPath {
		highlightMap[state] = true
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("digraph %q {\n", def.Name))
	sb.WriteString("    rankdir=TB;\n")
	sb.WriteString("    node [shape=box, style=rounded];\n")
	sb.WriteString(fmt.Sprintf("    __start [shape=point];\n    __start -> %q;\n", def.InitialState))

	for _, state := range states {
		targets := def.Transitions[state]

		switch {
		case highlightMap[state]:
			sb.WriteString(fmt.Sprintf("    %q [style=\"rounded,filled\", fillcolor=lightyellow];\n", state))
		case len(targets) == 0:
			sb.WriteString(fmt.Sprintf("    %q [peripheries=2];\n", state))
		}

		for _, target := range targets {
			sb.WriteString(fmt.Sprintf("    %q -> %q;\n", state, target))
		}
	}

	sb.WriteString("}\n")

	return sb.String(), nil
}

// orderedStates validates the definition and returns its states in natural
// sort order, so diagrams are stable across runs.
func orderedStates(def *transit.Definition) ([]string, error) {
	if def == nil {
		return nil, ErrDefinitionNil
	}

	if def.InitialState == "" {
		return nil, ErrNoInitialState
	}

	states := make([]string, 0, len(def.Transitions))
	for state := range def.Transitions {
		states = append(states, state)
	}

	natsort.Sort(states)

	return states, nil
}
