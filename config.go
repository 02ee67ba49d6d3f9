package transit

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Definition is the declarative form of a machine, loadable from YAML.
// Terminal states carry a null or empty target list.
type Definition struct {
	Name         string              `json:"name"         yaml:"name"`
	InitialState string              `json:"initialState" yaml:"initialState"`
	Transitions  map[string][]string `json:"transitions"  yaml:"transitions"`
}

// LoadDefinition loads a machine definition from a YAML file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Intentional path-based loading
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file %q: %w", path, err)
	}

	return LoadDefinitionFromBytes(data)
}

// LoadDefinitionFromBytes loads a machine definition from YAML bytes.
func LoadDefinitionFromBytes(data []byte) (*Definition, error) {
	var def Definition

	err := yaml.Unmarshal(data, &def)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	err = def.Validate()
	if err != nil {
		return nil, err
	}

	return &def, nil
}

// LoadDefinitionFromFS loads a definition from an embedded filesystem.
// This is a convenience function for loading from embed.FS.
func LoadDefinitionFromFS(fsys fs.FS, path string) (*Definition, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition from FS: %w", err)
	}

	return LoadDefinitionFromBytes(data)
}

// Validate checks if the definition is valid.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return ErrDefinitionNameRequired
	}

	if d.InitialState == "" {
		return ErrInitialStateRequired
	}

	if len(d.Transitions) == 0 {
		return ErrStateRequired
	}

	if _, ok := d.Transitions[Wildcard]; ok {
		return fmt.Errorf("%w: %s", ErrReservedStateName, Wildcard)
	}

	if _, ok := d.Transitions[d.InitialState]; !ok {
		return fmt.Errorf("%w: %s", ErrInitialStateUnknown, d.InitialState)
	}

	for state, targets := range d.Transitions {
		for _, target := range targets {
			if _, ok := d.Transitions[target]; !ok {
				return fmt.Errorf("%w: %s -> %s", ErrTransitionTargetUnknown, state, target)
			}
		}
	}

	return nil
}

// Table converts the definition into a transition table. The result is a deep
// copy, so later mutation of the definition does not leak into an engine
// already built from it.
func (d *Definition) Table() Table {
	table := make(Table, len(d.Transitions))

	for state, targets := range d.Transitions {
		if len(targets) == 0 {
			table[state] = nil

			continue
		}

		out := make([]string, len(targets))
		copy(out, targets)
		table[state] = out
	}

	return table
}

// FromDefinition validates def and builds an engine starting at its initial
// state. This is the strict construction path: unlike New, an invalid initial
// state or an unknown transition target fails here.
func FromDefinition[T any](def *Definition, opts ...Option[T]) (*Engine[T], error) {
	err := def.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid definition: %w", err)
	}

	opts = append([]Option[T]{WithName[T](def.Name)}, opts...)

	return New(def.Table(), def.InitialState, opts...), nil
}
