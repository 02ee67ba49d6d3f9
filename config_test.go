package transit

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefinition(t *testing.T) {
	t.Parallel()

	def, err := LoadDefinition("testdata/article.yaml")
	require.NoError(t, err)

	assert.Equal(t, "article-workflow", def.Name)
	assert.Equal(t, "draft", def.InitialState)
	assert.Len(t, def.Transitions, 6)
	assert.Equal(t, []string{"changesNeeded", "approved"}, def.Transitions["inReview"])
	assert.Empty(t, def.Transitions["published"])
}

func TestLoadDefinitionMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadDefinition("testdata/does-not-exist.yaml")
	require.Error(t, err)
}

func TestLoadDefinitionFromBytes_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := LoadDefinitionFromBytes([]byte("transitions: [not, a, map"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadDefinitionFromFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"machines/toggle.yaml": &fstest.MapFile{
			Data: []byte("name: toggle\ninitialState: idle\ntransitions:\n  idle: [active]\n  active: [idle]\n"),
		},
	}

	def, err := LoadDefinitionFromFS(fsys, "machines/toggle.yaml")
	require.NoError(t, err)
	assert.Equal(t, "toggle", def.Name)
}

func TestDefinitionValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Definition {
		return &Definition{
			Name:         "m",
			InitialState: "a",
			Transitions:  map[string][]string{"a": {"b"}, "b": nil},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Definition)
		wantErr error
	}{
		{
			name:    "valid",
			mutate:  func(d *Definition) {},
			wantErr: nil,
		},
		{
			name:    "missing name",
			mutate:  func(d *Definition) { d.Name = "" },
			wantErr: ErrDefinitionNameRequired,
		},
		{
			name:    "missing initial state",
			mutate:  func(d *Definition) { d.InitialState = "" },
			wantErr: ErrInitialStateRequired,
		},
		{
			name:    "no states",
			mutate:  func(d *Definition) { d.Transitions = nil },
			wantErr: ErrStateRequired,
		},
		{
			name:    "unknown initial state",
			mutate:  func(d *Definition) { d.InitialState = "c" },
			wantErr: ErrInitialStateUnknown,
		},
		{
			name:    "unknown transition target",
			mutate:  func(d *Definition) { d.Transitions["b"] = []string{"c"} },
			wantErr: ErrTransitionTargetUnknown,
		},
		{
			name:    "reserved state name",
			mutate:  func(d *Definition) { d.Transitions[Wildcard] = nil },
			wantErr: ErrReservedStateName,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			def := valid()
			tt.mutate(def)

			err := def.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDefinitionTableIsDeepCopy(t *testing.T) {
	t.Parallel()

	def := &Definition{
		Name:         "m",
		InitialState: "a",
		Transitions:  map[string][]string{"a": {"b"}, "b": nil},
	}

	table := def.Table()
	def.Transitions["a"][0] = "mutated"

	assert.Equal(t, []string{"b"}, table["a"])
	assert.Nil(t, table["b"])
}

func TestFromDefinition(t *testing.T) {
	t.Parallel()

	def, err := LoadDefinition("testdata/article.yaml")
	require.NoError(t, err)

	engine, err := FromDefinition[*article](def)
	require.NoError(t, err)

	assert.Equal(t, "article-workflow", engine.Name())
	assert.Equal(t, "draft", engine.Current())
	assert.True(t, engine.IsValid("scheduled"))

	ok, err := engine.Dispatch(context.Background(), "inReview", &article{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "inReview", engine.Current())
}

func TestFromDefinitionInvalid(t *testing.T) {
	t.Parallel()

	def := &Definition{Name: "m", InitialState: "missing", Transitions: map[string][]string{"a": nil}}

	_, err := FromDefinition[*article](def)
	require.ErrorIs(t, err, ErrInitialStateUnknown)
}
