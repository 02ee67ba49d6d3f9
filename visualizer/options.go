package visualizer

// Options configures the visualization output.
type Options struct {
	// Direction controls diagram flow: "TD" (top-down) or "LR" (left-right).
	// Mermaid only; DOT always renders top-down.
	Direction string

	// HighlightPath highlights a specific state path through the diagram.
	HighlightPath []string

	// ShowTerminal marks terminal states with an end-of-machine edge.
	ShowTerminal bool
}

// DefaultOptions returns sensible defaults for visualization.
func DefaultOptions() Options {
	return Options{
		Direction:    "TD",
		ShowTerminal: true,
	}
}

// WithDirection sets the diagram direction.
func (o Options) WithDirection(direction string) Options {
	o.Direction = direction

	return o
}

// WithHighlightPath sets states to highlight.
func (o Options) WithHighlightPath(path []string) Options {
	o.HighlightPath = path

	return o
}

// WithShowTerminal enables/disables terminal state markers.
func (o Options) WithShowTerminal(show bool) Options {
	o.ShowTerminal = show

	return o
}
