package render

import (
	"context"

	"github.com/goliatone/go-jobform/pkg/model"
)

// Renderer converts a FormModel into a byte representation (HTML, terminal
// transcript, etc.). Unless the renderer is Interactive, the form passed in
// has already been filtered down to the fields visible for the current
// values.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}

// Interactive is implemented by renderers that collect input themselves and
// therefore need every field, re-deriving visibility as values change.
type Interactive interface {
	Interactive() bool
}

// IsInteractive reports whether renderer asks for the unfiltered form.
func IsInteractive(renderer Renderer) bool {
	interactive, ok := renderer.(Interactive)
	return ok && interactive.Interactive()
}
