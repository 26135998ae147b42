package render

import "github.com/goliatone/go-jobform/pkg/summary"

// RenderOptions describe per-request data that renderers use to customise
// their output without mutating the form model pipeline.
type RenderOptions struct {
	// Action overrides the form's submit target. Defaults to the form endpoint.
	Action string
	// Values pre-populates rendered controls keyed by field name.
	Values map[string]any
	// Errors surfaces validation feedback keyed by field name. Renderers show
	// the messages in the error region of the matching control.
	Errors map[string][]string
	// FormErrors holds messages that do not belong to a single field.
	FormErrors []string
	// Summary, when set, is shown read-only below the form.
	Summary *summary.Summary
	// Hidden adds hidden inputs such as a session token.
	Hidden map[string]string
}
