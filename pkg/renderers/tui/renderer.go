// Package tui renders a form as an interactive terminal session built on
// survey prompts.
package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/schema"
)

// Name identifies the renderer in a render.Registry.
const Name = "tui"

// Renderer runs a terminal session for a form and returns the accepted
// submission as JSON.
type Renderer struct {
	options []Option
}

var (
	_ render.Renderer    = (*Renderer)(nil)
	_ render.Interactive = (*Renderer)(nil)
)

// New constructs a TUI renderer. Options are applied to every session it
// starts.
func New(options ...Option) *Renderer {
	return &Renderer{options: options}
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string { return "application/json" }

// Interactive asks the caller for the unfiltered form; visibility is decided
// per prompt.
func (r *Renderer) Interactive() bool { return true }

// Render prompts for every field of formModel, starting from options.Values, and
// returns the summary text once the submission is accepted.
func (r *Renderer) Render(ctx context.Context, formModel model.FormModel, options render.RenderOptions) ([]byte, error) {
	s, err := schema.New(formModel)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	controller, err := newController(s, options.Values, r.options)
	if err != nil {
		return nil, err
	}
	session, err := NewSession(controller, r.options...)
	if err != nil {
		return nil, err
	}
	result, err := session.Run(ctx)
	if err != nil {
		return nil, err
	}
	text, err := result.Text()
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

func newController(s *schema.Schema, values map[string]any, options []Option) (*form.Controller, error) {
	cfg := newSettings(options)
	controller, err := form.New(s, form.WithLogger(cfg.logger))
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	for _, field := range s.Form().Fields {
		value, ok := values[field.Name]
		if !ok || value == nil {
			continue
		}
		if err := controller.SetField(field.Name, value); err != nil {
			return nil, fmt.Errorf("tui: prefill: %w", err)
		}
	}
	return controller, nil
}
