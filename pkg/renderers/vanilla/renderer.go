// Package vanilla renders a form model as a standalone HTML page using pongo2
// templates.
package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/render"
	rendertemplate "github.com/goliatone/go-jobform/pkg/render/template"
	"github.com/goliatone/go-jobform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla/components"
)

// Name is the registry name of the renderer.
const Name = "vanilla"

const (
	defaultSubmitLabel  = "Submit"
	defaultSummaryTitle = "Form Summary"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	components       *components.Registry
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponents replaces the widget registry.
func WithComponents(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.components = registry
		}
	}
}

type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	components *components.Registry
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.components == nil {
		cfg.components = components.NewDefaultRegistry()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{templates: templates, components: cfg.components}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws every field of form. Callers filter hidden conditional fields
// out of form beforehand.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		view := fieldView(field, options.Values, options.Errors)
		control, err := r.control(field, view)
		if err != nil {
			return nil, err
		}
		fields = append(fields, map[string]any{
			"name":        view.Name,
			"id":          view.ID,
			"errors":      view.Errors,
			"conditional": view.Conditional,
			"control":     control,
		})
	}

	action := options.Action
	if action == "" {
		action = form.Endpoint
	}
	data := map[string]any{
		"title":         sanitizeText(orDefault(form.Summary, form.OperationID)),
		"description":   sanitizeText(form.Description),
		"form_id":       form.OperationID,
		"action":        action,
		"fields":        fields,
		"hidden":        hiddenInputs(options.Hidden),
		"form_errors":   sanitizeAll(options.FormErrors),
		"submit_label":  sanitizeText(orDefault(form.Metadata["submitLabel"], defaultSubmitLabel)),
		"summary_title": sanitizeText(orDefault(form.Metadata["summaryTitle"], defaultSummaryTitle)),
	}
	if options.Summary != nil && !options.Summary.IsZero() {
		text, err := options.Summary.Text()
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		data["summary"] = text
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", data)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) control(field model.Field, view components.Field) (string, error) {
	component, ok := r.components.Lookup(field.Widget)
	if !ok {
		component, ok = r.components.Lookup(model.WidgetText)
	}
	if !ok {
		return "", fmt.Errorf("vanilla renderer: no component for widget %q of field %q", field.Widget, field.Name)
	}
	var buf bytes.Buffer
	if err := component(&buf, view, r.templates); err != nil {
		return "", fmt.Errorf("vanilla renderer: field %q: %w", field.Name, err)
	}
	return buf.String(), nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
