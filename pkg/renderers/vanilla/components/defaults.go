package components

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-jobform/pkg/model"
	rendertemplate "github.com/goliatone/go-jobform/pkg/render/template"
)

const templatePrefix = "templates/components/"

// NewDefaultRegistry returns a registry with a renderer for every widget the
// form model builder assigns.
func NewDefaultRegistry() *Registry {
	registry := New()
	for _, widget := range []string{
		model.WidgetText,
		model.WidgetNumber,
		model.WidgetSelect,
		model.WidgetCheckboxes,
		model.WidgetTextArea,
		model.WidgetDateTime,
	} {
		registry.MustRegister(widget, TemplateRenderer(templatePrefix+widget+".tmpl"))
	}
	return registry
}

// TemplateRenderer renders a control from a template that receives the view
// as "field".
func TemplateRenderer(name string) Renderer {
	return func(buf *bytes.Buffer, field Field, templates rendertemplate.TemplateRenderer) error {
		if templates == nil {
			return fmt.Errorf("components: template renderer not configured for %q", name)
		}
		rendered, err := templates.RenderTemplate(name, map[string]any{"field": field})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", name, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
