// Package components holds the control renderers the vanilla renderer draws
// fields with, keyed by widget name.
package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	rendertemplate "github.com/goliatone/go-jobform/pkg/render/template"
)

// Field is the view of a single control. Text has already been sanitised.
type Field struct {
	Name        string   `json:"name"`
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Placeholder string   `json:"placeholder,omitempty"`
	Description string   `json:"description,omitempty"`
	Widget      string   `json:"widget"`
	InputType   string   `json:"input_type"`
	Value       string   `json:"value"`
	Selected    []string `json:"selected,omitempty"`
	Options     []string `json:"options,omitempty"`
	Errors      []string `json:"errors,omitempty"`
	Min         string   `json:"min,omitempty"`
	Required    bool     `json:"required"`
	Conditional bool     `json:"conditional"`
}

// Renderer writes the markup of one control into buf.
type Renderer func(buf *bytes.Buffer, field Field, templates rendertemplate.TemplateRenderer) error

// Registry maps widget names to renderers.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Renderer
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{components: make(map[string]Renderer)}
}

// Register associates a renderer with name. Existing entries are replaced.
func (r *Registry) Register(name string, renderer Renderer) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[name] = renderer
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, renderer Renderer) {
	if err := r.Register(name, renderer); err != nil {
		panic(err)
	}
}

// Lookup fetches the renderer registered for name.
func (r *Registry) Lookup(name string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.components[normalize(name)]
	return renderer, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
