// Package template defines the renderer-agnostic template interface HTML
// renderers depend on.
package template
