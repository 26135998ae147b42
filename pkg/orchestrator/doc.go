// Package orchestrator wires the loader → parser → model builder → renderer
// pipeline behind a single entry point. Static renderers receive the form
// already filtered to the fields visible for the request values.
package orchestrator
