// Package model defines the typed form model consumed by the validation schema
// and the renderers. Builders reside in internal/model but return the types
// defined here.
//
// Schema extensions under the `x-formgen` namespace drive presentation and
// conditional behaviour: `order`, `label`, `placeholder`, `widget` and
// `inputType` shape rendering; `visibleWhen` holds a visibility rule (see
// pkg/visibility/expr) and marks the field as conditionally required;
// `messages` overrides validation messages keyed by issue code. Unknown keys
// flow into Field.Metadata.
package model
