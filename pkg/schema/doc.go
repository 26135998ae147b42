// Package schema validates a complete form record against the rules declared
// in a model.FormModel.
//
// Validate is a pure function from the full record to its violations. Rules
// guarded by a visibility rule are evaluated against the record passed in, so
// a conditional field is checked (and required) exactly when it is visible
// and ignored otherwise, even when it still holds a value from an earlier
// selection.
package schema
