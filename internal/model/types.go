package model

import "fmt"

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
)

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRuleMinItems  = "minItems"
	ValidationRulePattern   = "pattern"
)

// Widgets the renderers know how to draw.
const (
	WidgetText       = "text"
	WidgetNumber     = "number"
	WidgetSelect     = "select"
	WidgetCheckboxes = "checkboxes"
	WidgetTextArea   = "textarea"
	WidgetDateTime   = "datetime"
)

// ValidationRule represents a single constraint declared on a field. Numeric
// bounds and length limits encode their threshold in Params["value"] while
// pattern rules keep the expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field models an individual input inside a form. Struct fields are annotated
// so renderers can serialise them directly when needed.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Format      string            `json:"format,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Widget      string            `json:"widget,omitempty"`
	InputType   string            `json:"inputType,omitempty"`
	Order       int               `json:"order,omitempty"`
	Default     any               `json:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty"`
	Items       *Field            `json:"items,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	VisibleWhen string            `json:"visibleWhen,omitempty"`
	Messages    map[string]string `json:"messages,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Conditional reports whether the field depends on a visibility rule.
func (f Field) Conditional() bool {
	return f.VisibleWhen != ""
}

// Rule returns the first validation rule of the given kind.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

// Options lists the allowed values for enum fields; arrays report the enum of
// their items.
func (f Field) Options() []string {
	enum := f.Enum
	if len(enum) == 0 && f.Items != nil {
		enum = f.Items.Enum
	}
	if len(enum) == 0 {
		return nil
	}
	out := make([]string, 0, len(enum))
	for _, value := range enum {
		out = append(out, fmt.Sprint(value))
	}
	return out
}

// FormModel is the top-level representation renderers and the validation
// schema consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field looks up a field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames returns the field names in render order.
func (m FormModel) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		names = append(names, field.Name)
	}
	return names
}
