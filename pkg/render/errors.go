package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/schema"
)

// ErrorMapping splits validation feedback into field-level and form-level
// messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// FromIssues maps schema issues onto the fields of form.
func FromIssues(form model.FormModel, issues schema.Issues) ErrorMapping {
	return MapErrorPayload(form, issues.ByField())
}

// Apply copies the mapping into options, merging with any errors already set.
func (m ErrorMapping) Apply(options *RenderOptions) {
	if options == nil {
		return
	}
	if len(m.Fields) > 0 && options.Errors == nil {
		options.Errors = make(map[string][]string, len(m.Fields))
	}
	for field, messages := range m.Fields {
		options.Errors[field] = normalizeMessages(append(options.Errors[field], messages...))
	}
	options.FormErrors = MergeFormErrors(options.FormErrors, m.Form...)
}

// MergeFormErrors concatenates and normalises form-level error slices,
// trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload normalises an error payload keyed by field path (plain
// names, JSON pointers such as "/body/email", or "$.email") onto the fields
// of form. Unknown paths become form-level errors so messages are not lost.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}

	known := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		known[field.Name] = struct{}{}
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, raw := range keys {
		messages := normalizeMessages(payload[raw])
		if len(messages) == 0 {
			continue
		}
		name := fieldName(raw)
		if _, ok := known[name]; !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// fieldName reduces a path to the first segment that is not a request
// wrapper. The form is flat, so deeper segments (array indexes) are dropped.
func fieldName(path string) string {
	clean := strings.TrimLeft(strings.TrimSpace(path), "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	for _, segment := range strings.FieldsFunc(clean, func(r rune) bool { return r == '.' || r == '/' }) {
		switch strings.ToLower(segment) {
		case "body", "request", "payload", "data":
			continue
		}
		return segment
	}
	return ""
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
