package vanilla

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla/components"
)

func controlID(name string) string {
	return "jf-" + strings.TrimSpace(name)
}

func fieldView(field model.Field, values map[string]any, errors map[string][]string) components.Field {
	view := components.Field{
		Name:        field.Name,
		ID:          controlID(field.Name),
		Label:       sanitizeText(field.Label),
		Placeholder: sanitizeText(field.Placeholder),
		Description: sanitizeText(field.Description),
		Widget:      field.Widget,
		InputType:   inputType(field),
		Options:     field.Options(),
		Errors:      sanitizeAll(errors[field.Name]),
		Required:    field.Required || field.Conditional(),
		Conditional: field.Conditional(),
	}
	if view.Label == "" {
		view.Label = field.Name
	}
	if rule, ok := field.Rule(model.ValidationRuleMin); ok {
		view.Min = rule.Params["value"]
	}

	value := values[field.Name]
	if field.Type == model.FieldTypeArray {
		view.Selected = stringList(value)
	} else {
		view.Value = stringValue(value)
	}
	return view
}

func inputType(field model.Field) string {
	if field.InputType != "" {
		return field.InputType
	}
	switch field.Format {
	case "email":
		return "email"
	case "uri", "url":
		return "url"
	}
	return "text"
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func stringList(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, stringValue(item))
		}
		return out
	default:
		return nil
	}
}

type hiddenInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func hiddenInputs(hidden map[string]string) []hiddenInput {
	out := make([]hiddenInput, 0, len(hidden))
	for name, value := range hidden {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, hiddenInput{Name: name, Value: value})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
