package schema

import (
	"strings"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/validation"
)

// Translator turns an issue into a human readable message. Field level
// overrides from the form document take precedence over the Translator.
type Translator interface {
	Message(field model.Field, code string, params map[string]string) string
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(field model.Field, code string, params map[string]string) string

func (fn TranslatorFunc) Message(field model.Field, code string, params map[string]string) string {
	return fn(field, code, params)
}

// DefaultTranslator is the English catalogue. Placeholders in braces are
// replaced with the field label and the issue params.
var DefaultTranslator Translator = TranslatorFunc(defaultMessage)

func defaultMessage(field model.Field, code string, params map[string]string) string {
	return interpolate(defaultTemplate(field, code), field, params)
}

func defaultTemplate(field model.Field, code string) string {
	numeric := field.Type == model.FieldTypeNumber || field.Type == model.FieldTypeInteger
	switch code {
	case CodeRequired, CodeConditionalRequired:
		return "{label} is required"
	case CodeInvalidType:
		if numeric {
			return "Must be a number"
		}
		return "{label} has an invalid value"
	case CodeInvalidFormat:
		switch field.Format {
		case validation.FormatEmail:
			return "Invalid email format"
		case validation.FormatURI, validation.FormatURL:
			return "Invalid URL"
		case validation.FormatDateTime, validation.FormatDate:
			return "Invalid date"
		}
		return "{label} has an invalid format"
	case CodeInvalidEnum:
		return "{label} must be one of {options}"
	case CodeTooSmall:
		switch {
		case field.Type == model.FieldTypeArray:
			return "Select at least {min}"
		case numeric:
			return "Must be at least {min}"
		}
		return "Must be at least {min} characters"
	case CodeTooBig:
		switch {
		case field.Type == model.FieldTypeArray:
			return "Select at most {max}"
		case numeric:
			return "Must be at most {max}"
		}
		return "Must be at most {max} characters"
	default:
		return "{label} is invalid"
	}
}

// resolveMessage prefers the field's own message for code. A conditional
// required issue falls back to the field's plain required message.
func resolveMessage(translator Translator, field model.Field, code string, params map[string]string) string {
	if msg, ok := field.Messages[code]; ok && msg != "" {
		return interpolate(msg, field, params)
	}
	if code == CodeConditionalRequired {
		if msg, ok := field.Messages[CodeRequired]; ok && msg != "" {
			return interpolate(msg, field, params)
		}
	}
	return translator.Message(field, code, params)
}

func interpolate(tmpl string, field model.Field, params map[string]string) string {
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := []string{"{label}", field.Label, "{field}", field.Name, "{options}", strings.Join(field.Options(), ", ")}
	for key, value := range params {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
