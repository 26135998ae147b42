package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/validation"
	"github.com/goliatone/go-jobform/pkg/visibility"
	"github.com/goliatone/go-jobform/pkg/visibility/expr"
)

// Schema holds the compiled rules of a form.
type Schema struct {
	form       model.FormModel
	evaluator  visibility.Evaluator
	translator Translator
	patterns   map[string]*regexp.Regexp
}

// Option customises a Schema.
type Option func(*Schema)

// WithEvaluator replaces the visibility rule evaluator.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(s *Schema) {
		if evaluator != nil {
			s.evaluator = evaluator
		}
	}
}

// WithTranslator replaces the default message catalogue.
func WithTranslator(translator Translator) Option {
	return func(s *Schema) {
		if translator != nil {
			s.translator = translator
		}
	}
}

type compiler interface {
	Compile(rule string) error
}

// New compiles the rules of form. Malformed visibility rules and patterns are
// reported here rather than on first use.
func New(form model.FormModel, opts ...Option) (*Schema, error) {
	s := &Schema{
		form:       form,
		evaluator:  expr.New(),
		translator: DefaultTranslator,
		patterns:   make(map[string]*regexp.Regexp),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if len(form.Fields) == 0 {
		return nil, fmt.Errorf("schema: form %q declares no fields", form.OperationID)
	}

	for _, field := range form.Fields {
		if c, ok := s.evaluator.(compiler); ok && field.Conditional() {
			if err := c.Compile(field.VisibleWhen); err != nil {
				return nil, fmt.Errorf("schema: field %q: %w", field.Name, err)
			}
		}
		if rule, ok := field.Rule(model.ValidationRulePattern); ok {
			re, err := regexp.Compile(rule.Params["pattern"])
			if err != nil {
				return nil, fmt.Errorf("schema: field %q pattern: %w", field.Name, err)
			}
			s.patterns[field.Name] = re
		}
	}
	return s, nil
}

// Form returns the form the schema was compiled from.
func (s *Schema) Form() model.FormModel {
	return s.form
}

// Evaluator returns the visibility evaluator the schema uses.
func (s *Schema) Evaluator() visibility.Evaluator {
	return s.evaluator
}

// VisibleFields returns the conditional fields whose rule holds for values,
// in form order.
func (s *Schema) VisibleFields(values map[string]any) ([]string, error) {
	return visibility.VisibleConditional(s.form, s.evaluator, visibility.Context{Values: values})
}

// Validate checks values and returns every violation in form order. It does
// not retain or modify values.
func (s *Schema) Validate(values map[string]any) Issues {
	ctx := visibility.Context{Values: values}
	var issues Issues
	for _, field := range s.form.Fields {
		visible, err := visibility.IsVisible(field, s.evaluator, ctx)
		if err != nil {
			// rules are compiled in New; treat a failing custom evaluator as visible
			visible = true
		}
		if !visible {
			continue
		}
		issues = append(issues, s.validateField(field, values[field.Name])...)
	}
	return issues
}

func (s *Schema) validateField(field model.Field, value any) Issues {
	if isEmpty(value) {
		switch {
		case field.Conditional():
			return Issues{s.issue(field, CodeConditionalRequired, nil)}
		case field.Required:
			return Issues{s.issue(field, CodeRequired, nil)}
		default:
			return nil
		}
	}

	switch field.Type {
	case model.FieldTypeNumber, model.FieldTypeInteger:
		return s.validateNumber(field, value)
	case model.FieldTypeArray:
		return s.validateArray(field, value)
	case model.FieldTypeBoolean:
		if _, ok := toBool(value); !ok {
			return Issues{s.issue(field, CodeInvalidType, nil)}
		}
		return nil
	default:
		return s.validateString(field, value)
	}
}

func (s *Schema) validateNumber(field model.Field, value any) Issues {
	n, ok := toNumber(value)
	if !ok || (field.Type == model.FieldTypeInteger && n != float64(int64(n))) {
		return Issues{s.issue(field, CodeInvalidType, nil)}
	}
	if rule, ok := field.Rule(model.ValidationRuleMin); ok {
		if limit, err := strconv.ParseFloat(rule.Params["value"], 64); err == nil && n < limit {
			return Issues{s.issue(field, CodeTooSmall, map[string]string{"min": rule.Params["value"]})}
		}
	}
	if rule, ok := field.Rule(model.ValidationRuleMax); ok {
		if limit, err := strconv.ParseFloat(rule.Params["value"], 64); err == nil && n > limit {
			return Issues{s.issue(field, CodeTooBig, map[string]string{"max": rule.Params["value"]})}
		}
	}
	return nil
}

func (s *Schema) validateString(field model.Field, value any) Issues {
	text, ok := value.(string)
	if !ok {
		return Issues{s.issue(field, CodeInvalidType, nil)}
	}
	// enum values are matched exactly, the way visibility rules compare them
	if options := field.Options(); len(options) > 0 && !contains(options, text) {
		return Issues{s.issue(field, CodeInvalidEnum, nil)}
	}
	text = strings.TrimSpace(text)

	if field.Format != "" && !validation.Check(field.Format, text) {
		return Issues{s.issue(field, CodeInvalidFormat, nil)}
	}
	if rule, ok := field.Rule(model.ValidationRuleMinLength); ok {
		if limit, err := strconv.Atoi(rule.Params["value"]); err == nil && len([]rune(text)) < limit {
			return Issues{s.issue(field, CodeTooSmall, map[string]string{"min": rule.Params["value"]})}
		}
	}
	if rule, ok := field.Rule(model.ValidationRuleMaxLength); ok {
		if limit, err := strconv.Atoi(rule.Params["value"]); err == nil && len([]rune(text)) > limit {
			return Issues{s.issue(field, CodeTooBig, map[string]string{"max": rule.Params["value"]})}
		}
	}
	if re, ok := s.patterns[field.Name]; ok && !re.MatchString(text) {
		return Issues{s.issue(field, CodeInvalidFormat, nil)}
	}
	return nil
}

func (s *Schema) validateArray(field model.Field, value any) Issues {
	items, ok := toStrings(value)
	if !ok {
		return Issues{s.issue(field, CodeInvalidType, nil)}
	}
	if rule, ok := field.Rule(model.ValidationRuleMinItems); ok {
		if limit, err := strconv.Atoi(rule.Params["value"]); err == nil && len(items) < limit {
			return Issues{s.issue(field, CodeTooSmall, map[string]string{"min": rule.Params["value"]})}
		}
	}
	if options := field.Options(); len(options) > 0 {
		for _, item := range items {
			if !contains(options, item) {
				return Issues{s.issue(field, CodeInvalidEnum, map[string]string{"value": item})}
			}
		}
	}
	return nil
}

func (s *Schema) issue(field model.Field, code string, params map[string]string) Issue {
	return Issue{
		Field:   field.Name,
		Code:    code,
		Message: resolveMessage(s.translator, field, code, params),
		Params:  params,
	}
}
