package visibility

import (
	"fmt"

	"github.com/goliatone/go-jobform/pkg/model"
)

// Evaluator determines whether a field should be visible based on a rule
// string and the current form values.
type Evaluator interface {
	Eval(fieldPath, rule string, ctx Context) (bool, error)
}

// Context provides inputs to an Evaluator. Values holds the current form
// values keyed by field name while Extras lets callers inject arbitrary
// context such as feature flags.
type Context struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldPath, rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(fieldPath, rule string, ctx Context) (bool, error) {
	return fn(fieldPath, rule, ctx)
}

// Conditional returns the names of the fields that carry a visibility rule,
// in form order.
func Conditional(form model.FormModel) []string {
	var names []string
	for _, field := range form.Fields {
		if field.Conditional() {
			names = append(names, field.Name)
		}
	}
	return names
}

// VisibleConditional evaluates every conditional field against ctx and
// returns the ones whose rule holds, in form order. The result is derived
// fresh on each call.
func VisibleConditional(form model.FormModel, evaluator Evaluator, ctx Context) ([]string, error) {
	visible := []string{}
	for _, field := range form.Fields {
		if !field.Conditional() {
			continue
		}
		ok, err := IsVisible(field, evaluator, ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, field.Name)
		}
	}
	return visible, nil
}

// IsVisible reports whether a single field should render. Fields without a
// rule are always visible.
func IsVisible(field model.Field, evaluator Evaluator, ctx Context) (bool, error) {
	if !field.Conditional() {
		return true, nil
	}
	if evaluator == nil {
		return false, fmt.Errorf("visibility: evaluator is nil for field %q", field.Name)
	}
	ok, err := evaluator.Eval(field.Name, field.VisibleWhen, ctx)
	if err != nil {
		return false, fmt.Errorf("visibility: field %q: %w", field.Name, err)
	}
	return ok, nil
}

// Filter returns a copy of form without the fields whose rule does not hold.
func Filter(form model.FormModel, evaluator Evaluator, ctx Context) (model.FormModel, error) {
	out := form
	out.Fields = make([]model.Field, 0, len(form.Fields))
	for _, field := range form.Fields {
		ok, err := IsVisible(field, evaluator, ctx)
		if err != nil {
			return model.FormModel{}, err
		}
		if ok {
			out.Fields = append(out.Fields, field)
		}
	}
	return out, nil
}
