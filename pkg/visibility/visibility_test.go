package visibility_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/testsupport"
	"github.com/goliatone/go-jobform/pkg/visibility"
	"github.com/goliatone/go-jobform/pkg/visibility/expr"
)

func TestVisibleConditional_PositionTable(t *testing.T) {
	form := testsupport.JobApplicationForm(t)

	if diff := cmp.Diff(
		[]string{"relevantExperience", "portfolioURL", "managementExperience"},
		visibility.Conditional(form),
	); diff != "" {
		t.Fatalf("conditional fields mismatch (-want +got):\n%s", diff)
	}

	cases := map[string][]string{
		"Developer": {"relevantExperience"},
		"Designer":  {"relevantExperience", "portfolioURL"},
		"Manager":   {"managementExperience"},
		"":          {},
		"Intern":    {},
	}
	eval := expr.New()
	for position, want := range cases {
		got, err := visibility.VisibleConditional(form, eval, visibility.Context{
			Values: map[string]any{"position": position},
		})
		if err != nil {
			t.Fatalf("%q: %v", position, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%q: visible mismatch (-want +got):\n%s", position, diff)
		}
	}
}

func TestFilter_DropsHiddenFields(t *testing.T) {
	form := testsupport.JobApplicationForm(t)

	filtered, err := visibility.Filter(form, expr.New(), visibility.Context{
		Values: map[string]any{"position": "Manager"},
	})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	want := []string{
		"fullName", "email", "phoneNumber", "position",
		"managementExperience", "additionalSkills", "preferredInterviewTime",
	}
	if diff := cmp.Diff(want, filtered.FieldNames()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if len(form.Fields) != 9 {
		t.Fatalf("Filter mutated the source form")
	}
}

func TestIsVisible_Errors(t *testing.T) {
	field := model.Field{Name: "years", VisibleWhen: "enabled"}

	if _, err := visibility.IsVisible(field, nil, visibility.Context{}); err == nil {
		t.Fatalf("expected error for nil evaluator")
	}

	boom := errors.New("boom")
	failing := visibility.EvaluatorFunc(func(string, string, visibility.Context) (bool, error) {
		return false, boom
	})
	if _, err := visibility.IsVisible(field, failing, visibility.Context{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped evaluator error, got %v", err)
	}

	ok, err := visibility.IsVisible(model.Field{Name: "name"}, nil, visibility.Context{})
	if err != nil || !ok {
		t.Fatalf("unconditional field must be visible, got %v, %v", ok, err)
	}
}
