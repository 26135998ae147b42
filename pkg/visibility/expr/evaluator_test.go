package expr

import (
	"testing"

	"github.com/goliatone/go-jobform/pkg/visibility"
)

func TestEvaluatorRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		rule   string
		values map[string]any
		want   bool
	}{
		{"empty rule", "  ", nil, true},
		{"equality match", `position == "Designer"`, map[string]any{"position": "Designer"}, true},
		{"equality mismatch", `position == "Designer"`, map[string]any{"position": "Manager"}, false},
		{"equality missing value", `position == "Designer"`, map[string]any{}, false},
		{"inequality", `position != "Manager"`, map[string]any{"position": "Developer"}, true},
		{"single quotes", `position == 'Manager'`, map[string]any{"position": "Manager"}, true},
		{"in first member", `position in ("Developer", "Designer")`, map[string]any{"position": "Developer"}, true},
		{"in second member", `position in ("Developer", "Designer")`, map[string]any{"position": "Designer"}, true},
		{"in no member", `position in ("Developer", "Designer")`, map[string]any{"position": "Manager"}, false},
		{"in empty value", `position in ("Developer", "Designer")`, map[string]any{"position": ""}, false},
		{"not in", `!(position in ("Developer","Designer"))`, map[string]any{"position": "Manager"}, true},
		{"bool from string", "enabled == true", map[string]any{"enabled": "true"}, true},
		{"truthy", "enabled", map[string]any{"enabled": true}, true},
		{"negated falsy", "!enabled", map[string]any{"enabled": false}, true},
		{"number", "count == 3", map[string]any{"count": "3"}, true},
		{"null missing", "missing == null", map[string]any{}, true},
		{"null present", "enabled != null", map[string]any{"enabled": false}, true},
		{"conjunction", `enabled && role == "admin"`, map[string]any{"enabled": true, "role": "user"}, false},
		{"disjunction", `enabled || role == "admin"`, map[string]any{"enabled": false, "role": "admin"}, true},
		{"nested path", `cta.headline == "Hello"`, map[string]any{"cta": map[string]any{"headline": "Hello"}}, true},
		{"flattened path", `cta.headline != ""`, map[string]any{"cta.headline": "Hello"}, true},
	}

	eval := New()
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := eval.Eval("field", tc.rule, visibility.Context{Values: tc.values})
			if err != nil {
				t.Fatalf("Eval returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Eval(%q) = %v, want %v", tc.rule, got, tc.want)
			}
		})
	}
}

func TestEvaluatorExtras(t *testing.T) {
	t.Parallel()

	ok, err := New().Eval("field", "extras.preview", visibility.Context{
		Extras: map[string]any{"preview": true},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected extras lookup to resolve")
	}
}

func TestEvaluatorCompileErrors(t *testing.T) {
	t.Parallel()

	bad := []string{
		`position = "Designer"`,
		`position == "Designer`,
		`position in "Designer"`,
		`position in ("Developer" "Designer")`,
		`position in ("Developer",`,
		`(position == "Designer"`,
		`a & b`,
		`== "x"`,
	}
	eval := New()
	for _, rule := range bad {
		if err := eval.Compile(rule); err == nil {
			t.Errorf("Compile(%q) expected error", rule)
		}
	}
	if err := eval.Compile(`position in ("Developer", "Designer")`); err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
}
