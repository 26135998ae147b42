package model

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-jobform/pkg/openapi"
)

func ptr[T any](v T) *T { return &v }

func applicationOperation() pkgopenapi.Operation {
	return pkgopenapi.Operation{
		ID:      "apply",
		Method:  "post",
		Path:    "/apply",
		Summary: "Apply",
		Extensions: map[string]any{
			"x-formgen": map[string]any{"submitLabel": "Send"},
		},
		RequestBody: pkgopenapi.Schema{
			Type:     "object",
			Required: []string{"role", "skills"},
			Properties: map[string]pkgopenapi.Schema{
				"role": {
					Type: "string",
					Enum: []any{"Developer", "Manager"},
					Extensions: map[string]any{"x-formgen": map[string]any{
						"order":    float64(1),
						"messages": map[string]any{"required": "Pick a role"},
					}},
				},
				"years": {
					Type:    "number",
					Minimum: ptr(1.0),
					Extensions: map[string]any{"x-formgen": map[string]any{
						"order":       float64(2),
						"label":       "Years",
						"visibleWhen": ` role == "Developer" `,
					}},
				},
				"skills": {
					Type:     "array",
					MinItems: ptr(1),
					Items:    &pkgopenapi.Schema{Type: "string", Enum: []any{"Go", "CSS"}},
					Extensions: map[string]any{"x-formgen": map[string]any{
						"order": float64(3),
						"help":  "pick any",
					}},
				},
				"contactURL": {Type: "string", Format: "uri"},
			},
		},
	}
}

func TestBuild_OrdersAndDecoratesFields(t *testing.T) {
	form, err := New(Options{}).Build(applicationOperation())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if form.Method != "POST" {
		t.Fatalf("expected upper-cased method, got %q", form.Method)
	}
	if diff := cmp.Diff(map[string]string{"submitLabel": "Send"}, form.Metadata); diff != "" {
		t.Fatalf("form metadata mismatch (-want +got):\n%s", diff)
	}
	// contactURL has no order hint (0) so it sorts first.
	if diff := cmp.Diff([]string{"contactURL", "role", "years", "skills"}, form.FieldNames()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	role, _ := form.Field("role")
	if !role.Required || role.Widget != WidgetSelect {
		t.Fatalf("unexpected role field %+v", role)
	}
	if role.Messages["required"] != "Pick a role" {
		t.Fatalf("expected message override, got %v", role.Messages)
	}

	years, _ := form.Field("years")
	if years.Required || !years.Conditional() || years.VisibleWhen != `role == "Developer"` {
		t.Fatalf("unexpected years field %+v", years)
	}
	if rule, ok := years.Rule(ValidationRuleMin); !ok || rule.Params["value"] != "1" {
		t.Fatalf("expected min rule, got %+v", years.Validations)
	}
	if years.Label != "Years" || years.Widget != WidgetNumber {
		t.Fatalf("unexpected years presentation %+v", years)
	}

	skills, _ := form.Field("skills")
	if skills.Widget != WidgetCheckboxes {
		t.Fatalf("expected checkboxes widget, got %q", skills.Widget)
	}
	if diff := cmp.Diff([]string{"Go", "CSS"}, skills.Options()); diff != "" {
		t.Fatalf("skills options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"help": "pick any"}, skills.Metadata); diff != "" {
		t.Fatalf("skills metadata mismatch (-want +got):\n%s", diff)
	}

	contact, _ := form.Field("contactURL")
	if contact.Label != "Contact URL" {
		t.Fatalf("expected default label, got %q", contact.Label)
	}
}

func TestBuild_RejectsRequiredConditionalField(t *testing.T) {
	op := applicationOperation()
	op.RequestBody.Required = append(op.RequestBody.Required, "years")

	_, err := New(Options{}).Build(op)
	if err == nil || !strings.Contains(err.Error(), "both required and conditional") {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestBuild_RejectsNestedObjects(t *testing.T) {
	op := applicationOperation()
	op.RequestBody.Properties["address"] = pkgopenapi.Schema{Type: "object"}

	_, err := New(Options{}).Build(op)
	if err == nil || !strings.Contains(err.Error(), "nested objects") {
		t.Fatalf("expected nested object error, got %v", err)
	}
}

func TestBuild_RequiresOperationID(t *testing.T) {
	op := applicationOperation()
	op.ID = ""
	if _, err := New(Options{}).Build(op); err != errOperationIDMissing {
		t.Fatalf("expected errOperationIDMissing, got %v", err)
	}
}

func TestBuild_RejectsUnresolvedReferences(t *testing.T) {
	op := applicationOperation()
	op.RequestBody.Properties["team"] = pkgopenapi.Schema{Ref: "#/components/schemas/Team"}

	_, err := New(Options{}).Build(op)
	if err == nil || !strings.Contains(err.Error(), "unresolved schema reference #/components/schemas/Team") {
		t.Fatalf("expected unresolved reference error, got %v", err)
	}
}
