package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/schema"
)

var flatForm = model.FormModel{
	Fields: []model.Field{
		{Name: "fullName", Type: model.FieldTypeString},
		{Name: "email", Type: model.FieldTypeString},
		{Name: "additionalSkills", Type: model.FieldTypeArray},
	},
}

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"/body/fullName":        {"Full Name is required"},
		"$.email":               {"Invalid email format", " Invalid email format "},
		"additionalSkills[0]":   {"Unknown skill"},
		"request/body/salary":   {"Should fall back to form errors"},
		"":                      {"Unscoped form error"},
		"request.payload.empty": {"  "},
	}

	mapped := render.MapErrorPayload(flatForm, payload)

	wantFields := map[string][]string{
		"fullName":         {"Full Name is required"},
		"email":            {"Invalid email format"},
		"additionalSkills": {"Unknown skill"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	wantForm := []string{"Unscoped form error", "Should fall back to form errors"}
	if diff := cmp.Diff(wantForm, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFromIssuesApply(t *testing.T) {
	issues := schema.Issues{
		{Field: "email", Code: schema.CodeInvalidFormat, Message: "Invalid email format"},
		{Field: "fullName", Code: schema.CodeRequired, Message: "Full Name is required"},
	}
	options := render.RenderOptions{FormErrors: []string{"Try again"}}
	render.FromIssues(flatForm, issues).Apply(&options)

	want := map[string][]string{
		"email":    {"Invalid email format"},
		"fullName": {"Full Name is required"},
	}
	if diff := cmp.Diff(want, options.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Try again"}, options.FormErrors); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
