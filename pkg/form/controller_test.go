package form_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobform/pkg/application"
	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/schema"
	"github.com/goliatone/go-jobform/pkg/testsupport"
)

var fixedTime = time.Date(2026, 10, 19, 14, 0, 0, 0, time.UTC)

func newController(t *testing.T, opts ...form.Option) *form.Controller {
	t.Helper()

	s, err := schema.New(testsupport.JobApplicationForm(t))
	if err != nil {
		t.Fatalf("schema.New: %v", err)
	}
	opts = append([]form.Option{
		form.WithClock(func() time.Time { return fixedTime }),
		form.WithIDGenerator(func() string { return "summary-1" }),
	}, opts...)
	c, err := form.New(s, opts...)
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	return c
}

func fill(t *testing.T, c *form.Controller, data application.FormData) {
	t.Helper()

	for name, value := range data.Values() {
		if err := c.SetField(name, value); err != nil {
			t.Fatalf("SetField(%q): %v", name, err)
		}
	}
}

func TestController_InitialState(t *testing.T) {
	c := newController(t)

	if c.State() != form.Editing {
		t.Fatalf("state = %v, want editing", c.State())
	}
	if diff := cmp.Diff(application.New(), c.Data()); diff != "" {
		t.Fatalf("initial data mismatch (-want +got):\n%s", diff)
	}
	if got := c.VisibleFields(); len(got) != 0 || got == nil {
		t.Fatalf("VisibleFields() = %#v, want empty non-nil", got)
	}
	if _, ok := c.Summary(); ok {
		t.Fatalf("new controller must not have a summary")
	}
}

func TestController_VisibleFieldsPerPosition(t *testing.T) {
	c := newController(t)

	cases := []struct {
		position string
		want     []string
	}{
		{"Developer", []string{"relevantExperience"}},
		{"Designer", []string{"relevantExperience", "portfolioURL"}},
		{"Manager", []string{"managementExperience"}},
		{"", []string{}},
	}
	for _, tc := range cases {
		if err := c.SetField("position", tc.position); err != nil {
			t.Fatalf("SetField: %v", err)
		}
		if diff := cmp.Diff(tc.want, c.VisibleFields()); diff != "" {
			t.Errorf("%q: visible mismatch (-want +got):\n%s", tc.position, diff)
		}
	}
}

func TestController_ObserverNotifiedOnChange(t *testing.T) {
	var notifications [][]string
	c := newController(t, form.WithVisibilityObserver(func(visible []string) {
		notifications = append(notifications, visible)
	}))

	steps := []struct{ field, value string }{
		{"position", "Developer"},
		{"fullName", "Ada"},
		{"position", "Developer"},
		{"position", "Designer"},
		{"position", "Manager"},
	}
	for _, step := range steps {
		if err := c.SetField(step.field, step.value); err != nil {
			t.Fatalf("SetField(%q): %v", step.field, err)
		}
	}

	want := [][]string{
		{"relevantExperience"},
		{"relevantExperience", "portfolioURL"},
		{"managementExperience"},
	}
	if diff := cmp.Diff(want, notifications); diff != "" {
		t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestController_SetFieldErrors(t *testing.T) {
	c := newController(t)

	if err := c.SetField("salary", "100"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := c.SetField("email", 12); !errors.Is(err, form.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestController_SubmitDeveloperZeroExperience(t *testing.T) {
	c := newController(t)

	data := testsupport.ValidApplication(application.PositionDeveloper)
	data.RelevantExperience = "0"
	fill(t, c, data)

	_, err := c.Submit()
	issues, ok := schema.AsIssues(err)
	if !ok {
		t.Fatalf("expected schema.Issues, got %v", err)
	}
	want := map[string][]string{"relevantExperience": {"Must be greater than 0"}}
	if diff := cmp.Diff(want, issues.ByField()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if c.State() != form.Editing {
		t.Fatalf("rejected submit must stay in editing, got %v", c.State())
	}
	if diff := cmp.Diff(issues, c.Errors()); diff != "" {
		t.Fatalf("Errors() mismatch (-want +got):\n%s", diff)
	}
}

func TestController_SubmitRejectsPaddedPosition(t *testing.T) {
	c := newController(t)

	fill(t, c, testsupport.ValidApplication(application.PositionDesigner))
	for name, value := range map[string]any{
		application.FieldPosition:           " Designer",
		application.FieldPortfolioURL:       "",
		application.FieldRelevantExperience: "",
	} {
		if err := c.SetField(name, value); err != nil {
			t.Fatalf("SetField(%q): %v", name, err)
		}
	}
	if got := c.VisibleFields(); len(got) != 0 {
		t.Fatalf("VisibleFields() = %v, want none", got)
	}

	_, err := c.Submit()
	issues, ok := schema.AsIssues(err)
	if !ok {
		t.Fatalf("expected schema.Issues, got %v", err)
	}
	if diff := cmp.Diff([]string{application.FieldPosition}, issues.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if _, ok := c.Summary(); ok {
		t.Fatalf("rejected submit must not produce a summary")
	}
}

func TestController_SubmitRejectsNonDecimalExperience(t *testing.T) {
	for _, raw := range []string{"NaN", "1_0", "0x1p4"} {
		t.Run(raw, func(t *testing.T) {
			c := newController(t)

			data := testsupport.ValidApplication(application.PositionDeveloper)
			data.RelevantExperience = raw
			fill(t, c, data)

			_, err := c.Submit()
			issues, _ := schema.AsIssues(err)
			want := map[string][]string{"relevantExperience": {"Must be a number"}}
			if diff := cmp.Diff(want, issues.ByField()); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestController_SummaryWithZeroClock(t *testing.T) {
	c := newController(t, form.WithClock(func() time.Time { return time.Time{} }))

	fill(t, c, testsupport.ValidApplication(application.PositionManager))
	if _, err := c.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	got, ok := c.Summary()
	if !ok {
		t.Fatalf("accepted submit must be visible through Summary()")
	}
	if got.ID != "summary-1" {
		t.Fatalf("summary id = %q", got.ID)
	}
}

func TestController_SubmitDesignerMissingPortfolio(t *testing.T) {
	c := newController(t)

	data := testsupport.ValidApplication(application.PositionDesigner)
	data.PortfolioURL = ""
	fill(t, c, data)

	_, err := c.Submit()
	issues, _ := schema.AsIssues(err)
	want := map[string][]string{"portfolioURL": {"Portfolio URL is required"}}
	if diff := cmp.Diff(want, issues.ByField()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestController_SubmitManagerMissingManagementExperience(t *testing.T) {
	c := newController(t)

	data := testsupport.ValidApplication(application.PositionManager)
	data.ManagementExperience = ""
	fill(t, c, data)

	_, err := c.Submit()
	issues, _ := schema.AsIssues(err)
	want := map[string][]string{"managementExperience": {"Management Experience is required"}}
	if diff := cmp.Diff(want, issues.ByField()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestController_SubmitWithoutSkillsAlwaysFails(t *testing.T) {
	for _, position := range application.Positions {
		c := newController(t)
		data := testsupport.ValidApplication(position)
		data.AdditionalSkills = nil
		fill(t, c, data)

		_, err := c.Submit()
		issues, _ := schema.AsIssues(err)
		if len(issues.For("additionalSkills")) == 0 {
			t.Errorf("%s: expected additionalSkills error, got %v", position, err)
		}
	}
}

func TestController_SubmitValidEveryPosition(t *testing.T) {
	for _, position := range application.Positions {
		c := newController(t)
		data := testsupport.ValidApplication(position)
		fill(t, c, data)

		got, err := c.Submit()
		if err != nil {
			t.Fatalf("%s: Submit: %v", position, err)
		}
		if diff := cmp.Diff(data, got.Data); diff != "" {
			t.Fatalf("%s: summary mismatch (-want +got):\n%s", position, diff)
		}
		if !got.SubmittedAt.Equal(fixedTime) || got.ID != "summary-1" {
			t.Fatalf("%s: unexpected summary metadata %+v", position, got)
		}
		if c.State() != form.Submitted {
			t.Fatalf("%s: state = %v, want submitted", position, c.State())
		}
		if len(c.Errors()) != 0 {
			t.Fatalf("%s: errors not cleared", position)
		}
	}
}

func TestController_EditAfterSubmitKeepsSummary(t *testing.T) {
	c := newController(t)
	data := testsupport.ValidApplication(application.PositionManager)
	fill(t, c, data)
	if _, err := c.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := c.SetField("fullName", "Grace Hopper"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if c.State() != form.Editing {
		t.Fatalf("edit must resume editing, got %v", c.State())
	}
	shown, ok := c.Summary()
	if !ok {
		t.Fatalf("summary cleared by edit")
	}
	if shown.Data.FullName != data.FullName {
		t.Fatalf("summary changed by edit: %q", shown.Data.FullName)
	}

	// a rejected resubmit keeps the last accepted summary
	if err := c.SetField("email", "broken"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if _, err := c.Submit(); err == nil {
		t.Fatalf("expected rejected submit")
	}
	if shown, _ = c.Summary(); shown.Data.Email != data.Email {
		t.Fatalf("summary replaced by rejected submit")
	}
}

func TestController_ToggleSkill(t *testing.T) {
	c := newController(t)

	c.ToggleSkill(application.SkillCSS)
	c.ToggleSkill(application.SkillPython)
	c.ToggleSkill(application.SkillCSS)

	want := []application.Skill{application.SkillPython}
	if diff := cmp.Diff(want, c.Data().AdditionalSkills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
}

func TestController_Reset(t *testing.T) {
	c := newController(t)
	fill(t, c, testsupport.ValidApplication(application.PositionDeveloper))
	if _, err := c.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	c.Reset()
	if c.State() != form.Editing {
		t.Fatalf("state = %v after reset", c.State())
	}
	if _, ok := c.Summary(); ok {
		t.Fatalf("summary survived reset")
	}
	if len(c.VisibleFields()) != 0 {
		t.Fatalf("visible fields survived reset")
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := form.New(nil); err == nil {
		t.Fatalf("expected error for nil schema")
	}
	s, err := schema.New(testsupport.JobApplicationForm(t))
	if err != nil {
		t.Fatalf("schema.New: %v", err)
	}
	if _, err := form.New(s, form.WithWatchedField("department")); err == nil {
		t.Fatalf("expected error for undeclared watched field")
	}
}

func TestStateString(t *testing.T) {
	if form.Editing.String() != "editing" || form.Submitted.String() != "submitted" {
		t.Fatalf("unexpected state names")
	}
}
