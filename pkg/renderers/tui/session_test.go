package tui_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobform/pkg/application"
	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/renderers/tui"
	"github.com/goliatone/go-jobform/pkg/schema"
	"github.com/goliatone/go-jobform/pkg/testsupport"
)

// stubDriver answers prompts from scripted queues keyed by field label. When a
// queue is empty it accepts the prompt's default.
type stubDriver struct {
	inputs   map[string][]string
	selects  map[string][]int
	multi    map[string][][]int
	inputErr error

	asked []string
	infos []string
}

func newStubDriver() *stubDriver {
	return &stubDriver{
		inputs:  map[string][]string{},
		selects: map[string][]int{},
		multi:   map[string][][]int{},
	}
}

func label(message string) string {
	return strings.TrimSuffix(message, " *")
}

func (s *stubDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	key := label(cfg.Message)
	s.asked = append(s.asked, key)
	if s.inputErr != nil {
		return "", s.inputErr
	}
	queue := s.inputs[key]
	if len(queue) == 0 {
		return cfg.Default, nil
	}
	s.inputs[key] = queue[1:]
	return queue[0], nil
}

func (s *stubDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	key := label(cfg.Message)
	s.asked = append(s.asked, key)
	queue := s.selects[key]
	if len(queue) == 0 {
		return cfg.DefaultIndex, nil
	}
	s.selects[key] = queue[1:]
	return queue[0], nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg tui.SelectConfig) ([]int, error) {
	key := label(cfg.Message)
	s.asked = append(s.asked, key)
	queue := s.multi[key]
	if len(queue) == 0 {
		return cfg.Defaults, nil
	}
	s.multi[key] = queue[1:]
	return queue[0], nil
}

func (s *stubDriver) TextArea(ctx context.Context, cfg tui.TextAreaConfig) (string, error) {
	return s.Input(ctx, tui.InputConfig{Message: cfg.Message, Default: cfg.Default})
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func newController(t *testing.T) *form.Controller {
	t.Helper()
	s, err := schema.New(testsupport.JobApplicationForm(t))
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	c, err := form.New(s)
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	return c
}

func scriptDesigner(driver *stubDriver) {
	driver.inputs["Full Name"] = []string{"Ada Lovelace"}
	driver.inputs["Email"] = []string{"ada@example.com"}
	driver.inputs["Phone Number"] = []string{"555-0100"}
	driver.selects["Applying for Position"] = []int{1}
	driver.inputs["Relevant Experience (Years)"] = []string{"3"}
	driver.inputs["Portfolio URL"] = []string{"https://portfolio.example.com"}
	driver.multi["Additional Skills"] = [][]int{{0, 2}}
	driver.inputs["Preferred Interview Time"] = []string{"2026-11-02T10:30"}
}

func TestSessionAsksOnlyVisibleFields(t *testing.T) {
	driver := newStubDriver()
	scriptDesigner(driver)

	session, err := tui.NewSession(newController(t), tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	result, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	wantAsked := []string{
		"Full Name",
		"Email",
		"Phone Number",
		"Applying for Position",
		"Relevant Experience (Years)",
		"Portfolio URL",
		"Additional Skills",
		"Preferred Interview Time",
	}
	if diff := cmp.Diff(wantAsked, driver.asked); diff != "" {
		t.Fatalf("asked mismatch (-want +got):\n%s", diff)
	}
	if result.Data.Position != application.PositionDesigner {
		t.Fatalf("expected Designer, got %q", result.Data.Position)
	}
	if diff := cmp.Diff([]application.Skill{application.SkillJavaScript, application.SkillPython}, result.Data.AdditionalSkills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
	last := driver.infos[len(driver.infos)-1]
	if !strings.HasPrefix(last, "Form Summary\n") {
		t.Fatalf("expected summary heading, got %q", last)
	}
	if !strings.Contains(last, `"portfolioURL": "https://portfolio.example.com"`) {
		t.Fatalf("expected portfolio in summary, got %q", last)
	}
}

func TestSessionReasksFailingFields(t *testing.T) {
	driver := newStubDriver()
	scriptDesigner(driver)
	driver.inputs["Email"] = []string{"not-an-email", "ada@example.com"}

	session, err := tui.NewSession(newController(t), tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	result, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Data.Email != "ada@example.com" {
		t.Fatalf("expected corrected email, got %q", result.Data.Email)
	}

	var emailPrompts, namePrompts int
	for _, asked := range driver.asked {
		switch asked {
		case "Email":
			emailPrompts++
		case "Full Name":
			namePrompts++
		}
	}
	if emailPrompts != 2 || namePrompts != 1 {
		t.Fatalf("expected email asked twice and name once, got %d and %d", emailPrompts, namePrompts)
	}
	if !strings.Contains(driver.infos[0], "Email: Invalid email format") {
		t.Fatalf("expected email issue, got %q", driver.infos[0])
	}
}

func TestSessionAsksFieldsRevealedDuringRetry(t *testing.T) {
	driver := newStubDriver()
	scriptDesigner(driver)
	driver.selects["Applying for Position"] = []int{-1, 0}

	session, err := tui.NewSession(newController(t), tui.WithPromptDriver(driver), tui.WithMaxAttempts(2))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	result, err := session.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Data.Position != application.PositionDeveloper || result.Data.RelevantExperience != "3" {
		t.Fatalf("unexpected summary data: %+v", result.Data)
	}

	var experiencePrompts int
	for _, asked := range driver.asked {
		if asked == "Relevant Experience (Years)" {
			experiencePrompts++
		}
	}
	if experiencePrompts != 1 {
		t.Fatalf("expected experience asked once after the position changed, got %d", experiencePrompts)
	}
	if !strings.Contains(driver.infos[0], "Applying for Position: Position is required") {
		t.Fatalf("expected position issue, got %q", driver.infos[0])
	}
}

func TestSessionStopsAfterMaxAttempts(t *testing.T) {
	driver := newStubDriver()
	scriptDesigner(driver)
	driver.inputs["Email"] = []string{"nope", "still-nope"}

	session, err := tui.NewSession(newController(t), tui.WithPromptDriver(driver), tui.WithMaxAttempts(2))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	_, err = session.Run(context.Background())
	if !errors.Is(err, tui.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	issues, ok := schema.AsIssues(err)
	if !ok || len(issues.For("email")) == 0 {
		t.Fatalf("expected email issues wrapped, got %v", err)
	}
}

func TestSessionPropagatesAbort(t *testing.T) {
	driver := newStubDriver()
	driver.inputErr = tui.ErrAborted

	session, err := tui.NewSession(newController(t), tui.WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := session.Run(context.Background()); !errors.Is(err, tui.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestNewSessionRequiresController(t *testing.T) {
	if _, err := tui.NewSession(nil); err == nil {
		t.Fatal("expected error for nil controller")
	}
}

func TestRendererPrefillsValues(t *testing.T) {
	driver := newStubDriver()
	renderer := tui.New(tui.WithPromptDriver(driver))

	if !render.IsInteractive(renderer) {
		t.Fatal("expected tui renderer to be interactive")
	}

	values := testsupport.ValidApplication(application.PositionManager).Values()
	out, err := renderer.Render(context.Background(), testsupport.JobApplicationForm(t), render.RenderOptions{Values: values})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, `"position": "Manager"`) {
		t.Fatalf("expected manager summary, got %s", text)
	}
	for _, asked := range driver.asked {
		if asked == "Relevant Experience (Years)" || asked == "Portfolio URL" {
			t.Fatalf("hidden field %q was prompted", asked)
		}
	}
}
