package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/schema"
	"github.com/goliatone/go-jobform/pkg/summary"
	"github.com/goliatone/go-jobform/pkg/visibility"
)

// SummaryHeading is printed above the submitted record.
const SummaryHeading = "Form Summary"

// Session walks a user through a form controller on the terminal. Fields are
// asked in form order; conditional fields are asked only while their rule
// holds for the answers given so far. After a rejected submit only the
// failing fields are asked again, plus any conditional field a changed answer
// reveals.
type Session struct {
	controller *form.Controller
	settings   settings
}

// NewSession prepares a session over controller.
func NewSession(controller *form.Controller, opts ...Option) (*Session, error) {
	if controller == nil {
		return nil, errors.New("tui: controller is required")
	}
	return &Session{controller: controller, settings: newSettings(opts)}, nil
}

// Run prompts until the controller accepts a submission and returns its
// summary.
func (s *Session) Run(ctx context.Context) (summary.Summary, error) {
	fields := s.controller.Schema().Form().Fields
	pending := make([]string, 0, len(fields))
	for _, field := range fields {
		pending = append(pending, field.Name)
	}

	logger := s.settings.logger
	for attempt := 1; ; attempt++ {
		for _, field := range fields {
			if !slices.Contains(pending, field.Name) {
				continue
			}
			visible, err := s.visible(field)
			if err != nil {
				return summary.Summary{}, err
			}
			if !visible {
				continue
			}
			before, err := s.visibleConditional()
			if err != nil {
				return summary.Summary{}, err
			}
			if err := s.askField(ctx, field); err != nil {
				return summary.Summary{}, err
			}
			after, err := s.visibleConditional()
			if err != nil {
				return summary.Summary{}, err
			}
			// fields revealed by this answer are asked in the same pass
			for _, name := range after {
				if !slices.Contains(before, name) && !slices.Contains(pending, name) {
					pending = append(pending, name)
				}
			}
		}

		result, err := s.controller.Submit()
		if err == nil {
			logger.WithField("summary", result.ID).Info("tui session submitted")
			return result, s.printSummary(ctx, result)
		}
		issues, ok := schema.AsIssues(err)
		if !ok {
			return summary.Summary{}, err
		}

		logger.WithFields(logrus.Fields{
			"attempt": attempt,
			"fields":  issues.Fields(),
		}).Debug("tui submission rejected")
		if s.settings.maxAttempts > 0 && attempt >= s.settings.maxAttempts {
			return summary.Summary{}, fmt.Errorf("%w: %w", ErrTooManyAttempts, issues)
		}
		if err := s.printIssues(ctx, issues); err != nil {
			return summary.Summary{}, err
		}
		pending = issues.Fields()
	}
}

func (s *Session) visibleConditional() ([]string, error) {
	ctx := visibility.Context{Values: s.controller.Values()}
	return visibility.VisibleConditional(s.controller.Schema().Form(), s.controller.Schema().Evaluator(), ctx)
}

func (s *Session) visible(field model.Field) (bool, error) {
	ctx := visibility.Context{Values: s.controller.Values()}
	return visibility.IsVisible(field, s.controller.Schema().Evaluator(), ctx)
}

// askField prompts until the controller accepts the value's shape.
func (s *Session) askField(ctx context.Context, field model.Field) error {
	for {
		value, err := s.prompt(ctx, field)
		if err != nil {
			return err
		}
		err = s.controller.SetField(field.Name, value)
		if err == nil {
			return nil
		}
		if !errors.Is(err, form.ErrInvalidValue) {
			return err
		}
		if err := s.settings.driver.Info(ctx, "  "+err.Error()); err != nil {
			return err
		}
	}
}

func (s *Session) prompt(ctx context.Context, field model.Field) (any, error) {
	driver := s.settings.driver
	current, _ := s.controller.Data().Get(field.Name)
	label := promptLabel(field)

	switch field.Widget {
	case model.WidgetSelect:
		options := field.Options()
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: slices.Index(options, fmt.Sprint(current)),
			Help:         field.Placeholder,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(options) {
			return "", nil
		}
		return options[idx], nil
	case model.WidgetCheckboxes:
		options := field.Options()
		var defaults []int
		if selected, ok := current.([]string); ok {
			for _, value := range selected {
				if idx := slices.Index(options, value); idx >= 0 {
					defaults = append(defaults, idx)
				}
			}
		}
		picked, err := driver.MultiSelect(ctx, SelectConfig{
			Message:  label,
			Options:  options,
			Defaults: defaults,
			Help:     field.Description,
		})
		if err != nil {
			return nil, err
		}
		values := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(options) {
				values = append(values, options[idx])
			}
		}
		return values, nil
	case model.WidgetTextArea:
		text, err := driver.TextArea(ctx, TextAreaConfig{
			Message: label,
			Default: textValue(current),
			Help:    field.Description,
		})
		return strings.TrimSpace(text), err
	default:
		text, err := driver.Input(ctx, InputConfig{
			Message: label,
			Default: textValue(current),
			Help:    inputHelp(field),
		})
		return strings.TrimSpace(text), err
	}
}

func (s *Session) printIssues(ctx context.Context, issues schema.Issues) error {
	formModel := s.controller.Schema().Form()
	lines := []string{"Please fix the following:"}
	for _, issue := range issues {
		label := issue.Field
		if field, ok := formModel.Field(issue.Field); ok && field.Label != "" {
			label = field.Label
		}
		lines = append(lines, fmt.Sprintf("  %s: %s", label, issue.Message))
	}
	return s.settings.driver.Info(ctx, strings.Join(lines, "\n"))
}

func (s *Session) printSummary(ctx context.Context, result summary.Summary) error {
	text, err := result.Text()
	if err != nil {
		return err
	}
	heading := SummaryHeading
	if title := s.controller.Schema().Form().Metadata["summaryTitle"]; title != "" {
		heading = title
	}
	return s.settings.driver.Info(ctx, heading+"\n"+text)
}

func promptLabel(field model.Field) string {
	label := field.Label
	if label == "" {
		label = field.Name
	}
	if field.Required || field.Conditional() {
		label += " *"
	}
	return label
}

func inputHelp(field model.Field) string {
	if field.Description != "" {
		return field.Description
	}
	switch field.InputType {
	case "datetime-local":
		return "YYYY-MM-DDTHH:MM"
	case "url":
		return "https://..."
	}
	return field.Placeholder
}

func textValue(value any) string {
	if value == nil {
		return ""
	}
	if text, ok := value.(string); ok {
		return text
	}
	return fmt.Sprint(value)
}
