// Package form implements the controller that owns a job application while
// it is being filled in.
package form

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-jobform/pkg/application"
	"github.com/goliatone/go-jobform/pkg/schema"
	"github.com/goliatone/go-jobform/pkg/summary"
)

var (
	// ErrUnknownField is returned by SetField for names the form does not
	// declare.
	ErrUnknownField = application.ErrUnknownField
	// ErrInvalidValue is returned by SetField for values of the wrong shape.
	ErrInvalidValue = application.ErrInvalidValue
)

// Controller holds the record being edited, derives which conditional fields
// are visible and runs the validation schema on submit. A Controller is not
// safe for concurrent use; callers serialise events per session.
type Controller struct {
	schema *schema.Schema

	data    application.FormData
	state   State
	issues  schema.Issues
	summary summary.Summary
	visible []string

	watched   string
	observers []VisibilityObserver
	logger    logrus.FieldLogger
	clock     func() time.Time
	nextID    func() string
}

// New returns a controller in the Editing state with an empty record.
func New(s *schema.Schema, opts ...Option) (*Controller, error) {
	if s == nil {
		return nil, errors.New("form: schema is required")
	}
	c := &Controller{schema: s}
	defaults(c)
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if _, ok := s.Form().Field(c.watched); !ok {
		return nil, fmt.Errorf("form: watched field %q is not declared", c.watched)
	}
	c.Reset()
	return c, nil
}

// SetField assigns one field. Any edit returns the controller to Editing.
// When name is the watched field the visible set is re-derived and observers
// are told if it changed.
func (c *Controller) SetField(name string, value any) error {
	if _, ok := c.schema.Form().Field(name); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if err := c.data.Set(name, value); err != nil {
		return err
	}
	c.touch()
	c.logger.WithField("field", name).Debug("form field updated")

	if name == c.watched {
		c.refreshVisibility()
	}
	return nil
}

// ToggleSkill selects skill, or deselects it when already selected.
func (c *Controller) ToggleSkill(skill application.Skill) {
	skills := c.data.AdditionalSkills
	if i := slices.Index(skills, skill); i >= 0 {
		c.data.AdditionalSkills = slices.Delete(slices.Clone(skills), i, i+1)
	} else {
		c.data.AdditionalSkills = append(slices.Clone(skills), skill)
	}
	c.touch()
	c.logger.WithField("field", application.FieldAdditionalSkills).Debug("form skill toggled")
}

// VisibleFields returns the conditional fields that should render for the
// current record, in form order. It is derived on every call.
func (c *Controller) VisibleFields() []string {
	visible, err := c.schema.VisibleFields(c.data.Values())
	if err != nil {
		c.logger.WithError(err).Error("form visibility evaluation failed")
		return []string{}
	}
	return visible
}

// Submit validates the whole record. On failure it returns schema.Issues and
// keeps the previous summary. On success it snapshots the record, moves to
// Submitted and returns the new summary.
func (c *Controller) Submit() (summary.Summary, error) {
	issues := c.schema.Validate(c.data.Values())
	if len(issues) > 0 {
		c.issues = issues
		c.logger.WithFields(logrus.Fields{
			"position": c.data.Position,
			"issues":   len(issues),
		}).Info("form submission rejected")
		return summary.Summary{}, issues
	}

	c.issues = nil
	c.summary = summary.New(c.data, c.clock())
	c.summary.ID = c.nextID()
	if c.summary.ID == "" {
		c.summary.ID = uuid.NewString()
	}
	c.state = Submitted
	c.logger.WithFields(logrus.Fields{
		"position": c.data.Position,
		"summary":  c.summary.ID,
	}).Info("form submitted")
	return c.summary, nil
}

// Reset clears the record, errors and summary.
func (c *Controller) Reset() {
	c.data = application.New()
	c.state = Editing
	c.issues = nil
	c.summary = summary.Summary{}
	c.visible = c.VisibleFields()
}

// Data returns a copy of the record.
func (c *Controller) Data() application.FormData {
	return c.data.Clone()
}

// Values returns the record in the map shape renderers consume.
func (c *Controller) Values() map[string]any {
	return c.data.Values()
}

// Errors returns the issues of the last rejected submit. Successful submits
// clear them.
func (c *Controller) Errors() schema.Issues {
	return slices.Clone(c.issues)
}

// State reports the lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Summary returns the last accepted submission, if any. Edits do not clear
// it.
func (c *Controller) Summary() (summary.Summary, bool) {
	if c.summary.IsZero() {
		return summary.Summary{}, false
	}
	out := c.summary
	out.Data = c.summary.Data.Clone()
	return out, true
}

// Schema exposes the validation schema the controller runs.
func (c *Controller) Schema() *schema.Schema {
	return c.schema
}

func (c *Controller) touch() {
	if c.state != Editing {
		c.logger.Debug("form editing resumed")
	}
	c.state = Editing
}

func (c *Controller) refreshVisibility() {
	visible := c.VisibleFields()
	if slices.Equal(visible, c.visible) {
		return
	}
	c.visible = visible
	c.logger.WithFields(logrus.Fields{
		"position": c.data.Position,
		"visible":  visible,
	}).Debug("form visibility changed")
	for _, observer := range c.observers {
		observer(slices.Clone(visible))
	}
}
