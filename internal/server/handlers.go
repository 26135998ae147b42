package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-jobform/pkg/application"
	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/model"
	"github.com/goliatone/go-jobform/pkg/orchestrator"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/schema"
	"github.com/goliatone/go-jobform/pkg/summary"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Sessions  int       `json:"sessions"`
}

type fieldRequest struct {
	Value  any    `json:"value"`
	Toggle string `json:"toggle"`
}

type fieldResponse struct {
	Field   string   `json:"field"`
	State   string   `json:"state"`
	Visible []string `json:"visible"`
}

type visibleResponse struct {
	Position string   `json:"position"`
	Visible  []string `json:"visible"`
}

type validateResponse struct {
	Valid   bool                `json:"valid"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Issues  schema.Issues       `json:"issues,omitempty"`
	Summary *summary.Summary    `json:"summary,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: s.now(),
		Sessions:  s.sessions.len(),
	})
}

// showForm renders the session's current record, errors and summary.
func (s *Server) showForm(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	s.renderPage(c, sess.controller, http.StatusOK)
}

// submitForm applies a browser form post to the session and submits it.
func (s *Server) submitForm(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	controller := sess.controller
	for _, field := range s.form.Fields {
		var err error
		if field.Widget == model.WidgetCheckboxes {
			err = controller.SetField(field.Name, c.PostFormArray(field.Name))
		} else if value, posted := c.GetPostForm(field.Name); posted {
			err = controller.SetField(field.Name, value)
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	status := http.StatusOK
	if _, err := controller.Submit(); err != nil {
		if _, isIssues := schema.AsIssues(err); !isIssues {
			_ = c.Error(err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		status = http.StatusUnprocessableEntity
	}
	s.renderPage(c, controller, status)
}

// setField updates one field of the session record. A "toggle" body flips a
// single skill instead of replacing the selection.
func (s *Server) setField(c *gin.Context) {
	name := c.Param("name")
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	sess, ok := s.session(c)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	controller := sess.controller
	var err error
	if req.Toggle != "" && name == application.FieldAdditionalSkills {
		err = toggleSkill(controller, req.Toggle)
	} else {
		err = controller.SetField(name, req.Value)
	}
	switch {
	case errors.Is(err, form.ErrUnknownField):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case errors.Is(err, form.ErrInvalidValue):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, fieldResponse{
		Field:   name,
		State:   controller.State().String(),
		Visible: controller.VisibleFields(),
	})
}

// visible reports the visible conditional fields. A position query parameter
// asks about that position without touching any session.
func (s *Server) visible(c *gin.Context) {
	if position, ok := c.GetQuery(application.FieldPosition); ok {
		visible, err := s.schema.VisibleFields(map[string]any{application.FieldPosition: position})
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, visibleResponse{Position: position, Visible: visible})
		return
	}

	sess, ok := s.session(c)
	if !ok {
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	c.JSON(http.StatusOK, visibleResponse{
		Position: string(sess.controller.Data().Position),
		Visible:  sess.controller.VisibleFields(),
	})
}

// validate runs the schema over a JSON record without any session state.
func (s *Server) validate(c *gin.Context) {
	var values map[string]any
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body"})
		return
	}

	if issues := s.schema.Validate(values); len(issues) > 0 {
		c.JSON(http.StatusUnprocessableEntity, validateResponse{
			Errors: issues.ByField(),
			Issues: issues,
		})
		return
	}

	data, err := application.FromValues(values)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	accepted := summary.New(data, s.now())
	c.JSON(http.StatusOK, validateResponse{Valid: true, Summary: &accepted})
}

func (s *Server) renderPage(c *gin.Context, controller *form.Controller, status int) {
	options := render.RenderOptions{Action: "/", Values: controller.Values()}
	if issues := controller.Errors(); len(issues) > 0 {
		render.FromIssues(s.form, issues).Apply(&options)
	}
	if accepted, ok := controller.Summary(); ok {
		options.Summary = &accepted
	}

	out, err := s.orch.Generate(c.Request.Context(), orchestrator.Request{
		Source:        s.opts.Source,
		OperationID:   s.opts.OperationID,
		RenderOptions: options,
	})
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, "text/html; charset=utf-8", out)
}

// session resolves the caller's session from its cookie, issuing a new one
// when needed.
func (s *Server) session(c *gin.Context) (*session, bool) {
	current, _ := c.Cookie(sessionCookie)
	id, sess, err := s.sessions.get(current)
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return nil, false
	}
	if id != current {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, int(sessionTTL/time.Second), "/", "", s.opts.Production, true)
	}
	return sess, true
}

func toggleSkill(controller *form.Controller, raw string) error {
	skill := application.Skill(raw)
	for _, known := range application.Skills {
		if known == skill {
			controller.ToggleSkill(skill)
			return nil
		}
	}
	return form.ErrInvalidValue
}
