// Package server exposes the job application form over HTTP: an HTML page
// backed by a per-session form controller and a small JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/goliatone/go-jobform/pkg/model"
	pkgopenapi "github.com/goliatone/go-jobform/pkg/openapi"
	"github.com/goliatone/go-jobform/pkg/orchestrator"
	"github.com/goliatone/go-jobform/pkg/schema"
)

const (
	sessionCookie   = "jobform_session"
	sessionTTL      = 2 * time.Hour
	shutdownTimeout = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	Addr        string
	Production  bool
	Rate        limiter.Rate
	Logger      logrus.FieldLogger
	Source      pkgopenapi.Source
	OperationID string
	// Orchestrator renders pages. Defaults to orchestrator.New().
	Orchestrator *orchestrator.Orchestrator
}

// Server serves the form.
type Server struct {
	opts     Options
	engine   *gin.Engine
	orch     *orchestrator.Orchestrator
	form     model.FormModel
	schema   *schema.Schema
	sessions *sessionStore
	logger   logrus.FieldLogger
	now      func() time.Time
}

// New loads the form once, compiles its schema and wires the routes.
func New(ctx context.Context, opts Options) (*Server, error) {
	if opts.Source == nil {
		return nil, errors.New("server: form source is required")
	}
	if opts.OperationID == "" {
		return nil, errors.New("server: operation id is required")
	}
	if opts.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		opts.Logger = discard
	}
	if opts.Orchestrator == nil {
		opts.Orchestrator = orchestrator.New(orchestrator.WithLogger(opts.Logger))
	}

	formModel, err := opts.Orchestrator.Form(ctx, orchestrator.Request{
		Source:      opts.Source,
		OperationID: opts.OperationID,
	})
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	compiled, err := schema.New(formModel, schema.WithEvaluator(opts.Orchestrator.Evaluator()))
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		opts:     opts,
		orch:     opts.Orchestrator,
		form:     formModel,
		schema:   compiled,
		sessions: newSessionStore(compiled, opts.Logger, sessionTTL),
		logger:   opts.Logger,
		now:      time.Now,
	}
	s.engine = s.routes()
	return s, nil
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	if s.opts.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(s.logger))

	r.GET("/healthz", s.health)
	r.GET("/", s.showForm)

	r.GET("/api/visible", s.visible)

	writes := r.Group("/")
	if s.opts.Rate.Limit > 0 {
		writes.Use(rateLimit(s.opts.Rate))
	}
	writes.POST("/", s.submitForm)
	writes.POST("/fields/:name", s.setField)
	writes.POST("/api/validate", s.validate)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully. Idle
// sessions are swept periodically.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.opts.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ticker := time.NewTicker(sessionTTL / 4)
	defer ticker.Stop()

	for {
		select {
		case err, ok := <-errCh:
			if ok {
				return fmt.Errorf("server: %w", err)
			}
			return nil
		case <-ticker.C:
			if removed := s.sessions.sweep(); removed > 0 {
				s.logger.WithField("removed", removed).Debug("idle sessions swept")
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			s.logger.Info("server shutting down")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server: shutdown: %w", err)
			}
			return nil
		}
	}
}
