package tui

import (
	"io"

	"github.com/sirupsen/logrus"
)

const defaultMaxAttempts = 5

// Option configures the TUI renderer and sessions.
type Option func(*settings)

type settings struct {
	driver      PromptDriver
	logger      logrus.FieldLogger
	maxAttempts int
}

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *settings) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithLogger sets the logger used for session events.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMaxAttempts bounds how many rejected submits a session tolerates.
// Zero or negative means unlimited.
func WithMaxAttempts(n int) Option {
	return func(s *settings) {
		s.maxAttempts = n
	}
}

func newSettings(options []Option) settings {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	s := settings{logger: discard, maxAttempts: defaultMaxAttempts}
	for _, opt := range options {
		if opt != nil {
			opt(&s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver()
	}
	return s
}
