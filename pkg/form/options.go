package form

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-jobform/pkg/application"
)

// VisibilityObserver is notified with the new visible set whenever a change
// to the watched field alters it.
type VisibilityObserver func(visible []string)

// Option customises a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp summaries.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithIDGenerator overrides how summary ids are generated.
func WithIDGenerator(next func() string) Option {
	return func(c *Controller) {
		if next != nil {
			c.nextID = next
		}
	}
}

// WithVisibilityObserver registers an observer for visible-set changes.
func WithVisibilityObserver(observer VisibilityObserver) Option {
	return func(c *Controller) {
		if observer != nil {
			c.observers = append(c.observers, observer)
		}
	}
}

// WithWatchedField changes the field whose edits re-derive visibility.
func WithWatchedField(name string) Option {
	return func(c *Controller) {
		if name != "" {
			c.watched = name
		}
	}
}

func defaultLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func defaults(c *Controller) {
	c.logger = defaultLogger()
	c.clock = time.Now
	c.nextID = uuid.NewString
	c.watched = application.FieldPosition
}
