package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", FormatJSON, &buf)
	if log.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", log.GetLevel())
	}
	log.WithField("field", "email").Info("hello")
	if !strings.Contains(buf.String(), `"field":"email"`) {
		t.Fatalf("expected json output, got %q", buf.String())
	}
}

func TestNewTextFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("loud", FormatText, &buf)
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", log.GetLevel())
	}
	log.Info("hello")
	if !strings.Contains(buf.String(), `msg=hello`) {
		t.Fatalf("expected text output, got %q", buf.String())
	}
}
