// Package validation provides the format checks the validation schema applies
// to string fields.
package validation

import (
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// Formats understood by Check. Unknown formats always pass.
const (
	FormatEmail    = "email"
	FormatURI      = "uri"
	FormatURL      = "url"
	FormatDateTime = "date-time"
	FormatDate     = "date"
)

// DateTimeLayouts are accepted for date-time values, in order. The first
// matches RFC 3339; the rest cover browser datetime-local inputs.
var DateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Check reports whether value satisfies format.
func Check(format, value string) bool {
	value = strings.TrimSpace(value)
	switch format {
	case FormatEmail:
		return instance().Var(value, "required,email") == nil
	case FormatURI, FormatURL:
		return instance().Var(value, "required,url") == nil
	case FormatDateTime:
		_, ok := ParseDateTime(value)
		return ok
	case FormatDate:
		_, err := time.Parse(time.DateOnly, value)
		return err == nil
	default:
		return true
	}
}

// ParseDateTime parses value with the first matching layout in
// DateTimeLayouts.
func ParseDateTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range DateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseNumber parses plain decimal text such as "3", "-1" or "2.5". Go
// literal forms accepted by strconv ("NaN", "Inf", "1_0", "0x1p4") and
// exponents are rejected.
func ParseNumber(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if instance().Var(value, "required,numeric") != nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
