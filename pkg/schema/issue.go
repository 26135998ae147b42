package schema

import (
	"errors"
	"strings"
)

// Issue codes.
const (
	CodeRequired            = "required"
	CodeConditionalRequired = "conditional_required"
	CodeInvalidType         = "invalid_type"
	CodeInvalidFormat       = "invalid_format"
	CodeInvalidEnum         = "invalid_enum"
	CodeTooSmall            = "too_small"
	CodeTooBig              = "too_big"
)

// Issue is a single violation attached to a field.
type Issue struct {
	Field   string            `json:"field"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Params  map[string]string `json:"params,omitempty"`
}

// Issues is the result of a validation pass. A non-empty Issues is an error.
type Issues []Issue

func (is Issues) Error() string {
	parts := make([]string, 0, len(is))
	for _, issue := range is {
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return "schema: " + strings.Join(parts, "; ")
}

// Err returns is as an error, or nil when there are no issues.
func (is Issues) Err() error {
	if len(is) == 0 {
		return nil
	}
	return is
}

// ByField groups the messages by field name.
func (is Issues) ByField() map[string][]string {
	out := make(map[string][]string, len(is))
	for _, issue := range is {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}

// Fields returns the names of the fields with issues, in first-seen order.
func (is Issues) Fields() []string {
	seen := make(map[string]struct{}, len(is))
	var out []string
	for _, issue := range is {
		if _, ok := seen[issue.Field]; ok {
			continue
		}
		seen[issue.Field] = struct{}{}
		out = append(out, issue.Field)
	}
	return out
}

// For returns the issues recorded against field.
func (is Issues) For(field string) Issues {
	var out Issues
	for _, issue := range is {
		if issue.Field == field {
			out = append(out, issue)
		}
	}
	return out
}

// AsIssues extracts Issues from err.
func AsIssues(err error) (Issues, bool) {
	var issues Issues
	if errors.As(err, &issues) {
		return issues, true
	}
	return nil, false
}
