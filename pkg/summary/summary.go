// Package summary holds the read-only snapshot of an accepted application.
package summary

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-jobform/pkg/application"
)

// Summary is the accepted data of the last successful submit.
type Summary struct {
	ID          string               `json:"id,omitempty"`
	Data        application.FormData `json:"data"`
	SubmittedAt time.Time            `json:"submittedAt"`
}

// New snapshots data. The summary owns its copy.
func New(data application.FormData, at time.Time) Summary {
	return Summary{Data: data.Clone(), SubmittedAt: at}
}

// record is the displayed shape of the data. relevantExperience is printed
// as a number when it parses as one.
type record struct {
	FullName               string              `json:"fullName"`
	Email                  string              `json:"email"`
	PhoneNumber            string              `json:"phoneNumber"`
	Position               string              `json:"position"`
	RelevantExperience     any                 `json:"relevantExperience"`
	PortfolioURL           string              `json:"portfolioURL"`
	ManagementExperience   string              `json:"managementExperience"`
	AdditionalSkills       []application.Skill `json:"additionalSkills"`
	PreferredInterviewTime string              `json:"preferredInterviewTime"`
}

func newRecord(data application.FormData) record {
	out := record{
		FullName:               data.FullName,
		Email:                  data.Email,
		PhoneNumber:            data.PhoneNumber,
		Position:               string(data.Position),
		RelevantExperience:     data.RelevantExperience,
		PortfolioURL:           data.PortfolioURL,
		ManagementExperience:   data.ManagementExperience,
		AdditionalSkills:       data.AdditionalSkills,
		PreferredInterviewTime: data.PreferredInterviewTime,
	}
	if n, ok := data.RelevantExperienceValue(); ok {
		out.RelevantExperience = n
	}
	if out.AdditionalSkills == nil {
		out.AdditionalSkills = []application.Skill{}
	}
	return out
}

// Text renders the accepted data as two-space indented JSON.
func (s Summary) Text() (string, error) {
	raw, err := json.MarshalIndent(newRecord(s.Data), "", "  ")
	if err != nil {
		return "", fmt.Errorf("summary: encode: %w", err)
	}
	return string(raw), nil
}

// MustText is Text for callers that render templates and cannot fail.
func (s Summary) MustText() string {
	text, err := s.Text()
	if err != nil {
		return ""
	}
	return text
}

// IsZero reports whether s holds no submission. A summary with an ID or a
// timestamp is a submission.
func (s Summary) IsZero() bool {
	return s.ID == "" && s.SubmittedAt.IsZero()
}
