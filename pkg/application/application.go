// Package application defines the job application record the form collects.
package application

import (
	"fmt"
	"math"
	"strconv"

	"github.com/goliatone/go-jobform/pkg/validation"
)

// Field names as they appear in the form document and on the wire.
const (
	FieldFullName               = "fullName"
	FieldEmail                  = "email"
	FieldPhoneNumber            = "phoneNumber"
	FieldPosition               = "position"
	FieldRelevantExperience     = "relevantExperience"
	FieldPortfolioURL           = "portfolioURL"
	FieldManagementExperience   = "managementExperience"
	FieldAdditionalSkills       = "additionalSkills"
	FieldPreferredInterviewTime = "preferredInterviewTime"
)

// Fields lists every field name in display order.
var Fields = []string{
	FieldFullName,
	FieldEmail,
	FieldPhoneNumber,
	FieldPosition,
	FieldRelevantExperience,
	FieldPortfolioURL,
	FieldManagementExperience,
	FieldAdditionalSkills,
	FieldPreferredInterviewTime,
}

// Position is the role being applied for. The zero value means no selection.
type Position string

const (
	PositionNone      Position = ""
	PositionDeveloper Position = "Developer"
	PositionDesigner  Position = "Designer"
	PositionManager   Position = "Manager"
)

// Positions lists the selectable positions.
var Positions = []Position{PositionDeveloper, PositionDesigner, PositionManager}

// Skill is one of the additional skills an applicant can tick.
type Skill string

const (
	SkillJavaScript Skill = "JavaScript"
	SkillCSS        Skill = "CSS"
	SkillPython     Skill = "Python"
)

// Skills lists the selectable skills.
var Skills = []Skill{SkillJavaScript, SkillCSS, SkillPython}

// FormData holds the values of a job application. RelevantExperience keeps
// the text as entered; use RelevantExperienceValue for the number.
type FormData struct {
	FullName               string   `json:"fullName"`
	Email                  string   `json:"email"`
	PhoneNumber            string   `json:"phoneNumber"`
	Position               Position `json:"position"`
	RelevantExperience     string   `json:"relevantExperience"`
	PortfolioURL           string   `json:"portfolioURL"`
	ManagementExperience   string   `json:"managementExperience"`
	AdditionalSkills       []Skill  `json:"additionalSkills"`
	PreferredInterviewTime string   `json:"preferredInterviewTime"`
}

// New returns an empty record with every field at its initial value.
func New() FormData {
	return FormData{AdditionalSkills: []Skill{}}
}

// Clone returns a deep copy.
func (d FormData) Clone() FormData {
	out := d
	out.AdditionalSkills = append(make([]Skill, 0, len(d.AdditionalSkills)), d.AdditionalSkills...)
	return out
}

// RelevantExperienceValue parses RelevantExperience. It reports false when the
// field is empty or not plain decimal text.
func (d FormData) RelevantExperienceValue() (float64, bool) {
	return validation.ParseNumber(d.RelevantExperience)
}

// HasSkill reports whether skill is selected.
func (d FormData) HasSkill(skill Skill) bool {
	for _, s := range d.AdditionalSkills {
		if s == skill {
			return true
		}
	}
	return false
}

// Values flattens the record into the map shape the validation schema and
// the visibility rules read.
func (d FormData) Values() map[string]any {
	skills := make([]string, 0, len(d.AdditionalSkills))
	for _, s := range d.AdditionalSkills {
		skills = append(skills, string(s))
	}
	return map[string]any{
		FieldFullName:               d.FullName,
		FieldEmail:                  d.Email,
		FieldPhoneNumber:            d.PhoneNumber,
		FieldPosition:               string(d.Position),
		FieldRelevantExperience:     d.RelevantExperience,
		FieldPortfolioURL:           d.PortfolioURL,
		FieldManagementExperience:   d.ManagementExperience,
		FieldAdditionalSkills:       skills,
		FieldPreferredInterviewTime: d.PreferredInterviewTime,
	}
}

// Get returns the value of a single field in the Values representation.
func (d FormData) Get(name string) (any, bool) {
	value, ok := d.Values()[name]
	return value, ok
}

// Set assigns one field. Text fields accept strings (numbers are accepted for
// relevantExperience); additionalSkills accepts []string, []Skill or []any of
// strings. It returns ErrUnknownField or ErrInvalidValue.
func (d *FormData) Set(name string, value any) error {
	if name == FieldAdditionalSkills {
		skills, err := toSkills(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidValue, name, err)
		}
		d.AdditionalSkills = skills
		return nil
	}

	if name == FieldPosition {
		text, err := toText(name, value)
		if err != nil {
			return err
		}
		d.Position = Position(text)
		return nil
	}

	target := d.textField(name)
	if target == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	text, err := toText(name, value)
	if err != nil {
		return err
	}
	*target = text
	return nil
}

func (d *FormData) textField(name string) *string {
	switch name {
	case FieldFullName:
		return &d.FullName
	case FieldEmail:
		return &d.Email
	case FieldPhoneNumber:
		return &d.PhoneNumber
	case FieldRelevantExperience:
		return &d.RelevantExperience
	case FieldPortfolioURL:
		return &d.PortfolioURL
	case FieldManagementExperience:
		return &d.ManagementExperience
	case FieldPreferredInterviewTime:
		return &d.PreferredInterviewTime
	default:
		return nil
	}
}

// FromValues builds a record from a decoded JSON object or form post. Keys
// that are not form fields are rejected.
func FromValues(values map[string]any) (FormData, error) {
	data := New()
	for name, value := range values {
		if value == nil {
			continue
		}
		if err := data.Set(name, value); err != nil {
			return FormData{}, err
		}
	}
	return data, nil
}

func toText(name string, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case Position:
		return string(v), nil
	case float64:
		if name == FieldRelevantExperience && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		}
	case int:
		if name == FieldRelevantExperience {
			return strconv.Itoa(v), nil
		}
	}
	return "", fmt.Errorf("%w: %s: unsupported value of type %T", ErrInvalidValue, name, value)
}

func toSkills(value any) ([]Skill, error) {
	switch v := value.(type) {
	case nil:
		return []Skill{}, nil
	case []Skill:
		return append([]Skill{}, v...), nil
	case []string:
		out := make([]Skill, 0, len(v))
		for _, s := range v {
			out = append(out, Skill(s))
		}
		return out, nil
	case []any:
		out := make([]Skill, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("unsupported item of type %T", item)
			}
			out = append(out, Skill(s))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value of type %T", value)
	}
}
