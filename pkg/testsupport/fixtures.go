// Package testsupport holds fixtures shared by package tests.
package testsupport

import (
	"context"
	"fmt"
	"testing"

	"github.com/goliatone/go-jobform/forms"
	internalloader "github.com/goliatone/go-jobform/internal/openapi/loader"
	internalparser "github.com/goliatone/go-jobform/internal/openapi/parser"
	"github.com/goliatone/go-jobform/pkg/application"
	pkgmodel "github.com/goliatone/go-jobform/pkg/model"
	pkgopenapi "github.com/goliatone/go-jobform/pkg/openapi"
)

// JobApplicationForm builds the bundled job application form model.
func JobApplicationForm(t testing.TB) pkgmodel.FormModel {
	t.Helper()

	form, err := LoadJobApplicationForm(context.Background())
	if err != nil {
		t.Fatalf("load job application form: %v", err)
	}
	return form
}

// LoadJobApplicationForm runs the loader, parser and builder over the
// embedded document without requiring testing.T.
func LoadJobApplicationForm(ctx context.Context) (pkgmodel.FormModel, error) {
	loader := internalloader.New(pkgopenapi.NewLoaderOptions(pkgopenapi.WithFileSystem(forms.FS)))
	doc, err := loader.Load(ctx, pkgopenapi.SourceFromFS(forms.JobApplication))
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("testsupport: load document: %w", err)
	}

	parser := internalparser.New(pkgopenapi.NewParserOptions())
	operations, err := parser.Operations(ctx, doc)
	if err != nil {
		return pkgmodel.FormModel{}, fmt.Errorf("testsupport: parse document: %w", err)
	}
	op, ok := operations[forms.JobApplicationOperation]
	if !ok {
		return pkgmodel.FormModel{}, fmt.Errorf("testsupport: operation %q not found", forms.JobApplicationOperation)
	}
	return pkgmodel.NewBuilder().Build(op)
}

// ValidApplication returns a record that passes validation for position.
// Fields hidden for that position are left empty.
func ValidApplication(position application.Position) application.FormData {
	data := application.FormData{
		FullName:               "Ada Lovelace",
		Email:                  "ada@example.com",
		PhoneNumber:            "+44 20 7946 0958",
		Position:               position,
		AdditionalSkills:       []application.Skill{application.SkillJavaScript, application.SkillPython},
		PreferredInterviewTime: "2026-11-02T10:30",
	}
	switch position {
	case application.PositionDeveloper:
		data.RelevantExperience = "5"
	case application.PositionDesigner:
		data.RelevantExperience = "3"
		data.PortfolioURL = "https://portfolio.example.com/ada"
	case application.PositionManager:
		data.ManagementExperience = "Led a team of eight engineers"
	}
	return data
}
