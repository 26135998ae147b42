package openapi_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jobform/forms"
	"github.com/goliatone/go-jobform/internal/openapi/loader"
	"github.com/goliatone/go-jobform/internal/openapi/parser"
	pkgmodel "github.com/goliatone/go-jobform/pkg/model"
	pkgopenapi "github.com/goliatone/go-jobform/pkg/openapi"
	"github.com/goliatone/go-jobform/pkg/testsupport"
)

func TestLoaderParserIntegration(t *testing.T) {
	ctx := context.Background()

	data, err := forms.FS.ReadFile(forms.JobApplication)
	if err != nil {
		t.Fatalf("read embedded form: %v", err)
	}
	path := filepath.Join(t.TempDir(), forms.JobApplication)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write temp form: %v", err)
	}

	doc, err := loader.New(pkgopenapi.NewLoaderOptions()).Load(ctx, pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	operations, err := parser.New(pkgopenapi.NewParserOptions()).Operations(ctx, doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	op, ok := operations[forms.JobApplicationOperation]
	if !ok {
		t.Fatalf("operation %q missing", forms.JobApplicationOperation)
	}

	fromFile, err := pkgmodel.NewBuilder().Build(op)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	fromFS := testsupport.JobApplicationForm(t)
	if diff := cmp.Diff(fromFS, fromFile); diff != "" {
		t.Fatalf("file and embedded pipelines disagree (-fs +file):\n%s", diff)
	}

	wantOrder := []string{
		"fullName", "email", "phoneNumber", "position", "relevantExperience",
		"portfolioURL", "managementExperience", "additionalSkills", "preferredInterviewTime",
	}
	if diff := cmp.Diff(wantOrder, fromFile.FieldNames()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if got := fromFile.Metadata["summaryTitle"]; got != "Form Summary" {
		t.Fatalf("summaryTitle = %q", got)
	}
}
