// Package jobform is the entry point for the job application form: it loads
// the embedded form definition and hands out validation schemas, form
// controllers and rendered pages.
package jobform

import (
	"context"
	"strings"

	"github.com/goliatone/go-jobform/forms"
	internalloader "github.com/goliatone/go-jobform/internal/openapi/loader"
	internalparser "github.com/goliatone/go-jobform/internal/openapi/parser"
	"github.com/goliatone/go-jobform/pkg/form"
	"github.com/goliatone/go-jobform/pkg/model"
	pkgopenapi "github.com/goliatone/go-jobform/pkg/openapi"
	"github.com/goliatone/go-jobform/pkg/orchestrator"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/schema"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values, surface validation errors or show the summary.
type RenderOptions = render.RenderOptions

// OperationID is the form operation inside the embedded document.
const OperationID = forms.JobApplicationOperation

// Source resolves where the form document lives. An empty path selects the
// embedded job application form.
func Source(path string) pkgopenapi.Source {
	path = strings.TrimSpace(path)
	if path == "" {
		return pkgopenapi.SourceFromFS(forms.JobApplication)
	}
	return pkgopenapi.SourceFromFile(path)
}

// NewLoader returns a document loader. Pass WithFileSystem to read fs
// sources such as the embedded forms.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalloader.New(pkgopenapi.NewLoaderOptions(options...))
}

// NewParser returns a parser that extracts form operations from a loaded
// document and checks their x-formgen extensions.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalparser.New(pkgopenapi.NewParserOptions(options...))
}

// NewOrchestrator returns an orchestrator whose loader can read the embedded
// form documents. Options are applied after that default.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	loader := NewLoader(pkgopenapi.WithFileSystem(forms.FS))
	return orchestrator.New(append([]orchestrator.Option{orchestrator.WithLoader(loader)}, options...)...)
}

// LoadForm builds the form model from the embedded document.
func LoadForm(ctx context.Context, options ...orchestrator.Option) (model.FormModel, error) {
	return NewOrchestrator(options...).Form(ctx, orchestrator.Request{
		Source:      Source(""),
		OperationID: OperationID,
	})
}

// NewSchema compiles the validation schema of the embedded form.
func NewSchema(ctx context.Context, options ...schema.Option) (*schema.Schema, error) {
	formModel, err := LoadForm(ctx)
	if err != nil {
		return nil, err
	}
	return schema.New(formModel, options...)
}

// NewController returns a form controller over the embedded form, ready for
// editing.
func NewController(ctx context.Context, options ...form.Option) (*form.Controller, error) {
	s, err := NewSchema(ctx)
	if err != nil {
		return nil, err
	}
	return form.New(s, options...)
}

// GenerateHTML renders the embedded form with the default vanilla renderer.
// Conditional fields appear according to options.Values.
func GenerateHTML(ctx context.Context, options RenderOptions, orchestratorOptions ...orchestrator.Option) ([]byte, error) {
	return NewOrchestrator(orchestratorOptions...).Generate(ctx, orchestrator.Request{
		Source:        Source(""),
		OperationID:   OperationID,
		RenderOptions: options,
	})
}
