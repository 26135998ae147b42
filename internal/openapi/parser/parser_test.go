package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-jobform/pkg/openapi"
)

const applicationDocument = `
openapi: 3.0.3
info:
  title: Apply
  version: 1.0.0
paths:
  /apply:
    post:
      operationId: apply
      summary: Apply
      x-formgen:
        submitLabel: Send
      requestBody:
        content:
          application/json:
            schema:
              $ref: "#/components/schemas/Application"
      responses:
        "200":
          description: ok
components:
  schemas:
    Application:
      type: object
      required: [skills]
      properties:
        years:
          type: number
          minimum: 1
          x-formgen:
            order: 2
            visibleWhen: role == "Developer"
        skills:
          type: array
          minItems: 1
          items:
            type: string
            enum: [Go, CSS]
`

func TestOperations_ConvertsRequestSchema(t *testing.T) {
	p := New(pkgopenapi.NewParserOptions())
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("apply.yaml"), []byte(applicationDocument))

	ops, err := p.Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	op, ok := ops["apply"]
	if !ok {
		t.Fatalf("operation apply not found in %v", ops)
	}
	if op.Method != "POST" || op.Path != "/apply" || op.Summary != "Apply" {
		t.Fatalf("unexpected operation header %+v", op)
	}
	if diff := cmp.Diff(map[string]any{"x-formgen": map[string]any{"submitLabel": "Send"}}, op.Extensions); diff != "" {
		t.Fatalf("operation extensions mismatch (-want +got):\n%s", diff)
	}

	body := op.RequestBody
	if body.Type != "object" {
		t.Fatalf("expected object body, got %q", body.Type)
	}
	if diff := cmp.Diff([]string{"skills"}, body.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	years := body.Properties["years"]
	if years.Minimum == nil || *years.Minimum != 1 {
		t.Fatalf("expected minimum 1, got %v", years.Minimum)
	}
	wantExt := map[string]any{
		"x-formgen": map[string]any{
			"order":       float64(2),
			"visibleWhen": `role == "Developer"`,
		},
	}
	if diff := cmp.Diff(wantExt, years.Extensions); diff != "" {
		t.Fatalf("years extensions mismatch (-want +got):\n%s", diff)
	}

	skills := body.Properties["skills"]
	if skills.MinItems == nil || *skills.MinItems != 1 {
		t.Fatalf("expected minItems 1, got %v", skills.MinItems)
	}
	if skills.Items == nil {
		t.Fatalf("expected items schema")
	}
	if diff := cmp.Diff([]any{"Go", "CSS"}, skills.Items.Enum); diff != "" {
		t.Fatalf("items enum mismatch (-want +got):\n%s", diff)
	}
}

func TestOperations_RejectsDocumentsWithoutPaths(t *testing.T) {
	const document = `{"openapi":"3.0.3","info":{"title":"x","version":"1"},"paths":{}}`
	p := New(pkgopenapi.NewParserOptions())
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("empty.json"), []byte(document))

	_, err := p.Operations(context.Background(), doc)
	if err == nil || !strings.Contains(err.Error(), "does not contain any paths") {
		t.Fatalf("expected missing paths error, got %v", err)
	}
}

func TestOperations_AllowsPartialDocuments(t *testing.T) {
	const document = `{"openapi":"3.0.3","info":{"title":"x","version":"1"},"paths":{}}`
	p := New(pkgopenapi.NewParserOptions(pkgopenapi.WithPartialDocuments(true)))
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("empty.json"), []byte(document))

	ops, err := p.Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	if len(ops) != 0 {
		t.Fatalf("expected no operations, got %d", len(ops))
	}
}

func TestOperations_RejectsMalformedExtensions(t *testing.T) {
	cases := map[string]struct {
		old       string
		extension string
		want      string
	}{
		"order": {
			extension: "order: first",
			want:      "property years: x-formgen.order must be a number",
		},
		"messages": {
			extension: "messages: nope",
			want:      "x-formgen.messages must be a map",
		},
		"message value": {
			extension: "messages:\n              required: [a, b]",
			want:      "x-formgen.messages.required must be a string",
		},
		"visibleWhen": {
			old:       `visibleWhen: role == "Developer"`,
			extension: "visibleWhen: 3",
			want:      "x-formgen.visibleWhen must be a string",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			old := tc.old
			if old == "" {
				old = "order: 2"
			}
			document := strings.Replace(applicationDocument, old, tc.extension, 1)
			p := New(pkgopenapi.NewParserOptions())
			doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("apply.yaml"), []byte(document))

			_, err := p.Operations(context.Background(), doc)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}

func TestOperations_KeepsOnlyFormExtensions(t *testing.T) {
	document := strings.Replace(applicationDocument, "summary: Apply", "summary: Apply\n      x-internal: true\n      x-formgen-track: apply", 1)
	p := New(pkgopenapi.NewParserOptions())
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceFromFS("apply.yaml"), []byte(document))

	ops, err := p.Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	want := map[string]any{
		"x-formgen":       map[string]any{"submitLabel": "Send"},
		"x-formgen-track": "apply",
	}
	if diff := cmp.Diff(want, ops["apply"].Extensions); diff != "" {
		t.Fatalf("extensions mismatch (-want +got):\n%s", diff)
	}
}
