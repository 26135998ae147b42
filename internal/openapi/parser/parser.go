package parser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-jobform/pkg/openapi"
)

// submitMethods are the operations that carry a request body worth turning
// into a form.
var submitMethods = []string{http.MethodPost, http.MethodPut, http.MethodPatch}

// requestMediaTypes are tried in order when picking the request body schema.
var requestMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options pkgopenapi.ParserOptions
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{options: options}
}

// Operations converts a Document into a map keyed by operationId. Malformed
// x-formgen extensions fail the whole document so form authors see them.
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	root, err := p.load(ctx, doc)
	if err != nil {
		return nil, err
	}

	operations := make(map[string]pkgopenapi.Operation)
	if root.Paths != nil {
		items := root.Paths.Map()
		paths := make([]string, 0, len(items))
		for path := range items {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			item := items[path]
			if item == nil {
				continue
			}
			for _, method := range submitMethods {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				op, ok, err := convertOperation(method, path, item.GetOperation(method))
				if err != nil {
					return nil, fmt.Errorf("openapi parser: %s %s: %w", method, path, err)
				}
				if ok {
					operations[op.ID] = op
				}
			}
		}
	}

	if len(operations) == 0 && !p.options.AllowPartialDocuments {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

func (p *Parser) load(ctx context.Context, doc pkgopenapi.Document) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	root, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load %s: %w", doc.Location(), err)
	}

	if (root.Paths == nil || root.Paths.Len() == 0) && !p.options.AllowPartialDocuments {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}
	if p.options.ResolveReferences {
		if err := root.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	return root, nil
}

// convertOperation reports ok=false for missing operations and for ones the
// model cannot use, such as those without an id, method or path.
func convertOperation(method, path string, operation *openapi3.Operation) (pkgopenapi.Operation, bool, error) {
	if operation == nil {
		return pkgopenapi.Operation{}, false, nil
	}
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}

	body, err := requestSchema(operation.RequestBody)
	if err != nil {
		return pkgopenapi.Operation{}, false, err
	}
	op, err := pkgopenapi.NewOperation(id, method, path, body)
	if err != nil {
		return pkgopenapi.Operation{}, false, nil
	}
	op.Summary = operation.Summary
	op.Description = operation.Description
	if op.Extensions, err = formExtensions(operation.Extensions); err != nil {
		return pkgopenapi.Operation{}, false, err
	}
	return op, true, nil
}

func requestSchema(requestBody *openapi3.RequestBodyRef) (pkgopenapi.Schema, error) {
	if requestBody == nil {
		return pkgopenapi.Schema{}, nil
	}
	if requestBody.Value == nil {
		return pkgopenapi.Schema{Ref: requestBody.Ref}, nil
	}
	content := requestBody.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok {
			return convertSchema(mt.Schema, "")
		}
	}
	for _, mt := range content {
		return convertSchema(mt.Schema, "")
	}
	return pkgopenapi.Schema{}, nil
}

// convertSchema copies the keywords the form builder understands. path names
// the property for error messages.
func convertSchema(ref *openapi3.SchemaRef, path string) (pkgopenapi.Schema, error) {
	if ref == nil {
		return pkgopenapi.Schema{}, nil
	}
	if ref.Value == nil {
		return pkgopenapi.Schema{Ref: ref.Ref}, nil
	}
	src := ref.Value
	out := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        schemaType(src.Type),
		Format:      src.Format,
		Description: src.Description,
		Default:     src.Default,
		Pattern:     src.Pattern,
		Minimum:     src.Min,
		Maximum:     src.Max,
		MaxLength:   intPointer(src.MaxLength),
	}
	if src.MinLength != 0 {
		out.MinLength = intPointer(&src.MinLength)
	}
	if src.MinItems != 0 {
		out.MinItems = intPointer(&src.MinItems)
	}
	if len(src.Required) > 0 {
		out.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		out.Enum = append([]any(nil), src.Enum...)
	}

	var err error
	if out.Extensions, err = formExtensions(src.Extensions); err != nil {
		if path == "" {
			return pkgopenapi.Schema{}, err
		}
		return pkgopenapi.Schema{}, fmt.Errorf("property %s: %w", path, err)
	}

	if len(src.Properties) > 0 {
		out.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			child, err := convertSchema(property, joinPath(path, name))
			if err != nil {
				return pkgopenapi.Schema{}, err
			}
			out.Properties[name] = child
		}
	}
	if src.Items != nil {
		items, err := convertSchema(src.Items, joinPath(path, "items"))
		if err != nil {
			return pkgopenapi.Schema{}, err
		}
		out.Items = &items
	}
	return out, nil
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	return strings.Join(types.Slice(), ",")
}

func intPointer(value *uint64) *int {
	if value == nil {
		return nil
	}
	n := int(*value)
	return &n
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
