package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	pkgopenapi "github.com/goliatone/go-jobform/pkg/openapi"
)

const extensionNamespace = "x-formgen"

// Options configures the Builder. The public adapter in pkg/model fills it
// in and passes it to New.
type Options struct {
	// Labeler derives a label for fields without an x-formgen label.
	Labeler func(string) string
}

// Builder converts operations into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := Options{Labeler: DefaultLabeler}
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build transforms an operation's request body into a flat FormModel. Fields
// are ordered by their x-formgen order hint, then by name.
func (b *Builder) Build(op pkgopenapi.Operation) (FormModel, error) {
	if err := validateOperation(op); err != nil {
		return FormModel{}, err
	}

	form := FormModel{
		OperationID: op.ID,
		Endpoint:    op.Path,
		Method:      strings.ToUpper(op.Method),
		Summary:     op.Summary,
		Description: op.Description,
		Metadata:    stringMap(namespace(op.Extensions)),
	}

	requiredSet := make(map[string]struct{}, len(op.RequestBody.Required))
	for _, name := range op.RequestBody.Required {
		requiredSet[name] = struct{}{}
	}

	fields := make([]Field, 0, len(op.RequestBody.Properties))
	for name, schema := range op.RequestBody.Properties {
		_, required := requiredSet[name]
		field, err := b.fieldFromSchema(name, schema, required)
		if err != nil {
			return FormModel{}, err
		}
		fields = append(fields, field)
	}
	sort.SliceStable(fields, func(i, j int) bool {
		if fields[i].Order != fields[j].Order {
			return fields[i].Order < fields[j].Order
		}
		return fields[i].Name < fields[j].Name
	})
	form.Fields = fields

	return form, nil
}

func (b *Builder) fieldFromSchema(name string, schema pkgopenapi.Schema, required bool) (Field, error) {
	if err := schema.Validate(); err != nil {
		return Field{}, fmt.Errorf("model builder: field %q: %w", name, err)
	}
	ext := namespace(schema.Extensions)

	field := Field{
		Name:        name,
		Type:        fieldType(schema.Type),
		Format:      schema.Format,
		Required:    required,
		Label:       stringValue(ext["label"]),
		Placeholder: stringValue(ext["placeholder"]),
		Description: schema.Description,
		Widget:      stringValue(ext["widget"]),
		InputType:   stringValue(ext["inputType"]),
		VisibleWhen: strings.TrimSpace(stringValue(ext["visibleWhen"])),
		Messages:    stringMap(mapValue(ext["messages"])),
		Default:     schema.Default,
	}
	if field.Label == "" {
		field.Label = b.opts.Labeler(name)
	}
	if order, ok := intValue(ext["order"]); ok {
		field.Order = order
	}
	if len(schema.Enum) > 0 {
		field.Enum = append([]any(nil), schema.Enum...)
	}

	if schema.Items != nil {
		item, err := b.fieldFromSchema(name+"Item", *schema.Items, false)
		if err != nil {
			return Field{}, err
		}
		field.Items = &item
	}

	applyValidations(&field, schema)
	field.Metadata = stringMap(metadataOnly(ext))
	if field.Widget == "" {
		field.Widget = defaultWidget(field)
	}
	if field.Required && field.Conditional() {
		return Field{}, fmt.Errorf("model builder: field %q cannot be both required and conditional", name)
	}
	return field, nil
}

func applyValidations(field *Field, schema pkgopenapi.Schema) {
	add := func(kind string, params map[string]string) {
		field.Validations = append(field.Validations, ValidationRule{Kind: kind, Params: params})
	}
	if schema.Minimum != nil {
		add(ValidationRuleMin, map[string]string{"value": formatFloat(*schema.Minimum)})
	}
	if schema.Maximum != nil {
		add(ValidationRuleMax, map[string]string{"value": formatFloat(*schema.Maximum)})
	}
	if schema.MinLength != nil {
		add(ValidationRuleMinLength, map[string]string{"value": strconv.Itoa(*schema.MinLength)})
	}
	if schema.MaxLength != nil {
		add(ValidationRuleMaxLength, map[string]string{"value": strconv.Itoa(*schema.MaxLength)})
	}
	if schema.MinItems != nil {
		add(ValidationRuleMinItems, map[string]string{"value": strconv.Itoa(*schema.MinItems)})
	}
	if schema.Pattern != "" {
		add(ValidationRulePattern, map[string]string{"pattern": schema.Pattern})
	}
}

func defaultWidget(field Field) string {
	switch {
	case field.Type == FieldTypeArray:
		return WidgetCheckboxes
	case len(field.Enum) > 0:
		return WidgetSelect
	case field.Type == FieldTypeNumber || field.Type == FieldTypeInteger:
		return WidgetNumber
	case field.Format == "date-time":
		return WidgetDateTime
	default:
		return WidgetText
	}
}

func fieldType(raw string) FieldType {
	switch raw {
	case "integer":
		return FieldTypeInteger
	case "number":
		return FieldTypeNumber
	case "boolean":
		return FieldTypeBoolean
	case "array":
		return FieldTypeArray
	default:
		return FieldTypeString
	}
}

func namespace(ext map[string]any) map[string]any {
	if len(ext) == 0 {
		return nil
	}
	return mapValue(ext[extensionNamespace])
}

// metadataOnly drops the keys the builder maps onto dedicated Field members.
func metadataOnly(ext map[string]any) map[string]any {
	if len(ext) == 0 {
		return nil
	}
	out := make(map[string]any, len(ext))
	for key, value := range ext {
		switch key {
		case "label", "placeholder", "widget", "inputType", "visibleWhen", "messages", "order":
			continue
		}
		out[key] = value
	}
	return out
}

func mapValue(value any) map[string]any {
	mapped, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return mapped
}

func stringMap(in map[string]any) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		switch v := value.(type) {
		case string:
			out[key] = v
		case bool:
			out[key] = strconv.FormatBool(v)
		case float64:
			out[key] = formatFloat(v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func stringValue(value any) string {
	s, _ := value.(string)
	return s
}

func intValue(value any) (int, bool) {
	switch v := value.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
