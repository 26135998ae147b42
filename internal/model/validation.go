package model

import (
	"errors"
	"fmt"

	pkgopenapi "github.com/goliatone/go-jobform/pkg/openapi"
)

var (
	errOperationIDMissing     = errors.New("model builder: operation id is required")
	errOperationPathMissing   = errors.New("model builder: operation path is required")
	errOperationMethodMissing = errors.New("model builder: operation method is required")
)

func validateOperation(op pkgopenapi.Operation) error {
	if op.ID == "" {
		return errOperationIDMissing
	}
	if op.Path == "" {
		return errOperationPathMissing
	}
	if op.Method == "" {
		return errOperationMethodMissing
	}
	if err := validateSchema(op.RequestBody); err != nil {
		return fmt.Errorf("model builder: invalid request body: %w", err)
	}
	return nil
}

func validateSchema(schema pkgopenapi.Schema) error {
	if schema.Type != "object" && schema.Type != "" {
		return fmt.Errorf("request body must be an object, got %q", schema.Type)
	}
	for name, property := range schema.Properties {
		switch property.Type {
		case "object":
			return fmt.Errorf("property %q: nested objects are not supported", name)
		case "array":
			if property.Items == nil {
				return fmt.Errorf("property %q: array schema requires items", name)
			}
			if property.Items.Type == "object" || property.Items.Type == "array" {
				return fmt.Errorf("property %q: only arrays of scalars are supported", name)
			}
		}
	}
	return nil
}
