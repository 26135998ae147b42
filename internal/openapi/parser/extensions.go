package parser

import (
	"fmt"
	"sort"
	"strings"
)

const extensionNamespace = "x-formgen"

// stringKeys are x-formgen keys that must hold text.
var stringKeys = map[string]bool{
	"label":        true,
	"placeholder":  true,
	"description":  true,
	"widget":       true,
	"inputType":    true,
	"visibleWhen":  true,
	"submitLabel":  true,
	"summaryTitle": true,
}

// formExtensions returns the x-formgen namespace of raw (plus any flat
// x-formgen-* keys) after checking the keys the model builder relies on.
// Other vendor extensions are dropped.
func formExtensions(raw map[string]any) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	result := make(map[string]any)
	for key, value := range raw {
		switch {
		case key == extensionNamespace:
			mapped, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s must be a map, got %T", extensionNamespace, value)
			}
			if err := checkNamespace(mapped); err != nil {
				return nil, err
			}
			if len(mapped) > 0 {
				result[key] = cloneMap(mapped)
			}
		case strings.HasPrefix(key, extensionNamespace+"-"):
			result[key] = value
		}
	}
	if len(result) == 0 {
		return nil, nil
	}
	return result, nil
}

func checkNamespace(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := values[key]
		switch {
		case key == "order":
			switch value.(type) {
			case int, int64, float64:
			default:
				return fmt.Errorf("%s.order must be a number, got %T", extensionNamespace, value)
			}
		case key == "messages":
			messages, ok := value.(map[string]any)
			if !ok {
				return fmt.Errorf("%s.messages must be a map, got %T", extensionNamespace, value)
			}
			for code, message := range messages {
				if _, ok := message.(string); !ok {
					return fmt.Errorf("%s.messages.%s must be a string, got %T", extensionNamespace, code, message)
				}
			}
		case stringKeys[key]:
			if _, ok := value.(string); !ok {
				return fmt.Errorf("%s.%s must be a string, got %T", extensionNamespace, key, value)
			}
		}
	}
	return nil
}

func cloneMap(values map[string]any) map[string]any {
	cloned := make(map[string]any, len(values))
	for k, v := range values {
		if nested, ok := v.(map[string]any); ok {
			v = cloneMap(nested)
		}
		cloned[k] = v
	}
	return cloned
}
