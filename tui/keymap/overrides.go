package keymap

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
)

// Overrides maps a snake_case binding name to its replacement keys.
type Overrides map[string][]string

// ApplyOverrides applies keybinding overrides to any keymap struct.
// It uses reflection to map config keys (snake_case) to struct fields (CamelCase).
// Only fields of type key.Binding are processed. Embedded structs are recursively processed.
//
// Example:
//
//	km := KeyMap{Next: key.NewBinding(...), ...}
//	ApplyOverrides(&km, Overrides{"next": {"space"}})
func ApplyOverrides(km interface{}, overrides Overrides) {
	if overrides == nil {
		return
	}

	v := reflect.ValueOf(km)
	if v.Kind() != reflect.Ptr {
		return
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return
	}

	applyOverridesRecursive(v, overrides)
}

func applyOverridesRecursive(v reflect.Value, overrides Overrides) {
	t := v.Type()
	bindingType := reflect.TypeOf(key.Binding{})

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if fieldType.Anonymous && field.Kind() == reflect.Struct {
			applyOverridesRecursive(field, overrides)
			continue
		}

		if fieldType.Type != bindingType {
			continue
		}

		keys, ok := overrides[camelToSnake(fieldType.Name)]
		if !ok || len(keys) == 0 {
			continue
		}

		// Keep the help description, replace keys and the key label.
		helpDesc := field.Interface().(key.Binding).Help().Desc
		field.Set(reflect.ValueOf(key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(helpKeys(keys), helpDesc),
		)))
	}
}

// camelToSnake converts a CamelCase string to snake_case.
// Examples: Next -> next, NextTrace -> next_trace
func camelToSnake(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
