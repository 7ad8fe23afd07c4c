package field

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Type identifies the kind of value a field carries. The set is open: a
// payload may declare any type, editors only exist for registered ones.
type Type string

const (
	TypeString Type = "String"
	TypeList   Type = "List"
	TypeSelect Type = "Select"
)

// Option is a selectable choice for Select fields.
type Option struct {
	DisplayName string `json:"display_name" yaml:"display_name"`
	Value       string `json:"value" yaml:"value"`
}

// Descriptor is one schema entry as delivered by the page payload.
type Descriptor struct {
	Name         string   `json:"field_name"`
	Type         Type     `json:"type"`
	Value        any      `json:"value,omitempty"`
	DefaultValue any      `json:"default_value,omitempty"`
	DisplayName  string   `json:"display_name,omitempty"`
	Help         string   `json:"help,omitempty"`
	Options      []Option `json:"options,omitempty"`
	// Explicit marks Value as user-set. Payloads that omit the flag are
	// treated as explicit whenever Value is present.
	Explicit *bool `json:"explicitly_set,omitempty"`
}

// Normalize converts raw payload values into the canonical Go type for t:
// string for String/Select, []string for List. Unknown types keep the raw
// value.
func Normalize(t Type, value any) any {
	switch t {
	case TypeList:
		return toStrings(value)
	case TypeString, TypeSelect:
		return toString(value)
	default:
		return value
	}
}

// Equal reports whether two normalised values are the same.
func Equal(a, b any) bool {
	if left, ok := a.([]string); ok {
		if right, ok := b.([]string); ok {
			return slices.Equal(left, right)
		}
	}
	return reflect.DeepEqual(a, b)
}

// Clone copies slice values so callers never alias model state.
func Clone(value any) any {
	if list, ok := value.([]string); ok {
		return slices.Clone(list)
	}
	return value
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func toStrings(value any) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return slices.Clone(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, toString(item))
		}
		return out
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	default:
		return []string{toString(v)}
	}
}
