package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-metaeditor/pkg/field"
)

const (
	// typeExtensionKey overrides the derived field type.
	typeExtensionKey = "x-metaeditor-type"
	// currentValueExtensionKey carries the stored value of a property.
	currentValueExtensionKey = "x-current-value"
)

// FromOpenAPI builds a payload from the named component schema of an
// OpenAPI document. String properties become String fields (Select when
// they declare an enum) and arrays of strings become List fields; other
// property types keep their OpenAPI type name and are modelled without an
// editor. Properties are ordered by name.
func FromOpenAPI(ctx context.Context, data []byte, component string) (Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("schema: openapi document is empty")
	}
	component = strings.TrimSpace(component)
	if component == "" {
		return nil, errors.New("schema: openapi component name is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if doc.Components == nil || doc.Components.Schemas == nil {
		return nil, errors.New("schema: openapi document has no component schemas")
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("schema: openapi component %q not found", component)
	}

	names := make([]string, 0, len(ref.Value.Properties))
	for name := range ref.Value.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	payload := make(Payload, 0, len(names))
	for _, name := range names {
		prop := ref.Value.Properties[name]
		if prop == nil || prop.Value == nil {
			continue
		}
		payload = append(payload, describeProperty(name, prop.Value))
	}
	return payload, nil
}

func describeProperty(name string, src *openapi3.Schema) field.Descriptor {
	desc := field.Descriptor{
		Name:         name,
		Type:         propertyType(src),
		DefaultValue: src.Default,
		DisplayName:  src.Title,
		Help:         src.Description,
	}
	if desc.Type == field.TypeSelect {
		for _, item := range src.Enum {
			value := stringOf(item)
			desc.Options = append(desc.Options, field.Option{DisplayName: value, Value: value})
		}
	}
	if current, ok := src.Extensions[currentValueExtensionKey]; ok {
		desc.Value = current
	}
	return desc
}

func propertyType(src *openapi3.Schema) field.Type {
	if override, ok := src.Extensions[typeExtensionKey].(string); ok && strings.TrimSpace(override) != "" {
		return field.Type(strings.TrimSpace(override))
	}
	switch {
	case src.Type.Is(openapi3.TypeString):
		if len(src.Enum) > 0 {
			return field.TypeSelect
		}
		return field.TypeString
	case src.Type.Is(openapi3.TypeArray):
		if src.Items != nil && src.Items.Value != nil && src.Items.Value.Type.Is(openapi3.TypeString) {
			return field.TypeList
		}
		return field.Type(openapi3.TypeArray)
	case src.Type != nil && len(src.Type.Slice()) > 0:
		return field.Type(strings.Join(src.Type.Slice(), ","))
	default:
		return field.Type("object")
	}
}
