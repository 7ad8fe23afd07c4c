// Package schema turns the page payload (field name → descriptor) into an
// ordered list of field descriptors.
//
// The enumeration order is the order in which field names appear in the
// payload document. Both the JSON and the YAML readers walk the document
// rather than decoding into a map, so slots and models line up with the
// payload for every render pass. Payloads built from OpenAPI components are
// ordered by property name.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-metaeditor/pkg/field"
)

// Payload is the ordered descriptor list a panel is built from.
type Payload []field.Descriptor

// Names returns the field names in order.
func (p Payload) Names() []string {
	names := make([]string, len(p))
	for i, desc := range p {
		names[i] = desc.Name
	}
	return names
}

// Lookup returns the descriptor for name.
func (p Payload) Lookup(name string) (field.Descriptor, bool) {
	for _, desc := range p {
		if desc.Name == name {
			return desc, true
		}
	}
	return field.Descriptor{}, false
}

// Format names a payload encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat reads a format name; empty means JSON.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("schema: unknown format %q", raw)
	}
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (Payload, error) {
	switch format {
	case FormatJSON, "":
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("schema: unknown format %q", format)
	}
}

// ParseJSON decodes a JSON object payload, keeping key order.
func ParseJSON(data []byte) (Payload, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("schema: parse payload: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("schema: payload must be a JSON object")
	}

	var payload Payload
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("schema: parse payload: %w", err)
		}
		name, _ := tok.(string)

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", name, err)
		}
		desc, err := describe(name, raw, seen)
		if err != nil {
			return nil, err
		}
		payload = append(payload, desc)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("schema: parse payload: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("schema: trailing data after payload object")
	}
	return payload, nil
}

// describe builds one descriptor from a decoded entry. Both snake_case and
// camelCase keys are accepted.
func describe(name string, raw any, seen map[string]struct{}) (field.Descriptor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return field.Descriptor{}, errors.New("schema: field name is empty")
	}
	if _, dup := seen[name]; dup {
		return field.Descriptor{}, fmt.Errorf("schema: duplicate field %q", name)
	}
	seen[name] = struct{}{}

	entry, ok := raw.(map[string]any)
	if !ok {
		return field.Descriptor{}, fmt.Errorf("schema: field %q: descriptor must be an object", name)
	}

	typ, _ := pick(entry, "type").(string)
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return field.Descriptor{}, fmt.Errorf("schema: field %q: type is required", name)
	}

	desc := field.Descriptor{
		Name:         name,
		Type:         field.Type(typ),
		Value:        pick(entry, "value"),
		DefaultValue: pick(entry, "default_value", "defaultValue"),
		DisplayName:  stringOf(pick(entry, "display_name", "displayName")),
		Help:         stringOf(pick(entry, "help")),
	}

	if flag, present := entry["explicitly_set"]; present {
		explicit, ok := flag.(bool)
		if !ok {
			return field.Descriptor{}, fmt.Errorf("schema: field %q: explicitly_set must be a boolean", name)
		}
		desc.Explicit = &explicit
	} else if flag, present := entry["explicitlySet"]; present {
		explicit, ok := flag.(bool)
		if !ok {
			return field.Descriptor{}, fmt.Errorf("schema: field %q: explicitlySet must be a boolean", name)
		}
		desc.Explicit = &explicit
	}

	options, err := optionsOf(pick(entry, "options"))
	if err != nil {
		return field.Descriptor{}, fmt.Errorf("schema: field %q: %w", name, err)
	}
	desc.Options = options
	return desc, nil
}

func pick(entry map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := entry[key]; ok {
			return v
		}
	}
	return nil
}

func stringOf(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func optionsOf(raw any) ([]field.Option, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, errors.New("options must be a list")
	}
	out := make([]field.Option, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case map[string]any:
			value := stringOf(v["value"])
			label := stringOf(pick(v, "display_name", "displayName"))
			if label == "" {
				label = value
			}
			out = append(out, field.Option{DisplayName: label, Value: value})
		case nil:
			return nil, fmt.Errorf("option %d is null", i)
		default:
			s := stringOf(v)
			out = append(out, field.Option{DisplayName: s, Value: s})
		}
	}
	return out, nil
}
