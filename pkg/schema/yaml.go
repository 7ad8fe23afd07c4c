package schema

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML mapping payload, keeping key order.
func ParseYAML(data []byte) (Payload, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: parse payload: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("schema: payload document is empty")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("schema: payload must be a YAML mapping")
	}

	payload := make(Payload, 0, len(root.Content)/2)
	seen := make(map[string]struct{})
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("schema: line %d: field name must be a scalar", key.Line)
		}

		var raw any
		if err := value.Decode(&raw); err != nil {
			return nil, fmt.Errorf("schema: field %q: %w", key.Value, err)
		}
		desc, err := describe(key.Value, raw, seen)
		if err != nil {
			return nil, err
		}
		payload = append(payload, desc)
	}
	return payload, nil
}
