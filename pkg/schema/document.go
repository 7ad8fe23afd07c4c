package schema

import (
	"errors"
	"path"
	"strings"
)

// Document wraps a raw payload together with its origin and encoding.
type Document struct {
	source Source
	raw    []byte
	format Format
}

// NewDocument copies raw and infers the format from the source location.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schema: raw document is empty")
	}
	return Document{
		source: src,
		raw:    append([]byte(nil), raw...),
		format: FormatFromPath(src.Location()),
	}, nil
}

// Source returns the origin of the document.
func (d Document) Source() Source { return d.source }

// Location returns the origin identifier.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Raw returns a copy of the payload bytes.
func (d Document) Raw() []byte { return append([]byte(nil), d.raw...) }

// Format returns the inferred encoding.
func (d Document) Format() Format { return d.format }

// Payload parses the document.
func (d Document) Payload() (Payload, error) {
	return Parse(d.raw, d.format)
}

// FormatFromPath maps .yaml/.yml locations to YAML and everything else to
// JSON.
func FormatFromPath(location string) Format {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		location = location[:i]
	}
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
