package template

import (
	"io"
)

// TemplateRenderer mirrors the github.com/goliatone/go-template engine
// contract. Editors only need lookup by logical name (RenderTemplate) and
// variable substitution; the remaining methods let callers customise the
// engine they hand to a panel.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// Logical template names used by the built-in editors and panel.
const (
	NamePanel       = "metadata-editor"
	NameStringEntry = "transcripts-metadata-string-entry"
	NameListEntry   = "transcripts-metadata-list-entry"
	NameOptionEntry = "metadata-option-entry"
)
