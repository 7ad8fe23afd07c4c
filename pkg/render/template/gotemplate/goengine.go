package gotemplate

import (
	"fmt"

	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-metaeditor/pkg/render/template"
	"github.com/goliatone/go-metaeditor/pkg/render/templates"
)

var _ template.TemplateRenderer = (*gotemplatepkg.Engine)(nil)

// NewGoTemplate builds a github.com/goliatone/go-template engine over the
// embedded editor templates, for callers that already configure that engine
// elsewhere (hooks, template funcs). It satisfies template.TemplateRenderer,
// so it can be passed to panel.WithTemplates. Options apply after the
// embedded bundle is set; a go-template WithFS option replaces it.
func NewGoTemplate(options ...gotemplatepkg.Option) (*gotemplatepkg.Engine, error) {
	opts := make([]gotemplatepkg.Option, 0, len(options)+2)
	opts = append(opts,
		gotemplatepkg.WithFS(templates.FS()),
		gotemplatepkg.WithExtension(templates.Extension),
	)
	opts = append(opts, options...)

	engine, err := gotemplatepkg.NewRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: go-template engine: %w", err)
	}
	return engine, nil
}

// Backend names a TemplateRenderer implementation.
type Backend string

const (
	BackendPongo2     Backend = "pongo2"
	BackendGoTemplate Backend = "go-template"
)

// NewBackend builds the default renderer for backend; empty means pongo2.
func NewBackend(backend Backend) (template.TemplateRenderer, error) {
	switch backend {
	case "", BackendPongo2:
		engine, err := NewDefault()
		if err != nil {
			return nil, err
		}
		return engine, nil
	case BackendGoTemplate:
		engine, err := NewGoTemplate()
		if err != nil {
			return nil, err
		}
		return engine, nil
	default:
		return nil, fmt.Errorf("gotemplate: unknown backend %q", backend)
	}
}
