package panel

import (
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-metaeditor/pkg/editor"
	"github.com/goliatone/go-metaeditor/pkg/render/template"
	"github.com/goliatone/go-metaeditor/pkg/synclink"
)

// DefaultName is the element id of the basic metadata panel.
const DefaultName = "metadata_edit"

// Option configures a Panel.
type Option func(*config)

type config struct {
	name      string
	registry  *editor.Registry
	templates template.TemplateRenderer
	selector  theme.ThemeSelector
	themeName string
	variant   string
	partials  map[string]string
	network   *synclink.Network
	logger    *slog.Logger
}

// WithName sets the panel name. It is also the panel segment of every
// editor's sync address.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithRegistry overrides the editor registry.
func WithRegistry(registry *editor.Registry) Option {
	return func(c *config) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithTemplates overrides the template renderer. The default renders the
// embedded templates.
func WithTemplates(renderer template.TemplateRenderer) Option {
	return func(c *config) {
		if renderer != nil {
			c.templates = renderer
		}
	}
}

// WithTheme resolves template overrides from the named theme and variant.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(c *config) {
		c.selector = selector
		c.themeName = name
		c.variant = variant
	}
}

// WithPartials maps logical template names to template paths directly.
// Theme templates take precedence.
func WithPartials(partials map[string]string) Option {
	return func(c *config) {
		if c.partials == nil {
			c.partials = make(map[string]string, len(partials))
		}
		for name, path := range partials {
			c.partials[name] = path
		}
	}
}

// WithNetwork joins the panel to a shared sync network. Without it the panel
// owns a private network.
func WithNetwork(network *synclink.Network) Option {
	return func(c *config) {
		c.network = network
	}
}

// WithLogger sets the structured logger for the panel and its editors.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}
