// Package panel builds an editor panel from a schema payload: one field model
// per descriptor, one view slot per model and one editor per model whose type
// has a registered editor. Editors join a sync network under the address
// (panel name, field name).
package panel

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/goliatone/go-metaeditor/pkg/editor"
	"github.com/goliatone/go-metaeditor/pkg/field"
	"github.com/goliatone/go-metaeditor/pkg/render/template"
	"github.com/goliatone/go-metaeditor/pkg/render/template/gotemplate"
	"github.com/goliatone/go-metaeditor/pkg/schema"
	"github.com/goliatone/go-metaeditor/pkg/synclink"
	"github.com/goliatone/go-metaeditor/pkg/view"
)

// Diagnostic records a field the panel could not fully set up.
type Diagnostic struct {
	Field   string
	Level   slog.Level
	Message string
	Err     error
}

func (d Diagnostic) String() string {
	if d.Err != nil {
		return fmt.Sprintf("%s: %s: %v", d.Field, d.Message, d.Err)
	}
	return d.Field + ": " + d.Message
}

// Panel owns the models, slots and editors of one payload.
type Panel struct {
	name        string
	logger      *slog.Logger
	templates   template.TemplateRenderer
	partials    map[string]string
	container   *view.Container
	models      []*field.Model
	index       map[string]int
	editors     []editor.Editor
	byField     map[string]editor.Editor
	network     *synclink.Network
	ownsNetwork bool
	registered  []synclink.Address
	diagnostics []Diagnostic
}

// FromJSON parses a JSON payload and builds a panel from it. A malformed
// payload is fatal.
func FromJSON(data []byte, options ...Option) (*Panel, error) {
	payload, err := schema.ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("panel: %w", err)
	}
	return New(payload, options...)
}

// New builds a panel for payload.
func New(payload schema.Payload, options ...Option) (*Panel, error) {
	cfg := config{name: DefaultName}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	cfg.name = strings.TrimSpace(cfg.name)
	if cfg.name == "" {
		return nil, errors.New("panel: name is required")
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.registry == nil {
		cfg.registry = editor.NewDefaultRegistry()
	}
	if cfg.templates == nil {
		engine, err := gotemplate.NewDefault()
		if err != nil {
			return nil, fmt.Errorf("panel: default templates: %w", err)
		}
		cfg.templates = engine
	}
	partials, err := template.Select(cfg.selector, cfg.themeName, cfg.variant, cfg.partials)
	if err != nil {
		return nil, fmt.Errorf("panel: select theme %q: %w", cfg.themeName, err)
	}

	seen := make(map[string]struct{}, len(payload))
	for _, desc := range payload {
		if strings.TrimSpace(desc.Name) == "" {
			return nil, errors.New("panel: payload contains a field without a name")
		}
		if _, dup := seen[desc.Name]; dup {
			return nil, fmt.Errorf("panel: duplicate field %q", desc.Name)
		}
		seen[desc.Name] = struct{}{}
	}

	p := &Panel{
		name:      cfg.name,
		logger:    cfg.logger.With("panel", cfg.name),
		templates: cfg.templates,
		partials:  partials,
		index:     make(map[string]int, len(payload)),
		byField:   make(map[string]editor.Editor, len(payload)),
		network:   cfg.network,
	}
	if p.network == nil {
		p.network = synclink.New(synclink.WithLogger(cfg.logger))
		p.ownsNetwork = true
	}

	// the container is drawn first so the entry slots exist before any editor
	// binds to them
	if _, err := p.renderContainer(make([]map[string]any, len(payload))); err != nil {
		p.logger.Error("couldn't load template",
			"template", template.Resolve(p.partials, template.NamePanel),
			"error", err,
		)
		p.diagnose("", slog.LevelError, "container template unavailable", err)
	}
	p.container = view.NewContainer(p.name, len(payload))

	for i, desc := range payload {
		model := field.NewModel(desc)
		p.index[model.Name()] = len(p.models)
		p.models = append(p.models, model)

		if err := p.attach(cfg.registry, model, p.container.Slot(i)); err != nil {
			p.Close()
			return nil, err
		}
	}
	p.logger.Debug("panel built", "fields", payload.Names(), "editors", len(p.editors))
	return p, nil
}

func (p *Panel) attach(registry *editor.Registry, model *field.Model, slot *view.Slot) error {
	ctor, ok := registry.Lookup(model.Type())
	if !ok {
		p.logger.Debug("no editor registered for field type",
			"field", model.Name(),
			"type", string(model.Type()),
		)
		p.diagnose(model.Name(), slog.LevelDebug, fmt.Sprintf("type %q has no editor", model.Type()), nil)
		return nil
	}

	addr := synclink.Address{Panel: p.name, Field: model.Name()}
	ed, err := ctor(editor.Options{
		Model:     model,
		Slot:      slot,
		Templates: p.templates,
		Partials:  p.partials,
		Sync:      func(value any) { p.network.Propagate(addr, value) },
		Logger:    p.logger,
	})
	if err != nil {
		return fmt.Errorf("panel: build editor for %q: %w", model.Name(), err)
	}
	p.editors = append(p.editors, ed)
	p.byField[model.Name()] = ed

	if err := ed.Err(); err != nil {
		// inert editors stay out of the network
		p.diagnose(model.Name(), slog.LevelError, "editor template unavailable", err)
		return nil
	}
	if err := p.network.Register(addr, ed); err != nil {
		return fmt.Errorf("panel: %w", err)
	}
	p.registered = append(p.registered, addr)
	return nil
}

func (p *Panel) diagnose(name string, level slog.Level, msg string, err error) {
	p.diagnostics = append(p.diagnostics, Diagnostic{Field: name, Level: level, Message: msg, Err: err})
}

// Name returns the panel name.
func (p *Panel) Name() string { return p.name }

// Network returns the sync network the editors are registered with.
func (p *Panel) Network() *synclink.Network { return p.network }

// Container returns the entry slots.
func (p *Panel) Container() *view.Container { return p.container }

// Models returns the field models in payload order.
func (p *Panel) Models() []*field.Model { return slices.Clone(p.models) }

// Model returns the model for name.
func (p *Panel) Model(name string) (*field.Model, bool) {
	i, ok := p.index[name]
	if !ok {
		return nil, false
	}
	return p.models[i], true
}

// Editors returns the editors in payload order.
func (p *Panel) Editors() []editor.Editor { return slices.Clone(p.editors) }

// Editor returns the editor for name.
func (p *Panel) Editor(name string) (editor.Editor, bool) {
	ed, ok := p.byField[name]
	return ed, ok
}

// Render draws the container with the current markup of every entry.
func (p *Panel) Render() (string, error) {
	entries := make([]map[string]any, 0, p.container.Len())
	for _, slot := range p.container.Slots() {
		html, err := slot.Markup()
		if err != nil {
			return "", fmt.Errorf("panel: render entry %s: %w", slot.ID(), err)
		}
		entries = append(entries, map[string]any{
			"id":      slot.ID(),
			"classes": strings.Join(slot.Classes(), " "),
			"html":    html,
		})
	}
	out, err := p.renderContainer(entries)
	if err != nil {
		return "", fmt.Errorf("panel: render %s: %w", p.name, err)
	}
	return out, nil
}

func (p *Panel) renderContainer(entries []map[string]any) (string, error) {
	for i, entry := range entries {
		if entry == nil {
			entries[i] = map[string]any{"id": fmt.Sprintf("metadata_entry-%d", i)}
		}
	}
	return p.templates.RenderTemplate(template.Resolve(p.partials, template.NamePanel), map[string]any{
		"name":       p.name,
		"numEntries": len(entries),
		"entries":    entries,
	})
}

// Values returns the explicitly set values keyed by field name.
func (p *Panel) Values() map[string]any {
	out := make(map[string]any)
	for _, model := range p.models {
		if model.IsExplicitlySet() {
			out[model.Name()] = model.Value()
		}
	}
	return out
}

// ModifiedValues returns the fields changed since construction. Fields
// reverted to their default map to nil.
func (p *Panel) ModifiedValues() map[string]any {
	out := make(map[string]any)
	for _, model := range p.models {
		if !model.IsModified() {
			continue
		}
		if model.IsExplicitlySet() {
			out[model.Name()] = model.Value()
		} else {
			out[model.Name()] = nil
		}
	}
	return out
}

// Diagnostics lists the fields that were modelled without a working editor.
func (p *Panel) Diagnostics() []Diagnostic { return slices.Clone(p.diagnostics) }

// Close detaches every editor and leaves the network.
func (p *Panel) Close() {
	for _, addr := range p.registered {
		p.network.Unregister(addr)
	}
	p.registered = nil
	for _, ed := range p.editors {
		ed.Close()
	}
	if p.container != nil {
		p.container.Unbind()
	}
	if p.ownsNetwork {
		p.network.Close()
	}
}
