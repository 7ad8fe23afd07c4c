// Package component hosts several editor panels over one sync network, the
// way a component editor shows a basic tab next to the full metadata tab.
package component

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-metaeditor/pkg/panel"
	"github.com/goliatone/go-metaeditor/pkg/schema"
	"github.com/goliatone/go-metaeditor/pkg/synclink"
)

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger shared by the network and every panel.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPanelOptions applies opts to every panel added later, before the
// per-panel options.
func WithPanelOptions(opts ...panel.Option) Option {
	return func(e *Editor) {
		e.defaults = append(e.defaults, opts...)
	}
}

// Editor owns a set of named panels and the links between their fields.
type Editor struct {
	logger   *slog.Logger
	network  *synclink.Network
	defaults []panel.Option
	panels   map[string]*panel.Panel
	order    []string
}

// New creates an editor with an empty network.
func New(options ...Option) *Editor {
	e := &Editor{
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
		panels: make(map[string]*panel.Panel),
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	e.network = synclink.New(synclink.WithLogger(e.logger))
	return e
}

// Network returns the shared sync network.
func (e *Editor) Network() *synclink.Network { return e.network }

// AddPanel builds a panel named name from payload and joins it to the
// network.
func (e *Editor) AddPanel(name string, payload schema.Payload, options ...panel.Option) (*panel.Panel, error) {
	if _, exists := e.panels[name]; exists {
		return nil, fmt.Errorf("component: panel %q already exists", name)
	}

	opts := make([]panel.Option, 0, len(e.defaults)+len(options)+3)
	opts = append(opts, panel.WithLogger(e.logger))
	opts = append(opts, e.defaults...)
	opts = append(opts, options...)
	opts = append(opts, panel.WithName(name), panel.WithNetwork(e.network))

	p, err := panel.New(payload, opts...)
	if err != nil {
		return nil, fmt.Errorf("component: %w", err)
	}
	e.panels[name] = p
	e.order = append(e.order, name)
	return p, nil
}

// Panel returns the panel named name.
func (e *Editor) Panel(name string) (*panel.Panel, bool) {
	p, ok := e.panels[name]
	return p, ok
}

// Panels returns the panels in the order they were added.
func (e *Editor) Panels() []*panel.Panel {
	out := make([]*panel.Panel, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.panels[name])
	}
	return out
}

// Link declares a link on the shared network.
func (e *Editor) Link(link synclink.Link) error {
	return e.network.Link(link)
}

// LinkFields links every field name present in both panels from one to the
// other, in the order of the source panel. Fields whose types differ, or
// whose source has no working editor to commit from, are skipped. It returns
// the linked names.
func (e *Editor) LinkFields(from, to string, mirror bool) ([]string, error) {
	source, ok := e.panels[from]
	if !ok {
		return nil, fmt.Errorf("component: unknown panel %q", from)
	}
	target, ok := e.panels[to]
	if !ok {
		return nil, fmt.Errorf("component: unknown panel %q", to)
	}
	if from == to {
		return nil, errors.New("component: cannot link a panel to itself")
	}

	var linked []string
	for _, model := range source.Models() {
		counterpart, ok := target.Model(model.Name())
		if !ok {
			continue
		}
		if counterpart.Type() != model.Type() {
			e.logger.Warn("skipping link between fields of different types",
				"field", model.Name(),
				"from", string(model.Type()),
				"to", string(counterpart.Type()),
			)
			continue
		}
		if ed, ok := source.Editor(model.Name()); !ok || ed.Err() != nil {
			e.logger.Warn("skipping link from field without a working editor",
				"field", model.Name(),
				"panel", from,
				"type", string(model.Type()),
			)
			continue
		}
		err := e.network.Link(synclink.Link{
			Source:  synclink.Address{Panel: from, Field: model.Name()},
			Targets: []synclink.Target{{Address: synclink.Address{Panel: to, Field: model.Name()}}},
			Mirror:  mirror,
		})
		if err != nil {
			return linked, fmt.Errorf("component: link %s: %w", model.Name(), err)
		}
		linked = append(linked, model.Name())
	}
	return linked, nil
}

// Values returns the explicit values of every panel keyed by panel name.
func (e *Editor) Values() map[string]map[string]any {
	out := make(map[string]map[string]any, len(e.panels))
	for name, p := range e.panels {
		out[name] = p.Values()
	}
	return out
}

// Close closes every panel and the network.
func (e *Editor) Close() {
	for _, name := range e.order {
		e.panels[name].Close()
	}
	e.network.Close()
}
