// Package editor implements the field editor contract and its built-in
// variants. An editor binds one field model to one view slot: it renders the
// model into the slot on every change notification, reads user input back
// out of the slot, and pushes committed values to linked partner editors
// through an injected SyncFunc.
package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/goliatone/go-metaeditor/pkg/field"
	"github.com/goliatone/go-metaeditor/pkg/render/template"
	"github.com/goliatone/go-metaeditor/pkg/view"
)

// ErrTemplateMissing marks an editor whose template could not be rendered.
// Such editors stay blank and inert.
var ErrTemplateMissing = errors.New("editor: template unavailable")

// Editor is the contract every variant satisfies.
type Editor interface {
	Field() *field.Model
	Slot() *view.Slot
	TemplateName() string
	// ValueFromEditor reads the edited value from the slot, ignoring the model.
	ValueFromEditor() any
	// SetValueInEditor writes value into the slot without touching the model.
	SetValueInEditor(value any)
	// UpdateModel commits ValueFromEditor to the model, then runs SyncFields.
	UpdateModel()
	// Clear reverts the model to its default.
	Clear()
	// SyncFields pushes the current value to linked partners. Variants that
	// keep the base no-op cannot serve as link sources.
	SyncFields()
	Render()
	Err() error
	Close()
}

// SyncFunc hands a committed value to the sync network.
type SyncFunc func(value any)

// Options carries everything a constructor needs.
type Options struct {
	Model     *field.Model
	Slot      *view.Slot
	Templates template.TemplateRenderer
	// Partials maps logical template names to themed template paths.
	Partials map[string]string
	Sync     SyncFunc
	Logger   *slog.Logger
	// UniqueID overrides the generated element id.
	UniqueID string
}

// Constructor builds an editor variant.
type Constructor func(Options) (Editor, error)

// variant is implemented by concrete editors so the shared base can reach
// their overrides.
type variant interface {
	ValueFromEditor() any
	SetValueInEditor(value any)
	SyncFields()
	bind()
	templateData() map[string]any
}

var uniqueCounter atomic.Int64

func nextUniqueID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, uniqueCounter.Add(1))
}

type base struct {
	self         variant
	model        *field.Model
	slot         *view.Slot
	templates    template.TemplateRenderer
	templateName string
	sync         SyncFunc
	logger       *slog.Logger
	uniqueID     string
	err          error
	unsubscribe  func()
}

func (b *base) init(self variant, opts Options, templateName string) error {
	if opts.Model == nil {
		return errors.New("editor: model is required")
	}
	if opts.Slot == nil {
		return fmt.Errorf("editor: slot is required for field %q", opts.Model.Name())
	}

	b.self = self
	b.model = opts.Model
	b.slot = opts.Slot
	b.templates = opts.Templates
	b.templateName = template.Resolve(opts.Partials, templateName)
	b.sync = opts.Sync
	b.logger = opts.Logger
	if b.logger == nil {
		b.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	b.uniqueID = opts.UniqueID
	if b.uniqueID == "" {
		b.uniqueID = nextUniqueID(templateName)
	}

	if _, err := b.markup(); err != nil {
		b.err = fmt.Errorf("%w: %q for field %q: %v", ErrTemplateMissing, b.templateName, b.model.Name(), err)
		b.logger.Error("couldn't load template",
			"template", b.templateName,
			"field", b.model.Name(),
			"error", err,
		)
		return nil
	}

	// subscribe before the first render so programmatic Set/Clear always
	// re-render
	b.unsubscribe = b.model.Subscribe(func(field.Change) { b.Render() })
	self.bind()
	b.slot.SetRenderer(b.markup)
	b.Render()
	return nil
}

// Field returns the bound model.
func (b *base) Field() *field.Model { return b.model }

// Slot returns the slot the editor draws into.
func (b *base) Slot() *view.Slot { return b.slot }

// TemplateName returns the resolved template path.
func (b *base) TemplateName() string { return b.templateName }

// Err reports the construction error of a degraded editor.
func (b *base) Err() error { return b.err }

// Render writes the display value into the slot and derives the clear
// control state from the model.
func (b *base) Render() {
	if b.err != nil {
		return
	}
	b.self.SetValueInEditor(b.model.DisplayValue())
	if b.model.IsExplicitlySet() {
		b.showClearButton()
		return
	}
	b.slot.RemoveClass(view.ClassIsSet)
	b.slot.SetClearState(view.ClearInactive)
}

// UpdateModel commits the edited value and propagates it.
func (b *base) UpdateModel() {
	if b.err != nil {
		return
	}
	b.model.Set(b.self.ValueFromEditor())
	b.self.SyncFields()
}

// Clear reverts the model to its default; the change notification
// re-renders the slot.
func (b *base) Clear() {
	if b.err != nil {
		return
	}
	b.model.Clear()
}

// SyncFields is a no-op for variants that do not propagate.
func (b *base) SyncFields() {}

// Close detaches the editor from its model and slot.
func (b *base) Close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
	b.slot.Unbind()
}

func (b *base) showClearButton() {
	if b.slot.HasClass(view.ClassIsSet) {
		return
	}
	b.slot.AddClass(view.ClassIsSet)
	b.slot.SetClearState(view.ClearActive)
}

func (b *base) propagate() {
	if b.sync == nil || b.err != nil {
		return
	}
	b.sync(b.self.ValueFromEditor())
}

func (b *base) markup() (string, error) {
	if b.templates == nil {
		return "", errors.New("template renderer not configured")
	}
	data := map[string]any{
		"uniqueId":   b.uniqueID,
		"isSet":      b.slot.HasClass(view.ClassIsSet),
		"clearState": string(b.slot.ClearState()),
		"model": map[string]any{
			"name":        b.model.Name(),
			"type":        string(b.model.Type()),
			"displayName": b.model.DisplayName(),
			"help":        template.SanitizeHelp(b.model.Help()),
			"explicit":    b.model.IsExplicitlySet(),
		},
	}
	for key, value := range b.self.templateData() {
		data[key] = value
	}
	return b.templates.RenderTemplate(b.templateName, data)
}
