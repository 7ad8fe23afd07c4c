package editor

import (
	"github.com/goliatone/go-metaeditor/pkg/field"
	"github.com/goliatone/go-metaeditor/pkg/render/template"
	"github.com/goliatone/go-metaeditor/pkg/view"
)

// StringEditor edits a single text value held in input row 0.
type StringEditor struct {
	base
}

var _ Editor = (*StringEditor)(nil)

// NewString is the Constructor for field.TypeString.
func NewString(opts Options) (Editor, error) {
	e := &StringEditor{}
	if err := e.init(e, opts, template.NameStringEntry); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *StringEditor) bind() {
	e.slot.On(view.EventChange, view.ControlInput, func(view.Event) { e.UpdateModel() })
	e.slot.On(view.EventKeypress, view.ControlInput, func(view.Event) { e.showClearButton() })
	e.slot.On(view.EventClick, view.ControlClear, func(view.Event) { e.Clear() })
}

// ValueFromEditor returns the input text as typed.
func (e *StringEditor) ValueFromEditor() any {
	return e.slot.Input(0)
}

// SetValueInEditor replaces the input text.
func (e *StringEditor) SetValueInEditor(value any) {
	text, _ := field.Normalize(field.TypeString, value).(string)
	e.slot.SetInputs([]string{text})
}

// SyncFields pushes the input text to linked partners.
func (e *StringEditor) SyncFields() {
	e.propagate()
}

func (e *StringEditor) templateData() map[string]any {
	return map[string]any{"value": e.slot.Input(0)}
}
