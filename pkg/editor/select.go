package editor

import (
	"github.com/goliatone/go-metaeditor/pkg/field"
	"github.com/goliatone/go-metaeditor/pkg/render/template"
	"github.com/goliatone/go-metaeditor/pkg/view"
)

// SelectEditor picks one value out of the field options.
type SelectEditor struct {
	base
}

var _ Editor = (*SelectEditor)(nil)

// NewSelect is the Constructor for field.TypeSelect.
func NewSelect(opts Options) (Editor, error) {
	e := &SelectEditor{}
	if err := e.init(e, opts, template.NameOptionEntry); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *SelectEditor) bind() {
	e.slot.On(view.EventChange, view.ControlInput, func(view.Event) { e.UpdateModel() })
	e.slot.On(view.EventClick, view.ControlClear, func(view.Event) { e.Clear() })
}

// ValueFromEditor returns the selected option value.
func (e *SelectEditor) ValueFromEditor() any {
	return e.slot.Input(0)
}

// SetValueInEditor selects value.
func (e *SelectEditor) SetValueInEditor(value any) {
	selected, _ := field.Normalize(field.TypeSelect, value).(string)
	e.slot.SetInputs([]string{selected})
}

// SyncFields pushes the selected value to linked partners.
func (e *SelectEditor) SyncFields() {
	e.propagate()
}

func (e *SelectEditor) templateData() map[string]any {
	options := e.model.Options()
	rows := make([]map[string]any, 0, len(options))
	for _, opt := range options {
		rows = append(rows, map[string]any{
			"display_name": opt.DisplayName,
			"value":        opt.Value,
		})
	}
	return map[string]any{
		"value":   e.slot.Input(0),
		"options": rows,
	}
}
