package editor

import (
	"strings"

	"github.com/goliatone/go-metaeditor/pkg/field"
	"github.com/goliatone/go-metaeditor/pkg/render/template"
	"github.com/goliatone/go-metaeditor/pkg/view"
)

// ListEditor edits an ordered list of strings, one input row per entry.
type ListEditor struct {
	base
}

var _ Editor = (*ListEditor)(nil)

// NewList is the Constructor for field.TypeList.
func NewList(opts Options) (Editor, error) {
	e := &ListEditor{}
	if err := e.init(e, opts, template.NameListEntry); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *ListEditor) bind() {
	e.slot.On(view.EventClick, view.ControlClear, func(view.Event) { e.Clear() })
	e.slot.On(view.EventKeypress, view.ControlInput, func(view.Event) { e.showClearButton() })
	e.slot.On(view.EventChange, view.ControlInput, func(view.Event) { e.UpdateModel() })
	e.slot.On(view.EventInput, view.ControlInput, func(view.Event) { e.enableAdd() })
	e.slot.On(view.EventClick, view.ControlAdd, func(view.Event) {
		if !e.slot.AddDisabled() {
			e.AddEntry()
		}
	})
	e.slot.On(view.EventClick, view.ControlRemove, func(evt view.Event) { e.RemoveEntry(evt.Index) })
}

// ValueFromEditor returns the trimmed rows with blanks and repeated entries
// dropped, first occurrence winning.
func (e *ListEditor) ValueFromEditor() any {
	rows := e.slot.Inputs()
	out := make([]string, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		entry := strings.TrimSpace(row)
		if entry == "" {
			continue
		}
		if _, dup := seen[entry]; dup {
			continue
		}
		seen[entry] = struct{}{}
		out = append(out, entry)
	}
	return out
}

// SetValueInEditor rebuilds the rows from value and re-enables the add
// control, since a redrawn list has no pending blank row.
func (e *ListEditor) SetValueInEditor(value any) {
	rows, _ := field.Normalize(field.TypeList, value).([]string)
	e.slot.SetInputs(rows)
	e.slot.SetAddDisabled(false)
}

// SyncFields pushes the filtered list to linked partners.
func (e *ListEditor) SyncFields() {
	e.propagate()
}

// AddEntry appends an empty row after the model's current entries and
// disables the add control until the user types. The model is not touched;
// the next change event commits.
func (e *ListEditor) AddEntry() {
	if e.err != nil {
		return
	}
	entries, _ := e.model.DisplayValue().([]string)
	e.SetValueInEditor(append(entries, ""))
	e.slot.SetAddDisabled(true)
}

// RemoveEntry drops row idx and commits immediately. Rows are addressed by
// position, so duplicate values are unambiguous. It reports false when idx
// does not address a row.
func (e *ListEditor) RemoveEntry(idx int) bool {
	if e.err != nil {
		return false
	}
	if !e.slot.RemoveInput(idx) {
		return false
	}
	e.UpdateModel()
	e.slot.SetAddDisabled(false)
	return true
}

func (e *ListEditor) enableAdd() {
	e.slot.SetAddDisabled(false)
}

func (e *ListEditor) templateData() map[string]any {
	return map[string]any{
		"items":       e.slot.Inputs(),
		"addDisabled": e.slot.AddDisabled(),
	}
}
