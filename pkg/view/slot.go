// Package view provides the headless rendering substrate editors draw into:
// pre-allocated entry slots carrying input state, presentation classes,
// control state, and event bindings.
package view

import (
	"fmt"
	"slices"
	"sort"
)

// EventKind names a UI event.
type EventKind string

const (
	EventChange   EventKind = "change"
	EventInput    EventKind = "input"
	EventKeypress EventKind = "keypress"
	EventClick    EventKind = "click"
)

// Control names the element inside a slot an event targets.
type Control string

const (
	ControlInput  Control = "input"
	ControlClear  Control = "clear"
	ControlAdd    Control = "add"
	ControlRemove Control = "remove"
)

// ClearState is the presentation state of the clear-to-default control.
type ClearState string

const (
	ClearInactive ClearState = "inactive"
	ClearActive   ClearState = "active"
)

// ClassIsSet marks a slot whose field carries an explicit value.
const ClassIsSet = "is-set"

// Event is dispatched to handlers bound on a slot. Index addresses the input
// row for input and remove controls.
type Event struct {
	Kind    EventKind
	Control Control
	Index   int
}

// Handler reacts to a slot event.
type Handler func(Event)

type binding struct {
	kind    EventKind
	control Control
}

// Slot is one pre-allocated entry an editor attaches to. It is never created
// by editors themselves.
type Slot struct {
	index       int
	id          string
	classes     map[string]struct{}
	inputs      []string
	clear       ClearState
	addDisabled bool
	renderer    func() (string, error)
	handlers    map[binding][]Handler
}

// NewSlot allocates an empty slot.
func NewSlot(index int) *Slot {
	return &Slot{
		index:    index,
		id:       fmt.Sprintf("metadata_entry-%d", index),
		classes:  make(map[string]struct{}),
		clear:    ClearInactive,
		handlers: make(map[binding][]Handler),
	}
}

// Index returns the slot position inside its container.
func (s *Slot) Index() int { return s.index }

// ID returns the slot element id.
func (s *Slot) ID() string { return s.id }

// Inputs returns a copy of the current input values in row order.
func (s *Slot) Inputs() []string { return slices.Clone(s.inputs) }

// Input returns the value of row idx, or "" when out of range.
func (s *Slot) Input(idx int) string {
	if idx < 0 || idx >= len(s.inputs) {
		return ""
	}
	return s.inputs[idx]
}

// SetInputs replaces every input row.
func (s *Slot) SetInputs(values []string) {
	s.inputs = slices.Clone(values)
}

// SetInput writes row idx, growing the row set when needed.
func (s *Slot) SetInput(idx int, value string) {
	if idx < 0 {
		return
	}
	for len(s.inputs) <= idx {
		s.inputs = append(s.inputs, "")
	}
	s.inputs[idx] = value
}

// RemoveInput drops row idx. It reports false when idx is out of range.
func (s *Slot) RemoveInput(idx int) bool {
	if idx < 0 || idx >= len(s.inputs) {
		return false
	}
	s.inputs = slices.Delete(s.inputs, idx, idx+1)
	return true
}

// AddClass adds a presentation class.
func (s *Slot) AddClass(name string) { s.classes[name] = struct{}{} }

// RemoveClass removes a presentation class.
func (s *Slot) RemoveClass(name string) { delete(s.classes, name) }

// HasClass reports whether the slot carries class name.
func (s *Slot) HasClass(name string) bool {
	_, ok := s.classes[name]
	return ok
}

// Classes returns the sorted class list.
func (s *Slot) Classes() []string {
	out := make([]string, 0, len(s.classes))
	for name := range s.classes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ClearState returns the clear control state.
func (s *Slot) ClearState() ClearState { return s.clear }

// SetClearState updates the clear control state.
func (s *Slot) SetClearState(state ClearState) { s.clear = state }

// AddDisabled reports whether the add-entry control is disabled.
func (s *Slot) AddDisabled() bool { return s.addDisabled }

// SetAddDisabled toggles the add-entry control.
func (s *Slot) SetAddDisabled(disabled bool) { s.addDisabled = disabled }

// SetRenderer installs the markup producer for this slot.
func (s *Slot) SetRenderer(fn func() (string, error)) { s.renderer = fn }

// Markup renders the slot with its current state. Slots without a renderer
// render blank.
func (s *Slot) Markup() (string, error) {
	if s.renderer == nil {
		return "", nil
	}
	return s.renderer()
}

// On binds handler to events of kind targeting control.
func (s *Slot) On(kind EventKind, control Control, handler Handler) {
	if handler == nil {
		return
	}
	key := binding{kind: kind, control: control}
	s.handlers[key] = append(s.handlers[key], handler)
}

// Bound reports whether any handler listens for kind on control.
func (s *Slot) Bound(kind EventKind, control Control) bool {
	return len(s.handlers[binding{kind: kind, control: control}]) > 0
}

// Unbind removes every handler and the renderer.
func (s *Slot) Unbind() {
	s.handlers = make(map[binding][]Handler)
	s.renderer = nil
}

// Dispatch runs the handlers bound for the event, in binding order, before
// returning.
func (s *Slot) Dispatch(evt Event) {
	handlers := slices.Clone(s.handlers[binding{kind: evt.Kind, control: evt.Control}])
	for _, handler := range handlers {
		handler(evt)
	}
}

// Type simulates typing text into row idx: the value is written, then
// keypress and input fire.
func (s *Slot) Type(idx int, text string) {
	s.SetInput(idx, text)
	s.Dispatch(Event{Kind: EventKeypress, Control: ControlInput, Index: idx})
	s.Dispatch(Event{Kind: EventInput, Control: ControlInput, Index: idx})
}

// Commit fires change on row idx, as a blur after editing would.
func (s *Slot) Commit(idx int) {
	s.Dispatch(Event{Kind: EventChange, Control: ControlInput, Index: idx})
}

// Click fires a click on control; idx addresses the row for remove controls.
func (s *Slot) Click(control Control, idx int) {
	s.Dispatch(Event{Kind: EventClick, Control: control, Index: idx})
}
