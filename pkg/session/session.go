// Package session edits a panel interactively. Every action is applied
// through the editors' slot gestures, so typed values, clears and list row
// changes go through the same event handlers, commits and propagation as a
// rendered page would.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-metaeditor/pkg/editor"
	"github.com/goliatone/go-metaeditor/pkg/panel"
	"github.com/goliatone/go-metaeditor/pkg/view"
)

// Action is one thing the user can do to a field.
type Action string

const (
	ActionSet    Action = "Set value"
	ActionChoose Action = "Choose option"
	ActionAdd    Action = "Add entry"
	ActionEdit   Action = "Edit entry"
	ActionRemove Action = "Remove entry"
	ActionClear  Action = "Clear"
	ActionBack   Action = "Back"
)

const doneLabel = "Done"

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver replaces the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session drives a prompt loop over one panel.
type Session struct {
	driver PromptDriver
	logger *slog.Logger
}

// New builds a session. The default driver prompts on the terminal.
func New(options ...Option) *Session {
	s := &Session{logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(nil)
	}
	return s
}

// Run loops until the user picks Done. Inert editors are not offered.
func (s *Session) Run(ctx context.Context, p *panel.Panel) error {
	if p == nil {
		return fmt.Errorf("session: panel is required")
	}

	var editors []editor.Editor
	for _, ed := range p.Editors() {
		if ed.Err() == nil {
			editors = append(editors, ed)
		}
	}
	if len(editors) == 0 {
		return s.driver.Info(ctx, fmt.Sprintf("%s has no editable fields", p.Name()))
	}

	for {
		labels := make([]string, 0, len(editors)+1)
		for _, ed := range editors {
			labels = append(labels, describe(ed))
		}
		labels = append(labels, doneLabel)

		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:  fmt.Sprintf("%s: choose a field", p.Name()),
			Options:  labels,
			PageSize: 12,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(editors) {
			return nil
		}

		ed := editors[idx]
		applied, err := s.edit(ctx, ed)
		if err != nil {
			return err
		}
		if !applied {
			continue
		}
		s.logger.Debug("field edited",
			"panel", p.Name(),
			"field", ed.Field().Name(),
			"explicit", ed.Field().IsExplicitlySet(),
		)
		if err := s.driver.Info(ctx, describe(ed)); err != nil {
			return err
		}
	}
}

// Actions lists what can be done to ed.
func Actions(ed editor.Editor) []Action {
	switch ed.(type) {
	case *editor.ListEditor:
		if len(ed.Slot().Inputs()) == 0 {
			return []Action{ActionAdd, ActionClear, ActionBack}
		}
		return []Action{ActionAdd, ActionEdit, ActionRemove, ActionClear, ActionBack}
	case *editor.SelectEditor:
		return []Action{ActionChoose, ActionClear, ActionBack}
	default:
		return []Action{ActionSet, ActionClear, ActionBack}
	}
}

func (s *Session) edit(ctx context.Context, ed editor.Editor) (bool, error) {
	actions := Actions(ed)
	labels := make([]string, len(actions))
	for i, action := range actions {
		labels[i] = string(action)
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message: ed.Field().DisplayName(),
		Options: labels,
		Help:    ed.Field().Help(),
	})
	if err != nil {
		return false, err
	}
	if idx < 0 || idx >= len(actions) {
		return false, nil
	}

	slot := ed.Slot()
	switch actions[idx] {
	case ActionSet:
		current, _ := ed.ValueFromEditor().(string)
		text, err := s.driver.Input(ctx, InputConfig{Message: ed.Field().DisplayName(), Default: current})
		if err != nil {
			return false, err
		}
		slot.Type(0, text)
		slot.Commit(0)
	case ActionChoose:
		return s.choose(ctx, ed)
	case ActionAdd:
		slot.Click(view.ControlAdd, 0)
		row := len(slot.Inputs()) - 1
		text, err := s.driver.Input(ctx, InputConfig{Message: "New entry"})
		if err != nil {
			return false, err
		}
		slot.Type(row, text)
		slot.Commit(row)
	case ActionEdit:
		row, err := s.pickRow(ctx, slot, "Edit which entry?")
		if err != nil || row < 0 {
			return false, err
		}
		text, err := s.driver.Input(ctx, InputConfig{Message: "Entry", Default: slot.Input(row)})
		if err != nil {
			return false, err
		}
		slot.Type(row, text)
		slot.Commit(row)
	case ActionRemove:
		row, err := s.pickRow(ctx, slot, "Remove which entry?")
		if err != nil || row < 0 {
			return false, err
		}
		ok, err := s.driver.Confirm(ctx, ConfirmConfig{Message: fmt.Sprintf("Remove %q?", slot.Input(row)), Default: true})
		if err != nil || !ok {
			return false, err
		}
		slot.Click(view.ControlRemove, row)
	case ActionClear:
		slot.Click(view.ControlClear, 0)
	default:
		return false, nil
	}
	return true, nil
}

func (s *Session) choose(ctx context.Context, ed editor.Editor) (bool, error) {
	options := ed.Field().Options()
	if len(options) == 0 {
		return false, s.driver.Info(ctx, fmt.Sprintf("%s has no options", ed.Field().DisplayName()))
	}
	labels := make([]string, len(options))
	current := -1
	for i, opt := range options {
		labels[i] = opt.DisplayName
		if opt.Value == ed.ValueFromEditor() {
			current = i
		}
	}
	idx, err := s.driver.Select(ctx, SelectConfig{
		Message:      ed.Field().DisplayName(),
		Options:      labels,
		DefaultIndex: current,
	})
	if err != nil {
		return false, err
	}
	if idx < 0 || idx >= len(options) {
		return false, nil
	}
	slot := ed.Slot()
	slot.Type(0, options[idx].Value)
	slot.Commit(0)
	return true, nil
}

func (s *Session) pickRow(ctx context.Context, slot *view.Slot, message string) (int, error) {
	rows := slot.Inputs()
	if len(rows) == 0 {
		return -1, nil
	}
	// rows may repeat until committed, so labels carry their position
	labels := make([]string, len(rows))
	for i, row := range rows {
		labels[i] = fmt.Sprintf("%d. %s", i+1, row)
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: labels})
	if err != nil {
		return -1, err
	}
	if idx < 0 || idx >= len(rows) {
		return -1, nil
	}
	return idx, nil
}

func describe(ed editor.Editor) string {
	model := ed.Field()
	marker := " "
	if model.IsExplicitlySet() {
		marker = "*"
	}
	return fmt.Sprintf("%s %s: %s", marker, model.DisplayName(), formatValue(model.DisplayValue()))
}

func formatValue(value any) string {
	switch v := value.(type) {
	case []string:
		return "[" + strings.Join(v, ", ") + "]"
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
