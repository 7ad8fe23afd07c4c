package view

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSlotTypeFiresKeypressThenInput(t *testing.T) {
	slot := NewSlot(0)

	var seen []EventKind
	slot.On(EventKeypress, ControlInput, func(e Event) { seen = append(seen, e.Kind) })
	slot.On(EventInput, ControlInput, func(e Event) { seen = append(seen, e.Kind) })
	slot.On(EventChange, ControlInput, func(e Event) { seen = append(seen, e.Kind) })

	slot.Type(2, "hello")
	slot.Commit(2)

	if diff := cmp.Diff([]EventKind{EventKeypress, EventInput, EventChange}, seen); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"", "", "hello"}, slot.Inputs()); diff != "" {
		t.Fatalf("inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestSlotClickCarriesIndex(t *testing.T) {
	slot := NewSlot(3)
	got := -1
	slot.On(EventClick, ControlRemove, func(e Event) { got = e.Index })

	slot.Click(ControlRemove, 4)
	if got != 4 {
		t.Fatalf("index = %d, want 4", got)
	}
	if slot.ID() != "metadata_entry-3" {
		t.Fatalf("unexpected id %q", slot.ID())
	}
}

func TestSlotUnbindDropsHandlersAndRenderer(t *testing.T) {
	slot := NewSlot(0)
	called := false
	slot.On(EventClick, ControlClear, func(Event) { called = true })
	slot.SetRenderer(func() (string, error) { return "<div></div>", nil })

	slot.Unbind()
	slot.Click(ControlClear, 0)

	if called {
		t.Fatalf("handler fired after Unbind")
	}
	if slot.Bound(EventClick, ControlClear) {
		t.Fatalf("binding survived Unbind")
	}
	html, err := slot.Markup()
	if err != nil || html != "" {
		t.Fatalf("markup after unbind = %q, %v", html, err)
	}
}

func TestSlotRemoveInput(t *testing.T) {
	slot := NewSlot(0)
	slot.SetInputs([]string{"a", "b", "c"})

	if !slot.RemoveInput(1) {
		t.Fatalf("expected removal")
	}
	if slot.RemoveInput(7) {
		t.Fatalf("out of range removal reported success")
	}
	if diff := cmp.Diff([]string{"a", "c"}, slot.Inputs()); diff != "" {
		t.Fatalf("inputs mismatch (-want +got):\n%s", diff)
	}
}

func TestContainerMarkupStopsOnError(t *testing.T) {
	c := NewContainer("transcripts", 2)
	c.Slot(0).SetRenderer(func() (string, error) { return "<li>a</li>", nil })
	c.Slot(1).SetRenderer(func() (string, error) { return "", errors.New("boom") })

	if _, err := c.Markup(); err == nil {
		t.Fatalf("expected error")
	}
	if c.Slot(5) != nil {
		t.Fatalf("out of range slot should be nil")
	}
}
