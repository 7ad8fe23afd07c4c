package field

import "slices"

// Change describes a model mutation delivered to subscribers.
type Change struct {
	Field    string
	Previous any
	Current  any
	Explicit bool
}

// Listener receives change notifications.
type Listener func(Change)

type subscriber struct {
	id int
	fn Listener
}

type snapshot struct {
	value    any
	explicit bool
}

// Model is the state behind one field. It is not safe for concurrent use; all
// mutations run on the single event loop that drives the editors.
type Model struct {
	name         string
	typ          Type
	displayName  string
	help         string
	options      []Option
	value        any
	defaultValue any
	explicit     bool
	original     snapshot

	subscribers []subscriber
	nextID      int
}

// NewModel builds a model from a descriptor, normalising the value and default
// for the descriptor type.
func NewModel(desc Descriptor) *Model {
	m := &Model{
		name:         desc.Name,
		typ:          desc.Type,
		displayName:  desc.DisplayName,
		help:         desc.Help,
		options:      slices.Clone(desc.Options),
		defaultValue: Normalize(desc.Type, desc.DefaultValue),
	}
	if m.displayName == "" {
		m.displayName = desc.Name
	}

	switch {
	case desc.Explicit != nil:
		m.explicit = *desc.Explicit
	default:
		m.explicit = desc.Value != nil
	}
	if m.explicit {
		m.value = Normalize(desc.Type, desc.Value)
	} else {
		m.value = Clone(m.defaultValue)
	}

	m.original = snapshot{value: Clone(m.value), explicit: m.explicit}
	return m
}

// Name returns the field identifier.
func (m *Model) Name() string { return m.name }

// Type returns the declared field type.
func (m *Model) Type() Type { return m.typ }

// DisplayName returns the human label, falling back to Name.
func (m *Model) DisplayName() string { return m.displayName }

// Help returns the free-form help text from the payload.
func (m *Model) Help() string { return m.help }

// Options returns a copy of the selectable choices.
func (m *Model) Options() []Option { return slices.Clone(m.options) }

// Value returns the stored value.
func (m *Model) Value() any { return Clone(m.value) }

// DefaultValue returns the value the field reverts to on Clear.
func (m *Model) DefaultValue() any { return Clone(m.defaultValue) }

// DisplayValue returns what an editor shows: the stored value when explicitly
// set, the default otherwise.
func (m *Model) DisplayValue() any {
	if m.explicit {
		return Clone(m.value)
	}
	return Clone(m.defaultValue)
}

// IsExplicitlySet reports whether the current value came from Set.
func (m *Model) IsExplicitlySet() bool { return m.explicit }

// IsModified reports whether the value or explicit flag changed since the
// model was built.
func (m *Model) IsModified() bool {
	if m.explicit != m.original.explicit {
		return true
	}
	return !Equal(m.value, m.original.value)
}

// Set stores value as explicitly set and notifies subscribers.
func (m *Model) Set(value any) {
	previous := m.DisplayValue()
	m.value = Normalize(m.typ, value)
	m.explicit = true
	m.notify(previous)
}

// Clear reverts to the default value and notifies subscribers.
func (m *Model) Clear() {
	previous := m.DisplayValue()
	m.value = Clone(m.defaultValue)
	m.explicit = false
	m.notify(previous)
}

// Subscribe registers fn for change notifications. The returned function
// removes the subscription and is safe to call more than once.
func (m *Model) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	m.nextID++
	id := m.nextID
	m.subscribers = append(m.subscribers, subscriber{id: id, fn: fn})
	return func() {
		m.subscribers = slices.DeleteFunc(m.subscribers, func(s subscriber) bool {
			return s.id == id
		})
	}
}

// Subscribers reports the number of active listeners.
func (m *Model) Subscribers() int { return len(m.subscribers) }

func (m *Model) notify(previous any) {
	if len(m.subscribers) == 0 {
		return
	}
	change := Change{
		Field:    m.name,
		Previous: previous,
		Current:  m.DisplayValue(),
		Explicit: m.explicit,
	}
	// listeners may unsubscribe while being notified
	listeners := slices.Clone(m.subscribers)
	for _, sub := range listeners {
		sub.fn(change)
	}
}
