package editor

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-metaeditor/pkg/field"
)

// Registry maps field types to editor constructors. Panels consult it once
// per field; types without an entry are modelled but not rendered.
type Registry struct {
	mu           sync.RWMutex
	constructors map[field.Type]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[field.Type]Constructor)}
}

// NewDefaultRegistry returns a registry with the String, List and Select
// editors registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(field.TypeString, NewString)
	r.MustRegister(field.TypeList, NewList)
	r.MustRegister(field.TypeSelect, NewSelect)
	return r
}

// Register associates a constructor with a field type, replacing any
// existing entry.
func (r *Registry) Register(t field.Type, ctor Constructor) error {
	name := field.Type(strings.TrimSpace(string(t)))
	if name == "" {
		return fmt.Errorf("editor: field type is required")
	}
	if ctor == nil {
		return fmt.Errorf("editor: constructor for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[name] = ctor
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(t field.Type, ctor Constructor) {
	if err := r.Register(t, ctor); err != nil {
		panic(err)
	}
}

// Lookup returns the constructor for t.
func (r *Registry) Lookup(t field.Type) (Constructor, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctor, ok := r.constructors[field.Type(strings.TrimSpace(string(t)))]
	return ctor, ok
}

// Types returns the registered types, sorted.
func (r *Registry) Types() []field.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]field.Type, 0, len(r.constructors))
	for t := range r.constructors {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy so callers can add variants without
// touching a shared registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cloned := NewRegistry()
	for t, ctor := range r.constructors {
		cloned.constructors[t] = ctor
	}
	return cloned
}
