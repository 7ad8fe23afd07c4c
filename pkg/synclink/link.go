// Package synclink propagates committed field values between editors.
//
// A Link names a source field and an ordered set of target fields. When the
// source editor commits, each target receives the (optionally transformed)
// value in its editor and commits it to its own model, which in turn may
// feed further links. The link graph must stay acyclic: Network.Link rejects
// any link that would close a cycle, and a propagation already running for
// an address is never re-entered.
package synclink

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-metaeditor/pkg/field"
)

var (
	// ErrCycle is returned when a link would make propagation cyclic.
	ErrCycle = errors.New("synclink: link would create a cycle")
	// ErrSelfLink is returned when a link targets its own source.
	ErrSelfLink = errors.New("synclink: link targets its own source")
)

// Address identifies one editor: the panel hosting it and its field name.
type Address struct {
	Panel string
	Field string
}

// String renders the address as "panel/field".
func (a Address) String() string {
	return a.Panel + "/" + a.Field
}

// ParseAddress reads a "panel/field" address.
func ParseAddress(raw string) (Address, error) {
	panel, name, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok || panel == "" || name == "" {
		return Address{}, fmt.Errorf("synclink: invalid address %q, want panel/field", raw)
	}
	return Address{Panel: panel, Field: name}, nil
}

// Extractor derives the value a target receives from the source value.
type Extractor func(value any) any

// Identity passes the value through unchanged.
func Identity(value any) any { return field.Clone(value) }

// FirstEntry turns a list into its first entry ("" when empty).
func FirstEntry(value any) any {
	if list, ok := value.([]string); ok {
		if len(list) == 0 {
			return ""
		}
		return list[0]
	}
	return value
}

// AsList wraps a string into a one-entry list (empty when blank).
func AsList(value any) any {
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return []string{}
		}
		return []string{s}
	}
	return value
}

// Target is one propagation destination.
type Target struct {
	Address Address
	// Extract is applied to the source value; nil means Identity.
	Extract Extractor
}

// Link declares that committing Source propagates into Targets, in order.
// With Mirror set, every target also pushes its model changes back into the
// source editor's view (no model write on the source side).
type Link struct {
	Source  Address
	Targets []Target
	Mirror  bool
}

// To is shorthand for a link with identity targets.
func To(source Address, targets ...Address) Link {
	link := Link{Source: source}
	for _, addr := range targets {
		link.Targets = append(link.Targets, Target{Address: addr})
	}
	return link
}

func (l Link) validate() error {
	if l.Source.Panel == "" || l.Source.Field == "" {
		return fmt.Errorf("synclink: link source %q is incomplete", l.Source)
	}
	if len(l.Targets) == 0 {
		return fmt.Errorf("synclink: link from %s has no targets", l.Source)
	}
	for _, target := range l.Targets {
		if target.Address.Panel == "" || target.Address.Field == "" {
			return fmt.Errorf("synclink: link from %s has incomplete target %q", l.Source, target.Address)
		}
		if target.Address == l.Source {
			return fmt.Errorf("%w: %s", ErrSelfLink, l.Source)
		}
	}
	return nil
}

func (t Target) extract(value any) any {
	if t.Extract == nil {
		return Identity(value)
	}
	return t.Extract(field.Clone(value))
}
