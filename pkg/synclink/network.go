package synclink

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/goliatone/go-metaeditor/pkg/field"
)

// Endpoint is the editor surface propagation needs.
type Endpoint interface {
	Field() *field.Model
	SetValueInEditor(value any)
	UpdateModel()
}

// Option configures a Network.
type Option func(*Network)

// WithLogger routes network diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Network) {
		if logger != nil {
			n.logger = logger
		}
	}
}

type mirrorKey struct {
	source Address
	target Address
}

// Network is the directory of addressable editors plus the link table. It
// runs on the editors' event loop and is not safe for concurrent use.
type Network struct {
	logger    *slog.Logger
	endpoints map[Address]Endpoint
	links     []Link
	active    map[Address]struct{}
	mirrors   map[mirrorKey]func()
}

// New creates an empty network.
func New(options ...Option) *Network {
	n := &Network{
		logger:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		endpoints: make(map[Address]Endpoint),
		active:    make(map[Address]struct{}),
		mirrors:   make(map[mirrorKey]func()),
	}
	for _, opt := range options {
		if opt != nil {
			opt(n)
		}
	}
	return n
}

// Register makes ep addressable. Each address holds one endpoint.
func (n *Network) Register(addr Address, ep Endpoint) error {
	if ep == nil {
		return fmt.Errorf("synclink: endpoint for %s is nil", addr)
	}
	if _, exists := n.endpoints[addr]; exists {
		return fmt.Errorf("synclink: address %s already registered", addr)
	}
	n.endpoints[addr] = ep
	n.wireMirrors()
	return nil
}

// Unregister removes the endpoint at addr and any mirror touching it.
func (n *Network) Unregister(addr Address) {
	delete(n.endpoints, addr)
	for key, unsubscribe := range n.mirrors {
		if key.source == addr || key.target == addr {
			unsubscribe()
			delete(n.mirrors, key)
		}
	}
}

// Lookup returns the endpoint at addr.
func (n *Network) Lookup(addr Address) (Endpoint, bool) {
	ep, ok := n.endpoints[addr]
	return ep, ok
}

// Link adds a link after checking that the propagation graph stays acyclic.
// Targets do not need to be registered yet; missing endpoints are skipped at
// propagation time.
func (n *Network) Link(link Link) error {
	if err := link.validate(); err != nil {
		return err
	}
	link.Targets = slices.Clone(link.Targets)
	for _, target := range link.Targets {
		if n.reaches(target.Address, link.Source) {
			return fmt.Errorf("%w: %s -> %s", ErrCycle, link.Source, target.Address)
		}
	}
	n.links = append(n.links, link)
	n.wireMirrors()
	return nil
}

// Links returns the declared links in order.
func (n *Network) Links() []Link {
	out := make([]Link, len(n.links))
	for i, link := range n.links {
		link.Targets = slices.Clone(link.Targets)
		out[i] = link
	}
	return out
}

// Propagate pushes value from source into every linked target: the target
// editor shows the extracted value, then commits it, which may propagate
// further. Everything completes before Propagate returns. It reports how
// many targets were applied.
func (n *Network) Propagate(source Address, value any) int {
	if _, busy := n.active[source]; busy {
		n.logger.Warn("sync re-entry blocked", "source", source.String())
		return 0
	}
	n.active[source] = struct{}{}
	defer delete(n.active, source)

	applied := 0
	for _, link := range n.links {
		if link.Source != source {
			continue
		}
		for _, target := range link.Targets {
			ep, ok := n.endpoints[target.Address]
			if !ok {
				n.logger.Debug("sync target not registered",
					"source", source.String(),
					"target", target.Address.String(),
				)
				continue
			}
			if _, busy := n.active[target.Address]; busy {
				n.logger.Warn("sync re-entry blocked",
					"source", source.String(),
					"target", target.Address.String(),
				)
				continue
			}
			ep.SetValueInEditor(target.extract(value))
			ep.UpdateModel()
			applied++
		}
	}
	return applied
}

// Close drops every mirror subscription.
func (n *Network) Close() {
	for key, unsubscribe := range n.mirrors {
		unsubscribe()
		delete(n.mirrors, key)
	}
}

// reaches reports whether from can reach to along existing links.
func (n *Network) reaches(from, to Address) bool {
	if from == to {
		return true
	}
	seen := map[Address]struct{}{from: {}}
	queue := []Address{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, link := range n.links {
			if link.Source != current {
				continue
			}
			for _, target := range link.Targets {
				if target.Address == to {
					return true
				}
				if _, ok := seen[target.Address]; ok {
					continue
				}
				seen[target.Address] = struct{}{}
				queue = append(queue, target.Address)
			}
		}
	}
	return false
}

// wireMirrors subscribes source views to target models for every mirrored
// link whose endpoints are both registered.
func (n *Network) wireMirrors() {
	for _, link := range n.links {
		if !link.Mirror {
			continue
		}
		for _, target := range link.Targets {
			key := mirrorKey{source: link.Source, target: target.Address}
			if _, wired := n.mirrors[key]; wired {
				continue
			}
			targetEp, ok := n.endpoints[target.Address]
			if !ok {
				continue
			}
			if _, ok := n.endpoints[link.Source]; !ok {
				continue
			}
			n.mirrors[key] = targetEp.Field().Subscribe(n.mirrorInto(link.Source))
		}
	}
}

func (n *Network) mirrorInto(source Address) field.Listener {
	return func(change field.Change) {
		// the source's own propagation already shows this value
		if _, busy := n.active[source]; busy {
			return
		}
		ep, ok := n.endpoints[source]
		if !ok {
			return
		}
		ep.SetValueInEditor(field.Clone(change.Current))
	}
}
