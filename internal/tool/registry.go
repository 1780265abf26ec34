package tool

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry holds registered tool descriptors in registration order.
// It is instance-based (not global) for better testability. Registration
// happens once at startup; reads afterwards are lock-free in practice but
// guarded anyway so an embedding host can share one registry.
type Registry struct {
	mu      sync.RWMutex
	ordered []Descriptor
	names   map[string]struct{}
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]struct{}),
	}
}

// Register adds a descriptor to the registry.
// It returns ErrEmptyToolName for a blank name, ErrUnknownGroup for a group
// outside the fixed set, ErrNilFactory for a missing factory, and
// ErrDuplicateTool if the name is already taken.
func (r *Registry) Register(d Descriptor) error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return ErrEmptyToolName
	}
	if !slices.Contains(Groups, d.Group) {
		return fmt.Errorf("%w: %q (tool %s)", ErrUnknownGroup, d.Group, name)
	}
	if d.New == nil {
		return fmt.Errorf("%w: %s", ErrNilFactory, name)
	}
	d.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.names[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTool, name)
	}

	r.names[name] = struct{}{}
	r.ordered = append(r.ordered, d)
	return nil
}

// All returns every registered descriptor in registration order.
// The returned slice is a copy.
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.ordered)
}

// Resolve instantiates the tools matched by the selection, in registration
// order. A descriptor is included iff the selection is ALL, or its token set
// contains the descriptor's name or group, and the factory yields a handle.
// Tokens that match nothing are silently ignored, which keeps configs naming
// unknown tools or groups forward and backward compatible.
func (r *Registry) Resolve(sel Selection) []Active {
	if sel.IsNone() {
		return nil
	}

	r.mu.RLock()
	ordered := r.ordered
	r.mu.RUnlock()

	var active []Active
	for _, d := range ordered {
		if !sel.IsAll() && !sel.Has(d.Name) && !sel.Has(d.Group) {
			continue
		}
		t, ok := d.New()
		if !ok {
			continue
		}
		active = append(active, Active{Descriptor: d, Tool: t})
	}
	return active
}
