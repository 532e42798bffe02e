// Package registry maps kind labels to node constructors so external layers
// (serialization, tooling) can rebuild composition trees from stored kind
// tags. Registration is explicit: a table is constructed during process
// setup and passed by reference to whatever needs kind lookup; node types
// never register themselves as a side effect of being defined.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/montage-edit/montage/pkg/core"
	"github.com/montage-edit/montage/pkg/opentime"
)

// Factory constructs an empty node of a registered kind.
type Factory func() core.Composable

// ErrUnknownKind is wrapped into errors returned for unregistered labels.
var ErrUnknownKind = fmt.Errorf("unknown kind")

// Registry manages the known node kinds.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Factory
}

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		kinds: make(map[string]Factory),
	}
}

// Default returns a registry pre-populated with the built-in kinds.
func Default() *Registry {
	r := New()
	r.Register(core.KindClip, func() core.Composable {
		return core.NewClip("", nil)
	})
	r.Register(core.KindGap, func() core.Composable {
		return core.NewGap(opentime.New(0, 1))
	})
	r.Register(core.KindTrack, func() core.Composable {
		t, _ := core.NewTrack("")
		return t
	})
	r.Register(core.KindStack, func() core.Composable {
		s, _ := core.NewStack("")
		return s
	})
	return r
}

// Register adds a kind to the registry.
// If a kind with the same label exists, it is overwritten.
func (r *Registry) Register(kind string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds[kind] = factory
}

// Create looks up a kind by label and constructs an empty node of it.
// Returns an error wrapping ErrUnknownKind if the label is not registered.
func (r *Registry) Create(kind string) (core.Composable, error) {
	r.mu.RLock()
	factory, ok := r.kinds[kind]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return factory(), nil
}

// Kinds returns the registered labels in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.kinds))
	for kind := range r.kinds {
		out = append(out, kind)
	}
	sort.Strings(out)
	return out
}
