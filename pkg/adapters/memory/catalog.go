// Package memory provides an in-memory catalog, useful for tests and
// single-process tooling.
package memory

import (
	"context"
	"sync"

	"github.com/montage-edit/montage"
	"github.com/montage-edit/montage/pkg/ports"
)

// Catalog implements ports.Catalog in memory.
// Safe for concurrent use.
type Catalog struct {
	data map[string]*montage.Timeline
	mu   sync.RWMutex
}

// NewCatalog creates a new in-memory catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		data: make(map[string]*montage.Timeline),
	}
}

// Save stores a deep copy of the timeline, so later mutation of the caller's
// tree cannot reach the stored version.
func (c *Catalog) Save(ctx context.Context, name string, tl *montage.Timeline) error {
	copied := tl.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[name] = copied
	return nil
}

// Load retrieves a deep copy of the stored timeline.
func (c *Catalog) Load(ctx context.Context, name string) (*montage.Timeline, error) {
	c.mu.RLock()
	tl, ok := c.data[name]
	c.mu.RUnlock()

	if !ok {
		return nil, ports.ErrTimelineNotFound
	}
	return tl.Clone(), nil
}

// Delete removes the stored timeline.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, name)
	return nil
}

// List returns stored timeline names.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.data))
	for name := range c.data {
		names = append(names, name)
	}
	return names, nil
}
