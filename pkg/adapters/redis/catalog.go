// Package redis provides a catalog backed by Redis, for sharing timelines
// between processes.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/montage-edit/montage"
	"github.com/montage-edit/montage/pkg/encoding"
	"github.com/montage-edit/montage/pkg/ports"
	"github.com/montage-edit/montage/pkg/registry"
)

const defaultPrefix = "montage:timeline:"

// Catalog implements ports.Catalog on Redis. Timelines are stored as JSON
// documents under prefixed keys.
type Catalog struct {
	client   *backend.Client
	prefix   string
	ttl      time.Duration
	registry *registry.Registry
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithTTL makes stored timelines expire after d.
func WithTTL(d time.Duration) Option {
	return func(c *Catalog) {
		c.ttl = d
	}
}

// WithPrefix changes the key prefix (default "montage:timeline:").
func WithPrefix(prefix string) Option {
	return func(c *Catalog) {
		c.prefix = prefix
	}
}

// WithRegistry sets the registry used to rebuild trees on Load.
func WithRegistry(reg *registry.Registry) Option {
	return func(c *Catalog) {
		c.registry = reg
	}
}

// NewFromClient creates a Catalog using an existing Redis client.
func NewFromClient(client *backend.Client, opts ...Option) *Catalog {
	c := &Catalog{
		client:   client,
		prefix:   defaultPrefix,
		registry: registry.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) key(name string) string {
	return c.prefix + name
}

// Save stores the encoded timeline, overwriting any previous version.
func (c *Catalog) Save(ctx context.Context, name string, tl *montage.Timeline) error {
	data, err := encoding.Marshal(tl)
	if err != nil {
		return fmt.Errorf("failed to marshal timeline: %w", err)
	}
	if err := c.client.Set(ctx, c.key(name), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis error saving timeline: %w", err)
	}
	return nil
}

// Load retrieves and decodes the timeline stored under name.
func (c *Catalog) Load(ctx context.Context, name string) (*montage.Timeline, error) {
	data, err := c.client.Get(ctx, c.key(name)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, ports.ErrTimelineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error loading timeline: %w", err)
	}
	return encoding.Unmarshal(data, c.registry)
}

// Delete removes the timeline stored under name.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	if err := c.client.Del(ctx, c.key(name)).Err(); err != nil {
		return fmt.Errorf("redis error deleting timeline: %w", err)
	}
	return nil
}

// List scans for stored timeline names.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), c.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis error listing timelines: %w", err)
	}
	return names, nil
}
