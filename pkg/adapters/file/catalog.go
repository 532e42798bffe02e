// Package file provides a catalog backed by JSON files on the local
// filesystem, one file per timeline.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/montage-edit/montage"
	"github.com/montage-edit/montage/pkg/encoding"
	"github.com/montage-edit/montage/pkg/ports"
	"github.com/montage-edit/montage/pkg/registry"
)

// Catalog implements ports.Catalog on the local filesystem.
type Catalog struct {
	BasePath string
	registry *registry.Registry
}

// New creates a Catalog rooted at basePath. If basePath is empty, it
// defaults to ".montage/timelines". A nil registry uses the built-in kinds.
func New(basePath string, reg *registry.Registry) *Catalog {
	if basePath == "" {
		basePath = filepath.Join(".montage", "timelines")
	}
	if reg == nil {
		reg = registry.Default()
	}
	return &Catalog{BasePath: basePath, registry: reg}
}

// Save persists the timeline to a JSON file atomically: it writes to a
// temporary file in the same directory, syncs, and renames it into place.
func (c *Catalog) Save(ctx context.Context, name string, tl *montage.Timeline) error {
	if name == "" {
		return fmt.Errorf("timeline name cannot be empty")
	}
	if err := os.MkdirAll(c.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure catalog directory: %w", err)
	}

	data, err := encoding.Marshal(tl)
	if err != nil {
		return fmt.Errorf("failed to marshal timeline: %w", err)
	}

	destPath := filepath.Join(c.BasePath, name+".json")
	tmpFile, err := os.CreateTemp(c.BasePath, "tmp-"+name+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to move timeline file into place: %w", err)
	}
	return nil
}

// Load reads and decodes the timeline stored under name.
func (c *Catalog) Load(ctx context.Context, name string) (*montage.Timeline, error) {
	data, err := os.ReadFile(filepath.Join(c.BasePath, name+".json"))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ports.ErrTimelineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline file: %w", err)
	}
	return encoding.Unmarshal(data, c.registry)
}

// Delete removes the timeline file. Deleting a missing timeline is not an
// error.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	err := os.Remove(filepath.Join(c.BasePath, name+".json"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete timeline file: %w", err)
	}
	return nil
}

// List returns the names of all stored timelines.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(c.BasePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	return names, nil
}
