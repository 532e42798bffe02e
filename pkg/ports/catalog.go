package ports

import (
	"context"
	"errors"

	"github.com/montage-edit/montage"
)

// ErrTimelineNotFound is returned when a timeline name cannot be found in
// the catalog.
var ErrTimelineNotFound = errors.New("timeline not found")

// Catalog defines the interface for persisting timelines by name.
// Implementations must be safe for concurrent use and must not hand out
// aliases of stored trees: a loaded timeline is always independent of the
// stored one.
type Catalog interface {
	// Save persists the timeline under the given name, overwriting any
	// previous version.
	Save(ctx context.Context, name string, tl *montage.Timeline) error

	// Load retrieves the timeline stored under the given name.
	// Returns ErrTimelineNotFound if the name does not exist.
	Load(ctx context.Context, name string) (*montage.Timeline, error)

	// Delete removes the timeline stored under the given name.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored timelines.
	List(ctx context.Context) ([]string, error)
}
