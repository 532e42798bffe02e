package montage

import (
	"log/slog"

	"github.com/montage-edit/montage/internal/logging"
	"github.com/montage-edit/montage/pkg/core"
	"github.com/montage-edit/montage/pkg/opentime"
)

// Timeline is the top-level editorial object: a named stack of tracks with
// an optional global start time (the program start of the cut).
type Timeline struct {
	name        string
	globalStart *opentime.RationalTime
	tracks      *core.Stack
	metadata    map[string]any
	logger      *slog.Logger
}

// Option defines a functional option for configuring a Timeline.
type Option func(*Timeline)

// WithGlobalStart sets the timeline's global start time.
func WithGlobalStart(t opentime.RationalTime) Option {
	return func(tl *Timeline) {
		start := t
		tl.globalStart = &start
	}
}

// WithTracks injects an existing track stack instead of an empty one.
func WithTracks(tracks *core.Stack) Option {
	return func(tl *Timeline) {
		tl.tracks = tracks
	}
}

// WithMetadata seeds the timeline's metadata map.
func WithMetadata(metadata map[string]any) Option {
	return func(tl *Timeline) {
		tl.metadata = metadata
	}
}

// WithLogger sets a custom logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(tl *Timeline) {
		tl.logger = logger
	}
}

// New creates a timeline with an empty track stack unless one is injected.
func New(name string, opts ...Option) *Timeline {
	tl := &Timeline{
		name:   name,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(tl)
	}
	if tl.tracks == nil {
		// A fresh stack cannot fail construction.
		tl.tracks, _ = core.NewStack("tracks")
	}
	tl.logger.Debug("timeline created", "name", name, "tracks", tl.tracks.Len())
	return tl
}

func (tl *Timeline) Name() string        { return tl.name }
func (tl *Timeline) SetName(name string) { tl.name = name }

// Tracks returns the root stack. Mutating it mutates the timeline.
func (tl *Timeline) Tracks() *core.Stack { return tl.tracks }

// GlobalStart returns the global start time, or nil if unset.
func (tl *Timeline) GlobalStart() *opentime.RationalTime {
	return tl.globalStart
}

// SetGlobalStart replaces the global start time; nil clears it.
func (tl *Timeline) SetGlobalStart(t *opentime.RationalTime) {
	if t == nil {
		tl.globalStart = nil
		return
	}
	start := *t
	tl.globalStart = &start
}

// Metadata returns the timeline's mutable metadata map.
func (tl *Timeline) Metadata() map[string]any {
	if tl.metadata == nil {
		tl.metadata = make(map[string]any)
	}
	return tl.metadata
}

// Duration returns the duration of the longest track.
func (tl *Timeline) Duration() (opentime.RationalTime, error) {
	return tl.tracks.Duration()
}

// RangeOfChild computes a descendant's range in the track stack's frame.
func (tl *Timeline) RangeOfChild(child core.Composable) (opentime.TimeRange, error) {
	return tl.tracks.RangeOfChild(child, nil)
}

// EachClip walks every clip in the timeline in depth-first track order,
// optionally restricted to a search range.
func (tl *Timeline) EachClip(searchRange *opentime.TimeRange) *core.Walker {
	return tl.tracks.EachChild(searchRange, core.OfKind[*core.Clip]())
}

// Clone returns a deep copy of the timeline.
func (tl *Timeline) Clone() *Timeline {
	opts := []Option{
		WithTracks(tl.tracks.Clone().(*core.Stack)),
		WithLogger(tl.logger),
	}
	if tl.globalStart != nil {
		opts = append(opts, WithGlobalStart(*tl.globalStart))
	}
	if tl.metadata != nil {
		metadata := make(map[string]any, len(tl.metadata))
		for k, v := range tl.metadata {
			metadata[k] = v
		}
		opts = append(opts, WithMetadata(metadata))
	}
	return New(tl.name, opts...)
}
