package core

import "github.com/montage-edit/montage/pkg/opentime"

// Composable is a node in a composition tree. The set of implementations is
// closed: Clip, Gap, Track, Stack and the bare Composition. A node belongs to
// at most one container at a time; the container owns the child, and the
// child's parent reference is a non-owning pointer used only for upward path
// resolution.
type Composable interface {
	// Kind returns the node's kind label ("Clip", "Track", ...), used by the
	// registry and the serialization layer.
	Kind() string

	Name() string
	SetName(name string)

	// Metadata returns the node's mutable metadata map.
	Metadata() map[string]any

	// SourceRange returns the optional trimming window bounding what this
	// node exposes to its container, or nil.
	SourceRange() *opentime.TimeRange
	SetSourceRange(r *opentime.TimeRange)

	// Parent returns the owning container, or nil if the node is unattached.
	Parent() Container

	// Visible reports whether the node contributes visible output. Gaps are
	// invisible; everything else is visible.
	Visible() bool

	// Duration returns the node's exposed duration: the source range's
	// duration when set, otherwise the kind's natural duration (a leaf
	// without a source range has none and errors with ErrNoDuration).
	Duration() (opentime.RationalTime, error)

	// TrimmedRange returns the node's range in its own coordinate frame:
	// the source range when set, otherwise [0, Duration()).
	TrimmedRange() (opentime.TimeRange, error)

	// Clone returns a deep copy of the node, unattached from any container.
	Clone() Composable

	// setParent reassigns the parent reference. Unexported: only container
	// mutation keeps the child list and parent references in lockstep.
	setParent(p Container)
}

// Container is a Composable that holds an ordered, index-addressable
// sequence of children. Child order is semantically significant: it encodes
// temporal sequence (Track) or overlay order (Stack).
type Container interface {
	Composable

	Len() int
	At(index int) (Composable, error)
	IndexOf(child Composable) int

	// Children returns a copy of the child list in order.
	Children() []Composable

	// Insert splices child into the sequence at index, shifting subsequent
	// children right. A child owned by another container is detached from it
	// first, preserving cross-tree ownership uniqueness.
	Insert(index int, child Composable) error

	// SetAt replaces the child at index. The replaced child is detached.
	SetAt(index int, child Composable) error

	// DeleteAt removes the child at index and clears its parent reference.
	DeleteAt(index int) error

	// Append adds children at the end, preserving their relative order.
	Append(children ...Composable) error

	// RangeOfChildAtIndex returns the child's placement in this container's
	// own untrimmed coordinate space.
	RangeOfChildAtIndex(index int) (opentime.TimeRange, error)

	// TrimmedRangeOfChildAtIndex is RangeOfChildAtIndex further clipped
	// against this container's source range, when set. A nil range (with
	// nil error) means the child lies entirely outside the window.
	TrimmedRangeOfChildAtIndex(index int) (*opentime.TimeRange, error)

	// RangeOfChild computes child's range relative to referenceSpace (nil
	// means the receiver) without applying trimming at any level.
	RangeOfChild(child Composable, referenceSpace Container) (opentime.TimeRange, error)

	// TrimmedRangeOfChild computes child's range relative to the receiver
	// with trimming applied at every level. A nil range (with nil error)
	// means the child is trimmed away entirely. Reference spaces other than
	// the receiver are not supported and return ErrNotImplemented.
	TrimmedRangeOfChild(child Composable, referenceSpace Container) (*opentime.TimeRange, error)

	// PathToChild returns the ancestors between child and the receiver,
	// nearest first, excluding child and including the receiver.
	PathToChild(child Composable) ([]Container, error)

	// ChildrenAtTime returns every direct child whose placement contains t.
	ChildrenAtTime(t opentime.RationalTime) ([]Composable, error)

	// TopClipAtTime returns the first visible leaf reached by descending
	// through children overlapping t, or nil if none is visible there.
	TopClipAtTime(t opentime.RationalTime) (Composable, error)

	// EachChild returns a fresh depth-first walker over all descendants,
	// optionally pruned by a search range and filtered by a predicate.
	EachChild(searchRange *opentime.TimeRange, filter Filter) *Walker
}
