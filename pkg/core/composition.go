package core

import (
	"errors"
	"fmt"

	"github.com/montage-edit/montage/pkg/opentime"
)

// KindComposition is the kind label of the bare base composition.
const KindComposition = "Composition"

// rangePolicy is the placement rule a concrete composition kind supplies:
// where does the child at index sit in the container's own coordinate space,
// and what is the container's natural duration.
type rangePolicy interface {
	childRange(c *Composition, index int) (opentime.TimeRange, error)
	computedDuration(c *Composition) (opentime.RationalTime, error)
}

// Composition is the ordered container base embedded by Track and Stack. It
// owns its children exclusively: a child is held by at most one container,
// and all child-list bookkeeping goes through the mutation methods so the
// children's parent references never desynchronize from the list.
//
// A bare Composition has no placement policy; its range hooks return
// ErrNotImplemented.
type Composition struct {
	item
	// self points at the concrete node (Track, Stack, or this base) so that
	// children's parent references and path resolution identify the concrete
	// container, not the embedded base.
	self     Container
	kind     string
	policy   rangePolicy
	children []Composable
}

// NewComposition creates a bare composition with no placement policy. It can
// hold children but cannot place them in time; use NewTrack or NewStack for
// that.
func NewComposition() *Composition {
	c := &Composition{kind: KindComposition}
	c.self = c
	return c
}

// anchor wires an embedded base to its enclosing concrete node.
func (c *Composition) anchor(self Container, kind string, policy rangePolicy) {
	c.self = self
	c.kind = kind
	c.policy = policy
}

func (c *Composition) Kind() string { return c.kind }

func (c *Composition) Visible() bool { return true }

func (c *Composition) Duration() (opentime.RationalTime, error) {
	if c.sourceRange != nil {
		return c.sourceRange.Duration, nil
	}
	if c.policy == nil {
		return opentime.RationalTime{}, fmt.Errorf("%s has no placement policy: %w", c.kind, ErrNotImplemented)
	}
	return c.policy.computedDuration(c)
}

func (c *Composition) TrimmedRange() (opentime.TimeRange, error) {
	if c.sourceRange != nil {
		return *c.sourceRange, nil
	}
	d, err := c.Duration()
	if err != nil {
		return opentime.TimeRange{}, err
	}
	return opentime.NewRange(opentime.New(0, d.Rate), d), nil
}

func (c *Composition) Clone() Composable {
	out := NewComposition()
	c.cloneInto(&out.item)
	c.cloneChildrenInto(out)
	return out
}

// cloneChildrenInto deep-copies the children into dst through the mutation
// path, so the copies' parent references point at dst's concrete node.
func (c *Composition) cloneChildrenInto(dst *Composition) {
	for _, child := range c.children {
		// Append on a fresh container only fails on nil or cyclic children,
		// neither of which a clone can produce.
		_ = dst.Append(child.Clone())
	}
}

func (c *Composition) String() string {
	return fmt.Sprintf("%s(%q, %d children, %v)", c.kind, c.name, len(c.children), c.sourceRange)
}

// --- ordered container contract ---

func (c *Composition) Len() int { return len(c.children) }

func (c *Composition) At(index int) (Composable, error) {
	if index < 0 || index >= len(c.children) {
		return nil, fmt.Errorf("%s %q: index %d with %d children: %w",
			c.kind, c.name, index, len(c.children), ErrIndexOutOfRange)
	}
	return c.children[index], nil
}

func (c *Composition) IndexOf(child Composable) int {
	for i, existing := range c.children {
		if existing == child {
			return i
		}
	}
	return -1
}

func (c *Composition) Children() []Composable {
	out := make([]Composable, len(c.children))
	copy(out, c.children)
	return out
}

func (c *Composition) Insert(index int, child Composable) error {
	if err := c.validateChild(child); err != nil {
		return err
	}
	if index < 0 || index > len(c.children) {
		return fmt.Errorf("%s %q: insert at %d with %d children: %w",
			c.kind, c.name, index, len(c.children), ErrIndexOutOfRange)
	}
	// A move within the same container shrinks the list before the splice,
	// shifting target positions after the vacated slot left by one.
	if removed := c.detachLocal(child); removed >= 0 && removed < index {
		index--
	}
	child.setParent(c.self)
	c.children = append(c.children, nil)
	copy(c.children[index+1:], c.children[index:])
	c.children[index] = child
	return nil
}

func (c *Composition) SetAt(index int, child Composable) error {
	if err := c.validateChild(child); err != nil {
		return err
	}
	if index < 0 || index >= len(c.children) {
		return fmt.Errorf("%s %q: set at %d with %d children: %w",
			c.kind, c.name, index, len(c.children), ErrIndexOutOfRange)
	}
	if c.children[index] == child {
		return nil
	}
	if removed := c.detachLocal(child); removed >= 0 && removed < index {
		index--
	}
	c.children[index].setParent(nil)
	child.setParent(c.self)
	c.children[index] = child
	return nil
}

func (c *Composition) DeleteAt(index int) error {
	if index < 0 || index >= len(c.children) {
		return fmt.Errorf("%s %q: delete at %d with %d children: %w",
			c.kind, c.name, index, len(c.children), ErrIndexOutOfRange)
	}
	c.children[index].setParent(nil)
	c.children = append(c.children[:index], c.children[index+1:]...)
	return nil
}

func (c *Composition) Append(children ...Composable) error {
	for _, child := range children {
		if err := c.Insert(len(c.children), child); err != nil {
			return err
		}
	}
	return nil
}

// validateChild rejects nodes the container cannot accept: nil, the
// container itself, or one of its ancestors (which would create a cycle).
func (c *Composition) validateChild(child Composable) error {
	if child == nil {
		return fmt.Errorf("%s %q: nil child: %w", c.kind, c.name, ErrInvalidChild)
	}
	if child == Composable(c.self) {
		return fmt.Errorf("%s %q: cannot contain itself: %w", c.kind, c.name, ErrInvalidChild)
	}
	ancestor, ok := child.(Container)
	if !ok {
		return nil
	}
	for current := Container(c.self); current != nil; current = current.Parent() {
		if current == ancestor {
			return fmt.Errorf("%s %q: inserting ancestor %q would create a cycle: %w",
				c.kind, c.name, child.Name(), ErrInvalidChild)
		}
	}
	return nil
}

// detachLocal removes child from its current owner, if any, keeping
// cross-tree ownership uniqueness. It returns the index the child vacated
// when the owner is this container, and -1 otherwise, so the caller can
// correct positions that the removal shifted.
func (c *Composition) detachLocal(child Composable) int {
	parent := child.Parent()
	if parent == nil {
		return -1
	}
	index := parent.IndexOf(child)
	if index >= 0 {
		_ = parent.DeleteAt(index)
	}
	if parent == Container(c.self) {
		return index
	}
	return -1
}

// --- range placement hooks ---

func (c *Composition) RangeOfChildAtIndex(index int) (opentime.TimeRange, error) {
	if c.policy == nil {
		return opentime.TimeRange{}, fmt.Errorf("%s has no placement policy: %w", c.kind, ErrNotImplemented)
	}
	if index < 0 || index >= len(c.children) {
		return opentime.TimeRange{}, fmt.Errorf("%s %q: range of child %d with %d children: %w",
			c.kind, c.name, index, len(c.children), ErrIndexOutOfRange)
	}
	return c.policy.childRange(c, index)
}

func (c *Composition) TrimmedRangeOfChildAtIndex(index int) (*opentime.TimeRange, error) {
	r, err := c.RangeOfChildAtIndex(index)
	if err != nil {
		return nil, err
	}
	if c.sourceRange == nil {
		return &r, nil
	}
	trimmed, ok := r.Intersection(*c.sourceRange)
	if !ok {
		return nil, nil // entirely outside the window
	}
	return &trimmed, nil
}

// --- range resolution engine ---

// PathToChild walks parent references from child up to the receiver. The
// walk is bounded by a visited set in case misuse has corrupted the
// ownership invariant into a cycle.
func (c *Composition) PathToChild(child Composable) ([]Container, error) {
	if child == nil {
		return nil, fmt.Errorf("nil child: %w", ErrNotAChild)
	}
	var parents []Container
	visited := make(map[Composable]struct{})
	current := child
	for {
		if _, seen := visited[current]; seen {
			return nil, fmt.Errorf("parent chain of %q contains a cycle: %w", child.Name(), ErrNotAChild)
		}
		visited[current] = struct{}{}

		parent := current.Parent()
		if parent == nil {
			return nil, fmt.Errorf("%q is not a descendant of %s %q: %w",
				child.Name(), c.kind, c.name, ErrNotAChild)
		}
		parents = append(parents, parent)
		if parent == Container(c.self) {
			return parents, nil
		}
		current = parent
	}
}

// RangeOfChild computes child's range relative to referenceSpace (nil means
// the receiver), ignoring source ranges at every level. The start time
// accumulates each ancestor's placement of the descending node; the duration
// comes from the child-level placement.
func (c *Composition) RangeOfChild(child Composable, referenceSpace Container) (opentime.TimeRange, error) {
	parents, err := c.PathToChild(child)
	if err != nil {
		return opentime.TimeRange{}, err
	}

	result, err := composeRange(child, parents, Container.RangeOfChildAtIndex)
	if err != nil {
		return opentime.TimeRange{}, err
	}

	if referenceSpace != nil && referenceSpace != Container(c.self) {
		return TransformedTimeRange(result, c.self, referenceSpace)
	}
	return result, nil
}

// TrimmedRangeOfChild is RangeOfChild with each level's source range applied,
// and the receiver's own source range intersected at the end. A nil result
// with nil error means the child is entirely outside the trim window.
func (c *Composition) TrimmedRangeOfChild(child Composable, referenceSpace Container) (*opentime.TimeRange, error) {
	if referenceSpace != nil && referenceSpace != Container(c.self) {
		return nil, fmt.Errorf("trimmed range in a non-self reference space: %w", ErrNotImplemented)
	}
	parents, err := c.PathToChild(child)
	if err != nil {
		return nil, err
	}

	result, err := composeRange(child, parents, trimmedRangeAt)
	if errors.Is(err, errTrimmedOut) {
		return nil, nil // clipped away at an intermediate level
	}
	if err != nil {
		return nil, err
	}
	if c.sourceRange == nil {
		return &result, nil
	}

	newStart := opentime.Max(c.sourceRange.StartTime, result.StartTime)
	if newStart.Cmp(result.EndTimeExclusive()) >= 0 {
		return nil, nil // trimmed out
	}
	newEnd := opentime.Min(result.EndTimeExclusive(), c.sourceRange.EndTimeExclusive())
	duration := newEnd.Sub(newStart)
	if duration.Value < 0 {
		return nil, nil // degenerate window
	}
	trimmed := opentime.NewRange(newStart, duration)
	return &trimmed, nil
}

// errTrimmedOut marks a composed walk that met a fully clipped placement;
// TrimmedRangeOfChild converts it into the nil "trimmed away" result.
var errTrimmedOut = errors.New("trimmed out")

// trimmedRangeAt adapts TrimmedRangeOfChildAtIndex to the composed walk's
// range function shape.
func trimmedRangeAt(parent Container, index int) (opentime.TimeRange, error) {
	r, err := parent.TrimmedRangeOfChildAtIndex(index)
	if err != nil {
		return opentime.TimeRange{}, err
	}
	if r == nil {
		return opentime.TimeRange{}, errTrimmedOut
	}
	return *r, nil
}

// composeRange accumulates placement ranges from the nearest ancestor
// upward: duration is carried from the child-level placement, start offsets
// add up at each higher level.
func composeRange(
	child Composable,
	parents []Container,
	rangeAt func(Container, int) (opentime.TimeRange, error),
) (opentime.TimeRange, error) {
	var result opentime.TimeRange
	current := child
	for level, parent := range parents {
		index := parent.IndexOf(current)
		if index < 0 {
			return opentime.TimeRange{}, fmt.Errorf("%q lost from %q during resolution: %w",
				current.Name(), parent.Name(), ErrNotAChild)
		}
		parentRange, err := rangeAt(parent, index)
		if err != nil {
			return opentime.TimeRange{}, err
		}
		if level == 0 {
			result = parentRange
		} else {
			result.StartTime = result.StartTime.Add(parentRange.StartTime)
		}
		current = parent
	}
	return result, nil
}

// ChildrenAtTime returns the direct children whose placement contains t.
// Parallel kinds may return several children; sequential kinds at most one.
func (c *Composition) ChildrenAtTime(t opentime.RationalTime) ([]Composable, error) {
	var result []Composable
	for index, child := range c.children {
		r, err := c.RangeOfChildAtIndex(index)
		if err != nil {
			return nil, err
		}
		if r.Contains(t) {
			result = append(result, child)
		}
	}
	return result, nil
}

// TopClipAtTime returns the first visible leaf overlapping t, descending
// into nested containers with t re-expressed in each child's local frame.
// It returns nil when every candidate is invisible.
func (c *Composition) TopClipAtTime(t opentime.RationalTime) (Composable, error) {
	children, err := c.ChildrenAtTime(t)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if nested, ok := child.(Container); ok {
			localT, err := TransformedTime(t, c.self, nested)
			if err != nil {
				return nil, err
			}
			return nested.TopClipAtTime(localT)
		}
		if !child.Visible() {
			continue
		}
		return child, nil
	}
	return nil, nil
}
