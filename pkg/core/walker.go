package core

import "github.com/montage-edit/montage/pkg/opentime"

// Filter selects which descendants a Walker reports. A nil Filter matches
// everything. Filtering affects what is reported, never what is descended
// into.
type Filter func(Composable) bool

// OfKind returns a Filter matching nodes of the concrete type T.
func OfKind[T Composable]() Filter {
	return func(c Composable) bool {
		_, ok := c.(T)
		return ok
	}
}

// Walker is a lazy depth-first traversal over a container's descendants.
// Each call to EachChild returns a fresh walker, so traversals are
// restartable; stopping early is simply not calling Next again.
//
// When a search range is set, a child whose placement does not overlap it is
// skipped entirely, including its subtree. Overlap is re-derived locally at
// each level; the search range itself is never translated.
type Walker struct {
	stack       []walkFrame
	searchRange *opentime.TimeRange
	filter      Filter
	current     Composable
	err         error
}

type walkFrame struct {
	container Container
	next      int
}

// EachChild returns a walker over all descendants of c in depth-first order,
// parents before their subtrees.
func (c *Composition) EachChild(searchRange *opentime.TimeRange, filter Filter) *Walker {
	return &Walker{
		stack:       []walkFrame{{container: c.self}},
		searchRange: searchRange,
		filter:      filter,
	}
}

// Next advances to the next matching descendant. It returns false when the
// traversal is exhausted or a placement could not be resolved; check Err to
// tell the two apart.
func (w *Walker) Next() bool {
	if w.err != nil {
		return false
	}
	for len(w.stack) > 0 {
		frame := &w.stack[len(w.stack)-1]
		if frame.next >= frame.container.Len() {
			w.stack = w.stack[:len(w.stack)-1]
			continue
		}
		index := frame.next
		frame.next++

		child, err := frame.container.At(index)
		if err != nil {
			w.err = err
			return false
		}

		if w.searchRange != nil {
			r, err := frame.container.RangeOfChildAtIndex(index)
			if err != nil {
				w.err = err
				return false
			}
			if !r.Overlaps(*w.searchRange) {
				continue
			}
		}

		if nested, ok := child.(Container); ok {
			w.stack = append(w.stack, walkFrame{container: nested})
		}

		if w.filter == nil || w.filter(child) {
			w.current = child
			return true
		}
	}
	return false
}

// Value returns the descendant the walker is positioned at.
func (w *Walker) Value() Composable { return w.current }

// Err returns the error that stopped the walk, if any.
func (w *Walker) Err() error { return w.err }
