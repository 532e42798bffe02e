package core

import (
	"fmt"

	"github.com/montage-edit/montage/pkg/opentime"
)

// TransformedTime re-expresses t, given in from's coordinate frame, in to's
// frame. Both nodes must belong to the same tree. The walk climbs from
// `from` toward the root until it meets `to` or the root, then descends into
// `to`'s chain in reverse.
func TransformedTime(t opentime.RationalTime, from, to Composable) (opentime.RationalTime, error) {
	if from == nil || to == nil {
		return t, fmt.Errorf("transform between nil nodes: %w", ErrNotAChild)
	}
	root := rootOf(from)

	// Climb from `from` to the meeting point, shifting t out of each local
	// frame and into the parent's.
	current := from
	for current != to && current != root {
		parent := current.Parent()
		if parent == nil {
			return t, fmt.Errorf("%q is detached mid-transform: %w", current.Name(), ErrNotAChild)
		}
		tr, err := current.TrimmedRange()
		if err != nil {
			return t, err
		}
		pr, err := parent.RangeOfChild(current, nil)
		if err != nil {
			return t, err
		}
		t = t.Sub(tr.StartTime).Add(pr.StartTime)
		current = parent
	}
	meetingPoint := current

	// Collect `to`'s ancestry up to the meeting point, then descend in
	// reverse, shifting t into each successively deeper local frame.
	var descent []Composable
	current = to
	for current != meetingPoint {
		descent = append(descent, current)
		parent := current.Parent()
		if parent == nil {
			return t, fmt.Errorf("%q does not share a tree with %q: %w", to.Name(), from.Name(), ErrNotAChild)
		}
		current = parent
	}
	for i := len(descent) - 1; i >= 0; i-- {
		node := descent[i]
		parent := node.Parent()
		pr, err := parent.RangeOfChild(node, nil)
		if err != nil {
			return t, err
		}
		tr, err := node.TrimmedRange()
		if err != nil {
			return t, err
		}
		t = t.Sub(pr.StartTime).Add(tr.StartTime)
	}
	return t, nil
}

// TransformedTimeRange re-expresses a range given in from's frame in to's
// frame. The start is transformed; the duration is carried over.
func TransformedTimeRange(r opentime.TimeRange, from, to Composable) (opentime.TimeRange, error) {
	start, err := TransformedTime(r.StartTime, from, to)
	if err != nil {
		return opentime.TimeRange{}, err
	}
	return opentime.NewRange(start, r.Duration), nil
}

func rootOf(node Composable) Composable {
	current := node
	for {
		parent := current.Parent()
		if parent == nil {
			return current
		}
		current = parent
	}
}
