package core

import "github.com/montage-edit/montage/pkg/opentime"

// KindTrack is the registry label for Track nodes.
const KindTrack = "Track"

// Track is a sequential composition: children play one after another, each
// placed at the running sum of the durations before it.
type Track struct {
	Composition
}

// NewTrack creates a track holding the given children in order.
func NewTrack(name string, children ...Composable) (*Track, error) {
	t := &Track{}
	t.anchor(t, KindTrack, sequentialPolicy{})
	t.name = name
	if err := t.Append(children...); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Track) Clone() Composable {
	out, _ := NewTrack(t.name)
	t.cloneInto(&out.item)
	t.cloneChildrenInto(&out.Composition)
	return out
}

type sequentialPolicy struct{}

func (sequentialPolicy) childRange(c *Composition, index int) (opentime.TimeRange, error) {
	start := opentime.New(0, 1)
	for i := 0; i < index; i++ {
		d, err := c.children[i].Duration()
		if err != nil {
			return opentime.TimeRange{}, err
		}
		start = start.Add(d)
	}
	duration, err := c.children[index].Duration()
	if err != nil {
		return opentime.TimeRange{}, err
	}
	return opentime.NewRange(start, duration), nil
}

func (sequentialPolicy) computedDuration(c *Composition) (opentime.RationalTime, error) {
	total := opentime.New(0, 1)
	for _, child := range c.children {
		d, err := child.Duration()
		if err != nil {
			return opentime.RationalTime{}, err
		}
		total = total.Add(d)
	}
	return total, nil
}
