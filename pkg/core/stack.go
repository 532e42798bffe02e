package core

import "github.com/montage-edit/montage/pkg/opentime"

// KindStack is the registry label for Stack nodes.
const KindStack = "Stack"

// Stack is a parallel composition: every child starts at time zero, so
// children overlay one another. Child order is the overlay order.
type Stack struct {
	Composition
}

// NewStack creates a stack holding the given children in order.
func NewStack(name string, children ...Composable) (*Stack, error) {
	s := &Stack{}
	s.anchor(s, KindStack, parallelPolicy{})
	s.name = name
	if err := s.Append(children...); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Stack) Clone() Composable {
	out, _ := NewStack(s.name)
	s.cloneInto(&out.item)
	s.cloneChildrenInto(&out.Composition)
	return out
}

type parallelPolicy struct{}

func (parallelPolicy) childRange(c *Composition, index int) (opentime.TimeRange, error) {
	duration, err := c.children[index].Duration()
	if err != nil {
		return opentime.TimeRange{}, err
	}
	return opentime.NewRange(opentime.New(0, duration.Rate), duration), nil
}

func (parallelPolicy) computedDuration(c *Composition) (opentime.RationalTime, error) {
	longest := opentime.New(0, 1)
	for _, child := range c.children {
		d, err := child.Duration()
		if err != nil {
			return opentime.RationalTime{}, err
		}
		longest = opentime.Max(longest, d)
	}
	return longest, nil
}
