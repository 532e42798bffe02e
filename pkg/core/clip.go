package core

import (
	"fmt"

	"github.com/montage-edit/montage/pkg/opentime"
)

// KindClip is the registry label for Clip nodes.
const KindClip = "Clip"

// Clip is a visible leaf item. Resolving the underlying media is out of
// scope, so a clip's duration is always derived from its source range.
type Clip struct {
	item
}

// NewClip creates a clip. sourceRange may be nil, in which case the clip has
// no computable duration until one is set.
func NewClip(name string, sourceRange *opentime.TimeRange) *Clip {
	c := &Clip{}
	c.name = name
	c.SetSourceRange(sourceRange)
	return c
}

func (c *Clip) Kind() string { return KindClip }

func (c *Clip) Visible() bool { return true }

func (c *Clip) Duration() (opentime.RationalTime, error) {
	if c.sourceRange == nil {
		return opentime.RationalTime{}, fmt.Errorf("clip %q: %w", c.name, ErrNoDuration)
	}
	return c.sourceRange.Duration, nil
}

func (c *Clip) TrimmedRange() (opentime.TimeRange, error) {
	if c.sourceRange == nil {
		return opentime.TimeRange{}, fmt.Errorf("clip %q: %w", c.name, ErrNoDuration)
	}
	return *c.sourceRange, nil
}

func (c *Clip) Clone() Composable {
	out := &Clip{}
	c.cloneInto(&out.item)
	return out
}

func (c *Clip) String() string {
	return fmt.Sprintf("Clip(%q, %v)", c.name, c.sourceRange)
}
