package core

import (
	"fmt"

	"github.com/montage-edit/montage/pkg/opentime"
)

// KindGap is the registry label for Gap nodes.
const KindGap = "Gap"

// Gap is an invisible leaf item: empty space that occupies time in a track
// without contributing output.
type Gap struct {
	item
}

// NewGap creates a gap spanning [0, duration).
func NewGap(duration opentime.RationalTime) *Gap {
	g := &Gap{}
	r := opentime.NewRange(opentime.New(0, duration.Rate), duration)
	g.sourceRange = &r
	return g
}

func (g *Gap) Kind() string { return KindGap }

func (g *Gap) Visible() bool { return false }

func (g *Gap) Duration() (opentime.RationalTime, error) {
	if g.sourceRange == nil {
		return opentime.RationalTime{}, fmt.Errorf("gap %q: %w", g.name, ErrNoDuration)
	}
	return g.sourceRange.Duration, nil
}

func (g *Gap) TrimmedRange() (opentime.TimeRange, error) {
	if g.sourceRange == nil {
		return opentime.TimeRange{}, fmt.Errorf("gap %q: %w", g.name, ErrNoDuration)
	}
	return *g.sourceRange, nil
}

func (g *Gap) Clone() Composable {
	out := &Gap{}
	g.cloneInto(&out.item)
	return out
}

func (g *Gap) String() string {
	return fmt.Sprintf("Gap(%q, %v)", g.name, g.sourceRange)
}
