package opentime

import "fmt"

// TimeRange is a half-open interval: it contains StartTime and everything up
// to, but excluding, EndTimeExclusive.
type TimeRange struct {
	StartTime RationalTime `json:"start_time" yaml:"start_time" mapstructure:"start_time"`
	Duration  RationalTime `json:"duration" yaml:"duration" mapstructure:"duration"`
}

// NewRange creates a TimeRange from a start time and a duration.
func NewRange(start, duration RationalTime) TimeRange {
	return TimeRange{StartTime: start, Duration: duration}
}

// RangeFromStartEnd creates a TimeRange covering [start, end).
func RangeFromStartEnd(start, end RationalTime) TimeRange {
	return TimeRange{StartTime: start, Duration: end.Sub(start)}
}

// EndTimeExclusive returns the first instant after the range.
func (r TimeRange) EndTimeExclusive() RationalTime {
	return r.StartTime.Add(r.Duration)
}

// Contains reports whether t falls within [start, end).
func (r TimeRange) Contains(t RationalTime) bool {
	return r.StartTime.Cmp(t) <= 0 && t.Cmp(r.EndTimeExclusive()) < 0
}

// Overlaps reports whether the two ranges share any instant. Zero-duration
// ranges overlap nothing.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.StartTime.Cmp(other.EndTimeExclusive()) < 0 &&
		other.StartTime.Cmp(r.EndTimeExclusive()) < 0
}

// Extended returns the smallest range covering both r and other.
func (r TimeRange) Extended(other TimeRange) TimeRange {
	start := Min(r.StartTime, other.StartTime)
	end := Max(r.EndTimeExclusive(), other.EndTimeExclusive())
	return RangeFromStartEnd(start, end)
}

// Clamped limits t to the range: times before the start map to the start,
// times at or past the end map to the last contained instant's boundary.
func (r TimeRange) Clamped(t RationalTime) RationalTime {
	return Min(Max(t, r.StartTime), r.EndTimeExclusive())
}

// ClampedRange limits other to the part of it within r. If the two ranges
// are disjoint the result collapses to a zero-duration range at the nearer
// boundary of r.
func (r TimeRange) ClampedRange(other TimeRange) TimeRange {
	return RangeFromStartEnd(
		r.Clamped(other.StartTime),
		r.Clamped(other.EndTimeExclusive()),
	)
}

// Intersection returns the overlap of r and other. ok is false when the
// ranges are disjoint or the overlap is empty.
func (r TimeRange) Intersection(other TimeRange) (TimeRange, bool) {
	start := Max(r.StartTime, other.StartTime)
	end := Min(r.EndTimeExclusive(), other.EndTimeExclusive())
	if start.Cmp(end) >= 0 {
		return TimeRange{}, false
	}
	return RangeFromStartEnd(start, end), true
}

func (r TimeRange) String() string {
	return fmt.Sprintf("TimeRange(%s, %s)", r.StartTime, r.Duration)
}
