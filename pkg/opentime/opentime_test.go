package opentime

import "testing"

func TestRationalTime_Arithmetic(t *testing.T) {
	tests := []struct {
		name string
		a, b RationalTime
		want RationalTime
	}{
		{
			name: "Same Rate",
			a:    New(10, 24),
			b:    New(5, 24),
			want: New(15, 24),
		},
		{
			name: "Mixed Rates Rescale To Finer",
			a:    New(1, 1), // one second
			b:    New(24, 24),
			want: New(48, 24),
		},
		{
			name: "Zero Rate Operand Is Inert",
			a:    RationalTime{},
			b:    New(12, 24),
			want: New(12, 24),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.Add(tc.b)
			if !got.Equal(tc.want) || got.Rate != tc.want.Rate {
				t.Errorf("Add() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRationalTime_SubAndCmp(t *testing.T) {
	a := New(48, 24)
	b := New(1, 1)

	diff := a.Sub(b)
	if !diff.Equal(New(24, 24)) {
		t.Errorf("Sub() = %s, want 24@24", diff)
	}

	if a.Cmp(b) != 1 {
		t.Errorf("expected a > b")
	}
	if b.Cmp(a) != -1 {
		t.Errorf("expected b < a")
	}
	if New(2, 1).Cmp(New(48, 24)) != 0 {
		t.Errorf("expected equal instants across rates")
	}
}

func TestTimeRange_ContainsAndOverlaps(t *testing.T) {
	r := NewRange(New(5, 1), New(10, 1)) // [5, 15)

	if !r.Contains(New(5, 1)) {
		t.Error("range should contain its start")
	}
	if r.Contains(New(15, 1)) {
		t.Error("end is exclusive")
	}
	if !r.Contains(New(14.5, 1)) {
		t.Error("range should contain 14.5")
	}

	overlapping := NewRange(New(14, 1), New(4, 1))
	if !r.Overlaps(overlapping) {
		t.Error("expected overlap with [14, 18)")
	}

	adjacent := NewRange(New(15, 1), New(4, 1))
	if r.Overlaps(adjacent) {
		t.Error("touching ranges do not overlap")
	}

	zero := NewRange(New(7, 1), New(0, 1))
	if r.Overlaps(zero) {
		t.Error("zero-duration ranges overlap nothing")
	}
}

func TestTimeRange_Intersection(t *testing.T) {
	a := NewRange(New(0, 1), New(10, 1))
	b := NewRange(New(6, 1), New(10, 1))

	got, ok := a.Intersection(b)
	if !ok {
		t.Fatal("expected intersection")
	}
	if !got.StartTime.Equal(New(6, 1)) || !got.Duration.Equal(New(4, 1)) {
		t.Errorf("Intersection() = %s, want [6, +4)", got)
	}

	if _, ok := a.Intersection(NewRange(New(20, 1), New(5, 1))); ok {
		t.Error("disjoint ranges must not intersect")
	}
}

func TestTimeRange_Clamped(t *testing.T) {
	r := NewRange(New(5, 1), New(10, 1)) // [5, 15)

	if got := r.Clamped(New(2, 1)); !got.Equal(New(5, 1)) {
		t.Errorf("Clamped(2) = %s, want 5", got)
	}
	if got := r.Clamped(New(8, 1)); !got.Equal(New(8, 1)) {
		t.Errorf("Clamped(8) = %s, want 8", got)
	}
	if got := r.Clamped(New(20, 1)); !got.Equal(New(15, 1)) {
		t.Errorf("Clamped(20) = %s, want 15", got)
	}

	got := r.ClampedRange(NewRange(New(0, 1), New(8, 1))) // [0, 8) -> [5, 8)
	if !got.StartTime.Equal(New(5, 1)) || !got.EndTimeExclusive().Equal(New(8, 1)) {
		t.Errorf("ClampedRange() = %s, want [5, 8)", got)
	}

	disjoint := r.ClampedRange(NewRange(New(20, 1), New(5, 1)))
	if !disjoint.Duration.Equal(New(0, 1)) {
		t.Errorf("disjoint ClampedRange() = %s, want zero duration", disjoint)
	}
}

func TestTimeRange_Extended(t *testing.T) {
	a := NewRange(New(2, 1), New(3, 1))  // [2, 5)
	b := NewRange(New(10, 1), New(2, 1)) // [10, 12)

	got := a.Extended(b)
	if !got.StartTime.Equal(New(2, 1)) || !got.EndTimeExclusive().Equal(New(12, 1)) {
		t.Errorf("Extended() = %s, want [2, 12)", got)
	}
}

func TestTimeTransform(t *testing.T) {
	x := TimeTransform{Offset: New(10, 24), Scale: 2}

	got := x.AppliedToTime(New(5, 24))
	if !got.Equal(New(20, 24)) {
		t.Errorf("AppliedToTime() = %s, want 20@24", got)
	}

	r := x.AppliedToRange(NewRange(New(0, 24), New(6, 24)))
	if !r.StartTime.Equal(New(10, 24)) || !r.Duration.Equal(New(12, 24)) {
		t.Errorf("AppliedToRange() = %s, want [10, +12)", r)
	}

	id := IdentityTransform()
	if !id.AppliedToTime(New(7, 24)).Equal(New(7, 24)) {
		t.Error("identity transform must not move times")
	}
}
