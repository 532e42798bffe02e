package opentime

// TimeTransform is an affine mapping between coordinate frames: scale first,
// then offset.
type TimeTransform struct {
	Offset RationalTime `json:"offset" yaml:"offset" mapstructure:"offset"`
	Scale  float64      `json:"scale" yaml:"scale" mapstructure:"scale"`
}

// IdentityTransform returns a transform that leaves times unchanged.
func IdentityTransform() TimeTransform {
	return TimeTransform{Offset: RationalTime{Value: 0, Rate: 1}, Scale: 1}
}

// AppliedToTime maps a time through the transform.
func (x TimeTransform) AppliedToTime(t RationalTime) RationalTime {
	scaled := RationalTime{Value: t.Value * x.Scale, Rate: t.Rate}
	return scaled.Add(x.Offset)
}

// AppliedToRange maps a range through the transform. Both endpoints are
// transformed; duration scales accordingly.
func (x TimeTransform) AppliedToRange(r TimeRange) TimeRange {
	return RangeFromStartEnd(
		x.AppliedToTime(r.StartTime),
		x.AppliedToTime(r.EndTimeExclusive()),
	)
}
