package opentime

import "fmt"

// RationalTime represents an instant or a duration as a value measured
// against a rate. The zero value (0/0) is not meaningful; construct times
// with New or FromSeconds.
type RationalTime struct {
	Value float64 `json:"value" yaml:"value" mapstructure:"value"`
	Rate  float64 `json:"rate" yaml:"rate" mapstructure:"rate"`
}

// New creates a RationalTime with the given value and rate.
func New(value, rate float64) RationalTime {
	return RationalTime{Value: value, Rate: rate}
}

// FromSeconds creates a RationalTime measured at rate 1.
func FromSeconds(seconds float64) RationalTime {
	return RationalTime{Value: seconds, Rate: 1}
}

// ToSeconds converts the time to seconds.
func (t RationalTime) ToSeconds() float64 {
	if t.Rate == 0 {
		return 0
	}
	return t.Value / t.Rate
}

// RescaledTo returns the same instant expressed at a different rate.
func (t RationalTime) RescaledTo(rate float64) RationalTime {
	if t.Rate == rate || t.Rate == 0 {
		return RationalTime{Value: t.Value, Rate: rate}
	}
	return RationalTime{Value: t.Value * (rate / t.Rate), Rate: rate}
}

// Add returns t + other. The result is expressed at the finer of the two
// rates so no precision is lost.
func (t RationalTime) Add(other RationalTime) RationalTime {
	rate := maxRate(t.Rate, other.Rate)
	return RationalTime{
		Value: t.RescaledTo(rate).Value + other.RescaledTo(rate).Value,
		Rate:  rate,
	}
}

// Sub returns t - other at the finer of the two rates.
func (t RationalTime) Sub(other RationalTime) RationalTime {
	rate := maxRate(t.Rate, other.Rate)
	return RationalTime{
		Value: t.RescaledTo(rate).Value - other.RescaledTo(rate).Value,
		Rate:  rate,
	}
}

// Cmp compares two instants, returning -1, 0 or 1.
func (t RationalTime) Cmp(other RationalTime) int {
	a, b := t.ToSeconds(), other.ToSeconds()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Equal reports whether two times denote the same instant, regardless of rate.
func (t RationalTime) Equal(other RationalTime) bool {
	return t.Cmp(other) == 0
}

func (t RationalTime) String() string {
	return fmt.Sprintf("RationalTime(%g, %g)", t.Value, t.Rate)
}

// Max returns the later of a and b.
func Max(a, b RationalTime) RationalTime {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// Min returns the earlier of a and b.
func Min(a, b RationalTime) RationalTime {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

func maxRate(a, b float64) float64 {
	if a >= b {
		return a
	}
	return b
}
