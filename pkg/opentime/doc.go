/*
Package opentime provides the time arithmetic primitives used by the
composition core: rational points in time, half-open time ranges, and affine
time transforms.

A RationalTime is a value measured against a rate (e.g. value 48 at rate 24 is
two seconds). Arithmetic between times at different rates rescales to the
finer rate, so mixed-rate trees compose without losing precision.

# Key Types

  - RationalTime: a point in time or a duration (value / rate).
  - TimeRange: a start time plus a duration; the end is exclusive.
  - TimeTransform: offset and scale applied to times and ranges.
*/
package opentime
