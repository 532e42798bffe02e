package core

import "errors"

// ErrNotImplemented is returned when a range-placement hook is invoked on a
// bare Composition (placement policy is supplied by Track and Stack), or when
// a trimmed range is requested in a reference space other than the receiver.
var ErrNotImplemented = errors.New("not implemented")

// ErrNotAChild is returned when path resolution reaches an unattached node
// before reaching the expected ancestor.
var ErrNotAChild = errors.New("not a child")

// ErrInvalidChild is returned when a node cannot be inserted into a
// container: it is nil, it is the container itself, or the insertion would
// create a cycle.
var ErrInvalidChild = errors.New("invalid child")

// ErrIndexOutOfRange is returned on out-of-bounds positional access.
var ErrIndexOutOfRange = errors.New("index out of range")

// ErrNoDuration is returned when a leaf item has no source range to derive
// its duration from. Media resolution is out of scope, so a leaf's duration
// always comes from its source range.
var ErrNoDuration = errors.New("item has no source range to derive a duration from")
