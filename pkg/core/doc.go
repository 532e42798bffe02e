/*
Package core models hierarchical time-domain compositions: ordered trees of
addressable timed items, such as the sequential tracks and parallel stacks of
an editorial cut.

The node kinds form a closed set:

  - Clip: a visible leaf item.
  - Gap: an invisible leaf item (empty space in a track).
  - Track: a sequential container; children play one after another.
  - Stack: a parallel container; children all start at time zero and overlay.

Every node may carry an optional source range: a trimming window bounding
what the node exposes to its container.

The range resolution engine answers "where is this descendant, relative to
some ancestor?" by walking the ownership chain, composing each container's
placement of its child, and optionally applying trimming windows along the
way. See Container.RangeOfChild and Container.TrimmedRangeOfChild.

Trees are single-writer by contract. No internal locking is performed;
callers mutating or reading the same subtree from multiple goroutines must
serialize externally.
*/
package core
