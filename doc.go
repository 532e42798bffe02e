/*
Package montage models editorial timelines as hierarchical time-domain
compositions: ordered trees of clips, gaps, sequential tracks and parallel
stacks, with a range resolution engine that answers "where is this item,
relative to any ancestor?" while honoring each ancestor's trimming window.

The core is a pure in-memory data model. It performs no I/O, resolves no
media, and renders nothing; persistence, transport and tooling live behind
ports and adapters so the tree logic stays free of external dependencies.

# Key Packages

  - pkg/core: the composition tree and the range resolution engine.
  - pkg/opentime: rational times, half-open time ranges, time transforms.
  - pkg/registry: the explicit kind-label table used to rebuild trees.
  - pkg/encoding: JSON/YAML serialization of timelines.
  - pkg/ports: the Catalog interface for timeline storage.
  - pkg/adapters: memory, file, redis and HTTP catalog adapters.

# Usage

Build a timeline, compose tracks, and resolve ranges:

	r := opentime.NewRange(opentime.New(0, 24), opentime.New(48, 24))
	intro := core.NewClip("intro", &r)
	track, _ := core.NewTrack("video", intro)

	tl := montage.New("my cut")
	_ = tl.Tracks().Append(track)

	placement, _ := tl.RangeOfChild(intro)

Trees are single-writer by contract: serialize concurrent mutation and
traversal externally. The catalog adapters, by contrast, are safe for
concurrent use.
*/
package montage
