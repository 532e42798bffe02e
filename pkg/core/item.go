package core

import "github.com/montage-edit/montage/pkg/opentime"

// item carries the state shared by every node kind: name, metadata, the
// optional source range, and the non-owning parent reference.
type item struct {
	name        string
	metadata    map[string]any
	sourceRange *opentime.TimeRange
	parent      Container
}

func (i *item) Name() string        { return i.name }
func (i *item) SetName(name string) { i.name = name }

func (i *item) Metadata() map[string]any {
	if i.metadata == nil {
		i.metadata = make(map[string]any)
	}
	return i.metadata
}

func (i *item) SourceRange() *opentime.TimeRange {
	return i.sourceRange
}

func (i *item) SetSourceRange(r *opentime.TimeRange) {
	if r == nil {
		i.sourceRange = nil
		return
	}
	copied := *r
	i.sourceRange = &copied
}

func (i *item) Parent() Container { return i.parent }

func (i *item) setParent(p Container) { i.parent = p }

// cloneInto copies the shared state onto a fresh node.
func (i *item) cloneInto(dst *item) {
	dst.name = i.name
	dst.parent = nil
	if i.sourceRange != nil {
		r := *i.sourceRange
		dst.sourceRange = &r
	}
	if i.metadata != nil {
		dst.metadata = make(map[string]any, len(i.metadata))
		for k, v := range i.metadata {
			dst.metadata[k] = v
		}
	}
}
