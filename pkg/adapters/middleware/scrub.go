package middleware

import (
	"context"
	"maps"
	"regexp"

	"github.com/montage-edit/montage"
	"github.com/montage-edit/montage/pkg/ports"
)

type scrubMiddleware struct {
	next     ports.Catalog
	patterns []*regexp.Regexp
}

// NewMetadataScrubMiddleware creates a middleware that masks metadata values
// whose keys match any of the patterns before the timeline is persisted.
// Timeline metadata often carries crew emails or review notes that should
// not land in shared storage.
func NewMetadataScrubMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.Catalog) ports.Catalog {
		return &scrubMiddleware{next: next, patterns: patterns}
	}
}

// Save persists a scrubbed deep copy so the in-memory timeline keeps its
// original metadata.
func (m *scrubMiddleware) Save(ctx context.Context, name string, tl *montage.Timeline) error {
	cloned := tl.Clone()

	m.scrubInPlace(cloned.Metadata())
	w := cloned.Tracks().EachChild(nil, nil)
	for w.Next() {
		m.scrubInPlace(w.Value().Metadata())
	}
	if err := w.Err(); err != nil {
		return err
	}

	return m.next.Save(ctx, name, cloned)
}

func (m *scrubMiddleware) Load(ctx context.Context, name string) (*montage.Timeline, error) {
	return m.next.Load(ctx, name)
}

func (m *scrubMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *scrubMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// scrubInPlace replaces the map's contents with a masked deep copy. Clones
// share nested maps with their source, so masking must never write through
// a nested map it does not own.
func (m *scrubMiddleware) scrubInPlace(meta map[string]any) {
	masked := m.maskedCopy(meta)
	clear(meta)
	maps.Copy(meta, masked)
}

func (m *scrubMiddleware) maskedCopy(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		matched := false
		for _, p := range m.patterns {
			if p.MatchString(k) {
				out[k] = "***"
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if subMap, ok := v.(map[string]any); ok {
			out[k] = m.maskedCopy(subMap)
		} else {
			out[k] = v
		}
	}
	return out
}
