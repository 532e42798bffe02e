// Package encoding serializes timelines to JSON and YAML and rebuilds them.
//
// Encoding walks the tree's enumerable fields (kind, name, source range,
// metadata, children) into plain documents tagged with a kind discriminator.
// Decoding constructs nodes through a registry and attaches children through
// the container mutation path, so parent references are rebuilt correctly
// rather than patched up afterwards.
package encoding

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/montage-edit/montage"
	"github.com/montage-edit/montage/pkg/core"
	"github.com/montage-edit/montage/pkg/opentime"
	"github.com/montage-edit/montage/pkg/registry"
)

// KindTimeline tags serialized timeline documents.
const KindTimeline = "Timeline"

// ErrMalformed is wrapped into errors returned for documents that do not
// describe a valid timeline.
var ErrMalformed = errors.New("malformed timeline document")

type timelineDTO struct {
	Kind        string                 `json:"kind" yaml:"kind"`
	Name        string                 `json:"name,omitempty" yaml:"name,omitempty"`
	GlobalStart *opentime.RationalTime `json:"global_start,omitempty" yaml:"global_start,omitempty"`
	Metadata    map[string]any         `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Tracks      *nodeDTO               `json:"tracks" yaml:"tracks"`
}

type nodeDTO struct {
	Kind        string              `json:"kind" yaml:"kind"`
	Name        string              `json:"name,omitempty" yaml:"name,omitempty"`
	SourceRange *opentime.TimeRange `json:"source_range,omitempty" yaml:"source_range,omitempty"`
	Metadata    map[string]any      `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Children    []*nodeDTO          `json:"children,omitempty" yaml:"children,omitempty"`
}

// Marshal serializes a timeline to indented JSON.
func Marshal(tl *montage.Timeline) ([]byte, error) {
	return json.MarshalIndent(timelineToDTO(tl), "", "  ")
}

// MarshalYAML serializes a timeline to YAML.
func MarshalYAML(tl *montage.Timeline) ([]byte, error) {
	return yaml.Marshal(timelineToDTO(tl))
}

// Unmarshal rebuilds a timeline from JSON, constructing nodes through reg.
// A nil reg uses the built-in kinds.
func Unmarshal(data []byte, reg *registry.Registry) (*montage.Timeline, error) {
	var dto timelineDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return timelineFromDTO(&dto, reg)
}

// UnmarshalYAML rebuilds a timeline from YAML.
func UnmarshalYAML(data []byte, reg *registry.Registry) (*montage.Timeline, error) {
	var dto timelineDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return timelineFromDTO(&dto, reg)
}

func timelineToDTO(tl *montage.Timeline) *timelineDTO {
	dto := &timelineDTO{
		Kind:        KindTimeline,
		Name:        tl.Name(),
		GlobalStart: tl.GlobalStart(),
		Tracks:      nodeToDTO(tl.Tracks()),
	}
	if meta := tl.Metadata(); len(meta) > 0 {
		dto.Metadata = meta
	}
	return dto
}

func nodeToDTO(node core.Composable) *nodeDTO {
	dto := &nodeDTO{
		Kind:        node.Kind(),
		Name:        node.Name(),
		SourceRange: node.SourceRange(),
	}
	if meta := node.Metadata(); len(meta) > 0 {
		dto.Metadata = meta
	}
	if container, ok := node.(core.Container); ok {
		for _, child := range container.Children() {
			dto.Children = append(dto.Children, nodeToDTO(child))
		}
	}
	return dto
}

func timelineFromDTO(dto *timelineDTO, reg *registry.Registry) (*montage.Timeline, error) {
	if dto.Kind != KindTimeline {
		return nil, fmt.Errorf("%w: kind %q is not a timeline", ErrMalformed, dto.Kind)
	}
	if dto.Tracks == nil {
		return nil, fmt.Errorf("%w: timeline has no track stack", ErrMalformed)
	}
	if reg == nil {
		reg = registry.Default()
	}

	root, err := nodeFromDTO(dto.Tracks, reg)
	if err != nil {
		return nil, err
	}
	stack, ok := root.(*core.Stack)
	if !ok {
		return nil, fmt.Errorf("%w: track root is %q, want %q", ErrMalformed, root.Kind(), core.KindStack)
	}

	opts := []montage.Option{montage.WithTracks(stack)}
	if dto.GlobalStart != nil {
		opts = append(opts, montage.WithGlobalStart(*dto.GlobalStart))
	}
	if len(dto.Metadata) > 0 {
		opts = append(opts, montage.WithMetadata(dto.Metadata))
	}
	return montage.New(dto.Name, opts...), nil
}

func nodeFromDTO(dto *nodeDTO, reg *registry.Registry) (core.Composable, error) {
	node, err := reg.Create(dto.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	node.SetName(dto.Name)
	node.SetSourceRange(dto.SourceRange)
	if len(dto.Metadata) > 0 {
		meta := node.Metadata()
		for k, v := range dto.Metadata {
			meta[k] = v
		}
	}

	if len(dto.Children) == 0 {
		return node, nil
	}
	container, ok := node.(core.Container)
	if !ok {
		return nil, fmt.Errorf("%w: %q cannot hold children", ErrMalformed, dto.Kind)
	}
	for _, childDTO := range dto.Children {
		child, err := nodeFromDTO(childDTO, reg)
		if err != nil {
			return nil, err
		}
		if err := container.Append(child); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	return node, nil
}
