package encoding

import (
	"github.com/mitchellh/mapstructure"

	"github.com/montage-edit/montage/pkg/core"
)

// DecodeMetadata decodes a node's metadata map into a typed struct using
// "mapstructure" tags, so callers can keep structured sidecar data (review
// notes, source identifiers) in plain metadata and read it back typed.
func DecodeMetadata(node core.Composable, out any) error {
	return mapstructure.Decode(node.Metadata(), out)
}
