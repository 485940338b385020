// Package layout assigns fallback positions to nodes that arrive from the
// backend without one. Placement is deterministic per node id so repeated
// loads put an unpositioned node in the same spot.
package layout

import (
	"hash/fnv"
	"math"

	"github.com/alfredjeanlab/traceviz/internal/model"
)

const (
	baseRadius = 300.0
	ringStep   = 120.0
	ringCount  = 4
)

// FallbackPosition returns a deterministic ring placement for the given node
// id. Ids hash onto one of several concentric rings, which spreads dense
// graphs without overlapping the origin.
func FallbackPosition(id string) model.Position2D {
	h := fnv.New64a()
	h.Write([]byte(id))
	sum := h.Sum64()

	angle := float64(sum%3600) / 3600 * 2 * math.Pi
	radius := baseRadius + float64((sum/3600)%ringCount)*ringStep

	return model.Position2D{
		X: math.Cos(angle) * radius,
		Y: math.Sin(angle) * radius,
	}
}

// Resolve returns the node's own position when present, the fallback
// placement otherwise.
func Resolve(n model.RawNode) model.Position2D {
	if n.Position != nil {
		return *n.Position
	}
	return FallbackPosition(n.ID)
}
