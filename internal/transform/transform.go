// Package transform converts node positions between the 2D planar coordinate
// space and the 3D spatial coordinate space. Both views render the same
// logical graph; these functions define the mapping between their placements.
package transform

import "github.com/alfredjeanlab/traceviz/internal/model"

// DefaultScale is the planar-to-spatial scale factor. 2D layouts work in
// pixel-ish magnitudes while the 3D scene works in unit magnitudes.
const DefaultScale = 0.02

// To3D maps a 2D position into 3D space. The height axis (Y) is always 0:
// height is reserved for manual 3D placement and is never implied by a 2D
// coordinate.
func To3D(p model.Position2D, scale float64) model.Position3D {
	return model.Position3D{
		X: p.X * scale,
		Y: 0,
		Z: p.Y * scale,
	}
}

// To2D maps a 3D position back onto the plane. The height component is
// dropped, not an error: the 2D space has no height axis.
func To2D(p model.Position3D, scale float64) model.Position2D {
	return model.Position2D{
		X: p.X / scale,
		Y: p.Z / scale,
	}
}
