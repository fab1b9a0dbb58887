package cad

import "github.com/unixpickle/model3d/model3d"

// Union joins solids. The result contains every point of any input.
func Union(solids ...model3d.Solid) model3d.Solid {
	if len(solids) == 1 {
		return solids[0]
	}
	return model3d.JoinedSolid(append([]model3d.Solid(nil), solids...))
}

// Cut removes tool from s.
func Cut(s, tool model3d.Solid) model3d.Solid {
	return &model3d.SubtractedSolid{Positive: s, Negative: tool}
}

// Bounds returns the axis-aligned bounding box of s.
func Bounds(s model3d.Solid) (min, max model3d.Coord3D) {
	return s.Min(), s.Max()
}
