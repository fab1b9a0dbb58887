// Package cad is a small sketch-and-solid builder on top of model3d.
//
// Sketches are 2D regions with a signed distance (positive inside) laid out in
// a workplane. Solid operations (extrude, twist-extrude, loft, revolve, shell,
// chamfer, booleans and rigid transforms) return model3d.Solid values, so the
// results can be combined freely and tessellated with model3d's marching cubes.
//
// Every operation returns a new value; nothing is modified in place.
package cad

import (
	"errors"
	"fmt"
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// ErrGeometry is wrapped by every error raised for an infeasible or degenerate
// geometric operation.
var ErrGeometry = errors.New("geometry error")

func geomErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGeometry, fmt.Sprintf(format, args...))
}

const epsilon = 1e-9

// Plane is a workplane: an origin, an in-plane x direction and a normal.
// The y direction is Normal x XDir, so (XDir, YDir, Normal) is right-handed.
type Plane struct {
	Origin model3d.Coord3D
	XDir   model3d.Coord3D
	Normal model3d.Coord3D
}

// Named workplanes, matching the usual CAD conventions.
var (
	XY = Plane{XDir: model3d.XYZ(1, 0, 0), Normal: model3d.XYZ(0, 0, 1)}
	YZ = Plane{XDir: model3d.XYZ(0, 1, 0), Normal: model3d.XYZ(1, 0, 0)}
	XZ = Plane{XDir: model3d.XYZ(1, 0, 0), Normal: model3d.XYZ(0, -1, 0)}
)

// YDir returns the in-plane y direction.
func (p Plane) YDir() model3d.Coord3D {
	return p.Normal.Cross(p.XDir)
}

// Inverted flips the normal and keeps the x direction.
func (p Plane) Inverted() Plane {
	p.Normal = p.Normal.Scale(-1)
	return p
}

// Offset moves the plane along its normal.
func (p Plane) Offset(d float64) Plane {
	p.Origin = p.Origin.Add(p.Normal.Scale(d))
	return p
}

// ToGlobal maps local (u, v, w) coordinates to world space; w is measured
// along the normal.
func (p Plane) ToGlobal(u, v, w float64) model3d.Coord3D {
	return p.Origin.
		Add(p.XDir.Scale(u)).
		Add(p.YDir().Scale(v)).
		Add(p.Normal.Scale(w))
}

// Direction maps a local in-plane direction to world space.
func (p Plane) Direction(u, v float64) model3d.Coord3D {
	return p.XDir.Scale(u).Add(p.YDir().Scale(v))
}

// ToLocal maps a world point to local (u, v, w) coordinates.
func (p Plane) ToLocal(c model3d.Coord3D) (u, v, w float64) {
	d := c.Sub(p.Origin)
	return d.Dot(p.XDir), d.Dot(p.YDir()), d.Dot(p.Normal)
}

// Axis names a world axis.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Vector returns the unit vector of the axis.
func (a Axis) Vector() model3d.Coord3D {
	switch a {
	case AxisX:
		return model3d.XYZ(1, 0, 0)
	case AxisY:
		return model3d.XYZ(0, 1, 0)
	default:
		return model3d.XYZ(0, 0, 1)
	}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "unknown"
	}
}

func parallel(a, b model3d.Coord3D) bool {
	return math.Abs(math.Abs(a.Normalize().Dot(b.Normalize()))-1) < 1e-9
}
