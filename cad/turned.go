package cad

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// Turned is a solid of revolution about the world Z axis, described by its
// half outline in (radius, z). The outline starts and ends on the axis and
// runs upward.
type Turned struct {
	Outline []model2d.Coord

	region *PolygonRegion
}

// LoftCircles lofts a circle of radius r0 at height z0 into a circle of
// radius r1 at height z1 with straight ruled sides.
func LoftCircles(r0, z0, r1, z1 float64) (*Turned, error) {
	if r0 <= 0 || r1 <= 0 {
		return nil, geomErr("loft radii must be positive, got %g and %g", r0, r1)
	}
	if z1 <= z0 {
		return nil, geomErr("loft sections must be stacked upward, got z=%g then z=%g", z0, z1)
	}
	return newTurned([]model2d.Coord{
		model2d.XY(0, z0),
		model2d.XY(r0, z0),
		model2d.XY(r1, z1),
		model2d.XY(0, z1),
	})
}

// ExtrudeTop adds a cylinder of radius r and height h standing on the top
// face of t.
func (t *Turned) ExtrudeTop(r, h float64) (*Turned, error) {
	if r <= 0 || h <= 0 {
		return nil, geomErr("cylinder needs positive radius and height, got %g x %g", r, h)
	}
	top := t.Outline[len(t.Outline)-1].Y
	outline := append([]model2d.Coord(nil), t.Outline[:len(t.Outline)-1]...)
	outline = append(outline,
		model2d.XY(r, top),
		model2d.XY(r, top+h),
		model2d.XY(0, top+h),
	)
	return newTurned(outline)
}

func newTurned(outline []model2d.Coord) (*Turned, error) {
	region, err := Polygon(outline...)
	if err != nil {
		return nil, err
	}
	return &Turned{Outline: outline, region: region}, nil
}

// Radius is the largest radius of the outline.
func (t *Turned) Radius() float64 {
	return t.region.Max().X
}

func (t *Turned) Min() model3d.Coord3D {
	r := t.Radius()
	return model3d.XYZ(-r, -r, t.region.Min().Y)
}

func (t *Turned) Max() model3d.Coord3D {
	r := t.Radius()
	return model3d.XYZ(r, r, t.region.Max().Y)
}

func (t *Turned) Contains(c model3d.Coord3D) bool {
	if !inBounds(t, c) {
		return false
	}
	return t.region.SDF(model2d.XY(math.Hypot(c.X, c.Y), c.Z)) >= 0
}

// Face names a flat end face of a turned solid.
type Face int

const (
	FaceTop Face = iota
	FaceBottom
)

// Shell is a turned solid hollowed to a uniform wall with one end face
// removed.
type Shell struct {
	Outer     *Turned
	Thickness float64
	Open      Face

	walls [][2]model2d.Coord
}

// Shell hollows t to a wall of |thickness|, removing the open face. Only
// inward shells (negative thickness) are supported.
func (t *Turned) Shell(thickness float64, open Face) (*Shell, error) {
	if thickness >= 0 {
		return nil, geomErr("shell thickness must be negative (inward), got %g", thickness)
	}
	lo, hi := t.region.Min(), t.region.Max()
	if 2*-thickness >= hi.Y-lo.Y {
		return nil, geomErr("shell wall %g is too thick for height %g", -thickness, hi.Y-lo.Y)
	}

	capZ := hi.Y
	if open == FaceBottom {
		capZ = lo.Y
	}
	var walls [][2]model2d.Coord
	for _, e := range t.region.Edges() {
		onAxis := math.Abs(e[0].X) < epsilon && math.Abs(e[1].X) < epsilon
		onCap := math.Abs(e[0].Y-capZ) < epsilon && math.Abs(e[1].Y-capZ) < epsilon
		if onAxis || onCap {
			continue
		}
		walls = append(walls, e)
	}
	return &Shell{Outer: t, Thickness: thickness, Open: open, walls: walls}, nil
}

func (s *Shell) Min() model3d.Coord3D { return s.Outer.Min() }
func (s *Shell) Max() model3d.Coord3D { return s.Outer.Max() }

func (s *Shell) Contains(c model3d.Coord3D) bool {
	if !s.Outer.Contains(c) {
		return false
	}
	p := model2d.XY(math.Hypot(c.X, c.Y), c.Z)
	for _, w := range s.walls {
		if segmentDistance(p, w[0], w[1]) <= -s.Thickness {
			return true
		}
	}
	return false
}
