package cad

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
)

// Region is a closed 2D area in workplane coordinates. SDF is positive
// inside, negative outside and zero on the boundary.
type Region interface {
	Min() model2d.Coord
	Max() model2d.Coord
	SDF(c model2d.Coord) float64
}

// RectRegion is an axis-aligned rectangle.
type RectRegion struct {
	Center model2d.Coord
	Size   model2d.Coord
}

// Rect returns a w x h rectangle centered on the origin.
func Rect(w, h float64) *RectRegion {
	return RectAt(0, 0, w, h)
}

// RectAt returns a w x h rectangle centered at (x, y).
func RectAt(x, y, w, h float64) *RectRegion {
	return &RectRegion{Center: model2d.XY(x, y), Size: model2d.XY(w, h)}
}

func (r *RectRegion) Min() model2d.Coord { return r.Center.Sub(r.Size.Scale(0.5)) }
func (r *RectRegion) Max() model2d.Coord { return r.Center.Add(r.Size.Scale(0.5)) }

func (r *RectRegion) SDF(c model2d.Coord) float64 {
	dx := math.Abs(c.X-r.Center.X) - r.Size.X/2
	dy := math.Abs(c.Y-r.Center.Y) - r.Size.Y/2
	outside := math.Hypot(math.Max(dx, 0), math.Max(dy, 0))
	inside := math.Min(math.Max(dx, dy), 0)
	return -(outside + inside)
}

// CircleRegion is a disk.
type CircleRegion struct {
	Center model2d.Coord
	Radius float64
}

// Circle returns a disk of radius r centered on the origin.
func Circle(r float64) *CircleRegion {
	return CircleAt(0, 0, r)
}

// CircleAt returns a disk of radius r centered at (x, y).
func CircleAt(x, y, r float64) *CircleRegion {
	return &CircleRegion{Center: model2d.XY(x, y), Radius: r}
}

func (c *CircleRegion) Min() model2d.Coord {
	return c.Center.Sub(model2d.XY(c.Radius, c.Radius))
}

func (c *CircleRegion) Max() model2d.Coord {
	return c.Center.Add(model2d.XY(c.Radius, c.Radius))
}

func (c *CircleRegion) SDF(p model2d.Coord) float64 {
	return c.Radius - p.Sub(c.Center).Norm()
}

// Fused is the union of several regions. With a positive Radius, concave
// junctions between consecutive parts are rounded with that radius.
type Fused struct {
	Parts  []Region
	Radius float64
}

// Fuse merges regions into one, like a sketch "clean" of overlapping faces.
func Fuse(parts ...Region) (*Fused, error) {
	if len(parts) == 0 {
		return nil, geomErr("fuse needs at least one region")
	}
	return &Fused{Parts: append([]Region(nil), parts...)}, nil
}

// FilletJunctions rounds the inner corners where the fused parts meet.
func (f *Fused) FilletJunctions(r float64) (*Fused, error) {
	if r <= 0 {
		return nil, geomErr("fillet radius must be positive, got %g", r)
	}
	if len(f.Parts) < 2 {
		return nil, geomErr("no junctions to fillet in a single region")
	}
	return &Fused{Parts: f.Parts, Radius: r}, nil
}

func (f *Fused) Min() model2d.Coord {
	m := f.Parts[0].Min()
	for _, p := range f.Parts[1:] {
		m = m.Min(p.Min())
	}
	return m
}

func (f *Fused) Max() model2d.Coord {
	m := f.Parts[0].Max()
	for _, p := range f.Parts[1:] {
		m = m.Max(p.Max())
	}
	return m
}

func (f *Fused) SDF(c model2d.Coord) float64 {
	d := f.Parts[0].SDF(c)
	for _, p := range f.Parts[1:] {
		if f.Radius > 0 {
			d = roundUnion(d, p.SDF(c), f.Radius)
		} else {
			d = math.Max(d, p.SDF(c))
		}
	}
	return d
}

// roundUnion joins two inside-positive distances with a circular blend of
// radius r in the concave corner.
func roundUnion(a, b, r float64) float64 {
	a, b = -a, -b
	ux := math.Max(r-a, 0)
	uy := math.Max(r-b, 0)
	return -(math.Max(r, math.Min(a, b)) - math.Hypot(ux, uy))
}

// roundIntersect intersects two inside-positive distances, rounding the
// convex corner with radius r.
func roundIntersect(a, b, r float64) float64 {
	a, b = -a, -b
	ux := math.Max(r+a, 0)
	uy := math.Max(r+b, 0)
	return -(math.Min(-r, math.Max(a, b)) + math.Hypot(ux, uy))
}
