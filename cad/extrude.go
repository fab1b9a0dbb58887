package cad

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// Extrusion sweeps a profile along its workplane normal. The profile is
// rotated by Angle (radians) at the start plane and by Angle+Twist at Depth,
// varying linearly in between.
type Extrusion struct {
	Profile Region
	Plane   Plane
	Depth   float64
	Angle   float64
	Twist   float64

	min, max model3d.Coord3D
}

// Extrude sweeps r straight along the plane normal by depth.
func Extrude(r Region, p Plane, depth float64) (*Extrusion, error) {
	return newExtrusion(r, p, depth, 0, 0)
}

// TwistExtrude sweeps r by depth while rotating it about the plane normal by
// degrees in total.
func TwistExtrude(r Region, p Plane, depth, degrees float64) (*Extrusion, error) {
	return newExtrusion(r, p, depth, 0, degrees*math.Pi/180)
}

// TwistExtrudeEnd continues from the far face of e: the new extrusion starts
// with e's final profile orientation and twists a further degrees.
func (e *Extrusion) TwistExtrudeEnd(depth, degrees float64) (*Extrusion, error) {
	return newExtrusion(e.Profile, e.EndPlane(), depth, e.Angle+e.Twist, degrees*math.Pi/180)
}

// EndPlane is the workplane of the far face.
func (e *Extrusion) EndPlane() Plane {
	return e.Plane.Offset(e.Depth)
}

func newExtrusion(r Region, p Plane, depth, angle, twist float64) (*Extrusion, error) {
	if depth <= 0 {
		return nil, geomErr("extrusion depth must be positive, got %g", depth)
	}
	lo, hi := r.Min(), r.Max()
	if hi.X <= lo.X || hi.Y <= lo.Y {
		return nil, geomErr("cannot extrude an empty profile")
	}
	e := &Extrusion{Profile: r, Plane: p, Depth: depth, Angle: angle, Twist: twist}
	if angle != 0 || twist != 0 {
		radius := 0.0
		for _, c := range []model2d.Coord{lo, hi, model2d.XY(lo.X, hi.Y), model2d.XY(hi.X, lo.Y)} {
			radius = math.Max(radius, c.Norm())
		}
		lo, hi = model2d.XY(-radius, -radius), model2d.XY(radius, radius)
	}
	e.min, e.max = boxBounds(func(i, j, k int) model3d.Coord3D {
		u := []float64{lo.X, hi.X}[i]
		v := []float64{lo.Y, hi.Y}[j]
		w := []float64{0, depth}[k]
		return p.ToGlobal(u, v, w)
	})
	return e, nil
}

func (e *Extrusion) Min() model3d.Coord3D { return e.min }
func (e *Extrusion) Max() model3d.Coord3D { return e.max }

func (e *Extrusion) Contains(c model3d.Coord3D) bool {
	if !inBounds(e, c) {
		return false
	}
	u, v, w := e.Plane.ToLocal(c)
	if w < 0 || w > e.Depth {
		return false
	}
	return e.Profile.SDF(e.profileCoord(u, v, w)) >= 0
}

// profileCoord undoes the twist at depth w.
func (e *Extrusion) profileCoord(u, v, w float64) model2d.Coord {
	theta := e.Angle + e.Twist*w/e.Depth
	if theta == 0 {
		return model2d.XY(u, v)
	}
	s, c := math.Sincos(-theta)
	return model2d.XY(u*c-v*s, u*s+v*c)
}

// Hole bores a through hole of the given diameter along the extrusion
// direction, centered on the workplane origin.
func Hole(e *Extrusion, diameter float64) (model3d.Solid, error) {
	if diameter <= 0 {
		return nil, geomErr("hole diameter must be positive, got %g", diameter)
	}
	const overshoot = 1e-3
	tool, err := Extrude(Circle(diameter/2), e.Plane.Offset(-overshoot), e.Depth+2*overshoot)
	if err != nil {
		return nil, err
	}
	return Cut(e, tool), nil
}

// boxBounds evaluates the 8 corners of a (possibly rotated) box and returns
// their axis-aligned bounds.
func boxBounds(corner func(i, j, k int) model3d.Coord3D) (model3d.Coord3D, model3d.Coord3D) {
	lo := corner(0, 0, 0)
	hi := lo
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				c := corner(i, j, k)
				lo = lo.Min(c)
				hi = hi.Max(c)
			}
		}
	}
	return lo, hi
}

func inBounds(s model3d.Solid, c model3d.Coord3D) bool {
	lo, hi := s.Min(), s.Max()
	return c.X >= lo.X && c.Y >= lo.Y && c.Z >= lo.Z &&
		c.X <= hi.X && c.Y <= hi.Y && c.Z <= hi.Z
}
