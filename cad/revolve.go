package cad

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// Revolution sweeps a profile a full turn about an axis lying in its
// workplane.
type Revolution struct {
	Profile Region
	Plane   Plane

	origin model2d.Coord
	dir    model2d.Coord
	side   model2d.Coord

	min, max model3d.Coord3D
}

// Revolve turns r 360 degrees about the in-plane axis running from axisStart
// to axisEnd (local coordinates). The profile must lie on one side of the
// axis.
func Revolve(r Region, p Plane, axisStart, axisEnd model2d.Coord) (*Revolution, error) {
	axis := axisEnd.Sub(axisStart)
	if axis.Norm() < epsilon {
		return nil, geomErr("revolve axis needs distinct end points")
	}
	dir := axis.Normalize()
	side := model2d.XY(-dir.Y, dir.X)

	lo, hi := r.Min(), r.Max()
	corners := []model2d.Coord{lo, hi, model2d.XY(lo.X, hi.Y), model2d.XY(hi.X, lo.Y)}
	var tMin, tMax, sMin, sMax float64
	for i, c := range corners {
		d := c.Sub(axisStart)
		t, s := d.Dot(dir), d.Dot(side)
		if i == 0 {
			tMin, tMax, sMin, sMax = t, t, s, s
			continue
		}
		tMin, tMax = math.Min(tMin, t), math.Max(tMax, t)
		sMin, sMax = math.Min(sMin, s), math.Max(sMax, s)
	}
	if sMin < -epsilon && sMax > epsilon {
		return nil, geomErr("revolve profile crosses its axis")
	}
	if sMax <= epsilon {
		side = side.Scale(-1)
	}
	radius := math.Max(math.Abs(sMin), math.Abs(sMax))

	rev := &Revolution{Profile: r, Plane: p, origin: axisStart, dir: dir, side: side}
	rev.min, rev.max = boxBounds(func(i, j, k int) model3d.Coord3D {
		t := []float64{tMin, tMax}[i]
		s := []float64{-radius, radius}[j]
		w := []float64{-radius, radius}[k]
		local := axisStart.Add(dir.Scale(t)).Add(side.Scale(s))
		return p.ToGlobal(local.X, local.Y, w)
	})
	return rev, nil
}

func (r *Revolution) Min() model3d.Coord3D { return r.min }
func (r *Revolution) Max() model3d.Coord3D { return r.max }

func (r *Revolution) Contains(c model3d.Coord3D) bool {
	if !inBounds(r, c) {
		return false
	}
	u, v, w := r.Plane.ToLocal(c)
	d := model2d.XY(u, v).Sub(r.origin)
	t := d.Dot(r.dir)
	s := d.Dot(r.side)
	radial := math.Hypot(s, w)
	return r.Profile.SDF(r.origin.Add(r.dir.Scale(t)).Add(r.side.Scale(radial))) >= 0
}
