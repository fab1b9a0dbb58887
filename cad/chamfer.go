package cad

import (
	"math"
	"sort"

	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// Chamfered is an extrusion with the edge loops of its extreme faces along
// one axis bevelled at 45 degrees.
type Chamfered struct {
	Base *Extrusion
	Size float64

	caps  bool
	faces []chamferFace
}

// chamferFace is a planar side face of an extrusion: the strip where the
// profile coordinate `along` equals value, spanning [lo, hi] on the other
// profile coordinate and the full depth.
type chamferFace struct {
	along  int
	value  float64
	sign   float64
	lo, hi float64
}

// ChamferFaces bevels the edges bounding the faces at the minimum and maximum
// extent of e along axis. When axis is the extrusion direction these are the
// two profile loops at the end caps; otherwise they are the flat side faces
// lying on the profile's extreme edges. A size that does not fit on a face is
// a geometry error.
func (e *Extrusion) ChamferFaces(axis Axis, size float64) (*Chamfered, error) {
	if size <= 0 {
		return nil, geomErr("chamfer size must be positive, got %g", size)
	}
	if e.Angle != 0 || e.Twist != 0 {
		return nil, geomErr("cannot chamfer a twisted extrusion")
	}
	if 2*size >= e.Depth {
		return nil, geomErr("chamfer %g exceeds extrusion depth %g", size, e.Depth)
	}

	dir := axis.Vector()
	if parallel(dir, e.Plane.Normal) {
		lo, hi := e.Profile.Min(), e.Profile.Max()
		if 2*size >= math.Min(hi.X-lo.X, hi.Y-lo.Y) {
			return nil, geomErr("chamfer %g exceeds profile size", size)
		}
		return &Chamfered{Base: e, Size: size, caps: true}, nil
	}

	var along int
	switch {
	case parallel(dir, e.Plane.XDir):
		along = 0
	case parallel(dir, e.Plane.YDir()):
		along = 1
	default:
		return nil, geomErr("axis %s is not aligned with the workplane", axis)
	}

	poly, ok := e.Profile.(*PolygonRegion)
	if !ok {
		return nil, geomErr("side-face chamfers need a polygon profile")
	}
	faces, err := extremeFaces(poly, along)
	if err != nil {
		return nil, err
	}
	for _, f := range faces {
		if 2*size >= f.hi-f.lo {
			return nil, geomErr("chamfer %g exceeds face width %g", size, f.hi-f.lo)
		}
	}
	return &Chamfered{Base: e, Size: size, faces: faces}, nil
}

func extremeFaces(poly *PolygonRegion, along int) ([]chamferFace, error) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range poly.Vertices {
		x := components(v)[along]
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}

	var faces []chamferFace
	for _, ext := range []struct {
		value, sign float64
	}{{hi, 1}, {lo, -1}} {
		var spans [][2]float64
		for _, e := range poly.Edges() {
			a, b := components(e[0]), components(e[1])
			if math.Abs(a[along]-ext.value) > 1e-7 || math.Abs(b[along]-ext.value) > 1e-7 {
				continue
			}
			s, t := a[1-along], b[1-along]
			spans = append(spans, [2]float64{math.Min(s, t), math.Max(s, t)})
		}
		if len(spans) == 0 {
			return nil, geomErr("no planar face at the profile extreme %g", ext.value)
		}
		for _, s := range mergeSpans(spans) {
			faces = append(faces, chamferFace{along: along, value: ext.value, sign: ext.sign, lo: s[0], hi: s[1]})
		}
	}
	return faces, nil
}

func components(c model2d.Coord) [2]float64 {
	return [2]float64{c.X, c.Y}
}

func mergeSpans(spans [][2]float64) [][2]float64 {
	sort.Slice(spans, func(i, j int) bool { return spans[i][0] < spans[j][0] })
	out := [][2]float64{spans[0]}
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s[0] <= last[1]+1e-7 {
			last[1] = math.Max(last[1], s[1])
			continue
		}
		out = append(out, s)
	}
	return out
}

func (c *Chamfered) Min() model3d.Coord3D { return c.Base.Min() }
func (c *Chamfered) Max() model3d.Coord3D { return c.Base.Max() }

func (c *Chamfered) Contains(p model3d.Coord3D) bool {
	if !c.Base.Contains(p) {
		return false
	}
	u, v, w := c.Base.Plane.ToLocal(p)
	depth := math.Min(w, c.Base.Depth-w)

	if c.caps {
		if depth >= c.Size {
			return true
		}
		return c.Base.Profile.SDF(c.Base.profileCoord(u, v, w))+depth >= c.Size
	}

	uv := [2]float64{u, v}
	for _, f := range c.faces {
		in := f.sign * (f.value - uv[f.along])
		if in >= c.Size {
			continue
		}
		other := uv[1-f.along]
		m := math.Min(math.Min(other-f.lo, f.hi-other), depth)
		if m >= 0 && in+m < c.Size {
			return false
		}
	}
	return true
}
