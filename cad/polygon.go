package cad

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
)

// PolygonRegion is a simple closed polygon. Vertices may wind either way;
// the closing edge is implicit.
type PolygonRegion struct {
	Vertices []model2d.Coord

	min, max model2d.Coord
}

// Polygon builds a polygon region. A repeated closing vertex and consecutive
// duplicates are dropped.
func Polygon(pts ...model2d.Coord) (*PolygonRegion, error) {
	var vs []model2d.Coord
	for _, p := range pts {
		if len(vs) > 0 && samePoint(vs[len(vs)-1], p) {
			continue
		}
		vs = append(vs, p)
	}
	if len(vs) > 1 && samePoint(vs[0], vs[len(vs)-1]) {
		vs = vs[:len(vs)-1]
	}
	if len(vs) < 3 {
		return nil, geomErr("polygon needs at least 3 distinct vertices, got %d", len(vs))
	}
	poly := &PolygonRegion{Vertices: vs, min: vs[0], max: vs[0]}
	for _, v := range vs[1:] {
		poly.min = poly.min.Min(v)
		poly.max = poly.max.Max(v)
	}
	if math.Abs(poly.Area()) < epsilon {
		return nil, geomErr("polygon has zero area")
	}
	return poly, nil
}

func (p *PolygonRegion) Min() model2d.Coord { return p.min }
func (p *PolygonRegion) Max() model2d.Coord { return p.max }

// Area returns the signed area; positive for counter-clockwise winding.
func (p *PolygonRegion) Area() float64 {
	var sum float64
	for i, a := range p.Vertices {
		b := p.Vertices[(i+1)%len(p.Vertices)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Edges returns the polygon edges in order, including the closing edge.
func (p *PolygonRegion) Edges() [][2]model2d.Coord {
	edges := make([][2]model2d.Coord, len(p.Vertices))
	for i, a := range p.Vertices {
		edges[i] = [2]model2d.Coord{a, p.Vertices[(i+1)%len(p.Vertices)]}
	}
	return edges
}

func (p *PolygonRegion) SDF(c model2d.Coord) float64 {
	dist := math.Inf(1)
	inside := false
	n := len(p.Vertices)
	for i, a := range p.Vertices {
		b := p.Vertices[(i+1)%n]
		dist = math.Min(dist, segmentDistance(c, a, b))
		if (a.Y > c.Y) != (b.Y > c.Y) {
			x := a.X + (c.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if c.X < x {
				inside = !inside
			}
		}
	}
	if inside {
		return dist
	}
	return -dist
}

// Convex reports whether every corner turns the same way.
func (p *PolygonRegion) Convex() bool {
	n := len(p.Vertices)
	sign := 0.0
	for i := range p.Vertices {
		a, b, c := p.Vertices[(i+n-1)%n], p.Vertices[i], p.Vertices[(i+1)%n]
		cr := cross2(b.Sub(a), c.Sub(b))
		if math.Abs(cr) < epsilon {
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, cr)
		} else if math.Copysign(1, cr) != sign {
			return false
		}
	}
	return true
}

// Fillet rounds the selected corners of a convex polygon with radius r.
// A radius whose tangent points would fall outside the adjacent edges is a
// geometry error.
func (p *PolygonRegion) Fillet(sel VertexSelector, r float64) (Region, error) {
	if r <= 0 {
		return nil, geomErr("fillet radius must be positive, got %g", r)
	}
	if !p.Convex() {
		return nil, geomErr("vertex fillets need a convex polygon")
	}
	idx := sel(p.Vertices)
	if len(idx) == 0 {
		return nil, geomErr("fillet selector matched no vertices")
	}

	n := len(p.Vertices)
	orient := 1.0
	if p.Area() < 0 {
		orient = -1
	}
	planes := make([]halfPlane, n)
	for i, a := range p.Vertices {
		planes[i] = newHalfPlane(a, p.Vertices[(i+1)%n], orient)
	}

	rounded := make([]bool, n)
	for _, i := range idx {
		prev, next := p.Vertices[(i+n-1)%n], p.Vertices[(i+1)%n]
		in := prev.Sub(p.Vertices[i])
		out := next.Sub(p.Vertices[i])
		angle := math.Acos(clamp(in.Normalize().Dot(out.Normalize()), -1, 1))
		tangent := r / math.Tan(angle/2)
		if tangent > in.Norm()+epsilon || tangent > out.Norm()+epsilon {
			return nil, geomErr("fillet radius %g does not fit at vertex (%g, %g)",
				r, p.Vertices[i].X, p.Vertices[i].Y)
		}
		rounded[i] = true
	}
	return &roundedPolygon{
		planes:  planes,
		rounded: rounded,
		radius:  r,
		min:     p.min,
		max:     p.max,
	}, nil
}

type halfPlane struct {
	origin model2d.Coord
	normal model2d.Coord // unit, pointing inside
}

func newHalfPlane(a, b model2d.Coord, orient float64) halfPlane {
	d := b.Sub(a).Normalize()
	return halfPlane{origin: a, normal: model2d.XY(-d.Y, d.X).Scale(orient)}
}

func (h halfPlane) SDF(c model2d.Coord) float64 {
	return c.Sub(h.origin).Dot(h.normal)
}

// roundedPolygon is a convex polygon as an intersection of half planes, with
// some corners rounded.
type roundedPolygon struct {
	planes   []halfPlane
	rounded  []bool
	radius   float64
	min, max model2d.Coord
}

func (r *roundedPolygon) Min() model2d.Coord { return r.min }
func (r *roundedPolygon) Max() model2d.Coord { return r.max }

func (r *roundedPolygon) SDF(c model2d.Coord) float64 {
	n := len(r.planes)
	d := math.Inf(1)
	for i, h := range r.planes {
		d = math.Min(d, h.SDF(c))
		if r.rounded[i] {
			prev := r.planes[(i+n-1)%n]
			d = math.Min(d, roundIntersect(prev.SDF(c), h.SDF(c), r.radius))
		}
	}
	return d
}

// VertexSelector picks vertex indices out of a polygon.
type VertexSelector func(vs []model2d.Coord) []int

// Extreme-vertex selectors, like ">X" or "<Y" in CAD selector strings.
var (
	MaxX VertexSelector = extremeVertices(func(c model2d.Coord) float64 { return c.X })
	MinX VertexSelector = extremeVertices(func(c model2d.Coord) float64 { return -c.X })
	MaxY VertexSelector = extremeVertices(func(c model2d.Coord) float64 { return c.Y })
	MinY VertexSelector = extremeVertices(func(c model2d.Coord) float64 { return -c.Y })
)

func extremeVertices(key func(model2d.Coord) float64) VertexSelector {
	return func(vs []model2d.Coord) []int {
		best := math.Inf(-1)
		for _, v := range vs {
			best = math.Max(best, key(v))
		}
		var out []int
		for i, v := range vs {
			if best-key(v) < 1e-7 {
				out = append(out, i)
			}
		}
		return out
	}
}

func segmentDistance(p, a, b model2d.Coord) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Norm()
	}
	t := clamp(p.Sub(a).Dot(ab)/l2, 0, 1)
	return p.Sub(a.Add(ab.Scale(t))).Norm()
}

func cross2(a, b model2d.Coord) float64 {
	return a.X*b.Y - a.Y*b.X
}

func samePoint(a, b model2d.Coord) bool {
	return a.Sub(b).Norm() < 1e-9
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
