package cad

import (
	"math"

	"github.com/unixpickle/model3d/model2d"
)

// segmentsPerTurn sets how finely arcs are flattened into path vertices.
const segmentsPerTurn = 256

// Path is an open chain of line and arc segments in a workplane. Methods
// return a new Path; the first failing step is reported by Close or MirrorX.
type Path struct {
	pts []model2d.Coord
	err error
}

// MoveTo starts a path at (x, y).
func MoveTo(x, y float64) *Path {
	return &Path{pts: []model2d.Coord{model2d.XY(x, y)}}
}

// Points returns a copy of the flattened path vertices.
func (p *Path) Points() []model2d.Coord {
	return append([]model2d.Coord(nil), p.pts...)
}

// Err returns the first error recorded while building the path.
func (p *Path) Err() error {
	return p.err
}

func (p *Path) with(pts ...model2d.Coord) *Path {
	out := make([]model2d.Coord, 0, len(p.pts)+len(pts))
	out = append(out, p.pts...)
	return &Path{pts: append(out, pts...), err: p.err}
}

func (p *Path) last() model2d.Coord {
	return p.pts[len(p.pts)-1]
}

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	if p.err != nil {
		return p
	}
	return p.with(model2d.XY(x, y))
}

// SagittaArc adds a circular arc to (x, y) whose bulge height over the chord
// is |sag|. A positive sag bulges to the left of the chord direction.
func (p *Path) SagittaArc(x, y, sag float64) *Path {
	if p.err != nil {
		return p
	}
	start, end := p.last(), model2d.XY(x, y)
	chord := end.Sub(start)
	if chord.Norm() < epsilon {
		return &Path{pts: p.pts, err: geomErr("sagitta arc needs distinct end points")}
	}
	if sag == 0 {
		return &Path{pts: p.pts, err: geomErr("sagitta arc with zero sagitta")}
	}

	dir := chord.Normalize()
	bulge := model2d.XY(-dir.Y, dir.X)
	if sag < 0 {
		bulge = bulge.Scale(-1)
	}
	h := math.Abs(sag)
	half := chord.Norm() / 2
	apex := start.Add(chord.Scale(0.5)).Add(bulge.Scale(h))
	radius := (half*half + h*h) / (2 * h)
	center := apex.Sub(bulge.Scale(radius))

	a0 := angleOf(start.Sub(center))
	a1 := angleOf(end.Sub(center))
	am := angleOf(apex.Sub(center))
	sweep := positiveAngle(a1 - a0)
	if positiveAngle(am-a0) > sweep {
		sweep -= 2 * math.Pi
	}

	n := int(math.Ceil(math.Abs(sweep) / (2 * math.Pi) * segmentsPerTurn))
	if n < 4 {
		n = 4
	}
	pts := make([]model2d.Coord, 0, n)
	for i := 1; i < n; i++ {
		a := a0 + sweep*float64(i)/float64(n)
		pts = append(pts, center.Add(model2d.XY(math.Cos(a), math.Sin(a)).Scale(radius)))
	}
	return p.with(append(pts, end)...)
}

// Close joins the last point back to the first.
func (p *Path) Close() (*PolygonRegion, error) {
	if p.err != nil {
		return nil, p.err
	}
	return Polygon(p.pts...)
}

// MirrorX closes the path with its reflection across the workplane X axis,
// walking the mirrored copy backwards so the outline stays simple.
func (p *Path) MirrorX() (*PolygonRegion, error) {
	if p.err != nil {
		return nil, p.err
	}
	pts := p.Points()
	for i := len(p.pts) - 1; i >= 0; i-- {
		m := model2d.XY(p.pts[i].X, -p.pts[i].Y)
		if samePoint(m, pts[len(pts)-1]) || (i == 0 && samePoint(m, pts[0])) {
			continue
		}
		pts = append(pts, m)
	}
	return Polygon(pts...)
}

func angleOf(c model2d.Coord) float64 {
	return math.Atan2(c.Y, c.X)
}

func positiveAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
