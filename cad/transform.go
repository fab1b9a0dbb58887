package cad

import (
	"math"

	"github.com/unixpickle/model3d/model3d"
)

// Transformed is a solid moved by a rigid transform: p' = Rotation*p + Offset.
type Transformed struct {
	Solid    model3d.Solid
	Rotation *model3d.Matrix3
	Offset   model3d.Coord3D

	inverse  *model3d.Matrix3
	min, max model3d.Coord3D
}

func identity() *model3d.Matrix3 {
	return &model3d.Matrix3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Rotate turns s by degrees about the axis through origin, right-handed.
func Rotate(s model3d.Solid, origin, axis model3d.Coord3D, degrees float64) (*Transformed, error) {
	if axis.Norm() < epsilon {
		return nil, geomErr("rotation axis must be non-zero")
	}
	rot := model3d.NewMatrix3Rotation(axis.Normalize(), degrees*math.Pi/180)
	offset := origin.Sub(rot.MulColumn(origin))
	return compose(s, rot, offset), nil
}

// Translate moves s by offset.
func Translate(s model3d.Solid, offset model3d.Coord3D) *Transformed {
	return compose(s, identity(), offset)
}

// compose applies (rot, offset) after any transform s already carries, so
// chains of moves never nest.
func compose(s model3d.Solid, rot *model3d.Matrix3, offset model3d.Coord3D) *Transformed {
	if inner, ok := s.(*Transformed); ok {
		offset = rot.MulColumn(inner.Offset).Add(offset)
		rot = rot.Mul(inner.Rotation)
		s = inner.Solid
	}
	t := &Transformed{Solid: s, Rotation: rot, Offset: offset, inverse: rot.Transpose()}
	lo, hi := s.Min(), s.Max()
	t.min, t.max = boxBounds(func(i, j, k int) model3d.Coord3D {
		c := model3d.XYZ(
			[]float64{lo.X, hi.X}[i],
			[]float64{lo.Y, hi.Y}[j],
			[]float64{lo.Z, hi.Z}[k],
		)
		return rot.MulColumn(c).Add(offset)
	})
	return t
}

func (t *Transformed) Min() model3d.Coord3D { return t.min }
func (t *Transformed) Max() model3d.Coord3D { return t.max }

func (t *Transformed) Contains(c model3d.Coord3D) bool {
	if !inBounds(t, c) {
		return false
	}
	return t.Solid.Contains(t.inverse.MulColumn(c.Sub(t.Offset)))
}
