package cad

import (
	"errors"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

func must[T any](v T, err error) T {
	essentials.Must(err)
	return v
}

func TestExtrusion(t *testing.T) {
	convey.Convey("Given a 2 x 4 rectangle", t, func() {
		rect := Rect(2, 4)

		convey.Convey("When extruded 3 along XY", func() {
			e := must(Extrude(rect, XY, 3))

			convey.Convey("Then the bounds match the box", func() {
				convey.So(e.Min(), convey.ShouldResemble, model3d.XYZ(-1, -2, 0))
				convey.So(e.Max(), convey.ShouldResemble, model3d.XYZ(1, 2, 3))
			})
			convey.Convey("Then only points inside the box are contained", func() {
				convey.So(e.Contains(model3d.XYZ(0, 0, 1.5)), convey.ShouldBeTrue)
				convey.So(e.Contains(model3d.XYZ(0.9, 1.9, 2.9)), convey.ShouldBeTrue)
				convey.So(e.Contains(model3d.XYZ(0, 0, 3.5)), convey.ShouldBeFalse)
				convey.So(e.Contains(model3d.XYZ(1.1, 0, 1)), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When extruded on the inverted XY plane", func() {
			e := must(Extrude(rect, XY.Inverted(), 3))

			convey.Convey("Then it grows downward", func() {
				convey.So(e.Min().Z, convey.ShouldAlmostEqual, -3)
				convey.So(e.Max().Z, convey.ShouldAlmostEqual, 0)
				convey.So(e.Contains(model3d.XYZ(0, 0, -1)), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the depth is not positive", func() {
			_, err := Extrude(rect, XY, 0)

			convey.Convey("Then a geometry error is returned", func() {
				convey.So(errors.Is(err, ErrGeometry), convey.ShouldBeTrue)
			})
		})
	})
}

func TestTwistExtrusion(t *testing.T) {
	convey.Convey("Given a thin bar twisted a quarter turn over 10", t, func() {
		e := must(TwistExtrude(Rect(4, 0.5), XY, 10, 90))

		convey.Convey("Then the base is untwisted", func() {
			convey.So(e.Contains(model3d.XYZ(1.5, 0, 0.001)), convey.ShouldBeTrue)
			convey.So(e.Contains(model3d.XYZ(0, 1.5, 0.001)), convey.ShouldBeFalse)
		})
		convey.Convey("Then the top is rotated by 90 degrees", func() {
			convey.So(e.Contains(model3d.XYZ(0, 1.5, 9.999)), convey.ShouldBeTrue)
			convey.So(e.Contains(model3d.XYZ(1.5, 0, 9.999)), convey.ShouldBeFalse)
		})

		convey.Convey("When continued from the top face", func() {
			next := must(e.TwistExtrudeEnd(5, 90))

			convey.Convey("Then it starts where the first one ended", func() {
				convey.So(next.Plane.Origin.Z, convey.ShouldAlmostEqual, 10)
				convey.So(next.Contains(model3d.XYZ(0, 1.5, 10.001)), convey.ShouldBeTrue)
				convey.So(next.Contains(model3d.XYZ(-1.5, 0, 14.999)), convey.ShouldBeTrue)
				convey.So(next.Contains(model3d.XYZ(0, 1.5, 14.999)), convey.ShouldBeFalse)
			})
		})
	})
}

func TestHole(t *testing.T) {
	convey.Convey("Given a disk bored through its center", t, func() {
		disk := must(Extrude(Circle(5), XY, 2))
		ring := must(Hole(disk, 4))

		convey.Convey("Then the bore is empty and the rim is solid", func() {
			convey.So(ring.Contains(model3d.XYZ(0, 0, 1)), convey.ShouldBeFalse)
			convey.So(ring.Contains(model3d.XYZ(1.9, 0, 0.01)), convey.ShouldBeFalse)
			convey.So(ring.Contains(model3d.XYZ(3, 0, 1)), convey.ShouldBeTrue)
			convey.So(ring.Contains(model3d.XYZ(0, -4.9, 1.99)), convey.ShouldBeTrue)
		})
	})
}

func TestChamferFaces(t *testing.T) {
	convey.Convey("Given a 4 x 4 x 4 block", t, func() {
		block := must(Extrude(Rect(4, 4), XY, 4))

		convey.Convey("When its end caps are chamfered by 0.5", func() {
			c := must(block.ChamferFaces(AxisZ, 0.5))

			convey.Convey("Then the cap edges are bevelled", func() {
				convey.So(c.Contains(model3d.XYZ(1.9, 0, 0.1)), convey.ShouldBeFalse)
				convey.So(c.Contains(model3d.XYZ(0, -1.9, 3.9)), convey.ShouldBeFalse)
			})
			convey.Convey("Then the rest of the block is intact", func() {
				convey.So(c.Contains(model3d.XYZ(0, 0, 0.1)), convey.ShouldBeTrue)
				convey.So(c.Contains(model3d.XYZ(1.9, 1.9, 2)), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the chamfer does not fit", func() {
			_, err := block.ChamferFaces(AxisZ, 2.5)

			convey.Convey("Then a geometry error is returned", func() {
				convey.So(errors.Is(err, ErrGeometry), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a 4 x 2 bar extruded 6", t, func() {
		profile := must(Polygon(model2d.XY(-2, -1), model2d.XY(2, -1), model2d.XY(2, 1), model2d.XY(-2, 1)))
		bar := must(Extrude(profile, XY, 6))

		convey.Convey("When the faces at its Y extremes are chamfered", func() {
			c := must(bar.ChamferFaces(AxisY, 0.4))

			convey.Convey("Then every edge around those faces is bevelled", func() {
				convey.So(c.Contains(model3d.XYZ(1.95, 0.95, 3)), convey.ShouldBeFalse)
				convey.So(c.Contains(model3d.XYZ(0, 0.95, 0.05)), convey.ShouldBeFalse)
				convey.So(c.Contains(model3d.XYZ(0, -0.95, 5.95)), convey.ShouldBeFalse)
			})
			convey.Convey("Then edges away from those faces stay sharp", func() {
				convey.So(c.Contains(model3d.XYZ(1.95, 0, 0.05)), convey.ShouldBeTrue)
				convey.So(c.Contains(model3d.XYZ(0, 0, 0.05)), convey.ShouldBeTrue)
				convey.So(c.Contains(model3d.XYZ(0, 0.95, 3)), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the bar is twisted", func() {
			twisted := must(TwistExtrude(profile, XY, 6, 10))
			_, err := twisted.ChamferFaces(AxisY, 0.4)

			convey.Convey("Then chamfering is refused", func() {
				convey.So(errors.Is(err, ErrGeometry), convey.ShouldBeTrue)
			})
		})
	})
}

func TestTurnedShell(t *testing.T) {
	convey.Convey("Given a cone lofted from r=2.5 to r=13 with a cylinder on top", t, func() {
		cone := must(LoftCircles(2.5, 0, 13, 65))
		body := must(cone.ExtrudeTop(13, 15))

		convey.Convey("Then the body spans the full height", func() {
			convey.So(body.Min().Z, convey.ShouldEqual, 0)
			convey.So(body.Max().Z, convey.ShouldEqual, 80)
			convey.So(body.Contains(model3d.XYZ(12.9, 0, 79)), convey.ShouldBeTrue)
			convey.So(body.Contains(model3d.XYZ(12, 0, 1)), convey.ShouldBeFalse)
		})

		convey.Convey("When shelled inward by 1 with the top removed", func() {
			shell := must(body.Shell(-1, FaceTop))

			convey.Convey("Then the interior is hollow and the top is open", func() {
				convey.So(shell.Contains(model3d.XYZ(0, 0, 40)), convey.ShouldBeFalse)
				convey.So(shell.Contains(model3d.XYZ(11, 0, 75)), convey.ShouldBeFalse)
				convey.So(shell.Contains(model3d.XYZ(0, 0, 79.9)), convey.ShouldBeFalse)
				convey.So(shell.Contains(model3d.XYZ(5, 0, 32.5)), convey.ShouldBeFalse)
			})
			convey.Convey("Then the walls and the bottom remain", func() {
				convey.So(shell.Contains(model3d.XYZ(0, 0, 0.5)), convey.ShouldBeTrue)
				convey.So(shell.Contains(model3d.XYZ(0, 12.5, 75)), convey.ShouldBeTrue)
				convey.So(shell.Contains(model3d.XYZ(7.5, 0, 32.5)), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When shelled outward", func() {
			_, err := body.Shell(1, FaceTop)

			convey.Convey("Then a geometry error is returned", func() {
				convey.So(errors.Is(err, ErrGeometry), convey.ShouldBeTrue)
			})
		})
	})
}

func TestRevolve(t *testing.T) {
	convey.Convey("Given a unit square one unit off the Y axis", t, func() {
		square := RectAt(1, 0, 1, 1)

		convey.Convey("When revolved about the Y axis", func() {
			r := must(Revolve(square, XY, model2d.XY(0, 0), model2d.XY(0, 1)))

			convey.Convey("Then it forms a ring around Y", func() {
				convey.So(r.Contains(model3d.XYZ(1, 0, 0)), convey.ShouldBeTrue)
				convey.So(r.Contains(model3d.XYZ(0, 0, 1)), convey.ShouldBeTrue)
				convey.So(r.Contains(model3d.XYZ(-0.8, 0.4, -0.8)), convey.ShouldBeTrue)
				convey.So(r.Contains(model3d.XYZ(0, 0, 0)), convey.ShouldBeFalse)
				convey.So(r.Contains(model3d.XYZ(1, 0.6, 0)), convey.ShouldBeFalse)
			})
			convey.Convey("Then the bounds enclose the ring", func() {
				convey.So(r.Max().X, convey.ShouldAlmostEqual, 1.5)
				convey.So(r.Max().Y, convey.ShouldAlmostEqual, 0.5)
				convey.So(r.Min().Z, convey.ShouldAlmostEqual, -1.5)
			})
		})

		convey.Convey("When the profile crosses the axis", func() {
			_, err := Revolve(Rect(2, 2), XY, model2d.XY(0, 0), model2d.XY(0, 1))

			convey.Convey("Then a geometry error is returned", func() {
				convey.So(errors.Is(err, ErrGeometry), convey.ShouldBeTrue)
			})
		})
	})
}

func TestTransforms(t *testing.T) {
	convey.Convey("Given a bar along X", t, func() {
		bar := must(Extrude(Rect(4, 1), XY, 1))

		convey.Convey("When rotated 90 degrees about Z", func() {
			r := must(Rotate(bar, model3d.XYZ(0, 0, 0), model3d.XYZ(0, 0, 1), 90))

			convey.Convey("Then it lies along Y", func() {
				convey.So(r.Contains(model3d.XYZ(0, 1.5, 0.5)), convey.ShouldBeTrue)
				convey.So(r.Contains(model3d.XYZ(1.5, 0, 0.5)), convey.ShouldBeFalse)
				convey.So(r.Max().Y, convey.ShouldAlmostEqual, 2)
			})

			convey.Convey("When then translated", func() {
				m := Translate(r, model3d.XYZ(0, 0, 10))

				convey.Convey("Then the transforms are folded into one", func() {
					convey.So(m.Solid == model3d.Solid(bar), convey.ShouldBeTrue)
					convey.So(m.Contains(model3d.XYZ(0, 1.5, 10.5)), convey.ShouldBeTrue)
					convey.So(m.Min().Z, convey.ShouldAlmostEqual, 10)
				})
			})
		})

		convey.Convey("When rotated about an offset axis", func() {
			r := must(Rotate(bar, model3d.XYZ(10, 0, 0), model3d.XYZ(0, 0, 1), 180))

			convey.Convey("Then it is mirrored through the axis", func() {
				convey.So(r.Contains(model3d.XYZ(19, 0, 0.5)), convey.ShouldBeTrue)
				convey.So(r.Contains(model3d.XYZ(0, 0, 0.5)), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When rotated about a zero axis", func() {
			_, err := Rotate(bar, model3d.XYZ(0, 0, 0), model3d.Coord3D{}, 90)

			convey.Convey("Then a geometry error is returned", func() {
				convey.So(errors.Is(err, ErrGeometry), convey.ShouldBeTrue)
			})
		})
	})
}

func TestBooleans(t *testing.T) {
	convey.Convey("Given two overlapping cubes", t, func() {
		a := must(Extrude(RectAt(0, 0, 2, 2), XY, 2))
		b := must(Extrude(RectAt(1, 0, 2, 2), XY, 2))

		convey.Convey("Then the union covers both", func() {
			u := Union(a, b)
			convey.So(u.Contains(model3d.XYZ(-0.9, 0, 1)), convey.ShouldBeTrue)
			convey.So(u.Contains(model3d.XYZ(1.9, 0, 1)), convey.ShouldBeTrue)
			min, max := Bounds(u)
			convey.So(min, convey.ShouldResemble, model3d.XYZ(-1, -1, 0))
			convey.So(max, convey.ShouldResemble, model3d.XYZ(2, 1, 2))
		})
		convey.Convey("Then cutting is not commutative", func() {
			ab := Cut(a, b)
			ba := Cut(b, a)
			convey.So(ab.Contains(model3d.XYZ(-0.9, 0, 1)), convey.ShouldBeTrue)
			convey.So(ab.Contains(model3d.XYZ(1.9, 0, 1)), convey.ShouldBeFalse)
			convey.So(ba.Contains(model3d.XYZ(1.9, 0, 1)), convey.ShouldBeTrue)
			convey.So(ba.Contains(model3d.XYZ(-0.9, 0, 1)), convey.ShouldBeFalse)
		})
		convey.Convey("Then a single-solid union is the solid itself", func() {
			convey.So(Union(a) == model3d.Solid(a), convey.ShouldBeTrue)
		})
	})
}
