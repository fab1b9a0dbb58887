package parts

import (
	"fmt"

	"github.com/dstockto/partgen/cad"
	"github.com/dstockto/partgen/models"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

var zAxis = model3d.XYZ(0, 0, 1)

// FeatherBlade builds the blade of one feather hanging below the XY plane.
// Flat feathers are a single extrusion; curved ones are stacked slices, each
// twisted a little more than the one above.
func FeatherBlade(p models.TailParams) ([]*cad.Extrusion, error) {
	blade := cad.Rect(p.FeatherDiameter-p.Thickness/2, p.Thickness)
	plane := cad.XY.Inverted()

	if !p.Curved() {
		e, err := cad.Extrude(blade, plane, p.FeatherHeight)
		if err != nil {
			return nil, err
		}
		return []*cad.Extrusion{e}, nil
	}

	first, err := cad.Extrude(blade, plane, p.FeatherSliceHeight())
	if err != nil {
		return nil, err
	}
	slices := []*cad.Extrusion{first}
	for k := 1; k < p.FeatherNumSlices; k++ {
		next, err := slices[k-1].TwistExtrudeEnd(p.FeatherSliceHeight(), p.FeatherSliceAngle*float64(k))
		if err != nil {
			return nil, fmt.Errorf("slice %d: %w", k, err)
		}
		slices = append(slices, next)
	}
	return slices, nil
}

// FeatherAmplifier is the triangular rib standing on the blade.
func FeatherAmplifier(p models.TailParams) (model3d.Solid, error) {
	l := p.FeatherAmplifierLength
	tri, err := cad.Polygon(model2d.XY(-l, 0), model2d.XY(0, l), model2d.XY(l, 0))
	if err != nil {
		return nil, err
	}
	rib, err := cad.Extrude(tri, cad.XY, p.Thickness)
	if err != nil {
		return nil, err
	}
	upright, err := cad.Rotate(rib, model3d.XYZ(0, 0, 0), model3d.XYZ(1, 0, 0), 90)
	if err != nil {
		return nil, err
	}
	return cad.Translate(upright, model3d.XYZ(0, p.Thickness/2, 0)), nil
}

// Feather is one blade with its amplifier rib on top.
func Feather(p models.TailParams) (model3d.Solid, error) {
	slices, err := FeatherBlade(p)
	if err != nil {
		return nil, fmt.Errorf("feather: %w", err)
	}
	amp, err := FeatherAmplifier(p)
	if err != nil {
		return nil, fmt.Errorf("feather amplifier: %w", err)
	}
	solids := make([]model3d.Solid, 0, len(slices)+1)
	for _, s := range slices {
		solids = append(solids, s)
	}
	return cad.Union(append(solids, amp)...), nil
}

// Stabilizer is the ring of feathers around the cone.
func Stabilizer(p models.TailParams) (model3d.Solid, error) {
	feather, err := Feather(p)
	if err != nil {
		return nil, err
	}
	var feathers []model3d.Solid
	for i := 0; i < p.NumFeathers; i++ {
		f, err := cad.Rotate(feather, model3d.XYZ(0, 0, 0), zAxis, p.FeathersAngle()*float64(i))
		if err != nil {
			return nil, fmt.Errorf("stabilizer: %w", err)
		}
		feathers = append(feathers, f)
	}
	lifted := cad.Translate(cad.Union(feathers...), model3d.XYZ(0, 0, p.FeatherHeight))

	disk, err := cad.Extrude(cad.Circle(p.FeatherDiameter/2), cad.XY, p.FeatherHeight)
	if err != nil {
		return nil, fmt.Errorf("stabilizer ring: %w", err)
	}
	ring, err := cad.Hole(disk, p.FeatherDiameter-2*p.Thickness)
	if err != nil {
		return nil, fmt.Errorf("stabilizer ring: %w", err)
	}
	return cad.Union(lifted, ring), nil
}

// Cone is the solid tail cone, from the tip radius up to the tail radius.
func Cone(p models.TailParams) (*cad.Turned, error) {
	cone, err := cad.LoftCircles(p.ConeTipRadius, 0, p.TailDiameter/2, p.TailConeHeight)
	if err != nil {
		return nil, fmt.Errorf("cone: %w", err)
	}
	return cone, nil
}

// TailShell is the cone with its cylindrical base, hollowed and open at the
// top.
func TailShell(p models.TailParams, cone *cad.Turned) (*cad.Shell, error) {
	body, err := cone.ExtrudeTop(p.TailDiameter/2, p.TailBaseHeight)
	if err != nil {
		return nil, fmt.Errorf("tail base: %w", err)
	}
	shell, err := body.Shell(-p.WallThickness, cad.FaceTop)
	if err != nil {
		return nil, fmt.Errorf("tail shell: %w", err)
	}
	return shell, nil
}

// Rim is the small inward lip around the inside of the tail opening.
func Rim(p models.TailParams) (model3d.Solid, error) {
	tri, err := cad.Polygon(
		model2d.XY(0, 0),
		model2d.XY(0, p.RimHeight),
		model2d.XY(p.RimWidth, p.RimHangHeight),
	)
	if err != nil {
		return nil, fmt.Errorf("rim: %w", err)
	}
	profile, err := tri.Fillet(cad.MaxX, p.RimHangHeight)
	if err != nil {
		return nil, fmt.Errorf("rim: %w", err)
	}
	r := p.TailInnerDiameter() / 2
	ring, err := cad.Revolve(profile, cad.YZ, model2d.XY(r, 0), model2d.XY(r, 1))
	if err != nil {
		return nil, fmt.Errorf("rim: %w", err)
	}
	return cad.Translate(ring, model3d.XYZ(0, -r, p.TailHeight()-p.RimHeight)), nil
}

// Latch is one latch slot cutter: a narrow arm ending in a round eye, hanging
// from the top of the tail on the +X side.
func Latch(p models.TailParams) (model3d.Solid, error) {
	d := p.LatchDiameter
	arm := p.LatchHeight - d/2
	profile, err := cad.Fuse(
		cad.CircleAt(0, -p.LatchHeight+d/2, d/2),
		cad.RectAt(0, -arm/2, p.LatchWidth, arm),
	)
	if err != nil {
		return nil, fmt.Errorf("latch: %w", err)
	}
	profile, err = profile.FilletJunctions(d)
	if err != nil {
		return nil, fmt.Errorf("latch: %w", err)
	}
	slot, err := cad.Extrude(profile, cad.YZ, p.TailDiameter/2)
	if err != nil {
		return nil, fmt.Errorf("latch: %w", err)
	}
	return cad.Translate(slot, model3d.XYZ(0, 0, p.TailHeight())), nil
}

// Latches returns the latch cutters evenly spaced around Z.
func Latches(p models.TailParams) ([]model3d.Solid, error) {
	latch, err := Latch(p)
	if err != nil {
		return nil, err
	}
	out := make([]model3d.Solid, 0, p.LatchCount)
	for i := 0; i < p.LatchCount; i++ {
		l, err := cad.Rotate(latch, model3d.XYZ(0, 0, 0), zAxis, p.LatchAngle()*float64(i))
		if err != nil {
			return nil, fmt.Errorf("latch %d: %w", i, err)
		}
		out = append(out, l)
	}
	return out, nil
}

// Tail assembles the shell, rim and stabilizer and cuts the latch slots.
func Tail(p models.TailParams) (model3d.Solid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	stabilizer, err := Stabilizer(p)
	if err != nil {
		return nil, err
	}
	cone, err := Cone(p)
	if err != nil {
		return nil, err
	}
	shell, err := TailShell(p, cone)
	if err != nil {
		return nil, err
	}
	rim, err := Rim(p)
	if err != nil {
		return nil, err
	}

	tail := cad.Union(cad.Union(shell, rim), cad.Cut(stabilizer, cone))

	latches, err := Latches(p)
	if err != nil {
		return nil, err
	}
	for _, l := range latches {
		tail = cad.Cut(tail, l)
	}
	return tail, nil
}
