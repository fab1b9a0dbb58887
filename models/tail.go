package models

import (
	"fmt"
	"math"
)

// TailParams are the dimensions of the tail cone and its stabilizer, in mm
// and degrees.
type TailParams struct {
	Thickness float64 `koanf:"thickness" yaml:"thickness"`

	FeatherAmplifierLength float64 `koanf:"feather_amplifier_length" yaml:"feather_amplifier_length"`
	FeatherDiameter        float64 `koanf:"feather_diameter" yaml:"feather_diameter"`
	FeatherHeight          float64 `koanf:"feather_height" yaml:"feather_height"`
	FeatherNumSlices       int     `koanf:"feather_num_slices" yaml:"feather_num_slices"`
	// FeatherSliceAngle is the twist increment per slice. Zero or less gives
	// flat feathers.
	FeatherSliceAngle float64 `koanf:"feather_slice_angle" yaml:"feather_slice_angle"`
	NumFeathers       int     `koanf:"num_feathers" yaml:"num_feathers"`

	TailDiameter   float64 `koanf:"tail_diameter" yaml:"tail_diameter"`
	TailConeHeight float64 `koanf:"tail_cone_height" yaml:"tail_cone_height"`
	TailBaseHeight float64 `koanf:"tail_base_height" yaml:"tail_base_height"`
	ConeTipRadius  float64 `koanf:"cone_tip_radius" yaml:"cone_tip_radius"`
	WallThickness  float64 `koanf:"wall_thickness" yaml:"wall_thickness"`

	RimHeight     float64 `koanf:"rim_height" yaml:"rim_height"`
	RimWidth      float64 `koanf:"rim_width" yaml:"rim_width"`
	RimHangHeight float64 `koanf:"rim_hang_height" yaml:"rim_hang_height"`

	LatchWidth    float64 `koanf:"latch_width" yaml:"latch_width"`
	LatchHeight   float64 `koanf:"latch_height" yaml:"latch_height"`
	LatchDiameter float64 `koanf:"latch_diameter" yaml:"latch_diameter"`
	LatchCount    int     `koanf:"latch_count" yaml:"latch_count"`
}

func DefaultTailParams() TailParams {
	return TailParams{
		Thickness:              1,
		FeatherAmplifierLength: 17,
		FeatherDiameter:        54,
		FeatherHeight:          7.5,
		FeatherNumSlices:       15,
		FeatherSliceAngle:      0.1,
		NumFeathers:            4,
		TailDiameter:           26,
		TailConeHeight:         65,
		TailBaseHeight:         15,
		ConeTipRadius:          2.5,
		WallThickness:          1,
		RimHeight:              1.5,
		RimWidth:               0.3,
		RimHangHeight:          0.1,
		LatchWidth:             1,
		LatchHeight:            21,
		LatchDiameter:          3,
		LatchCount:             3,
	}
}

func (p TailParams) FeatherSliceHeight() float64 {
	return p.FeatherHeight / float64(p.FeatherNumSlices)
}

// FeathersAngle is the rotation between neighbouring feathers. Each feather
// blade spans the full diameter, so NumFeathers blades give twice as many fins.
func (p TailParams) FeathersAngle() float64 {
	return 360 / float64(2*p.NumFeathers)
}

func (p TailParams) TailInnerDiameter() float64 {
	return p.TailDiameter - 2*p.Thickness
}

func (p TailParams) TailHeight() float64 {
	return p.TailConeHeight + p.TailBaseHeight
}

// LatchAngle is the rotation between neighbouring latch slots.
func (p TailParams) LatchAngle() float64 {
	return 360 / float64(p.LatchCount)
}

// Curved reports whether the feathers are twisted. Only a positive slice
// angle twists them.
func (p TailParams) Curved() bool {
	return p.FeatherSliceAngle > 0
}

// ModelName is the STL file name for the tail variant.
func (p TailParams) ModelName() string {
	if p.Curved() {
		return "tail_curved.stl"
	}
	return "tail_plain.stl"
}

func (p TailParams) Params() []Param {
	return []Param{
		{Name: "thickness", Value: p.Thickness, Unit: "mm"},
		{Name: "feather_amplifier_length", Value: p.FeatherAmplifierLength, Unit: "mm"},
		{Name: "feather_diameter", Value: p.FeatherDiameter, Unit: "mm"},
		{Name: "feather_height", Value: p.FeatherHeight, Unit: "mm"},
		{Name: "feather_num_slices", Value: float64(p.FeatherNumSlices)},
		{Name: "num_feathers", Value: float64(p.NumFeathers)},
		{Name: "tail_diameter", Value: p.TailDiameter, Unit: "mm"},
		{Name: "tail_cone_height", Value: p.TailConeHeight, Unit: "mm"},
		{Name: "tail_base_height", Value: p.TailBaseHeight, Unit: "mm"},
		{Name: "cone_tip_radius", Value: p.ConeTipRadius, Unit: "mm"},
		{Name: "wall_thickness", Value: p.WallThickness, Unit: "mm"},
		{Name: "rim_height", Value: p.RimHeight, Unit: "mm"},
		{Name: "rim_width", Value: p.RimWidth, Unit: "mm"},
		{Name: "rim_hang_height", Value: p.RimHangHeight, Unit: "mm"},
		{Name: "latch_width", Value: p.LatchWidth, Unit: "mm"},
		{Name: "latch_height", Value: p.LatchHeight, Unit: "mm"},
		{Name: "latch_diameter", Value: p.LatchDiameter, Unit: "mm"},
		{Name: "latch_count", Value: float64(p.LatchCount)},
		{Name: "feather_slice_angle", Value: p.FeatherSliceAngle, Unit: "°", Signed: true},
		{Name: "feather_slice_height", Value: p.FeatherSliceHeight(), Unit: "mm", Derived: true},
		{Name: "feathers_angle", Value: p.FeathersAngle(), Unit: "°", Derived: true},
		{Name: "tail_inner_diameter", Value: p.TailInnerDiameter(), Unit: "mm", Derived: true},
		{Name: "tail_height", Value: p.TailHeight(), Unit: "mm", Derived: true},
	}
}

func (p TailParams) Validate() error {
	if p.FeatherNumSlices <= 0 || p.NumFeathers <= 0 || p.LatchCount <= 0 {
		return fmt.Errorf("%w: feather_num_slices, num_feathers and latch_count must be positive", ErrInvalidParams)
	}
	if err := requirePositive(p.Params()); err != nil {
		return err
	}
	if math.IsNaN(p.FeatherSliceAngle) || math.IsInf(p.FeatherSliceAngle, 0) {
		return fmt.Errorf("%w: feather_slice_angle must be a number, got %g", ErrInvalidParams, p.FeatherSliceAngle)
	}
	if p.TailInnerDiameter() <= 0 {
		return fmt.Errorf("%w: thickness %g leaves no bore in tail_diameter %g", ErrInvalidParams, p.Thickness, p.TailDiameter)
	}
	if p.ConeTipRadius >= p.TailDiameter/2 {
		return fmt.Errorf("%w: cone_tip_radius %g must be below the tail radius %g", ErrInvalidParams, p.ConeTipRadius, p.TailDiameter/2)
	}
	if p.LatchHeight > p.TailHeight() {
		return fmt.Errorf("%w: latch_height %g exceeds tail height %g", ErrInvalidParams, p.LatchHeight, p.TailHeight())
	}
	return nil
}
