package models

import "fmt"

// ClipParams are the dimensions of the spring clip, in mm.
type ClipParams struct {
	BedHeight        float64 `koanf:"bed_height" yaml:"bed_height"`
	ClipThickness    float64 `koanf:"clip_thickness" yaml:"clip_thickness"`
	BaseThickness    float64 `koanf:"base_thickness" yaml:"base_thickness"`
	Width            float64 `koanf:"width" yaml:"width"`
	Length           float64 `koanf:"length" yaml:"length"`
	Chamfer          float64 `koanf:"chamfer" yaml:"chamfer"`
	ProtrusionLength float64 `koanf:"protrusion_length" yaml:"protrusion_length"`
	ProtrusionHeight float64 `koanf:"protrusion_height" yaml:"protrusion_height"`
	HandleLength     float64 `koanf:"handle_length" yaml:"handle_length"`
	HandleOffset     float64 `koanf:"handle_offset" yaml:"handle_offset"`
}

func DefaultClipParams() ClipParams {
	return ClipParams{
		BedHeight:        8.9,
		ClipThickness:    1.6,
		BaseThickness:    2,
		Width:            20,
		Length:           12,
		Chamfer:          0.4,
		ProtrusionLength: 2,
		ProtrusionHeight: 0.4,
		HandleLength:     18,
		HandleOffset:     5,
	}
}

// Height is the overall clip height: the bed it grips plus one arm.
func (p ClipParams) Height() float64 {
	return p.BedHeight + p.ClipThickness
}

func (p ClipParams) Params() []Param {
	return []Param{
		{Name: "bed_height", Value: p.BedHeight, Unit: "mm"},
		{Name: "clip_thickness", Value: p.ClipThickness, Unit: "mm"},
		{Name: "base_thickness", Value: p.BaseThickness, Unit: "mm"},
		{Name: "width", Value: p.Width, Unit: "mm"},
		{Name: "length", Value: p.Length, Unit: "mm"},
		{Name: "chamfer", Value: p.Chamfer, Unit: "mm"},
		{Name: "protrusion_length", Value: p.ProtrusionLength, Unit: "mm"},
		{Name: "protrusion_height", Value: p.ProtrusionHeight, Unit: "mm"},
		{Name: "handle_length", Value: p.HandleLength, Unit: "mm"},
		{Name: "handle_offset", Value: p.HandleOffset, Unit: "mm"},
		{Name: "clip_height", Value: p.Height(), Unit: "mm", Derived: true},
	}
}

func (p ClipParams) Validate() error {
	if err := requirePositive(p.Params()); err != nil {
		return err
	}
	if p.ProtrusionLength >= p.Length {
		return fmt.Errorf("%w: protrusion_length %g must be shorter than length %g", ErrInvalidParams, p.ProtrusionLength, p.Length)
	}
	if 2*p.BaseThickness >= p.Height() {
		return fmt.Errorf("%w: base_thickness %g too thick for clip height %g", ErrInvalidParams, p.BaseThickness, p.Height())
	}
	return nil
}
