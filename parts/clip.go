// Package parts builds the printable parts from their parameters.
package parts

import (
	"fmt"

	"github.com/dstockto/partgen/cad"
	"github.com/dstockto/partgen/models"
	"github.com/unixpickle/model3d/model3d"
)

// ClipFile is the STL file name of the clip.
const ClipFile = "clip.stl"

// ClipProfile is the closed outline of the clip on the XY plane: one arm
// with its handle and grip bump, mirrored across the X axis.
func ClipProfile(p models.ClipParams) (*cad.PolygonRegion, error) {
	h := p.Height() / 2
	return cad.MoveTo(p.HandleOffset, 0).
		LineTo(-p.BaseThickness, h-p.BaseThickness).
		LineTo(-p.HandleLength, h-p.BaseThickness).
		LineTo(-p.HandleLength, h).
		LineTo(p.Length, h).
		LineTo(p.Length, h-p.ClipThickness).
		SagittaArc(p.Length-p.ProtrusionLength, h-p.ClipThickness, p.ProtrusionHeight).
		LineTo(0, h-p.ClipThickness).
		LineTo(p.HandleOffset+p.BaseThickness, p.BaseThickness/2).
		LineTo(p.HandleOffset+p.BaseThickness, 0).
		MirrorX()
}

// Clip extrudes the clip profile by its width and chamfers the edges around
// the outer faces of both arms.
func Clip(p models.ClipParams) (model3d.Solid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	profile, err := ClipProfile(p)
	if err != nil {
		return nil, fmt.Errorf("clip profile: %w", err)
	}
	body, err := cad.Extrude(profile, cad.XY, p.Width)
	if err != nil {
		return nil, fmt.Errorf("clip body: %w", err)
	}
	clip, err := body.ChamferFaces(cad.AxisY, p.Chamfer)
	if err != nil {
		return nil, fmt.Errorf("clip chamfer: %w", err)
	}
	return clip, nil
}
