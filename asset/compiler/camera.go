package compiler

import (
	"github.com/oomer/blendmaxwell/asset/compiler/input"
	"github.com/oomer/blendmaxwell/asset/scene"
)

// Add a camera. Steps flagged for correction have their focal length
// corrected for the focus distance.
func (w *Writer) Camera(d *input.Camera) (*scene.Camera, error) {
	cam := &scene.Camera{
		Name:           d.Name,
		Shutter:        d.Shutter,
		FilmWidth:      d.FilmWidth,
		FilmHeight:     d.FilmHeight,
		ISO:            d.ISO,
		DiaphragmType:  d.DiaphragmType,
		Angle:          d.Angle,
		Blades:         d.Blades,
		FPS:            d.FPS,
		XResolution:    d.XResolution,
		YResolution:    d.YResolution,
		PixelAspect:    d.PixelAspect,
		LensType:       scene.LensType(d.LensType),
		ProjectionType: d.ProjectionType,
	}
	w.replaceExisting("camera", cam.Name, w.scene.RemoveCamera)
	cam, err := w.scene.AddCamera(cam, len(d.Steps))
	if err != nil {
		return nil, err
	}

	for i, s := range d.Steps {
		if err = cam.SetStep(i, s.Origin, s.FocalPoint, s.Up, s.FocalLength, s.FStop, s.NeedsCorrection); err != nil {
			return nil, err
		}
	}

	if d.LensExtra != nil {
		cam.SetLensExtra(*d.LensExtra)
	}
	if d.Response != "" {
		cam.ResponsePreset = d.Response
	}
	cam.SetCustomBokeh(d.CustomBokeh.Ratio, d.CustomBokeh.Angle, d.CustomBokeh.Enabled)
	cam.SetCutPlanes(d.CutPlanes.Near, d.CutPlanes.Far, d.CutPlanes.Enabled)
	cam.SetShiftLens(d.ShiftLens[0], d.ShiftLens[1])
	if r := d.Region; r != nil {
		cam.SetScreenRegion(r.X1, r.Y1, r.X2, r.Y2, r.Type)
	}

	if d.Active {
		if err = w.scene.SetActiveCamera(cam.Name); err != nil {
			return nil, err
		}
	}
	return cam, nil
}
