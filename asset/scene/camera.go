package scene

import (
	"fmt"

	"github.com/oomer/blendmaxwell/types"
)

// Lens types supported by the renderer.
type LensType uint8

const (
	LensThin LensType = iota
	LensPinhole
	LensOrtho
	LensFisheye
	LensSpherical
	LensCylindrical
)

func (t LensType) String() string {
	switch t {
	case LensThin:
		return "THIN"
	case LensPinhole:
		return "PINHOLE"
	case LensOrtho:
		return "ORTHO"
	case LensFisheye:
		return "FISHEYE"
	case LensSpherical:
		return "SPHERICAL"
	case LensCylindrical:
		return "CYLINDRICAL"
	}
	return "invalid"
}

// Returns true for lenses that take an extra parameter.
func (t LensType) HasExtra() bool {
	return t == LensFisheye || t == LensSpherical || t == LensCylindrical
}

// A single camera step. One step per motion blur sample.
type CameraStep struct {
	Origin     types.Vec3
	FocalPoint types.Vec3
	Up         types.Vec3

	// Focal length in meters as stored in the scene, i.e. after any thin lens
	// correction has been applied.
	FocalLength float64
	FStop       float64
}

// Custom bokeh settings.
type CustomBokeh struct {
	Enabled bool
	Ratio   float64
	Angle   float64
}

// Camera cut planes.
type CutPlanes struct {
	Enabled bool
	Near    float64
	Far     float64
}

// Screen region crop.
type Region struct {
	Enabled bool
	X1, Y1  int
	X2, Y2  int
	Type    string
}

// A scene camera.
type Camera struct {
	Name string

	Shutter        float64
	FilmWidth      float64
	FilmHeight     float64
	ISO            float64
	DiaphragmType  string
	Angle          float64
	Blades         int
	FPS            int
	XResolution    int
	YResolution    int
	PixelAspect    float64
	LensType       LensType
	ProjectionType int

	Steps []CameraStep

	LensExtra      float64
	ResponsePreset string
	CustomBokeh    CustomBokeh
	CutPlanes      CutPlanes
	ShiftLens      types.Vec2
	Region         Region
}

// Set a camera step. When needsCorrection is set the focal length is
// considered nominal and is corrected for the focus distance.
func (c *Camera) SetStep(index int, origin, focalPoint, up types.Vec3, focalLength, fStop float64, needsCorrection bool) error {
	if index < 0 || index >= len(c.Steps) {
		return fmt.Errorf("scene: camera %q: step %d out of range", c.Name, index)
	}
	if needsCorrection {
		fc, err := CorrectFocalLength(origin, focalPoint, focalLength)
		if err != nil {
			return fmt.Errorf("scene: camera %q: step %d: %v", c.Name, index, err)
		}
		focalLength = fc
	}
	c.Steps[index] = CameraStep{
		Origin:      origin,
		FocalPoint:  focalPoint,
		Up:          up,
		FocalLength: focalLength,
		FStop:       fStop,
	}
	return nil
}

// Get a camera step.
func (c *Camera) Step(index int) (CameraStep, error) {
	if index < 0 || index >= len(c.Steps) {
		return CameraStep{}, fmt.Errorf("scene: camera %q: step %d out of range", c.Name, index)
	}
	return c.Steps[index], nil
}

// Set the type specific lens parameter. It is ignored by lenses without one.
func (c *Camera) SetLensExtra(v float64) {
	if c.LensType.HasExtra() {
		c.LensExtra = v
	}
}

// Set the custom bokeh.
func (c *Camera) SetCustomBokeh(ratio, angle float64, enabled bool) {
	c.CustomBokeh = CustomBokeh{Enabled: enabled, Ratio: ratio, Angle: angle}
}

// Set the cut planes.
func (c *Camera) SetCutPlanes(near, far float64, enabled bool) {
	c.CutPlanes = CutPlanes{Enabled: enabled, Near: near, Far: far}
}

// Set the lens shift as a percentage of the film size.
func (c *Camera) SetShiftLens(x, y float64) {
	c.ShiftLens = types.Vec2{x, y}
}

// Set the screen region.
func (c *Camera) SetScreenRegion(x1, y1, x2, y2 int, typ string) {
	c.Region = Region{Enabled: true, X1: x1, Y1: y1, X2: x2, Y2: y2, Type: typ}
}
