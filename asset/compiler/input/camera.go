package input

import (
	"encoding/json"

	"github.com/oomer/blendmaxwell/types"
)

// A camera step. Focal length is in meters.
type CameraStep struct {
	Origin          types.Vec3 `json:"origin"`
	FocalPoint      types.Vec3 `json:"focal_point"`
	Up              types.Vec3 `json:"up"`
	FocalLength     float64    `json:"focal_length"`
	FStop           float64    `json:"fstop"`
	NeedsCorrection bool       `json:"focal_length_needs_correction"`
}

type CustomBokeh struct {
	Ratio   float64 `json:"ratio"`
	Angle   float64 `json:"angle"`
	Enabled bool    `json:"enabled"`
}

type CutPlanes struct {
	Near    float64 `json:"near"`
	Far     float64 `json:"far"`
	Enabled bool    `json:"enabled"`
}

type Region struct {
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
	X2   int    `json:"x2"`
	Y2   int    `json:"y2"`
	Type string `json:"type"`
}

// A scene camera.
type Camera struct {
	Name           string  `json:"name"`
	Shutter        float64 `json:"shutter"`
	FilmWidth      float64 `json:"film_width"`
	FilmHeight     float64 `json:"film_height"`
	ISO            float64 `json:"iso"`
	DiaphragmType  string  `json:"diaphragm_type"`
	Angle          float64 `json:"angle"`
	Blades         int     `json:"blades"`
	FPS            int     `json:"fps"`
	XResolution    int     `json:"x_res"`
	YResolution    int     `json:"y_res"`
	PixelAspect    float64 `json:"pixel_aspect"`
	LensType       int     `json:"lens_type"`
	ProjectionType int     `json:"projection_type"`

	Steps []CameraStep `json:"steps"`

	Active      bool        `json:"active"`
	LensExtra   *float64    `json:"lens_extra"`
	Response    string      `json:"response"`
	Region      *Region     `json:"region"`
	CustomBokeh CustomBokeh `json:"custom_bokeh"`
	CutPlanes   CutPlanes   `json:"cut_planes"`
	ShiftLens   types.Vec2  `json:"shift_lens"`
}

// Create a camera with the host defaults and a 36x24 mm film.
func NewCamera(name string) *Camera {
	return &Camera{
		Name:          name,
		Shutter:       250,
		FilmWidth:     0.036,
		FilmHeight:    0.024,
		ISO:           100,
		DiaphragmType: "CIRCULAR",
		Blades:        6,
		FPS:           24,
		XResolution:   640,
		YResolution:   480,
		PixelAspect:   1,
		CustomBokeh:   CustomBokeh{Ratio: 1},
		CutPlanes:     CutPlanes{Far: 1e7},
	}
}

func (c *Camera) UnmarshalJSON(data []byte) error {
	type plain Camera
	aux := plain(*NewCamera(""))
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Camera(aux)
	return nil
}
