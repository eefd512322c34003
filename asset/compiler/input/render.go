package input

import (
	"encoding/json"
	"fmt"
)

// Core render settings. Time is given in minutes.
type SceneParams struct {
	CPUThreads     int     `json:"cpu_threads"`
	Multilight     int     `json:"multilight"`
	MultilightType int     `json:"multilight_type"`
	Quality        string  `json:"quality"`
	SamplingLevel  float64 `json:"sampling_level"`
	Time           int     `json:"time"`
}

type MaterialParams struct {
	Override     bool   `json:"override"`
	OverridePath string `json:"override_path"`
	SearchPath   string `json:"search_path"`
}

type Generals struct {
	Displacement bool `json:"displacement"`
	Dispersion   bool `json:"dispersion"`
	MotionBlur   bool `json:"motion_blur"`
}

type Tone struct {
	Burn           float64 `json:"burn"`
	ColorSpace     int     `json:"color_space"`
	Gamma          float64 `json:"gamma"`
	Sharpness      bool    `json:"sharpness"`
	SharpnessValue float64 `json:"sharpness_value"`
	Tint           float64 `json:"tint"`
	Whitepoint     float64 `json:"whitepoint"`
}

type Simulens struct {
	ApertureMap       string  `json:"aperture_map"`
	Devignetting      bool    `json:"devignetting"`
	DevignettingValue float64 `json:"devignetting_value"`
	Diffraction       bool    `json:"diffraction"`
	DiffractionValue  float64 `json:"diffraction_value"`
	Frequency         float64 `json:"frequency"`
	ObstacleMap       string  `json:"obstacle_map"`
	Scattering        bool    `json:"scattering"`
	ScatteringValue   float64 `json:"scattering_value"`
}

// Illumination and caustics layer selectors. Each value is one of 0 (direct
// and indirect), 1 (direct only), 2 (indirect only) or 3 (none).
type IllumCaustics struct {
	Illumination int `json:"illumination"`
	ReflCaustics int `json:"refl_caustics"`
	RefrCaustics int `json:"refr_caustics"`
}

type Other struct {
	Protect                  bool    `json:"protect"`
	ExtraSamplingEnabled     bool    `json:"extra_sampling_enabled"`
	ExtraSamplingSL          float64 `json:"extra_sampling_sl"`
	ExtraSamplingMask        int     `json:"extra_sampling_mask"`
	ExtraSamplingCustomAlpha string  `json:"extra_sampling_custom_alpha"`
	ExtraSamplingUserBitmap  string  `json:"extra_sampling_user_bitmap"`
	ExtraSamplingInvert      bool    `json:"extra_sampling_invert"`
}

// Render parameters.
type Parameters struct {
	Scene         SceneParams     `json:"scene"`
	Materials     *MaterialParams `json:"materials"`
	Generals      *Generals       `json:"generals"`
	Tone          *Tone           `json:"tone"`
	Simulens      *Simulens       `json:"simulens"`
	IllumCaustics *IllumCaustics  `json:"illum_caustics"`
	Other         *Other          `json:"other"`
}

func (p *Parameters) UnmarshalJSON(data []byte) error {
	type plain Parameters
	aux := plain{
		Scene: SceneParams{Quality: "RS1", SamplingLevel: 12, Time: 60},
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Parameters(aux)
	return nil
}

func (p *Parameters) problems() []string {
	var out []string
	switch p.Scene.Quality {
	case "RS0", "RS1":
	default:
		out = append(out, fmt.Sprintf("parameters: unknown quality %q", p.Scene.Quality))
	}
	if p.Scene.Time < 0 {
		out = append(out, fmt.Sprintf("parameters: negative render time %d", p.Scene.Time))
	}
	if ic := p.IllumCaustics; ic != nil {
		for _, v := range []int{ic.Illumination, ic.ReflCaustics, ic.RefrCaustics} {
			if v < 0 || v > 3 {
				out = append(out, fmt.Sprintf("parameters: illumination/caustics selector %d out of range", v))
			}
		}
	}
	return out
}

// A render channel output. File is the channel file tag such as PNG16 or
// EXR32.
type Channel struct {
	Enabled bool   `json:"enabled"`
	File    string `json:"file"`
}

// Render output settings. Channels are keyed by the renderer output key
// (ALPHA, SHADOW, OBJECT, ...). An empty MXI or image path disables that
// output.
type Channels struct {
	BasePath   string `json:"base_path"`
	MXI        string `json:"mxi"`
	Image      string `json:"image"`
	ImageDepth string `json:"image_depth"`
	OutputMode int    `json:"output_mode"`
	Render     bool   `json:"render"`
	RenderType int    `json:"render_type"`

	Outputs map[string]Channel `json:"outputs"`

	AlphaOpaque    bool       `json:"alpha_opaque"`
	NormalsSpace   int        `json:"normals_space"`
	PositionSpace  int        `json:"position_space"`
	ZBufferRange   [2]float64 `json:"z_buffer_range"`
	DeepType       int        `json:"deep_type"`
	DeepMinDist    float64    `json:"deep_min_dist"`
	DeepMaxSamples int        `json:"deep_max_samples"`
}

func (c *Channels) UnmarshalJSON(data []byte) error {
	type plain Channels
	aux := plain{
		ImageDepth:     "RGB8",
		Render:         true,
		ZBufferRange:   [2]float64{0, 1},
		DeepMinDist:    0.2,
		DeepMaxSamples: 20,
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Channels(aux)
	return nil
}
