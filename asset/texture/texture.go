package texture

import (
	"encoding/json"
	"fmt"

	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/types"
)

// A texture descriptor as exported by the host application. Color
// adjustments are expressed in UI units: brightness, contrast and saturation
// in [-100, 100], hue in [-180, 180] and the clamp range in [0, 255].
type Texture struct {
	Path    string `json:"path"`
	Channel int    `json:"channel"`

	UseOverrideMap bool `json:"use_override_map"`

	TileMethodType  [2]bool    `json:"tile_method_type"`
	TileMethodUnits int        `json:"tile_method_units"`
	Repeat          types.Vec2 `json:"repeat"`
	Mirror          [2]bool    `json:"mirror"`
	Offset          types.Vec2 `json:"offset"`
	Rotation        float64    `json:"rotation"`
	Invert          bool       `json:"invert"`
	AlphaOnly       bool       `json:"alpha_only"`
	Interpolation   bool       `json:"interpolation"`
	Brightness      float64    `json:"brightness"`
	Contrast        float64    `json:"contrast"`
	Saturation      float64    `json:"saturation"`
	Hue             float64    `json:"hue"`
	RGBClamp        [2]float64 `json:"rgb_clamp"`

	NormalMappingFlipRed       bool `json:"normal_mapping_flip_red"`
	NormalMappingFlipGreen     bool `json:"normal_mapping_flip_green"`
	NormalMappingFullRangeBlue bool `json:"normal_mapping_full_range_blue"`
}

// Create a texture descriptor with the host defaults.
func New(path string) *Texture {
	return &Texture{
		Path:           path,
		TileMethodType: [2]bool{true, true},
		Repeat:         types.Vec2{1, 1},
		RGBClamp:       [2]float64{0, 255},
	}
}

// Decode a texture descriptor applying defaults for missing keys. The
// standalone material writer emits use_global_map instead of
// use_override_map; both are accepted.
func (t *Texture) UnmarshalJSON(data []byte) error {
	type plain Texture
	aux := struct {
		*plain
		UseGlobalMap *bool `json:"use_global_map"`
	}{plain: (*plain)(New(""))}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = Texture(*aux.plain)
	if aux.UseGlobalMap != nil {
		t.UseOverrideMap = t.UseOverrideMap || *aux.UseGlobalMap
	}
	return nil
}

// Validate the descriptor ranges.
func (t *Texture) Validate() error {
	if t.Path == "" {
		return fmt.Errorf("texture: missing path")
	}
	if t.Channel < 0 {
		return fmt.Errorf("texture %q: negative uvw channel %d", t.Path, t.Channel)
	}
	for _, r := range []struct {
		name  string
		v     float64
		limit float64
	}{
		{"brightness", t.Brightness, 100},
		{"contrast", t.Contrast, 100},
		{"saturation", t.Saturation, 100},
		{"hue", t.Hue, 180},
	} {
		if r.v < -r.limit || r.v > r.limit {
			return fmt.Errorf("texture %q: %s %g out of the [%g, %g] range", t.Path, r.name, r.v, -r.limit, r.limit)
		}
	}
	if t.RGBClamp[0] < 0 || t.RGBClamp[1] > 255 || t.RGBClamp[0] > t.RGBClamp[1] {
		return fmt.Errorf("texture %q: invalid rgb clamp range %v", t.Path, t.RGBClamp)
	}
	return nil
}

// Build the renderer texture map. UI unit values are normalized here and
// nowhere else.
func (t *Texture) Map() *scene.TextureMap {
	tm := scene.NewTextureMap()
	tm.SetPath(t.Path)
	tm.UVWChannel = t.Channel

	tm.Brightness = Normalize(t.Brightness, BrightnessDivisor)
	tm.Contrast = Normalize(t.Contrast, ContrastDivisor)
	tm.Saturation = Normalize(t.Saturation, SaturationDivisor)
	tm.Hue = Normalize(t.Hue, HueDivisor)
	tm.ClampMin = Normalize(t.RGBClamp[0], ClampDivisor)
	tm.ClampMax = Normalize(t.RGBClamp[1], ClampDivisor)

	tm.UseGlobalMap = t.UseOverrideMap
	tm.AbsoluteUnits = t.TileMethodUnits
	tm.UTiled, tm.VTiled = t.TileMethodType[0], t.TileMethodType[1]
	tm.UMirrored, tm.VMirrored = t.Mirror[0], t.Mirror[1]
	tm.Offset = t.Offset
	tm.Rotation = t.Rotation
	tm.Scale = t.Repeat
	tm.Invert = t.Invert
	tm.UseAlpha = t.AlphaOnly
	if t.Interpolation {
		tm.Interpolation = 1
	}

	tm.NormalMappingFlipRed = t.NormalMappingFlipRed
	tm.NormalMappingFlipGreen = t.NormalMappingFlipGreen
	tm.NormalMappingFullRangeBlue = t.NormalMappingFullRangeBlue
	return tm
}
