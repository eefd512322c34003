package material

import (
	"encoding/json"

	"github.com/oomer/blendmaxwell/asset/texture"
	"github.com/oomer/blendmaxwell/types"
)

// A material description as exported by the host application. The subtype
// selects which of the remaining blocks is used.
type Material struct {
	Name    string `json:"name"`
	Subtype string `json:"subtype"`

	// EXTERNAL
	Path     string       `json:"path,omitempty"`
	Embed    bool         `json:"embed,omitempty"`
	Override *GlobalProps `json:"override,omitempty"`

	// EXTENSION
	Use         ExtensionUse   `json:"use,omitempty"`
	GlobalProps *GlobalProps   `json:"global_props,omitempty"`
	AGS         *AGS           `json:"ags,omitempty"`
	Opaque      *Opaque        `json:"opaque,omitempty"`
	Transparent *Transparent   `json:"transparent,omitempty"`
	Metal       *Metal         `json:"metal,omitempty"`
	Translucent *Translucent   `json:"translucent,omitempty"`
	CarPaint    *CarPaint      `json:"carpaint,omitempty"`
	Hair        *Hair          `json:"hair,omitempty"`
	Emitter     *PresetEmitter `json:"emitter,omitempty"`

	// CUSTOM
	Data *Custom `json:"data,omitempty"`
}

// Resolve the material subtype.
func (m *Material) Type() (Subtype, error) {
	st := subtypeFromName(m.Subtype)
	if st == subtypeInvalid {
		return st, &UnknownSubtypeError{Material: m.Name, Subtype: m.Subtype}
	}
	return st, nil
}

// Material wide properties shared by all subtypes.
type GlobalProps struct {
	OverrideMap      *texture.Texture `json:"override_map"`
	Bump             bool             `json:"bump"`
	BumpValue        float64          `json:"bump_value"`
	BumpMap          *texture.Texture `json:"bump_map"`
	Dispersion       bool             `json:"dispersion"`
	Shadow           bool             `json:"shadow"`
	Matte            bool             `json:"matte"`
	Priority         int              `json:"priority"`
	ID               types.RGB8       `json:"id"`
	ActiveDisplayMap *texture.Texture `json:"active_display_map"`
}

// Create global props with the host defaults.
func NewGlobalProps() *GlobalProps {
	return &GlobalProps{ID: types.White8}
}

func (g *GlobalProps) UnmarshalJSON(data []byte) error {
	type plain GlobalProps
	aux := (*plain)(NewGlobalProps())
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	*g = GlobalProps(*aux)
	return nil
}

// Displacement settings of a custom material.
type Displacement struct {
	Enabled           bool             `json:"enabled"`
	Map               *texture.Texture `json:"map"`
	Type              int              `json:"type"`
	Subdivision       int              `json:"subdivision"`
	Smoothing         bool             `json:"smoothing"`
	Offset            float64          `json:"offset"`
	SubdivisionMethod int              `json:"subdivision_method"`
	UVInterpolation   int              `json:"uv_interpolation"`
	Height            float64          `json:"height"`
	HeightUnits       int              `json:"height_units"`
	Adaptive          bool             `json:"adaptive"`
	VectorScale       types.Vec3       `json:"v3d_scale"`
	VectorTransform   int              `json:"v3d_transform"`
	VectorRGBMapping  int              `json:"v3d_rgb_mapping"`
	VectorPreset      int              `json:"v3d_preset"`
}

func (d *Displacement) UnmarshalJSON(data []byte) error {
	type plain Displacement
	aux := plain{
		Subdivision: DefaultDisplacementSubdivision,
		Smoothing:   true,
		Offset:      0.5,
		Height:      2,
		HeightUnits: 1,
		VectorScale: types.Vec3{1, 1, 1},
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = Displacement(aux)
	return nil
}

// The layer graph of a custom material.
type Custom struct {
	GlobalProps  *GlobalProps  `json:"global_props"`
	Displacement *Displacement `json:"displacement"`
	Layers       []*Layer      `json:"layers"`
}

// Layer properties.
type LayerProps struct {
	Visible  bool      `json:"visible"`
	Blending int       `json:"blending"`
	Opacity  Attribute `json:"opacity"`
}

func (p *LayerProps) UnmarshalJSON(data []byte) error {
	type plain LayerProps
	aux := plain{Visible: true, Opacity: Value(100)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = LayerProps(aux)
	return nil
}

// A custom material layer.
type Layer struct {
	Name    string     `json:"name"`
	Props   LayerProps `json:"layer_props"`
	Emitter *Emitter   `json:"emitter"`
	BSDFs   []*BSDF    `json:"bsdfs"`
}

func (l *Layer) UnmarshalJSON(data []byte) error {
	type plain Layer
	aux := plain{Props: LayerProps{Visible: true, Opacity: Value(100)}}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*l = Layer(aux)
	return nil
}

// BSDF properties.
type BSDFProps struct {
	Weight  Attribute `json:"weight"`
	Visible bool      `json:"visible"`

	// 0 selects nd/abbe, 1 selects measured complex IOR data.
	IOR        int    `json:"ior"`
	ComplexIOR string `json:"complex_ior"`

	Reflectance0     Attribute `json:"reflectance_0"`
	Reflectance90    Attribute `json:"reflectance_90"`
	Transmittance    Attribute `json:"transmittance"`
	AttenuationUnits int       `json:"attenuation_units"`
	Attenuation      float64   `json:"attenuation"`
	Nd               float64   `json:"nd"`
	Abbe             float64   `json:"abbe"`
	ForceFresnel     bool      `json:"force_fresnel"`
	K                float64   `json:"k"`
	R2Enabled        bool      `json:"r2_enabled"`
	R2FalloffAngle   float64   `json:"r2_falloff_angle"`
	R2Influence      float64   `json:"r2_influence"`

	Roughness        Attribute `json:"roughness"`
	Bump             Attribute `json:"bump"`
	BumpMapUseNormal bool      `json:"bump_map_use_normal"`
	Anisotropy       Attribute `json:"anisotropy"`
	AnisotropyAngle  Attribute `json:"anisotropy_angle"`

	Scattering       types.RGB `json:"scattering"`
	Coef             float64   `json:"coef"`
	Asymmetry        float64   `json:"asymmetry"`
	SingleSided      bool      `json:"single_sided"`
	SingleSidedValue Attribute `json:"single_sided_value"`
	SingleSidedMin   float64   `json:"single_sided_min"`
	SingleSidedMax   float64   `json:"single_sided_max"`
}

// Create BSDF props with the host defaults.
func NewBSDFProps() BSDFProps {
	return BSDFProps{
		Weight:           Value(100),
		Visible:          true,
		Reflectance0:     RGB(types.RGB{0.6, 0.6, 0.6}),
		Reflectance90:    RGB(types.RGB{1, 1, 1}),
		Transmittance:    RGB(types.RGB{0, 0, 0}),
		Attenuation:      1,
		Nd:               3,
		Abbe:             1,
		R2FalloffAngle:   75,
		Roughness:        Value(100),
		Bump:             Value(30),
		Scattering:       types.RGB{0.5, 0.5, 0.5},
		SingleSidedValue: Value(1),
		SingleSidedMin:   0.001,
		SingleSidedMax:   10,
	}
}

func (p *BSDFProps) UnmarshalJSON(data []byte) error {
	type plain BSDFProps
	aux := plain(NewBSDFProps())
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = BSDFProps(aux)
	return nil
}

// A thin coating layered on top of a BSDF.
type Coating struct {
	Enabled         bool      `json:"enabled"`
	Thickness       Attribute `json:"thickness"`
	ThicknessMapMin float64   `json:"thickness_map_min"`
	ThicknessMapMax float64   `json:"thickness_map_max"`
	IOR             int       `json:"ior"`
	ComplexIOR      string    `json:"complex_ior"`
	Reflectance0    Attribute `json:"reflectance_0"`
	Reflectance90   Attribute `json:"reflectance_90"`
	Nd              float64   `json:"nd"`
	ForceFresnel    bool      `json:"force_fresnel"`
	K               float64   `json:"k"`
	R2Enabled       bool      `json:"r2_enabled"`
	R2FalloffAngle  float64   `json:"r2_falloff_angle"`
}

func (c *Coating) UnmarshalJSON(data []byte) error {
	type plain Coating
	aux := plain{
		Thickness:       Value(500),
		ThicknessMapMin: 100,
		ThicknessMapMax: 1000,
		Reflectance0:    RGB(types.RGB{0.6, 0.6, 0.6}),
		Reflectance90:   RGB(types.RGB{1, 1, 1}),
		Nd:              1.3,
		R2FalloffAngle:  75,
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Coating(aux)
	return nil
}

// A custom material BSDF.
type BSDF struct {
	Name    string    `json:"name"`
	Props   BSDFProps `json:"bsdf_props"`
	Coating *Coating  `json:"coating"`
}

func (b *BSDF) UnmarshalJSON(data []byte) error {
	type plain BSDF
	aux := plain{Props: NewBSDFProps()}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*b = BSDF(aux)
	return nil
}

// Emission lobe types.
const (
	LobeDefault = iota
	LobeIES
	LobeSpotlight
)

// Emission types.
const (
	EmissionPair = iota
	EmissionTemperature
	EmissionMXI
)

// Luminance unit selectors for pair emission.
const (
	LuminanceWattsAndEfficacy = iota
	LuminancePower
	LuminanceIlluminance
	LuminanceIntensity
	LuminanceLuminance
)

// A layer emitter. Color is normalized to [0, 1].
type Emitter struct {
	Enabled bool `json:"enabled"`

	Type             int              `json:"type"`
	IESData          string           `json:"ies_data"`
	IESIntensity     float64          `json:"ies_intensity"`
	SpotMap          *texture.Texture `json:"spot_map"`
	SpotMapEnabled   bool             `json:"spot_map_enabled"`
	SpotConeAngle    float64          `json:"spot_cone_angle"`
	SpotFalloffAngle float64          `json:"spot_falloff_angle"`
	SpotFalloffType  int              `json:"spot_falloff_type"`
	SpotBlur         float64          `json:"spot_blur"`

	Emission              int              `json:"emission"`
	Color                 types.RGB        `json:"color"`
	ColorBlackBody        float64          `json:"color_black_body"`
	ColorBlackBodyEnabled bool             `json:"color_black_body_enabled"`
	Luminance             int              `json:"luminance"`
	LuminancePower        float64          `json:"luminance_power"`
	LuminanceEfficacy     float64          `json:"luminance_efficacy"`
	LuminanceOutput       float64          `json:"luminance_output"`
	TemperatureValue      float64          `json:"temperature_value"`
	HDRMap                *texture.Texture `json:"hdr_map"`
	HDRIntensity          float64          `json:"hdr_intensity"`
}

func defaultEmitter() Emitter {
	return Emitter{
		IESIntensity:      1,
		SpotConeAngle:     45,
		SpotFalloffAngle:  10,
		Color:             types.RGB{1, 1, 1},
		ColorBlackBody:    6500,
		LuminancePower:    40,
		LuminanceEfficacy: 17.6,
		LuminanceOutput:   1500,
		TemperatureValue:  6500,
		HDRIntensity:      1,
	}
}

func (e *Emitter) UnmarshalJSON(data []byte) error {
	type plain Emitter
	aux := plain(defaultEmitter())
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Emitter(aux)
	return nil
}

// The EMITTER preset. It shares the layer emitter parameters but the preset
// color is expressed in 8-bit units.
type PresetEmitter struct {
	Emitter
	Color types.RGB8 `json:"color"`
}

// Create an emitter preset with the host defaults.
func NewPresetEmitter(color types.RGB8) *PresetEmitter {
	e := &PresetEmitter{Emitter: defaultEmitter(), Color: color}
	e.Emitter.Color = color.RGB()
	e.Emitter.Enabled = true
	return e
}

func (e *PresetEmitter) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &e.Emitter); err != nil {
		return err
	}
	var aux struct {
		Color *types.RGB8 `json:"color"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Color = types.White8
	if aux.Color != nil {
		e.Color = *aux.Color
	}
	e.Emitter.Color = e.Color.RGB()
	e.Emitter.Enabled = true
	return nil
}
