package material

import (
	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/asset/texture"
	"github.com/oomer/blendmaxwell/types"
)

// A preset builds the parameter list of a renderer material extension.
type Preset interface {
	Params() *scene.ParamList
	Validate() error
}

// Set a texture map parameter when a texture is given.
func setMap(pl *scene.ParamList, name string, t *texture.Texture) {
	if t != nil {
		pl.SetTextureMap(name, t.Map())
	}
}

func validateMaps(maps ...*texture.Texture) error {
	for _, t := range maps {
		if t == nil {
			continue
		}
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateColors(colors ...types.RGB8) error {
	for _, c := range colors {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AGS (architectural glass) preset.
type AGS struct {
	Color      types.RGB8 `json:"color"`
	Reflection float64    `json:"reflection"`
	Type       uint32     `json:"type"`
}

func (p *AGS) Params() *scene.ParamList {
	pl := scene.NewParamList(UseAGS.ExtensionName())
	pl.SetRGB("Color", p.Color.RGB())
	pl.SetFloat("Reflection", p.Reflection)
	pl.SetUInt("Type", p.Type)
	return pl
}

func (p *AGS) Validate() error {
	return validateColors(p.Color)
}

// Opaque preset.
type Opaque struct {
	ColorType     uint8            `json:"color_type"`
	Color         types.RGB8       `json:"color"`
	ColorMap      *texture.Texture `json:"color_map"`
	ShininessType uint8            `json:"shininess_type"`
	Shininess     float64          `json:"shininess"`
	ShininessMap  *texture.Texture `json:"shininess_map"`
	RoughnessType uint8            `json:"roughness_type"`
	Roughness     float64          `json:"roughness"`
	RoughnessMap  *texture.Texture `json:"roughness_map"`
	Clearcoat     bool             `json:"clearcoat"`
}

func (p *Opaque) Params() *scene.ParamList {
	pl := scene.NewParamList(UseOpaque.ExtensionName())
	pl.SetByte("Color Type", p.ColorType)
	pl.SetRGB("Color", p.Color.RGB())
	setMap(pl, "Color Map", p.ColorMap)
	pl.SetByte("Shininess Type", p.ShininessType)
	pl.SetFloat("Shininess", p.Shininess)
	setMap(pl, "Shininess Map", p.ShininessMap)
	pl.SetByte("Roughness Type", p.RoughnessType)
	pl.SetFloat("Roughness", p.Roughness)
	setMap(pl, "Roughness Map", p.RoughnessMap)
	pl.SetFlag("Clearcoat", p.Clearcoat)
	return pl
}

func (p *Opaque) Validate() error {
	if err := validateColors(p.Color); err != nil {
		return err
	}
	return validateMaps(p.ColorMap, p.ShininessMap, p.RoughnessMap)
}

// Transparent preset.
type Transparent struct {
	ColorType     uint8            `json:"color_type"`
	Color         types.RGB8       `json:"color"`
	ColorMap      *texture.Texture `json:"color_map"`
	IOR           float64          `json:"ior"`
	Transparency  float64          `json:"transparency"`
	RoughnessType uint8            `json:"roughness_type"`
	Roughness     float64          `json:"roughness"`
	RoughnessMap  *texture.Texture `json:"roughness_map"`
	SpecularTint  float64          `json:"specular_tint"`
	Dispersion    float64          `json:"dispersion"`
	Clearcoat     bool             `json:"clearcoat"`
}

func (p *Transparent) Params() *scene.ParamList {
	pl := scene.NewParamList(UseTransparent.ExtensionName())
	pl.SetByte("Color Type", p.ColorType)
	pl.SetRGB("Color", p.Color.RGB())
	setMap(pl, "Color Map", p.ColorMap)
	pl.SetFloat("Ior", p.IOR)
	pl.SetFloat("Transparency", p.Transparency)
	pl.SetByte("Roughness Type", p.RoughnessType)
	pl.SetFloat("Roughness", p.Roughness)
	setMap(pl, "Roughness Map", p.RoughnessMap)
	pl.SetFloat("Specular Tint", p.SpecularTint)
	pl.SetFloat("Dispersion", p.Dispersion)
	pl.SetFlag("Clearcoat", p.Clearcoat)
	return pl
}

func (p *Transparent) Validate() error {
	if err := validateColors(p.Color); err != nil {
		return err
	}
	return validateMaps(p.ColorMap, p.RoughnessMap)
}

// Metal preset.
type Metal struct {
	IOR                uint32           `json:"ior"`
	Tint               float64          `json:"tint"`
	ColorType          uint8            `json:"color_type"`
	Color              types.RGB8       `json:"color"`
	ColorMap           *texture.Texture `json:"color_map"`
	RoughnessType      uint8            `json:"roughness_type"`
	Roughness          float64          `json:"roughness"`
	RoughnessMap       *texture.Texture `json:"roughness_map"`
	AnisotropyType     uint8            `json:"anisotropy_type"`
	Anisotropy         float64          `json:"anisotropy"`
	AnisotropyMap      *texture.Texture `json:"anisotropy_map"`
	AngleType          uint8            `json:"angle_type"`
	Angle              float64          `json:"angle"`
	AngleMap           *texture.Texture `json:"angle_map"`
	DustType           uint8            `json:"dust_type"`
	Dust               float64          `json:"dust"`
	DustMap            *texture.Texture `json:"dust_map"`
	PerforationEnabled bool             `json:"perforation_enabled"`
	PerforationMap     *texture.Texture `json:"perforation_map"`
}

func (p *Metal) Params() *scene.ParamList {
	pl := scene.NewParamList(UseMetal.ExtensionName())
	pl.SetUInt("IOR", p.IOR)
	pl.SetFloat("Tint", p.Tint)
	pl.SetByte("Color Type", p.ColorType)
	pl.SetRGB("Color", p.Color.RGB())
	setMap(pl, "Color Map", p.ColorMap)
	pl.SetByte("Roughness Type", p.RoughnessType)
	pl.SetFloat("Roughness", p.Roughness)
	setMap(pl, "Roughness Map", p.RoughnessMap)
	pl.SetByte("Anisotropy Type", p.AnisotropyType)
	pl.SetFloat("Anisotropy", p.Anisotropy)
	setMap(pl, "Anisotropy Map", p.AnisotropyMap)
	pl.SetByte("Angle Type", p.AngleType)
	pl.SetFloat("Angle", p.Angle)
	setMap(pl, "Angle Map", p.AngleMap)
	pl.SetByte("Dust Type", p.DustType)
	pl.SetFloat("Dust", p.Dust)
	setMap(pl, "Dust Map", p.DustMap)
	pl.SetFlag("Perforation Enabled", p.PerforationEnabled)
	setMap(pl, "Perforation Map", p.PerforationMap)
	return pl
}

func (p *Metal) Validate() error {
	if err := validateColors(p.Color); err != nil {
		return err
	}
	return validateMaps(p.ColorMap, p.RoughnessMap, p.AnisotropyMap, p.AngleMap, p.DustMap, p.PerforationMap)
}

// Translucent preset.
type Translucent struct {
	Scale         float64          `json:"scale"`
	IOR           float64          `json:"ior"`
	ColorType     uint8            `json:"color_type"`
	Color         types.RGB8       `json:"color"`
	ColorMap      *texture.Texture `json:"color_map"`
	HueShift      float64          `json:"hue_shift"`
	InvertHue     bool             `json:"invert_hue"`
	Vibrance      float64          `json:"vibrance"`
	Density       float64          `json:"density"`
	Opacity       float64          `json:"opacity"`
	RoughnessType uint8            `json:"roughness_type"`
	Roughness     float64          `json:"roughness"`
	RoughnessMap  *texture.Texture `json:"roughness_map"`
	SpecularTint  float64          `json:"specular_tint"`
	Clearcoat     bool             `json:"clearcoat"`
	ClearcoatIOR  float64          `json:"clearcoat_ior"`
}

func (p *Translucent) Params() *scene.ParamList {
	pl := scene.NewParamList(UseTranslucent.ExtensionName())
	pl.SetFloat("Scale", p.Scale)
	pl.SetFloat("Ior", p.IOR)
	pl.SetByte("Color Type", p.ColorType)
	pl.SetRGB("Color", p.Color.RGB())
	setMap(pl, "Color Map", p.ColorMap)
	pl.SetFloat("Hue Shift", p.HueShift)
	pl.SetFlag("Invert Hue", p.InvertHue)
	pl.SetFloat("Vibrance", p.Vibrance)
	pl.SetFloat("Density", p.Density)
	pl.SetFloat("Opacity", p.Opacity)
	pl.SetByte("Roughness Type", p.RoughnessType)
	pl.SetFloat("Roughness", p.Roughness)
	setMap(pl, "Roughness Map", p.RoughnessMap)
	pl.SetFloat("Specular Tint", p.SpecularTint)
	pl.SetFlag("Clearcoat", p.Clearcoat)
	pl.SetFloat("Clearcoat Ior", p.ClearcoatIOR)
	return pl
}

func (p *Translucent) Validate() error {
	if err := validateColors(p.Color); err != nil {
		return err
	}
	return validateMaps(p.ColorMap, p.RoughnessMap)
}

// Car paint preset.
type CarPaint struct {
	Color    types.RGB8 `json:"color"`
	Metallic float64    `json:"metallic"`
	Topcoat  float64    `json:"topcoat"`
}

func (p *CarPaint) Params() *scene.ParamList {
	pl := scene.NewParamList(UseCarPaint.ExtensionName())
	pl.SetRGB("Color", p.Color.RGB())
	pl.SetFloat("Metallic", p.Metallic)
	pl.SetFloat("Topcoat", p.Topcoat)
	return pl
}

func (p *CarPaint) Validate() error {
	return validateColors(p.Color)
}

// Hair preset.
type Hair struct {
	ColorType                  uint8            `json:"color_type"`
	Color                      types.RGB8       `json:"color"`
	ColorMap                   *texture.Texture `json:"color_map"`
	RootTipMap                 *texture.Texture `json:"root_tip_map"`
	RootTipWeightType          uint8            `json:"root_tip_weight_type"`
	RootTipWeight              float64          `json:"root_tip_weight"`
	RootTipWeightMap           *texture.Texture `json:"root_tip_weight_map"`
	PrimaryHighlightStrength   float64          `json:"primary_highlight_strength"`
	PrimaryHighlightSpread     float64          `json:"primary_highlight_spread"`
	PrimaryHighlightTint       types.RGB8       `json:"primary_highlight_tint"`
	SecondaryHighlightStrength float64          `json:"secondary_highlight_strength"`
	SecondaryHighlightSpread   float64          `json:"secondary_highlight_spread"`
	SecondaryHighlightTint     types.RGB8       `json:"secondary_highlight_tint"`
}

func (p *Hair) Params() *scene.ParamList {
	pl := scene.NewParamList(UseHair.ExtensionName())
	pl.SetByte("Color Type", p.ColorType)
	pl.SetRGB("Color", p.Color.RGB())
	setMap(pl, "Color Map", p.ColorMap)
	setMap(pl, "Root-Tip Map", p.RootTipMap)
	pl.SetByte("Root-Tip Weight Type", p.RootTipWeightType)
	pl.SetFloat("Root-Tip Weight", p.RootTipWeight)
	setMap(pl, "Root-Tip Weight Map", p.RootTipWeightMap)
	pl.SetFloat("Primary Highlight Strength", p.PrimaryHighlightStrength)
	pl.SetFloat("Primary Highlight Spread", p.PrimaryHighlightSpread)
	pl.SetRGB("Primary Highlight Tint", p.PrimaryHighlightTint.RGB())
	pl.SetFloat("Secondary Highlight Strength", p.SecondaryHighlightStrength)
	pl.SetFloat("Secondary Highlight Spread", p.SecondaryHighlightSpread)
	pl.SetRGB("Secondary Highlight Tint", p.SecondaryHighlightTint.RGB())
	return pl
}

func (p *Hair) Validate() error {
	if err := validateColors(p.Color, p.PrimaryHighlightTint, p.SecondaryHighlightTint); err != nil {
		return err
	}
	return validateMaps(p.ColorMap, p.RootTipMap, p.RootTipWeightMap)
}
