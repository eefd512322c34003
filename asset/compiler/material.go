package compiler

import (
	"github.com/oomer/blendmaxwell/asset"
	"github.com/oomer/blendmaxwell/asset/material"
	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/asset/scene/archive"
	"github.com/pkg/errors"
)

// Compile a material description into a renderer material. Relative paths to
// external material files are resolved against relTo.
func CompileMaterial(d *material.Material, relTo *asset.Resource) (*scene.Material, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	st, err := d.Type()
	if err != nil {
		return nil, err
	}

	switch st {
	case material.SubtypeExternal:
		if d.Path == "" {
			return newPlaceholder(d.Name), nil
		}
		m, err := readExternal(d, relTo)
		if err != nil {
			return nil, err
		}
		if d.Override != nil {
			applyGlobalProps(m, d.Override)
		}
		return m, nil
	case material.SubtypeExtension:
		return extensionMaterial(d)
	case material.SubtypeCustom:
		return customMaterial(d), nil
	}
	return nil, &material.UnknownSubtypeError{Material: d.Name, Subtype: d.Subtype}
}

// Load a material file and rename it. Materials that are not embedded keep a
// reference to their file.
func readExternal(d *material.Material, relTo *asset.Resource) (*scene.Material, error) {
	res, err := asset.NewResource(d.Path, relTo)
	if err != nil {
		return nil, errors.Wrapf(err, "material %q", d.Name)
	}
	defer res.Close()

	m, err := archive.DecodeMaterial(res)
	if err != nil {
		return nil, errors.Wrapf(err, "material %q: could not read %s", d.Name, res.Path())
	}
	m.Name = d.Name
	if !d.Embed {
		m.SetReference(scene.ReferenceModeExternalFile, d.Path)
	}
	return m, nil
}

func extensionMaterial(d *material.Material) (*scene.Material, error) {
	m := scene.NewMaterial(d.Name)
	if d.Use == material.UseEmitter {
		setupEmitter(m.AddLayer().CreateEmitter(), &d.Emitter.Emitter)
		return m, nil
	}

	p, err := d.Preset()
	if err != nil {
		return nil, err
	}
	m.ApplyMaterialModifierExtension(p.Params())

	gp := d.GlobalProps
	if gp == nil {
		gp = material.NewGlobalProps()
	}
	applyGlobalProps(m, gp)
	return m, nil
}

func applyGlobalProps(m *scene.Material, g *material.GlobalProps) {
	if g.OverrideMap != nil {
		m.GlobalMap = g.OverrideMap.Map()
	}
	if g.Bump {
		a := scene.Attribute{ActiveType: scene.MapTypeBitmap, Value: g.BumpValue}
		if g.BumpMap != nil {
			a.TextureMap = g.BumpMap.Map()
		}
		m.SetAttribute(scene.AttrBump, a)
	}
	m.Dispersion = g.Dispersion
	m.MatteShadow = g.Shadow
	m.Matte = g.Matte
	m.NestedPriority = g.Priority
	m.ColorID = g.ID.RGB()
	if g.ActiveDisplayMap != nil {
		m.ActiveDisplayMap = g.ActiveDisplayMap.Map()
	}
}

func customMaterial(d *material.Material) *scene.Material {
	m := scene.NewMaterial(d.Name)
	data := d.Data

	gp := data.GlobalProps
	if gp == nil {
		gp = material.NewGlobalProps()
	}
	applyGlobalProps(m, gp)
	applyDisplacement(m, data.Displacement)

	for _, ld := range data.Layers {
		addLayer(m, ld)
	}
	return m
}

func applyDisplacement(m *scene.Material, d *material.Displacement) {
	if d == nil || !d.Enabled {
		return
	}

	disp := m.EnableDisplacement()
	if d.Map != nil {
		disp.Map = d.Map.Map()
	}
	disp.Type = d.Type
	disp.Subdivision = d.Subdivision
	disp.Smoothing = boolToInt(d.Smoothing)
	disp.Offset = d.Offset
	disp.SubdivisionMethod = d.SubdivisionMethod
	disp.UVInterpolation = d.UVInterpolation
	disp.Height = d.Height
	disp.HeightUnits = d.HeightUnits
	disp.Adaptive = d.Adaptive
	disp.VectorScale = d.VectorScale
	disp.VectorTransform = d.VectorTransform
	disp.VectorRGBMapping = d.VectorRGBMapping
	disp.VectorPreset = d.VectorPreset
}

func addLayer(m *scene.Material, d *material.Layer) {
	l := m.AddLayer()
	l.Name = d.Name
	if !d.Props.Visible {
		l.Enabled = false
	}
	if d.Props.Blending == 1 {
		l.StackedBlendingMode = 1
	}
	l.SetAttribute(scene.AttrWeight, d.Props.Opacity.SceneAttribute())

	if d.Emitter != nil && d.Emitter.Enabled {
		setupEmitter(l.CreateEmitter(), d.Emitter)
	}
	for _, bd := range d.BSDFs {
		addBSDF(l, bd)
	}
}

func addBSDF(l *scene.Layer, d *material.BSDF) {
	b := l.AddBSDF()
	b.Name = d.Name

	p := &d.Props
	b.Weight = p.Weight.SceneAttribute()
	if !p.Visible {
		b.State = false
	}

	r := b.Reflectance
	if p.IOR == 1 {
		r.ActiveIorMode = 1
		r.ComplexIor = p.ComplexIOR
	} else {
		r.SetAttribute(scene.AttrColor, p.Reflectance0.SceneAttribute())
		r.SetAttribute(scene.AttrColorTangential, p.Reflectance90.SceneAttribute())
		r.SetAttribute(scene.AttrTransmittanceColor, p.Transmittance.SceneAttribute())
		r.AbsorptionUnits = p.AttenuationUnits
		r.AbsorptionDistance = p.Attenuation
		r.SetIOR(p.Nd, p.Abbe)
		if p.ForceFresnel {
			r.ForceFresnel = true
		}
		r.Conductor = p.K
		if p.R2Enabled {
			r.Fresnel = scene.FresnelCustom{Enabled: true, FalloffAngle: p.R2FalloffAngle, Influence: p.R2Influence}
		}
	}

	b.SetAttribute(scene.AttrRoughness, p.Roughness.SceneAttribute())
	b.SetAttribute(scene.AttrBump, p.Bump.SceneAttribute())
	b.NormalMapState = p.BumpMapUseNormal
	b.SetAttribute(scene.AttrAnisotropy, p.Anisotropy.SceneAttribute())
	b.SetAttribute(scene.AttrAnisotropyAngle, p.AnisotropyAngle.SceneAttribute())

	// Subsurface
	r.SetAttribute(scene.AttrScattering, scene.RGBAttribute(p.Scattering))
	r.Scattering.Coef = p.Coef
	r.Scattering.Asymmetry = p.Asymmetry
	r.Scattering.SingleSided = p.SingleSided
	if p.SingleSided {
		r.Scattering.Thickness = p.SingleSidedValue.SceneAttribute()
		r.Scattering.ThicknessRange = [2]float64{p.SingleSidedMin, p.SingleSidedMax}
	}

	if c := d.Coating; c != nil && c.Enabled {
		addCoating(b, c)
	}
}

func addCoating(b *scene.BSDF, d *material.Coating) {
	c := b.AddCoating()
	c.Thickness = d.Thickness.SceneAttribute()
	c.ThicknessRange = [2]float64{d.ThicknessMapMin, d.ThicknessMapMax}

	r := c.Reflectance
	if d.IOR == 1 {
		r.ActiveIorMode = 1
		r.ComplexIor = d.ComplexIOR
		return
	}
	r.SetAttribute(scene.AttrColor, d.Reflectance0.SceneAttribute())
	r.SetAttribute(scene.AttrColorTangential, d.Reflectance90.SceneAttribute())
	r.SetIOR(d.Nd, 1)
	if d.ForceFresnel {
		r.ForceFresnel = true
	}
	r.Conductor = d.K
	if d.R2Enabled {
		r.Fresnel = scene.FresnelCustom{Enabled: true, FalloffAngle: d.R2FalloffAngle}
	}
}

// Map a luminance selector to the pair emission units.
func emissionUnits(luminance int) scene.EmissionUnits {
	switch luminance {
	case material.LuminancePower:
		return scene.UnitsLuminousPower
	case material.LuminanceIlluminance:
		return scene.UnitsIlluminance
	case material.LuminanceIntensity:
		return scene.UnitsLuminousIntensity
	case material.LuminanceLuminance:
		return scene.UnitsLuminance
	}
	return scene.UnitsWattsAndLuminousEfficacy
}

// Configure an emitter. Layer emitters and the emitter preset share this
// path; the selected luminance units are always honored and the black body
// flag only picks the pair color source.
func setupEmitter(e *scene.Emitter, d *material.Emitter) {
	switch d.Type {
	case material.LobeIES:
		e.LobeType = scene.LobeIES
		e.IES = d.IESData
		e.IESIntensity = d.IESIntensity
	case material.LobeSpotlight:
		e.LobeType = scene.LobeSpotlight
		if d.SpotMap != nil {
			e.Spot.MapEnabled = d.SpotMapEnabled
			e.Spot.Map = d.SpotMap.Map()
		}
		e.Spot.ConeAngle = d.SpotConeAngle
		e.Spot.FallOffAngle = d.SpotFalloffAngle
		e.Spot.FallOffType = d.SpotFalloffType
		e.Spot.Blur = d.SpotBlur
	default:
		e.LobeType = scene.LobeDefault
	}

	switch d.Emission {
	case material.EmissionTemperature:
		e.EmissionType = scene.EmissionTypeTemperature
		e.Temperature = d.TemperatureValue
	case material.EmissionMXI:
		e.EmissionType = scene.EmissionTypeMXI
		a := scene.Attribute{ActiveType: scene.MapTypeBitmap, Value: d.HDRIntensity}
		if d.HDRMap != nil {
			a.TextureMap = d.HDRMap.Map()
		}
		e.MXI = a
	default:
		e.EmissionType = scene.EmissionTypePair
		e.Pair = scene.EmitterPair{
			RGB:               d.Color,
			Temperature:       d.ColorBlackBody,
			Watts:             d.LuminancePower,
			LuminousEfficacy:  d.LuminanceEfficacy,
			LuminousPower:     d.LuminanceOutput,
			Illuminance:       d.LuminanceOutput,
			LuminousIntensity: d.LuminanceOutput,
			Luminance:         d.LuminanceOutput,
		}
		color := scene.EmissionRGB
		if d.ColorBlackBodyEnabled {
			color = scene.EmissionColorTemperature
		}
		e.SetActivePair(color, emissionUnits(d.Luminance))
	}

	e.State = true
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
