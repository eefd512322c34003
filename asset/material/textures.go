package material

import "github.com/oomer/blendmaxwell/asset/texture"

// List every texture referenced by the material.
func (m *Material) Textures() []*texture.Texture {
	var out []*texture.Texture
	add := func(maps ...*texture.Texture) {
		for _, t := range maps {
			if t != nil {
				out = append(out, t)
			}
		}
	}
	addAttrs := func(attrs ...Attribute) {
		for _, a := range attrs {
			add(a.Map)
		}
	}
	addGlobal := func(g *GlobalProps) {
		if g != nil {
			add(g.OverrideMap, g.BumpMap, g.ActiveDisplayMap)
		}
	}
	addEmitter := func(e *Emitter) {
		if e != nil {
			add(e.SpotMap, e.HDRMap)
		}
	}

	addGlobal(m.Override)
	addGlobal(m.GlobalProps)
	if m.Emitter != nil {
		addEmitter(&m.Emitter.Emitter)
	}
	if p := m.Opaque; p != nil {
		add(p.ColorMap, p.ShininessMap, p.RoughnessMap)
	}
	if p := m.Transparent; p != nil {
		add(p.ColorMap, p.RoughnessMap)
	}
	if p := m.Metal; p != nil {
		add(p.ColorMap, p.RoughnessMap, p.AnisotropyMap, p.AngleMap, p.DustMap, p.PerforationMap)
	}
	if p := m.Translucent; p != nil {
		add(p.ColorMap, p.RoughnessMap)
	}
	if p := m.Hair; p != nil {
		add(p.ColorMap, p.RootTipMap, p.RootTipWeightMap)
	}

	if d := m.Data; d != nil {
		addGlobal(d.GlobalProps)
		if d.Displacement != nil {
			add(d.Displacement.Map)
		}
		for _, l := range d.Layers {
			addAttrs(l.Props.Opacity)
			addEmitter(l.Emitter)
			for _, b := range l.BSDFs {
				p := &b.Props
				addAttrs(p.Weight, p.Reflectance0, p.Reflectance90, p.Transmittance,
					p.Roughness, p.Bump, p.Anisotropy, p.AnisotropyAngle, p.SingleSidedValue)
				if c := b.Coating; c != nil {
					addAttrs(c.Thickness, c.Reflectance0, c.Reflectance90)
				}
			}
		}
	}
	return out
}
