package material

import (
	"github.com/pkg/errors"
)

// Get the preset block selected by the extension use. The emitter preset is
// not a parameter list extension and is returned via the Emitter field.
func (m *Material) Preset() (Preset, error) {
	var p Preset
	switch m.Use {
	case UseAGS:
		if m.AGS != nil {
			p = m.AGS
		}
	case UseOpaque:
		if m.Opaque != nil {
			p = m.Opaque
		}
	case UseTransparent:
		if m.Transparent != nil {
			p = m.Transparent
		}
	case UseMetal:
		if m.Metal != nil {
			p = m.Metal
		}
	case UseTranslucent:
		if m.Translucent != nil {
			p = m.Translucent
		}
	case UseCarPaint:
		if m.CarPaint != nil {
			p = m.CarPaint
		}
	case UseHair:
		if m.Hair != nil {
			p = m.Hair
		}
	case UseEmitter:
		return nil, errors.Errorf("material %q: the emitter preset has no parameter list", m.Name)
	default:
		return nil, errors.Errorf("material %q: missing extension use", m.Name)
	}

	if p == nil {
		return nil, errors.Errorf("material %q: missing %s preset block", m.Name, m.Use)
	}
	return p, nil
}

// Validate the material description.
func (m *Material) Validate() error {
	if m.Name == "" {
		return errors.New("material: missing name")
	}
	if m.Name == PlaceholderName {
		return errors.Errorf("material: name %q is reserved for missing materials", m.Name)
	}

	st, err := m.Type()
	if err != nil {
		return err
	}

	switch st {
	case SubtypeExternal:
		// An empty path is valid and compiles to a placeholder.
		if m.Override != nil {
			if err = m.Override.validate(); err != nil {
				return errors.Wrapf(err, "material %q: override", m.Name)
			}
		}
	case SubtypeExtension:
		if m.GlobalProps != nil {
			if err = m.GlobalProps.validate(); err != nil {
				return errors.Wrapf(err, "material %q: global props", m.Name)
			}
		}
		if m.Use == UseEmitter {
			if m.Emitter == nil {
				return errors.Errorf("material %q: missing EMITTER preset block", m.Name)
			}
			if err = m.Emitter.Emitter.validate(); err != nil {
				return errors.Wrapf(err, "material %q", m.Name)
			}
			return nil
		}
		p, err := m.Preset()
		if err != nil {
			return err
		}
		if err = p.Validate(); err != nil {
			return errors.Wrapf(err, "material %q: %s preset", m.Name, m.Use)
		}
	case SubtypeCustom:
		if m.Data == nil {
			return errors.Errorf("material %q: custom material without data", m.Name)
		}
		if err = m.Data.validate(); err != nil {
			return errors.Wrapf(err, "material %q", m.Name)
		}
	}
	return nil
}

func (g *GlobalProps) validate() error {
	if err := validateMaps(g.OverrideMap, g.BumpMap, g.ActiveDisplayMap); err != nil {
		return err
	}
	return g.ID.Validate()
}

func (c *Custom) validate() error {
	if c.GlobalProps != nil {
		if err := c.GlobalProps.validate(); err != nil {
			return errors.Wrap(err, "global props")
		}
	}
	if c.Displacement != nil && c.Displacement.Map != nil {
		if err := c.Displacement.Map.Validate(); err != nil {
			return errors.Wrap(err, "displacement")
		}
	}
	for li, l := range c.Layers {
		if err := l.validate(); err != nil {
			return errors.Wrapf(err, "layer %d (%s)", li, l.Name)
		}
	}
	return nil
}

func (l *Layer) validate() error {
	if err := l.Props.Opacity.Validate(); err != nil {
		return errors.Wrap(err, "opacity")
	}
	if l.Emitter != nil {
		if err := l.Emitter.validate(); err != nil {
			return err
		}
	}
	for bi, b := range l.BSDFs {
		if err := b.validate(); err != nil {
			return errors.Wrapf(err, "bsdf %d (%s)", bi, b.Name)
		}
	}
	return nil
}

func (b *BSDF) validate() error {
	p := &b.Props
	if p.IOR != 0 && p.IOR != 1 {
		return errors.Errorf("invalid ior selector %d", p.IOR)
	}
	attrs := []Attribute{
		p.Weight, p.Reflectance0, p.Reflectance90, p.Transmittance,
		p.Roughness, p.Bump, p.Anisotropy, p.AnisotropyAngle, p.SingleSidedValue,
	}
	for _, a := range attrs {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	if p.SingleSidedMin > p.SingleSidedMax {
		return errors.Errorf("single sided min %g exceeds max %g", p.SingleSidedMin, p.SingleSidedMax)
	}

	if c := b.Coating; c != nil {
		if c.IOR != 0 && c.IOR != 1 {
			return errors.Errorf("invalid coating ior selector %d", c.IOR)
		}
		for _, a := range []Attribute{c.Thickness, c.Reflectance0, c.Reflectance90} {
			if err := a.Validate(); err != nil {
				return errors.Wrap(err, "coating")
			}
		}
	}
	return nil
}

func (e *Emitter) validate() error {
	if e.Type < LobeDefault || e.Type > LobeSpotlight {
		return errors.Errorf("invalid emitter lobe type %d", e.Type)
	}
	if e.Emission < EmissionPair || e.Emission > EmissionMXI {
		return errors.Errorf("invalid emission type %d", e.Emission)
	}
	if e.Luminance < LuminanceWattsAndEfficacy || e.Luminance > LuminanceLuminance {
		return errors.Errorf("invalid luminance units %d", e.Luminance)
	}
	return validateMaps(e.SpotMap, e.HDRMap)
}
