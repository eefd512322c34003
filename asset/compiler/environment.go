package compiler

import (
	"github.com/oomer/blendmaxwell/asset/compiler/input"
	"github.com/oomer/blendmaxwell/asset/scene"
)

var sunTypes = map[string]scene.SunType{
	input.SunPhysical: scene.SunPhysical,
	input.SunCustom:   scene.SunConstant,
}

func iblState(typ string) scene.IBLState {
	switch typ {
	case input.IBLHDRImage:
		return scene.IBLImage
	case input.IBLActiveSky:
		return scene.IBLActiveSky
	}
	return scene.IBLDisabled
}

// Setup the scene environment. A missing description or the NONE type
// disables the sky.
func (w *Writer) Environment(d *input.Environment) error {
	env := w.scene.Environment
	if d == nil || (d.EnvType != input.EnvPhysicalSky && d.EnvType != input.EnvImageBased) {
		env.SetActiveSky(scene.SkyNone)
		return nil
	}

	switch d.SkyType {
	case input.SkyPhysical:
		env.SetActiveSky(scene.SkyPhysical)
		if d.Sky.UsePreset {
			env.LoadSkyFromPreset(d.Sky.Preset)
		} else {
			env.SetPhysicalSkyAtmosphere(scene.Atmosphere{
				Intensity:         d.Sky.Intensity,
				Ozone:             d.Sky.Ozone,
				Water:             d.Sky.Water,
				TurbidityCoef:     d.Sky.TurbidityCoeff,
				WavelengthExp:     d.Sky.WavelengthExp,
				Reflectance:       d.Sky.Reflectance,
				Asymmetry:         d.Sky.Asymmetry,
				PlanetReflectance: d.Sky.PlanetRefl,
			})
		}
		if err := setupSun(env, d.SunType, d.Sun); err != nil {
			return err
		}
	case input.SkyConstant:
		env.SetActiveSky(scene.SkyConstant)
		env.SetSkyConstant(scene.ConstantDome{
			Intensity: d.Dome.Intensity,
			Horizon:   d.Dome.Horizon.RGB(),
			Zenith:    d.Dome.Zenith.RGB(),
			MidPoint:  d.Dome.MidPoint,
		})
	}

	if d.EnvType == input.EnvImageBased {
		env.EnableEnvironment(true)
	}

	if ibl := d.IBL; ibl != nil {
		env.SetEnvironmentWeight(ibl.Intensity)

		layers := [...]input.IBLLayer{ibl.Background, ibl.Reflection, ibl.Refraction, ibl.Illumination}
		for index, l := range layers {
			if index != scene.IBLBackground && l.Type == input.IBLSameAsBG {
				l = layers[scene.IBLBackground]
			}
			env.SetEnvironmentLayer(index, scene.IBLLayer{
				Map:             l.Map,
				State:           iblState(l.Type),
				Spherical:       !ibl.ScreenMapping,
				NoInterpolation: !ibl.Interpolation,
				Intensity:       l.Intensity,
				Scale:           l.Scale,
				Offset:          l.Offset,
			})
		}
	}
	return nil
}

func setupSun(env *scene.Environment, typ string, sun *input.Sun) error {
	env.SetSunProperties(scene.SunProperties{
		Type:         sunTypes[typ],
		Temperature:  sun.Temperature,
		Power:        sun.Power,
		RadiusFactor: sun.RadiusFactor,
		Color:        sun.Color.RGB(),
	})

	switch sun.LocationType {
	case input.SunLatLong:
		day, err := sun.DayOfYear()
		if err != nil {
			return err
		}
		hour, err := sun.Hour()
		if err != nil {
			return err
		}
		env.SetSunLongitudeAndLatitude(sun.Longitude, sun.Latitude, sun.GMT, day, hour)
		env.SetSunRotation(sun.GroundRotation)
	case input.SunAngles:
		env.SetSunAngles(sun.Zenith, sun.Azimuth)
	case input.SunDirection:
		env.SetSunDirection(sun.Direction)
	}
	return nil
}
