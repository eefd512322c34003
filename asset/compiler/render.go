package compiler

import (
	"github.com/oomer/blendmaxwell/asset/compiler/input"
	"github.com/oomer/blendmaxwell/asset/scene"
)

// Collects the first error of a sequence of render parameter updates.
type paramSetter struct {
	sc  *scene.Scene
	err error
}

func (ps *paramSetter) set(name string, value interface{}) {
	if ps.err == nil {
		ps.err = ps.sc.SetRenderParameter(name, value)
	}
}

// Map an illumination or caustics selector to its direct and indirect layer
// toggles.
func layerToggles(selector int) (direct, indirect int) {
	switch selector {
	case 1:
		return 1, 0
	case 2:
		return 0, 1
	case 3:
		return 0, 0
	}
	return 1, 1
}

// Apply the render parameters.
func (w *Writer) Parameters(p *input.Parameters) error {
	sc := w.scene
	ps := &paramSetter{sc: sc}

	ps.set("ENGINE", p.Scene.Quality)
	ps.set("NUM THREADS", p.Scene.CPUThreads)
	ps.set("STOP TIME", p.Scene.Time*60)
	ps.set("SAMPLING LEVEL", p.Scene.SamplingLevel)
	ps.set("USE MULTILIGHT", p.Scene.Multilight)
	ps.set("SAVE LIGHTS IN SEPARATE FILES", p.Scene.MultilightType)

	if g := p.Generals; g != nil {
		ps.set("DO MOTION BLUR", g.MotionBlur)
		ps.set("DO DISPLACEMENT", g.Displacement)
		ps.set("DO DISPERSION", g.Dispersion)
	}

	if ic := p.IllumCaustics; ic != nil {
		direct, indirect := layerToggles(ic.Illumination)
		ps.set("DO DIRECT LAYER", direct)
		ps.set("DO INDIRECT LAYER", indirect)
		direct, indirect = layerToggles(ic.ReflCaustics)
		ps.set("DO DIRECT REFLECTION CAUSTIC LAYER", direct)
		ps.set("DO INDIRECT REFLECTION CAUSTIC LAYER", indirect)
		direct, indirect = layerToggles(ic.RefrCaustics)
		ps.set("DO DIRECT REFRACTION CAUSTIC LAYER", direct)
		ps.set("DO INDIRECT REFRACTION CAUSTIC LAYER", indirect)
	}

	if sl := p.Simulens; sl != nil {
		ps.set("DO DEVIGNETTING", sl.Devignetting)
		ps.set("DEVIGNETTING", sl.DevignettingValue)
		ps.set("DO SCATTERING_LENS", sl.Scattering)
		ps.set("SCATTERING_LENS", sl.ScatteringValue)
		if sl.Diffraction {
			sc.SetDiffraction(sl.DiffractionValue, sl.Frequency, sl.ApertureMap, sl.ObstacleMap)
		}
	}

	if t := p.Tone; t != nil {
		ps.set("DO SHARPNESS", t.Sharpness)
		ps.set("SHARPNESS", t.SharpnessValue)
		sc.SetToneMapping(t.Gamma, t.Burn)
		sc.SetColorSpace(t.ColorSpace)
		sc.SetWhitePoint(t.Whitepoint, t.Tint)
	}

	if m := p.Materials; m != nil {
		if m.Override {
			sc.SetOverrideMaterial(true)
		}
		if m.OverridePath != "" {
			sc.SetOverrideMaterialPath(m.OverridePath)
		}
		if m.SearchPath != "" {
			sc.AddSearchingPath(m.SearchPath)
		}
	}

	if o := p.Other; o != nil {
		sc.EnableProtection(o.Protect)
		if o.ExtraSamplingEnabled {
			ps.set("DO EXTRA SAMPLING", 1)
			ps.set("EXTRA SAMPLING SL", o.ExtraSamplingSL)
			ps.set("EXTRA SAMPLING MASK", o.ExtraSamplingMask)
			ps.set("EXTRA SAMPLING CUSTOM ALPHA", o.ExtraSamplingCustomAlpha)
			ps.set("EXTRA SAMPLING USER BITMAP", o.ExtraSamplingUserBitmap)
			if o.ExtraSamplingInvert {
				ps.set("EXTRA SAMPLING INVERT", 1)
			}
		}
	}
	return ps.err
}

// Setup the render outputs. When channel outputs are given every channel
// gets a path derived from the base path and its file tag.
func (w *Writer) Channels(c *input.Channels) error {
	sc := w.scene
	ps := &paramSetter{sc: sc}

	ps.set("DO NOT SAVE MXI FILE", c.MXI == "")
	ps.set("DO NOT SAVE IMAGE FILE", c.Image == "")
	if c.MXI != "" {
		ps.set("MXI FULLNAME", c.MXI)
	}
	if c.Image != "" {
		f := scene.ImageExtDepth(c.ImageDepth, c.Image)
		sc.SetPath("RENDER", c.Image, f.Depth)
	}

	ps.set("DO RENDER CHANNEL", c.Render)
	ps.set("EMBED CHANNELS", c.OutputMode)
	ps.set("RENDER LAYERS", c.RenderType)

	if c.Outputs == nil {
		return ps.err
	}

	for _, ch := range scene.Channels {
		out := c.Outputs[ch.Key]
		path, depth := scene.ChannelPath(c.BasePath, ch, out.File)
		sc.SetPath(ch.Key, path, depth)
		ps.set(ch.Toggle, out.Enabled)
	}
	ps.set("OPAQUE ALPHA", c.AlphaOpaque)
	ps.set("NORMALS CHANNEL SPACE", c.NormalsSpace)
	ps.set("POSITION CHANNEL SPACE", c.PositionSpace)
	ps.set("ZBUFFER RANGE", c.ZBufferRange)
	ps.set("DEEP CHANNEL TYPE", c.DeepType)
	ps.set("DEEP MIN DISTANCE", c.DeepMinDist)
	ps.set("DEEP MAX SAMPLES", c.DeepMaxSamples)
	return ps.err
}
