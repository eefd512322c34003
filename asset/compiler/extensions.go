package compiler

import (
	"encoding/binary"
	"fmt"

	"github.com/oomer/blendmaxwell/asset/compiler/input"
	"github.com/oomer/blendmaxwell/asset/scene"
)

// Geometry procedural and loader extension names.
const (
	ParticlesExtension   = "MaxwellParticles"
	SeaExtension         = "MaxwellSea"
	VolumetricsExtension = "MaxwellVolumetric"
)

// Finish an extension object like any other: placement, props and
// materials.
func (w *Writer) setupExtensionObject(o *scene.Object, d *input.Object, uvwChannels int) error {
	for i := 0; i < uvwChannels; i++ {
		if _, err := o.AddChannelUVW(); err != nil {
			return err
		}
	}
	setBaseAndPivot(o, d.Placement())
	setObjectProps(o, d.Props)
	if len(d.Materials) > 0 && d.Materials[0] != "" {
		o.SetMaterial(w.Material(d.Materials[0]))
	}
	w.setBackfaceMaterial(o, d.BackfaceMaterial)
	return nil
}

func setParticleSource(pl *scene.ParamList, s input.ParticleSource) {
	if s.Data == nil {
		pl.SetString("FileName", s.Filename)
		return
	}
	pl.SetFloatArray("PARTICLE_POSITIONS", s.Data.Positions)
	pl.SetFloatArray("PARTICLE_SPEEDS", s.Data.Speeds)
	pl.SetFloatArray("PARTICLE_RADII", s.Data.Radii)
	pl.SetIntArray("PARTICLE_IDS", s.Data.IDs)
}

// Add a particles object.
func (w *Writer) Particles(d *input.Object) (*scene.Object, error) {
	p := d.Particles
	if p == nil {
		return nil, fmt.Errorf("object %q: missing particles block", d.Name)
	}

	pl := scene.NewParamList(ParticlesExtension)
	setParticleSource(pl, p.ParticleSource)
	if p.Data != nil {
		pl.SetFloatArray("PARTICLE_NORMALS", p.Data.Normals)
		pl.SetFloatArray("PARTICLE_UVW", p.Data.UVW)
	}

	pl.SetFloat("Radius Factor", p.RadiusFactor)
	pl.SetFloat("MB Factor", p.MotionBlurFactor)
	pl.SetFloat("Shutter 1/", p.ShutterSpeed)
	pl.SetFloat("Load particles %", p.LoadPercent)
	pl.SetUInt("Axis", uint32(p.AxisSystem))
	pl.SetInt("Frame#", p.Frame)
	pl.SetFloat("fps", p.FPS)
	pl.SetInt("Create N particles per particle", p.ExtraPerParticle)
	pl.SetFloat("Extra particles dispersion", p.ExtraDispersion)
	pl.SetFloat("Extra particles deformation", p.ExtraDeformation)

	l := p.Load
	loads := []struct {
		name string
		v    bool
	}{
		{"Force", l.Force}, {"Vorticity", l.Vorticity}, {"Normal", l.Normal},
		{"neighbors no.", l.Neighbors}, {"UV", l.UV}, {"Age", l.Age},
		{"Isolation Time", l.IsolationTime}, {"Viscosity", l.Viscosity},
		{"Density", l.Density}, {"Pressure", l.Pressure}, {"Mass", l.Mass},
		{"Temperature", l.Temperature}, {"ID", l.ID},
	}
	for _, ld := range loads {
		pl.SetFlag("Load particle "+ld.name, ld.v)
	}

	r := p.Ranges
	ranges := []struct {
		name string
		v    [2]float64
	}{
		{"Force", r.Force}, {"Vorticity", r.Vorticity}, {"Age", r.Age},
		{"Isolation Time", r.IsolationTime}, {"Viscosity", r.Viscosity},
		{"Density", r.Density}, {"Pressure", r.Pressure}, {"Mass", r.Mass},
		{"Temperature", r.Temperature}, {"Velocity", r.Velocity},
	}
	for _, rg := range ranges {
		pl.SetFloat("Min "+rg.name, rg.v[0])
		pl.SetFloat("Max "+rg.name, rg.v[1])
	}
	pl.SetInt("Min Nneighbors", r.Nneighbors[0])
	pl.SetInt("Max Nneighbors", r.Nneighbors[1])

	o, err := w.scene.CreateGeometryProcedural(d.Name, pl)
	if err != nil {
		return nil, err
	}
	if err = w.setupExtensionObject(o, d, 1); err != nil {
		return nil, err
	}
	return o, nil
}

func uint32Bytes(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func intBytes(v []int) []byte {
	b := make([]byte, len(v))
	for i, x := range v {
		b[i] = byte(x)
	}
	return b
}

// Add a hair or grass hair object. Strand hair gets three generated UVW
// channels, grass hair two.
func (w *Writer) Hair(d *input.Object) (*scene.Object, error) {
	h := d.Hair
	if h == nil {
		return nil, fmt.Errorf("object %q: missing hair block", d.Name)
	}

	pl := scene.NewParamList(h.Extension)
	pl.SetByteArray("HAIR_MAJOR_VER", intBytes(h.Data.MajorVersion))
	pl.SetByteArray("HAIR_MINOR_VER", intBytes(h.Data.MinorVersion))
	var rootUVs byte
	if len(h.Data.RootUVs) != 0 {
		rootUVs = 1
	}
	pl.SetByteArray("HAIR_FLAG_ROOT_UVS", []byte{rootUVs})
	pl.SetByteArray("HAIR_GUIDES_COUNT", uint32Bytes(h.Data.Guides))
	pl.SetByteArray("HAIR_GUIDES_POINT_COUNT", uint32Bytes(h.Data.GuidePoints))
	pl.SetFloatArray("HAIR_POINTS", h.Data.Points)
	pl.SetFloatArray("HAIR_NORMALS", h.Data.Normals)
	if rootUVs == 1 {
		pl.SetFloatArray("HAIR_ROOT_UVS", h.Data.RootUVs)
	}

	pl.SetUInt("Display Percent", uint32(h.DisplayPercent))
	pl.SetUInt("Display Max. Hairs", uint32(h.DisplayMax))
	pl.SetFloat("Root Radius", h.RootRadius)
	pl.SetFloat("Tip Radius", h.TipRadius)

	o, err := w.scene.CreateGeometryProcedural(d.Name, pl)
	if err != nil {
		return nil, err
	}
	channels := 3
	if h.Extension == input.HairGrass {
		channels = 2
	}
	if err = w.setupExtensionObject(o, d, channels); err != nil {
		return nil, err
	}
	return o, nil
}

// Add a sea loader object.
func (w *Writer) Sea(d *input.Object) (*scene.Object, error) {
	s := d.Sea
	if s == nil {
		return nil, fmt.Errorf("object %q: missing sea block", d.Name)
	}

	pl := scene.NewParamList(SeaExtension)
	g := s.Geometry
	pl.SetFloat("Reference Time", g.ReferenceTime)
	pl.SetUInt("Resolution", uint32(g.Resolution))
	pl.SetFloat("Ocean Depth", g.OceanDepth)
	pl.SetFloat("Vertical Scale", g.VerticalScale)
	pl.SetFloat("Ocean Dim", g.OceanDim)
	pl.SetUInt("Ocean Seed", uint32(g.OceanSeed))
	pl.SetFlag("Enable Choppyness", g.EnableChoppyness)
	pl.SetFloat("Choppy factor", g.ChoppyFactor)
	pl.SetFlag("Enable White Caps", g.EnableWhiteCaps)

	wind := s.Wind
	pl.SetFloat("Ocean Wind Mod.", wind.Speed)
	pl.SetFloat("Ocean Wind Dir.", wind.Direction)
	pl.SetFloat("Ocean Wind Alignment", wind.Alignment)
	pl.SetFloat("Ocean Min. Wave Length", wind.MinWaveLength)
	pl.SetFloat("Damp Factor Against Wind", wind.DampAgainstWind)

	o, err := w.scene.CreateGeometryLoader(d.Name, pl)
	if err != nil {
		return nil, err
	}
	if err = w.setupExtensionObject(o, d, 0); err != nil {
		return nil, err
	}
	return o, nil
}

// Add a volumetrics object. Noise parameters are only written for the noise
// density type.
func (w *Writer) Volumetrics(d *input.Object) (*scene.Object, error) {
	v := d.Volumetrics
	if v == nil {
		return nil, fmt.Errorf("object %q: missing volumetrics block", d.Name)
	}

	pl := scene.NewParamList(VolumetricsExtension)
	pl.SetByte("Create Constant Density", uint8(v.Type))
	pl.SetFloat("ConstantDensity", v.Density)
	if v.Type == input.VolumetricNoise {
		pl.SetUInt("Seed", uint32(v.Seed))
		pl.SetFloat("Low value", v.Low)
		pl.SetFloat("High value", v.High)
		pl.SetFloat("Detail", v.Detail)
		pl.SetInt("Octaves", v.Octaves)
		pl.SetFloat("Persistance", v.Persistence)
	}

	o, err := w.scene.CreateGeometryProcedural(d.Name, pl)
	if err != nil {
		return nil, err
	}
	if err = w.setupExtensionObject(o, d, 0); err != nil {
		return nil, err
	}
	return o, nil
}
