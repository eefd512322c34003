package input

import (
	"encoding/json"
	"fmt"

	"github.com/oomer/blendmaxwell/asset/texture"
)

// Embedded particle data. Vector arrays hold flattened xyz triples, one per
// particle.
type ParticleData struct {
	Positions []float64 `json:"positions"`
	Speeds    []float64 `json:"speeds"`
	Radii     []float64 `json:"radii"`
	IDs       []int32   `json:"ids"`
	Normals   []float64 `json:"normals"`
	UVW       []float64 `json:"uvw"`
}

// Number of particles.
func (d *ParticleData) Count() int {
	return len(d.Positions) / 3
}

func (d *ParticleData) problems() []string {
	var out []string
	if len(d.Positions)%3 != 0 {
		out = append(out, fmt.Sprintf("expected xyz particle positions; got %d values", len(d.Positions)))
		return out
	}
	n := d.Count()
	vectors := []struct {
		name string
		v    []float64
	}{{"speeds", d.Speeds}, {"normals", d.Normals}, {"uvw", d.UVW}}
	for _, vec := range vectors {
		if len(vec.v) != 0 && len(vec.v) != 3*n {
			out = append(out, fmt.Sprintf("expected %d particle %s values; got %d", 3*n, vec.name, len(vec.v)))
		}
	}
	if len(d.Radii) != 0 && len(d.Radii) != n {
		out = append(out, fmt.Sprintf("expected %d particle radii; got %d", n, len(d.Radii)))
	}
	if len(d.IDs) != 0 && len(d.IDs) != n {
		out = append(out, fmt.Sprintf("expected %d particle ids; got %d", n, len(d.IDs)))
	}
	return out
}

// Particles are either embedded or read by the renderer from a file.
type ParticleSource struct {
	Data     *ParticleData `json:"pdata"`
	Filename string        `json:"filename"`
}

func (s *ParticleSource) problems() []string {
	switch {
	case s.Data != nil && s.Filename != "":
		return []string{"particles must be either embedded or loaded from a file"}
	case s.Data == nil && s.Filename == "":
		return []string{"missing particle data or filename"}
	case s.Data != nil:
		return s.Data.problems()
	}
	return nil
}

type ParticleRanges struct {
	Force         [2]float64 `json:"force"`
	Vorticity     [2]float64 `json:"vorticity"`
	Nneighbors    [2]int32   `json:"nneighbors"`
	Age           [2]float64 `json:"age"`
	IsolationTime [2]float64 `json:"isolation_time"`
	Viscosity     [2]float64 `json:"viscosity"`
	Density       [2]float64 `json:"density"`
	Pressure      [2]float64 `json:"pressure"`
	Mass          [2]float64 `json:"mass"`
	Temperature   [2]float64 `json:"temperature"`
	Velocity      [2]float64 `json:"velocity"`
}

// Optional per particle channels read from particle files.
type ParticleChannels struct {
	Force         bool `json:"force"`
	Vorticity     bool `json:"vorticity"`
	Normal        bool `json:"normal"`
	Neighbors     bool `json:"neighbors_num"`
	UV            bool `json:"uv"`
	Age           bool `json:"age"`
	IsolationTime bool `json:"isolation_time"`
	Viscosity     bool `json:"viscosity"`
	Density       bool `json:"density"`
	Pressure      bool `json:"pressure"`
	Mass          bool `json:"mass"`
	Temperature   bool `json:"temperature"`
	ID            bool `json:"id"`
}

// Particles procedural geometry.
type Particles struct {
	ParticleSource

	RadiusFactor     float64 `json:"radius_multiplier"`
	MotionBlurFactor float64 `json:"motion_blur_multiplier"`
	ShutterSpeed     float64 `json:"shutter_speed"`
	LoadPercent      float64 `json:"load_particles"`
	AxisSystem       int     `json:"axis_system"`
	Frame            int32   `json:"frame_number"`
	FPS              float64 `json:"fps"`

	ExtraPerParticle int32   `json:"extra_create_np_pp"`
	ExtraDispersion  float64 `json:"extra_dispersion"`
	ExtraDeformation float64 `json:"extra_deformation"`

	Load   ParticleChannels `json:"load"`
	Ranges ParticleRanges   `json:"ranges"`
}

func (p *Particles) UnmarshalJSON(data []byte) error {
	type plain Particles
	aux := plain{
		RadiusFactor:     1,
		MotionBlurFactor: 1,
		ShutterSpeed:     125,
		LoadPercent:      100,
		Frame:            1,
		FPS:              24,
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Particles(aux)
	return nil
}

// Hair procedural extensions.
const (
	HairStrands = "MaxwellHair"
	HairGrass   = "MGrassP"
)

// Hair or grass guide curves. Points and normals hold flattened xyz
// triples, GuidePoints per guide.
type HairData struct {
	MajorVersion []int     `json:"major_version"`
	MinorVersion []int     `json:"minor_version"`
	Guides       uint32    `json:"guides_count"`
	GuidePoints  uint32    `json:"guides_point_count"`
	Points       []float64 `json:"points"`
	Normals      []float64 `json:"normals"`
	RootUVs      []float64 `json:"root_uvs"`
}

// Hair procedural geometry. Grass hair uses the MGrassP extension.
type Hair struct {
	Extension      string   `json:"extension"`
	RootRadius     float64  `json:"root_radius"`
	TipRadius      float64  `json:"tip_radius"`
	DisplayPercent int      `json:"display_percent"`
	DisplayMax     int      `json:"display_max"`
	Data           HairData `json:"data"`
}

func (h *Hair) UnmarshalJSON(data []byte) error {
	type plain Hair
	aux := plain{Extension: HairStrands, DisplayPercent: 10, DisplayMax: 1000}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*h = Hair(aux)
	return nil
}

func (h *Hair) problems() []string {
	var out []string
	if h.Extension != HairStrands && h.Extension != HairGrass {
		out = append(out, fmt.Sprintf("unknown hair extension %q", h.Extension))
	}
	for _, version := range [][]int{h.Data.MajorVersion, h.Data.MinorVersion} {
		for _, b := range version {
			if b < 0 || b > 255 {
				out = append(out, fmt.Sprintf("hair version byte %d out of range", b))
			}
		}
	}
	exp := 3 * int(h.Data.Guides) * int(h.Data.GuidePoints)
	if len(h.Data.Points) != exp {
		out = append(out, fmt.Sprintf("expected %d hair point values; got %d", exp, len(h.Data.Points)))
	}
	if len(h.Data.Normals) != 0 && len(h.Data.Normals) != exp {
		out = append(out, fmt.Sprintf("expected %d hair normal values; got %d", exp, len(h.Data.Normals)))
	}
	return out
}

type SeaGeometry struct {
	ReferenceTime    float64 `json:"reference_time"`
	Resolution       int     `json:"resolution"`
	OceanDepth       float64 `json:"ocean_depth"`
	VerticalScale    float64 `json:"vertical_scale"`
	OceanDim         float64 `json:"ocean_dim"`
	OceanSeed        int     `json:"ocean_seed"`
	EnableChoppyness bool    `json:"enable_choppyness"`
	ChoppyFactor     float64 `json:"choppy_factor"`
	EnableWhiteCaps  bool    `json:"enable_white_caps"`
}

type SeaWind struct {
	Speed           float64 `json:"ocean_wind_mod"`
	Direction       float64 `json:"ocean_wind_dir"`
	Alignment       float64 `json:"ocean_wind_alignment"`
	MinWaveLength   float64 `json:"ocean_min_wave_length"`
	DampAgainstWind float64 `json:"damp_factor_against_wind"`
}

// Sea loader geometry.
type Sea struct {
	Geometry SeaGeometry `json:"geometry"`
	Wind     SeaWind     `json:"wind"`
}

func (s *Sea) problems() []string {
	var out []string
	if s.Geometry.Resolution < 0 {
		out = append(out, fmt.Sprintf("negative sea resolution %d", s.Geometry.Resolution))
	}
	if s.Geometry.OceanSeed < 0 {
		out = append(out, fmt.Sprintf("negative sea seed %d", s.Geometry.OceanSeed))
	}
	return out
}

// Volumetric density types.
const (
	VolumetricConstant = 1
	VolumetricNoise    = 2
)

// Volumetric procedural geometry. The noise fields only apply to the noise
// density type.
type Volumetrics struct {
	Type        int     `json:"type"`
	Density     float64 `json:"density"`
	Seed        int     `json:"seed"`
	Low         float64 `json:"low"`
	High        float64 `json:"high"`
	Detail      float64 `json:"detail"`
	Octaves     int32   `json:"octaves"`
	Persistence float64 `json:"persistence"`
}

func (v *Volumetrics) UnmarshalJSON(data []byte) error {
	type plain Volumetrics
	aux := plain{Type: VolumetricConstant}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*v = Volumetrics(aux)
	return nil
}

func (v *Volumetrics) problems() []string {
	if v.Type != VolumetricConstant && v.Type != VolumetricNoise {
		return []string{fmt.Sprintf("unknown volumetric type %d", v.Type)}
	}
	return nil
}

// A grass blade property with a random variation and an optional map.
type GrassShape struct {
	Value     float64          `json:"value"`
	Variation float64          `json:"variation"`
	Map       *texture.Texture `json:"map"`
}

// Grass geometry modifier. Materials are referenced by name.
type Grass struct {
	Object           string `json:"object"`
	Material         string `json:"material"`
	BackfaceMaterial string `json:"backface_material"`

	Density    int              `json:"density"`
	DensityMap *texture.Texture `json:"density_map"`
	Length     GrassShape       `json:"length"`
	RootWidth  float64          `json:"root_width"`
	TipWidth   float64          `json:"tip_width"`

	DirectionType float64    `json:"direction_type"`
	InitialAngle  GrassShape `json:"initial_angle"`
	StartBend     GrassShape `json:"start_bend"`
	BendRadius    GrassShape `json:"bend_radius"`
	BendAngle     GrassShape `json:"bend_angle"`
	CutOff        GrassShape `json:"cut_off"`

	PointsPerBlade int        `json:"points_per_blade"`
	PrimitiveType  int        `json:"primitive_type"`
	Seed           int        `json:"seed"`
	LOD            ScatterLOD `json:"lod"`

	DisplayPercent int `json:"display_percent"`
	DisplayMax     int `json:"display_max"`
}

func (g *Grass) UnmarshalJSON(data []byte) error {
	type plain Grass
	aux := plain{
		Density:        3000,
		Length:         GrassShape{Value: 7.5, Variation: 60},
		RootWidth:      5,
		TipWidth:       1,
		InitialAngle:   GrassShape{Value: 80, Variation: 25},
		StartBend:      GrassShape{Value: 40, Variation: 25},
		BendRadius:     GrassShape{Value: 10, Variation: 50},
		BendAngle:      GrassShape{Value: 80, Variation: 50},
		CutOff:         GrassShape{Value: 100},
		PointsPerBlade: 8,
		LOD:            ScatterLOD{MinDistance: 10, MaxDistance: 50, MaxDistanceDensity: 10},
		DisplayPercent: 10,
		DisplayMax:     1000,
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*g = Grass(aux)
	return nil
}

func (g *Grass) maps() []*texture.Texture {
	return []*texture.Texture{
		g.DensityMap, g.Length.Map, g.InitialAngle.Map, g.StartBend.Map,
		g.BendRadius.Map, g.BendAngle.Map, g.CutOff.Map,
	}
}

// Cloner geometry modifier. Copies of the cloned object are placed at the
// particles of the emitter object, which is hidden unless RenderEmitter is
// set.
type Cloner struct {
	Object        string `json:"object"`
	ClonedObject  string `json:"cloned_object"`
	RenderEmitter bool   `json:"render_emitter"`

	ParticleSource

	RadiusFactor     float64 `json:"radius"`
	MotionBlurFactor float64 `json:"mb_factor"`
	LoadPercent      float64 `json:"load_percent"`
	StartOffset      int     `json:"start_offset"`

	ExtraPerParticle int     `json:"ex_npp"`
	ExtraDispersion  float64 `json:"ex_p_dispersion"`
	ExtraDeformation float64 `json:"ex_p_deformation"`

	AlignToVelocity bool `json:"align_to_velocity"`
	ScaleWithRadius bool `json:"scale_with_radius"`
	InheritObjectID bool `json:"inherit_objectid"`

	Frame int32   `json:"frame"`
	FPS   float64 `json:"fps"`

	DisplayPercent int `json:"display_percent"`
	DisplayMax     int `json:"display_max"`
}

func (c *Cloner) UnmarshalJSON(data []byte) error {
	type plain Cloner
	aux := plain{
		RadiusFactor:     1,
		MotionBlurFactor: 1,
		LoadPercent:      100,
		Frame:            1,
		FPS:              24,
		DisplayPercent:   10,
		DisplayMax:       1000,
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*c = Cloner(aux)
	return nil
}
