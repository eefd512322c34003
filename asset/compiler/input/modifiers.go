package input

import (
	"encoding/json"

	"github.com/oomer/blendmaxwell/asset/texture"
	"github.com/oomer/blendmaxwell/types"
)

// A parent assignment. An empty parent keeps the object at the root.
type HierarchyEntry struct {
	Object string `json:"object"`
	Parent string `json:"parent"`
}

// A custom alpha group.
type CustomAlpha struct {
	Name    string   `json:"name"`
	Objects []string `json:"objects"`
	Opaque  bool     `json:"opaque"`
}

// Subdivision schemes.
const (
	SchemeCatmullClark = 0
	SchemeLoop         = 1
)

// Subdivision geometry modifier. Quads pair up triangles that form a quad
// and only apply to the Catmull-Clark scheme.
type Subdivision struct {
	Object        string   `json:"object"`
	Level         int      `json:"level"`
	Scheme        int      `json:"scheme"`
	Interpolation int      `json:"interpolation"`
	Crease        float64  `json:"crease"`
	SmoothAngle   float64  `json:"smooth_angle"`
	Quads         [][2]int `json:"quads"`
}

func (s *Subdivision) UnmarshalJSON(data []byte) error {
	type plain Subdivision
	aux := plain{Level: 2, Interpolation: 2, SmoothAngle: 90}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Subdivision(aux)
	return nil
}

type ScatterDensity struct {
	Value float64          `json:"value"`
	Map   *texture.Texture `json:"map"`
}

type ScatterScale struct {
	Value     types.Vec3       `json:"value"`
	Map       *texture.Texture `json:"map"`
	Variation types.Vec3       `json:"variation"`
	Uniform   bool             `json:"uniform"`
}

type ScatterRotation struct {
	Value     types.Vec3       `json:"value"`
	Map       *texture.Texture `json:"map"`
	Variation types.Vec3       `json:"variation"`
	Direction int              `json:"direction"`
}

type ScatterLOD struct {
	Enabled            bool    `json:"enabled"`
	MinDistance        float64 `json:"min_distance"`
	MaxDistance        float64 `json:"max_distance"`
	MaxDistanceDensity float64 `json:"max_distance_density"`
}

type ScatterAngle struct {
	Direction float64          `json:"direction"`
	Initial   float64          `json:"initial"`
	Variation float64          `json:"variation"`
	Map       *texture.Texture `json:"map"`
}

// Scatter geometry modifier.
type Scatter struct {
	Object           string           `json:"object"`
	ScatterObject    string           `json:"scatter_object"`
	InheritObjectID  bool             `json:"inherit_objectid"`
	RemoveOverlapped bool             `json:"remove_overlapped"`
	Density          *ScatterDensity  `json:"density"`
	Seed             int              `json:"seed"`
	Scale            *ScatterScale    `json:"scale"`
	Rotation         *ScatterRotation `json:"rotation"`
	LOD              *ScatterLOD      `json:"lod"`
	Angle            *ScatterAngle    `json:"angle"`
	DisplayPercent   int              `json:"display_percent"`
	DisplayMax       int              `json:"display_max"`
}

func (s *Scatter) UnmarshalJSON(data []byte) error {
	type plain Scatter
	aux := plain{DisplayPercent: 10, DisplayMax: 1000}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Scatter(aux)
	return nil
}

// Scatter texture maps that need validation.
func (s *Scatter) maps() []*texture.Texture {
	var out []*texture.Texture
	if s.Density != nil {
		out = append(out, s.Density.Map)
	}
	if s.Scale != nil {
		out = append(out, s.Scale.Map)
	}
	if s.Rotation != nil {
		out = append(out, s.Rotation.Map)
	}
	if s.Angle != nil {
		out = append(out, s.Angle.Map)
	}
	return out
}

// Wireframe render helpers. Every object except the wire base and its
// instances gets the clay material; the wire base is collapsed.
type Wireframe struct {
	ClayMaterial string `json:"clay_material"`
	WireBase     string `json:"wire_base"`
}
