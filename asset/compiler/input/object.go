package input

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oomer/blendmaxwell/types"
)

// Object types.
type ObjectType string

const (
	ObjectEmpty     ObjectType = "EMPTY"
	ObjectMesh      ObjectType = "MESH"
	ObjectInstance  ObjectType = "INSTANCE"
	ObjectReference ObjectType = "REFERENCE"

	// Extension geometry.
	ObjectParticles   ObjectType = "PARTICLES"
	ObjectHair        ObjectType = "HAIR"
	ObjectSea         ObjectType = "SEA"
	ObjectVolumetrics ObjectType = "VOLUMETRICS"
)

func (t ObjectType) valid() bool {
	switch t {
	case ObjectEmpty, ObjectMesh, ObjectInstance, ObjectReference,
		ObjectParticles, ObjectHair, ObjectSea, ObjectVolumetrics:
		return true
	}
	return false
}

// Object placement. Base and pivot are given as origin, x, y and z axis
// rows. Location and rotation are applied both to the pivot and the object.
type Matrix struct {
	Base     [4]types.Vec3 `json:"base"`
	Pivot    [4]types.Vec3 `json:"pivot"`
	Location types.Vec3    `json:"location"`
	Rotation types.Vec3    `json:"rotation"`
	Scale    types.Vec3    `json:"scale"`
}

// Identity base and pivot with zero location, rotation and scale.
func IdentMatrix() Matrix {
	ident := types.IdentBase().Rows()
	return Matrix{Base: ident, Pivot: ident}
}

func (m *Matrix) UnmarshalJSON(data []byte) error {
	type plain Matrix
	aux := plain(IdentMatrix())
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = Matrix(aux)
	return nil
}

// Common object properties.
type ObjectProps struct {
	Hide                       bool       `json:"hide"`
	Opacity                    float64    `json:"opacity"`
	ColorID                    types.RGB8 `json:"color_id"`
	HideCamera                 bool       `json:"hide_camera"`
	HideCameraShadows          bool       `json:"hide_camera_shadows"`
	HideGI                     bool       `json:"hide_gi"`
	HideReflectionsRefractions bool       `json:"hide_reflections_refractions"`
	ExcludeCutPlanes           bool       `json:"exclude_cut_planes"`
	BlockedEmitters            []string   `json:"blocked_emitters"`
}

// Object props with the host defaults.
func DefaultObjectProps() ObjectProps {
	return ObjectProps{Opacity: 100, ColorID: types.White8}
}

func (p *ObjectProps) UnmarshalJSON(data []byte) error {
	type plain ObjectProps
	aux := plain(DefaultObjectProps())
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = ObjectProps(aux)
	return nil
}

// Triangle vertex and normal indices.
type Triangle [6]int

// A (triangle, material slot) assignment.
type TriangleMaterial [2]int

// A scene object. Which fields are used depends on the object type.
type Object struct {
	Name   string       `json:"name"`
	Type   ObjectType   `json:"type"`
	Matrix *Matrix      `json:"matrix"`
	Props  *ObjectProps `json:"props"`

	// MESH
	NumPositions      int                `json:"num_positions"`
	Vertices          [][]types.Vec3     `json:"vertices"`
	Normals           [][]types.Vec3     `json:"normals"`
	Triangles         []Triangle         `json:"triangles"`
	TriangleNormals   [][]types.Vec3     `json:"triangle_normals"`
	UVChannels        [][][9]float64     `json:"uv_channels"`
	TriangleMaterials []TriangleMaterial `json:"triangle_materials"`

	// INSTANCE
	Instanced string `json:"instanced"`

	// REFERENCE
	Path  string  `json:"path"`
	Flags [4]bool `json:"flags"`

	// PARTICLES, HAIR, SEA and VOLUMETRICS
	Particles   *Particles   `json:"particles"`
	Hair        *Hair        `json:"hair"`
	Sea         *Sea         `json:"sea"`
	Volumetrics *Volumetrics `json:"volumetrics"`

	Materials        []string `json:"materials"`
	BackfaceMaterial string   `json:"backface_material"`
}

// Get the object placement, falling back to the identity.
func (o *Object) Placement() Matrix {
	if o.Matrix == nil {
		return IdentMatrix()
	}
	return *o.Matrix
}

// Number of vertices per position.
func (o *Object) NumVertices() int {
	if len(o.Vertices) == 0 {
		return 0
	}
	return len(o.Vertices[0])
}

// Number of normals per position, including the triangle normals which are
// stored after the vertex normals.
func (o *Object) NumNormals() int {
	n := 0
	if len(o.Normals) > 0 {
		n += len(o.Normals[0])
	}
	if len(o.TriangleNormals) > 0 {
		n += len(o.TriangleNormals[0])
	}
	return n
}

// Problems of the extension block matching the object type.
func (o *Object) extensionProblems() []string {
	missing := func() []string {
		return []string{fmt.Sprintf("missing %s block", strings.ToLower(string(o.Type)))}
	}
	switch o.Type {
	case ObjectParticles:
		if o.Particles == nil {
			return missing()
		}
		return o.Particles.problems()
	case ObjectHair:
		if o.Hair == nil {
			return missing()
		}
		return o.Hair.problems()
	case ObjectSea:
		if o.Sea == nil {
			return missing()
		}
		return o.Sea.problems()
	case ObjectVolumetrics:
		if o.Volumetrics == nil {
			return missing()
		}
		return o.Volumetrics.problems()
	}
	return nil
}
