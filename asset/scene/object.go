package scene

import (
	"fmt"

	"github.com/oomer/blendmaxwell/types"
)

// ObjectType distinguishes the supported scene object kinds.
type ObjectType uint8

const (
	ObjectEmpty ObjectType = iota
	ObjectMesh
	ObjectInstance
	ObjectReference
	ObjectProcedural
	ObjectLoader
)

func (t ObjectType) String() string {
	switch t {
	case ObjectEmpty:
		return "EMPTY"
	case ObjectMesh:
		return "MESH"
	case ObjectInstance:
		return "INSTANCE"
	case ObjectReference:
		return "REFERENCE"
	case ObjectProcedural:
		return "PROCEDURAL"
	case ObjectLoader:
		return "LOADER"
	}
	return "invalid"
}

// Override flags of referenced scenes.
type ReferenceOverride uint8

const (
	OverrideHide ReferenceOverride = 1 << iota
	OverrideHideToCamera
	OverrideHideToReflectionsRefractions
	OverrideHideToGI
)

// A triangle defined by three vertex and three normal indices. Material
// indexes the owning mesh's material slots; -1 selects the object material.
type Triangle struct {
	Vertices [3]int
	Normals  [3]int
	Material int
}

// Mesh geometry. Vertices and normals are stored per position; meshes with
// more than one position carry motion blur samples.
type Mesh struct {
	NumPositions int
	Vertices     [][]types.Vec3
	Normals      [][]types.Vec3
	Triangles    []Triangle

	// Per UVW channel, per triangle: u1 v1 w1 u2 v2 w2 u3 v3 w3.
	UVW [][][9]float64

	// Material names used by per-triangle assignments.
	MaterialSlots []string

	// Triangle pairs forming quads for subdivision.
	QuadBuddies [][2]int
}

// Create mesh storage for the given element counts.
func newMesh(numVertices, numNormals, numTriangles, numPositions int) *Mesh {
	m := &Mesh{
		NumPositions: numPositions,
		Vertices:     make([][]types.Vec3, numPositions),
		Normals:      make([][]types.Vec3, numPositions),
		Triangles:    make([]Triangle, numTriangles),
	}
	for p := 0; p < numPositions; p++ {
		m.Vertices[p] = make([]types.Vec3, numVertices)
		m.Normals[p] = make([]types.Vec3, numNormals)
	}
	for i := range m.Triangles {
		m.Triangles[i].Material = -1
	}
	return m
}

// A scene object.
type Object struct {
	Name   string
	Type   ObjectType
	Parent string

	Base          types.Base
	Pivot         types.Base
	Position      types.Vec3
	Rotation      types.Vec3
	Scale         types.Vec3
	PivotPosition types.Vec3
	PivotRotation types.Vec3

	Hide                         bool
	Opacity                      float64
	ColorID                      types.RGB
	HideToCamera                 bool
	HideToCameraInShadowsPass    bool
	HideToGI                     bool
	HideToReflectionsRefractions bool
	ExcludedOfCutPlanes          bool
	ExcludedLights               []string
	CustomAlphas                 []string

	Material         string
	BackfaceMaterial string

	Mesh *Mesh

	// Name of the instanced object.
	Instanced string

	// Referenced scene and its override flags.
	ReferencedScenePath string
	ReferenceOverrides  ReferenceOverride

	// Geometry modifier extensions such as subdivision or scatter.
	Modifiers []*ParamList

	// Geometry extension of procedural and loader objects, and the number
	// of UVW channels the renderer generates for it.
	Geometry      *ParamList
	GeneratedUVWs int
}

func newObject(name string, typ ObjectType) *Object {
	return &Object{
		Name:    name,
		Type:    typ,
		Base:    types.IdentBase(),
		Pivot:   types.IdentBase(),
		Scale:   types.Vec3{1, 1, 1},
		Opacity: 100,
		ColorID: types.RGB{1, 1, 1},
	}
}

// Set the object base and pivot frames.
func (o *Object) SetBaseAndPivot(base, pivot types.Base) {
	o.Base = base
	o.Pivot = pivot
}

// Set the pivot position.
func (o *Object) SetPivotPosition(v types.Vec3) {
	o.PivotPosition = v
}

// Set the pivot rotation.
func (o *Object) SetPivotRotation(v types.Vec3) {
	o.PivotRotation = v
}

// Set the object position.
func (o *Object) SetPosition(v types.Vec3) {
	o.Position = v
}

// Set the object rotation.
func (o *Object) SetRotation(v types.Vec3) {
	o.Rotation = v
}

// Set the object scale.
func (o *Object) SetScale(v types.Vec3) {
	o.Scale = v
}

// Set the object color id.
func (o *Object) SetColorID(c types.RGB) {
	o.ColorID = c
}

// Exclude the object from receiving light from the named emitter object.
func (o *Object) AddExcludedLight(name string) {
	for _, n := range o.ExcludedLights {
		if n == name {
			return
		}
	}
	o.ExcludedLights = append(o.ExcludedLights, name)
}

// Set the whole-object material.
func (o *Object) SetMaterial(m *Material) {
	o.Material = m.Name
}

// Set the backface material.
func (o *Object) SetBackfaceMaterial(m *Material) {
	o.BackfaceMaterial = m.Name
}

// Returns true if this object is a mesh holding geometry.
func (o *Object) IsMesh() bool {
	return o.Type == ObjectMesh
}

// Returns true if the object geometry comes from a procedural or loader
// extension.
func (o *Object) IsExtension() bool {
	return o.Type == ObjectProcedural || o.Type == ObjectLoader
}

// Returns true if this object instances another object.
func (o *Object) IsInstance() bool {
	return o.Type == ObjectInstance
}

func (o *Object) checkMesh() error {
	if o.Mesh == nil {
		return fmt.Errorf("scene: object %q has no geometry", o.Name)
	}
	return nil
}

// Set a vertex for the given position.
func (o *Object) SetVertex(index, position int, v types.Vec3) error {
	if err := o.checkMesh(); err != nil {
		return err
	}
	if position < 0 || position >= o.Mesh.NumPositions || index < 0 || index >= len(o.Mesh.Vertices[position]) {
		return fmt.Errorf("scene: object %q: vertex %d/%d out of range", o.Name, index, position)
	}
	o.Mesh.Vertices[position][index] = v
	return nil
}

// Set a normal for the given position.
func (o *Object) SetNormal(index, position int, n types.Vec3) error {
	if err := o.checkMesh(); err != nil {
		return err
	}
	if position < 0 || position >= o.Mesh.NumPositions || index < 0 || index >= len(o.Mesh.Normals[position]) {
		return fmt.Errorf("scene: object %q: normal %d/%d out of range", o.Name, index, position)
	}
	o.Mesh.Normals[position][index] = n
	return nil
}

// Set a triangle from its vertex and normal indices.
func (o *Object) SetTriangle(index int, v0, v1, v2, n0, n1, n2 int) error {
	if err := o.checkMesh(); err != nil {
		return err
	}
	if index < 0 || index >= len(o.Mesh.Triangles) {
		return fmt.Errorf("scene: object %q: triangle %d out of range", o.Name, index)
	}
	numVertices, numNormals := len(o.Mesh.Vertices[0]), len(o.Mesh.Normals[0])
	for _, v := range []int{v0, v1, v2} {
		if v < 0 || v >= numVertices {
			return fmt.Errorf("scene: object %q: triangle %d references unknown vertex %d", o.Name, index, v)
		}
	}
	for _, n := range []int{n0, n1, n2} {
		if n < 0 || n >= numNormals {
			return fmt.Errorf("scene: object %q: triangle %d references unknown normal %d", o.Name, index, n)
		}
	}
	tri := &o.Mesh.Triangles[index]
	tri.Vertices = [3]int{v0, v1, v2}
	tri.Normals = [3]int{n0, n1, n2}
	return nil
}

// Add a UVW channel and return its index. Extension objects only count
// their channels; the renderer generates the coordinates.
func (o *Object) AddChannelUVW() (int, error) {
	if o.IsExtension() {
		o.GeneratedUVWs++
		return o.GeneratedUVWs - 1, nil
	}
	if err := o.checkMesh(); err != nil {
		return -1, err
	}
	o.Mesh.UVW = append(o.Mesh.UVW, make([][9]float64, len(o.Mesh.Triangles)))
	return len(o.Mesh.UVW) - 1, nil
}

// Set the UVW coordinates of a triangle for a channel.
func (o *Object) SetTriangleUVW(triangle, channel int, uvw [9]float64) error {
	if err := o.checkMesh(); err != nil {
		return err
	}
	if channel < 0 || channel >= len(o.Mesh.UVW) || triangle < 0 || triangle >= len(o.Mesh.Triangles) {
		return fmt.Errorf("scene: object %q: uvw %d/%d out of range", o.Name, triangle, channel)
	}
	o.Mesh.UVW[channel][triangle] = uvw
	return nil
}

// Assign a material to a single triangle.
func (o *Object) SetTriangleMaterial(triangle int, m *Material) error {
	if err := o.checkMesh(); err != nil {
		return err
	}
	if triangle < 0 || triangle >= len(o.Mesh.Triangles) {
		return fmt.Errorf("scene: object %q: triangle %d out of range", o.Name, triangle)
	}
	slot := -1
	for i, name := range o.Mesh.MaterialSlots {
		if name == m.Name {
			slot = i
			break
		}
	}
	if slot == -1 {
		o.Mesh.MaterialSlots = append(o.Mesh.MaterialSlots, m.Name)
		slot = len(o.Mesh.MaterialSlots) - 1
	}
	o.Mesh.Triangles[triangle].Material = slot
	return nil
}

// Get the material name of a triangle, falling back to the object material.
func (o *Object) TriangleMaterial(triangle int) string {
	if o.Mesh == nil || triangle < 0 || triangle >= len(o.Mesh.Triangles) {
		return ""
	}
	if slot := o.Mesh.Triangles[triangle].Material; slot >= 0 {
		return o.Mesh.MaterialSlots[slot]
	}
	return o.Material
}

// Pair two triangles into a quad for subdivision.
func (o *Object) SetTriangleQuadBuddy(triangle, buddy int) error {
	if err := o.checkMesh(); err != nil {
		return err
	}
	n := len(o.Mesh.Triangles)
	if triangle < 0 || triangle >= n || buddy < 0 || buddy >= n {
		return fmt.Errorf("scene: object %q: quad %d/%d out of range", o.Name, triangle, buddy)
	}
	o.Mesh.QuadBuddies = append(o.Mesh.QuadBuddies, [2]int{triangle, buddy})
	return nil
}

// Set the override flags of a referenced scene.
func (o *Object) SetReferencedOverrideFlags(flags ReferenceOverride) {
	o.ReferenceOverrides |= flags
}

// Apply a geometry modifier extension.
func (o *Object) ApplyGeometryModifierExtension(params *ParamList) {
	o.Modifiers = append(o.Modifiers, params)
}

// Names of all materials referenced by the object.
func (o *Object) MaterialNames() []string {
	var names []string
	seen := make(map[string]bool)
	add := func(n string) {
		if n != "" && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	add(o.Material)
	add(o.BackfaceMaterial)
	if o.Mesh != nil {
		for _, n := range o.Mesh.MaterialSlots {
			add(n)
		}
	}
	for _, pl := range o.Modifiers {
		for _, key := range ModifierMaterialParams {
			if p, ok := pl.Get(key); ok && p.Kind == ParamString {
				add(p.String)
			}
		}
	}
	return names
}

// Modifier parameters that hold material names.
var ModifierMaterialParams = []string{"Material", "Double Sided Material"}
