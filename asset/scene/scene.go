package scene

import (
	"fmt"
	"sort"

	"github.com/oomer/blendmaxwell/types"
)

// The kind of value stored in a render parameter.
type RenderValueKind uint8

const (
	RenderInt RenderValueKind = iota
	RenderFloat
	RenderString
	RenderPair
)

// A render parameter value.
type RenderValue struct {
	Kind   RenderValueKind
	Int    int
	Float  float64
	String string
	Pair   [2]float64
}

func (v RenderValue) Format() string {
	switch v.Kind {
	case RenderInt:
		return fmt.Sprintf("%d", v.Int)
	case RenderFloat:
		return fmt.Sprintf("%g", v.Float)
	case RenderString:
		return v.String
	case RenderPair:
		return fmt.Sprintf("%g, %g", v.Pair[0], v.Pair[1])
	}
	return ""
}

// An output image path and its bit depth.
type OutputPath struct {
	Path  string
	Depth int
}

// Tone mapping settings.
type ToneMapping struct {
	Gamma float64
	Burn  float64
}

// White point settings.
type WhitePoint struct {
	Temperature float64
	Tint        float64
}

// Lens diffraction settings.
type Diffraction struct {
	Enabled     bool
	Value       float64
	Frequency   float64
	ApertureMap string
	ObstacleMap string
}

// Global material override settings.
type OverrideMaterial struct {
	Enabled bool
	Path    string
}

// A custom alpha channel.
type CustomAlpha struct {
	Name   string
	Opaque bool
}

// The renderer scene. Objects reference materials, parents and instanced
// objects by name so the scene can be serialized without pointer cycles.
type Scene struct {
	PluginID  string
	Protected bool

	Objects   []*Object
	Materials []*Material
	Cameras   []*Camera

	ActiveCamera string

	Environment *Environment

	Parameters map[string]RenderValue
	Paths      map[string]OutputPath

	ToneMapping      ToneMapping
	ColorSpace       int
	WhitePoint       WhitePoint
	Diffraction      Diffraction
	OverrideMaterial OverrideMaterial
	SearchPaths      []string
	CustomAlphas     []CustomAlpha

	objectIndex   map[string]*Object
	materialIndex map[string]*Material
}

// Create a new empty scene.
func NewScene() *Scene {
	return &Scene{
		Environment: newEnvironment(),
		Parameters:  make(map[string]RenderValue),
		Paths:       make(map[string]OutputPath),
		ToneMapping: ToneMapping{Gamma: 2.2},
		WhitePoint:  WhitePoint{Temperature: 6500},
	}
}

// Rebuild the name lookup tables. Decoded scenes start without them.
func (sc *Scene) reindex() {
	sc.objectIndex = make(map[string]*Object, len(sc.Objects))
	for _, o := range sc.Objects {
		sc.objectIndex[o.Name] = o
	}
	sc.materialIndex = make(map[string]*Material, len(sc.Materials))
	for _, m := range sc.Materials {
		sc.materialIndex[m.Name] = m
	}
	if sc.Environment == nil {
		sc.Environment = newEnvironment()
	}
	if sc.Parameters == nil {
		sc.Parameters = make(map[string]RenderValue)
	}
	if sc.Paths == nil {
		sc.Paths = make(map[string]OutputPath)
	}
}

// Prepare a decoded scene for use. Lookup tables are rebuilt and missing
// containers allocated; decoded values are never replaced by defaults.
func (sc *Scene) Restore() {
	sc.reindex()
}

func (sc *Scene) ensureIndex() {
	if sc.objectIndex == nil || sc.materialIndex == nil {
		sc.reindex()
	}
}

func (sc *Scene) addObject(o *Object) (*Object, error) {
	sc.ensureIndex()
	if o.Name == "" {
		return nil, fmt.Errorf("scene: object name must not be empty")
	}
	if _, exists := sc.objectIndex[o.Name]; exists {
		return nil, fmt.Errorf("scene: duplicate object name %q", o.Name)
	}
	sc.Objects = append(sc.Objects, o)
	sc.objectIndex[o.Name] = o
	return o, nil
}

// Remove an object by name. Children and instances keep referring to the
// name. Returns false if there is no such object.
func (sc *Scene) RemoveObject(name string) bool {
	sc.ensureIndex()
	if _, exists := sc.objectIndex[name]; !exists {
		return false
	}
	for i, o := range sc.Objects {
		if o.Name == name {
			sc.Objects = append(sc.Objects[:i], sc.Objects[i+1:]...)
			break
		}
	}
	delete(sc.objectIndex, name)
	return true
}

// Create an empty object, a mesh without geometry.
func (sc *Scene) CreateEmpty(name string) (*Object, error) {
	return sc.addObject(newObject(name, ObjectEmpty))
}

// Create a mesh object with storage for the given element counts.
func (sc *Scene) CreateMesh(name string, numVertices, numNormals, numTriangles, numPositions int) (*Object, error) {
	if numPositions < 1 {
		return nil, fmt.Errorf("scene: mesh %q: at least one position is required", name)
	}
	if numVertices < 0 || numNormals < 0 || numTriangles < 0 {
		return nil, fmt.Errorf("scene: mesh %q: negative element count", name)
	}
	o := newObject(name, ObjectMesh)
	o.Mesh = newMesh(numVertices, numNormals, numTriangles, numPositions)
	return sc.addObject(o)
}

// Create an instance of an existing object.
func (sc *Scene) CreateInstancement(name string, base *Object) (*Object, error) {
	if base == nil {
		return nil, fmt.Errorf("scene: instance %q: missing instanced object", name)
	}
	o := newObject(name, ObjectInstance)
	o.Instanced = base.Name
	return sc.addObject(o)
}

// Create an object whose geometry is generated by a procedural extension
// such as particles, hair or volumetrics.
func (sc *Scene) CreateGeometryProcedural(name string, params *ParamList) (*Object, error) {
	return sc.createExtensionObject(name, ObjectProcedural, params)
}

// Create an object whose geometry is loaded by an extension such as the sea.
func (sc *Scene) CreateGeometryLoader(name string, params *ParamList) (*Object, error) {
	return sc.createExtensionObject(name, ObjectLoader, params)
}

func (sc *Scene) createExtensionObject(name string, typ ObjectType, params *ParamList) (*Object, error) {
	if params == nil || params.Extension == "" {
		return nil, fmt.Errorf("scene: object %q: missing geometry extension", name)
	}
	o := newObject(name, typ)
	o.Geometry = params
	return sc.addObject(o)
}

// Create a reference to another scene file.
func (sc *Scene) CreateReference(name, path string) (*Object, error) {
	o := newObject(name, ObjectReference)
	o.ReferencedScenePath = path
	return sc.addObject(o)
}

// Lookup an object by name. Returns nil if there is no such object.
func (sc *Scene) GetObject(name string) *Object {
	sc.ensureIndex()
	return sc.objectIndex[name]
}

// Lookup the object instanced by an instance.
func (sc *Scene) InstancedObject(o *Object) *Object {
	if o == nil || o.Type != ObjectInstance {
		return nil
	}
	return sc.GetObject(o.Instanced)
}

// Parent an object. An empty parent name detaches the object. Parenting that
// would introduce a cycle is rejected.
func (sc *Scene) SetParent(o *Object, parent string) error {
	if parent == "" {
		o.Parent = ""
		return nil
	}
	p := sc.GetObject(parent)
	if p == nil {
		return fmt.Errorf("scene: object %q: unknown parent %q", o.Name, parent)
	}
	for cur := p; cur != nil; cur = sc.GetObject(cur.Parent) {
		if cur.Name == o.Name {
			return fmt.Errorf("scene: object %q: parenting to %q creates a cycle", o.Name, parent)
		}
	}
	o.Parent = parent
	return nil
}

// Calculate the world space base of an object by composing its base with the
// bases of its ancestors.
func (sc *Scene) WorldTransform(o *Object) types.Base {
	base := o.Base
	visited := map[string]bool{o.Name: true}
	for p := sc.GetObject(o.Parent); p != nil && !visited[p.Name]; p = sc.GetObject(p.Parent) {
		visited[p.Name] = true
		base = base.In(p.Base)
	}
	return base
}

// Create a new empty material.
func (sc *Scene) CreateMaterial(name string) (*Material, error) {
	return sc.AddMaterial(NewMaterial(name))
}

// Add a material to the scene.
func (sc *Scene) AddMaterial(m *Material) (*Material, error) {
	sc.ensureIndex()
	if m.Name == "" {
		return nil, fmt.Errorf("scene: material name must not be empty")
	}
	if _, exists := sc.materialIndex[m.Name]; exists {
		return nil, fmt.Errorf("scene: duplicate material name %q", m.Name)
	}
	sc.Materials = append(sc.Materials, m)
	sc.materialIndex[m.Name] = m
	return m, nil
}

// Remove a material by name. Objects keep referring to the name. Returns
// false if there is no such material.
func (sc *Scene) RemoveMaterial(name string) bool {
	sc.ensureIndex()
	if _, exists := sc.materialIndex[name]; !exists {
		return false
	}
	for i, m := range sc.Materials {
		if m.Name == name {
			sc.Materials = append(sc.Materials[:i], sc.Materials[i+1:]...)
			break
		}
	}
	delete(sc.materialIndex, name)
	return true
}

// Lookup a material by name. Returns nil if there is no such material.
func (sc *Scene) GetMaterial(name string) *Material {
	sc.ensureIndex()
	return sc.materialIndex[name]
}

// Names of all scene materials.
func (sc *Scene) MaterialNames() []string {
	names := make([]string, 0, len(sc.Materials))
	for _, m := range sc.Materials {
		names = append(names, m.Name)
	}
	return names
}

// Remove materials that are not referenced by any object and return the
// number of removed materials.
func (sc *Scene) EraseUnusedMaterials() int {
	used := make(map[string]bool)
	for _, o := range sc.Objects {
		for _, n := range o.MaterialNames() {
			used[n] = true
		}
	}
	kept := sc.Materials[:0]
	removed := 0
	for _, m := range sc.Materials {
		if used[m.Name] {
			kept = append(kept, m)
			continue
		}
		removed++
	}
	for i := len(kept); i < len(sc.Materials); i++ {
		sc.Materials[i] = nil
	}
	sc.Materials = kept
	sc.reindex()
	return removed
}

// Add a camera with the given number of steps.
func (sc *Scene) AddCamera(cam *Camera, numSteps int) (*Camera, error) {
	if cam.Name == "" {
		return nil, fmt.Errorf("scene: camera name must not be empty")
	}
	if numSteps < 1 {
		return nil, fmt.Errorf("scene: camera %q: at least one step is required", cam.Name)
	}
	if sc.GetCamera(cam.Name) != nil {
		return nil, fmt.Errorf("scene: duplicate camera name %q", cam.Name)
	}
	cam.Steps = make([]CameraStep, numSteps)
	sc.Cameras = append(sc.Cameras, cam)
	return cam, nil
}

// Lookup a camera by name.
func (sc *Scene) GetCamera(name string) *Camera {
	for _, c := range sc.Cameras {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Remove a camera by name. Returns false if there is no such camera.
func (sc *Scene) RemoveCamera(name string) bool {
	for i, c := range sc.Cameras {
		if c.Name == name {
			sc.Cameras = append(sc.Cameras[:i], sc.Cameras[i+1:]...)
			return true
		}
	}
	return false
}

// Make a camera the active one.
func (sc *Scene) SetActiveCamera(name string) error {
	if sc.GetCamera(name) == nil {
		return fmt.Errorf("scene: unknown camera %q", name)
	}
	sc.ActiveCamera = name
	return nil
}

// Set a render parameter. Supported value types are bool (stored as 0/1),
// int, float64, string and [2]float64.
func (sc *Scene) SetRenderParameter(name string, value interface{}) error {
	sc.ensureIndex()
	var rv RenderValue
	switch v := value.(type) {
	case bool:
		rv.Kind = RenderInt
		if v {
			rv.Int = 1
		}
	case int:
		rv = RenderValue{Kind: RenderInt, Int: v}
	case float64:
		rv = RenderValue{Kind: RenderFloat, Float: v}
	case string:
		rv = RenderValue{Kind: RenderString, String: v}
	case [2]float64:
		rv = RenderValue{Kind: RenderPair, Pair: v}
	default:
		return fmt.Errorf("scene: render parameter %q: unsupported value type %T", name, value)
	}
	sc.Parameters[name] = rv
	return nil
}

// Get a render parameter.
func (sc *Scene) RenderParameter(name string) (RenderValue, bool) {
	v, ok := sc.Parameters[name]
	return v, ok
}

// Sorted render parameter names.
func (sc *Scene) RenderParameterNames() []string {
	names := make([]string, 0, len(sc.Parameters))
	for n := range sc.Parameters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Set an output path.
func (sc *Scene) SetPath(key, path string, depth int) {
	sc.ensureIndex()
	sc.Paths[key] = OutputPath{Path: path, Depth: depth}
}

// Set tone mapping.
func (sc *Scene) SetToneMapping(gamma, burn float64) {
	sc.ToneMapping = ToneMapping{Gamma: gamma, Burn: burn}
}

// Set the color space.
func (sc *Scene) SetColorSpace(cs int) {
	sc.ColorSpace = cs
}

// Set the white point.
func (sc *Scene) SetWhitePoint(temperature, tint float64) {
	sc.WhitePoint = WhitePoint{Temperature: temperature, Tint: tint}
}

// Enable lens diffraction.
func (sc *Scene) SetDiffraction(value, frequency float64, apertureMap, obstacleMap string) {
	sc.Diffraction = Diffraction{
		Enabled:     true,
		Value:       value,
		Frequency:   frequency,
		ApertureMap: apertureMap,
		ObstacleMap: obstacleMap,
	}
}

// Enable the global material override.
func (sc *Scene) SetOverrideMaterial(enabled bool) {
	sc.OverrideMaterial.Enabled = enabled
}

// Set the global override material file.
func (sc *Scene) SetOverrideMaterialPath(path string) {
	sc.OverrideMaterial.Path = path
}

// Add a material search path.
func (sc *Scene) AddSearchingPath(path string) {
	for _, p := range sc.SearchPaths {
		if p == path {
			return
		}
	}
	sc.SearchPaths = append(sc.SearchPaths, path)
}

// Toggle scene protection.
func (sc *Scene) EnableProtection(enabled bool) {
	sc.Protected = enabled
}

// Set the id of the plugin that produced the scene.
func (sc *Scene) SetPluginID(id string) {
	sc.PluginID = id
}

// Create a custom alpha channel.
func (sc *Scene) CreateCustomAlphaChannel(name string, opaque bool) error {
	for _, ca := range sc.CustomAlphas {
		if ca.Name == name {
			return fmt.Errorf("scene: duplicate custom alpha %q", name)
		}
	}
	sc.CustomAlphas = append(sc.CustomAlphas, CustomAlpha{Name: name, Opaque: opaque})
	return nil
}

// Remove a custom alpha channel and its object memberships. Returns false if
// there is no such channel.
func (sc *Scene) RemoveCustomAlphaChannel(name string) bool {
	for i, ca := range sc.CustomAlphas {
		if ca.Name != name {
			continue
		}
		sc.CustomAlphas = append(sc.CustomAlphas[:i], sc.CustomAlphas[i+1:]...)
		for _, o := range sc.Objects {
			kept := o.CustomAlphas[:0]
			for _, n := range o.CustomAlphas {
				if n != name {
					kept = append(kept, n)
				}
			}
			o.CustomAlphas = kept
		}
		return true
	}
	return false
}

// Add an object to a custom alpha channel.
func (sc *Scene) AddToCustomAlpha(o *Object, name string) error {
	found := false
	for _, ca := range sc.CustomAlphas {
		if ca.Name == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("scene: unknown custom alpha %q", name)
	}
	for _, n := range o.CustomAlphas {
		if n == name {
			return nil
		}
	}
	o.CustomAlphas = append(o.CustomAlphas, name)
	return nil
}
