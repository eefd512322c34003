package input

import (
	"fmt"
	"strings"

	"github.com/oomer/blendmaxwell/asset"
	"github.com/oomer/blendmaxwell/asset/material"
	"github.com/oomer/blendmaxwell/asset/scene"
)

// A scene description as exported by the host application.
type Scene struct {
	PluginID string `json:"plugin_id"`

	Materials []*material.Material `json:"materials"`
	Objects   []*Object            `json:"objects"`
	Hierarchy []HierarchyEntry     `json:"hierarchy"`
	Cameras   []*Camera            `json:"cameras"`

	Environment *Environment `json:"environment"`
	Parameters  *Parameters  `json:"parameters"`
	Channels    *Channels    `json:"channels"`

	CustomAlphas []CustomAlpha `json:"custom_alphas"`
	Subdivisions []Subdivision `json:"subdivision_modifiers"`
	Scatters     []Scatter     `json:"scatter_modifiers"`
	Grass        []Grass       `json:"grass_modifiers"`
	Cloners      []Cloner      `json:"cloner_modifiers"`
	Wireframe    *Wireframe    `json:"wireframe"`

	// Resource the description was read from; used to resolve relative
	// paths.
	Source *asset.Resource `json:"-"`
}

// Decode a scene description from a JSON resource and validate it.
func Load(res *asset.Resource) (*Scene, error) {
	sc := &Scene{}
	if err := res.DecodeJSON(sc); err != nil {
		return nil, err
	}
	sc.Source = res
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Returned by Validate; lists every problem found in the description.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("scene description has %d problem(s):\n  %s", len(e.Problems), strings.Join(e.Problems, "\n  "))
}

// Validate the description and report all problems at once.
func (sc *Scene) Validate() error {
	var problems []string
	add := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	materials := make(map[string]bool, len(sc.Materials))
	for index, m := range sc.Materials {
		if m == nil {
			add("material %d: null entry", index)
			continue
		}
		if err := m.Validate(); err != nil {
			add("%v", err)
		}
		if materials[m.Name] {
			add("duplicate material name %q", m.Name)
		}
		materials[m.Name] = true
	}

	objects := make(map[string]*Object, len(sc.Objects))
	for index, o := range sc.Objects {
		if o == nil {
			add("object %d: null entry", index)
			continue
		}
		if o.Name == "" {
			add("object %d: missing name", index)
			continue
		}
		if _, exists := objects[o.Name]; exists {
			add("duplicate object name %q", o.Name)
			continue
		}
		if !o.Type.valid() {
			add("object %q: unknown type %q", o.Name, o.Type)
		}
		if o.Props != nil {
			if err := o.Props.ColorID.Validate(); err != nil {
				add("object %q: color id: %v", o.Name, err)
			}
		}

		switch o.Type {
		case ObjectMesh:
			for _, p := range o.meshProblems() {
				add("object %q: %s", o.Name, p)
			}
		case ObjectInstance:
			base, found := objects[o.Instanced]
			switch {
			case o.Instanced == "":
				add("object %q: instance without an instanced object", o.Name)
			case !found:
				add("object %q: instanced object %q must be defined before the instance", o.Name, o.Instanced)
			case base.Type != ObjectMesh:
				add("object %q: instanced object %q is not a mesh", o.Name, o.Instanced)
			}
		case ObjectReference:
			if o.Path == "" {
				add("object %q: reference without a path", o.Name)
			}
		default:
			for _, p := range o.extensionProblems() {
				add("object %q: %s", o.Name, p)
			}
		}
		objects[o.Name] = o
	}

	for _, h := range sc.Hierarchy {
		if _, found := objects[h.Object]; !found {
			add("hierarchy: unknown object %q", h.Object)
		}
		if h.Parent != "" {
			if _, found := objects[h.Parent]; !found {
				add("hierarchy: object %q has unknown parent %q", h.Object, h.Parent)
			}
		}
	}

	cameras := make(map[string]bool, len(sc.Cameras))
	for index, c := range sc.Cameras {
		if c == nil {
			add("camera %d: null entry", index)
			continue
		}
		if c.Name == "" {
			add("camera %d: missing name", index)
		}
		if cameras[c.Name] {
			add("duplicate camera name %q", c.Name)
		}
		cameras[c.Name] = true
		if len(c.Steps) == 0 {
			add("camera %q: at least one step is required", c.Name)
		}
		if c.LensType < int(scene.LensThin) || c.LensType > int(scene.LensCylindrical) {
			add("camera %q: unknown lens type %d", c.Name, c.LensType)
		}
	}

	if sc.Environment != nil {
		problems = append(problems, sc.Environment.problems()...)
	}
	if sc.Parameters != nil {
		problems = append(problems, sc.Parameters.problems()...)
	}
	if sc.Channels != nil {
		known := make(map[string]bool, len(scene.Channels))
		for _, ch := range scene.Channels {
			known[ch.Key] = true
		}
		for key := range sc.Channels.Outputs {
			if !known[key] {
				add("channels: unknown channel %q", key)
			}
		}
		switch sc.Channels.ImageDepth {
		case "RGB8", "RGB16", "RGB32":
		default:
			add("channels: unknown image depth %q", sc.Channels.ImageDepth)
		}
	}

	alphas := make(map[string]bool)
	for _, a := range sc.CustomAlphas {
		if a.Name == "" {
			add("custom alpha: missing name")
		}
		if alphas[a.Name] {
			add("duplicate custom alpha %q", a.Name)
		}
		alphas[a.Name] = true
		for _, n := range a.Objects {
			if _, found := objects[n]; !found {
				add("custom alpha %q: unknown object %q", a.Name, n)
			}
		}
	}

	for _, s := range sc.Subdivisions {
		if _, found := objects[s.Object]; !found {
			add("subdivision: unknown object %q", s.Object)
		}
		if s.Scheme != SchemeCatmullClark && s.Scheme != SchemeLoop {
			add("subdivision %q: unknown scheme %d", s.Object, s.Scheme)
		}
	}
	for _, s := range sc.Scatters {
		if _, found := objects[s.Object]; !found {
			add("scatter: unknown object %q", s.Object)
		}
		if _, found := objects[s.ScatterObject]; !found {
			add("scatter %q: unknown scatter object %q", s.Object, s.ScatterObject)
		}
		for _, m := range s.maps() {
			if m == nil {
				continue
			}
			if err := m.Validate(); err != nil {
				add("scatter %q: %v", s.Object, err)
			}
		}
	}

	for _, g := range sc.Grass {
		if _, found := objects[g.Object]; !found {
			add("grass: unknown object %q", g.Object)
		}
		for _, m := range g.maps() {
			if m == nil {
				continue
			}
			if err := m.Validate(); err != nil {
				add("grass %q: %v", g.Object, err)
			}
		}
	}
	for _, c := range sc.Cloners {
		if _, found := objects[c.Object]; !found {
			add("cloner: unknown object %q", c.Object)
		}
		if _, found := objects[c.ClonedObject]; !found {
			add("cloner %q: unknown cloned object %q", c.Object, c.ClonedObject)
		}
		for _, p := range c.problems() {
			add("cloner %q: %s", c.Object, p)
		}
	}

	if w := sc.Wireframe; w != nil {
		if _, found := objects[w.WireBase]; !found {
			add("wireframe: unknown wire base %q", w.WireBase)
		}
		if w.ClayMaterial == "" {
			add("wireframe: missing clay material")
		}
	}

	if len(problems) != 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func (o *Object) meshProblems() []string {
	var out []string
	if o.NumPositions < 1 {
		out = append(out, fmt.Sprintf("num_positions must be at least 1; got %d", o.NumPositions))
		return out
	}
	if len(o.Vertices) != o.NumPositions || len(o.Normals) != o.NumPositions {
		out = append(out, fmt.Sprintf("expected %d vertex and normal positions; got %d and %d", o.NumPositions, len(o.Vertices), len(o.Normals)))
		return out
	}
	if len(o.TriangleNormals) != 0 && len(o.TriangleNormals) != o.NumPositions {
		out = append(out, fmt.Sprintf("expected %d triangle normal positions; got %d", o.NumPositions, len(o.TriangleNormals)))
	}

	nv, nn := o.NumVertices(), o.NumNormals()
	for p := 0; p < o.NumPositions; p++ {
		if len(o.Vertices[p]) != nv {
			out = append(out, fmt.Sprintf("position %d has %d vertices; expected %d", p, len(o.Vertices[p]), nv))
		}
		if len(o.Normals[p]) != len(o.Normals[0]) {
			out = append(out, fmt.Sprintf("position %d has %d normals; expected %d", p, len(o.Normals[p]), len(o.Normals[0])))
		}
	}
	for ti, tri := range o.Triangles {
		for i := 0; i < 3; i++ {
			if tri[i] < 0 || tri[i] >= nv {
				out = append(out, fmt.Sprintf("triangle %d: vertex index %d out of range", ti, tri[i]))
			}
			if tri[i+3] < 0 || tri[i+3] >= nn {
				out = append(out, fmt.Sprintf("triangle %d: normal index %d out of range", ti, tri[i+3]))
			}
		}
	}
	for ci, ch := range o.UVChannels {
		if len(ch) != len(o.Triangles) {
			out = append(out, fmt.Sprintf("uv channel %d has %d entries; expected %d", ci, len(ch), len(o.Triangles)))
		}
	}
	for _, tm := range o.TriangleMaterials {
		if tm[0] < 0 || tm[0] >= len(o.Triangles) {
			out = append(out, fmt.Sprintf("triangle material: triangle %d out of range", tm[0]))
		}
		if tm[1] < 0 {
			out = append(out, fmt.Sprintf("triangle material: negative slot %d", tm[1]))
		}
	}
	return out
}
