package compiler

import (
	"fmt"

	"github.com/oomer/blendmaxwell/asset/compiler/input"
	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/types"
)

// Apply an object placement. Location and rotation are mirrored onto the
// pivot.
func setBaseAndPivot(o *scene.Object, m input.Matrix) {
	o.SetBaseAndPivot(types.BaseFromRows(m.Base), types.BaseFromRows(m.Pivot))
	o.SetPivotPosition(m.Location)
	o.SetPivotRotation(m.Rotation)
	o.SetPosition(m.Location)
	o.SetRotation(m.Rotation)
	o.SetScale(m.Scale)
}

func setObjectProps(o *scene.Object, p *input.ObjectProps) {
	if p == nil {
		return
	}
	o.Hide = p.Hide
	o.Opacity = p.Opacity
	o.SetColorID(p.ColorID.RGB())
	o.HideToCamera = p.HideCamera
	o.HideToCameraInShadowsPass = p.HideCameraShadows
	o.HideToGI = p.HideGI
	o.HideToReflectionsRefractions = p.HideReflectionsRefractions
	o.ExcludedOfCutPlanes = p.ExcludeCutPlanes
	for _, name := range p.BlockedEmitters {
		o.AddExcludedLight(name)
	}
}

// Add an object of any supported type.
func (w *Writer) Object(d *input.Object) (*scene.Object, error) {
	w.replaceExisting("object", d.Name, w.scene.RemoveObject)
	switch d.Type {
	case input.ObjectEmpty:
		return w.Empty(d)
	case input.ObjectMesh:
		return w.Mesh(d)
	case input.ObjectInstance:
		return w.Instance(d)
	case input.ObjectReference:
		return w.Reference(d)
	case input.ObjectParticles:
		return w.Particles(d)
	case input.ObjectHair:
		return w.Hair(d)
	case input.ObjectSea:
		return w.Sea(d)
	case input.ObjectVolumetrics:
		return w.Volumetrics(d)
	}
	return nil, fmt.Errorf("object %q: unsupported type %q", d.Name, d.Type)
}

// Add an empty object.
func (w *Writer) Empty(d *input.Object) (*scene.Object, error) {
	o, err := w.scene.CreateEmpty(d.Name)
	if err != nil {
		return nil, err
	}
	setBaseAndPivot(o, d.Placement())
	setObjectProps(o, d.Props)
	return o, nil
}

// Add a mesh object. Triangle normals are stored after the vertex normals of
// each position. Meshes with more than one material assign materials per
// triangle; slots that do not resolve use the placeholder.
func (w *Writer) Mesh(d *input.Object) (*scene.Object, error) {
	o, err := w.scene.CreateMesh(d.Name, d.NumVertices(), d.NumNormals(), len(d.Triangles), d.NumPositions)
	if err != nil {
		return nil, err
	}
	for range d.UVChannels {
		if _, err = o.AddChannelUVW(); err != nil {
			return nil, err
		}
	}

	for p := 0; p < d.NumPositions; p++ {
		for i, v := range d.Vertices[p] {
			if err = o.SetVertex(i, p, v); err != nil {
				return nil, err
			}
		}
		for i, n := range d.Normals[p] {
			if err = o.SetNormal(i, p, n); err != nil {
				return nil, err
			}
		}
		if p >= len(d.TriangleNormals) {
			continue
		}
		offset := len(d.Normals[p])
		for i, n := range d.TriangleNormals[p] {
			if err = o.SetNormal(offset+i, p, n); err != nil {
				return nil, err
			}
		}
	}

	for i, t := range d.Triangles {
		if err = o.SetTriangle(i, t[0], t[1], t[2], t[3], t[4], t[5]); err != nil {
			return nil, err
		}
	}
	for ch, uvs := range d.UVChannels {
		for tri, uvw := range uvs {
			if err = o.SetTriangleUVW(tri, ch, uvw); err != nil {
				return nil, err
			}
		}
	}

	setBaseAndPivot(o, d.Placement())
	setObjectProps(o, d.Props)

	if len(d.Materials) > 1 {
		mats := make([]*scene.Material, len(d.Materials))
		for i, name := range d.Materials {
			mats[i] = w.Material(name)
		}
		for _, tm := range d.TriangleMaterials {
			m := w.Placeholder()
			if tm[1] >= 0 && tm[1] < len(mats) {
				m = mats[tm[1]]
			}
			if err = o.SetTriangleMaterial(tm[0], m); err != nil {
				return nil, err
			}
		}
	} else if len(d.Materials) == 1 && d.Materials[0] != "" {
		o.SetMaterial(w.Material(d.Materials[0]))
	}
	w.setBackfaceMaterial(o, d.BackfaceMaterial)
	return o, nil
}

// Add an instance of a previously added object. Multi-material instances
// inherit the materials of their base.
func (w *Writer) Instance(d *input.Object) (*scene.Object, error) {
	base := w.scene.GetObject(d.Instanced)
	if base == nil {
		return nil, fmt.Errorf("object %q: instanced object %q not found", d.Name, d.Instanced)
	}
	o, err := w.scene.CreateInstancement(d.Name, base)
	if err != nil {
		return nil, err
	}
	setBaseAndPivot(o, d.Placement())
	setObjectProps(o, d.Props)

	if len(d.Materials) == 1 && d.Materials[0] != "" {
		o.SetMaterial(w.Material(d.Materials[0]))
	}
	w.setBackfaceMaterial(o, d.BackfaceMaterial)
	return o, nil
}

var referenceFlags = [4]scene.ReferenceOverride{
	scene.OverrideHide,
	scene.OverrideHideToCamera,
	scene.OverrideHideToReflectionsRefractions,
	scene.OverrideHideToGI,
}

// Add a reference to another scene file.
func (w *Writer) Reference(d *input.Object) (*scene.Object, error) {
	o, err := w.scene.CreateReference(d.Name, d.Path)
	if err != nil {
		return nil, err
	}
	for i, set := range d.Flags {
		if set {
			o.SetReferencedOverrideFlags(referenceFlags[i])
		}
	}
	setBaseAndPivot(o, d.Placement())
	setObjectProps(o, d.Props)

	if len(d.Materials) > 0 && d.Materials[0] != "" {
		o.SetMaterial(w.Material(d.Materials[0]))
	}
	w.setBackfaceMaterial(o, d.BackfaceMaterial)
	return o, nil
}

func (w *Writer) setBackfaceMaterial(o *scene.Object, name string) {
	if name != "" {
		o.SetBackfaceMaterial(w.Material(name))
	}
}

// Parent objects. Entries without a parent keep the object at the root.
func (w *Writer) Hierarchy(entries []input.HierarchyEntry) error {
	for _, h := range entries {
		if h.Parent == "" {
			continue
		}
		o := w.scene.GetObject(h.Object)
		if o == nil {
			return fmt.Errorf("hierarchy: unknown object %q", h.Object)
		}
		if err := w.scene.SetParent(o, h.Parent); err != nil {
			return err
		}
	}
	return nil
}

// Group objects into custom alpha channels.
func (w *Writer) CustomAlphas(groups []input.CustomAlpha) error {
	for _, g := range groups {
		w.replaceExisting("custom alpha", g.Name, w.scene.RemoveCustomAlphaChannel)
		if err := w.scene.CreateCustomAlphaChannel(g.Name, g.Opaque); err != nil {
			return err
		}
		for _, name := range g.Objects {
			o := w.scene.GetObject(name)
			if o == nil {
				return fmt.Errorf("custom alpha %q: unknown object %q", g.Name, name)
			}
			if err := w.scene.AddToCustomAlpha(o, g.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
