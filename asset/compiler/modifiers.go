package compiler

import (
	"fmt"

	"github.com/oomer/blendmaxwell/asset/compiler/input"
	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/asset/texture"
	"github.com/oomer/blendmaxwell/types"
)

// Geometry modifier extension names.
const (
	SubdivisionExtension = "SubdivisionModifier"
	ScatterExtension     = "MaxwellScatter"
	GrassExtension       = "MaxwellGrass"
	ClonerExtension      = "MaxwellCloner"
)

func setTexture(pl *scene.ParamList, name string, t *texture.Texture) {
	if t != nil {
		pl.SetTextureMap(name, t.Map())
	}
}

func (w *Writer) modifierTarget(kind, name string) (*scene.Object, error) {
	o := w.scene.GetObject(name)
	if o == nil {
		return nil, fmt.Errorf("%s modifier: unknown object %q", kind, name)
	}
	return o, nil
}

// Apply a subdivision modifier. Quad pairs only apply to the Catmull-Clark
// scheme.
func (w *Writer) Subdivision(d input.Subdivision) error {
	o, err := w.modifierTarget("subdivision", d.Object)
	if err != nil {
		return err
	}

	pl := scene.NewParamList(SubdivisionExtension)
	pl.SetUInt("Subdivision Level", uint32(d.Level))
	pl.SetUInt("Subdivision Scheme", uint32(d.Scheme))
	pl.SetUInt("Interpolation", uint32(d.Interpolation))
	pl.SetFloat("Crease", d.Crease)
	pl.SetFloat("Smooth Angle", d.SmoothAngle)

	if d.Scheme == input.SchemeCatmullClark {
		for _, q := range d.Quads {
			if err = o.SetTriangleQuadBuddy(q[0], q[1]); err != nil {
				return err
			}
		}
	}

	o.ApplyGeometryModifierExtension(pl)
	return nil
}

// Apply a scatter modifier.
func (w *Writer) Scatter(d input.Scatter) error {
	o, err := w.modifierTarget("scatter", d.Object)
	if err != nil {
		return err
	}

	pl := scene.NewParamList(ScatterExtension)
	pl.SetString("Object", d.ScatterObject)
	pl.SetFlag("Inherit ObjectID", d.InheritObjectID)
	if den := d.Density; den != nil {
		pl.SetFloat("Density", den.Value)
		setTexture(pl, "Density Map", den.Map)
	}
	pl.SetUInt("Seed", uint32(d.Seed))
	pl.SetFlag("Remove Overlapped", d.RemoveOverlapped)

	if s := d.Scale; s != nil {
		pl.SetFloat("Scale X", s.Value[0])
		pl.SetFloat("Scale Y", s.Value[1])
		pl.SetFloat("Scale Z", s.Value[2])
		setTexture(pl, "Scale Map", s.Map)
		pl.SetFloat("Scale X Variation", s.Variation[0])
		pl.SetFloat("Scale Y Variation", s.Variation[1])
		pl.SetFloat("Scale Z Variation", s.Variation[2])
		pl.SetFlag("Uniform Scale", s.Uniform)
	}
	if r := d.Rotation; r != nil {
		pl.SetFloat("Rotation X", r.Value[0])
		pl.SetFloat("Rotation Y", r.Value[1])
		pl.SetFloat("Rotation Z", r.Value[2])
		setTexture(pl, "Rotation Map", r.Map)
		pl.SetFloat("Rotation X Variation", r.Variation[0])
		pl.SetFloat("Rotation Y Variation", r.Variation[1])
		pl.SetFloat("Rotation Z Variation", r.Variation[2])
		pl.SetUInt("Direction Type", uint32(r.Direction))
	}
	if l := d.LOD; l != nil {
		pl.SetFlag("Enable LOD", l.Enabled)
		pl.SetFloat("LOD Min Distance", l.MinDistance)
		pl.SetFloat("LOD Max Distance", l.MaxDistance)
		pl.SetFloat("LOD Max Distance Density", l.MaxDistanceDensity)
	}
	// The angle block shares the direction parameter with the rotation
	// block and replaces it when both are present.
	if a := d.Angle; a != nil {
		pl.SetFloat("Direction Type", a.Direction)
		pl.SetFloat("Initial Angle", a.Initial)
		pl.SetFloat("Initial Angle Variation", a.Variation)
		setTexture(pl, "Initial Angle Map", a.Map)
	}

	pl.SetUInt("Display Percent", uint32(d.DisplayPercent))
	pl.SetUInt("Display Max. Blades", uint32(d.DisplayMax))

	o.ApplyGeometryModifierExtension(pl)
	return nil
}

// Apply a grass modifier. Blade materials are stored by name; missing ones
// resolve to the placeholder.
func (w *Writer) Grass(d input.Grass) error {
	o, err := w.modifierTarget("grass", d.Object)
	if err != nil {
		return err
	}

	pl := scene.NewParamList(GrassExtension)
	if d.Material != "" {
		pl.SetString("Material", w.Material(d.Material).Name)
	}
	if d.BackfaceMaterial != "" {
		pl.SetString("Double Sided Material", w.Material(d.BackfaceMaterial).Name)
	}

	pl.SetUInt("Density", uint32(d.Density))
	setTexture(pl, "Density Map", d.DensityMap)
	pl.SetFloat("Length", d.Length.Value)
	setTexture(pl, "Length Map", d.Length.Map)
	pl.SetFloat("Length Variation", d.Length.Variation)
	pl.SetFloat("Root Width", d.RootWidth)
	pl.SetFloat("Tip Width", d.TipWidth)

	pl.SetFloat("Direction Type", d.DirectionType)
	shapes := []struct {
		name  string
		shape input.GrassShape
	}{
		{"Initial Angle", d.InitialAngle},
		{"Start Bend", d.StartBend},
		{"Bend Radius", d.BendRadius},
		{"Bend Angle", d.BendAngle},
		{"Cut Off", d.CutOff},
	}
	for _, s := range shapes {
		pl.SetFloat(s.name, s.shape.Value)
		pl.SetFloat(s.name+" Variation", s.shape.Variation)
		setTexture(pl, s.name+" Map", s.shape.Map)
	}

	pl.SetUInt("Points per Blade", uint32(d.PointsPerBlade))
	pl.SetUInt("Primitive Type", uint32(d.PrimitiveType))
	pl.SetUInt("Seed", uint32(d.Seed))
	pl.SetFlag("Enable LOD", d.LOD.Enabled)
	pl.SetFloat("LOD Min Distance", d.LOD.MinDistance)
	pl.SetFloat("LOD Max Distance", d.LOD.MaxDistance)
	pl.SetFloat("LOD Max Distance Density", d.LOD.MaxDistanceDensity)
	pl.SetUInt("Display Percent", uint32(d.DisplayPercent))
	pl.SetUInt("Display Max. Blades", uint32(d.DisplayMax))

	o.ApplyGeometryModifierExtension(pl)
	return nil
}

// Apply a cloner modifier to the cloned object. The particle emitter is
// hidden unless it should render too.
func (w *Writer) Cloner(d input.Cloner) error {
	emitter, err := w.modifierTarget("cloner", d.Object)
	if err != nil {
		return err
	}
	o, err := w.modifierTarget("cloner", d.ClonedObject)
	if err != nil {
		return err
	}

	pl := scene.NewParamList(ClonerExtension)
	setParticleSource(pl, d.ParticleSource)
	pl.SetFloat("Radius Factor", d.RadiusFactor)
	pl.SetFloat("MB Factor", d.MotionBlurFactor)
	pl.SetFloat("Load particles %", d.LoadPercent)
	pl.SetUInt("Start offset", uint32(d.StartOffset))
	pl.SetUInt("Create N particles per particle", uint32(d.ExtraPerParticle))
	pl.SetFloat("Extra particles dispersion", d.ExtraDispersion)
	pl.SetFloat("Extra particles deformation", d.ExtraDeformation)
	pl.SetFlag("Use velocity", d.AlignToVelocity)
	pl.SetFlag("Scale with particle radius", d.ScaleWithRadius)
	pl.SetFlag("Inherit ObjectID", d.InheritObjectID)
	pl.SetInt("Frame#", d.Frame)
	pl.SetFloat("fps", d.FPS)
	pl.SetUInt("Display Percent", uint32(d.DisplayPercent))
	pl.SetUInt("Display Max. Particles", uint32(d.DisplayMax))

	if !d.RenderEmitter {
		emitter.Hide = true
	}
	o.ApplyGeometryModifierExtension(pl)
	return nil
}

// Assign the clay material to every object except the wire base and its
// instances, then collapse the wire base so only its instances render.
func (w *Writer) Wireframe(d *input.Wireframe) error {
	base, err := w.modifierTarget("wireframe", d.WireBase)
	if err != nil {
		return err
	}

	clay := w.Material(d.ClayMaterial)
	for _, o := range w.scene.Objects {
		if o.Name == d.WireBase || (o.IsInstance() && o.Instanced == d.WireBase) {
			continue
		}
		o.SetMaterial(clay)
	}

	base.SetBaseAndPivot(types.ZeroBase(), types.IdentBase())
	base.SetScale(types.Vec3{})
	return nil
}
