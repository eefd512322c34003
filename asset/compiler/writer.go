package compiler

import (
	"github.com/jinzhu/copier"
	"github.com/oomer/blendmaxwell/asset"
	"github.com/oomer/blendmaxwell/asset/material"
	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/log"
)

// The template every placeholder material is copied from.
var placeholderTemplate = buildPlaceholder(material.PlaceholderName)

// Build a material with a single layer and BSDF whose reflectance color is
// driven by a checker procedural texture.
func buildPlaceholder(name string) *scene.Material {
	m := scene.NewMaterial(name)
	b := m.AddLayer().AddBSDF()

	checker := scene.NewParamList(material.PlaceholderChecker)
	checker.SetUInt("Number of elements U", material.PlaceholderCheckerElements)
	checker.SetUInt("Number of elements V", material.PlaceholderCheckerElements)

	tm := scene.NewTextureMap()
	tm.AddProceduralTexture(checker)
	b.Reflectance.SetAttribute(scene.AttrColor, scene.BitmapAttribute(tm))
	return m
}

// Create a placeholder material with the given name.
func newPlaceholder(name string) *scene.Material {
	m := new(scene.Material)
	if err := copier.CopyWithOption(m, placeholderTemplate, copier.Option{DeepCopy: true}); err != nil {
		m = buildPlaceholder(name)
	}
	m.Name = name
	return m
}

// A Writer populates a renderer scene through the object model setters.
type Writer struct {
	scene  *scene.Scene
	logger log.Logger

	// Relative external material and texture paths are resolved against
	// this resource.
	relTo *asset.Resource

	// The shared placeholder returned for missing materials.
	placeholder *scene.Material

	// Set when writing into an existing scene.
	appending bool
}

// Create a writer for sc. A nil scene starts a new empty one. When writing
// into an existing scene, materials, objects, cameras and custom alphas named
// like an existing entry replace it.
func NewWriter(sc *scene.Scene, relTo *asset.Resource) *Writer {
	appending := sc != nil
	if sc == nil {
		sc = scene.NewScene()
	}
	return &Writer{
		scene:     sc,
		logger:    log.New("scene writer"),
		relTo:     relTo,
		appending: appending,
	}
}

// Drop a base scene entry that is about to be written again.
func (w *Writer) replaceExisting(kind, name string, remove func(string) bool) {
	if w.appending && remove(name) {
		w.logger.Infof("replacing %s %q of the existing scene", kind, name)
	}
}

// Get the scene being written.
func (w *Writer) Scene() *scene.Scene {
	return w.scene
}

// Lookup a material by name. If the scene has no such material the
// placeholder material is returned instead; it is created on first use and
// reused by every following lookup.
func (w *Writer) Material(name string) *scene.Material {
	if m := w.scene.GetMaterial(name); m != nil {
		return m
	}
	w.logger.Debugf("material %q not found; using %s", name, material.PlaceholderName)
	return w.Placeholder()
}

// Get the shared placeholder material, adding it to the scene if needed.
func (w *Writer) Placeholder() *scene.Material {
	if w.placeholder != nil {
		return w.placeholder
	}

	// Scenes opened for appending may already carry one.
	if m := w.scene.GetMaterial(material.PlaceholderName); m != nil {
		w.placeholder = m
		return m
	}

	m, err := w.scene.AddMaterial(newPlaceholder(material.PlaceholderName))
	if err != nil {
		// Only reachable for an empty or duplicate name; neither applies here.
		w.logger.Errorf("could not add placeholder material: %v", err)
		m = newPlaceholder(material.PlaceholderName)
	}
	w.placeholder = m
	return m
}

// Compile a material description and add it to the scene.
func (w *Writer) AddMaterial(d *material.Material) (*scene.Material, error) {
	m, err := CompileMaterial(d, w.relTo)
	if err != nil {
		return nil, err
	}
	w.replaceExisting("material", m.Name, w.scene.RemoveMaterial)
	return w.scene.AddMaterial(m)
}
