package compiler

import (
	"time"

	"github.com/oomer/blendmaxwell/asset"
	"github.com/oomer/blendmaxwell/asset/compiler/input"
	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/asset/texture"
	"github.com/oomer/blendmaxwell/log"
	"github.com/pkg/errors"
)

// Options controlling scene compilation.
type Options struct {
	// Compile into an existing scene instead of a new one.
	Base *scene.Scene

	// Overrides the plugin id of the description when set.
	PluginID string

	// Remove materials that no object references once compiled.
	EraseUnusedMaterials bool

	// Decode the header of every referenced texture and warn about
	// missing or unreadable files.
	InspectTextures bool

	// Relative paths resolve against this resource. Defaults to the
	// resource the description was loaded from.
	RelTo *asset.Resource
}

type sceneCompiler struct {
	desc   *input.Scene
	opts   Options
	writer *Writer
	logger log.Logger
}

// Compile a scene description into a renderer scene.
func Compile(desc *input.Scene, opts Options) (*scene.Scene, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	relTo := opts.RelTo
	if relTo == nil {
		relTo = desc.Source
	}
	compiler := &sceneCompiler{
		desc:   desc,
		opts:   opts,
		writer: NewWriter(opts.Base, relTo),
		logger: log.New("scene compiler"),
	}

	start := time.Now()
	compiler.logger.Noticef("compiling scene")

	steps := []struct {
		name string
		fn   func() error
	}{
		{"materials", compiler.compileMaterials},
		{"objects", compiler.compileObjects},
		{"hierarchy", compiler.compileHierarchy},
		{"cameras", compiler.compileCameras},
		{"environment", compiler.compileEnvironment},
		{"render parameters", compiler.compileParameters},
		{"channels", compiler.compileChannels},
		{"custom alphas", compiler.compileCustomAlphas},
		{"modifiers", compiler.compileModifiers},
		{"wireframe", compiler.compileWireframe},
	}

	compiler.setPluginID()
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return nil, errors.Wrapf(err, "compiling %s", step.name)
		}
	}

	sc := compiler.writer.Scene()
	if opts.EraseUnusedMaterials {
		removed := sc.EraseUnusedMaterials()
		compiler.logger.Infof("erased %d unused material(s)", removed)
	}

	compiler.logger.Noticef("compiled scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return sc, nil
}

func (sc *sceneCompiler) setPluginID() {
	id := sc.desc.PluginID
	if sc.opts.PluginID != "" {
		id = sc.opts.PluginID
	}
	if id != "" {
		sc.writer.Scene().SetPluginID(id)
	}
}

func (sc *sceneCompiler) compileMaterials() error {
	start := time.Now()
	for _, d := range sc.desc.Materials {
		if sc.opts.InspectTextures {
			sc.inspectTextures(d.Name, d.Textures())
		}
		if _, err := sc.writer.AddMaterial(d); err != nil {
			return err
		}
	}
	sc.logger.Infof("processed %d material(s) in %d ms", len(sc.desc.Materials), time.Since(start).Nanoseconds()/1e6)
	return nil
}

func (sc *sceneCompiler) inspectTextures(material string, textures []*texture.Texture) {
	for _, t := range textures {
		info, err := texture.Inspect(t.Path, sc.writer.relTo)
		switch {
		case err == texture.ErrNotInspected:
			sc.logger.Debugf("material %q: skipping inspection of %s", material, t.Path)
		case err != nil:
			sc.logger.Warningf("material %q: %v", material, err)
		default:
			sc.logger.Debugf("material %q: texture %s (%s, %dx%d)", material, info.Path, info.Format, info.Width, info.Height)
		}
	}
}

func (sc *sceneCompiler) compileObjects() error {
	start := time.Now()
	for _, d := range sc.desc.Objects {
		if _, err := sc.writer.Object(d); err != nil {
			return err
		}
	}
	sc.logger.Infof("processed %d object(s) in %d ms", len(sc.desc.Objects), time.Since(start).Nanoseconds()/1e6)
	return nil
}

func (sc *sceneCompiler) compileHierarchy() error {
	return sc.writer.Hierarchy(sc.desc.Hierarchy)
}

func (sc *sceneCompiler) compileCameras() error {
	for _, d := range sc.desc.Cameras {
		if _, err := sc.writer.Camera(d); err != nil {
			return err
		}
	}
	return nil
}

func (sc *sceneCompiler) compileEnvironment() error {
	return sc.writer.Environment(sc.desc.Environment)
}

func (sc *sceneCompiler) compileParameters() error {
	if sc.desc.Parameters == nil {
		return nil
	}
	return sc.writer.Parameters(sc.desc.Parameters)
}

func (sc *sceneCompiler) compileChannels() error {
	if sc.desc.Channels == nil {
		return nil
	}
	return sc.writer.Channels(sc.desc.Channels)
}

func (sc *sceneCompiler) compileCustomAlphas() error {
	return sc.writer.CustomAlphas(sc.desc.CustomAlphas)
}

func (sc *sceneCompiler) compileModifiers() error {
	for _, d := range sc.desc.Subdivisions {
		if err := sc.writer.Subdivision(d); err != nil {
			return err
		}
	}
	for _, d := range sc.desc.Scatters {
		if err := sc.writer.Scatter(d); err != nil {
			return err
		}
	}
	for _, d := range sc.desc.Grass {
		if err := sc.writer.Grass(d); err != nil {
			return err
		}
	}
	for _, d := range sc.desc.Cloners {
		if err := sc.writer.Cloner(d); err != nil {
			return err
		}
	}
	return nil
}

func (sc *sceneCompiler) compileWireframe() error {
	if sc.desc.Wireframe == nil {
		return nil
	}
	return sc.writer.Wireframe(sc.desc.Wireframe)
}
