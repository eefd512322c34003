package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/asset/scene/archive"
	"github.com/oomer/blendmaxwell/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emitterMaterial(name string) *scene.Material {
	m := scene.NewMaterial(name)
	m.AddLayer().CreateEmitter().State = true
	return m
}

func extractionScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc := scene.NewScene()

	lamp, err := sc.AddMaterial(emitterMaterial("lamp"))
	require.NoError(t, err)
	red, err := sc.CreateMaterial("red")
	require.NoError(t, err)
	red.AddLayer().AddBSDF()

	root, err := sc.CreateEmpty("root")
	require.NoError(t, err)
	rootBase := types.IdentBase()
	rootBase.Origin = types.Vec3{0, 1, 0}
	root.SetBaseAndPivot(rootBase, types.IdentBase())

	bulb, err := sc.CreateMesh("bulb", 3, 1, 1, 2)
	require.NoError(t, err)
	bulbBase := types.IdentBase()
	bulbBase.Origin = types.Vec3{1, 0, 0}
	bulb.SetBaseAndPivot(bulbBase, types.IdentBase())
	bulb.SetMaterial(lamp)
	bulb.HideToCamera = true
	bulb.HideToGI = true
	require.NoError(t, sc.SetParent(bulb, "root"))

	wall, err := sc.CreateMesh("wall", 4, 1, 2, 1)
	require.NoError(t, err)
	wall.SetMaterial(red)
	wall.SetColorID(types.RGB{1, 0, 0})
	_, err = wall.AddChannelUVW()
	require.NoError(t, err)

	inst, err := sc.CreateInstancement("bulb.001", bulb)
	require.NoError(t, err)
	inst.SetMaterial(lamp)
	inst.HideToReflectionsRefractions = true

	_, err = sc.CreateReference("ref", "other.mxs")
	require.NoError(t, err)
	return sc
}

func TestObjects(t *testing.T) {
	sc := extractionScene(t)

	objects, err := Objects(sc, false)
	require.NoError(t, err)

	names := make([]string, len(objects))
	for i, o := range objects {
		names[i] = o.Name
	}
	assert.Equal(t, []string{"root", "bulb", "wall", "bulb.001"}, names, "references are skipped")

	bulb := objects[1]
	assert.Equal(t, scene.ObjectMesh, bulb.Type)
	assert.Equal(t, "root", bulb.Parent)
	assert.Equal(t, "C, GI", bulb.Hidden)
	assert.Equal(t, "255, 255, 255", bulb.ColorID)
	assert.Equal(t, []string{"lamp"}, bulb.Materials)
	assert.Equal(t, 3, bulb.NumVertices)
	assert.Equal(t, 1, bulb.NumTriangles)
	assert.Equal(t, types.Vec3{1, 0, 0}, bulb.Base.Origin)

	wall := objects[2]
	assert.Equal(t, "255, 0, 0", wall.ColorID)
	assert.Equal(t, "", wall.Hidden)
	assert.Equal(t, 1, wall.NumUVChannels)
	assert.Equal(t, []string{"red"}, wall.Materials)

	inst := objects[3]
	assert.Equal(t, "bulb", inst.Instanced)
	assert.Equal(t, "RR", inst.Hidden)
	assert.Equal(t, []string{"lamp"}, inst.Materials)

	assert.Equal(t, "", objects[0].Hidden, "empties carry no hidden flags")
}

func TestEmitterObjects(t *testing.T) {
	sc := extractionScene(t)

	objects, err := Objects(sc, true)
	require.NoError(t, err)
	require.Len(t, objects, 2)

	bulb := objects[0]
	assert.Equal(t, "bulb", bulb.Name)
	assert.Equal(t, "", bulb.Parent, "emitters are listed without parents")
	assert.Equal(t, types.Vec3{1, 1, 0}, bulb.Base.Origin, "emitters use their world transform")
	assert.Equal(t, types.IdentBase(), bulb.Pivot)
	assert.Equal(t, "bulb.001", objects[1].Name)
}

func TestEmitterRules(t *testing.T) {
	sc := scene.NewScene()
	mixed, err := sc.AddMaterial(emitterMaterial("mixed"))
	require.NoError(t, err)
	mixed.AddLayer().AddBSDF()
	disabled, err := sc.AddMaterial(emitterMaterial("disabled"))
	require.NoError(t, err)
	disabled.Layers[0].Emitter.State = false

	for _, m := range []*scene.Material{mixed, disabled} {
		o, err := sc.CreateMesh(m.Name, 3, 1, 1, 1)
		require.NoError(t, err)
		o.SetMaterial(m)
	}

	// Neither material emits on its own, yet both objects are listed.
	assert.False(t, CheckEmitter(mixed))
	assert.False(t, CheckEmitter(disabled))
	objects, err := Objects(sc, true)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "mixed", objects[0].Name)
	assert.Equal(t, "disabled", objects[1].Name)
}

func TestCameras(t *testing.T) {
	sc := scene.NewScene()

	main, err := sc.AddCamera(&scene.Camera{Name: "main", Shutter: 250, FilmWidth: 0.036, FilmHeight: 0.024, DiaphragmType: "POLYGONAL", Blades: 6, Angle: 60}, 1)
	require.NoError(t, err)
	require.NoError(t, main.SetStep(0, types.Vec3{0, 0, 0}, types.Vec3{0, 0, 3}, types.Vec3{0, 1, 0}, 0.05, 8, true))
	main.SetCutPlanes(0.1, 100, true)
	main.SetShiftLens(5, -5)

	portrait, err := sc.AddCamera(&scene.Camera{Name: "portrait", Shutter: 125, FilmWidth: 0.024, FilmHeight: 0.036}, 1)
	require.NoError(t, err)
	require.NoError(t, portrait.SetStep(0, types.Vec3{0, 0, 0}, types.Vec3{0, 0, 10}, types.Vec3{0, 1, 0}, 0.085, 2.8, true))
	require.NoError(t, sc.SetActiveCamera("main"))

	cams, err := Cameras(sc)
	require.NoError(t, err)
	require.Len(t, cams, 2)

	c := cams[0]
	assert.True(t, c.Active)
	assert.InDelta(t, 50, c.FocalLength, 1e-6, "focal length is uncorrected and reported in mm")
	assert.InDelta(t, 0.004, c.Shutter, 1e-12)
	assert.Equal(t, 36.0, c.FilmWidth)
	assert.Equal(t, 24.0, c.FilmHeight)
	assert.Equal(t, "HORIZONTAL", c.SensorFit)
	assert.True(t, c.ZClip)
	assert.Equal(t, 0.1, c.ZClipNear)
	assert.Equal(t, 100.0, c.ZClipFar)
	assert.Equal(t, 5.0, c.ShiftX)
	assert.Equal(t, -5.0, c.ShiftY)
	assert.Equal(t, "POLYGONAL", c.DiaphragmType)
	assert.Equal(t, 6, c.DiaphragmBlades)
	assert.Equal(t, 8.0, c.FStop)

	p := cams[1]
	assert.False(t, p.Active)
	assert.Equal(t, "VERTICAL", p.SensorFit)
	assert.False(t, p.ZClip)
	assert.Equal(t, 1e6, p.ZClipFar)
	assert.InDelta(t, 85, p.FocalLength, 1e-6)

	// A lone camera is always active.
	single := scene.NewScene()
	only, err := single.AddCamera(&scene.Camera{Name: "only", FilmWidth: 0.036, FilmHeight: 0.024}, 1)
	require.NoError(t, err)
	require.NoError(t, only.SetStep(0, types.Vec3{}, types.Vec3{0, 0, 1}, types.Vec3{0, 1, 0}, 0.035, 4, false))
	cams, err = Cameras(single)
	require.NoError(t, err)
	assert.True(t, cams[0].Active)
}

func TestSun(t *testing.T) {
	sc := scene.NewScene()

	sun, err := Sun(sc)
	require.NoError(t, err)
	assert.Nil(t, sun, "expected no sun while it is disabled")

	sc.Environment.SetSunProperties(scene.SunProperties{Type: scene.SunPhysical})
	sc.Environment.SetSunDirection(types.Vec3{0, 2, 0})
	sun, err = Sun(sc)
	require.NoError(t, err)
	require.NotNil(t, sun)
	assert.Equal(t, SunName, sun.Name)
	assert.Equal(t, types.Vec3{0, 2, 0}, sun.Direction, "explicit directions are reported as stored")

	sc.Environment.SetSunAngles(0, 0)
	sun, err = Sun(sc)
	require.NoError(t, err)
	assert.InDelta(t, 1, sun.Direction[1], 1e-9)
	assert.InDelta(t, 0, sun.Direction[0], 1e-9)
}

func TestProtectedScene(t *testing.T) {
	sc := extractionScene(t)
	sc.EnableProtection(true)

	_, err := Objects(sc, false)
	assert.Equal(t, ErrProtectedScene, err)
	_, err = Cameras(sc)
	assert.Equal(t, ErrProtectedScene, err)
	_, err = Sun(sc)
	assert.Equal(t, ErrProtectedScene, err)
}

func TestCheckEmitter(t *testing.T) {
	disabled := emitterMaterial("disabled")
	disabled.Layers[0].Emitter.State = false

	mixed := emitterMaterial("mixed")
	mixed.AddLayer().AddBSDF()

	type spec struct {
		m   *scene.Material
		exp bool
	}
	specs := []spec{
		{emitterMaterial("lamp"), true},
		{scene.NewMaterial("empty"), false},
		{disabled, false},
		{mixed, false},
	}
	for idx, s := range specs {
		assert.Equal(t, s.exp, CheckEmitter(s.m), "[spec %d] material %s", idx, s.m.Name)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "lamp.mxm")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, archive.EncodeMaterial(f, emitterMaterial("lamp")))
	require.NoError(t, f.Close())

	ok, err := CheckEmitterFile(path)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = CheckEmitterFile(filepath.Join(dir, "missing.mxm"))
	assert.Error(t, err)
}
