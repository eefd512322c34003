package compiler

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/oomer/blendmaxwell/asset/compiler/input"
	"github.com/oomer/blendmaxwell/asset/material"
	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extensionScene = `{
	"materials": [
		{"name": "water", "subtype": "EXTENSION", "use": "OPAQUE", "opaque": {}},
		{"name": "blade", "subtype": "EXTENSION", "use": "OPAQUE", "opaque": {}}
	],
	"objects": [
		{
			"name": "ground",
			"type": "MESH",
			"num_positions": 1,
			"vertices": [[[0, 0, 0], [1, 0, 0], [0, 1, 0]]],
			"normals": [[[0, 0, 1], [0, 0, 1], [0, 0, 1]]],
			"triangles": [[0, 1, 2, 0, 1, 2]]
		},
		{
			"name": "drops",
			"type": "PARTICLES",
			"matrix": {"location": [0, 0, 2]},
			"materials": ["water"],
			"particles": {
				"pdata": {"positions": [0, 0, 0, 1, 1, 1], "radii": [0.1, 0.2], "ids": [7, 8]},
				"load": {"age": true},
				"ranges": {"age": [0, 5], "nneighbors": [1, 9]}
			}
		},
		{"name": "fur", "type": "HAIR", "hair": {"root_radius": 0.1, "tip_radius": 0.01, "data": {
			"major_version": [2, 0, 0, 0],
			"guides_count": 1,
			"guides_point_count": 2,
			"points": [0, 0, 0, 0, 0, 1],
			"root_uvs": [0.5, 0.5]
		}}},
		{"name": "lawn", "type": "HAIR", "hair": {"extension": "MGrassP", "data": {"guides_count": 0}}},
		{"name": "ocean", "type": "SEA", "materials": ["water"], "sea": {
			"geometry": {"resolution": 6, "ocean_seed": 4, "enable_choppyness": true},
			"wind": {"ocean_wind_mod": 30, "ocean_wind_dir": 45}
		}},
		{"name": "fog", "type": "VOLUMETRICS", "volumetrics": {"density": 0.5}},
		{"name": "smoke", "type": "VOLUMETRICS", "volumetrics": {"type": 2, "density": 1, "seed": 3, "octaves": 4, "persistence": 0.6}},
		{"name": "pebble", "type": "MESH", "num_positions": 1,
			"vertices": [[[0, 0, 0], [1, 0, 0], [0, 1, 0]]],
			"normals": [[[0, 0, 1], [0, 0, 1], [0, 0, 1]]],
			"triangles": [[0, 1, 2, 0, 1, 2]]
		},
		{"name": "emitter", "type": "EMPTY"}
	],
	"grass_modifiers": [{
		"object": "ground",
		"material": "blade",
		"backface_material": "ghost",
		"density": 500,
		"bend_angle": {"value": 30, "variation": 10},
		"lod": {"enabled": true, "max_distance": 80}
	}],
	"cloner_modifiers": [{
		"object": "emitter",
		"cloned_object": "pebble",
		"filename": "/tmp/pebbles.bin",
		"scale_with_radius": true,
		"fps": 30
	}]
}`

func TestParticles(t *testing.T) {
	sc := compile(t, extensionScene, Options{})

	o := sc.GetObject("drops")
	require.NotNil(t, o)
	assert.Equal(t, scene.ObjectProcedural, o.Type)
	assert.Equal(t, 1, o.GeneratedUVWs)
	assert.Equal(t, "water", o.Material)
	assert.Equal(t, 2.0, o.Position[2])

	pl := o.Geometry
	require.NotNil(t, pl)
	assert.Equal(t, ParticlesExtension, pl.Extension)
	assert.Equal(t, []float64{0, 0, 0, 1, 1, 1}, param(t, pl, "PARTICLE_POSITIONS").Floats)
	assert.Equal(t, []int32{7, 8}, param(t, pl, "PARTICLE_IDS").Ints)
	_, hasFile := pl.Get("FileName")
	assert.False(t, hasFile)

	assert.Equal(t, 1.0, param(t, pl, "Radius Factor").Float)
	assert.Equal(t, 125.0, param(t, pl, "Shutter 1/").Float)
	frame := param(t, pl, "Frame#")
	assert.Equal(t, scene.ParamInt, frame.Kind)
	assert.Equal(t, int32(1), frame.Int)
	assert.Equal(t, uint8(1), param(t, pl, "Load particle Age").Byte)
	assert.Equal(t, uint8(0), param(t, pl, "Load particle Force").Byte)
	assert.Equal(t, 5.0, param(t, pl, "Max Age").Float)
	assert.Equal(t, int32(9), param(t, pl, "Max Nneighbors").Int)
}

func TestHair(t *testing.T) {
	sc := compile(t, extensionScene, Options{})

	specs := []struct {
		object      string
		extension   string
		expChannels int
		expFlag     byte
	}{
		{"fur", input.HairStrands, 3, 1},
		{"lawn", input.HairGrass, 2, 0},
	}
	for index, spec := range specs {
		o := sc.GetObject(spec.object)
		require.NotNil(t, o, "spec %d", index)
		assert.Equal(t, spec.extension, o.Geometry.Extension, "spec %d", index)
		assert.Equal(t, spec.expChannels, o.GeneratedUVWs, "spec %d", index)
		assert.Equal(t, []byte{spec.expFlag}, param(t, o.Geometry, "HAIR_FLAG_ROOT_UVS").Bytes, "spec %d", index)
		assert.Equal(t, uint32(10), param(t, o.Geometry, "Display Percent").UInt, "spec %d", index)
	}

	fur := sc.GetObject("fur").Geometry
	assert.Equal(t, []byte{1, 0, 0, 0}, param(t, fur, "HAIR_GUIDES_COUNT").Bytes)
	assert.Equal(t, []byte{2, 0, 0, 0}, param(t, fur, "HAIR_GUIDES_POINT_COUNT").Bytes)
	assert.Equal(t, []byte{2, 0, 0, 0}, param(t, fur, "HAIR_MAJOR_VER").Bytes)
	assert.Equal(t, []float64{0.5, 0.5}, param(t, fur, "HAIR_ROOT_UVS").Floats)
	assert.Equal(t, 0.1, param(t, fur, "Root Radius").Float)

	_, ok := sc.GetObject("lawn").Geometry.Get("HAIR_ROOT_UVS")
	assert.False(t, ok)
}

func TestSea(t *testing.T) {
	sc := compile(t, extensionScene, Options{})

	o := sc.GetObject("ocean")
	require.NotNil(t, o)
	assert.Equal(t, scene.ObjectLoader, o.Type)
	assert.Equal(t, "water", o.Material)

	pl := o.Geometry
	assert.Equal(t, SeaExtension, pl.Extension)
	assert.Equal(t, uint32(6), param(t, pl, "Resolution").UInt)
	assert.Equal(t, uint32(4), param(t, pl, "Ocean Seed").UInt)
	assert.Equal(t, uint8(1), param(t, pl, "Enable Choppyness").Byte)
	assert.Equal(t, uint8(0), param(t, pl, "Enable White Caps").Byte)
	assert.Equal(t, 30.0, param(t, pl, "Ocean Wind Mod.").Float)
	assert.Equal(t, 45.0, param(t, pl, "Ocean Wind Dir.").Float)
}

func TestVolumetrics(t *testing.T) {
	sc := compile(t, extensionScene, Options{})

	fog := sc.GetObject("fog").Geometry
	assert.Equal(t, VolumetricsExtension, fog.Extension)
	assert.Equal(t, uint8(input.VolumetricConstant), param(t, fog, "Create Constant Density").Byte)
	assert.Equal(t, 0.5, param(t, fog, "ConstantDensity").Float)
	_, ok := fog.Get("Octaves")
	assert.False(t, ok, "constant density must not carry noise parameters")

	smoke := sc.GetObject("smoke").Geometry
	assert.Equal(t, uint8(input.VolumetricNoise), param(t, smoke, "Create Constant Density").Byte)
	assert.Equal(t, uint32(3), param(t, smoke, "Seed").UInt)
	assert.Equal(t, int32(4), param(t, smoke, "Octaves").Int)
	assert.Equal(t, 0.6, param(t, smoke, "Persistance").Float)
}

func TestGrass(t *testing.T) {
	sc := compile(t, extensionScene, Options{EraseUnusedMaterials: true})

	ground := sc.GetObject("ground")
	require.Len(t, ground.Modifiers, 1)
	pl := ground.Modifiers[0]
	assert.Equal(t, GrassExtension, pl.Extension)
	assert.Equal(t, "blade", param(t, pl, "Material").String)
	assert.Equal(t, material.PlaceholderName, param(t, pl, "Double Sided Material").String)
	assert.Equal(t, uint32(500), param(t, pl, "Density").UInt)
	assert.Equal(t, 7.5, param(t, pl, "Length").Float)
	assert.Equal(t, 30.0, param(t, pl, "Bend Angle").Float)
	assert.Equal(t, 10.0, param(t, pl, "Bend Angle Variation").Float)
	assert.Equal(t, 80.0, param(t, pl, "Initial Angle").Float)
	assert.Equal(t, uint8(1), param(t, pl, "Enable LOD").Byte)
	assert.Equal(t, 80.0, param(t, pl, "LOD Max Distance").Float)
	assert.Equal(t, 10.0, param(t, pl, "LOD Min Distance").Float)
	assert.Equal(t, uint32(8), param(t, pl, "Points per Blade").UInt)

	// Blade materials are only referenced through the modifier.
	assert.NotNil(t, sc.GetMaterial("blade"))
	assert.NotNil(t, sc.GetMaterial(material.PlaceholderName))
}

func TestCloner(t *testing.T) {
	sc := compile(t, extensionScene, Options{})

	assert.True(t, sc.GetObject("emitter").Hide)
	pebble := sc.GetObject("pebble")
	require.Len(t, pebble.Modifiers, 1)
	pl := pebble.Modifiers[0]
	assert.Equal(t, ClonerExtension, pl.Extension)
	assert.Equal(t, "/tmp/pebbles.bin", param(t, pl, "FileName").String)
	assert.Equal(t, 100.0, param(t, pl, "Load particles %").Float)
	assert.Equal(t, 30.0, param(t, pl, "fps").Float)
	assert.Equal(t, int32(1), param(t, pl, "Frame#").Int)
	assert.Equal(t, uint8(1), param(t, pl, "Scale with particle radius").Byte)
	assert.Equal(t, uint32(1000), param(t, pl, "Display Max. Particles").UInt)

	payload := strings.Replace(extensionScene, `"scale_with_radius": true,`, `"scale_with_radius": true, "render_emitter": true,`, 1)
	sc = compile(t, payload, Options{})
	assert.False(t, sc.GetObject("emitter").Hide)
}

func TestInvalidExtensions(t *testing.T) {
	specs := []struct {
		payload  string
		expError string
	}{
		{`{"objects": [{"name": "p", "type": "PARTICLES"}]}`, "missing particles block"},
		{`{"objects": [{"name": "p", "type": "PARTICLES", "particles": {}}]}`, "missing particle data or filename"},
		{`{"objects": [{"name": "p", "type": "PARTICLES", "particles": {"filename": "a.bin", "pdata": {}}}]}`, "either embedded or loaded"},
		{`{"objects": [{"name": "p", "type": "PARTICLES", "particles": {"pdata": {"positions": [0, 0]}}}]}`, "expected xyz particle positions"},
		{`{"objects": [{"name": "p", "type": "PARTICLES", "particles": {"pdata": {"positions": [0, 0, 0], "radii": [1, 2]}}}]}`, "expected 1 particle radii"},
		{`{"objects": [{"name": "h", "type": "HAIR", "hair": {"extension": "Fur"}}]}`, `unknown hair extension "Fur"`},
		{`{"objects": [{"name": "h", "type": "HAIR", "hair": {"data": {"guides_count": 2, "guides_point_count": 2, "points": [0, 0, 0]}}}]}`, "expected 12 hair point values"},
		{`{"objects": [{"name": "v", "type": "VOLUMETRICS", "volumetrics": {"type": 3}}]}`, "unknown volumetric type 3"},
		{`{"objects": [{"name": "s", "type": "SEA", "sea": {"geometry": {"resolution": -1}}}]}`, "negative sea resolution"},
		{`{"grass_modifiers": [{"object": "nope"}]}`, `grass: unknown object "nope"`},
		{`{"objects": [{"name": "e", "type": "EMPTY"}], "cloner_modifiers": [{"object": "e", "cloned_object": "x", "filename": "a.bin"}]}`, `unknown cloned object "x"`},
	}

	for index, spec := range specs {
		var desc input.Scene
		require.NoError(t, json.Unmarshal([]byte(spec.payload), &desc), "spec %d", index)
		err := desc.Validate()
		require.Error(t, err, "spec %d", index)
		assert.Contains(t, err.Error(), spec.expError, "spec %d", index)
	}
}
