package scene

import (
	"math"
	"strings"
	"testing"

	"github.com/oomer/blendmaxwell/types"
)

func TestDuplicateNames(t *testing.T) {
	sc := NewScene()
	if _, err := sc.CreateEmpty("root"); err != nil {
		t.Fatal(err)
	}
	if _, err := sc.CreateMesh("root", 3, 1, 1, 1); err == nil {
		t.Fatal("expected duplicate object name error")
	}
	if _, err := sc.CreateMaterial("clay"); err != nil {
		t.Fatal(err)
	}
	if _, err := sc.CreateMaterial("clay"); err == nil {
		t.Fatal("expected duplicate material name error")
	}
	if _, err := sc.CreateMesh("bad", 3, 1, 1, 0); err == nil {
		t.Fatal("expected an error for a mesh without positions")
	}
}

func TestMeshSetters(t *testing.T) {
	sc := NewScene()
	o, err := sc.CreateMesh("tri", 3, 1, 1, 2)
	if err != nil {
		t.Fatal(err)
	}

	for p := 0; p < 2; p++ {
		for i, v := range []types.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}} {
			if err = o.SetVertex(i, p, v); err != nil {
				t.Fatal(err)
			}
		}
		if err = o.SetNormal(0, p, types.Vec3{0, 0, 1}); err != nil {
			t.Fatal(err)
		}
	}
	if err = o.SetVertex(3, 0, types.Vec3{}); err == nil {
		t.Fatal("expected out of range vertex error")
	}
	if err = o.SetTriangle(0, 0, 1, 2, 0, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err = o.SetTriangle(0, 0, 1, 5, 0, 0, 0); err == nil {
		t.Fatal("expected unknown vertex error")
	}

	ch, err := o.AddChannelUVW()
	if err != nil {
		t.Fatal(err)
	}
	if err = o.SetTriangleUVW(0, ch, [9]float64{0, 0, 0, 1, 0, 0, 0, 1, 0}); err != nil {
		t.Fatal(err)
	}

	red, _ := sc.CreateMaterial("red")
	blue, _ := sc.CreateMaterial("blue")
	o.SetMaterial(blue)
	if got := o.TriangleMaterial(0); got != "blue" {
		t.Fatalf("expected triangle to fall back to object material; got %q", got)
	}
	if err = o.SetTriangleMaterial(0, red); err != nil {
		t.Fatal(err)
	}
	if got := o.TriangleMaterial(0); got != "red" {
		t.Fatalf("expected triangle material red; got %q", got)
	}

	empty, _ := sc.CreateEmpty("empty")
	if err = empty.SetVertex(0, 0, types.Vec3{}); err == nil {
		t.Fatal("expected an error when setting geometry on an empty")
	}
}

func TestEraseUnusedMaterials(t *testing.T) {
	sc := NewScene()
	used, _ := sc.CreateMaterial("used")
	back, _ := sc.CreateMaterial("back")
	slot, _ := sc.CreateMaterial("slot")
	sc.CreateMaterial("orphan")

	o, _ := sc.CreateMesh("tri", 3, 1, 1, 1)
	o.SetMaterial(used)
	o.SetBackfaceMaterial(back)
	o.SetTriangleMaterial(0, slot)

	if removed := sc.EraseUnusedMaterials(); removed != 1 {
		t.Fatalf("expected 1 material to be removed; got %d", removed)
	}
	if sc.GetMaterial("orphan") != nil {
		t.Fatal("expected orphan material to be erased")
	}
	for _, name := range []string{"used", "back", "slot"} {
		if sc.GetMaterial(name) == nil {
			t.Fatalf("expected material %q to be kept", name)
		}
	}
}

func TestHierarchy(t *testing.T) {
	sc := NewScene()
	root, _ := sc.CreateEmpty("root")
	child, _ := sc.CreateEmpty("child")
	leaf, _ := sc.CreateEmpty("leaf")

	root.Base.Origin = types.Vec3{10, 0, 0}
	child.Base = types.Base{
		Origin: types.Vec3{0, 1, 0},
		XAxis:  types.Vec3{0, 1, 0},
		YAxis:  types.Vec3{-1, 0, 0},
		ZAxis:  types.Vec3{0, 0, 1},
	}
	leaf.Base.Origin = types.Vec3{1, 0, 0}

	if err := sc.SetParent(child, "root"); err != nil {
		t.Fatal(err)
	}
	if err := sc.SetParent(leaf, "child"); err != nil {
		t.Fatal(err)
	}
	if err := sc.SetParent(root, "leaf"); err == nil {
		t.Fatal("expected a cycle error")
	}
	if err := sc.SetParent(root, "missing"); err == nil {
		t.Fatal("expected an unknown parent error")
	}

	world := sc.WorldTransform(leaf)
	exp := types.Vec3{10, 2, 0}
	for i := range exp {
		if math.Abs(world.Origin[i]-exp[i]) > 1e-12 {
			t.Fatalf("expected leaf world origin %v; got %v", exp, world.Origin)
		}
	}
}

func TestRenderParameters(t *testing.T) {
	sc := NewScene()
	specs := []struct {
		name  string
		value interface{}
		exp   string
	}{
		{"DO MOTION BLUR", true, "1"},
		{"NUM THREADS", 8, "8"},
		{"SAMPLING LEVEL", 12.5, "12.5"},
		{"ENGINE", "RS1", "RS1"},
		{"ZBUFFER RANGE", [2]float64{0, 100}, "0, 100"},
	}

	for specIndex, spec := range specs {
		if err := sc.SetRenderParameter(spec.name, spec.value); err != nil {
			t.Fatalf("[spec %d] %v", specIndex, err)
		}
		v, ok := sc.RenderParameter(spec.name)
		if !ok {
			t.Fatalf("[spec %d] expected parameter %q to be set", specIndex, spec.name)
		}
		if v.Format() != spec.exp {
			t.Fatalf("[spec %d] expected %q; got %q", specIndex, spec.exp, v.Format())
		}
	}

	if err := sc.SetRenderParameter("BAD", struct{}{}); err == nil {
		t.Fatal("expected unsupported value type error")
	}
	if names := sc.RenderParameterNames(); names[0] != "DO MOTION BLUR" {
		t.Fatalf("expected sorted names; got %v", names)
	}
}

func TestCustomAlphas(t *testing.T) {
	sc := NewScene()
	o, _ := sc.CreateEmpty("obj")
	if err := sc.CreateCustomAlphaChannel("fg", true); err != nil {
		t.Fatal(err)
	}
	if err := sc.CreateCustomAlphaChannel("fg", false); err == nil {
		t.Fatal("expected duplicate custom alpha error")
	}
	if err := sc.AddToCustomAlpha(o, "fg"); err != nil {
		t.Fatal(err)
	}
	if err := sc.AddToCustomAlpha(o, "bg"); err == nil {
		t.Fatal("expected unknown custom alpha error")
	}
	if len(o.CustomAlphas) != 1 || o.CustomAlphas[0] != "fg" {
		t.Fatalf("expected object to belong to fg; got %v", o.CustomAlphas)
	}
}

func TestMaterialIsEmitter(t *testing.T) {
	m := NewMaterial("light")
	if m.IsEmitter() {
		t.Fatal("expected material without layers not to be an emitter")
	}

	l1 := m.AddLayer()
	l1.CreateEmitter().State = true
	if !m.IsEmitter() {
		t.Fatal("expected single enabled emitter layer to be an emitter")
	}

	l2 := m.AddLayer()
	if m.IsEmitter() {
		t.Fatal("expected a layer without emitter to make the material a non-emitter")
	}
	if !m.HasEmitterLayer() {
		t.Fatal("expected HasEmitterLayer to report the first layer")
	}
	l2.CreateEmitter()
	if m.IsEmitter() {
		t.Fatal("expected a disabled emitter to make the material a non-emitter")
	}
}

func TestParamList(t *testing.T) {
	pl := NewParamList("Opaque")
	pl.SetFloat("Roughness", 10)
	pl.SetFlag("Clearcoat", true)
	pl.SetFloat("Roughness", 20)
	pl.SetTextureMap("Color Map", nil)

	if len(pl.Params) != 2 {
		t.Fatalf("expected setters to replace by name; got %d params", len(pl.Params))
	}
	p, ok := pl.Get("Roughness")
	if !ok || p.Value() != "20" {
		t.Fatalf("expected Roughness 20; got %v", p)
	}
	if p, _ = pl.Get("Clearcoat"); p.Kind != ParamByte || p.Byte != 1 {
		t.Fatalf("expected Clearcoat flag stored as byte 1; got %v", p)
	}

	pl.SetInt("Frame#", -2)
	pl.SetFloatArray("PARTICLE_RADII", []float64{1, 2})
	pl.SetIntArray("PARTICLE_IDS", []int32{4, 5, 6})
	pl.SetByteArray("HAIR_MAJOR_VER", []byte{1})
	specs := []struct {
		name     string
		expKind  ParamKind
		expValue string
	}{
		{"Frame#", ParamInt, "-2"},
		{"PARTICLE_RADII", ParamFloatArray, "[2 floats]"},
		{"PARTICLE_IDS", ParamIntArray, "[3 ints]"},
		{"HAIR_MAJOR_VER", ParamByteArray, "[1 bytes]"},
	}
	for idx, s := range specs {
		p, ok := pl.Get(s.name)
		if !ok || p.Kind != s.expKind || p.Value() != s.expValue {
			t.Fatalf("[spec %d] expected %s %s; got %s %q", idx, s.expKind, s.expValue, p.Kind, p.Value())
		}
	}
}

func TestExtensionObjects(t *testing.T) {
	sc := NewScene()
	if _, err := sc.CreateGeometryProcedural("bad", NewParamList("")); err == nil {
		t.Fatal("expected an error for a procedural object without an extension")
	}

	o, err := sc.CreateGeometryProcedural("hair", NewParamList("MaxwellHair"))
	if err != nil {
		t.Fatal(err)
	}
	for exp := 0; exp < 3; exp++ {
		if ch, err := o.AddChannelUVW(); err != nil || ch != exp {
			t.Fatalf("expected generated uvw channel %d; got %d (%v)", exp, ch, err)
		}
	}
	if !o.IsExtension() || o.IsMesh() {
		t.Fatal("expected a procedural extension object")
	}

	sea, err := sc.CreateGeometryLoader("sea", NewParamList("MaxwellSea"))
	if err != nil {
		t.Fatal(err)
	}
	if sea.Type != ObjectLoader || sea.Type.String() != "LOADER" {
		t.Fatalf("expected a loader object; got %s", sea.Type)
	}

	// Modifiers holding material names keep those materials alive.
	if _, err = sc.CreateMaterial("blade"); err != nil {
		t.Fatal(err)
	}
	grass := NewParamList("MaxwellGrass")
	grass.SetString("Material", "blade")
	sea.ApplyGeometryModifierExtension(grass)
	if removed := sc.EraseUnusedMaterials(); removed != 0 || sc.GetMaterial("blade") == nil {
		t.Fatalf("expected modifier material to be kept; removed %d", removed)
	}
}

func TestSunDirection(t *testing.T) {
	env := newEnvironment()

	env.SetSunAngles(0, 0)
	dir := env.SunDirectionUsedForRendering()
	if math.Abs(dir[1]-1) > 1e-12 {
		t.Fatalf("expected zenith sun to point up; got %v", dir)
	}

	env.SetSunDirection(types.Vec3{0, 0, 5})
	if dir = env.SunDirectionUsedForRendering(); dir != (types.Vec3{0, 0, 1}) {
		t.Fatalf("expected normalized explicit direction; got %v", dir)
	}

	// Equator at equinox noon puts the sun close to the zenith.
	env.SetSunLongitudeAndLatitude(0, 0, 0, 80, 12)
	dir = env.SunDirectionUsedForRendering()
	if dir[1] < 0.99 {
		t.Fatalf("expected noon sun near the zenith; got %v", dir)
	}
	if math.Abs(dir.Len()-1) > 1e-9 {
		t.Fatalf("expected unit length direction; got %f", dir.Len())
	}
}

func TestStats(t *testing.T) {
	sc := NewScene()
	sc.CreateMesh("tri", 3, 1, 1, 1)
	sc.CreateEmpty("empty")
	sc.CreateMaterial("clay")

	stats := sc.Stats()
	for _, exp := range []string{"Meshes", "Triangles", "Materials", "Total"} {
		if !strings.Contains(stats, exp) {
			t.Fatalf("expected stats to contain %q; got\n%s", exp, stats)
		}
	}
}
