package archive

import (
	"bytes"
	"testing"

	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/types"
)

func TestSceneRoundTrip(t *testing.T) {
	sc := scene.NewScene()
	sc.SetPluginID("blender")
	m, err := sc.CreateMaterial("red")
	if err != nil {
		t.Fatal(err)
	}
	m.AddLayer().AddBSDF()

	o, err := sc.CreateMesh("tri", 3, 3, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	o.SetMaterial(m)
	if err = o.SetVertex(1, 0, types.Vec3{1, 0, 0}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err = EncodeScene(&buf, sc); err != nil {
		t.Fatal(err)
	}

	out, err := DecodeScene(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if out.PluginID != "blender" {
		t.Fatalf("expected plugin id to be %q; got %q", "blender", out.PluginID)
	}
	got := out.GetObject("tri")
	if got == nil {
		t.Fatal("expected decoded scene to contain object tri")
	}
	if got.Material != "red" {
		t.Fatalf("expected object material to be %q; got %q", "red", got.Material)
	}
	if v := got.Mesh.Vertices[0][1]; v != (types.Vec3{1, 0, 0}) {
		t.Fatalf("expected vertex 1 to be %v; got %v", types.Vec3{1, 0, 0}, v)
	}
	if out.GetMaterial("red") == nil {
		t.Fatal("expected decoded scene to contain material red")
	}
}

func TestSceneRoundTripKeepsZeroValues(t *testing.T) {
	sc := scene.NewScene()
	sc.Environment.SetEnvironmentWeight(0)
	sc.Environment.IBL[scene.IBLRefraction].Intensity = 0
	sc.SetToneMapping(0, 0)
	sc.SetWhitePoint(0, 0)

	var buf bytes.Buffer
	if err := EncodeScene(&buf, sc); err != nil {
		t.Fatal(err)
	}
	out, err := DecodeScene(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if w := out.Environment.EnvironmentWeight; w != 0 {
		t.Fatalf("expected environment weight 0; got %v", w)
	}
	if v := out.Environment.IBL[scene.IBLRefraction].Intensity; v != 0 {
		t.Fatalf("expected refraction intensity 0; got %v", v)
	}
	if v := out.Environment.IBL[scene.IBLBackground].Intensity; v != 1 {
		t.Fatalf("expected background intensity 1; got %v", v)
	}
	if out.ToneMapping.Gamma != 0 {
		t.Fatalf("expected tone mapping gamma 0; got %v", out.ToneMapping.Gamma)
	}
	if out.WhitePoint.Temperature != 0 {
		t.Fatalf("expected white point temperature 0; got %v", out.WhitePoint.Temperature)
	}

	// Decoded scenes accept new content.
	if _, err = out.CreateEmpty("root"); err != nil {
		t.Fatal(err)
	}
	if err = out.SetRenderParameter("ENGINE", "RS1"); err != nil {
		t.Fatal(err)
	}
	out.SetPath("MXI", "/tmp/out.mxi", 32)

	sc = scene.NewScene()
	sc.Environment = nil
	buf.Reset()
	if err = EncodeScene(&buf, sc); err != nil {
		t.Fatal(err)
	}
	if out, err = DecodeScene(&buf); err != nil {
		t.Fatal(err)
	}
	if out.Environment == nil {
		t.Fatal("expected a decoded scene without environment to get a default one")
	}
}

func TestMaterialRoundTrip(t *testing.T) {
	m := scene.NewMaterial("lamp")
	l := m.AddLayer()
	e := l.CreateEmitter()
	e.State = true

	var buf bytes.Buffer
	if err := EncodeMaterial(&buf, m); err != nil {
		t.Fatal(err)
	}
	out, err := DecodeMaterial(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !out.IsEmitter() {
		t.Fatal("expected decoded material to be an emitter")
	}
}

func TestWrongContainer(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeMaterial(&buf, scene.NewMaterial("a")); err != nil {
		t.Fatal(err)
	}
	if _, err := DecodeScene(&buf); err == nil {
		t.Fatal("expected decoding a material container as a scene to fail")
	}
	if _, err := DecodeScene(bytes.NewReader([]byte("not a zip"))); err == nil {
		t.Fatal("expected decoding garbage to fail")
	}
}

func TestExtensionObjectRoundTrip(t *testing.T) {
	sc := scene.NewScene()
	pl := scene.NewParamList("MaxwellParticles")
	pl.SetFloatArray("PARTICLE_POSITIONS", []float64{0, 1, 2})
	pl.SetIntArray("PARTICLE_IDS", []int32{9})
	pl.SetInt("Frame#", 3)
	o, err := sc.CreateGeometryProcedural("drops", pl)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = o.AddChannelUVW(); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err = EncodeScene(&buf, sc); err != nil {
		t.Fatal(err)
	}
	out, err := DecodeScene(&buf)
	if err != nil {
		t.Fatal(err)
	}
	got := out.GetObject("drops")
	if got == nil || got.Type != scene.ObjectProcedural || got.GeneratedUVWs != 1 {
		t.Fatalf("expected procedural object with one generated uvw channel; got %+v", got)
	}
	if p, ok := got.Geometry.Get("PARTICLE_POSITIONS"); !ok || len(p.Floats) != 3 || p.Floats[2] != 2 {
		t.Fatalf("expected particle positions to survive; got %v", p)
	}
	if p, _ := got.Geometry.Get("PARTICLE_IDS"); len(p.Ints) != 1 || p.Ints[0] != 9 {
		t.Fatalf("expected particle ids to survive; got %v", p)
	}
	if p, _ := got.Geometry.Get("Frame#"); p.Int != 3 {
		t.Fatalf("expected frame 3; got %d", p.Int)
	}
}
