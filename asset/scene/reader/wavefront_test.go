package reader

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/oomer/blendmaxwell/asset"
	"github.com/oomer/blendmaxwell/asset/compiler/input"
	"github.com/oomer/blendmaxwell/asset/material"
	"github.com/oomer/blendmaxwell/types"
)

func readObj(t *testing.T, payload string) *input.Scene {
	t.Helper()
	res := asset.NewResourceFromStream("/tmp/scene.obj", strings.NewReader(payload))
	desc, err := newWavefrontReader().Read(res)
	if err != nil {
		t.Fatal(err)
	}
	return desc
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFloatParser(t *testing.T) {
	expError := `unsupported syntax for "Ni"; expected 1 argument; got 0`
	_, err := parseFloat([]string{"Ni"})
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get %s; got %v", expError, err)
	}

	_, err = parseFloat([]string{"Ni", "not-a-float"})
	if err == nil {
		t.Fatal("expected to get a parse error")
	}

	v, err := parseFloat([]string{"Ni", "3.14"})
	if err != nil {
		t.Fatal(err)
	}
	if v != 3.14 {
		t.Fatalf("expected parsed value to be 3.14; got %f", v)
	}
}

func TestVec2Parser(t *testing.T) {
	expError := `unsupported syntax for "vt"; expected 2 arguments; got 0`
	_, err := parseVec2([]string{"vt"})
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get %s; got %v", expError, err)
	}

	_, err = parseVec2([]string{"vt", "not-a-float", "2"})
	if err == nil {
		t.Fatal("expected to get a parse error")
	}

	v, err := parseVec2([]string{"vt", "3.14", "0"})
	if err != nil {
		t.Fatal(err)
	}
	expVal := types.Vec2{3.14, 0}
	if !reflect.DeepEqual(v, expVal) {
		t.Fatalf("expected parsed value to be %v; got %v", expVal, v)
	}
}

func TestVec3Parser(t *testing.T) {
	expError := `unsupported syntax for "v"; expected 3 arguments; got 0`
	_, err := parseVec3([]string{"v"})
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get %s; got %v", expError, err)
	}

	_, err = parseVec3([]string{"v", "not-a-float", "2", "3"})
	if err == nil {
		t.Fatal("expected to get a parse error")
	}

	v, err := parseVec3([]string{"v", "3.14", "0", "0.4"})
	if err != nil {
		t.Fatal(err)
	}
	expVal := types.Vec3{3.14, 0, 0.4}
	if !reflect.DeepEqual(v, expVal) {
		t.Fatalf("expected parsed value to be %v; got %v", expVal, v)
	}
}

func TestSelectFaceCoordinate(t *testing.T) {
	expError := "index out of bounds"
	type spec struct {
		in        string
		listLen   int
		relOffset int
		out       int
		expError  string
	}
	specs := []spec{
		{"2", 1, 0, -1, expError},
		{"-2", 1, 0, -1, expError},
		{"1", 10, 0, 0, ""}, // indices are 1-based
		{"-1", 10, 0, 9, ""},
		{"1", 10, 4, 4, ""},
	}

	for idx, s := range specs {
		v, err := selectFaceCoordIndex(s.in, s.listLen, s.relOffset)
		if s.expError != "" {
			if err == nil || err.Error() != s.expError {
				t.Fatalf("[spec %d] expected error %s; got %v", idx, s.expError, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[spec %d] unexpected error: %v", idx, err)
		}
		if v != s.out {
			t.Fatalf("[spec %d] expected index to be %d; got %d", idx, s.out, v)
		}
	}
}

func TestQuadWithoutNormals(t *testing.T) {
	desc := readObj(t, `
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)

	if len(desc.Objects) != 1 {
		t.Fatalf("expected 1 object; got %d", len(desc.Objects))
	}
	o := desc.Objects[0]
	if o.Name != "quad" || o.Type != input.ObjectMesh {
		t.Fatalf("expected mesh quad; got %s %q", o.Type, o.Name)
	}
	if o.NumVertices() != 4 {
		t.Fatalf("expected 4 vertices; got %d", o.NumVertices())
	}

	expTriangles := []input.Triangle{
		{0, 1, 2, 0, 0, 0},
		{0, 2, 3, 0, 0, 0},
	}
	if !reflect.DeepEqual(o.Triangles, expTriangles) {
		t.Fatalf("expected triangles to be %v; got %v", expTriangles, o.Triangles)
	}

	expNormals := [][]types.Vec3{{{0, 0, 1}}}
	if !reflect.DeepEqual(o.TriangleNormals, expNormals) {
		t.Fatalf("expected triangle normals to be %v; got %v", expNormals, o.TriangleNormals)
	}
	if o.UVChannels != nil {
		t.Fatalf("expected no uv channels; got %d", len(o.UVChannels))
	}
	if o.TriangleMaterials != nil {
		t.Fatalf("expected no per triangle materials for a single material mesh; got %v", o.TriangleMaterials)
	}
	if o.Placement().Scale != (types.Vec3{1, 1, 1}) {
		t.Fatalf("expected unit scale; got %v", o.Placement().Scale)
	}
}

func TestMultiMaterialMeshes(t *testing.T) {
	desc := readObj(t, `
o a
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
vn 0 0 1
vt 0 0
vt 1 0
vt 0 1
usemtl red
f 1/1/1 2/2/1 3/3/1
usemtl blue
f 1//1 3//1 4//1
o b
f -1 -2 -3
o empty
`)

	if len(desc.Objects) != 2 {
		t.Fatalf("expected meshes without faces to be dropped; got %d objects", len(desc.Objects))
	}

	a := desc.Objects[0]
	if exp := []string{"red", "blue"}; !reflect.DeepEqual(a.Materials, exp) {
		t.Fatalf("expected materials %v; got %v", exp, a.Materials)
	}
	if exp := []input.TriangleMaterial{{0, 0}, {1, 1}}; !reflect.DeepEqual(a.TriangleMaterials, exp) {
		t.Fatalf("expected triangle materials %v; got %v", exp, a.TriangleMaterials)
	}
	if exp := []input.Triangle{{0, 1, 2, 0, 0, 0}, {0, 2, 3, 0, 0, 0}}; !reflect.DeepEqual(a.Triangles, exp) {
		t.Fatalf("expected triangles %v; got %v", exp, a.Triangles)
	}
	if a.NumNormals() != 1 {
		t.Fatalf("expected 1 normal; got %d", a.NumNormals())
	}
	if len(a.UVChannels) != 1 {
		t.Fatalf("expected 1 uv channel; got %d", len(a.UVChannels))
	}
	expUVW := [][9]float64{
		{0, 0, 0, 1, 0, 0, 0, 1, 0},
		{},
	}
	if !reflect.DeepEqual(a.UVChannels[0], expUVW) {
		t.Fatalf("expected uvw %v; got %v", expUVW, a.UVChannels[0])
	}

	// Indices are global to the file; each mesh stores its own copy.
	b := desc.Objects[1]
	expVerts := []types.Vec3{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}}
	if !reflect.DeepEqual(b.Vertices[0], expVerts) {
		t.Fatalf("expected vertices %v; got %v", expVerts, b.Vertices[0])
	}
	if exp := []string{"blue"}; !reflect.DeepEqual(b.Materials, exp) {
		t.Fatalf("expected the selected material to carry over; got %v", b.Materials)
	}

	// Undefined materials are left for the placeholder.
	if len(desc.Materials) != 0 {
		t.Fatalf("expected no material descriptions; got %d", len(desc.Materials))
	}
}

func TestWavefrontErrors(t *testing.T) {
	type spec struct {
		payload  string
		expError string
	}
	specs := []spec{
		{"v 0 0 0\nf 1 1", `expected at least 3 arguments`},
		{"v 0 0 0\nf 1 2 3", `index out of bounds`},
		{"v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2/1 3", `expected each face argument to contain 1 indices`},
		{"instance missing 0 0 0 0 0 0 1 1 1", `unknown mesh with name "missing"`},
		{"usemtl", `unsupported syntax for "usemtl"`},
	}

	for idx, s := range specs {
		res := asset.NewResourceFromStream("/tmp/bad.obj", strings.NewReader(s.payload))
		_, err := newWavefrontReader().Read(res)
		if err == nil || !strings.Contains(err.Error(), s.expError) {
			t.Fatalf("[spec %d] expected error containing %q; got %v", idx, s.expError, err)
		}
	}
}

func TestMaterialLibraryInstanceAndCamera(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scene.mtl", `
newmtl clay
Kd 0.5 0.5 0.5
map_Kd clay.png
newmtl lamp
Ke 1 1 1
newmtl chrome
Ks 1 1 1
newmtl glass
Ks 1 1 1
Ni 1.5
Tf 1 1 1
newmtl unused
Kd 1 0 0
`)
	objPath := writeFile(t, dir, "scene.obj", `
mtllib scene.mtl
camera_fov 90
camera_eye 0 0 5
camera_look 0 0 0
o box
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
usemtl clay
f 1 2 3
usemtl lamp
f 1 3 4
usemtl chrome
f 1 2 5
usemtl glass
f 2 3 5
instance box 1 2 3 0 90 0 2 2 2
instance box 0 0 0 0 0 0 1 1 1
`)

	desc, err := ReadDescription(objPath)
	if err != nil {
		t.Fatal(err)
	}

	type matSpec struct {
		name string
		use  material.ExtensionUse
	}
	expMaterials := []matSpec{
		{"clay", material.UseOpaque},
		{"lamp", material.UseEmitter},
		{"chrome", material.UseMetal},
		{"glass", material.UseTransparent},
	}
	if len(desc.Materials) != len(expMaterials) {
		t.Fatalf("expected %d materials; got %d", len(expMaterials), len(desc.Materials))
	}
	for idx, s := range expMaterials {
		m := desc.Materials[idx]
		if m.Name != s.name || m.Use != s.use {
			t.Fatalf("[spec %d] expected material %s with use %s; got %s with use %s", idx, s.name, s.use, m.Name, m.Use)
		}
	}

	clay := desc.Materials[0].Opaque
	if clay.Color != (types.RGB8{128, 128, 128}) {
		t.Fatalf("expected clay color to be 128, 128, 128; got %v", clay.Color)
	}
	expMap := filepath.ToSlash(dir) + "/clay.png"
	if clay.ColorType != 1 || clay.ColorMap == nil || clay.ColorMap.Path != expMap {
		t.Fatalf("expected clay to use color map %s; got %+v", expMap, clay.ColorMap)
	}
	if ior := desc.Materials[3].Transparent.IOR; ior != 1.5 {
		t.Fatalf("expected glass ior to be 1.5; got %f", ior)
	}
	if !desc.Materials[1].Emitter.Enabled {
		t.Fatal("expected lamp emitter to be enabled")
	}

	if len(desc.Objects) != 3 {
		t.Fatalf("expected 3 objects; got %d", len(desc.Objects))
	}
	inst := desc.Objects[1]
	if inst.Name != "box.001" || inst.Type != input.ObjectInstance || inst.Instanced != "box" {
		t.Fatalf("expected instance box.001 of box; got %s %q of %q", inst.Type, inst.Name, inst.Instanced)
	}
	m := inst.Placement()
	if m.Location != (types.Vec3{1, 2, 3}) || m.Rotation != (types.Vec3{0, 90, 0}) || m.Scale != (types.Vec3{2, 2, 2}) {
		t.Fatalf("unexpected instance placement %+v", m)
	}
	// A 90 degree rotation around Y maps X to -Z.
	xAxis := m.Base[1]
	if math.Abs(xAxis[0]) > 1e-9 || math.Abs(xAxis[2]+1) > 1e-9 {
		t.Fatalf("expected instance x axis to be (0, 0, -1); got %v", xAxis)
	}
	if name := desc.Objects[2].Name; name != "box.002" {
		t.Fatalf("expected second instance to be named box.002; got %q", name)
	}

	if len(desc.Cameras) != 1 {
		t.Fatalf("expected 1 camera; got %d", len(desc.Cameras))
	}
	cam := desc.Cameras[0]
	if !cam.Active || cam.Name != wavefrontCameraName {
		t.Fatalf("expected active camera %q; got %q (active %t)", wavefrontCameraName, cam.Name, cam.Active)
	}
	if f := cam.Steps[0].FocalLength; math.Abs(f-0.018) > 1e-9 {
		t.Fatalf("expected a 90 degree fov to give an 18 mm focal length; got %f", f*1000)
	}

	sc, err := ReadScene(objPath)
	if err != nil {
		t.Fatal(err)
	}
	if sc.ActiveCamera != wavefrontCameraName {
		t.Fatalf("expected active camera %q; got %q", wavefrontCameraName, sc.ActiveCamera)
	}
	box := sc.GetObject("box")
	if box == nil {
		t.Fatal("expected compiled scene to contain box")
	}
	if exp := []string{"clay", "lamp", "chrome", "glass"}; !reflect.DeepEqual(box.Mesh.MaterialSlots, exp) {
		t.Fatalf("expected material slots %v; got %v", exp, box.Mesh.MaterialSlots)
	}
}
