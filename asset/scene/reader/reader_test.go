package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oomer/blendmaxwell/asset/compiler"
	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/asset/scene/archive"
)

func TestReadCompiledScene(t *testing.T) {
	dir := t.TempDir()
	sc := scene.NewScene()
	sc.SetPluginID("blender")
	if _, err := sc.CreateEmpty("root"); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "scene.mxs")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err = archive.EncodeScene(f, sc); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out, err := ReadScene(path)
	if err != nil {
		t.Fatal(err)
	}
	if out.PluginID != "blender" {
		t.Fatalf("expected plugin id to be %q; got %q", "blender", out.PluginID)
	}
	if out.GetObject("root") == nil {
		t.Fatal("expected decoded scene to contain object root")
	}

	// Not a container.
	bad := writeFile(t, dir, "bad.mxs", "not a zip")
	if _, err = ReadScene(bad); err == nil || !strings.Contains(err.Error(), "bad.mxs") {
		t.Fatalf("expected a read error naming the file; got %v", err)
	}
}

func TestReadJSONDescription(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scene.json", `{
		"materials": [{"name": "clay", "subtype": "EXTENSION", "use": "OPAQUE", "opaque": {}}],
		"objects": [{"name": "root", "type": "EMPTY"}]
	}`)

	desc, err := ReadDescription(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(desc.Objects) != 1 || desc.Objects[0].Name != "root" {
		t.Fatalf("expected a single object named root; got %d objects", len(desc.Objects))
	}
	if desc.Source == nil || desc.Source.Path() != path {
		t.Fatalf("expected description source to be %s", path)
	}

	sc, err := ReadSceneWithOptions(path, compiler.Options{PluginID: "cli", EraseUnusedMaterials: true})
	if err != nil {
		t.Fatal(err)
	}
	if sc.PluginID != "cli" {
		t.Fatalf("expected plugin id override to be applied; got %q", sc.PluginID)
	}
	if sc.GetMaterial("clay") != nil {
		t.Fatal("expected unused material clay to be erased")
	}
}

func TestReadMaterial(t *testing.T) {
	dir := t.TempDir()

	jsonPath := writeFile(t, dir, "clay.json", `{"name": "clay", "subtype": "EXTENSION", "use": "OPAQUE", "opaque": {"color": [10, 20, 30]}}`)
	m, err := ReadMaterial(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "clay" {
		t.Fatalf("expected material name to be clay; got %q", m.Name)
	}

	mxmPath := filepath.Join(dir, "clay.mxm")
	f, err := os.Create(mxmPath)
	if err != nil {
		t.Fatal(err)
	}
	if err = archive.EncodeMaterial(f, m); err != nil {
		t.Fatal(err)
	}
	f.Close()

	out, err := ReadMaterial(mxmPath)
	if err != nil {
		t.Fatal(err)
	}
	if out.Name != "clay" || out.Extension == nil {
		t.Fatalf("expected the decoded material to keep its name and extension; got %q", out.Name)
	}
}

func TestUnsupportedFormats(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scene.txt", "")

	type spec struct {
		fn       func(string) error
		expError string
	}
	specs := []spec{
		{func(p string) error { _, err := ReadScene(p); return err }, `unsupported description format ".txt"`},
		{func(p string) error { _, err := ReadDescription(p); return err }, `unsupported description format ".txt"`},
		{func(p string) error { _, err := ReadMaterial(p); return err }, `unsupported material format ".txt"`},
	}
	for idx, s := range specs {
		err := s.fn(path)
		if err == nil || !strings.Contains(err.Error(), s.expError) {
			t.Fatalf("[spec %d] expected error containing %q; got %v", idx, s.expError, err)
		}
	}
}
