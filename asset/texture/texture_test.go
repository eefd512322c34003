package texture

import (
	"encoding/json"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestNormalizeBoundaries(t *testing.T) {
	specs := []struct {
		v, divisor float64
		exp        float64
	}{
		{0, BrightnessDivisor, 0},
		{100, BrightnessDivisor, 1},
		{100, ContrastDivisor, 1},
		{100, SaturationDivisor, 1},
		{50, SaturationDivisor, 0.5},
		{0, HueDivisor, 0},
		{180, HueDivisor, 1},
		{0, ClampDivisor, 0},
		{255, ClampDivisor, 1},
	}

	for specIndex, spec := range specs {
		if got := Normalize(spec.v, spec.divisor); got != spec.exp {
			t.Fatalf("[spec %d] expected %g/%g = %g; got %g", specIndex, spec.v, spec.divisor, spec.exp, got)
		}
	}

	for v := 0.0; v <= 100; v++ {
		n := Normalize(v, BrightnessDivisor)
		if n < 0 || n > 1 {
			t.Fatalf("expected %g to normalize into [0, 1]; got %g", v, n)
		}
	}
}

func TestTextureDefaults(t *testing.T) {
	var tex Texture
	if err := json.Unmarshal([]byte(`{"path": "wood.png", "use_global_map": true}`), &tex); err != nil {
		t.Fatal(err)
	}

	if tex.Repeat[0] != 1 || tex.Repeat[1] != 1 {
		t.Fatalf("expected default repeat 1x1; got %v", tex.Repeat)
	}
	if tex.RGBClamp[1] != 255 {
		t.Fatalf("expected default clamp max 255; got %g", tex.RGBClamp[1])
	}
	if !tex.TileMethodType[0] || !tex.TileMethodType[1] {
		t.Fatal("expected tiling to be enabled by default")
	}
	if !tex.UseOverrideMap {
		t.Fatal("expected use_global_map to set the override map flag")
	}
	if err := tex.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestTextureValidate(t *testing.T) {
	specs := []func(tex *Texture){
		func(tex *Texture) { tex.Path = "" },
		func(tex *Texture) { tex.Brightness = 101 },
		func(tex *Texture) { tex.Contrast = -101 },
		func(tex *Texture) { tex.Hue = 181 },
		func(tex *Texture) { tex.RGBClamp = [2]float64{200, 100} },
		func(tex *Texture) { tex.RGBClamp = [2]float64{0, 256} },
		func(tex *Texture) { tex.Channel = -1 },
	}

	for specIndex, mutate := range specs {
		tex := New("wood.png")
		mutate(tex)
		if err := tex.Validate(); err == nil {
			t.Fatalf("[spec %d] expected a validation error", specIndex)
		}
	}
}

func TestTextureMap(t *testing.T) {
	tex := New("wood.png")
	tex.Brightness = 50
	tex.Contrast = -25
	tex.Saturation = 100
	tex.Hue = 90
	tex.RGBClamp = [2]float64{51, 255}
	tex.Interpolation = true
	tex.Mirror = [2]bool{true, false}
	tex.Channel = 2

	tm := tex.Map()
	specs := []struct {
		name     string
		got, exp float64
	}{
		{"brightness", tm.Brightness, 0.5},
		{"contrast", tm.Contrast, -0.25},
		{"saturation", tm.Saturation, 1},
		{"hue", tm.Hue, 0.5},
		{"clamp min", tm.ClampMin, 0.2},
		{"clamp max", tm.ClampMax, 1},
	}
	for specIndex, spec := range specs {
		if math.Abs(spec.got-spec.exp) > 1e-12 {
			t.Fatalf("[spec %d] expected %s to be %g; got %g", specIndex, spec.name, spec.exp, spec.got)
		}
	}
	if tm.Interpolation != 1 || !tm.UMirrored || tm.VMirrored || tm.UVWChannel != 2 {
		t.Fatalf("expected flags to be copied; got %+v", tm)
	}
	if tm.Path != "wood.png" {
		t.Fatalf("expected path wood.png; got %q", tm.Path)
	}
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "albedo.png")
	f, err := os.Create(imgPath)
	if err != nil {
		t.Fatal(err)
	}
	if err = png.Encode(f, image.NewRGBA64(image.Rect(0, 0, 4, 2))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	info, err := Inspect(imgPath, nil)
	if err != nil {
		t.Fatal(err)
	}
	if info.Width != 4 || info.Height != 2 {
		t.Fatalf("expected 4x2; got %dx%d", info.Width, info.Height)
	}
	if info.Format != Rgba16 {
		t.Fatalf("expected format %s; got %s", Rgba16, info.Format)
	}

	hdrPath := filepath.Join(dir, "sky.hdr")
	if err = os.WriteFile(hdrPath, []byte("#?RADIANCE"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err = Inspect(hdrPath, nil); err != ErrNotInspected {
		t.Fatalf("expected ErrNotInspected; got %v", err)
	}

	badPath := filepath.Join(dir, "broken.png")
	if err = os.WriteFile(badPath, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err = Inspect(badPath, nil); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestInspectFormats(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 6, 3))

	type spec struct {
		file   string
		encode func(io.Writer, image.Image) error
	}
	specs := []spec{
		{"a.png", png.Encode},
		{"a.jpg", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }},
		{"a.jpeg", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }},
		{"a.gif", func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) }},
		{"a.bmp", bmp.Encode},
		{"a.tif", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }},
		{"a.tga", tga.Encode},
	}
	for idx, s := range specs {
		path := filepath.Join(dir, s.file)
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		if err = s.encode(f, img); err != nil {
			t.Fatalf("[spec %d] %v", idx, err)
		}
		f.Close()

		info, err := Inspect(path, nil)
		if err != nil {
			t.Fatalf("[spec %d] expected %s to be inspected; got %v", idx, s.file, err)
		}
		if info.Width != 6 || info.Height != 3 {
			t.Fatalf("[spec %d] expected 6x3; got %dx%d", idx, info.Width, info.Height)
		}
	}

	// Unknown extensions are skipped rather than sniffed.
	path := filepath.Join(dir, "a.dds")
	if err := os.WriteFile(path, []byte("DDS "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Inspect(path, nil); err != ErrNotInspected {
		t.Fatalf("expected ErrNotInspected; got %v", err)
	}
}
