// Package preview renders material swatches: a lit sphere in front of a
// checker backdrop, tinted by the material's dominant color.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/oomer/blendmaxwell/asset/material"
	"github.com/oomer/blendmaxwell/asset/scene"
	"github.com/oomer/blendmaxwell/types"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

const (
	// Default swatch edge in pixels.
	DefaultSize = 128

	// Swatches are rendered at this multiple of the requested size and
	// downsampled.
	supersample = 2

	sphereRadius = 0.9
	ambient      = 0.15
	backdropTile = 16
)

var lightDir = types.Vec3{-0.5, 0.6, 0.8}.Normalize()

// Surface properties used for shading the swatch sphere.
type surface struct {
	Color types.RGB

	// Emitters are drawn unlit.
	Emissive bool

	// Checker elements around the sphere; zero for a plain color.
	Checker uint32
}

func checkerElements(a scene.Attribute) uint32 {
	if a.ActiveType != scene.MapTypeBitmap || a.TextureMap == nil {
		return 0
	}
	for _, p := range a.TextureMap.Procedural {
		if p.Extension != material.PlaceholderChecker {
			continue
		}
		if n, ok := p.Get("Number of elements U"); ok && n.UInt > 0 {
			return n.UInt
		}
		return material.PlaceholderCheckerElements
	}
	return 0
}

// Pick the swatch surface. Preset colors win over the layer graph; emitter
// layers win over BSDFs.
func surfaceOf(m *scene.Material) surface {
	s := surface{Color: types.RGB{0.6, 0.6, 0.6}}
	if m.Extension != nil {
		if p, ok := m.Extension.Get("Color"); ok && p.Kind == scene.ParamRGB {
			s.Color = p.RGB
			return s
		}
	}

	for _, l := range m.Layers {
		if !l.Enabled {
			continue
		}
		if e := l.Emitter; e != nil && e.State {
			s.Emissive = true
			if e.EmissionType == scene.EmissionTypePair {
				s.Color = e.Pair.RGB
			} else {
				s.Color = types.RGB{1, 1, 1}
			}
			return s
		}
		for _, b := range l.BSDFs {
			if !b.State || b.Reflectance == nil {
				continue
			}
			if a, ok := b.Reflectance.Attribute(scene.AttrColor); ok {
				s.Color = a.RGB
				s.Checker = checkerElements(a)
			}
			return s
		}
	}
	return s
}

func toNRGBA(c types.RGB, scale float64) color.NRGBA {
	var out [3]uint8
	for i, v := range c {
		out[i] = uint8(math.Max(0, math.Min(255, math.Round(v*scale*255))))
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: 255}
}

// Shade a point of the sphere given its normal.
func (s surface) shade(n types.Vec3) color.NRGBA {
	c := s.Color
	if s.Checker > 0 {
		u := math.Atan2(n[0], n[2])/(2*math.Pi) + 0.5
		v := math.Acos(math.Max(-1, math.Min(1, n[1]))) / math.Pi
		cu := int(u * float64(s.Checker))
		cv := int(v * float64(s.Checker) / 2)
		if (cu+cv)%2 == 0 {
			c = types.RGB{0.9, 0.9, 0.9}
		} else {
			c = types.RGB{0.2, 0.2, 0.2}
		}
	}
	if s.Emissive {
		return toNRGBA(c, 1)
	}
	return toNRGBA(c, ambient+(1-ambient)*math.Max(0, n.Dot(lightDir)))
}

func backdrop(x, y, tile int) color.NRGBA {
	if (x/tile+y/tile)%2 == 0 {
		return color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	}
	return color.NRGBA{R: 150, G: 150, B: 150, A: 255}
}

// Render a square swatch for a material.
func Swatch(m *scene.Material, size int) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("preview: invalid swatch size %d", size)
	}

	s := surfaceOf(m)
	full := size * supersample
	src := image.NewNRGBA(image.Rect(0, 0, full, full))
	for y := 0; y < full; y++ {
		py := 1 - 2*(float64(y)+0.5)/float64(full)
		for x := 0; x < full; x++ {
			px := 2*(float64(x)+0.5)/float64(full) - 1
			r2 := px*px + py*py
			if r2 > sphereRadius*sphereRadius {
				src.SetNRGBA(x, y, backdrop(x, y, backdropTile*supersample))
				continue
			}
			n := types.Vec3{px, py, math.Sqrt(sphereRadius*sphereRadius - r2)}.Mul(1 / sphereRadius)
			src.SetNRGBA(x, y, s.shade(n))
		}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// Encode an image in the format selected by the file extension: .webp or
// .png.
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".webp":
		return nativewebp.Encode(w, img, nil)
	case ".png":
		return png.Encode(w, img)
	}
	return fmt.Errorf("preview: unsupported image format %q", ext)
}

// Render a material swatch and write it to filename.
func WriteFile(m *scene.Material, filename string, size int) error {
	img, err := Swatch(m, size)
	if err != nil {
		return err
	}

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating preview file")
	}
	err = Encode(f, img, filepath.Ext(filename))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(filename)
		return errors.Wrapf(err, "writing preview %s", filename)
	}
	return nil
}
