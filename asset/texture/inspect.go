package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/ftrvxmtrx/tga"
	"github.com/oomer/blendmaxwell/asset"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// Bitmap metadata obtained by decoding the header of a texture file.
type Info struct {
	Path   string
	Format Format
	Width  int
	Height int
}

// Header decoders by file extension. Formats the renderer reads natively
// but no Go decoder covers (hdr, exr, ies, mxi, psd, jp2) are not inspected.
// The tga decoder registers itself without a magic string and would claim
// every file passed through image.DecodeConfig, so formats are never sniffed.
var configDecoders = map[string]func(io.Reader) (image.Config, error){
	".png":  png.DecodeConfig,
	".jpg":  jpeg.DecodeConfig,
	".jpeg": jpeg.DecodeConfig,
	".gif":  gif.DecodeConfig,
	".bmp":  bmp.DecodeConfig,
	".tif":  tiff.DecodeConfig,
	".tiff": tiff.DecodeConfig,
	".webp": webp.DecodeConfig,
	".tga":  tga.DecodeConfig,
}

// Returned by Inspect for files whose format cannot be decoded here.
var ErrNotInspected = errors.New("texture: format not inspected")

// Decode the header of the texture file at path (resolved relative to relTo)
// and report its dimensions and pixel layout.
func Inspect(path string, relTo *asset.Resource) (*Info, error) {
	res, err := asset.NewResource(path, relTo)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	ext := res.Ext()
	decodeConfig, ok := configDecoders[ext]
	if !ok {
		return nil, ErrNotInspected
	}

	cfg, err := decodeConfig(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %v", res.Path(), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("texture: %s image %s has invalid dimensions %dx%d", ext[1:], res.Path(), cfg.Width, cfg.Height)
	}

	return &Info{
		Path:   res.Path(),
		Format: formatOf(cfg.ColorModel),
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// Map a decoder color model to a texture format.
func formatOf(model color.Model) Format {
	switch model {
	case color.GrayModel:
		return Luminance8
	case color.Gray16Model:
		return Luminance16
	case color.RGBAModel, color.NRGBAModel, color.YCbCrModel, color.CMYKModel:
		return Rgba8
	case color.RGBA64Model, color.NRGBA64Model:
		return Rgba16
	}
	if _, ok := model.(color.Palette); ok {
		return Paletted
	}
	return Unknown
}
