package scene

import (
	"path"
	"strconv"
	"strings"
)

// An image format as written by the renderer.
type ImageFormat struct {
	Ext   string
	Depth int
}

// Format used for unrecognized tags.
var DefaultImageFormat = ImageFormat{Ext: ".tif", Depth: 8}

var imageFormats = map[string]ImageFormat{
	"RGB8":     {".tif", 8},
	"RGB16":    {".tif", 16},
	"RGB32":    {".tif", 32},
	"PNG8":     {".png", 8},
	"PNG16":    {".png", 16},
	"TGA":      {".tga", 8},
	"TIF8":     {".tif", 8},
	"TIF16":    {".tif", 16},
	"TIF32":    {".tif", 32},
	"EXR16":    {".exr", 16},
	"EXR32":    {".exr", 32},
	"EXR_DEEP": {".exr", 32},
	"JPG":      {".jpg", 8},
	"JP2":      {".jp2", 8},
	"HDR":      {".hdr", 32},
	"DTEX":     {".dtex", 32},
	"PSD8":     {".psd", 8},
	"PSD16":    {".psd", 16},
	"PSD32":    {".psd", 32},
}

// Map a channel file tag to its extension and bit depth. Unknown tags map
// to DefaultImageFormat.
func ExtDepth(tag string) ImageFormat {
	if f, ok := imageFormats[tag]; ok {
		return f
	}
	return DefaultImageFormat
}

// Map the render image depth tag (RGB8, RGB16, RGB32) to a format, letting the
// extension of the image filename override the container. For example RGB16
// with out.png yields PNG16.
func ImageExtDepth(depthTag, filename string) ImageFormat {
	ext := path.Ext(filename)
	if ext == "" || len(depthTag) <= 3 {
		return ExtDepth(depthTag)
	}
	bits, err := strconv.Atoi(depthTag[3:])
	if err != nil {
		return ExtDepth(depthTag)
	}
	return ExtDepth(strings.ToUpper(ext[1:]) + strconv.Itoa(bits))
}

// A render channel output.
type Channel struct {
	// Output path key.
	Key string

	// Suffix appended to the base path.
	Suffix string

	// Render parameter toggling the channel.
	Toggle string
}

// The render channels in output order.
var Channels = []Channel{
	{"ALPHA", "_alpha", "DO ALPHA CHANNEL"},
	{"SHADOW", "_shadow", "DO SHADOW PASS CHANNEL"},
	{"OBJECT", "_object_id", "DO IDOBJECT CHANNEL"},
	{"MATERIAL", "_material_id", "DO IDMATERIAL CHANNEL"},
	{"MOTION", "_motion_vector", "DO MOTION CHANNEL"},
	{"Z", "_z_buffer", "DO ZBUFFER CHANNEL"},
	{"ROUGHNESS", "_roughness", "DO ROUGHNESS CHANNEL"},
	{"FRESNEL", "_fresnel", "DO FRESNEL CHANNEL"},
	{"NORMALS", "_normals", "DO NORMALS CHANNEL"},
	{"POSITION", "_position", "DO POSITION CHANNEL"},
	{"DEEP", "_deep", "DO DEEP CHANNEL"},
	{"UV", "_uv", "DO UV CHANNEL"},
	{"ALPHA_CUSTOM", "_custom_alpha", "DO ALPHA CUSTOM CHANNEL"},
	{"REFLECTANCE", "_reflectance", "DO REFLECTANCE CHANNEL"},
}

// Build the output path of a channel and return it with its depth.
func ChannelPath(basePath string, ch Channel, tag string) (string, int) {
	f := ExtDepth(tag)
	return basePath + ch.Suffix + f.Ext, f.Depth
}
