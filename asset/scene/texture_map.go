package scene

import (
	"fmt"

	"github.com/oomer/blendmaxwell/types"
)

// A texture map bound to a material attribute or an extension parameter.
// All color adjustment values are expected in renderer units ([0, 1] for
// brightness, contrast, saturation, hue and the clamp range).
type TextureMap struct {
	Path       string
	UVWChannel int

	Scale    types.Vec2
	Offset   types.Vec2
	Rotation float64

	UTiled    bool
	VTiled    bool
	UMirrored bool
	VMirrored bool

	AbsoluteUnits int
	Invert        bool
	UseAlpha      bool
	Interpolation int

	Brightness float64
	Contrast   float64
	Saturation float64
	Hue        float64
	ClampMin   float64
	ClampMax   float64

	UseGlobalMap bool

	NormalMappingFlipRed       bool
	NormalMappingFlipGreen     bool
	NormalMappingFullRangeBlue bool

	// Procedural texture extensions layered on top of the bitmap.
	Procedural []*ParamList
}

// Create a new texture map with the renderer defaults.
func NewTextureMap() *TextureMap {
	return &TextureMap{
		Scale:    types.Vec2{1, 1},
		UTiled:   true,
		VTiled:   true,
		ClampMax: 1,
	}
}

// Set the bitmap path.
func (t *TextureMap) SetPath(path string) {
	t.Path = path
}

// Append a procedural texture extension.
func (t *TextureMap) AddProceduralTexture(params *ParamList) {
	t.Procedural = append(t.Procedural, params)
}

// ParamKind identifies the value stored inside an extension parameter.
type ParamKind uint8

const (
	ParamFloat ParamKind = iota
	ParamUInt
	ParamByte
	ParamRGB
	ParamString
	ParamTextureMap
	ParamInt
	ParamFloatArray
	ParamIntArray
	ParamByteArray
)

func (k ParamKind) String() string {
	switch k {
	case ParamFloat:
		return "float"
	case ParamUInt:
		return "uint"
	case ParamByte:
		return "byte"
	case ParamRGB:
		return "rgb"
	case ParamString:
		return "string"
	case ParamTextureMap:
		return "texture"
	case ParamInt:
		return "int"
	case ParamFloatArray:
		return "float[]"
	case ParamIntArray:
		return "int[]"
	case ParamByteArray:
		return "byte[]"
	}
	return "invalid"
}

// A single named extension parameter.
type Param struct {
	Name string
	Kind ParamKind

	Float  float64
	UInt   uint32
	Byte   uint8
	RGB    types.RGB
	String string
	Map    *TextureMap
	Int    int32

	Floats []float64
	Ints   []int32
	Bytes  []byte
}

// Format the parameter value for listings.
func (p Param) Value() string {
	switch p.Kind {
	case ParamFloat:
		return fmt.Sprintf("%g", p.Float)
	case ParamUInt:
		return fmt.Sprintf("%d", p.UInt)
	case ParamByte:
		return fmt.Sprintf("%d", p.Byte)
	case ParamRGB:
		return fmt.Sprintf("%.3f, %.3f, %.3f", p.RGB[0], p.RGB[1], p.RGB[2])
	case ParamString:
		return p.String
	case ParamTextureMap:
		if p.Map == nil {
			return ""
		}
		return p.Map.Path
	case ParamInt:
		return fmt.Sprintf("%d", p.Int)
	case ParamFloatArray:
		return fmt.Sprintf("[%d floats]", len(p.Floats))
	case ParamIntArray:
		return fmt.Sprintf("[%d ints]", len(p.Ints))
	case ParamByteArray:
		return fmt.Sprintf("[%d bytes]", len(p.Bytes))
	}
	return ""
}

// ParamList is the ordered parameter set of a renderer extension such as a
// material preset, a procedural texture or a geometry modifier.
type ParamList struct {
	Extension string
	Params    []Param
}

// Create a new parameter list for the named extension.
func NewParamList(extension string) *ParamList {
	return &ParamList{Extension: extension}
}

func (pl *ParamList) set(p Param) {
	for i := range pl.Params {
		if pl.Params[i].Name == p.Name {
			pl.Params[i] = p
			return
		}
	}
	pl.Params = append(pl.Params, p)
}

// Set a float parameter.
func (pl *ParamList) SetFloat(name string, v float64) {
	pl.set(Param{Name: name, Kind: ParamFloat, Float: v})
}

// Set an unsigned integer parameter.
func (pl *ParamList) SetUInt(name string, v uint32) {
	pl.set(Param{Name: name, Kind: ParamUInt, UInt: v})
}

// Set a signed integer parameter.
func (pl *ParamList) SetInt(name string, v int32) {
	pl.set(Param{Name: name, Kind: ParamInt, Int: v})
}

// Set a float array parameter.
func (pl *ParamList) SetFloatArray(name string, v []float64) {
	pl.set(Param{Name: name, Kind: ParamFloatArray, Floats: v})
}

// Set an integer array parameter.
func (pl *ParamList) SetIntArray(name string, v []int32) {
	pl.set(Param{Name: name, Kind: ParamIntArray, Ints: v})
}

// Set a byte array parameter.
func (pl *ParamList) SetByteArray(name string, v []byte) {
	pl.set(Param{Name: name, Kind: ParamByteArray, Bytes: v})
}

// Set a byte parameter.
func (pl *ParamList) SetByte(name string, v uint8) {
	pl.set(Param{Name: name, Kind: ParamByte, Byte: v})
}

// Set a boolean flag; flags are stored as bytes.
func (pl *ParamList) SetFlag(name string, v bool) {
	var b uint8
	if v {
		b = 1
	}
	pl.SetByte(name, b)
}

// Set a color parameter.
func (pl *ParamList) SetRGB(name string, v types.RGB) {
	pl.set(Param{Name: name, Kind: ParamRGB, RGB: v})
}

// Set a string parameter.
func (pl *ParamList) SetString(name string, v string) {
	pl.set(Param{Name: name, Kind: ParamString, String: v})
}

// Set a texture map parameter. A nil map is ignored.
func (pl *ParamList) SetTextureMap(name string, t *TextureMap) {
	if t == nil {
		return
	}
	pl.set(Param{Name: name, Kind: ParamTextureMap, Map: t})
}

// Lookup a parameter by name.
func (pl *ParamList) Get(name string) (Param, bool) {
	for _, p := range pl.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
