package texture

// The pixel layout of a texture file as reported by the decoder.
type Format uint32

const (
	Unknown Format = iota
	Luminance8
	Luminance16
	Rgba8
	Rgba16
	Paletted
)

func (f Format) String() string {
	switch f {
	case Luminance8:
		return "luminance8"
	case Luminance16:
		return "luminance16"
	case Rgba8:
		return "rgba8"
	case Rgba16:
		return "rgba16"
	case Paletted:
		return "paletted"
	}
	return "unknown"
}
