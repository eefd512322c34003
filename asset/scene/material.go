package scene

import "github.com/oomer/blendmaxwell/types"

// Attribute names understood by the renderer.
const (
	AttrBump               = "bump"
	AttrWeight             = "weight"
	AttrColor              = "color"
	AttrColorTangential    = "color.tangential"
	AttrTransmittanceColor = "transmittance.color"
	AttrScattering         = "scattering"
	AttrRoughness          = "roughness"
	AttrAnisotropy         = "anisotrophy"
	AttrAnisotropyAngle    = "angle"
)

// Reference mode for materials linked to an external file.
const ReferenceModeExternalFile = 1

// AttributeType selects which value of an Attribute is active.
type AttributeType uint8

const (
	MapTypeValue AttributeType = iota
	MapTypeRGB
	MapTypeBitmap
)

func (t AttributeType) String() string {
	switch t {
	case MapTypeValue:
		return "value"
	case MapTypeRGB:
		return "rgb"
	case MapTypeBitmap:
		return "bitmap"
	}
	return "invalid"
}

// An attribute is either a constant value, a constant color or a texture
// map. Bitmap attributes keep their value and color as fallbacks.
type Attribute struct {
	ActiveType AttributeType
	Value      float64
	RGB        types.RGB
	TextureMap *TextureMap
}

// Create a constant value attribute.
func ValueAttribute(v float64) Attribute {
	return Attribute{ActiveType: MapTypeValue, Value: v}
}

// Create a constant color attribute.
func RGBAttribute(c types.RGB) Attribute {
	return Attribute{ActiveType: MapTypeRGB, RGB: c}
}

// Create a texture driven attribute.
func BitmapAttribute(t *TextureMap) Attribute {
	return Attribute{ActiveType: MapTypeBitmap, TextureMap: t}
}

// Named attributes of a material, layer, BSDF or reflectance.
type AttributeSet map[string]Attribute

func (s *AttributeSet) set(name string, a Attribute) {
	if *s == nil {
		*s = make(AttributeSet)
	}
	(*s)[name] = a
}

// Emission lobe types.
type LobeType uint8

const (
	LobeDefault LobeType = iota
	LobeIES
	LobeSpotlight
)

// Emission types.
type EmissionType uint8

const (
	EmissionTypePair EmissionType = iota
	EmissionTypeTemperature
	EmissionTypeMXI
)

// Emission color source for pair emitters.
type EmissionColor uint8

const (
	EmissionRGB EmissionColor = iota
	EmissionColorTemperature
)

// Emission units for pair emitters.
type EmissionUnits uint8

const (
	UnitsWattsAndLuminousEfficacy EmissionUnits = iota
	UnitsLuminousPower
	UnitsIlluminance
	UnitsLuminousIntensity
	UnitsLuminance
)

func (u EmissionUnits) String() string {
	switch u {
	case UnitsWattsAndLuminousEfficacy:
		return "watts and luminous efficacy"
	case UnitsLuminousPower:
		return "luminous power"
	case UnitsIlluminance:
		return "illuminance"
	case UnitsLuminousIntensity:
		return "luminous intensity"
	case UnitsLuminance:
		return "luminance"
	}
	return "invalid"
}

// The photometric values of a pair emitter.
type EmitterPair struct {
	RGB               types.RGB
	Temperature       float64
	Watts             float64
	LuminousEfficacy  float64
	LuminousPower     float64
	Illuminance       float64
	LuminousIntensity float64
	Luminance         float64
}

// Spotlight lobe settings.
type Spotlight struct {
	MapEnabled   bool
	Map          *TextureMap
	ConeAngle    float64
	FallOffAngle float64
	FallOffType  int
	Blur         float64
}

// An emitter attached to a material layer.
type Emitter struct {
	State bool

	LobeType     LobeType
	IES          string
	IESIntensity float64
	Spot         Spotlight

	EmissionType EmissionType
	Pair         EmitterPair
	PairColor    EmissionColor
	PairUnits    EmissionUnits
	Temperature  float64
	MXI          Attribute
}

// Select the active pair color source and units.
func (e *Emitter) SetActivePair(color EmissionColor, units EmissionUnits) {
	e.PairColor = color
	e.PairUnits = units
}

// Custom fresnel curve of a reflectance.
type FresnelCustom struct {
	Enabled      bool
	FalloffAngle float64
	Influence    float64
}

// Subsurface scattering parameters.
type Scattering struct {
	Coef        float64
	Asymmetry   float64
	SingleSided bool

	Thickness      Attribute
	ThicknessRange [2]float64
}

// Reflectance of a BSDF or a coating.
type Reflectance struct {
	// 0 uses nd/abbe, 1 uses measured complex IOR data.
	ActiveIorMode int
	ComplexIor    string

	Attributes AttributeSet

	AbsorptionUnits    int
	AbsorptionDistance float64
	Nd                 float64
	Abbe               float64
	ForceFresnel       bool
	Conductor          float64
	Fresnel            FresnelCustom
	Scattering         Scattering
}

func newReflectance() *Reflectance {
	return &Reflectance{
		Attributes: AttributeSet{
			AttrColor:           RGBAttribute(types.RGB{0.6, 0.6, 0.6}),
			AttrColorTangential: RGBAttribute(types.RGB{1, 1, 1}),
		},
		AbsorptionDistance: 1,
		Nd:                 3,
		Abbe:               1,
	}
}

// Set a named reflectance attribute.
func (r *Reflectance) SetAttribute(name string, a Attribute) {
	r.Attributes.set(name, a)
}

// Get a named reflectance attribute.
func (r *Reflectance) Attribute(name string) (Attribute, bool) {
	a, ok := r.Attributes[name]
	return a, ok
}

// Set the IOR through the nd and abbe values.
func (r *Reflectance) SetIOR(nd, abbe float64) {
	r.Nd = nd
	r.Abbe = abbe
}

// A thin coating layered on top of a BSDF.
type Coating struct {
	Thickness      Attribute
	ThicknessRange [2]float64
	Reflectance    *Reflectance
}

// A BSDF node of a material layer.
type BSDF struct {
	Name           string
	State          bool
	Weight         Attribute
	Attributes     AttributeSet
	NormalMapState bool
	Reflectance    *Reflectance
	Coatings       []*Coating
}

// Set a named surface attribute.
func (b *BSDF) SetAttribute(name string, a Attribute) {
	b.Attributes.set(name, a)
}

// Get a named surface attribute.
func (b *BSDF) Attribute(name string) (Attribute, bool) {
	a, ok := b.Attributes[name]
	return a, ok
}

// Append a coating to the BSDF.
func (b *BSDF) AddCoating() *Coating {
	c := &Coating{
		Thickness:      ValueAttribute(100),
		ThicknessRange: [2]float64{0, 100},
		Reflectance:    newReflectance(),
	}
	b.Coatings = append(b.Coatings, c)
	return c
}

// A material layer.
type Layer struct {
	Name                string
	Enabled             bool
	StackedBlendingMode int
	Attributes          AttributeSet
	Emitter             *Emitter
	BSDFs               []*BSDF
}

// Set a named layer attribute.
func (l *Layer) SetAttribute(name string, a Attribute) {
	l.Attributes.set(name, a)
}

// Get a named layer attribute.
func (l *Layer) Attribute(name string) (Attribute, bool) {
	a, ok := l.Attributes[name]
	return a, ok
}

// Attach a new emitter to the layer, replacing any existing one.
func (l *Layer) CreateEmitter() *Emitter {
	l.Emitter = &Emitter{}
	return l.Emitter
}

// Append a BSDF to the layer.
func (l *Layer) AddBSDF() *BSDF {
	b := &BSDF{
		State:       true,
		Weight:      ValueAttribute(100),
		Reflectance: newReflectance(),
	}
	l.BSDFs = append(l.BSDFs, b)
	return b
}

// Displacement settings of a material.
type Displacement struct {
	Enabled bool
	Map     *TextureMap

	Type              int
	Subdivision       int
	Smoothing         int
	Offset            float64
	SubdivisionMethod int
	UVInterpolation   int

	Height      float64
	HeightUnits int
	Adaptive    bool

	VectorScale      types.Vec3
	VectorTransform  int
	VectorRGBMapping int
	VectorPreset     int
}

// A renderer material.
type Material struct {
	Name string

	// Materials that are not embedded keep a reference to their source file.
	ReferenceMode int
	ReferencePath string

	GlobalMap        *TextureMap
	ActiveDisplayMap *TextureMap
	Attributes       AttributeSet
	Dispersion       bool
	MatteShadow      bool
	Matte            bool
	NestedPriority   int
	ColorID          types.RGB

	Displacement *Displacement
	Layers       []*Layer

	// Material modifier extension applied to this material (presets).
	Extension *ParamList
}

// Create a new empty material.
func NewMaterial(name string) *Material {
	return &Material{Name: name, ColorID: types.RGB{1, 1, 1}}
}

// Append a new enabled layer.
func (m *Material) AddLayer() *Layer {
	l := &Layer{
		Enabled:    true,
		Attributes: AttributeSet{AttrWeight: ValueAttribute(100)},
	}
	m.Layers = append(m.Layers, l)
	return l
}

// Set a named material attribute.
func (m *Material) SetAttribute(name string, a Attribute) {
	m.Attributes.set(name, a)
}

// Get a named material attribute.
func (m *Material) Attribute(name string) (Attribute, bool) {
	a, ok := m.Attributes[name]
	return a, ok
}

// Mark the material as a reference to an external material file.
func (m *Material) SetReference(mode int, path string) {
	m.ReferenceMode = mode
	m.ReferencePath = path
}

// Apply a material modifier extension.
func (m *Material) ApplyMaterialModifierExtension(params *ParamList) {
	m.Extension = params
}

// Enable displacement and return its settings.
func (m *Material) EnableDisplacement() *Displacement {
	if m.Displacement == nil {
		m.Displacement = &Displacement{}
	}
	m.Displacement.Enabled = true
	return m.Displacement
}

// Returns true if any layer carries an emitter, enabled or not.
func (m *Material) HasEmitterLayer() bool {
	for _, l := range m.Layers {
		if l.Emitter != nil {
			return true
		}
	}
	return false
}

// Returns true if the material emits light. Every layer must carry an
// enabled emitter; a layer without one, or with a disabled one, makes the
// whole material a non-emitter.
func (m *Material) IsEmitter() bool {
	if len(m.Layers) == 0 {
		return false
	}
	for _, l := range m.Layers {
		if l.Emitter == nil || !l.Emitter.State {
			return false
		}
	}
	return true
}
