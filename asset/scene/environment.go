package scene

import (
	"math"

	"github.com/oomer/blendmaxwell/types"
)

// Active sky types.
const (
	SkyNone     = ""
	SkyPhysical = "PHYSICAL"
	SkyConstant = "CONSTANT"
)

// Sun types.
type SunType uint8

const (
	SunDisabled SunType = iota
	SunPhysical
	SunConstant
)

func (t SunType) String() string {
	switch t {
	case SunDisabled:
		return "DISABLED"
	case SunPhysical:
		return "PHYSICAL"
	case SunConstant:
		return "CUSTOM"
	}
	return "invalid"
}

// Sun position types.
type SunPositionType uint8

const (
	SunPositionLatLong SunPositionType = iota
	SunPositionAngles
	SunPositionDirection
)

// IBL layer indices.
const (
	IBLBackground = iota
	IBLReflection
	IBLRefraction
	IBLIllumination
	numIBLLayers
)

// IBL layer states.
type IBLState uint8

const (
	IBLDisabled IBLState = iota
	IBLImage
	IBLActiveSky
	IBLSameAsBackground
)

// Physical sky atmosphere parameters.
type Atmosphere struct {
	Intensity         float64
	Ozone             float64
	Water             float64
	TurbidityCoef     float64
	WavelengthExp     float64
	Reflectance       float64
	Asymmetry         float64
	PlanetReflectance float64
}

// Sun emission parameters.
type SunProperties struct {
	Type         SunType
	Temperature  float64
	Power        float64
	RadiusFactor float64
	Color        types.RGB
}

// Constant dome parameters.
type ConstantDome struct {
	Intensity float64
	Horizon   types.RGB
	Zenith    types.RGB
	MidPoint  float64
}

// An image based lighting layer.
type IBLLayer struct {
	Map             string
	State           IBLState
	Spherical       bool
	NoInterpolation bool
	Intensity       float64
	Scale           types.Vec2
	Offset          types.Vec2
}

// The scene environment.
type Environment struct {
	ActiveSky string

	Atmosphere Atmosphere
	SkyPreset  string

	Sun             SunProperties
	SunPositionType SunPositionType

	// LATLONG position; longitude and latitude in degrees, day of year
	// starting at 1 and fractional hour.
	Longitude      float64
	Latitude       float64
	GMT            int
	DayOfYear      int
	Hour           float64
	GroundRotation float64

	// ANGLES position in degrees.
	SunZenith  float64
	SunAzimuth float64

	// DIRECTION position.
	SunDirection types.Vec3

	Constant ConstantDome

	EnvironmentEnabled bool
	EnvironmentWeight  float64
	IBL                [numIBLLayers]IBLLayer
}

func newEnvironment() *Environment {
	env := &Environment{
		ActiveSky:         SkyNone,
		EnvironmentWeight: 1,
	}
	for i := range env.IBL {
		env.IBL[i].Intensity = 1
		env.IBL[i].Scale = types.Vec2{1, 1}
	}
	return env
}

// Set the active sky; an empty name disables the sky.
func (e *Environment) SetActiveSky(sky string) {
	e.ActiveSky = sky
}

// Set the physical sky atmosphere and clear any preset.
func (e *Environment) SetPhysicalSkyAtmosphere(atm Atmosphere) {
	e.Atmosphere = atm
	e.SkyPreset = ""
}

// Load the physical sky from a preset file.
func (e *Environment) LoadSkyFromPreset(path string) {
	e.SkyPreset = path
}

// Set the sun emission properties.
func (e *Environment) SetSunProperties(p SunProperties) {
	e.Sun = p
}

// Position the sun from geographic coordinates and local time.
func (e *Environment) SetSunLongitudeAndLatitude(lon, lat float64, gmt, day int, hour float64) {
	e.SunPositionType = SunPositionLatLong
	e.Longitude, e.Latitude = lon, lat
	e.GMT, e.DayOfYear, e.Hour = gmt, day, hour
}

// Set the ground rotation in degrees.
func (e *Environment) SetSunRotation(deg float64) {
	e.GroundRotation = deg
}

// Position the sun with zenith and azimuth angles in degrees.
func (e *Environment) SetSunAngles(zenith, azimuth float64) {
	e.SunPositionType = SunPositionAngles
	e.SunZenith, e.SunAzimuth = zenith, azimuth
}

// Position the sun with an explicit direction.
func (e *Environment) SetSunDirection(dir types.Vec3) {
	e.SunPositionType = SunPositionDirection
	e.SunDirection = dir
}

// Set the constant dome.
func (e *Environment) SetSkyConstant(c ConstantDome) {
	e.Constant = c
}

// Enable or disable image based lighting.
func (e *Environment) EnableEnvironment(enabled bool) {
	e.EnvironmentEnabled = enabled
}

// Set the global IBL weight.
func (e *Environment) SetEnvironmentWeight(w float64) {
	e.EnvironmentWeight = w
}

// Set an IBL layer. Indices outside the layer range are ignored.
func (e *Environment) SetEnvironmentLayer(index int, layer IBLLayer) {
	if index < 0 || index >= numIBLLayers {
		return
	}
	e.IBL[index] = layer
}

// Returns true if a physical sun is set up.
func (e *Environment) SunEnabled() bool {
	return e.Sun.Type == SunPhysical
}

// Calculate the normalized direction towards the sun. The renderer uses a
// Y-up frame with azimuth measured from +X towards +Z.
func (e *Environment) SunDirectionUsedForRendering() types.Vec3 {
	switch e.SunPositionType {
	case SunPositionDirection:
		return e.SunDirection.Normalize()
	case SunPositionAngles:
		return directionFromAngles(e.SunZenith, e.SunAzimuth)
	}

	// Approximate solar position from declination and hour angle.
	lat := e.Latitude * math.Pi / 180
	decl := 23.44 * math.Pi / 180 * math.Sin(2*math.Pi*float64(284+e.DayOfYear)/365)
	solarHour := e.Hour + e.Longitude/15 - float64(e.GMT)
	hourAngle := (solarHour - 12) * 15 * math.Pi / 180

	sinElev := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(hourAngle)
	elev := math.Asin(math.Max(-1, math.Min(1, sinElev)))
	azimuth := math.Atan2(-math.Sin(hourAngle), math.Tan(decl)*math.Cos(lat)-math.Sin(lat)*math.Cos(hourAngle))

	zenithDeg := 90 - elev*180/math.Pi
	azimuthDeg := azimuth*180/math.Pi + e.GroundRotation
	return directionFromAngles(zenithDeg, azimuthDeg)
}

func directionFromAngles(zenith, azimuth float64) types.Vec3 {
	z := zenith * math.Pi / 180
	a := azimuth * math.Pi / 180
	return types.Vec3{
		math.Sin(z) * math.Cos(a),
		math.Cos(z),
		math.Sin(z) * math.Sin(a),
	}
}
