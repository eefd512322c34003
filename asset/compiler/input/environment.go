package input

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oomer/blendmaxwell/types"
)

// Environment types.
const (
	EnvNone        = "NONE"
	EnvPhysicalSky = "PHYSICAL_SKY"
	EnvImageBased  = "IMAGE_BASED"
)

// Sky types.
const (
	SkyPhysical = "PHYSICAL"
	SkyConstant = "CONSTANT"
)

// Sun types.
const (
	SunDisabled = "DISABLED"
	SunPhysical = "PHYSICAL"
	SunCustom   = "CUSTOM"
)

// Sun location types.
const (
	SunLatLong   = "LATLONG"
	SunAngles    = "ANGLES"
	SunDirection = "DIRECTION"
)

// IBL layer types.
const (
	IBLHDRImage  = "HDR_IMAGE"
	IBLActiveSky = "ACTIVE_SKY"
	IBLSameAsBG  = "SAME_AS_BG"
	IBLDisabled  = "DISABLED"
)

// Physical sky settings.
type Sky struct {
	UsePreset      bool    `json:"use_preset"`
	Preset         string  `json:"preset"`
	Intensity      float64 `json:"intensity"`
	PlanetRefl     float64 `json:"planet_refl"`
	Ozone          float64 `json:"ozone"`
	Water          float64 `json:"water"`
	TurbidityCoeff float64 `json:"turbidity_coeff"`
	WavelengthExp  float64 `json:"wavelength_exp"`
	Reflectance    float64 `json:"reflectance"`
	Asymmetry      float64 `json:"asymmetry"`
}

// Constant dome settings. Colors are 8-bit.
type Dome struct {
	Intensity float64    `json:"intensity"`
	Zenith    types.RGB8 `json:"zenith"`
	Horizon   types.RGB8 `json:"horizon"`
	MidPoint  float64    `json:"mid_point"`
}

// Sun settings. Date is formatted as dd.mm.yyyy and time as hh:mm.
type Sun struct {
	Power          float64    `json:"power"`
	RadiusFactor   float64    `json:"radius_factor"`
	Temperature    float64    `json:"temp"`
	Color          types.RGB8 `json:"color"`
	LocationType   string     `json:"location_type"`
	Latitude       float64    `json:"lat"`
	Longitude      float64    `json:"lon"`
	Date           string     `json:"date"`
	Time           string     `json:"time"`
	GMT            int        `json:"gmt"`
	GMTAuto        bool       `json:"gmt_auto"`
	GroundRotation float64    `json:"ground_rotation"`
	Zenith         float64    `json:"zenith"`
	Azimuth        float64    `json:"azimuth"`
	Direction      types.Vec3 `json:"dir"`
}

// Day of year (starting at 1) of the sun date.
func (s *Sun) DayOfYear() (int, error) {
	t, err := time.Parse("2.1.2006", s.Date)
	if err != nil {
		return 0, fmt.Errorf("invalid sun date %q; expected dd.mm.yyyy", s.Date)
	}
	return t.YearDay(), nil
}

// Fractional hour of the sun time.
func (s *Sun) Hour() (float64, error) {
	parts := strings.Split(s.Time, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid sun time %q; expected hh:mm", s.Time)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid sun time %q; expected hh:mm", s.Time)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid sun time %q; expected hh:mm", s.Time)
	}
	return float64(h) + float64(m)/60, nil
}

// An image based lighting layer.
type IBLLayer struct {
	Type      string     `json:"type"`
	Map       string     `json:"map"`
	Intensity float64    `json:"intensity"`
	Scale     types.Vec2 `json:"scale"`
	Offset    types.Vec2 `json:"offset"`
}

// Image based lighting stack.
type IBL struct {
	Intensity     float64  `json:"intensity"`
	Interpolation bool     `json:"interpolation"`
	ScreenMapping bool     `json:"screen_mapping"`
	Background    IBLLayer `json:"background"`
	Reflection    IBLLayer `json:"reflection"`
	Refraction    IBLLayer `json:"refraction"`
	Illumination  IBLLayer `json:"illumination"`
}

// Scene environment.
type Environment struct {
	EnvType string `json:"env_type"`
	SkyType string `json:"sky_type"`
	Sky     *Sky   `json:"sky"`
	Dome    *Dome  `json:"dome"`
	SunType string `json:"sun_type"`
	Sun     *Sun   `json:"sun"`
	IBL     *IBL   `json:"ibl"`
}

func (e *Environment) problems() []string {
	var out []string
	switch e.EnvType {
	case "", EnvNone:
		return nil
	case EnvPhysicalSky, EnvImageBased:
	default:
		return []string{fmt.Sprintf("environment: unknown env_type %q", e.EnvType)}
	}

	switch e.SkyType {
	case "":
	case SkyPhysical:
		if e.Sky == nil {
			out = append(out, "environment: physical sky without sky settings")
		}
		if e.Sun == nil {
			out = append(out, "environment: physical sky without sun settings")
			break
		}
		switch e.SunType {
		case "", SunDisabled, SunPhysical, SunCustom:
		default:
			out = append(out, fmt.Sprintf("environment: unknown sun_type %q", e.SunType))
		}
		if err := e.Sun.Color.Validate(); err != nil {
			out = append(out, fmt.Sprintf("environment: sun color: %v", err))
		}
		switch e.Sun.LocationType {
		case SunLatLong:
			if _, err := e.Sun.DayOfYear(); err != nil {
				out = append(out, "environment: "+err.Error())
			}
			if _, err := e.Sun.Hour(); err != nil {
				out = append(out, "environment: "+err.Error())
			}
		case SunAngles, SunDirection:
		default:
			out = append(out, fmt.Sprintf("environment: unknown sun location_type %q", e.Sun.LocationType))
		}
	case SkyConstant:
		if e.Dome == nil {
			out = append(out, "environment: constant sky without dome settings")
			break
		}
		for _, c := range []types.RGB8{e.Dome.Zenith, e.Dome.Horizon} {
			if err := c.Validate(); err != nil {
				out = append(out, fmt.Sprintf("environment: dome color: %v", err))
			}
		}
	default:
		out = append(out, fmt.Sprintf("environment: unknown sky_type %q", e.SkyType))
	}

	if e.IBL != nil {
		layers := []IBLLayer{e.IBL.Background, e.IBL.Reflection, e.IBL.Refraction, e.IBL.Illumination}
		for index, l := range layers {
			switch l.Type {
			case "", IBLHDRImage, IBLActiveSky, IBLDisabled:
			case IBLSameAsBG:
				if index == 0 {
					out = append(out, "environment: the background IBL layer cannot be SAME_AS_BG")
				}
			default:
				out = append(out, fmt.Sprintf("environment: unknown IBL layer type %q", l.Type))
			}
		}
	}
	return out
}
