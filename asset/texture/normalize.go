package texture

// Divisors converting host UI units into renderer units.
const (
	BrightnessDivisor = 100
	ContrastDivisor   = 100
	SaturationDivisor = 100
	HueDivisor        = 180
	ClampDivisor      = 255
)

// Convert a value expressed in UI units into renderer units.
func Normalize(v, divisor float64) float64 {
	return v / divisor
}
