package types

import (
	"fmt"
	"math"
)

// RGB is a color with components in the [0, 1] range.
type RGB [3]float64

// RGB8 is a color with 8-bit integer components in the [0, 255] range. It is
// the unit used by the host application for color ids and preset colors.
type RGB8 [3]int

// White in 8-bit space.
var White8 = RGB8{255, 255, 255}

// Convert to a normalized color.
func (c RGB8) RGB() RGB {
	return RGB{float64(c[0]) / 255, float64(c[1]) / 255, float64(c[2]) / 255}
}

// Check that all components fit in 8 bits.
func (c RGB8) Validate() error {
	for i, v := range c {
		if v < 0 || v > 255 {
			return fmt.Errorf("color component %d out of the [0, 255] range: %d", i, v)
		}
	}
	return nil
}

// Format as the comma separated triple used in reader listings.
func (c RGB8) String() string {
	return fmt.Sprintf("%d, %d, %d", c[0], c[1], c[2])
}

// Convert to 8-bit space, rounding to the nearest integer and clamping.
func (c RGB) RGB8() RGB8 {
	var out RGB8
	for i, v := range c {
		iv := int(math.Round(v * 255))
		if iv < 0 {
			iv = 0
		} else if iv > 255 {
			iv = 255
		}
		out[i] = iv
	}
	return out
}

// Get the max component of the color.
func (c RGB) MaxComponent() float64 {
	return Vec3(c).MaxComponent()
}
