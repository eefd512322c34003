package scene

import (
	"errors"
	"math"

	"github.com/oomer/blendmaxwell/types"
)

const focalEpsilon = 1e-9

// Returned when the thin lens relation has no finite solution for the
// supplied focus distance.
var ErrFocalLengthDivergence = errors.New("scene: focal length diverges for the given focus distance")

// Apply the thin lens correction to a nominal focal length given the camera
// origin and focal point: 1/fc = 1/f + 1/d.
func CorrectFocalLength(origin, focalPoint types.Vec3, f float64) (float64, error) {
	d := origin.Distance(focalPoint)
	if d < focalEpsilon || f == 0 {
		return 0, ErrFocalLengthDivergence
	}
	sum := 1/f + 1/d
	if math.Abs(sum) < focalEpsilon {
		return 0, ErrFocalLengthDivergence
	}
	return 1 / sum, nil
}

// Recover the nominal focal length from a corrected one given the camera
// origin and focal point: 1/f = 1/fc - 1/d.
func UncorrectFocalLength(origin, focalPoint types.Vec3, fc float64) (float64, error) {
	d := origin.Distance(focalPoint)
	if d < focalEpsilon || fc == 0 || math.Abs(d-fc) < focalEpsilon {
		return 0, ErrFocalLengthDivergence
	}
	return 1 / (1/fc - 1/d), nil
}
