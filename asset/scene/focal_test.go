package scene

import (
	"math"
	"testing"

	"github.com/oomer/blendmaxwell/types"
)

func TestFocalLengthRoundTrip(t *testing.T) {
	specs := []struct {
		f, d float64
		fc   float64
	}{
		{0.050, 3.0, 0.049180},
		{0.035, 10.0, 0.034878},
		{0.200, 1.5, 0.176471},
	}

	origin := types.Vec3{1, 2, 3}
	for specIndex, spec := range specs {
		focal := origin.Add(types.Vec3{0, 0, -spec.d})
		fc, err := CorrectFocalLength(origin, focal, spec.f)
		if err != nil {
			t.Fatalf("[spec %d] %v", specIndex, err)
		}
		if math.Abs(fc-spec.fc) > 1e-6 {
			t.Fatalf("[spec %d] expected corrected focal length %f; got %f", specIndex, spec.fc, fc)
		}
		f, err := UncorrectFocalLength(origin, focal, fc)
		if err != nil {
			t.Fatalf("[spec %d] %v", specIndex, err)
		}
		if math.Abs(f-spec.f) > 1e-12 {
			t.Fatalf("[spec %d] expected recovered focal length %f; got %f", specIndex, spec.f, f)
		}
	}
}

func TestFocalLengthDivergence(t *testing.T) {
	origin := types.Vec3{}
	if _, err := UncorrectFocalLength(origin, types.Vec3{0, 0, 2}, 2); err != ErrFocalLengthDivergence {
		t.Fatalf("expected ErrFocalLengthDivergence when distance equals focal length; got %v", err)
	}
	if _, err := UncorrectFocalLength(origin, origin, 0.05); err != ErrFocalLengthDivergence {
		t.Fatalf("expected ErrFocalLengthDivergence for zero focus distance; got %v", err)
	}
	if _, err := CorrectFocalLength(origin, origin, 0.05); err != ErrFocalLengthDivergence {
		t.Fatalf("expected ErrFocalLengthDivergence for zero focus distance; got %v", err)
	}
}

func TestCameraStepCorrection(t *testing.T) {
	sc := NewScene()
	cam, err := sc.AddCamera(&Camera{Name: "cam", LensType: LensThin}, 2)
	if err != nil {
		t.Fatal(err)
	}

	origin, focal, up := types.Vec3{0, 0, 3}, types.Vec3{}, types.Vec3{0, 1, 0}
	if err = cam.SetStep(0, origin, focal, up, 0.05, 8, true); err != nil {
		t.Fatal(err)
	}
	if err = cam.SetStep(1, origin, focal, up, 0.05, 8, false); err != nil {
		t.Fatal(err)
	}

	step0, _ := cam.Step(0)
	step1, _ := cam.Step(1)
	if step0.FocalLength >= step1.FocalLength {
		t.Fatalf("expected corrected focal length to be shorter than 0.05; got %f", step0.FocalLength)
	}
	if err = cam.SetStep(2, origin, focal, up, 0.05, 8, false); err == nil {
		t.Fatal("expected an out of range error")
	}

	cam.SetLensExtra(180)
	if cam.LensExtra != 0 {
		t.Fatal("expected lens extra to be ignored by thin lens")
	}
}
