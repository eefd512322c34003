package types

// A coordinate frame defined by an origin and three axis vectors.
type Base struct {
	Origin Vec3
	XAxis  Vec3
	YAxis  Vec3
	ZAxis  Vec3
}

// The identity frame at the world origin.
func IdentBase() Base {
	return Base{
		XAxis: Vec3{1, 0, 0},
		YAxis: Vec3{0, 1, 0},
		ZAxis: Vec3{0, 0, 1},
	}
}

// A degenerate frame with all axes collapsed to zero.
func ZeroBase() Base {
	return Base{}
}

// Build a frame from the [origin, x, y, z] row layout used by the host
// application.
func BaseFromRows(rows [4]Vec3) Base {
	return Base{Origin: rows[0], XAxis: rows[1], YAxis: rows[2], ZAxis: rows[3]}
}

// Return the frame in [origin, x, y, z] row layout.
func (b Base) Rows() [4]Vec3 {
	return [4]Vec3{b.Origin, b.XAxis, b.YAxis, b.ZAxis}
}

// Transform a point from local to parent space.
func (b Base) TransformPoint(p Vec3) Vec3 {
	return b.Origin.Add(b.XAxis.Mul(p[0])).Add(b.YAxis.Mul(p[1])).Add(b.ZAxis.Mul(p[2]))
}

// Transform a direction from local to parent space.
func (b Base) TransformDir(d Vec3) Vec3 {
	return b.XAxis.Mul(d[0]).Add(b.YAxis.Mul(d[1])).Add(b.ZAxis.Mul(d[2]))
}

// Compose this frame with a parent frame, returning the frame expressed in
// the parent's parent space.
func (b Base) In(parent Base) Base {
	return Base{
		Origin: parent.TransformPoint(b.Origin),
		XAxis:  parent.TransformDir(b.XAxis),
		YAxis:  parent.TransformDir(b.YAxis),
		ZAxis:  parent.TransformDir(b.ZAxis),
	}
}
