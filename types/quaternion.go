package types

import "math"

// Quaternion used for converting euler rotations into coordinate frames.
type Quat struct {
	V Vec3
	W float64
}

// Create identity quaternion.
func QuatIdent() Quat {
	return Quat{
		V: Vec3{},
		W: 1.0,
	}
}

// Create a quaternion from an axis vector and an angle in radians.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	return Quat{
		V: axis.Normalize().Mul(math.Sin(angle * 0.5)),
		W: math.Cos(angle * 0.5),
	}
}

// Create a quaternion from XYZ euler angles in radians. The X rotation is
// applied first.
func QuatFromEuler(angles Vec3) Quat {
	qx := QuatFromAxisAngle(Vec3{1, 0, 0}, angles[0])
	qy := QuatFromAxisAngle(Vec3{0, 1, 0}, angles[1])
	qz := QuatFromAxisAngle(Vec3{0, 0, 1}, angles[2])
	return qz.Mul(qy.Mul(qx)).Normalize()
}

// Rotates a vector by the rotation this quaternion represents.
func (q1 Quat) Rotate(v Vec3) Vec3 {
	cross := q1.V.Cross(v)
	// v + 2q_w * (q_v x v) + 2q_v x (q_v x v)
	return v.Add(cross.Mul(2 * q1.W)).Add(q1.V.Mul(2).Cross(cross))
}

// Multiplies two quaternions. Multiplication is not commutative; q1.Mul(q2)
// applies q2 first.
func (q1 Quat) Mul(q2 Quat) Quat {
	return Quat{
		q1.V.Cross(q2.V).Add(q2.V.Mul(q1.W)).Add(q1.V.Mul(q2.W)),
		q1.W*q2.W - q1.V.Dot(q2.V),
	}
}

// Returns the length of the quaternion.
func (q1 Quat) Len() float64 {
	return math.Sqrt(q1.W*q1.W + q1.V.Dot(q1.V))
}

// Normalizes the quaternion, returning its versor (unit quaternion).
func (q1 Quat) Normalize() Quat {
	length := q1.Len()
	if math.Abs(1-length) < floatCmpEpsilon {
		return q1
	}
	if length == 0 {
		return QuatIdent()
	}
	return Quat{q1.V.Mul(1 / length), q1.W / length}
}

// Build a coordinate frame located at origin whose axes are rotated by this
// quaternion and scaled per axis.
func (q1 Quat) Base(origin, scale Vec3) Base {
	return Base{
		Origin: origin,
		XAxis:  q1.Rotate(Vec3{1, 0, 0}).Mul(scale[0]),
		YAxis:  q1.Rotate(Vec3{0, 1, 0}).Mul(scale[1]),
		ZAxis:  q1.Rotate(Vec3{0, 0, 1}).Mul(scale[2]),
	}
}
