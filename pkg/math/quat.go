package math

import "math"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part.
type Quat struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	halfAngle := angle / 2
	s := float32(math.Sin(float64(halfAngle)))
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: float32(math.Cos(float64(halfAngle))),
	}
}

// IsIdentity returns true if q is exactly (0, 0, 0, 1).
func (q Quat) IsIdentity() bool {
	return q == QuatIdentity()
}

// ApproxEqual reports whether every component of q is within eps of other.
func (q Quat) ApproxEqual(other Quat, eps float32) bool {
	return near(q.X, other.X, eps) && near(q.Y, other.Y, eps) &&
		near(q.Z, other.Z, eps) && near(q.W, other.W, eps)
}
