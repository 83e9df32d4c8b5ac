package math

// Vec3 is a 3D vector.
type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Vec3One returns (1, 1, 1), the identity scale.
func Vec3One() Vec3 {
	return Vec3{X: 1, Y: 1, Z: 1}
}

// IsZero returns true if all components are zero.
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// IsOne returns true if all components are one.
func (v Vec3) IsOne() bool {
	return v.X == 1 && v.Y == 1 && v.Z == 1
}

// ApproxEqual reports whether every component of v is within eps of other.
func (v Vec3) ApproxEqual(other Vec3, eps float32) bool {
	return near(v.X, other.X, eps) && near(v.Y, other.Y, eps) && near(v.Z, other.Z, eps)
}

func near(a, b, eps float32) bool {
	d := a - b
	return d <= eps && d >= -eps
}
