// Package math provides the plain vector and quaternion value types used by
// the SE asset formats.
package math

// Vec2 is a 2D vector, used for texture coordinates.
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// IsZero returns true if both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
