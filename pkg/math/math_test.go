package math

import (
	"math"
	"testing"
)

func TestVec3One(t *testing.T) {
	v := Vec3One()
	if !v.IsOne() {
		t.Errorf("Vec3One() = %v, want (1,1,1)", v)
	}
	if v.IsZero() {
		t.Error("Vec3One().IsZero() = true")
	}
}

func TestVec3ApproxEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want bool
	}{
		{"equal", Vec3{1, 2, 3}, Vec3{1, 2, 3}, true},
		{"within eps", Vec3{1, 2, 3}, Vec3{1.00001, 2, 2.99999}, true},
		{"outside eps", Vec3{1, 2, 3}, Vec3{1.1, 2, 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.ApproxEqual(tt.b, 0.0001); got != tt.want {
				t.Errorf("ApproxEqual() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
	if !q.IsIdentity() {
		t.Error("QuatIdentity().IsIdentity() = false")
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	want := Quat{Y: float32(math.Sin(math.Pi / 4)), W: float32(math.Cos(math.Pi / 4))}
	if !q.ApproxEqual(want, 0.001) {
		t.Errorf("QuatFromAxisAngle = %v, want %v", q, want)
	}
}

func TestVec2IsZero(t *testing.T) {
	if !(Vec2{}).IsZero() {
		t.Error("zero Vec2 not reported as zero")
	}
	if (Vec2{X: 0.5}).IsZero() {
		t.Error("non-zero Vec2 reported as zero")
	}
}
