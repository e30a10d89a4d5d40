package math

import "testing"

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Clamp(t *testing.T) {
	half := Vec3{1, 0.15, 0.005}
	got := Vec3{2, -1, 0.001}.Clamp(half)
	want := Vec3{1, -0.15, 0.001}
	if got != want {
		t.Errorf("Vec3.Clamp() = %v, want %v", got, want)
	}
}
