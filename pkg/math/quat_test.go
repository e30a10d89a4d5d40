package math

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.0001
}

func nearVec(a, b Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestQuatFromRotationY(t *testing.T) {
	q := QuatFromRotationY(float32(math.Pi / 2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))
	if !near(q.W, expectedW) || !near(q.Y, expectedY) {
		t.Errorf("QuatFromRotationY: got %+v", q)
	}
}

func TestQuatRotateMatchesMatrix(t *testing.T) {
	tests := []struct {
		name string
		q    Quat
		v    Vec3
	}{
		{"yaw quarter turn", QuatFromRotationY(float32(math.Pi / 2)), Vec3{1, 0, 0}},
		{"pitch", QuatFromAxisAngle(AxisX, 0.3), Vec3{0, 1, 2}},
		{"roll", QuatFromAxisAngle(AxisZ, -1.1), Vec3{3, -1, 0.5}},
		{"diagonal", QuatFromRotationY(-float32(math.Pi / 4)), Vec3{0, 0.3, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.q.Rotate(tt.v)
			want := tt.q.ToMat4().TransformVec3(tt.v)
			if !nearVec(got, want) {
				t.Errorf("Rotate = %v, matrix = %v", got, want)
			}
		})
	}
}

func TestQuatMulOrder(t *testing.T) {
	yaw := QuatFromRotationY(float32(math.Pi / 2))
	pitch := QuatFromAxisAngle(AxisX, float32(math.Pi/2))

	// pitch is applied first: +Y -> +Z, then yaw: +Z -> +X
	got := yaw.Mul(pitch).Rotate(Vec3{0, 1, 0})
	if !nearVec(got, Vec3{1, 0, 0}) {
		t.Errorf("yaw*pitch rotated +Y to %v, want +X", got)
	}
}

func TestQuatConjugateUndoes(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{1, 1, 0}.Normalize(), 0.7)
	v := Vec3{0.2, -4, 1}

	got := q.Conjugate().Rotate(q.Rotate(v))
	if !nearVec(got, v) {
		t.Errorf("conjugate round trip: got %v, want %v", got, v)
	}
}

func TestQuatNormalizeDegenerate(t *testing.T) {
	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("zero quaternion should normalize to identity, got %+v", got)
	}
}
