package camera

import (
	"testing"

	"github.com/Faultbox/labyrinth/pkg/math"
)

func near(a, b float32) bool {
	d := a - b
	return d < 1e-4 && d > -1e-4
}

func TestBoardCameraPosition(t *testing.T) {
	tests := []struct {
		size float32
		want math.Vec3
	}{
		{5, math.Vec3{Y: 7, Z: 4}},
		{10, math.Vec3{Y: 14, Z: 8}},
	}
	for _, tt := range tests {
		got := NewBoardCamera(tt.size).Position()
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) || !near(got.Z, tt.want.Z) {
			t.Errorf("size %v: position = %+v, want %+v", tt.size, got, tt.want)
		}
	}
}

func TestHandleZoomClamps(t *testing.T) {
	c := NewBoardCamera(5)
	for i := 0; i < 50; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %v, want min %v", c.Distance, c.MinDistance)
	}
	for i := 0; i < 50; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("distance = %v, want max %v", c.Distance, c.MaxDistance)
	}
}

func TestViewMatrixLooksAtCenter(t *testing.T) {
	c := NewBoardCamera(5)
	p := c.ViewMatrix().TransformVec3(c.Center)
	// The center lies on the view axis, in front of the camera.
	if !near(p.X, 0) || !near(p.Y, 0) || p.Z >= 0 {
		t.Errorf("center in view space = %+v", p)
	}
}
