package lighting

import (
	"math"
	"testing"
)

func TestFillDirection(t *testing.T) {
	tests := []struct {
		azimuth, elevation float32
		want               [3]float32
	}{
		{0, 0, [3]float32{0, 0, 1}},
		{90, 0, [3]float32{1, 0, 0}},
		{0, 90, [3]float32{0, 1, 0}},
	}
	for _, tt := range tests {
		got := FillDirection(tt.azimuth, tt.elevation)
		for i := range got {
			if math.Abs(float64(got[i]-tt.want[i])) > 1e-5 {
				t.Errorf("FillDirection(%v, %v) = %v, want %v", tt.azimuth, tt.elevation, got, tt.want)
				break
			}
		}
	}
}

func TestPointLightBuffer(t *testing.T) {
	b := NewPointLightBuffer()
	for i := 0; i < MaxPointLights; i++ {
		if !b.AddLight(PointLight{Color: [3]float32{2, -1, 0.5}, Intensity: 2}) {
			t.Fatalf("light %d rejected", i)
		}
	}
	if b.AddLight(PointLight{}) {
		t.Error("buffer accepted more than MaxPointLights")
	}
	if b.Count() != MaxPointLights {
		t.Errorf("Count() = %d", b.Count())
	}

	colors := b.Colors()
	if colors[0] != 2 || colors[1] != 0 || colors[2] != 1 {
		t.Errorf("colors not clamped then scaled: %v", colors[:3])
	}
	if r := b.Ranges()[0]; r != 10 {
		t.Errorf("default range = %v", r)
	}

	b.Clear()
	if b.Count() != 0 {
		t.Error("Clear left lights behind")
	}
	if len(b.Positions()) != MaxPointLights*3 {
		t.Error("positions must be padded to MaxPointLights")
	}
}

func TestBoardLight(t *testing.T) {
	l := BoardLight(5)
	if l.Position != [3]float32{4, 8, 4} {
		t.Errorf("position = %v", l.Position)
	}
}
