package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/labyrinth/internal/game/board"
)

func TestAxisValue(t *testing.T) {
	tests := []struct {
		raw      int16
		deadZone float32
		want     float32
	}{
		{0, 0.2, 0},
		{3000, 0.2, 0},
		{-3000, 0.2, 0},
		{32767, 0.2, 1},
		{-32768, 0.2, -1},
		{16384, 0, 0.5},
		{32767, 1, 0},
	}
	for _, tt := range tests {
		got := axisValue(tt.raw, tt.deadZone)
		if diff := got - tt.want; diff > 1e-3 || diff < -1e-3 {
			t.Errorf("axisValue(%d, %v) = %v, want %v", tt.raw, tt.deadZone, got, tt.want)
		}
	}
}

func TestAxisValueIsContinuousAtDeadZone(t *testing.T) {
	// Just past the dead zone the output starts near zero.
	got := axisValue(6881, 0.2)
	if got <= 0 || got > 0.02 {
		t.Errorf("axisValue just past dead zone = %v", got)
	}
}

func TestHeld(t *testing.T) {
	in := New(nil, 0.2)
	in.keys = make([]uint8, sdl.NUM_SCANCODES)

	if in.Held(board.TiltForward) {
		t.Fatal("nothing should be held")
	}

	in.keys[sdl.SCANCODE_W] = 1
	if !in.Held(board.TiltForward) {
		t.Error("W should hold forward")
	}
	if in.Held(board.TiltBack) {
		t.Error("W should not hold back")
	}

	in.keys[sdl.SCANCODE_W] = 0
	in.keys[sdl.SCANCODE_LEFT] = 1
	if !in.Held(board.TiltLeft) {
		t.Error("Left arrow should hold left")
	}
}

func TestHeldBeforeFirstUpdate(t *testing.T) {
	in := New(nil, 0)
	for _, tilt := range board.Tilts {
		if in.Held(tilt) {
			t.Errorf("%s held without keyboard state", tilt)
		}
	}
	if !in.Stick().IsZero() {
		t.Error("stick should be centered")
	}
}

func TestDefaultBindingsCoverEveryTilt(t *testing.T) {
	b := DefaultBindings()
	for _, tilt := range board.Tilts {
		if len(b[tilt]) != 2 {
			t.Errorf("%s: want 2 keys, got %d", tilt, len(b[tilt]))
		}
	}
}

func TestParseTilt(t *testing.T) {
	for _, tilt := range board.Tilts {
		got, ok := parseTilt(tilt.String())
		if !ok || got != tilt {
			t.Errorf("parseTilt(%q) = %v, %v", tilt.String(), got, ok)
		}
	}
	if _, ok := parseTilt("up"); ok {
		t.Error("parseTilt(up) should fail")
	}
}
