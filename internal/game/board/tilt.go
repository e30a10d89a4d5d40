package board

import (
	gomath "math"

	"github.com/Faultbox/labyrinth/internal/engine/scene"
	"github.com/Faultbox/labyrinth/pkg/math"
)

// DefaultIncrement is the tilt applied per tick of held input, in radians.
const DefaultIncrement float32 = gomath.Pi / 720

// Tilt is a logical tilt direction.
type Tilt uint8

const (
	TiltForward Tilt = iota
	TiltBack
	TiltLeft
	TiltRight
)

// Tilts lists every direction.
var Tilts = [...]Tilt{TiltForward, TiltBack, TiltLeft, TiltRight}

func (t Tilt) String() string {
	switch t {
	case TiltForward:
		return "forward"
	case TiltBack:
		return "back"
	case TiltLeft:
		return "left"
	default:
		return "right"
	}
}

// Controls is the per-frame input snapshot.
type Controls interface {
	// Held reports whether any key bound to t is down.
	Held(t Tilt) bool
	// Stick returns the analog stick in [-1, 1], up and right positive.
	Stick() math.Vec2
}

// TiltController rotates the floor from held input.
type TiltController struct {
	// Increment is the largest rotation applied per axis and tick.
	Increment float32

	engine Orienter
	floor  scene.Handle
}

// NewTiltController drives floor on engine.
func NewTiltController(engine Orienter, floor scene.Handle, increment float32) *TiltController {
	return &TiltController{Increment: increment, engine: engine, floor: floor}
}

// Angles returns the rotation about the floor's local X and Z axes for this
// tick, and whether any input is active.
func (c *TiltController) Angles(in Controls) (x, z float32, active bool) {
	d := c.Increment
	for _, t := range Tilts {
		if in.Held(t) {
			active = true
		}
	}
	if in.Held(TiltForward) {
		x -= d
	}
	if in.Held(TiltBack) {
		x += d
	}
	if in.Held(TiltRight) {
		z -= d
	}
	if in.Held(TiltLeft) {
		z += d
	}

	if s := in.Stick(); !s.IsZero() {
		active = true
		x -= s.Y * d
		z -= s.X * d
	}
	return clamp(x, d), clamp(z, d), active
}

// Update applies one tick of tilt and reports whether the floor was written.
// Without input, or when opposing inputs cancel, the floor is not touched.
func (c *TiltController) Update(in Controls) (bool, error) {
	x, z, active := c.Angles(in)
	if !active || (x == 0 && z == 0) {
		return false, nil
	}
	t, err := c.engine.Transform(c.floor)
	if err != nil {
		return false, err
	}
	t = t.RotateLocal(math.AxisX, x).RotateLocal(math.AxisZ, z)
	if err := c.engine.SetTransform(c.floor, t); err != nil {
		return false, err
	}
	return true, nil
}

// Orientation returns the floor's current rotation.
func (c *TiltController) Orientation() (math.Quat, error) {
	t, err := c.engine.Transform(c.floor)
	if err != nil {
		return math.Quat{}, err
	}
	return t.Rotation, nil
}

func clamp(v, limit float32) float32 {
	return min(max(v, -limit), limit)
}
