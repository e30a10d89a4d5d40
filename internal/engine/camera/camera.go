// Package camera provides the orbit camera that frames the board.
package camera

import (
	gomath "math"

	"github.com/Faultbox/labyrinth/pkg/math"
)

// referenceSize is the board side the default framing was tuned for.
const referenceSize = 5

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Projection
	FovY      float32
	Near, Far float32

	// Constraints
	MinDistance float32
	MaxDistance float32

	ZoomSensitivity float32
}

// NewBoardCamera frames a square board of the given side from above and in
// front. For a 5 unit board the eye sits at (0, 7, 4).
func NewBoardCamera(size float32) *OrbitCamera {
	c := &OrbitCamera{
		FovY:            float32(gomath.Pi / 4),
		Near:            0.1,
		Far:             100,
		ZoomSensitivity: 0.1,
	}
	c.FitToBoard(size)
	return c
}

// FitToBoard places the camera so a board of side size fills the view.
func (c *OrbitCamera) FitToBoard(size float32) {
	scale := size / referenceSize
	c.Center = math.Vec3{}
	c.Distance = float32(gomath.Hypot(7, 4)) * scale
	c.RotationX = float32(gomath.Atan2(7, 4))
	c.RotationY = 0
	c.MinDistance = c.Distance * 0.5
	c.MaxDistance = c.Distance * 2
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, math.AxisY)
}

// ProjectionMatrix returns the perspective projection for the aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// HandleZoom updates distance based on a zoom delta, positive moves closer.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = min(max(c.Distance, c.MinDistance), c.MaxDistance)
}
