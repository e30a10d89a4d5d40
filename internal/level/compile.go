package level

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/labyrinth/internal/geom"
	"github.com/Faultbox/labyrinth/internal/maze"
	"github.com/Faultbox/labyrinth/pkg/math"
)

var (
	// ErrInvalidTopology reports a maze the compiler cannot lay out.
	ErrInvalidTopology = errors.New("invalid maze topology")
	// ErrInvalidPlayfield reports a non-positive or non-finite board size.
	ErrInvalidPlayfield = errors.New("invalid playfield size")
)

// Topology is the read-only view of a maze the compiler needs.
// *maze.Maze satisfies it.
type Topology interface {
	Dimensions() (width, height int)
	Field(c maze.Coordinates) (maze.Field, bool)
}

var (
	floorMaterial  = geom.Solid(0.7, 0.7, 0.7)
	wallMaterial   = geom.Solid(0.4, 0.4, 0.4)
	marbleMaterial = geom.Solid(0, 0, 1)
	goalMaterial   = geom.Translucent(0, 1, 0, 0.7)
)

// Compile lays out the board for t on a square floor of side size.
// The floor is centered on the origin; column 0 is at -X and row 0 at -Z.
func Compile(t Topology, size float32) (*Layout, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil topology", ErrInvalidTopology)
	}
	if !(size > 0) || gomath.IsInf(float64(size), 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlayfield, size)
	}
	width, height := t.Dimensions()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidTopology, width, height)
	}

	c := compiler{
		size:       size,
		half:       size / 2,
		cellWidth:  size / float32(width),
		cellHeight: size / float32(height),
	}
	layout := &Layout{
		Size:       size,
		CellWidth:  c.cellWidth,
		CellHeight: c.cellHeight,
		Floor: Placement{
			Kind:      KindFloor,
			Shape:     geom.Plane(size, size),
			Material:  floorMaterial,
			Transform: math.TransformIdentity(),
			Body:      geom.BodyKinematicPositionBased,
			Collider:  geom.ColliderFromMesh,
		},
		Ceiling: Placement{
			Kind:      KindCeiling,
			Shape:     geom.Box(size, 0, size),
			Material:  geom.Invisible,
			Transform: math.TransformFromTranslation(math.Vec3{Y: WallHeight}),
			Parented:  true,
			Body:      geom.BodyKinematicPositionBased,
			Collider:  geom.ColliderPrimitive,
		},
	}

	quarter := math.QuatFromRotationY(gomath.Pi / 2)
	layout.Walls = append(layout.Walls,
		c.wall(KindBorderWall, size, math.Vec3{Y: WallHeight / 2, Z: -c.half}, math.QuatIdentity()),
		c.wall(KindBorderWall, size, math.Vec3{Y: WallHeight / 2, Z: c.half}, math.QuatIdentity()),
		c.wall(KindBorderWall, size, math.Vec3{X: -c.half, Y: WallHeight / 2}, quarter),
		c.wall(KindBorderWall, size, math.Vec3{X: c.half, Y: WallHeight / 2}, quarter),
	)

	var starts, goals int
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			field, ok := t.Field(maze.Coordinates{X: col, Y: row})
			if !ok {
				continue
			}
			left := float32(col)*c.cellWidth - c.half
			top := float32(row)*c.cellHeight - c.half
			center := math.Vec3{X: left + c.cellWidth/2, Z: top + c.cellHeight/2}

			switch field.Kind {
			case maze.Start:
				starts++
				layout.StartMarker = c.startMarker(center)
			case maze.Goal:
				goals++
				layout.GoalMarker, layout.GoalSensor = c.goal(center)
			}

			if row != 0 && !field.HasPassage(maze.North) {
				layout.Walls = append(layout.Walls, c.wall(KindInteriorWall, c.cellWidth,
					math.Vec3{X: center.X, Y: WallHeight / 2, Z: top}, math.QuatIdentity()))
			}
			if col != 0 && !field.HasPassage(maze.West) {
				layout.Walls = append(layout.Walls, c.wall(KindInteriorWall, c.cellHeight,
					math.Vec3{X: left, Y: WallHeight / 2, Z: center.Z}, quarter))
			}
		}
	}

	if starts != 1 || goals != 1 {
		return nil, fmt.Errorf("%w: found %d start and %d goal fields", ErrInvalidTopology, starts, goals)
	}
	return layout, nil
}

type compiler struct {
	size, half            float32
	cellWidth, cellHeight float32
}

// wall returns a slab of the given length along its local X axis.
func (c compiler) wall(kind Kind, length float32, at math.Vec3, rot math.Quat) Placement {
	return Placement{
		Kind:      kind,
		Shape:     geom.Box(length, WallHeight, WallThickness),
		Material:  wallMaterial,
		Transform: math.TransformFromTranslation(at).WithRotation(rot),
		Parented:  true,
		Body:      geom.BodyFixed,
		Collider:  geom.ColliderFromMesh,
	}
}

func (c compiler) startMarker(center math.Vec3) Placement {
	center.Y = MarbleRadius + MarbleClearance
	return Placement{
		Kind:        KindStartMarker,
		Shape:       geom.Sphere(MarbleRadius),
		Material:    marbleMaterial,
		Transform:   math.TransformFromTranslation(center),
		Body:        geom.BodyDynamic,
		Collider:    geom.ColliderPrimitive,
		Events:      true,
		Restitution: Restitution,
	}
}

func (c compiler) goal(center math.Vec3) (marker, sensor Placement) {
	center.Y = WallHeight / 2
	marker = Placement{
		Kind:      KindGoalMarker,
		Shape:     geom.Box(c.cellWidth-GoalInset, WallHeight, c.cellHeight-GoalInset),
		Material:  goalMaterial,
		Transform: math.TransformFromTranslation(center),
		Parented:  true,
	}
	sensor = Placement{
		Kind:     KindGoalSensor,
		Shape:    geom.Segment(math.Vec3{}, math.Vec3{Y: WallHeight}),
		Material: geom.Invisible,
		Transform: math.TransformFromTranslation(center).
			WithRotation(math.QuatFromRotationY(-gomath.Pi / 4)),
		Parented: true,
		Collider: geom.ColliderPrimitive,
		Sensor:   true,
	}
	return marker, sensor
}
