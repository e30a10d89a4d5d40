// Package level compiles a maze topology into the placements of a playable
// board: floor, walls, marble, goal and ceiling.
package level

import (
	"github.com/Faultbox/labyrinth/internal/geom"
	"github.com/Faultbox/labyrinth/pkg/math"
)

// Board dimensions in world units. They do not scale with the playfield.
const (
	WallHeight      float32 = 0.3
	WallThickness   float32 = 0.01
	MarbleRadius    float32 = 0.1
	MarbleClearance float32 = 0.01
	GoalInset       float32 = 0.01
	DefaultSize     float32 = 5
	Restitution     float32 = 0.7
)

// Kind identifies the role of a placement on the board.
type Kind uint8

const (
	KindFloor Kind = iota
	KindBorderWall
	KindInteriorWall
	KindStartMarker
	KindGoalMarker
	KindGoalSensor
	KindCeiling
)

func (k Kind) String() string {
	switch k {
	case KindFloor:
		return "floor"
	case KindBorderWall:
		return "border_wall"
	case KindInteriorWall:
		return "interior_wall"
	case KindStartMarker:
		return "start_marker"
	case KindGoalMarker:
		return "goal_marker"
	case KindGoalSensor:
		return "goal_sensor"
	case KindCeiling:
		return "ceiling"
	}
	return "unknown"
}

// Placement describes one scene object to create.
//
// When Parented is set, Transform is relative to the floor.
type Placement struct {
	Kind        Kind
	Shape       geom.Shape
	Material    geom.Material
	Transform   math.Transform
	Parented    bool
	Body        geom.BodyKind
	Collider    geom.ColliderSource
	Sensor      bool
	Events      bool
	Restitution float32
}

// Layout is the compiled board. It is immutable once returned by Compile.
type Layout struct {
	Size       float32
	CellWidth  float32
	CellHeight float32

	Floor Placement
	// Walls holds the four border walls first, then interior walls in
	// row-major emission order.
	Walls       []Placement
	StartMarker Placement
	GoalMarker  Placement
	GoalSensor  Placement
	Ceiling     Placement
}

// BorderWalls returns the four outer walls.
func (l *Layout) BorderWalls() []Placement {
	return l.Walls[:4]
}

// InteriorWalls returns the walls emitted from missing passages.
func (l *Layout) InteriorWalls() []Placement {
	return l.Walls[4:]
}

// Placements returns every placement in creation order: the floor first so
// that children can reference it, then walls, goal, sensor, ceiling and the
// marble last.
func (l *Layout) Placements() []Placement {
	out := make([]Placement, 0, len(l.Walls)+5)
	out = append(out, l.Floor)
	out = append(out, l.Walls...)
	out = append(out, l.GoalMarker, l.GoalSensor, l.Ceiling, l.StartMarker)
	return out
}
