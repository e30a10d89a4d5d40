package level

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/labyrinth/internal/geom"
	"github.com/Faultbox/labyrinth/internal/maze"
	"github.com/Faultbox/labyrinth/pkg/math"
)

const eps = 1e-5

// corridor builds a width×1 maze open East/West along the whole row.
func corridor(width int) *maze.Maze {
	m := maze.New(width, 1)
	for x := 0; x < width-1; x++ {
		m.Carve(maze.Coordinates{X: x}, maze.East)
	}
	m.SetKind(maze.Coordinates{X: 0}, maze.Start)
	m.SetKind(maze.Coordinates{X: width - 1}, maze.Goal)
	return m
}

// closed builds a maze with every wall standing.
func closed(width, height int) *maze.Maze {
	m := maze.New(width, height)
	m.SetKind(maze.Coordinates{}, maze.Start)
	m.SetKind(maze.Coordinates{X: width - 1, Y: height - 1}, maze.Goal)
	return m
}

// sparse hides some fields from the compiler.
type sparse struct {
	*maze.Maze
	hidden map[maze.Coordinates]bool
}

func (s sparse) Field(c maze.Coordinates) (maze.Field, bool) {
	if s.hidden[c] {
		return maze.Field{}, false
	}
	return s.Maze.Field(c)
}

func expectedInterior(t Topology) int {
	w, h := t.Dimensions()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f, ok := t.Field(maze.Coordinates{X: x, Y: y})
			if !ok {
				continue
			}
			if y != 0 && !f.HasPassage(maze.North) {
				n++
			}
			if x != 0 && !f.HasPassage(maze.West) {
				n++
			}
		}
	}
	return n
}

func TestCompileCorridor(t *testing.T) {
	layout, err := Compile(corridor(5), 5)
	require.NoError(t, err)

	assert.InDelta(t, 1, layout.CellWidth, eps)
	assert.InDelta(t, 5, layout.CellHeight, eps)
	require.Len(t, layout.Walls, 4)
	assert.Empty(t, layout.InteriorWalls())
	for _, w := range layout.BorderWalls() {
		assert.InDelta(t, 5, w.Shape.Extents.X, eps)
	}

	start := layout.StartMarker.Transform.Translation
	assert.InDelta(t, -2, start.X, eps)
	assert.InDelta(t, 0, start.Z, eps)
	assert.InDelta(t, MarbleRadius+MarbleClearance, start.Y, eps)

	goal := layout.GoalMarker.Transform.Translation
	assert.InDelta(t, 2, goal.X, eps)
	assert.InDelta(t, 0, goal.Z, eps)
	assert.Equal(t, goal, layout.GoalSensor.Transform.Translation)
}

func TestBorderWalls(t *testing.T) {
	sizes := []struct{ w, h int }{{1, 2}, {2, 1}, {5, 1}, {3, 7}, {15, 15}}
	for _, sz := range sizes {
		layout, err := Compile(closed(sz.w, sz.h), 5)
		require.NoError(t, err)

		borders := layout.BorderWalls()
		require.Len(t, borders, 4)

		var north, south, west, east bool
		for _, w := range borders {
			assert.Equal(t, KindBorderWall, w.Kind)
			assert.InDelta(t, 5, w.Shape.Extents.X, eps)
			assert.InDelta(t, WallHeight, w.Shape.Extents.Y, eps)
			assert.InDelta(t, WallThickness, w.Shape.Extents.Z, eps)
			assert.True(t, w.Parented)

			p := w.Transform.Translation
			assert.InDelta(t, WallHeight/2, p.Y, eps)
			switch {
			case near(p.Z, -2.5) && near(p.X, 0):
				north = true
			case near(p.Z, 2.5) && near(p.X, 0):
				south = true
			case near(p.X, -2.5) && near(p.Z, 0):
				west = true
			case near(p.X, 2.5) && near(p.Z, 0):
				east = true
			}
		}
		assert.True(t, north && south && west && east, "%dx%d: border sides missing", sz.w, sz.h)
	}
}

func TestInteriorWallCount(t *testing.T) {
	seed := [32]byte{7}
	for _, alg := range maze.Algorithms {
		m, err := maze.Generate(maze.Config{Algorithm: alg, Width: 9, Height: 6, Seed: &seed})
		require.NoError(t, err)

		layout, err := Compile(m, DefaultSize)
		require.NoError(t, err)
		assert.Len(t, layout.InteriorWalls(), expectedInterior(m), alg.String())
	}

	layout, err := Compile(closed(4, 3), DefaultSize)
	require.NoError(t, err)
	// (h-1)*w north walls plus (w-1)*h west walls.
	assert.Len(t, layout.InteriorWalls(), 2*4+3*3)
}

func TestInteriorWallPlacement(t *testing.T) {
	m := closed(2, 2)
	layout, err := Compile(m, 4)
	require.NoError(t, err)

	// Row-major: (1,0) west, (0,1) north, (1,1) north, (1,1) west.
	walls := layout.InteriorWalls()
	require.Len(t, walls, 4)

	quarter := math.QuatFromRotationY(gomath.Pi / 2)
	assertWall(t, walls[0], math.Vec3{X: 0, Y: WallHeight / 2, Z: -1}, quarter, 2)
	assertWall(t, walls[1], math.Vec3{X: -1, Y: WallHeight / 2, Z: 0}, math.QuatIdentity(), 2)
	assertWall(t, walls[2], math.Vec3{X: 1, Y: WallHeight / 2, Z: 0}, math.QuatIdentity(), 2)
	assertWall(t, walls[3], math.Vec3{X: 0, Y: WallHeight / 2, Z: 1}, quarter, 2)
}

func TestNonSquareCells(t *testing.T) {
	layout, err := Compile(closed(4, 2), 5)
	require.NoError(t, err)
	assert.InDelta(t, 1.25, layout.CellWidth, eps)
	assert.InDelta(t, 2.5, layout.CellHeight, eps)

	for _, w := range layout.InteriorWalls() {
		if w.Transform.Rotation == math.QuatIdentity() {
			assert.InDelta(t, 1.25, w.Shape.Extents.X, eps, "north walls span a cell width")
		} else {
			assert.InDelta(t, 2.5, w.Shape.Extents.X, eps, "west walls span a cell height")
		}
		assert.InDelta(t, WallThickness, w.Shape.Extents.Z, eps)
		assert.InDelta(t, WallHeight, w.Shape.Extents.Y, eps)
	}

	goal := layout.GoalMarker.Shape.Extents
	assert.InDelta(t, 1.25-GoalInset, goal.X, eps)
	assert.InDelta(t, 2.5-GoalInset, goal.Z, eps)
}

func TestExactlyOneStartAndGoal(t *testing.T) {
	layout, err := Compile(closed(6, 6), DefaultSize)
	require.NoError(t, err)

	counts := map[Kind]int{}
	for _, p := range layout.Placements() {
		counts[p.Kind]++
	}
	assert.Equal(t, 1, counts[KindStartMarker])
	assert.Equal(t, 1, counts[KindGoalMarker])
	assert.Equal(t, 1, counts[KindGoalSensor])
	assert.Equal(t, 1, counts[KindFloor])
	assert.Equal(t, 1, counts[KindCeiling])
	assert.Equal(t, 4, counts[KindBorderWall])
}

func TestPlacementRoles(t *testing.T) {
	layout, err := Compile(corridor(3), DefaultSize)
	require.NoError(t, err)

	assert.False(t, layout.Floor.Parented)
	assert.Equal(t, geom.BodyKinematicPositionBased, layout.Floor.Body)
	assert.Equal(t, geom.ColliderFromMesh, layout.Floor.Collider)

	marble := layout.StartMarker
	assert.False(t, marble.Parented, "the marble is a free body")
	assert.Equal(t, geom.BodyDynamic, marble.Body)
	assert.Equal(t, geom.ShapeSphere, marble.Shape.Kind)
	assert.True(t, marble.Events)
	assert.InDelta(t, Restitution, marble.Restitution, eps)

	goal := layout.GoalMarker
	assert.True(t, goal.Parented)
	assert.Equal(t, geom.ColliderNone, goal.Collider)
	assert.Less(t, goal.Material.Color[3], float32(1))

	sensor := layout.GoalSensor
	assert.True(t, sensor.Parented)
	assert.True(t, sensor.Sensor)
	assert.Equal(t, geom.ShapeSegment, sensor.Shape.Kind)
	assert.Equal(t, geom.BodyNone, sensor.Body)
	want := math.QuatFromRotationY(-gomath.Pi / 4)
	assert.InDelta(t, want.Y, sensor.Transform.Rotation.Y, eps)
	assert.InDelta(t, want.W, sensor.Transform.Rotation.W, eps)

	ceiling := layout.Ceiling
	assert.True(t, ceiling.Parented)
	assert.Equal(t, geom.ColliderPrimitive, ceiling.Collider)
	assert.InDelta(t, WallHeight, ceiling.Transform.Translation.Y, eps)
	assert.Zero(t, ceiling.Shape.Extents.Y)
	assert.False(t, ceiling.Material.Visible)

	placements := layout.Placements()
	assert.Equal(t, KindFloor, placements[0].Kind)
	assert.Equal(t, KindStartMarker, placements[len(placements)-1].Kind)
}

func TestCompileDeterministic(t *testing.T) {
	seed := [32]byte{1, 2, 3}
	m, err := maze.Generate(maze.Config{Algorithm: maze.Prims, Width: 15, Height: 15, Seed: &seed})
	require.NoError(t, err)

	a, err := Compile(m, DefaultSize)
	require.NoError(t, err)
	b, err := Compile(m, DefaultSize)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompileSkipsMissingFields(t *testing.T) {
	m := closed(3, 3)
	s := sparse{Maze: m, hidden: map[maze.Coordinates]bool{{X: 1, Y: 1}: true, {X: 2, Y: 0}: true}}

	layout, err := Compile(s, DefaultSize)
	require.NoError(t, err)
	assert.Len(t, layout.InteriorWalls(), expectedInterior(s))
	assert.Less(t, len(layout.InteriorWalls()), expectedInterior(m))
}

func TestCompileAsymmetricPassages(t *testing.T) {
	m := closed(3, 1)
	// Open only the west side of (1,0); the east side of (0,0) stays closed.
	m.SetPassage(maze.Coordinates{X: 1}, maze.West, true)
	// Passages off the grid edge are ignored by the row/column exclusions.
	m.SetPassage(maze.Coordinates{X: 0}, maze.West, true)
	m.SetPassage(maze.Coordinates{X: 2}, maze.North, true)

	layout, err := Compile(m, DefaultSize)
	require.NoError(t, err)
	assert.Len(t, layout.InteriorWalls(), 1)
}

func TestCompileErrors(t *testing.T) {
	noStart := maze.New(3, 3)
	noStart.SetKind(maze.Coordinates{X: 2, Y: 2}, maze.Goal)

	twoGoals := closed(3, 3)
	twoGoals.SetKind(maze.Coordinates{X: 1, Y: 1}, maze.Goal)

	tests := []struct {
		name string
		topo Topology
		size float32
		want error
	}{
		{"nil topology", nil, 5, ErrInvalidTopology},
		{"zero width", maze.New(0, 3), 5, ErrInvalidTopology},
		{"zero height", maze.New(3, 0), 5, ErrInvalidTopology},
		{"missing start", noStart, 5, ErrInvalidTopology},
		{"missing goal", maze.New(2, 2), 5, ErrInvalidTopology},
		{"two goals", twoGoals, 5, ErrInvalidTopology},
		{"zero size", closed(2, 2), 0, ErrInvalidPlayfield},
		{"negative size", closed(2, 2), -1, ErrInvalidPlayfield},
		{"nan size", closed(2, 2), float32(gomath.NaN()), ErrInvalidPlayfield},
		{"infinite size", closed(2, 2), float32(gomath.Inf(1)), ErrInvalidPlayfield},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := Compile(tt.topo, tt.size)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, layout)
		})
	}
}

func assertWall(t *testing.T, w Placement, at math.Vec3, rot math.Quat, length float32) {
	t.Helper()
	assert.Equal(t, KindInteriorWall, w.Kind)
	assert.InDelta(t, at.X, w.Transform.Translation.X, eps)
	assert.InDelta(t, at.Y, w.Transform.Translation.Y, eps)
	assert.InDelta(t, at.Z, w.Transform.Translation.Z, eps)
	assert.InDelta(t, rot.Y, w.Transform.Rotation.Y, eps)
	assert.InDelta(t, rot.W, w.Transform.Rotation.W, eps)
	assert.InDelta(t, length, w.Shape.Extents.X, eps)
}

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < eps
}
