package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/labyrinth/internal/engine/scene"
	"github.com/Faultbox/labyrinth/internal/geom"
	"github.com/Faultbox/labyrinth/internal/level"
	"github.com/Faultbox/labyrinth/internal/maze"
	"github.com/Faultbox/labyrinth/pkg/math"
)

var errInjected = errors.New("injected")

// flakyEngine fails the n-th AttachCollider call.
type flakyEngine struct {
	*scene.World
	failAt int
	calls  int
}

func (f *flakyEngine) AttachCollider(h scene.Handle, src geom.ColliderSource) error {
	f.calls++
	if f.calls == f.failAt {
		return errInjected
	}
	return f.World.AttachCollider(h, src)
}

func compile(t *testing.T, width, height int) *level.Layout {
	t.Helper()
	seed := [32]byte{9}
	m, err := maze.Generate(maze.Config{Algorithm: maze.GrowingTree, Width: width, Height: height, Seed: &seed})
	require.NoError(t, err)
	layout, err := level.Compile(m, level.DefaultSize)
	require.NoError(t, err)
	return layout
}

func TestBuildCreatesEveryPlacement(t *testing.T) {
	world := scene.NewWorld(scene.DefaultConfig())
	layout := compile(t, 6, 4)

	h, err := NewBuilder(world).Build(layout)
	require.NoError(t, err)

	assert.Equal(t, len(layout.Placements()), world.Len())
	assert.Equal(t, world.Len(), h.Session.Len())
	assert.Len(t, h.Walls, len(layout.Walls))
	assert.Equal(t, h.Session.Handles(), world.Tagged(h.Session.Tag()))

	for _, child := range append([]scene.Handle{h.GoalMarker, h.GoalSensor, h.Ceiling}, h.Walls...) {
		parent, err := world.Parent(child)
		require.NoError(t, err)
		assert.Equal(t, h.Floor, parent)
	}
	for _, root := range []scene.Handle{h.Floor, h.StartMarker} {
		parent, err := world.Parent(root)
		require.NoError(t, err)
		assert.Zero(t, parent)
	}

	start, err := world.WorldTransform(h.StartMarker)
	require.NoError(t, err)
	assert.Equal(t, layout.StartMarker.Transform, start)
}

func TestBuildFailureTearsDown(t *testing.T) {
	for _, failAt := range []int{1, 3, 7} {
		world := scene.NewWorld(scene.DefaultConfig())
		engine := &flakyEngine{World: world, failAt: failAt}

		h, err := NewBuilder(engine).Build(compile(t, 4, 4))
		assert.Nil(t, h)
		assert.ErrorIs(t, err, ErrSceneCreation)
		assert.ErrorIs(t, err, errInjected)
		assert.Zero(t, world.Len(), "failAt=%d left objects behind", failAt)
	}
}

func TestBuildDegenerateWall(t *testing.T) {
	world := scene.NewWorld(scene.DefaultConfig())
	layout := compile(t, 3, 3)
	walls := append([]level.Placement(nil), layout.Walls...)
	walls[len(walls)-1].Shape = geom.Box(0, 0, 0)
	layout.Walls = walls

	_, err := NewBuilder(world).Build(layout)
	assert.ErrorIs(t, err, ErrSceneCreation)
	assert.ErrorIs(t, err, scene.ErrDegenerateMesh)
	assert.Zero(t, world.Len())
}

func TestBuildNilLayout(t *testing.T) {
	_, err := NewBuilder(scene.NewWorld(scene.DefaultConfig())).Build(nil)
	assert.ErrorIs(t, err, ErrSceneCreation)
}

func TestSessionTeardown(t *testing.T) {
	world := scene.NewWorld(scene.DefaultConfig())
	keep, err := world.CreateObject(scene.ObjectSpec{Name: "camera"})
	require.NoError(t, err)

	h, err := NewBuilder(world).Build(compile(t, 5, 5))
	require.NoError(t, err)

	require.NoError(t, h.Session.Teardown())
	assert.Equal(t, 1, world.Len())
	_, err = world.Transform(keep)
	assert.NoError(t, err)
	assert.Zero(t, h.Session.Len())
	assert.NoError(t, h.Session.Teardown())
}

type brokenDestroyer struct{ calls int }

func (b *brokenDestroyer) DestroySubtree(scene.Handle) error {
	b.calls++
	if b.calls == 1 {
		return scene.ErrUnknownHandle
	}
	return errInjected
}

func TestSessionTeardownReportsErrors(t *testing.T) {
	d := &brokenDestroyer{}
	s := NewSession(d)
	s.Register(1)
	s.Register(2)
	s.Register(3)

	err := s.Teardown()
	assert.ErrorIs(t, err, errInjected)
	assert.Equal(t, 3, d.calls)
	assert.Zero(t, s.Len())
}

func TestSessionIDsAreUnique(t *testing.T) {
	a, b := NewSession(nil), NewSession(nil)
	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.Tag(), b.Tag())
}

func TestLevelPlaysToCompletion(t *testing.T) {
	world := scene.NewWorld(scene.DefaultConfig())
	h, err := NewBuilder(world).Build(compile(t, 2, 1))
	require.NoError(t, err)

	var completions int
	watcher := NewCompletionWatcher(func(ev scene.CollisionEvent) {
		completions++
		assert.True(t, ev.A == h.GoalSensor || ev.B == h.GoalSensor)
	})
	tilt := NewTiltController(world, h.Floor, DefaultIncrement)
	right := &controls{held: map[Tilt]bool{TiltRight: true}}

	for frame := 0; frame < 60*6 && watcher.Phase() == Playing; frame++ {
		if frame < 40 {
			_, err := tilt.Update(right)
			require.NoError(t, err)
		}
		world.Step(1.0 / 60)
		watcher.Observe(world.DrainCollisionEvents())
	}
	assert.Equal(t, Completed, watcher.Phase())
	assert.Equal(t, 1, completions)

	require.NoError(t, h.Session.Teardown())
	assert.Zero(t, world.Len())
	for _, ev := range world.DrainCollisionEvents() {
		assert.Equal(t, scene.Stopped, ev.Type)
	}
}

func approx(t *testing.T, want, got math.Quat) {
	t.Helper()
	const eps = 1e-5
	assert.InDelta(t, want.X, got.X, eps)
	assert.InDelta(t, want.Y, got.Y, eps)
	assert.InDelta(t, want.Z, got.Z, eps)
	assert.InDelta(t, want.W, got.W, eps)
}

