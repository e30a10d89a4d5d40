package states

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/labyrinth/internal/engine/audio"
	"github.com/Faultbox/labyrinth/internal/engine/scene"
	"github.com/Faultbox/labyrinth/internal/game/board"
	"github.com/Faultbox/labyrinth/internal/level"
	"github.com/Faultbox/labyrinth/internal/logger"
	"github.com/Faultbox/labyrinth/internal/maze"
)

// bumpInterval is the shortest gap between two bump cues, in seconds.
const bumpInterval = 0.15

// PlayState runs one level: it builds the board on Enter, drives tilt,
// physics and completion every frame, and tears the board down on Exit.
type PlayState struct {
	deps    *Deps
	manager *Manager
	menu    State
	log     *zap.Logger

	maze    *maze.Maze
	handles *board.Handles
	walls   map[scene.Handle]bool
	tilt    *board.TiltController
	watcher *board.CompletionWatcher

	elapsed  float64
	lastBump float64
}

// NewPlayState creates a level state that returns to menu when done.
func NewPlayState(deps *Deps, manager *Manager, menu State) *PlayState {
	return &PlayState{
		deps:    deps,
		manager: manager,
		menu:    menu,
		log:     logger.Named("play"),
	}
}

// Enter generates, compiles and builds a level. A failure is logged and
// sends the player back to the menu.
func (s *PlayState) Enter() error {
	s.elapsed = 0
	s.lastBump = -bumpInterval
	if err := s.setup(); err != nil {
		s.log.Error("level setup failed", zap.Error(err))
		s.manager.Change(s.menu)
		return nil
	}

	s.deps.title(fmt.Sprintf("Labyrinth - %s %dx%d", s.deps.Settings.Maze.Algorithm, s.maze.Width, s.maze.Height))
	s.deps.play(s.log, audio.CueStart)
	return nil
}

func (s *PlayState) setup() error {
	cfg := s.deps.Settings
	m, err := maze.Generate(cfg.Maze)
	if err != nil {
		return err
	}
	s.log.Info("maze generated",
		zap.Stringer("algorithm", cfg.Maze.Algorithm),
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int("solution", len(m.Solution())),
		zap.String("seed", maze.SeedString(m.Seed)),
	)
	s.log.Debug("maze layout\n" + m.String())

	layout, err := level.Compile(m, cfg.Size)
	if err != nil {
		return err
	}
	layout.StartMarker.Restitution = cfg.Restitution

	handles, err := board.NewBuilder(s.deps.World).Build(layout)
	if err != nil {
		return err
	}

	s.maze = m
	s.handles = handles
	s.walls = make(map[scene.Handle]bool, len(handles.Walls))
	for _, w := range handles.Walls {
		s.walls[w] = true
	}
	s.tilt = board.NewTiltController(s.deps.World, handles.Floor, cfg.TiltStep)
	s.watcher = board.NewCompletionWatcher(s.complete)
	return nil
}

// Exit tears down the level and discards pending collision events.
func (s *PlayState) Exit() error {
	if s.handles == nil {
		return nil
	}
	if err := s.handles.Session.Teardown(); err != nil {
		s.log.Warn("level teardown", zap.Error(err))
	}
	s.deps.World.DrainCollisionEvents()
	s.handles = nil
	s.walls = nil
	s.tilt = nil
	return nil
}

// Update tilts the board, steps physics and checks for completion.
func (s *PlayState) Update(dt float64) error {
	if s.handles == nil || s.watcher.Phase() == board.Completed {
		return nil
	}
	s.elapsed += dt

	if _, err := s.tilt.Update(s.deps.Controls); err != nil {
		return fmt.Errorf("tilt: %w", err)
	}
	s.deps.World.Step(float32(dt))

	events := s.deps.World.DrainCollisionEvents()
	for _, ev := range events {
		if s.isBump(ev) && s.elapsed-s.lastBump >= bumpInterval {
			s.lastBump = s.elapsed
			s.deps.play(s.log, audio.CueBump)
			break
		}
	}
	s.watcher.Observe(events)
	return nil
}

// isBump reports a solid contact starting between the marble and a wall.
func (s *PlayState) isBump(ev scene.CollisionEvent) bool {
	if ev.Type != scene.Started || ev.Flags.Has(scene.FlagSensor) {
		return false
	}
	marble := s.handles.StartMarker
	return (ev.A == marble && s.walls[ev.B]) || (ev.B == marble && s.walls[ev.A])
}

func (s *PlayState) complete(ev scene.CollisionEvent) {
	s.log.Info("level completed",
		zap.Duration("time", time.Duration(s.elapsed*float64(time.Second))),
	)
	s.deps.play(s.log, audio.CueGoal)
	s.manager.Change(s.menu)
}

// Phase returns the level phase. It is Playing before a level is built and
// keeps its final value after Exit.
func (s *PlayState) Phase() board.Phase {
	if s.watcher == nil {
		return board.Playing
	}
	return s.watcher.Phase()
}

// Seed returns the hex seed of the running maze, or "".
func (s *PlayState) Seed() string {
	if s.maze == nil {
		return ""
	}
	return maze.SeedString(s.maze.Seed)
}

// Handles returns the objects of the running level, or nil.
func (s *PlayState) Handles() *board.Handles {
	return s.handles
}

// HandleInput processes input actions.
func (s *PlayState) HandleInput(a Action) error {
	if a.Kind == ActionBack {
		s.log.Info("level abandoned")
		s.manager.Change(s.menu)
	}
	return nil
}
