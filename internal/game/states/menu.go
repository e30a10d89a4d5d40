package states

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/labyrinth/internal/engine/audio"
	"github.com/Faultbox/labyrinth/internal/logger"
)

// MenuState waits for the player to start a level. Keys 1-4 pick the maze
// algorithm, which is shown in the window title.
type MenuState struct {
	deps    *Deps
	manager *Manager
	log     *zap.Logger
}

// NewMenuState creates the menu.
func NewMenuState(deps *Deps, manager *Manager) *MenuState {
	return &MenuState{
		deps:    deps,
		manager: manager,
		log:     logger.Named("menu"),
	}
}

// Title is the window title shown while in the menu.
func (s *MenuState) Title() string {
	m := s.deps.Settings.Maze
	return fmt.Sprintf("Labyrinth - %s %dx%d - Enter to play", m.Algorithm, m.Width, m.Height)
}

// Enter is called when entering this state.
func (s *MenuState) Enter() error {
	s.log.Debug("entering menu")
	s.deps.title(s.Title())
	return nil
}

// Exit is called when leaving this state.
func (s *MenuState) Exit() error {
	return nil
}

// Update is called every frame.
func (s *MenuState) Update(dt float64) error {
	return nil
}

// HandleInput processes input actions.
func (s *MenuState) HandleInput(a Action) error {
	switch a.Kind {
	case ActionStart:
		s.deps.play(s.log, audio.CueSelect)
		s.manager.Change(NewPlayState(s.deps, s.manager, s))
	case ActionSelect:
		s.deps.Settings.Maze.Algorithm = a.Algorithm
		s.log.Info("algorithm selected", zap.Stringer("algorithm", a.Algorithm))
		if s.deps.SaveAlgorithm != nil {
			if err := s.deps.SaveAlgorithm(a.Algorithm); err != nil {
				s.log.Warn("algorithm not saved", zap.Error(err))
			}
		}
		s.deps.play(s.log, audio.CueSelect)
		s.deps.title(s.Title())
	case ActionBack:
		s.manager.Quit()
	}
	return nil
}
