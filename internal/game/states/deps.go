package states

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/labyrinth/internal/engine/audio"
	"github.com/Faultbox/labyrinth/internal/engine/scene"
	"github.com/Faultbox/labyrinth/internal/game/board"
	"github.com/Faultbox/labyrinth/internal/maze"
)

// CuePlayer plays sound cues. *audio.Manager satisfies it.
type CuePlayer interface {
	Play(cue audio.Cue) error
}

// Settings describe the next level.
type Settings struct {
	Maze maze.Config
	// Size is the side of the square playfield.
	Size float32
	// TiltStep is the tilt increment per frame, in radians.
	TiltStep float32
	// Restitution of the marble, applied as given. level.Restitution is
	// the usual value.
	Restitution float32
}

// Deps are the collaborators shared by every state.
type Deps struct {
	World    *scene.World
	Controls board.Controls
	Audio    CuePlayer
	Settings *Settings
	// SetTitle updates the window title. May be nil.
	SetTitle func(string)
	// SaveAlgorithm persists a menu choice so it survives a restart. May be
	// nil.
	SaveAlgorithm func(maze.Algorithm) error
}

func (d *Deps) title(s string) {
	if d.SetTitle != nil {
		d.SetTitle(s)
	}
}

func (d *Deps) play(log *zap.Logger, cue audio.Cue) {
	if d.Audio == nil {
		return
	}
	if err := d.Audio.Play(cue); err != nil && !errors.Is(err, audio.ErrNotInitialized) {
		log.Debug("cue failed", zap.Stringer("cue", cue), zap.Error(err))
	}
}
