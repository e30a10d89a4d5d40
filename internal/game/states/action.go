package states

import (
	"fmt"

	"github.com/Faultbox/labyrinth/internal/maze"
)

// ActionKind classifies an Action.
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	// ActionStart begins a level from the menu.
	ActionStart
	// ActionBack leaves the level, or quits from the menu.
	ActionBack
	// ActionSelect picks the maze algorithm for the next level.
	ActionSelect
)

// Action is a discrete command decoded from keyboard or gamepad events.
type Action struct {
	Kind      ActionKind
	Algorithm maze.Algorithm // ActionSelect only
}

func (a Action) String() string {
	switch a.Kind {
	case ActionStart:
		return "start"
	case ActionBack:
		return "back"
	case ActionSelect:
		return fmt.Sprintf("select(%s)", a.Algorithm)
	}
	return "none"
}

// Start returns the start action.
func Start() Action { return Action{Kind: ActionStart} }

// Back returns the back action.
func Back() Action { return Action{Kind: ActionBack} }

// Select returns the action choosing alg.
func Select(alg maze.Algorithm) Action {
	return Action{Kind: ActionSelect, Algorithm: alg}
}

// SelectSlot maps the 1-based menu slot n to an algorithm selection.
func SelectSlot(n int) (Action, bool) {
	if n < 1 || n > len(maze.Algorithms) {
		return Action{}, false
	}
	return Select(maze.Algorithms[n-1]), true
}
