package board

import "github.com/Faultbox/labyrinth/internal/engine/scene"

// Phase is the state of a play session.
type Phase uint8

const (
	Playing Phase = iota
	Completed
)

func (p Phase) String() string {
	if p == Completed {
		return "completed"
	}
	return "playing"
}

// CompletionWatcher ends the session on the first sensor contact.
type CompletionWatcher struct {
	phase      Phase
	onComplete func(scene.CollisionEvent)
}

// NewCompletionWatcher returns a watcher in the Playing phase. onComplete
// may be nil.
func NewCompletionWatcher(onComplete func(scene.CollisionEvent)) *CompletionWatcher {
	return &CompletionWatcher{onComplete: onComplete}
}

// Phase returns the current phase.
func (w *CompletionWatcher) Phase() Phase {
	return w.phase
}

// Observe consumes a frame's events and reports whether this call completed
// the session. Once Completed, events are ignored until Reset.
func (w *CompletionWatcher) Observe(events []scene.CollisionEvent) bool {
	if w.phase == Completed {
		return false
	}
	for _, ev := range events {
		if ev.Type != scene.Started || !ev.Flags.Has(scene.FlagSensor) {
			continue
		}
		w.phase = Completed
		if w.onComplete != nil {
			w.onComplete(ev)
		}
		return true
	}
	return false
}

// Reset returns the watcher to Playing.
func (w *CompletionWatcher) Reset() {
	w.phase = Playing
}
