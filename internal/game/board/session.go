package board

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Faultbox/labyrinth/internal/engine/scene"
)

// Session owns every scene handle created for one play session.
type Session struct {
	ID      uuid.UUID
	engine  Destroyer
	handles []scene.Handle
}

// NewSession starts an empty session with a fresh ID.
func NewSession(engine Destroyer) *Session {
	return &Session{ID: uuid.New(), engine: engine}
}

// Tag is the marker attached to objects created for this session.
func (s *Session) Tag() string {
	return "session:" + s.ID.String()
}

// Register records a handle for teardown.
func (s *Session) Register(h scene.Handle) {
	s.handles = append(s.handles, h)
}

// Handles returns the registered handles in registration order.
func (s *Session) Handles() []scene.Handle {
	return append([]scene.Handle(nil), s.handles...)
}

// Len returns the number of registered handles.
func (s *Session) Len() int {
	return len(s.handles)
}

// Teardown destroys every registered handle, newest first, and empties the
// session. Handles already removed with an ancestor are skipped.
func (s *Session) Teardown() error {
	var errs []error
	for i := len(s.handles) - 1; i >= 0; i-- {
		err := s.engine.DestroySubtree(s.handles[i])
		if err != nil && !errors.Is(err, scene.ErrUnknownHandle) {
			errs = append(errs, fmt.Errorf("destroy %d: %w", s.handles[i], err))
		}
	}
	s.handles = nil
	return errors.Join(errs...)
}
