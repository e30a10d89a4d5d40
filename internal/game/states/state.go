// Package states implements game state management.
package states

// State represents a game phase (menu, playing a level).
type State interface {
	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every frame.
	Update(dt float64) error

	// HandleInput processes a decoded input action.
	HandleInput(a Action) error
}

// Manager manages game state transitions.
type Manager struct {
	current State
	next    State
	quit    bool
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change. It takes effect on the next Update,
// after the current state has exited.
func (m *Manager) Change(next State) {
	m.next = next
}

// Quit asks the main loop to stop.
func (m *Manager) Quit() {
	m.quit = true
}

// Done reports whether Quit was called.
func (m *Manager) Done() bool {
	return m.quit
}

// Update processes state changes and updates current state.
func (m *Manager) Update(dt float64) error {
	// Handle state transition
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
	}

	// Update current state
	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}

// HandleInput forwards an action to the current state.
func (m *Manager) HandleInput(a Action) error {
	if m.current != nil {
		return m.current.HandleInput(a)
	}
	return nil
}

// Close exits the current state.
func (m *Manager) Close() error {
	m.next = nil
	if m.current == nil {
		return nil
	}
	err := m.current.Exit()
	m.current = nil
	return err
}
