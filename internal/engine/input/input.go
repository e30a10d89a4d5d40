// Package input polls SDL2 events and samples the keyboard and game
// controllers once per frame.
package input

import (
	"fmt"
	"strings"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/labyrinth/internal/game/board"
	"github.com/Faultbox/labyrinth/pkg/math"
)

// EventType classifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventButtonDown
	EventPadAdded
	EventPadRemoved
	EventWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Button sdl.GameControllerButton
	Width  int
	Height int
	Wheel  float32
}

// Bindings maps each tilt direction to the physical keys that drive it.
// Scancodes are positional, so W/A/S/D sit where Z/Q/S/D are on AZERTY.
type Bindings map[board.Tilt][]sdl.Scancode

// DefaultBindings binds the arrows and W/A/S/D.
func DefaultBindings() Bindings {
	return Bindings{
		board.TiltForward: {sdl.SCANCODE_UP, sdl.SCANCODE_W},
		board.TiltBack:    {sdl.SCANCODE_DOWN, sdl.SCANCODE_S},
		board.TiltLeft:    {sdl.SCANCODE_LEFT, sdl.SCANCODE_A},
		board.TiltRight:   {sdl.SCANCODE_RIGHT, sdl.SCANCODE_D},
	}
}

// ParseBindings resolves SDL key names ("Up", "W") per tilt direction
// ("forward", "back", "left", "right"). Missing directions keep defaults.
func ParseBindings(names map[string][]string) (Bindings, error) {
	b := DefaultBindings()
	for dir, keys := range names {
		tilt, ok := parseTilt(dir)
		if !ok {
			return nil, fmt.Errorf("unknown tilt direction %q", dir)
		}
		codes := make([]sdl.Scancode, 0, len(keys))
		for _, k := range keys {
			sc := sdl.GetScancodeFromName(k)
			if sc == sdl.SCANCODE_UNKNOWN {
				return nil, fmt.Errorf("unknown key %q for %s", k, dir)
			}
			codes = append(codes, sc)
		}
		b[tilt] = codes
	}
	return b, nil
}

func parseTilt(s string) (board.Tilt, bool) {
	for _, t := range board.Tilts {
		if strings.EqualFold(s, t.String()) {
			return t, true
		}
	}
	return 0, false
}

// Input handles all input processing. It implements board.Controls.
type Input struct {
	events   []Event
	keys     []uint8
	bindings Bindings
	deadZone float32
	pads     map[sdl.JoystickID]*sdl.GameController
	stick    math.Vec2
}

var _ board.Controls = (*Input)(nil)

// New creates an input handler. deadZone is the fraction of stick travel
// ignored around the center.
func New(bindings Bindings, deadZone float32) *Input {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Input{
		events:   make([]Event, 0, 16),
		bindings: bindings,
		deadZone: deadZone,
		pads:     make(map[sdl.JoystickID]*sdl.GameController),
	}
}

// Update polls SDL events, then samples key and stick state.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{Type: EventKeyUp, Key: e.Keysym.Scancode})
			}

		case *sdl.MouseWheelEvent:
			if e.Y != 0 {
				i.events = append(i.events, Event{Type: EventWheel, Wheel: float32(e.Y)})
			}

		case *sdl.ControllerDeviceEvent:
			i.handleDevice(e)

		case *sdl.ControllerButtonEvent:
			if e.Type == sdl.CONTROLLERBUTTONDOWN {
				i.events = append(i.events, Event{
					Type:   EventButtonDown,
					Button: sdl.GameControllerButton(e.Button),
				})
			}
		}
	}

	i.keys = sdl.GetKeyboardState()
	i.stick = i.sampleStick()
	return quit
}

func (i *Input) handleDevice(e *sdl.ControllerDeviceEvent) {
	switch e.Type {
	case sdl.CONTROLLERDEVICEADDED:
		pad := sdl.GameControllerOpen(int(e.Which))
		if pad == nil {
			return
		}
		i.pads[pad.Joystick().InstanceID()] = pad
		i.events = append(i.events, Event{Type: EventPadAdded})
	case sdl.CONTROLLERDEVICEREMOVED:
		if pad, ok := i.pads[e.Which]; ok {
			pad.Close()
			delete(i.pads, e.Which)
			i.events = append(i.events, Event{Type: EventPadRemoved})
		}
	}
}

// sampleStick returns the left stick of the first controller outside the
// dead zone, with up positive.
func (i *Input) sampleStick() math.Vec2 {
	for _, pad := range i.pads {
		s := math.Vec2{
			X: axisValue(pad.Axis(sdl.CONTROLLER_AXIS_LEFTX), i.deadZone),
			Y: -axisValue(pad.Axis(sdl.CONTROLLER_AXIS_LEFTY), i.deadZone),
		}
		if !s.IsZero() {
			return s
		}
	}
	return math.Vec2{}
}

// axisValue maps a raw axis reading to [-1, 1], zeroing the dead zone and
// rescaling the rest so output starts at 0 at its edge.
func axisValue(raw int16, deadZone float32) float32 {
	v := float32(raw) / 32767
	v = min(max(v, -1), 1)
	mag := v
	if mag < 0 {
		mag = -mag
	}
	if mag <= deadZone || deadZone >= 1 {
		return 0
	}
	scaled := (mag - deadZone) / (1 - deadZone)
	if v < 0 {
		return -scaled
	}
	return scaled
}

// Held reports whether a key bound to t is down.
func (i *Input) Held(t board.Tilt) bool {
	for _, sc := range i.bindings[t] {
		if int(sc) < len(i.keys) && i.keys[sc] != 0 {
			return true
		}
	}
	return false
}

// Stick returns the analog stick sampled by the last Update.
func (i *Input) Stick() math.Vec2 {
	return i.stick
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Close releases open game controllers.
func (i *Input) Close() {
	for id, pad := range i.pads {
		pad.Close()
		delete(i.pads, id)
	}
}
