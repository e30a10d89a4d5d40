// Package audio synthesizes and plays the game's sound cues.
package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Cue identifies a sound effect.
type Cue uint8

const (
	// CueSelect confirms a menu choice.
	CueSelect Cue = iota
	// CueStart plays when a level begins.
	CueStart
	// CueBump plays when the marble hits a wall.
	CueBump
	// CueGoal plays when the marble reaches the goal.
	CueGoal
)

func (c Cue) String() string {
	switch c {
	case CueSelect:
		return "select"
	case CueStart:
		return "start"
	case CueBump:
		return "bump"
	case CueGoal:
		return "goal"
	}
	return "unknown"
}

// Manager handles audio playback for the game.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64

	// mixer plays cues concurrently; ctrl pauses everything at once.
	mixer *beep.Mixer
	ctrl  *beep.Ctrl
}

// New creates a new audio manager.
func New() *Manager {
	mixer := &beep.Mixer{}
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  0.8,
		mixer:        mixer,
		ctrl:         &beep.Ctrl{Streamer: mixer},
	}
}

// Init initializes the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.ctrl)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
	}
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the SFX volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the SFX volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// SetMuted pauses or resumes all output.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	m.ctrl.Paused = muted
}

// Muted reports whether output is paused.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return m.ctrl.Paused
}

// Play mixes a cue into the output.
func (m *Manager) Play(cue Cue) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.masterVolume * m.sfxVolLevel
	rate := m.sampleRate
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}

	s, err := cueStreamer(rate, cue)
	if err != nil {
		return err
	}

	speaker.Lock()
	m.mixer.Add(&effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeToDb(vol) / 6,
		Silent:   vol <= 0,
	})
	speaker.Unlock()
	return nil
}

// note is one tone of a cue.
type note struct {
	freq     float64
	duration time.Duration
	gain     float64
}

func cueNotes(cue Cue) ([]note, error) {
	switch cue {
	case CueSelect:
		return []note{{880, 60 * time.Millisecond, 0.4}}, nil
	case CueStart:
		return []note{{523.25, 90 * time.Millisecond, 0.5}, {783.99, 140 * time.Millisecond, 0.5}}, nil
	case CueBump:
		return []note{{140, 45 * time.Millisecond, 0.6}}, nil
	case CueGoal:
		return []note{
			{659.25, 110 * time.Millisecond, 0.5},
			{783.99, 110 * time.Millisecond, 0.5},
			{1046.5, 320 * time.Millisecond, 0.6},
		}, nil
	}
	return nil, fmt.Errorf("unknown cue %d", cue)
}

// cueStreamer renders a cue as a sequence of enveloped sine tones.
func cueStreamer(rate beep.SampleRate, cue Cue) (beep.Streamer, error) {
	notes, err := cueNotes(cue)
	if err != nil {
		return nil, err
	}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("%s cue: %w", cue, err)
		}
		length := rate.N(n.duration)
		parts = append(parts, newEnvelope(beep.Take(length, tone), length, rate.N(5*time.Millisecond), n.gain))
	}
	return beep.Seq(parts...), nil
}

// envelope applies a linear attack and a linear release over length
// samples.
type envelope struct {
	streamer beep.Streamer
	length   int
	attack   int
	gain     float64
	position int
}

func newEnvelope(s beep.Streamer, length, attack int, gain float64) *envelope {
	return &envelope{streamer: s, length: length, attack: attack, gain: gain}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := e.gain * e.level(e.position)
		samples[i][0] *= g
		samples[i][1] *= g
		e.position++
	}
	return n, ok
}

func (e *envelope) level(pos int) float64 {
	if e.length <= 0 {
		return 0
	}
	if e.attack > 0 && pos < e.attack {
		return float64(pos) / float64(e.attack)
	}
	rest := e.length - e.attack
	if rest <= 0 {
		return 1
	}
	return clamp(1-float64(pos-e.attack)/float64(rest), 0, 1)
}

func (e *envelope) Err() error {
	return e.streamer.Err()
}

// volumeToDb converts a 0-1 volume to decibel scale.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100 // Effectively silent
	}
	return 20 * math.Log10(vol)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
