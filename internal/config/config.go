// Package config handles game configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/labyrinth/internal/maze"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Maze     MazeConfig     `yaml:"maze"`
	Board    BoardConfig    `yaml:"board"`
	Controls ControlsConfig `yaml:"controls"`
	Game     GameConfig     `yaml:"game"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	MSAA       int  `yaml:"msaa"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// MazeConfig selects how levels are generated.
type MazeConfig struct {
	Algorithm string `yaml:"algorithm"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	// Seed is 64 hex characters; empty draws a fresh seed per level.
	Seed string `yaml:"seed"`
}

// BoardConfig holds playfield and physics settings.
type BoardConfig struct {
	Size        float32 `yaml:"size"`
	TiltStep    float32 `yaml:"tilt_step"`
	Gravity     float32 `yaml:"gravity"`
	Restitution float32 `yaml:"restitution"`
	PhysicsHz   int     `yaml:"physics_hz"`
}

// ControlsConfig binds SDL key names to tilt directions.
type ControlsConfig struct {
	Forward       []string `yaml:"forward"`
	Back          []string `yaml:"back"`
	Left          []string `yaml:"left"`
	Right         []string `yaml:"right"`
	StickDeadZone float32  `yaml:"stick_dead_zone"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	ShowFPS bool `yaml:"show_fps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			MSAA:       4,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Maze: MazeConfig{
			Algorithm: maze.GrowingTree.String(),
			Width:     15,
			Height:    15,
		},
		Board: BoardConfig{
			Size:        5,
			TiltStep:    0.25, // degrees per tick
			Gravity:     9.81,
			Restitution: 0.7,
			PhysicsHz:   240,
		},
		Controls: ControlsConfig{
			Forward:       []string{"Up", "W"},
			Back:          []string{"Down", "S"},
			Left:          []string{"Left", "A"},
			Right:         []string{"Right", "D"},
			StickDeadZone: 0.2,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values the game cannot run with.
func (c *Config) Validate() error {
	if _, err := c.Maze.ToMaze(); err != nil {
		return err
	}
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Graphics.Width, c.Graphics.Height)
	}
	if c.Board.Size <= 0 {
		return fmt.Errorf("%w: board size %v", ErrInvalid, c.Board.Size)
	}
	if c.Board.TiltStep <= 0 {
		return fmt.Errorf("%w: tilt step %v", ErrInvalid, c.Board.TiltStep)
	}
	if c.Board.PhysicsHz <= 0 {
		return fmt.Errorf("%w: physics rate %d", ErrInvalid, c.Board.PhysicsHz)
	}
	if c.Board.Restitution < 0 || c.Board.Restitution > 1 {
		return fmt.Errorf("%w: restitution %v", ErrInvalid, c.Board.Restitution)
	}
	if dz := c.Controls.StickDeadZone; dz < 0 || dz >= 1 {
		return fmt.Errorf("%w: stick dead zone %v", ErrInvalid, dz)
	}
	return nil
}

// ToMaze converts the section into a generator config.
func (m MazeConfig) ToMaze() (maze.Config, error) {
	alg, err := maze.ParseAlgorithm(m.Algorithm)
	if err != nil {
		return maze.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if m.Width <= 0 || m.Height <= 0 || m.Width*m.Height < 2 {
		return maze.Config{}, fmt.Errorf("%w: maze size %dx%d", ErrInvalid, m.Width, m.Height)
	}
	seed, err := maze.ParseSeed(m.Seed)
	if err != nil {
		return maze.Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return maze.Config{Algorithm: alg, Width: m.Width, Height: m.Height, Seed: seed}, nil
}

// KeyNames returns the bindings keyed by tilt direction name.
func (c ControlsConfig) KeyNames() map[string][]string {
	names := make(map[string][]string)
	for dir, keys := range map[string][]string{
		"forward": c.Forward,
		"back":    c.Back,
		"left":    c.Left,
		"right":   c.Right,
	} {
		if len(keys) > 0 {
			names[dir] = keys
		}
	}
	return names
}
