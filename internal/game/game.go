// Package game implements the main game loop and state management.
package game

import (
	"fmt"
	gomath "math"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/labyrinth/internal/config"
	"github.com/Faultbox/labyrinth/internal/engine/audio"
	"github.com/Faultbox/labyrinth/internal/engine/camera"
	"github.com/Faultbox/labyrinth/internal/engine/debug"
	"github.com/Faultbox/labyrinth/internal/engine/input"
	"github.com/Faultbox/labyrinth/internal/engine/lighting"
	"github.com/Faultbox/labyrinth/internal/engine/renderer"
	"github.com/Faultbox/labyrinth/internal/engine/scene"
	"github.com/Faultbox/labyrinth/internal/engine/window"
	"github.com/Faultbox/labyrinth/internal/game/states"
	"github.com/Faultbox/labyrinth/internal/logger"
	"github.com/Faultbox/labyrinth/internal/maze"
	"github.com/Faultbox/labyrinth/pkg/math"
)

// Game is the main game instance.
type Game struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	world    *scene.World
	camera   *camera.OrbitCamera
	states   *states.Manager
	shots    *debug.Screenshots

	screenshotPending bool
}

// New creates a new game instance.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	mazeCfg, err := cfg.Maze.ToMaze()
	if err != nil {
		return nil, err
	}
	bindings, err := input.ParseBindings(cfg.Controls.KeyNames())
	if err != nil {
		return nil, fmt.Errorf("controls: %w", err)
	}

	g := &Game{
		config: cfg,
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      "Labyrinth",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		MSAA:       cfg.Graphics.MSAA,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:  width,
		Height: height,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	g.renderer.Lights.AddLight(lighting.BoardLight(cfg.Board.Size))

	g.input = input.New(bindings, cfg.Controls.StickDeadZone)
	g.camera = camera.NewBoardCamera(cfg.Board.Size)
	g.shots = debug.NewScreenshots(filepath.Join(config.ConfigDir(), "screenshots"), "labyrinth")

	g.audio = audio.New()
	g.audio.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	g.audio.SetSFXVolume(float64(cfg.Audio.SFXVolume))
	if err := g.audio.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
	}
	g.audio.SetMuted(cfg.Audio.Muted)

	physics := scene.DefaultConfig()
	physics.Gravity = math.Vec3{Y: -cfg.Board.Gravity}
	physics.TimeStep = 1 / float32(cfg.Board.PhysicsHz)
	g.world = scene.NewWorld(physics)

	g.states = states.NewManager()
	deps := &states.Deps{
		World:    g.world,
		Controls: g.input,
		Audio:    g.audio,
		Settings: &states.Settings{
			Maze:        mazeCfg,
			Size:        cfg.Board.Size,
			TiltStep:    cfg.Board.TiltStep * gomath.Pi / 180,
			Restitution: cfg.Board.Restitution,
		},
		SetTitle:      g.window.SetTitle,
		SaveAlgorithm: saveAlgorithm(config.SavePath()),
	}
	g.states.Change(states.NewMenuState(deps, g.states))

	logger.Info("game initialized successfully")
	return g, nil
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if g.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(g.config.Graphics.FPSLimit)
	}

	logger.Info("starting game loop")

	for g.running {
		frameStart := time.Now()

		// Calculate delta time
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			// Quit event received
			g.running = false
			break
		}
		if err := g.handleEvents(); err != nil {
			return err
		}

		// 2. Update game state
		if err := g.states.Update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		if g.states.Done() {
			g.running = false
		}

		// 3. Render
		g.renderer.Begin()
		g.renderer.DrawScene(g.world, g.camera)
		g.renderer.End()
		if g.screenshotPending {
			g.screenshotPending = false
			g.screenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.config.Game.ShowFPS {
				logger.Debug("fps",
					zap.Int("count", frameCount),
					zap.Int("drawn", g.renderer.Drawn()),
					zap.Float64("dt_ms", dt*1000),
				)
			}
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if spent := time.Since(frameStart); spent < frameBudget {
				time.Sleep(frameBudget - spent)
			}
		}
	}

	return nil
}

func (g *Game) handleEvents() error {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			g.renderer.Resize(event.Width, event.Height)
		case input.EventWheel:
			g.camera.HandleZoom(event.Wheel)
		case input.EventKeyDown:
			if event.Key == sdl.SCANCODE_F11 {
				if err := g.window.ToggleFullscreen(); err != nil {
					logger.Warn("fullscreen toggle failed", zap.Error(err))
				}
				continue
			}
			if event.Key == sdl.SCANCODE_F12 {
				g.screenshotPending = true
				continue
			}
			if a, ok := keyAction(event.Key); ok {
				if err := g.states.HandleInput(a); err != nil {
					return err
				}
			}
		case input.EventButtonDown:
			if a, ok := buttonAction(event.Button); ok {
				if err := g.states.HandleInput(a); err != nil {
					return err
				}
			}
		case input.EventPadAdded:
			logger.Info("controller connected")
		case input.EventPadRemoved:
			logger.Info("controller disconnected")
		}
	}
	return nil
}

// screenshot saves the frame just drawn, labelled with the maze seed while
// a level is running.
func (g *Game) screenshot() {
	var label string
	if play, ok := g.states.Current().(*states.PlayState); ok {
		label = play.Seed()
	}
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.shots.Save(pixels, w, h, label)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// saveAlgorithm returns a saver writing menu choices to the config file at
// path.
func saveAlgorithm(path string) func(maze.Algorithm) error {
	return func(alg maze.Algorithm) error {
		if err := config.SaveAlgorithm(path, alg); err != nil {
			return err
		}
		logger.Debug("algorithm saved", zap.String("path", path), zap.Stringer("algorithm", alg))
		return nil
	}
}

// keyAction decodes menu and level keys.
func keyAction(key sdl.Scancode) (states.Action, bool) {
	switch key {
	case sdl.SCANCODE_RETURN, sdl.SCANCODE_KP_ENTER, sdl.SCANCODE_SPACE:
		return states.Start(), true
	case sdl.SCANCODE_ESCAPE:
		return states.Back(), true
	case sdl.SCANCODE_1, sdl.SCANCODE_2, sdl.SCANCODE_3, sdl.SCANCODE_4:
		return states.SelectSlot(int(key-sdl.SCANCODE_1) + 1)
	}
	return states.Action{}, false
}

func buttonAction(b sdl.GameControllerButton) (states.Action, bool) {
	switch b {
	case sdl.CONTROLLER_BUTTON_A, sdl.CONTROLLER_BUTTON_START:
		return states.Start(), true
	case sdl.CONTROLLER_BUTTON_B, sdl.CONTROLLER_BUTTON_BACK:
		return states.Back(), true
	}
	return states.Action{}, false
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing game")

	if g.states != nil {
		if err := g.states.Close(); err != nil {
			logger.Warn("closing state", zap.Error(err))
		}
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.input != nil {
		g.input.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
