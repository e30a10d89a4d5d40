package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagAlgorithm  = flag.String("algorithm", "", "Maze algorithm: ellers, growing_tree, prims, recursive_backtracking")
	flagMazeWidth  = flag.Int("maze-width", 0, "Maze width in cells")
	flagMazeHeight = flag.Int("maze-height", 0, "Maze height in cells")
	flagSeed       = flag.String("seed", "", "Maze seed as 64 hex characters")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Game.ShowFPS = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagAlgorithm != "" {
		cfg.Maze.Algorithm = *flagAlgorithm
	}
	if *flagMazeWidth > 0 {
		cfg.Maze.Width = *flagMazeWidth
	}
	if *flagMazeHeight > 0 {
		cfg.Maze.Height = *flagMazeHeight
	}
	if *flagSeed != "" {
		cfg.Maze.Seed = *flagSeed
	}
}
