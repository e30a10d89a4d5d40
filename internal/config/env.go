package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// envPrefix namespaces every environment override.
const envPrefix = "LABYRINTH_"

// lookupFunc resolves an environment variable.
type lookupFunc func(key string) (string, bool)

// environment resolves variables from the process, falling back to a .env
// file at dotenvPath. A missing file is not an error.
func environment(dotenvPath string) (lookupFunc, error) {
	file, err := godotenv.Read(dotenvPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", dotenvPath, err)
		}
		file = nil
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}, nil
}

// applyEnv applies LABYRINTH_* overrides to the config.
func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %w", ErrInvalid, envPrefix, name, err)
		}
		*dst = n
		return nil
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %w", ErrInvalid, envPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FILE", &cfg.Logging.LogFile)
	str("MAZE_ALGORITHM", &cfg.Maze.Algorithm)
	str("MAZE_SEED", &cfg.Maze.Seed)
	return errors.Join(
		integer("MAZE_WIDTH", &cfg.Maze.Width),
		integer("MAZE_HEIGHT", &cfg.Maze.Height),
		boolean("AUDIO_MUTED", &cfg.Audio.Muted),
		boolean("FULLSCREEN", &cfg.Graphics.Fullscreen),
	)
}
