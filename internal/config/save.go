package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/labyrinth/internal/maze"
)

// SavePath is the file that settings changed in game are written to: the
// file Load would read, or config.yaml in ConfigDir when there is none.
func SavePath() string {
	if path := ConfigPath(); path != "" {
		return path
	}
	if path := findConfigFile(); path != "" {
		return path
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// SaveTo writes the config as YAML to path, replacing the file in one
// rename so a crash never leaves it half written.
func (c *Config) SaveTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("saving config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// SaveAlgorithm records alg as the maze algorithm in the config file at
// path. Everything else in the file is kept; environment and flag
// overrides of the running game are not written back.
func SaveAlgorithm(path string, alg maze.Algorithm) error {
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	cfg.Maze.Algorithm = alg.String()
	return cfg.SaveTo(path)
}
