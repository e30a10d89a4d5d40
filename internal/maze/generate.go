package maze

import (
	crand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

// ErrGeneration is returned when a maze cannot be produced.
var ErrGeneration = errors.New("maze generation failed")

// Algorithm selects the spanning-tree strategy used to carve passages.
type Algorithm uint8

const (
	GrowingTree Algorithm = iota
	Ellers
	Prims
	RecursiveBacktracking
)

var algorithmNames = map[Algorithm]string{
	GrowingTree:           "growing_tree",
	Ellers:                "ellers",
	Prims:                 "prims",
	RecursiveBacktracking: "recursive_backtracking",
}

// Algorithms lists every built-in algorithm in menu order.
var Algorithms = []Algorithm{Ellers, GrowingTree, Prims, RecursiveBacktracking}

// String returns the config name of the algorithm.
func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("algorithm(%d)", a)
}

// ParseAlgorithm resolves a config name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	for alg, n := range algorithmNames {
		if n == name {
			return alg, nil
		}
	}
	return 0, fmt.Errorf("unknown maze algorithm %q", name)
}

// Config describes the maze to generate.
type Config struct {
	Algorithm Algorithm
	Width     int
	Height    int
	Seed      *[32]byte // nil draws a fresh seed
}

// DefaultConfig returns a 15x15 growing-tree maze with a random seed.
func DefaultConfig() Config {
	return Config{
		Algorithm: GrowingTree,
		Width:     15,
		Height:    15,
	}
}

// GeneratorFunc carves passages into a maze whose walls are all standing.
// Implementations must leave every field reachable.
type GeneratorFunc func(m *Maze, rng *rand.Rand)

var (
	generatorsMu sync.RWMutex
	generators   = map[Algorithm]GeneratorFunc{
		GrowingTree:           growingTree,
		Ellers:                ellers,
		Prims:                 prims,
		RecursiveBacktracking: recursiveBacktracking,
	}
)

// Register installs or replaces the generator for an algorithm.
func Register(alg Algorithm, fn GeneratorFunc) {
	generatorsMu.Lock()
	defer generatorsMu.Unlock()
	generators[alg] = fn
}

func generatorFor(alg Algorithm) (GeneratorFunc, bool) {
	generatorsMu.RLock()
	defer generatorsMu.RUnlock()
	fn, ok := generators[alg]
	return fn, ok
}

// Generate builds a maze for cfg. Start is placed at the north-west field and
// Goal at the south-east field.
func Generate(cfg Config) (*Maze, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrGeneration, cfg.Width, cfg.Height)
	}
	if cfg.Width*cfg.Height < 2 {
		return nil, fmt.Errorf("%w: a %dx%d maze cannot hold distinct start and goal", ErrGeneration, cfg.Width, cfg.Height)
	}

	generate, ok := generatorFor(cfg.Algorithm)
	if !ok {
		return nil, fmt.Errorf("%w: no generator for %s", ErrGeneration, cfg.Algorithm)
	}

	seed := cfg.Seed
	if seed == nil {
		var buf [32]byte
		if _, err := crand.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("%w: reading seed: %v", ErrGeneration, err)
		}
		seed = &buf
	}

	m := New(cfg.Width, cfg.Height)
	m.Seed = seed
	generate(m, rand.New(rand.NewChaCha8(*seed)))

	m.SetKind(Coordinates{X: 0, Y: 0}, Start)
	m.SetKind(Coordinates{X: cfg.Width - 1, Y: cfg.Height - 1}, Goal)

	return m, nil
}

// ParseSeed decodes a 64 character hex string into a seed.
// An empty string yields nil.
func ParseSeed(s string) (*[32]byte, error) {
	if s == "" {
		return nil, nil
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	if len(raw) != 32 {
		return nil, fmt.Errorf("invalid seed: want 32 bytes, got %d", len(raw))
	}
	var seed [32]byte
	copy(seed[:], raw)
	return &seed, nil
}

// SeedString formats a seed the way ParseSeed reads it.
func SeedString(seed *[32]byte) string {
	if seed == nil {
		return ""
	}
	return hex.EncodeToString(seed[:])
}
