package maze

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
)

func testSeed(b byte) *[32]byte {
	var s [32]byte
	for i := range s {
		s[i] = b + byte(i)
	}
	return &s
}

// checkPerfect verifies that passages are symmetric, never leave the grid,
// and form a spanning tree over all fields.
func checkPerfect(t *testing.T, m *Maze) {
	t.Helper()

	edges := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := Coordinates{X: x, Y: y}
			f, _ := m.Field(c)
			for _, d := range Directions {
				if !f.HasPassage(d) {
					continue
				}
				n := c.Neighbor(d)
				nf, ok := m.Field(n)
				if !ok {
					t.Fatalf("passage %s from %v leaves the grid", d, c)
				}
				if !nf.HasPassage(d.Opposite()) {
					t.Fatalf("passage %s from %v is not mirrored", d, c)
				}
				if d == East || d == South {
					edges++
				}
			}
		}
	}

	if want := m.Width*m.Height - 1; edges != want {
		t.Errorf("passage count = %d, want %d for a spanning tree", edges, want)
	}

	seen := make([]bool, m.Width*m.Height)
	queue := []Coordinates{{}}
	seen[0] = true
	reached := 1
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		f, _ := m.Field(c)
		for _, d := range Directions {
			n := c.Neighbor(d)
			if f.HasPassage(d) && !seen[m.index(n)] {
				seen[m.index(n)] = true
				reached++
				queue = append(queue, n)
			}
		}
	}
	if reached != m.Width*m.Height {
		t.Errorf("reached %d of %d fields", reached, m.Width*m.Height)
	}
}

func TestGenerateAllAlgorithms(t *testing.T) {
	sizes := [][2]int{{15, 15}, {5, 1}, {1, 7}, {2, 2}, {12, 4}}

	for _, alg := range Algorithms {
		for _, size := range sizes {
			t.Run(alg.String(), func(t *testing.T) {
				m, err := Generate(Config{Algorithm: alg, Width: size[0], Height: size[1], Seed: testSeed(7)})
				if err != nil {
					t.Fatalf("Generate(%dx%d) failed: %v", size[0], size[1], err)
				}
				checkPerfect(t, m)

				start, _ := m.Field(Coordinates{X: 0, Y: 0})
				goal, _ := m.Field(Coordinates{X: size[0] - 1, Y: size[1] - 1})
				if start.Kind != Start || goal.Kind != Goal {
					t.Errorf("start/goal kinds = %s/%s", start.Kind, goal.Kind)
				}
				if m.Start != (Coordinates{}) || m.Goal != (Coordinates{X: size[0] - 1, Y: size[1] - 1}) {
					t.Errorf("start/goal coordinates = %v/%v", m.Start, m.Goal)
				}
			})
		}
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	for _, alg := range Algorithms {
		a, err := Generate(Config{Algorithm: alg, Width: 9, Height: 6, Seed: testSeed(1)})
		if err != nil {
			t.Fatalf("%s: %v", alg, err)
		}
		b, _ := Generate(Config{Algorithm: alg, Width: 9, Height: 6, Seed: testSeed(1)})
		if a.String() != b.String() {
			t.Errorf("%s: same seed produced different mazes:\n%s\n%s", alg, a, b)
		}
	}
}

func TestGenerateRandomSeedIsRecorded(t *testing.T) {
	m, err := Generate(DefaultConfig())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if m.Seed == nil {
		t.Fatal("expected generated seed to be recorded")
	}

	replay, err := Generate(Config{Algorithm: GrowingTree, Width: 15, Height: 15, Seed: m.Seed})
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if replay.String() != m.String() {
		t.Error("replaying the recorded seed produced a different maze")
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero width", Config{Width: 0, Height: 5}},
		{"negative height", Config{Width: 5, Height: -1}},
		{"single field", Config{Width: 1, Height: 1}},
		{"unknown algorithm", Config{Algorithm: Algorithm(99), Width: 3, Height: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.cfg)
			if !errors.Is(err, ErrGeneration) {
				t.Errorf("expected ErrGeneration, got %v", err)
			}
		})
	}
}

func TestRegisterReplacesGenerator(t *testing.T) {
	const custom = Algorithm(42)
	Register(custom, func(m *Maze, _ *rand.Rand) {
		// A serpentine corridor.
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width-1; x++ {
				m.Carve(Coordinates{X: x, Y: y}, East)
			}
			if y < m.Height-1 {
				x := 0
				if y%2 == 0 {
					x = m.Width - 1
				}
				m.Carve(Coordinates{X: x, Y: y}, South)
			}
		}
	})

	m, err := Generate(Config{Algorithm: custom, Width: 4, Height: 3, Seed: testSeed(0)})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	checkPerfect(t, m)
}

func TestParseAlgorithm(t *testing.T) {
	for _, alg := range Algorithms {
		got, err := ParseAlgorithm(alg.String())
		if err != nil || got != alg {
			t.Errorf("ParseAlgorithm(%q) = %v, %v", alg.String(), got, err)
		}
	}
	if _, err := ParseAlgorithm("kruskal"); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}

func TestParseSeed(t *testing.T) {
	seed := testSeed(3)
	got, err := ParseSeed(SeedString(seed))
	if err != nil || *got != *seed {
		t.Fatalf("seed round trip failed: %v", err)
	}

	if s, err := ParseSeed(""); s != nil || err != nil {
		t.Errorf("empty seed should be nil, got %v, %v", s, err)
	}
	if _, err := ParseSeed("abcd"); err == nil {
		t.Error("expected error for short seed")
	}
	if _, err := ParseSeed(strings.Repeat("zz", 32)); err == nil {
		t.Error("expected error for non-hex seed")
	}
}

func TestSetPassageIsOneSided(t *testing.T) {
	m := New(2, 1)
	m.SetPassage(Coordinates{X: 0, Y: 0}, East, true)

	left, _ := m.Field(Coordinates{X: 0, Y: 0})
	right, _ := m.Field(Coordinates{X: 1, Y: 0})
	if !left.HasPassage(East) || right.HasPassage(West) {
		t.Error("SetPassage should only touch the addressed field")
	}
	if m.Carve(Coordinates{X: 1, Y: 0}, East) {
		t.Error("Carve across the grid edge should fail")
	}
	if _, ok := m.Field(Coordinates{X: 2, Y: 0}); ok {
		t.Error("Field outside the grid should not be found")
	}
}

func TestString(t *testing.T) {
	m, _ := Generate(Config{Algorithm: Prims, Width: 3, Height: 2, Seed: testSeed(9)})
	out := m.String()

	if !strings.Contains(out, " S ") || !strings.Contains(out, " G ") {
		t.Errorf("rendering should mark start and goal:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines != 2*2+1 {
		t.Errorf("rendering has %d lines, want 5", lines)
	}
}
