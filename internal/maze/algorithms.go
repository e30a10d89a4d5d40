package maze

import "math/rand/v2"

func (m *Maze) index(c Coordinates) int {
	return c.Y*m.Width + c.X
}

// neighborsWhere returns the directions from c whose in-grid neighbor has
// visited state equal to want, in Directions order.
func (m *Maze) neighborsWhere(c Coordinates, visited []bool, want bool) []Direction {
	dirs := make([]Direction, 0, 4)
	for _, d := range Directions {
		n := c.Neighbor(d)
		if m.InBounds(n) && visited[m.index(n)] == want {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func randomCell(m *Maze, rng *rand.Rand) Coordinates {
	return Coordinates{X: rng.IntN(m.Width), Y: rng.IntN(m.Height)}
}

// recursiveBacktracking is a randomized depth-first search with an explicit stack.
func recursiveBacktracking(m *Maze, rng *rand.Rand) {
	visited := make([]bool, m.Width*m.Height)
	start := randomCell(m, rng)
	visited[m.index(start)] = true
	stack := []Coordinates{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		dirs := m.neighborsWhere(cur, visited, false)
		if len(dirs) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := dirs[rng.IntN(len(dirs))]
		next := cur.Neighbor(d)
		m.Carve(cur, d)
		visited[m.index(next)] = true
		stack = append(stack, next)
	}
}

// growingTree keeps a list of active cells and expands either the newest or
// a random one, which mixes long corridors with branching.
func growingTree(m *Maze, rng *rand.Rand) {
	visited := make([]bool, m.Width*m.Height)
	start := randomCell(m, rng)
	visited[m.index(start)] = true
	active := []Coordinates{start}

	for len(active) > 0 {
		i := len(active) - 1
		if rng.IntN(2) == 0 {
			i = rng.IntN(len(active))
		}
		cur := active[i]

		dirs := m.neighborsWhere(cur, visited, false)
		if len(dirs) == 0 {
			active = append(active[:i], active[i+1:]...)
			continue
		}
		d := dirs[rng.IntN(len(dirs))]
		next := cur.Neighbor(d)
		m.Carve(cur, d)
		visited[m.index(next)] = true
		active = append(active, next)
	}
}

// prims grows the maze from a random cell by repeatedly attaching a random
// frontier cell to an already visited neighbor.
func prims(m *Maze, rng *rand.Rand) {
	visited := make([]bool, m.Width*m.Height)
	queued := make([]bool, m.Width*m.Height)
	var frontier []Coordinates

	enqueue := func(c Coordinates) {
		for _, d := range m.neighborsWhere(c, visited, false) {
			n := c.Neighbor(d)
			if !queued[m.index(n)] {
				queued[m.index(n)] = true
				frontier = append(frontier, n)
			}
		}
	}

	start := randomCell(m, rng)
	visited[m.index(start)] = true
	enqueue(start)

	for len(frontier) > 0 {
		i := rng.IntN(len(frontier))
		cur := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		dirs := m.neighborsWhere(cur, visited, true)
		d := dirs[rng.IntN(len(dirs))]
		m.Carve(cur, d)
		visited[m.index(cur)] = true
		enqueue(cur)
	}
}

// ellers builds the maze one row at a time, tracking which cells of the
// current row are already connected through earlier rows.
func ellers(m *Maze, rng *rand.Rand) {
	sets := make([]int, m.Width)
	nextSet := 1

	for y := 0; y < m.Height; y++ {
		for x := range sets {
			if sets[x] == 0 {
				sets[x] = nextSet
				nextSet++
			}
		}

		lastRow := y == m.Height-1

		// Join horizontal neighbors from different sets. The last row joins
		// all of them so that every set ends up connected.
		for x := 0; x < m.Width-1; x++ {
			if sets[x] == sets[x+1] || (!lastRow && rng.IntN(2) == 0) {
				continue
			}
			m.Carve(Coordinates{X: x, Y: y}, East)
			merged, keep := sets[x+1], sets[x]
			for i := range sets {
				if sets[i] == merged {
					sets[i] = keep
				}
			}
		}

		if lastRow {
			break
		}

		// Every set drops at least one passage south.
		members := make(map[int][]int)
		var order []int
		for x, s := range sets {
			if _, seen := members[s]; !seen {
				order = append(order, s)
			}
			members[s] = append(members[s], x)
		}

		below := make([]int, m.Width)
		for _, s := range order {
			cells := members[s]
			forced := cells[rng.IntN(len(cells))]
			for _, x := range cells {
				if x == forced || rng.IntN(2) == 0 {
					m.Carve(Coordinates{X: x, Y: y}, South)
					below[x] = s
				}
			}
		}
		sets = below
	}
}
