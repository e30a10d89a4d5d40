package maze

import "container/heap"

// pathNode is an open-set entry for the A* search.
type pathNode struct {
	at     Coordinates
	g, f   int
	parent *pathNode
	index  int
}

type pathHeap []*pathNode

func (h pathHeap) Len() int { return len(h) }
func (h pathHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	return h[i].g > h[j].g
}
func (h pathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pathHeap) Push(x any) {
	node := x.(*pathNode)
	node.index = len(*h)
	*h = append(*h, node)
}

func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

// Find returns the first field of the given kind in row-major order.
func (m *Maze) Find(kind FieldKind) (Coordinates, bool) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := Coordinates{X: x, Y: y}
			if f, _ := m.Field(c); f.Kind == kind {
				return c, true
			}
		}
	}
	return Coordinates{}, false
}

// Path finds the shortest walk from one field to another through open
// passages, both ends included. A passage is followed only from the side
// that has it open. Returns nil if no walk exists.
func (m *Maze) Path(from, to Coordinates) []Coordinates {
	if !m.InBounds(from) || !m.InBounds(to) {
		return nil
	}

	open := &pathHeap{}
	nodes := make(map[int]*pathNode)
	closed := make([]bool, len(m.fields))

	start := &pathNode{at: from, f: manhattan(from, to)}
	heap.Push(open, start)
	nodes[m.index(from)] = start

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if current.at == to {
			return current.walk()
		}
		closed[m.index(current.at)] = true

		field, _ := m.Field(current.at)
		for _, d := range Directions {
			if !field.HasPassage(d) {
				continue
			}
			next := current.at.Neighbor(d)
			if !m.InBounds(next) || closed[m.index(next)] {
				continue
			}

			g := current.g + 1
			neighbor, seen := nodes[m.index(next)]
			switch {
			case !seen:
				neighbor = &pathNode{at: next, g: g, f: g + manhattan(next, to), parent: current}
				nodes[m.index(next)] = neighbor
				heap.Push(open, neighbor)
			case g < neighbor.g:
				neighbor.g = g
				neighbor.f = g + manhattan(next, to)
				neighbor.parent = current
				heap.Fix(open, neighbor.index)
			}
		}
	}
	return nil
}

// Solution is the path from the Start field to the Goal field.
func (m *Maze) Solution() []Coordinates {
	start, ok := m.Find(Start)
	if !ok {
		return nil
	}
	goal, ok := m.Find(Goal)
	if !ok {
		return nil
	}
	return m.Path(start, goal)
}

func (n *pathNode) walk() []Coordinates {
	var path []Coordinates
	for ; n != nil; n = n.parent {
		path = append(path, n.at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func manhattan(a, b Coordinates) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
