/*
Package maze provides rectangular maze topologies and the generators that
produce them.

A Maze is a grid of fields addressed by column (X) and row (Y). Each field
records which of its four sides are open passages and whether it is the start,
the goal or a normal field. Row 0 is the northern edge of the grid.
*/
package maze

import (
	"fmt"
	"strings"
)

// Direction names one of the four sides of a field.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every direction in a fixed order.
var Directions = [...]Direction{North, South, East, West}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case South:
		return "South"
	case East:
		return "East"
	case West:
		return "West"
	}
	return fmt.Sprintf("Direction(%d)", d)
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// delta returns the column/row offset of the neighbor in direction d.
func (d Direction) delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case East:
		return 1, 0
	default:
		return -1, 0
	}
}

// FieldKind marks the role of a field.
type FieldKind uint8

const (
	Normal FieldKind = iota
	Start
	Goal
)

// String returns the kind name.
func (k FieldKind) String() string {
	switch k {
	case Start:
		return "Start"
	case Goal:
		return "Goal"
	default:
		return "Normal"
	}
}

// Coordinates addresses a field: X is the column, Y the row.
type Coordinates struct {
	X, Y int
}

// Neighbor returns the coordinates one step away in direction d.
func (c Coordinates) Neighbor(d Direction) Coordinates {
	dx, dy := d.delta()
	return Coordinates{X: c.X + dx, Y: c.Y + dy}
}

// Field is a single maze cell.
type Field struct {
	Kind     FieldKind
	passages uint8
}

// HasPassage reports whether the side in direction d is open.
func (f Field) HasPassage(d Direction) bool {
	return f.passages&(1<<d) != 0
}

// Maze is a rectangular grid of fields.
type Maze struct {
	Width  int
	Height int
	Start  Coordinates
	Goal   Coordinates

	// Seed is the 32-byte seed the generator ran with, if any.
	Seed *[32]byte

	fields []Field
}

// New creates a maze with every wall standing and every field Normal.
func New(width, height int) *Maze {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Maze{
		Width:  width,
		Height: height,
		fields: make([]Field, width*height),
	}
}

// Dimensions returns the grid width and height.
func (m *Maze) Dimensions() (int, int) {
	return m.Width, m.Height
}

// InBounds reports whether c addresses a field of the grid.
func (m *Maze) InBounds(c Coordinates) bool {
	return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
}

// Field returns the field at c.
func (m *Maze) Field(c Coordinates) (Field, bool) {
	if !m.InBounds(c) {
		return Field{}, false
	}
	return m.fields[c.Y*m.Width+c.X], true
}

// SetKind changes the kind of the field at c and tracks start/goal positions.
func (m *Maze) SetKind(c Coordinates, kind FieldKind) bool {
	if !m.InBounds(c) {
		return false
	}
	m.fields[c.Y*m.Width+c.X].Kind = kind
	switch kind {
	case Start:
		m.Start = c
	case Goal:
		m.Goal = c
	}
	return true
}

// SetPassage opens or closes one side of a single field. The neighbor is not
// touched, so this can describe asymmetric topologies.
func (m *Maze) SetPassage(c Coordinates, d Direction, open bool) bool {
	if !m.InBounds(c) {
		return false
	}
	f := &m.fields[c.Y*m.Width+c.X]
	if open {
		f.passages |= 1 << d
	} else {
		f.passages &^= 1 << d
	}
	return true
}

// Carve removes the wall between c and its neighbor in direction d on both
// sides. It returns false when the neighbor is outside the grid.
func (m *Maze) Carve(c Coordinates, d Direction) bool {
	n := c.Neighbor(d)
	if !m.InBounds(c) || !m.InBounds(n) {
		return false
	}
	m.SetPassage(c, d, true)
	m.SetPassage(n, d.Opposite(), true)
	return true
}

// String renders the maze as ASCII art, north at the top.
func (m *Maze) String() string {
	var b strings.Builder

	b.WriteString("+" + strings.Repeat("---+", m.Width) + "\n")
	for y := 0; y < m.Height; y++ {
		b.WriteString("|")
		for x := 0; x < m.Width; x++ {
			f, _ := m.Field(Coordinates{X: x, Y: y})
			switch f.Kind {
			case Start:
				b.WriteString(" S ")
			case Goal:
				b.WriteString(" G ")
			default:
				b.WriteString("   ")
			}
			if f.HasPassage(East) {
				b.WriteString(" ")
			} else {
				b.WriteString("|")
			}
		}
		b.WriteString("\n+")
		for x := 0; x < m.Width; x++ {
			f, _ := m.Field(Coordinates{X: x, Y: y})
			if f.HasPassage(South) {
				b.WriteString("   +")
			} else {
				b.WriteString("---+")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
