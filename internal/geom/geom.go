// Package geom holds the plain data vocabulary shared by the level compiler
// and the scene runtime: shapes, materials, rigid-body kinds and collider
// sources. It has no behavior beyond simple queries.
package geom

import (
	"fmt"

	"github.com/Faultbox/labyrinth/pkg/math"
)

// ShapeKind enumerates the primitive shapes a placement can use.
type ShapeKind uint8

const (
	ShapeNone ShapeKind = iota
	ShapePlane
	ShapeBox
	ShapeSphere
	ShapeSegment
)

// String returns the shape name.
func (k ShapeKind) String() string {
	switch k {
	case ShapePlane:
		return "plane"
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeSegment:
		return "segment"
	}
	return "none"
}

// Shape is a primitive centered on its local origin.
//
// Planes and boxes use Extents as full side lengths (planes have Y = 0).
// Spheres use Radius. Segments run from A to B.
type Shape struct {
	Kind    ShapeKind
	Extents math.Vec3
	Radius  float32
	A, B    math.Vec3
}

// Plane returns a horizontal rectangle of the given side lengths.
func Plane(sizeX, sizeZ float32) Shape {
	return Shape{Kind: ShapePlane, Extents: math.Vec3{X: sizeX, Z: sizeZ}}
}

// Box returns a cuboid with full side lengths x, y, z.
func Box(x, y, z float32) Shape {
	return Shape{Kind: ShapeBox, Extents: math.Vec3{X: x, Y: y, Z: z}}
}

// Sphere returns a ball of radius r.
func Sphere(r float32) Shape {
	return Shape{Kind: ShapeSphere, Radius: r}
}

// Segment returns a line segment between a and b.
func Segment(a, b math.Vec3) Shape {
	return Shape{Kind: ShapeSegment, A: a, B: b}
}

// HalfExtents returns half of the box or plane extents.
func (s Shape) HalfExtents() math.Vec3 {
	return s.Extents.Scale(0.5)
}

// Area returns the surface area of the shape's mesh. Segments have none.
func (s Shape) Area() float32 {
	switch s.Kind {
	case ShapePlane:
		return s.Extents.X * s.Extents.Z
	case ShapeBox:
		e := s.Extents
		return 2 * (e.X*e.Y + e.Y*e.Z + e.X*e.Z)
	case ShapeSphere:
		return 4 * 3.14159265 * s.Radius * s.Radius
	}
	return 0
}

// String formats the shape for logs.
func (s Shape) String() string {
	switch s.Kind {
	case ShapePlane, ShapeBox:
		return fmt.Sprintf("%s(%.3f×%.3f×%.3f)", s.Kind, s.Extents.X, s.Extents.Y, s.Extents.Z)
	case ShapeSphere:
		return fmt.Sprintf("sphere(r=%.3f)", s.Radius)
	case ShapeSegment:
		return fmt.Sprintf("segment(%v→%v)", s.A, s.B)
	}
	return "none"
}

// Material is the visual description of an object. Invisible objects take
// part in physics only.
type Material struct {
	Color   [4]float32 // RGBA, alpha < 1 is drawn blended
	Visible bool
}

// Solid returns an opaque visible material.
func Solid(r, g, b float32) Material {
	return Material{Color: [4]float32{r, g, b, 1}, Visible: true}
}

// Translucent returns a visible material with alpha a.
func Translucent(r, g, b, a float32) Material {
	return Material{Color: [4]float32{r, g, b, a}, Visible: true}
}

// Invisible is the material of physics-only objects.
var Invisible = Material{}

// BodyKind selects how the physics runtime moves an object.
type BodyKind uint8

const (
	BodyNone BodyKind = iota
	BodyFixed
	BodyKinematicPositionBased
	BodyDynamic
)

// String returns the body kind name.
func (k BodyKind) String() string {
	switch k {
	case BodyFixed:
		return "fixed"
	case BodyKinematicPositionBased:
		return "kinematic"
	case BodyDynamic:
		return "dynamic"
	}
	return "none"
}

// ColliderSource tells the runtime how to derive a collision shape.
type ColliderSource uint8

const (
	ColliderNone ColliderSource = iota
	// ColliderFromMesh derives the collider from the render mesh.
	ColliderFromMesh
	// ColliderPrimitive uses the shape directly.
	ColliderPrimitive
)

// String returns the collider source name.
func (c ColliderSource) String() string {
	switch c {
	case ColliderFromMesh:
		return "mesh"
	case ColliderPrimitive:
		return "primitive"
	}
	return "none"
}
