package renderer

import (
	gomath "math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/labyrinth/internal/geom"
	"github.com/Faultbox/labyrinth/pkg/math"
)

// floatsPerVertex is position (3) + normal (3).
const floatsPerVertex = 6

// meshData is interleaved vertex data for a unit-sized primitive.
type meshData struct {
	vertices []float32
	indices  []uint32
}

func (m *meshData) vertex(p, n math.Vec3) uint32 {
	m.vertices = append(m.vertices, p.X, p.Y, p.Z, n.X, n.Y, n.Z)
	return uint32(len(m.vertices)/floatsPerVertex - 1)
}

func (m *meshData) quad(a, b, c, d uint32) {
	m.indices = append(m.indices, a, b, c, a, c, d)
}

// planeData is a 1×1 square in the XZ plane facing +Y.
func planeData() meshData {
	var m meshData
	up := math.AxisY
	a := m.vertex(math.Vec3{X: -0.5, Z: -0.5}, up)
	b := m.vertex(math.Vec3{X: -0.5, Z: 0.5}, up)
	c := m.vertex(math.Vec3{X: 0.5, Z: 0.5}, up)
	d := m.vertex(math.Vec3{X: 0.5, Z: -0.5}, up)
	m.quad(a, b, c, d)
	return m
}

// cubeData is a unit cube centered on the origin with flat face normals.
func cubeData() meshData {
	var m meshData
	faces := []struct{ n, u, v math.Vec3 }{
		{math.Vec3{X: 1}, math.Vec3{Z: -1}, math.AxisY},
		{math.Vec3{X: -1}, math.AxisZ, math.AxisY},
		{math.AxisY, math.AxisX, math.Vec3{Z: -1}},
		{math.Vec3{Y: -1}, math.AxisX, math.AxisZ},
		{math.AxisZ, math.AxisX, math.AxisY},
		{math.Vec3{Z: -1}, math.Vec3{X: -1}, math.AxisY},
	}
	for _, f := range faces {
		c := f.n.Scale(0.5)
		corner := func(su, sv float32) math.Vec3 {
			return c.Add(f.u.Scale(su * 0.5)).Add(f.v.Scale(sv * 0.5))
		}
		a := m.vertex(corner(-1, -1), f.n)
		b := m.vertex(corner(1, -1), f.n)
		cc := m.vertex(corner(1, 1), f.n)
		d := m.vertex(corner(-1, 1), f.n)
		m.quad(a, b, cc, d)
	}
	return m
}

// sphereData is a unit sphere built from latitude/longitude bands.
func sphereData(stacks, slices int) meshData {
	var m meshData
	for i := 0; i <= stacks; i++ {
		phi := gomath.Pi * float64(i) / float64(stacks)
		for j := 0; j <= slices; j++ {
			theta := 2 * gomath.Pi * float64(j) / float64(slices)
			p := math.Vec3{
				X: float32(gomath.Sin(phi) * gomath.Cos(theta)),
				Y: float32(gomath.Cos(phi)),
				Z: float32(gomath.Sin(phi) * gomath.Sin(theta)),
			}
			m.vertex(p, p)
		}
	}
	row := uint32(slices + 1)
	for i := uint32(0); i < uint32(stacks); i++ {
		for j := uint32(0); j < uint32(slices); j++ {
			a := i*row + j
			b := a + row
			m.indices = append(m.indices, a, a+1, b, a+1, b+1, b)
		}
	}
	return m
}

// modelScale returns the scale that stretches a unit mesh to shape.
func modelScale(s geom.Shape) math.Vec3 {
	switch s.Kind {
	case geom.ShapePlane:
		return math.Vec3{X: s.Extents.X, Y: 1, Z: s.Extents.Z}
	case geom.ShapeBox:
		return s.Extents
	case geom.ShapeSphere:
		return math.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	}
	return math.Vec3{}
}

// gpuMesh is meshData uploaded to the GPU.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

func upload(data meshData) *gpuMesh {
	m := &gpuMesh{count: int32(len(data.indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data.vertices)*4, gl.Ptr(data.vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.indices)*4, gl.Ptr(data.indices), gl.STATIC_DRAW)

	stride := int32(floatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return m
}

func (m *gpuMesh) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (m *gpuMesh) delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}
