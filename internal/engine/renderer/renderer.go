// Package renderer draws scene objects with OpenGL.
package renderer

import (
	"fmt"
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/labyrinth/internal/engine/camera"
	"github.com/Faultbox/labyrinth/internal/engine/lighting"
	"github.com/Faultbox/labyrinth/internal/engine/scene"
	"github.com/Faultbox/labyrinth/internal/engine/shader"
	"github.com/Faultbox/labyrinth/internal/geom"
	"github.com/Faultbox/labyrinth/internal/logger"
	"github.com/Faultbox/labyrinth/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Scene is anything that can enumerate drawable objects.
// *scene.World satisfies it.
type Scene interface {
	Each(fn func(scene.Snapshot))
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program
	meshes  map[geom.ShapeKind]*gpuMesh

	Lights  *lighting.PointLightBuffer
	FillDir [3]float32
	Ambient [3]float32
	Clear   [3]float32

	numDrawn int
}

type draw struct {
	model    math.Mat4
	color    [4]float32
	distance float32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:  cfg,
		Lights:  lighting.NewPointLightBuffer(),
		FillDir: lighting.FillDirection(-45, 60),
		Ambient: [3]float32{0.25, 0.25, 0.28},
		Clear:   [3]float32{0.1, 0.1, 0.15},
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	var err error
	r.program, err = shader.NewProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	logger.Debug("shader program created", zap.Uint32("program", r.program.ID))

	r.meshes = map[geom.ShapeKind]*gpuMesh{
		geom.ShapePlane:  upload(planeData()),
		geom.ShapeBox:    upload(cubeData()),
		geom.ShapeSphere: upload(sphereData(16, 24)),
	}

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, m := range r.meshes {
		m.delete()
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.ClearColor(r.Clear[0], r.Clear[1], r.Clear[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.numDrawn = 0
}

// DrawScene draws every visible object of s from cam. Opaque objects are
// drawn first, then translucent ones back to front with blending.
func (r *Renderer) DrawScene(s Scene, cam *camera.OrbitCamera) {
	eye := cam.Position()
	opaque, translucent := r.collect(s, eye)

	r.program.Use()
	r.program.SetMat4("uView", cam.ViewMatrix())
	r.program.SetMat4("uProjection", cam.ProjectionMatrix(r.Aspect()))
	r.program.SetVec3("uEye", [3]float32{eye.X, eye.Y, eye.Z})
	r.program.SetVec3("uAmbient", r.Ambient)
	r.program.SetVec3("uFillDir", r.FillDir)
	r.program.SetInt("uLightCount", int32(r.Lights.Count()))
	r.program.SetVec3Array("uLightPos", r.Lights.Positions())
	r.program.SetVec3Array("uLightColor", r.Lights.Colors())
	r.program.SetFloatArray("uLightRange", r.Lights.Ranges())

	for _, d := range opaque {
		r.drawOne(d)
	}

	if len(translucent) > 0 {
		gl.Enable(gl.BLEND)
		gl.DepthMask(false)
		for _, d := range translucent {
			r.drawOne(d)
		}
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}
}

type drawItem struct {
	draw
	kind geom.ShapeKind
}

func (r *Renderer) collect(s Scene, eye math.Vec3) (opaque, translucent []drawItem) {
	s.Each(func(o scene.Snapshot) {
		if !o.Material.Visible {
			return
		}
		if _, ok := r.meshes[o.Shape.Kind]; !ok {
			return
		}
		sc := modelScale(o.Shape)
		item := drawItem{
			draw: draw{
				model:    o.World.Matrix().Mul(math.Scale(sc.X, sc.Y, sc.Z)),
				color:    o.Material.Color,
				distance: o.World.Translation.Distance(eye),
			},
			kind: o.Shape.Kind,
		}
		if o.Material.Color[3] < 1 {
			translucent = append(translucent, item)
		} else {
			opaque = append(opaque, item)
		}
	})
	sort.SliceStable(translucent, func(i, j int) bool {
		return translucent[i].distance > translucent[j].distance
	})
	return opaque, translucent
}

func (r *Renderer) drawOne(d drawItem) {
	r.program.SetMat4("uModel", d.model)
	r.program.SetVec4("uColor", d.color)
	r.meshes[d.kind].draw()
	r.numDrawn++
}

// ReadPixels reads back the current frame as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Drawn returns the number of objects drawn since Begin.
func (r *Renderer) Drawn() int {
	return r.numDrawn
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}
