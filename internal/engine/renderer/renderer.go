// Package renderer draws the scene mesh with OpenGL.
package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/bounce-box/internal/engine/geometry"
	"github.com/Faultbox/bounce-box/internal/engine/renderer/shaders"
	"github.com/Faultbox/bounce-box/internal/engine/shader"
	"github.com/Faultbox/bounce-box/internal/engine/view"
	"github.com/Faultbox/bounce-box/internal/logger"
)

const (
	attribPosition = 0
	attribNormal   = 1
)

var uniformNames = []string{
	"uModelView", "uNormalMatrix", "uCamera", "uProjection",
	"uLit", "uColorEven", "uColorOdd",
	"uAmbient", "uDiffuse", "uSpecular", "uLightTop", "uLightNear",
}

// Colors is the checkerboard pair of one surface.
type Colors struct {
	Even, Odd mgl32.Vec4
}

// DefaultPalette colors each surface.
func DefaultPalette() map[geometry.Surface]Colors {
	white := mgl32.Vec4{1, 1, 1, 1}
	shadow := mgl32.Vec4{0.25, 0.25, 0.25, 1}
	return map[geometry.Surface]Colors{
		geometry.Ground:       {Even: mgl32.Vec4{0.2, 0.2, 0.2, 1}, Odd: white},
		geometry.Wall:         {Even: mgl32.Vec4{0.2, 0.3, 0.8, 1}, Odd: white},
		geometry.Sphere:       {Even: mgl32.Vec4{0.9, 0.1, 0.1, 1}, Odd: white},
		geometry.GroundShadow: {Even: shadow, Odd: shadow},
		geometry.WallShadow:   {Even: shadow, Odd: shadow},
	}
}

// Config holds renderer configuration.
type Config struct {
	Width   int
	Height  int
	Palette map[geometry.Surface]Colors
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	program  uint32
	uniforms shader.Uniforms

	vao, vbo, ebo uint32
	mesh          *geometry.Mesh
}

// New creates a renderer. The OpenGL context must already be current.
func New(cfg Config) (*Renderer, error) {
	if cfg.Palette == nil {
		cfg.Palette = DefaultPalette()
	}
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ProvokingVertex(gl.FIRST_VERTEX_CONVENTION)
	gl.ClearColor(1, 1, 1, 1)

	var err error
	r.program, err = shader.CompileProgram(shaders.SceneVertexShader, shaders.SceneFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("scene shader: %w", err)
	}
	r.uniforms, err = shader.Locate(r.program, uniformNames...)
	if err != nil {
		gl.DeleteProgram(r.program)
		return nil, fmt.Errorf("scene shader: %w", err)
	}
	logger.Debug("shader program created", zap.Uint32("program", r.program))

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Upload copies the mesh to the GPU. Positions and normals share one
// buffer; the normals cover only the lit surfaces, which come first.
func (r *Renderer) Upload(m *geometry.Mesh) error {
	if len(m.Positions) == 0 || len(m.Indices) == 0 {
		return errors.New("upload: empty mesh")
	}
	r.deleteBuffers()

	posBytes := len(m.Positions) * 4 * 4
	normBytes := len(m.Normals) * 3 * 4

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, posBytes+normBytes, nil, gl.STATIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, posBytes, gl.Ptr(m.Positions))
	if normBytes > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, posBytes, normBytes, gl.Ptr(m.Normals))
	}

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(attribPosition, 4, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, 0, uintptr(posBytes))

	gl.BindVertexArray(0)
	r.mesh = m

	logger.Debug("mesh uploaded",
		zap.Int("vertices", len(m.Positions)),
		zap.Int("normals", len(m.Normals)),
		zap.Int("indices", len(m.Indices)),
	)
	return nil
}

// SetLighting sets the light colors and positions.
func (r *Renderer) SetLighting(p view.Params) {
	gl.UseProgram(r.program)
	l := p.Lighting
	gl.Uniform4fv(r.uniforms["uAmbient"], 1, &l.Ambient[0])
	gl.Uniform4fv(r.uniforms["uDiffuse"], 1, &l.Diffuse[0])
	gl.Uniform4fv(r.uniforms["uSpecular"], 1, &l.Specular[0])
	gl.Uniform3fv(r.uniforms["uLightTop"], 1, &p.LightTop[0])
	gl.Uniform3fv(r.uniforms["uLightNear"], 1, &p.LightNear[0])
}

// Resize sets the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Draw renders the visible surfaces of one frame.
func (r *Renderer) Draw(f *view.Frame, projection mgl32.Mat4, visible []geometry.Surface) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.mesh == nil {
		return
	}

	gl.UseProgram(r.program)
	gl.BindVertexArray(r.vao)

	gl.UniformMatrix4fv(r.uniforms["uCamera"], 1, false, &f.Camera[0])
	gl.UniformMatrix4fv(r.uniforms["uProjection"], 1, false, &projection[0])

	for _, s := range visible {
		rg, ok := r.mesh.Ranges[s]
		if !ok || rg.IndexCount == 0 {
			continue
		}
		model := f.Model(s)
		normal := f.Normal(s)
		colors := r.config.Palette[s]

		gl.UniformMatrix4fv(r.uniforms["uModelView"], 1, false, &model[0])
		gl.UniformMatrix4fv(r.uniforms["uNormalMatrix"], 1, false, &normal[0])
		gl.Uniform4fv(r.uniforms["uColorEven"], 1, &colors.Even[0])
		gl.Uniform4fv(r.uniforms["uColorOdd"], 1, &colors.Odd[0])

		// Shadow discs have no normals in the buffer; feed a constant.
		if s.Lit() {
			gl.Uniform1i(r.uniforms["uLit"], 1)
			gl.EnableVertexAttribArray(attribNormal)
		} else {
			gl.Uniform1i(r.uniforms["uLit"], 0)
			gl.DisableVertexAttribArray(attribNormal)
			gl.VertexAttrib3f(attribNormal, 0, 0, 1)
		}

		gl.DrawElementsWithOffset(gl.TRIANGLES, int32(rg.IndexCount), gl.UNSIGNED_INT, uintptr(rg.FirstIndex*4))
	}

	gl.BindVertexArray(0)
}

func (r *Renderer) deleteBuffers() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
		r.ebo = 0
	}
	r.mesh = nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.deleteBuffers()
	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}
