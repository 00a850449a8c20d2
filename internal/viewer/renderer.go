package viewer

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshprep/internal/logger"
	"github.com/Faultbox/meshprep/pkg/math"
	"github.com/Faultbox/meshprep/pkg/mesh"
)

const vertexShaderSrc = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec4 aSurface;

uniform mat4 uProjection;
uniform mat4 uView;

out vec3 vNormal;
flat out float vSurface;

void main() {
	vNormal = aNormal;
	vSurface = aSurface.x;
	gl_Position = uProjection * uView * vec4(aPosition, 1.0);
}
`

const fragmentShaderSrc = `#version 410 core
in vec3 vNormal;
flat in float vSurface;

uniform vec3 uLightDir;

out vec4 fragColor;

// One repeatable tint per surface identifier.
vec3 surfaceTint(float id) {
	float r = fract(sin(id * 12.9898) * 43758.5453);
	float g = fract(sin(id * 78.233) * 43758.5453);
	float b = fract(sin(id * 37.719) * 43758.5453);
	return 0.25 + 0.75 * vec3(r, g, b);
}

void main() {
	vec3 n = normalize(vNormal);
	float diffuse = max(dot(n, -uLightDir), 0.0);
	vec3 color = surfaceTint(vSurface) * (0.35 + 0.65 * diffuse);
	fragColor = vec4(color, 1.0);
}
`

// RendererConfig holds renderer configuration.
type RendererConfig struct {
	Width  int
	Height int
}

// Renderer uploads one prepared mesh and draws it each frame.
// Must be created after the OpenGL context exists.
type Renderer struct {
	config RendererConfig

	program uint32
	vao     uint32
	vbos    [3]uint32
	ebo     uint32

	indexCount int32

	uProjection int32
	uView       int32
	uLightDir   int32
}

// NewRenderer initializes OpenGL state and compiles the mesh shader.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	r.program, err = compileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.uProjection = getUniform(r.program, "uProjection")
	r.uView = getUniform(r.program, "uView")
	r.uLightDir = getUniform(r.program, "uLightDir")

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	for i := range r.vbos {
		if r.vbos[i] != 0 {
			gl.DeleteBuffers(1, &r.vbos[i])
		}
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// UploadMesh uploads the mesh positions, smoothed normals, and the
// 4-component surface attribute into one VAO.
func (r *Renderer) UploadMesh(m *mesh.Mesh, surfaceAttr []float32) {
	normals := mesh.ComputeNormals(m, mesh.DefaultPrecision)

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	buffers := [3]struct {
		data []float32
		size int32
	}{
		{m.Positions, 3},
		{normals, 3},
		{surfaceAttr, 4},
	}
	for i, buf := range buffers {
		gl.GenBuffers(1, &r.vbos[i])
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbos[i])
		gl.BufferData(gl.ARRAY_BUFFER, len(buf.data)*4, gl.Ptr(buf.data), gl.STATIC_DRAW)
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointer(uint32(i), buf.size, gl.FLOAT, false, 0, nil)
	}

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.indexCount = int32(len(m.Indices))
	logger.Info("mesh uploaded",
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()),
	)
}

// Draw renders the uploaded mesh with the given camera.
func (r *Renderer) Draw(cam *OrbitCamera) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.indexCount == 0 {
		return
	}

	aspect := float32(r.config.Width) / float32(r.config.Height)
	projection := math.Perspective(float32(gomath.Pi/4), aspect, 0.01, 1000)
	view := cam.ViewMatrix()

	// Headlight: light from the camera direction.
	lightDir := cam.Center.Sub(cam.Position()).Normalize()

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uProjection, 1, false, projection.Ptr())
	gl.UniformMatrix4fv(r.uView, 1, false, view.Ptr())
	gl.Uniform3f(r.uLightDir, lightDir.X, lightDir.Y, lightDir.Z)

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}
