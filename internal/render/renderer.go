// Package render draws the demo scene: flat-shaded boxes under a single
// directional light, enough to exercise the camera controls.
package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/thmxv/blendy-cameras/pkg/math"
	"github.com/thmxv/blendy-cameras/pkg/picking"
)

const vertexSrc = `#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;

uniform mat4 uProj;
uniform mat4 uView;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
    vNormal = mat3(uModel) * aNormal;
    gl_Position = uProj * uView * uModel * vec4(aPos, 1.0);
}
`

const fragmentSrc = `#version 410 core
in vec3 vNormal;

uniform vec3 uColor;

out vec4 fragColor;

void main() {
    vec3 lightDir = normalize(vec3(0.4, 0.8, 0.6));
    float diffuse = max(dot(normalize(vNormal), lightDir), 0.0);
    vec3 color = uColor * (0.25 + 0.75 * diffuse);
    fragColor = vec4(color, 1.0);
}
`

// Box is a renderable unit: an axis-aligned box with a color.
type Box struct {
	Bounds picking.AABB
	Color  math.Vec3
}

// Renderer owns the GL program and cube geometry for drawing boxes.
type Renderer struct {
	program uint32
	vao     uint32
	vbo     uint32

	locProj  int32
	locView  int32
	locModel int32
	locColor int32
}

// NewRenderer initializes OpenGL state. Must be called with a current GL
// context.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	program, err := compileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		program:  program,
		locProj:  uniform(program, "uProj"),
		locView:  uniform(program, "uView"),
		locModel: uniform(program, "uModel"),
		locColor: uniform(program, "uColor"),
	}

	vertices := cubeVertices()
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)
	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)

	return r, nil
}

// Close releases GL resources.
func (r *Renderer) Close() {
	gl.DeleteBuffers(1, &r.vbo)
	gl.DeleteVertexArrays(1, &r.vao)
	gl.DeleteProgram(r.program)
}

// Frame clears the framebuffer and sets the viewport.
func (r *Renderer) Frame(w, h int32) {
	gl.Viewport(0, 0, w, h)
	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the boxes with the given view and projection.
func (r *Renderer) Draw(view, proj math.Mat4, boxes []Box) {
	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locProj, 1, false, proj.Ptr())
	gl.UniformMatrix4fv(r.locView, 1, false, view.Ptr())

	gl.BindVertexArray(r.vao)
	for i := range boxes {
		box := &boxes[i]
		center := box.Bounds.Center()
		half := box.Bounds.Diagonal().Scale(0.5)
		model := math.Translate(center.X, center.Y, center.Z).
			Mul(math.Scale(half.X, half.Y, half.Z))
		gl.UniformMatrix4fv(r.locModel, 1, false, model.Ptr())
		gl.Uniform3f(r.locColor, box.Color.X, box.Color.Y, box.Color.Z)
		gl.DrawArrays(gl.TRIANGLES, 0, 36)
	}
	gl.BindVertexArray(0)
}

// cubeVertices returns a unit cube (half extent 1) as position+normal
// triangles.
func cubeVertices() []float32 {
	faces := []struct {
		normal math.Vec3
		a, b   math.Vec3 // in-plane axes, a x b = normal
	}{
		{math.Vec3{Z: 1}, math.Vec3{X: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Z: -1}, math.Vec3{Y: 1}, math.Vec3{X: 1}},
		{math.Vec3{X: 1}, math.Vec3{Y: 1}, math.Vec3{Z: 1}},
		{math.Vec3{X: -1}, math.Vec3{Z: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Y: 1}, math.Vec3{Z: 1}, math.Vec3{X: 1}},
		{math.Vec3{Y: -1}, math.Vec3{X: 1}, math.Vec3{Z: 1}},
	}

	var out []float32
	push := func(p, n math.Vec3) {
		out = append(out, p.X, p.Y, p.Z, n.X, n.Y, n.Z)
	}
	for _, f := range faces {
		c := f.normal
		corner := func(sa, sb float32) math.Vec3 {
			return c.Add(f.a.Scale(sa)).Add(f.b.Scale(sb))
		}
		p00 := corner(-1, -1)
		p10 := corner(1, -1)
		p11 := corner(1, 1)
		p01 := corner(-1, 1)
		push(p00, f.normal)
		push(p10, f.normal)
		push(p11, f.normal)
		push(p00, f.normal)
		push(p11, f.normal)
		push(p01, f.normal)
	}
	return out
}
