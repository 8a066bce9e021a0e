package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glshapes/animation"
	"github.com/richinsley/glshapes/geometry"
	"github.com/richinsley/glshapes/graphics"
	"github.com/richinsley/glshapes/options"
	"github.com/richinsley/glshapes/shader"
	"github.com/richinsley/glshapes/transform"
)

// RenderContext owns everything a frame needs: the device, the linked
// program, both meshes and the projection. It is created once and used only
// from the render thread.
type RenderContext struct {
	dev        graphics.Device
	program    *shader.Program
	square     *geometry.Mesh
	fan        *geometry.Mesh
	projection mgl32.Mat4
	clearMask  graphics.ClearMask
	fanAnchorX float32
	fanScale   float32

	projectionBound bool
}

func rgbList(colors []options.Color) []geometry.RGB {
	if len(colors) == 0 {
		return nil
	}
	out := make([]geometry.RGB, len(colors))
	for i, c := range colors {
		out[i] = c.RGB()
	}
	return out
}

// NewRenderContext prepares the fixed pipeline state and uploads both meshes.
// program must already be linked on dev.
func NewRenderContext(dev graphics.Device, program *shader.Program, scene options.Scene, width, height int) (*RenderContext, error) {
	rc := &RenderContext{
		dev:        dev,
		program:    program,
		projection: transform.Ortho(scene.ViewBox),
		clearMask:  graphics.ColorBuffer,
		fanAnchorX: scene.Fan.AnchorX,
		fanScale:   scene.Fan.Scale,
	}

	dev.Viewport(0, 0, width, height)
	c := scene.ClearColor
	dev.ClearColor(c[0], c[1], c[2], c[3])
	if scene.DepthTest {
		dev.Enable(graphics.DepthTest)
		rc.clearMask |= graphics.DepthBuffer
	}

	square, err := geometry.Square(scene.Square.HalfSize, rgbList(scene.Square.Colors))
	if err != nil {
		return nil, err
	}
	if rc.square, err = square.Upload(dev); err != nil {
		return nil, fmt.Errorf("failed to upload square: %w", err)
	}

	apex := geometry.DefaultFanApex
	if scene.Fan.Apex != nil {
		apex = scene.Fan.Apex.RGB()
	}
	fan, err := geometry.Fan(scene.Fan.Radius, scene.Fan.Segments, apex, rgbList(scene.Fan.Ring))
	if err != nil {
		return nil, err
	}
	if rc.fan, err = fan.Upload(dev); err != nil {
		return nil, fmt.Errorf("failed to upload fan: %w", err)
	}
	return rc, nil
}

// Projection returns the fixed orthographic projection.
func (rc *RenderContext) Projection() mgl32.Mat4 {
	return rc.projection
}

// SquareModelView rotates the square about Z by the current angle.
func (rc *RenderContext) SquareModelView(s animation.State) mgl32.Mat4 {
	return transform.RotateZ(transform.Identity(), float32(s.Angle))
}

// FanModelView places the fan at its anchor, raised by the current offset,
// then scales it uniformly.
func (rc *RenderContext) FanModelView(s animation.State) mgl32.Mat4 {
	m := transform.TranslateInPlace(transform.Identity(), mgl32.Vec3{rc.fanAnchorX, float32(s.Offset), 0})
	return transform.Scale(m, rc.fanScale)
}

// RenderFrame clears the target and draws the square, then the fan.
func (rc *RenderContext) RenderFrame(s animation.State) {
	rc.dev.Clear(rc.clearMask)
	rc.projectionBound = false

	rc.drawSquare(s)
	rc.drawFan(s)
}

func (rc *RenderContext) drawSquare(s animation.State) {
	rc.drawObject(rc.square, rc.SquareModelView(s))
}

func (rc *RenderContext) drawFan(s animation.State) {
	rc.drawObject(rc.fan, rc.FanModelView(s))
}

func (rc *RenderContext) drawObject(mesh *geometry.Mesh, modelView mgl32.Mat4) {
	if loc := rc.program.Uniform(shader.ModelViewMatrix); loc != shader.Unused {
		rc.dev.UniformMatrix4(loc, modelView)
	}
	if !rc.projectionBound {
		if loc := rc.program.Uniform(shader.ProjectionMatrix); loc != shader.Unused {
			rc.dev.UniformMatrix4(loc, rc.projection)
		}
		rc.projectionBound = true
	}

	rc.bindAttribute(shader.Position, mesh.Positions)
	rc.bindAttribute(shader.Color, mesh.Colors)
	rc.dev.DrawArrays(mesh.Mode, 0, mesh.Count())
}

// bindAttribute points an attribute slot at buf; unused slots are skipped.
func (rc *RenderContext) bindAttribute(name string, buf *geometry.Buffer) {
	loc := rc.program.Attrib(name)
	if loc == shader.Unused {
		return
	}
	rc.dev.BindBuffer(buf.ID)
	rc.dev.VertexAttribPointer(loc, geometry.ComponentsPerVertex)
	rc.dev.EnableVertexAttribArray(loc)
}
