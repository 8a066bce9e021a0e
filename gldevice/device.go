// Package gldevice implements graphics.Device on the OpenGL 4.1 core profile.
package gldevice

import (
	"fmt"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glshapes/graphics"
)

// gl.Init loads function pointers for the current context; once is enough.
var glInitOnce sync.Once

type renderTarget struct {
	fbo               uint32
	textureID         uint32
	depthRenderbuffer uint32
}

// Device forwards graphics.Device calls to OpenGL.
type Device struct {
	vao     uint32
	targets map[uint32]*renderTarget
}

// New loads the OpenGL entry points for the current context and creates the
// vertex array object every core profile draw needs. The context must already
// be current on the calling thread.
func New() (*Device, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %v: %w", initErr, graphics.ErrContextUnavailable)
	}

	d := &Device{targets: make(map[uint32]*renderTarget)}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	return d, nil
}

// Version returns the GL_VERSION string of the current context.
func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func shaderType(stage graphics.Stage) uint32 {
	if stage == graphics.FragmentStage {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func topology(t graphics.Topology) uint32 {
	switch t {
	case graphics.TriangleFan:
		return gl.TRIANGLE_FAN
	}
	return gl.TRIANGLES
}

func (d *Device) CreateShader(stage graphics.Stage) uint32 {
	return gl.CreateShader(shaderType(stage))
}

func (d *Device) CompileShader(shader uint32, source string) (bool, string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		return false, strings.TrimRight(logText, "\x00")
	}
	return true, ""
}

func (d *Device) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Device) LinkProgram(program uint32, shaders ...uint32) (bool, string) {
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return false, strings.TrimRight(log, "\x00")
	}
	for _, s := range shaders {
		gl.DetachShader(program, s)
	}
	return true, ""
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Device) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// CreateBuffer uploads data with GL_STATIC_DRAW, the only graphics.Usage.
func (d *Device) CreateBuffer(data []float32, _ graphics.Usage) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vbo
}

func (d *Device) BindBuffer(buffer uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
}

func (d *Device) VertexAttribPointer(location int32, size int32) {
	gl.VertexAttribPointer(uint32(location), size, gl.FLOAT, false, 0, gl.PtrOffset(0))
}

func (d *Device) EnableVertexAttribArray(location int32) {
	gl.EnableVertexAttribArray(uint32(location))
}

func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear(mask graphics.ClearMask) {
	var bits uint32
	if mask&graphics.ColorBuffer != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&graphics.DepthBuffer != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (d *Device) Enable(c graphics.Capability) {
	switch c {
	case graphics.DepthTest:
		gl.Enable(gl.DEPTH_TEST)
	}
}

func (d *Device) DrawArrays(mode graphics.Topology, first, count int) {
	gl.DrawArrays(topology(mode), int32(first), int32(count))
}

func (d *Device) CreateRenderTarget(width, height int) (uint32, error) {
	rt := &renderTarget{}
	gl.GenFramebuffers(1, &rt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.fbo)

	gl.GenTextures(1, &rt.textureID)
	gl.BindTexture(gl.TEXTURE_2D, rt.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.textureID, 0)

	gl.GenRenderbuffers(1, &rt.depthRenderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.depthRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rt.depthRenderbuffer)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		d.destroyTarget(rt)
		return 0, fmt.Errorf("offscreen fbo is not complete (status 0x%x)", status)
	}

	d.targets[rt.fbo] = rt
	return rt.fbo, nil
}

func (d *Device) BindRenderTarget(target uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, target)
}

func (d *Device) ReadPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

func (d *Device) DeleteRenderTarget(target uint32) {
	if rt, ok := d.targets[target]; ok {
		d.destroyTarget(rt)
		delete(d.targets, target)
	}
}

func (d *Device) destroyTarget(rt *renderTarget) {
	gl.DeleteFramebuffers(1, &rt.fbo)
	gl.DeleteTextures(1, &rt.textureID)
	gl.DeleteRenderbuffers(1, &rt.depthRenderbuffer)
}

var _ graphics.Device = (*Device)(nil)
