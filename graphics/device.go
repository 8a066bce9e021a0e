package graphics

import "github.com/go-gl/mathgl/mgl32"

// Stage selects a programmable pipeline stage.
type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// Topology is the primitive assembly mode for a draw call.
type Topology int

const (
	Triangles Topology = iota
	TriangleFan
)

func (t Topology) String() string {
	switch t {
	case Triangles:
		return "triangles"
	case TriangleFan:
		return "triangle-fan"
	}
	return "unknown"
}

// Usage hints how often a buffer's contents change. Every buffer here is
// written once, so StaticDraw is the only hint.
type Usage int

const (
	StaticDraw Usage = iota
)

// ClearMask selects the attachments cleared by Device.Clear.
type ClearMask int

const (
	ColorBuffer ClearMask = 1 << iota
	DepthBuffer
)

// Capability is a fixed-function switch toggled with Device.Enable.
type Capability int

const (
	DepthTest Capability = iota
)

// Device is the subset of OpenGL the renderer drives. All calls must be made
// from the thread that owns the current context.
//
// Location lookups return -1 for names the linked program does not use.
type Device interface {
	CreateShader(stage Stage) uint32
	// CompileShader sets the source and compiles; the info log is returned on failure.
	CompileShader(shader uint32, source string) (ok bool, log string)
	DeleteShader(shader uint32)

	CreateProgram() uint32
	// LinkProgram attaches the shaders and links; the info log is returned on failure.
	LinkProgram(program uint32, shaders ...uint32) (ok bool, log string)
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32

	CreateBuffer(data []float32, usage Usage) uint32
	BindBuffer(buffer uint32)
	// VertexAttribPointer describes tightly packed, non-normalized float data
	// with size components per vertex in the bound buffer.
	VertexAttribPointer(location int32, size int32)
	EnableVertexAttribArray(location int32)
	UniformMatrix4(location int32, m mgl32.Mat4)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Enable(c Capability)
	DrawArrays(mode Topology, first, count int)

	// CreateRenderTarget allocates an offscreen colour+depth framebuffer.
	CreateRenderTarget(width, height int) (uint32, error)
	// BindRenderTarget directs drawing to target; 0 selects the window.
	BindRenderTarget(target uint32)
	// ReadPixels returns the bound target's RGBA8 pixels, bottom row first.
	ReadPixels(width, height int) []byte
	DeleteRenderTarget(target uint32)
}
