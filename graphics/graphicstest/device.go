// Package graphicstest provides an in-memory graphics.Device for tests.
//
// The Device records every call in order and imitates a GLSL driver closely
// enough to exercise compile and link failures: a stage without a main
// function, or containing an #error directive, fails to compile, and a
// fragment input with no matching vertex output fails to link.
package graphicstest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glshapes/graphics"
)

// Call is one recorded Device method invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

type shaderObject struct {
	stage  graphics.Stage
	source string
}

type programObject struct {
	linked   bool
	attribs  map[string]int32
	uniforms map[string]int32
}

// Device implements graphics.Device without a GPU.
type Device struct {
	// LinkLog, when set, makes every link fail with this log.
	LinkLog string
	// Optimized lists names that link but report no location, as a driver
	// does for inputs that never reach an output.
	Optimized map[string]bool

	calls    []Call
	nextID   uint32
	shaders  map[uint32]*shaderObject
	programs map[uint32]*programObject
	buffers  map[uint32][]float32
	targets  map[uint32][2]int
	current  uint32
	bound    uint32
	draws    int
}

var (
	inDecl      = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:in|attribute)\s+\w+\s+(\w+)\s*;`)
	outDecl     = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:out|varying)\s+\w+\s+(\w+)\s*;`)
	varyingDecl = regexp.MustCompile(`(?m)^\s*(?:in|varying)\s+\w+\s+(\w+)\s*;`)
	uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+(?:\w+\s+)?\w+\s+(\w+)\s*;`)
)

// NewDevice returns an empty Device.
func NewDevice() *Device {
	return &Device{
		Optimized: make(map[string]bool),
		shaders:   make(map[uint32]*shaderObject),
		programs:  make(map[uint32]*programObject),
		buffers:   make(map[uint32][]float32),
		targets:   make(map[uint32][2]int),
	}
}

func (d *Device) record(name string, args ...any) {
	d.calls = append(d.calls, Call{Name: name, Args: args})
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

// Calls returns every recorded call in order.
func (d *Device) Calls() []Call {
	return d.calls
}

// CallNames returns the recorded method names in order.
func (d *Device) CallNames() []string {
	names := make([]string, len(d.calls))
	for i, c := range d.calls {
		names[i] = c.Name
	}
	return names
}

// Count returns how many times the named method was called.
func (d *Device) Count(name string) int {
	n := 0
	for _, c := range d.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls with the given name.
func (d *Device) Filter(name string) []Call {
	var out []Call
	for _, c := range d.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets recorded calls but keeps every object alive.
func (d *Device) Reset() {
	d.calls = nil
}

// Buffer returns a copy of the data uploaded to buffer.
func (d *Device) Buffer(buffer uint32) ([]float32, bool) {
	data, ok := d.buffers[buffer]
	if !ok {
		return nil, false
	}
	return append([]float32(nil), data...), true
}

// LiveShaders reports how many shader objects have not been deleted.
func (d *Device) LiveShaders() int {
	return len(d.shaders)
}

// LivePrograms reports how many program objects have not been deleted.
func (d *Device) LivePrograms() int {
	return len(d.programs)
}

// CurrentProgram returns the program selected by the last UseProgram.
func (d *Device) CurrentProgram() uint32 {
	return d.current
}

func (d *Device) CreateShader(stage graphics.Stage) uint32 {
	id := d.id()
	d.shaders[id] = &shaderObject{stage: stage}
	d.record("CreateShader", stage)
	return id
}

func (d *Device) CompileShader(shader uint32, source string) (bool, string) {
	d.record("CompileShader", shader)
	s, ok := d.shaders[shader]
	if !ok {
		return false, "ERROR: invalid shader object"
	}
	s.source = source
	if i := strings.Index(source, "#error"); i >= 0 {
		line := strings.Count(source[:i], "\n") + 1
		return false, fmt.Sprintf("ERROR: 0:%d: '#error' : %s", line, strings.TrimSpace(firstLine(source[i+len("#error"):])))
	}
	if !strings.Contains(source, "void main") {
		return false, "ERROR: 0:1: 'main' : function not defined"
	}
	if strings.Count(source, "{") != strings.Count(source, "}") {
		return false, "ERROR: 0:1: '' : syntax error: unbalanced braces"
	}
	return true, ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func (d *Device) DeleteShader(shader uint32) {
	d.record("DeleteShader", shader)
	delete(d.shaders, shader)
}

func (d *Device) CreateProgram() uint32 {
	id := d.id()
	d.programs[id] = &programObject{}
	d.record("CreateProgram")
	return id
}

func (d *Device) LinkProgram(program uint32, shaders ...uint32) (bool, string) {
	d.record("LinkProgram", program, len(shaders))
	p, ok := d.programs[program]
	if !ok {
		return false, "ERROR: invalid program object"
	}
	if d.LinkLog != "" {
		return false, d.LinkLog
	}

	var vertex, fragment *shaderObject
	for _, id := range shaders {
		s, ok := d.shaders[id]
		if !ok {
			return false, fmt.Sprintf("ERROR: shader %d is not a shader object", id)
		}
		switch s.stage {
		case graphics.VertexStage:
			vertex = s
		case graphics.FragmentStage:
			fragment = s
		}
	}
	if vertex == nil || fragment == nil {
		return false, "ERROR: program needs a vertex and a fragment shader"
	}

	outputs := make(map[string]bool)
	for _, m := range outDecl.FindAllStringSubmatch(vertex.source, -1) {
		outputs[m[1]] = true
	}
	for _, m := range varyingDecl.FindAllStringSubmatch(fragment.source, -1) {
		if !outputs[m[1]] {
			return false, fmt.Sprintf("ERROR: Input of fragment shader '%s' not written by vertex shader", m[1])
		}
	}

	p.attribs = make(map[string]int32)
	for _, m := range inDecl.FindAllStringSubmatch(vertex.source, -1) {
		if d.Optimized[m[1]] {
			continue
		}
		p.attribs[m[1]] = int32(len(p.attribs))
	}
	p.uniforms = make(map[string]int32)
	for _, src := range []string{vertex.source, fragment.source} {
		for _, m := range uniformDecl.FindAllStringSubmatch(src, -1) {
			if _, seen := p.uniforms[m[1]]; seen || d.Optimized[m[1]] {
				continue
			}
			p.uniforms[m[1]] = int32(len(p.uniforms))
		}
	}
	p.linked = true
	return true, ""
}

func (d *Device) UseProgram(program uint32) {
	d.record("UseProgram", program)
	d.current = program
}

func (d *Device) DeleteProgram(program uint32) {
	d.record("DeleteProgram", program)
	delete(d.programs, program)
	if d.current == program {
		d.current = 0
	}
}

func (d *Device) AttribLocation(program uint32, name string) int32 {
	d.record("AttribLocation", program, name)
	if p, ok := d.programs[program]; ok && p.linked {
		if loc, ok := p.attribs[name]; ok {
			return loc
		}
	}
	return -1
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.record("UniformLocation", program, name)
	if p, ok := d.programs[program]; ok && p.linked {
		if loc, ok := p.uniforms[name]; ok {
			return loc
		}
	}
	return -1
}

func (d *Device) CreateBuffer(data []float32, usage graphics.Usage) uint32 {
	id := d.id()
	d.buffers[id] = append([]float32(nil), data...)
	d.record("CreateBuffer", len(data), usage)
	return id
}

func (d *Device) BindBuffer(buffer uint32) {
	d.record("BindBuffer", buffer)
	d.bound = buffer
}

func (d *Device) VertexAttribPointer(location int32, size int32) {
	d.record("VertexAttribPointer", location, size, d.bound)
}

func (d *Device) EnableVertexAttribArray(location int32) {
	d.record("EnableVertexAttribArray", location)
}

func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	d.record("UniformMatrix4", location, m)
}

func (d *Device) Viewport(x, y, width, height int) {
	d.record("Viewport", x, y, width, height)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.record("ClearColor", r, g, b, a)
}

func (d *Device) Clear(mask graphics.ClearMask) {
	d.record("Clear", mask)
}

func (d *Device) Enable(c graphics.Capability) {
	d.record("Enable", c)
}

func (d *Device) DrawArrays(mode graphics.Topology, first, count int) {
	d.record("DrawArrays", mode, first, count)
	d.draws++
}

// Draws returns the number of DrawArrays calls since the device was created.
func (d *Device) Draws() int {
	return d.draws
}

func (d *Device) CreateRenderTarget(width, height int) (uint32, error) {
	d.record("CreateRenderTarget", width, height)
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("invalid render target size %dx%d", width, height)
	}
	id := d.id()
	d.targets[id] = [2]int{width, height}
	return id, nil
}

func (d *Device) BindRenderTarget(target uint32) {
	d.record("BindRenderTarget", target)
}

// ReadPixels fills every byte with the running draw count so successive
// frames can be told apart.
func (d *Device) ReadPixels(width, height int) []byte {
	d.record("ReadPixels", width, height)
	pixels := make([]byte, width*height*4)
	for i := range pixels {
		pixels[i] = byte(d.draws)
	}
	return pixels
}

func (d *Device) DeleteRenderTarget(target uint32) {
	d.record("DeleteRenderTarget", target)
	delete(d.targets, target)
}

var _ graphics.Device = (*Device)(nil)
