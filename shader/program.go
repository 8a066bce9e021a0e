package shader

import (
	"fmt"

	"github.com/richinsley/glshapes/graphics"
)

// Symbolic names the renderer asks a Program for.
const (
	Position         = "position"
	Color            = "color"
	ModelViewMatrix  = "modelViewMatrix"
	ProjectionMatrix = "projectionMatrix"
)

// Unused is the location reported for a name the linked program does not
// have, for example an attribute the compiler optimized out.
const Unused int32 = -1

// CompileError carries the driver's info log for a stage that failed to compile.
type CompileError struct {
	Stage graphics.Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Stage, e.Log)
}

// LinkError carries the driver's info log for a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("failed to link program: %s", e.Log)
}

// Translation is a stage rewritten for the device's GLSL dialect.
type Translation struct {
	Code string
	// Names maps identifiers in the untranslated source to their names in Code.
	Names map[string]string
}

// Translator rewrites shader source before it is compiled.
type Translator interface {
	Translate(stage graphics.Stage, source string) (*Translation, error)
}

// Layout binds symbolic names to GLSL identifiers.
type Layout struct {
	Attributes map[string]string
	Uniforms   map[string]string
}

// DefaultLayout matches the built-in sources.
func DefaultLayout() Layout {
	return Layout{
		Attributes: map[string]string{
			Position: "aPosition",
			Color:    "aColor",
		},
		Uniforms: map[string]string{
			ModelViewMatrix:  "uModelViewMatrix",
			ProjectionMatrix: "uProjectionMatrix",
		},
	}
}

// Program is a linked vertex+fragment pipeline with its locations resolved.
// Locations are only meaningful while the program exists.
type Program struct {
	dev      graphics.Device
	id       uint32
	attribs  map[string]int32
	uniforms map[string]int32
}

// NewProgram compiles both stages, links them and makes the result the
// current program. tr may be nil, in which case sources are compiled as given.
//
// A stage that fails is deleted and nothing further is compiled or linked.
func NewProgram(dev graphics.Device, tr Translator, src Sources, layout Layout) (*Program, error) {
	names := make(map[string]string)

	vertexShader, err := compileShader(dev, tr, graphics.VertexStage, src.Vertex, names)
	if err != nil {
		return nil, err
	}
	fragmentShader, err := compileShader(dev, tr, graphics.FragmentStage, src.Fragment, names)
	if err != nil {
		dev.DeleteShader(vertexShader)
		return nil, err
	}

	program := dev.CreateProgram()
	ok, log := dev.LinkProgram(program, vertexShader, fragmentShader)
	dev.DeleteShader(vertexShader)
	dev.DeleteShader(fragmentShader)
	if !ok {
		dev.DeleteProgram(program)
		return nil, &LinkError{Log: log}
	}

	p := &Program{
		dev:      dev,
		id:       program,
		attribs:  make(map[string]int32, len(layout.Attributes)),
		uniforms: make(map[string]int32, len(layout.Uniforms)),
	}
	dev.UseProgram(program)

	for sym, ident := range layout.Attributes {
		p.attribs[sym] = dev.AttribLocation(program, mappedName(names, ident))
	}
	for sym, ident := range layout.Uniforms {
		p.uniforms[sym] = dev.UniformLocation(program, mappedName(names, ident))
	}
	return p, nil
}

func mappedName(names map[string]string, ident string) string {
	if mapped, ok := names[ident]; ok && mapped != "" {
		return mapped
	}
	return ident
}

func compileShader(dev graphics.Device, tr Translator, stage graphics.Stage, source string, names map[string]string) (uint32, error) {
	if tr != nil {
		t, err := tr.Translate(stage, source)
		if err != nil {
			return 0, &CompileError{Stage: stage, Log: err.Error()}
		}
		source = t.Code
		for k, v := range t.Names {
			names[k] = v
		}
	}

	shader := dev.CreateShader(stage)
	if ok, log := dev.CompileShader(shader, source); !ok {
		dev.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return shader, nil
}

// ID returns the device program object.
func (p *Program) ID() uint32 {
	return p.id
}

// Attrib returns the attribute location for a symbolic name, or Unused.
func (p *Program) Attrib(name string) int32 {
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return Unused
}

// Uniform returns the uniform location for a symbolic name, or Unused.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return Unused
}
