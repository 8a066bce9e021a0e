package renderer

import (
	"fmt"

	"github.com/richinsley/glshapes/graphics"
	"github.com/richinsley/glshapes/options"
	"github.com/richinsley/glshapes/shader"
)

// LoadScene builds the shader program and the render context for a scene.
//
// With a translator the built-in sources are the GLSL ES 3.00 ones and
// scene shader files are expected in that dialect too; without one every
// source is compiled as desktop GLSL 4.10.
func LoadScene(dev graphics.Device, tr shader.Translator, scene options.Scene, width, height int) (*RenderContext, error) {
	src, err := shader.LoadSources(shader.DefaultSources(tr != nil), scene.Shaders.Vertex, scene.Shaders.Fragment)
	if err != nil {
		return nil, err
	}

	program, err := shader.NewProgram(dev, tr, src, shader.DefaultLayout())
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	rc, err := NewRenderContext(dev, program, scene, width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to create render context: %w", err)
	}
	return rc, nil
}
