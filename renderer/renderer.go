// Package renderer draws the square and the fan and runs the interactive loop.
package renderer

import (
	"log"

	"github.com/richinsley/glshapes/animation"
	"github.com/richinsley/glshapes/graphics"
)

// Renderer drives a RenderContext from the host's frame clock.
type Renderer struct {
	context graphics.Context
	scene   *RenderContext
	driver  *animation.Driver
}

func NewRenderer(ctx graphics.Context, scene *RenderContext, driver *animation.Driver) *Renderer {
	return &Renderer{
		context: ctx,
		scene:   scene,
		driver:  driver,
	}
}

// Run renders until the window is closed.
func (r *Renderer) Run() {
	startTime := r.context.Time()
	r.driver.Run(r.context, r.scene.RenderFrame)

	frames := r.driver.State().Tick
	elapsed := r.context.Time() - startTime
	if elapsed > 0 {
		log.Printf("Rendered %d frames in %.1fs (%.1f fps)", frames, elapsed, float64(frames)/elapsed)
	}
}
