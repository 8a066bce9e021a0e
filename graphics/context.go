package graphics

import "errors"

// ErrContextUnavailable is returned when no OpenGL context can be obtained
// from the host. Nothing is rendered after it is reported.
var ErrContextUnavailable = errors.New("graphics context unavailable")

// Context defines the interface for an OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the frame and blocks until the host is ready for the next one.
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
}
