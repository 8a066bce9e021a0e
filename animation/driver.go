// Package animation advances the per-shape transform state once per frame.
package animation

// Steps configures the oscillators.
type Steps struct {
	Angle  float64 // radians added to the square's angle per tick
	Offset float64 // distance the fan moves per tick
	Bound  float64 // the fan turns around once |offset| exceeds this
}

// DefaultSteps are the rates used when no scene file overrides them.
var DefaultSteps = Steps{Angle: 0.02, Offset: 0.01, Bound: 0.7}

// State is the transform state read by the renderer.
type State struct {
	// Angle is the square's rotation in radians. It grows without bound.
	Angle float64
	// Offset is the fan's vertical translation.
	Offset float64
	// Direction is +1 while the fan moves up and -1 while it moves down.
	Direction float64
	// Tick counts completed advances.
	Tick int
}

// Scheduler is the host's frame clock. graphics.Context satisfies it.
type Scheduler interface {
	ShouldClose() bool
	// EndFrame returns when the next frame may be drawn.
	EndFrame()
}

// Driver owns the State and advances it.
type Driver struct {
	steps Steps
	state State
}

// NewDriver starts at angle 0, offset 0, moving up.
func NewDriver(steps Steps) *Driver {
	return &Driver{
		steps: steps,
		state: State{Direction: 1},
	}
}

// State returns a copy of the current state.
func (d *Driver) State() State {
	return d.state
}

// Advance moves both oscillators by one tick. The bound is checked after the
// move, so the offset overshoots by up to one step before turning around.
func (d *Driver) Advance() {
	s := &d.state
	s.Angle += d.steps.Angle
	s.Offset += d.steps.Offset * s.Direction
	if s.Offset > d.steps.Bound || s.Offset < -d.steps.Bound {
		s.Direction = -s.Direction
	}
	s.Tick++
}

// Run draws and advances once per frame until the scheduler asks to close.
func (d *Driver) Run(sched Scheduler, frame func(State)) {
	for !sched.ShouldClose() {
		frame(d.state)
		d.Advance()
		sched.EndFrame()
	}
}
