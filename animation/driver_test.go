package animation

import (
	"math"
	"testing"
)

func TestInitialState(t *testing.T) {
	s := NewDriver(DefaultSteps).State()
	if s.Angle != 0 || s.Offset != 0 || s.Direction != 1 || s.Tick != 0 {
		t.Fatalf("initial state %+v", s)
	}
}

func TestAngleAccumulates(t *testing.T) {
	d := NewDriver(DefaultSteps)
	want := 0.0
	for n := 1; n <= 1000; n++ {
		d.Advance()
		want += DefaultSteps.Angle
		if got := d.State().Angle; got != want {
			t.Fatalf("tick %d: angle %v, want %v", n, got, want)
		}
	}
	if got := d.State().Angle; math.Abs(got-1000*DefaultSteps.Angle) > 1e-9 {
		t.Fatalf("angle after 1000 ticks = %v", got)
	}
}

func TestOffsetFlipsAtTick70(t *testing.T) {
	d := NewDriver(DefaultSteps)
	for i := 0; i < 69; i++ {
		d.Advance()
		if d.State().Direction != 1 {
			t.Fatalf("flipped early at tick %d, offset %v", i+1, d.State().Offset)
		}
	}
	d.Advance()
	s := d.State()
	if s.Tick != 70 {
		t.Fatalf("tick = %d", s.Tick)
	}
	if math.Abs(s.Offset-0.70) > DefaultSteps.Offset {
		t.Errorf("offset = %v, want 0.70", s.Offset)
	}
	if s.Direction != -1 {
		t.Errorf("direction = %v after crossing the bound", s.Direction)
	}
}

func TestOvershootIsNotClamped(t *testing.T) {
	d := NewDriver(Steps{Angle: 0, Offset: 0.3, Bound: 0.7})
	d.Advance() // 0.3
	d.Advance() // 0.6
	d.Advance() // 0.9, beyond the bound
	s := d.State()
	if math.Abs(s.Offset-0.9) > 1e-12 {
		t.Fatalf("offset = %v, want overshoot to 0.9", s.Offset)
	}
	if s.Direction != -1 {
		t.Fatalf("direction = %v", s.Direction)
	}
	d.Advance()
	if got := d.State().Offset; math.Abs(got-0.6) > 1e-12 {
		t.Fatalf("offset after turning = %v, want 0.6", got)
	}
}

func TestOffsetStaysBoundedAndFlipsOncePerCrossing(t *testing.T) {
	d := NewDriver(DefaultSteps)
	prev := d.State().Direction
	flips := 0
	for i := 0; i < 1000; i++ {
		d.Advance()
		s := d.State()
		if s.Offset > 0.71 || s.Offset < -0.71 {
			t.Fatalf("tick %d: offset %v out of range", s.Tick, s.Offset)
		}
		if s.Direction != prev {
			flips++
			if math.Abs(s.Offset) <= DefaultSteps.Bound {
				t.Fatalf("tick %d: flipped inside the bound at %v", s.Tick, s.Offset)
			}
			prev = s.Direction
		}
	}
	// 70 ticks up, then 140 ticks per half period
	if flips < 6 || flips > 8 {
		t.Fatalf("%d flips in 1000 ticks", flips)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	a, b := NewDriver(DefaultSteps), NewDriver(DefaultSteps)
	for i := 0; i < 500; i++ {
		a.Advance()
		b.Advance()
	}
	if a.State() != b.State() {
		t.Fatalf("%+v != %+v", a.State(), b.State())
	}
}

type countdown struct {
	frames int
	ended  int
}

func (c *countdown) ShouldClose() bool { return c.ended >= c.frames }
func (c *countdown) EndFrame()         { c.ended++ }

func TestRunDrawsThenAdvances(t *testing.T) {
	d := NewDriver(DefaultSteps)
	sched := &countdown{frames: 5}
	var seen []State
	d.Run(sched, func(s State) { seen = append(seen, s) })

	if len(seen) != 5 {
		t.Fatalf("drew %d frames, want 5", len(seen))
	}
	if seen[0].Angle != 0 || seen[0].Tick != 0 {
		t.Errorf("first frame drew %+v, want the initial state", seen[0])
	}
	for i, s := range seen {
		if s.Tick != i {
			t.Errorf("frame %d saw tick %d", i, s.Tick)
		}
	}
	if d.State().Tick != 5 {
		t.Errorf("driver at tick %d", d.State().Tick)
	}
}

func TestRunStopsImmediatelyWhenClosed(t *testing.T) {
	d := NewDriver(DefaultSteps)
	d.Run(&countdown{frames: 0}, func(State) { t.Fatal("frame drawn after close") })
}
