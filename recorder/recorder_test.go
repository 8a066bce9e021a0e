package recorder

import (
	"errors"
	"testing"

	"github.com/richinsley/glshapes/animation"
	"github.com/richinsley/glshapes/graphics/graphicstest"
	"github.com/richinsley/glshapes/options"
	"github.com/richinsley/glshapes/renderer"
)

type memEncoder struct {
	frames []*Frame
	failAt int // fail on this PTS when > 0
	closed int
}

var errDiskFull = errors.New("disk full")

func (m *memEncoder) WriteFrame(f *Frame) error {
	if m.failAt > 0 && f.PTS == int64(m.failAt) {
		return errDiskFull
	}
	m.frames = append(m.frames, f)
	return nil
}

func (m *memEncoder) Close() error {
	m.closed++
	return nil
}

type countProgress struct {
	added    int
	finished bool
}

func (c *countProgress) Add(n int) error { c.added += n; return nil }
func (c *countProgress) Finish() error   { c.finished = true; return nil }

func setup(t *testing.T, cfg Config) (*graphicstest.Device, *animation.Driver, *Recorder) {
	t.Helper()
	dev := graphicstest.NewDevice()
	rc, err := renderer.LoadScene(dev, nil, options.DefaultScene(), cfg.Width, cfg.Height)
	if err != nil {
		t.Fatalf("LoadScene: %v", err)
	}
	d := animation.NewDriver(animation.DefaultSteps)
	return dev, d, New(dev, rc, d, cfg)
}

func TestRecordsOneTickPerFrame(t *testing.T) {
	cfg := Config{Width: 8, Height: 4, FPS: 30, Duration: 2}
	dev, d, rec := setup(t, cfg)
	progress := &countProgress{}
	rec.Progress = progress
	enc := &memEncoder{}

	if err := rec.Run(enc); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(enc.frames) != 60 {
		t.Fatalf("encoded %d frames, want 60", len(enc.frames))
	}
	for i, f := range enc.frames {
		if f.PTS != int64(i) {
			t.Fatalf("frame %d has PTS %d", i, f.PTS)
		}
		if len(f.Pixels) != 8*4*4 {
			t.Fatalf("frame %d has %d bytes", i, len(f.Pixels))
		}
		// the fake device stamps pixels with the running draw count
		if want := byte(2 * (i + 1)); f.Pixels[0] != want {
			t.Fatalf("frame %d read back before drawing: %d", i, f.Pixels[0])
		}
	}
	if d.State().Tick != 60 {
		t.Errorf("driver at tick %d", d.State().Tick)
	}
	if enc.closed != 1 {
		t.Errorf("encoder closed %d times", enc.closed)
	}
	if progress.added != 60 || !progress.finished {
		t.Errorf("progress %+v", progress)
	}

	binds := dev.Filter("BindRenderTarget")
	if len(binds) != 2 || binds[0].Args[0] == uint32(0) || binds[1].Args[0] != uint32(0) {
		t.Errorf("render target binds %v", binds)
	}
	if dev.Count("DeleteRenderTarget") != 1 {
		t.Error("render target not released")
	}
}

func TestEncoderFailureStopsRecording(t *testing.T) {
	cfg := Config{Width: 2, Height: 2, FPS: 10, Duration: 10}
	dev, _, rec := setup(t, cfg)
	rec.Progress = &countProgress{}
	enc := &memEncoder{failAt: 5}

	err := rec.Run(enc)
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("err = %v, want disk full", err)
	}
	if len(enc.frames) != 5 {
		t.Errorf("encoded %d frames before failing", len(enc.frames))
	}
	if n := dev.Count("ReadPixels"); n >= 100 {
		t.Errorf("kept rendering after encoder failed: %d frames", n)
	}
}

func TestInvalidConfig(t *testing.T) {
	_, _, rec := setup(t, Config{Width: 4, Height: 4, FPS: 0, Duration: 1})
	if err := rec.Run(&memEncoder{}); err == nil {
		t.Fatal("expected error for zero fps")
	}
}

func TestTotalFrames(t *testing.T) {
	cases := []struct {
		cfg  Config
		want int
	}{
		{Config{FPS: 60, Duration: 10}, 600},
		{Config{FPS: 30, Duration: 0.5}, 15},
		{Config{FPS: 24, Duration: 0}, 0},
	}
	for _, tc := range cases {
		if got := tc.cfg.TotalFrames(); got != tc.want {
			t.Errorf("%+v: %d frames, want %d", tc.cfg, got, tc.want)
		}
	}
}

func TestFFmpegArgs(t *testing.T) {
	in := inputArgs(Config{Width: 640, Height: 480, FPS: 60})
	if in["s"] != "640x480" || in["pix_fmt"] != "rgba" || in["f"] != "rawvideo" || in["r"] != 60 {
		t.Errorf("input args %v", in)
	}

	out := outputArgs("h264", "out.mp4")
	if out["c:v"] != "libx264" || out["vf"] != "vflip" {
		t.Errorf("h264 args %v", out)
	}
	if _, ok := out["tag:v"]; ok {
		t.Error("h264 tagged as hvc1")
	}

	out = outputArgs("hevc", "out.mp4")
	if out["c:v"] != "libx265" || out["tag:v"] != "hvc1" {
		t.Errorf("hevc args %v", out)
	}
	if out = outputArgs("hevc", "out.mkv"); out["tag:v"] != nil {
		t.Errorf("hevc mkv tagged: %v", out)
	}
}
