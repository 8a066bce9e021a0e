// Package recorder renders the animation offscreen and streams the frames to
// an encoder.
package recorder

import (
	"fmt"
	"log"
	"os"

	"github.com/richinsley/glshapes/animation"
	"github.com/richinsley/glshapes/graphics"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// numBuffers is how many frames may wait for the encoder.
const numBuffers = 3

// Frame represents a single rendered frame's RGBA pixels, bottom row first.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Encoder consumes frames in order. Close flushes and reports the final error.
type Encoder interface {
	WriteFrame(f *Frame) error
	Close() error
}

// FrameRenderer draws one frame for a state; renderer.RenderContext implements it.
type FrameRenderer interface {
	RenderFrame(s animation.State)
}

// Progress receives one Add per encoded frame. *progressbar.ProgressBar implements it.
type Progress interface {
	Add(n int) error
	Finish() error
}

// Config is the recording size and length.
type Config struct {
	Width    int
	Height   int
	FPS      int
	Duration float64 // seconds
}

// TotalFrames is the number of ticks rendered.
func (c Config) TotalFrames() int {
	return int(c.Duration * float64(c.FPS))
}

// Recorder renders one animation tick per output frame.
type Recorder struct {
	dev    graphics.Device
	scene  FrameRenderer
	driver *animation.Driver
	cfg    Config

	// Progress defaults to a terminal progress bar, or periodic log lines
	// when stderr is not a terminal.
	Progress Progress
}

func New(dev graphics.Device, scene FrameRenderer, driver *animation.Driver, cfg Config) *Recorder {
	return &Recorder{
		dev:    dev,
		scene:  scene,
		driver: driver,
		cfg:    cfg,
	}
}

func (r *Recorder) progress(total int) Progress {
	if r.Progress != nil {
		return r.Progress
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return progressbar.Default(int64(total), "recording")
	}
	return &logProgress{total: total, every: max(r.cfg.FPS, 1)}
}

// runEncoder is the consumer. It drains frames until the channel is closed
// or the encoder fails.
func runEncoder(enc Encoder, frames <-chan *Frame, done chan<- error) {
	for f := range frames {
		if err := enc.WriteFrame(f); err != nil {
			enc.Close()
			done <- fmt.Errorf("failed to encode frame %d: %w", f.PTS, err)
			return
		}
	}
	done <- enc.Close()
}

// Run is the producer. It renders TotalFrames ticks into an offscreen target
// and hands each frame to enc, which it closes before returning.
func (r *Recorder) Run(enc Encoder) error {
	if r.cfg.Width <= 0 || r.cfg.Height <= 0 || r.cfg.FPS <= 0 {
		return fmt.Errorf("invalid recording config %+v", r.cfg)
	}
	target, err := r.dev.CreateRenderTarget(r.cfg.Width, r.cfg.Height)
	if err != nil {
		return fmt.Errorf("failed to create render target: %w", err)
	}
	defer r.dev.DeleteRenderTarget(target)

	r.dev.BindRenderTarget(target)
	defer r.dev.BindRenderTarget(0)
	r.dev.Viewport(0, 0, r.cfg.Width, r.cfg.Height)

	frameChan := make(chan *Frame, numBuffers)
	encoderDoneChan := make(chan error, 1)
	go runEncoder(enc, frameChan, encoderDoneChan)

	total := r.cfg.TotalFrames()
	bar := r.progress(total)
	log.Printf("Recording %d frames at %dx%d, %d fps", total, r.cfg.Width, r.cfg.Height, r.cfg.FPS)

	for i := 0; i < total; i++ {
		r.scene.RenderFrame(r.driver.State())
		frame := &Frame{
			Pixels: r.dev.ReadPixels(r.cfg.Width, r.cfg.Height),
			PTS:    int64(i),
		}
		r.driver.Advance()

		select {
		case frameChan <- frame:
		case err := <-encoderDoneChan:
			bar.Finish()
			return err
		}
		bar.Add(1)
	}

	close(frameChan)
	err = <-encoderDoneChan
	bar.Finish()
	return err
}

// logProgress reports once per second of output.
type logProgress struct {
	total int
	done  int
	every int
}

func (p *logProgress) Add(n int) error {
	p.done += n
	if p.done%p.every == 0 || p.done == p.total {
		log.Printf("Recorded %d/%d frames", p.done, p.total)
	}
	return nil
}

func (p *logProgress) Finish() error {
	return nil
}
