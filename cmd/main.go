package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/richinsley/glshapes/animation"
	"github.com/richinsley/glshapes/gldevice"
	"github.com/richinsley/glshapes/glfwcontext"
	"github.com/richinsley/glshapes/graphics"
	"github.com/richinsley/glshapes/headless"
	options "github.com/richinsley/glshapes/options"
	renderer "github.com/richinsley/glshapes/renderer"
	"github.com/richinsley/glshapes/recorder"
	"github.com/richinsley/glshapes/shader"
	"github.com/richinsley/glshapes/translator"
)

func init() {
	runtime.LockOSThread()
}

func run(opts *options.Options, scene options.Scene) error {
	record := *opts.Mode == "record"

	var ctx graphics.Context
	if record && *opts.Headless {
		h, err := headless.NewHeadless(*opts.Width, *opts.Height)
		if err != nil {
			return err
		}
		ctx = h
	} else {
		if err := glfwcontext.InitGraphics(); err != nil {
			return err
		}
		defer glfwcontext.TerminateGraphics()

		w, err := glfwcontext.New(opts, !record)
		if err != nil {
			return err
		}
		ctx = w
	}
	defer ctx.Shutdown()

	dev, err := gldevice.New()
	if err != nil {
		return err
	}
	log.Printf("OpenGL %s", dev.Version())

	var tr shader.Translator
	if *opts.Translate {
		t, err := translator.New(context.Background())
		if err != nil {
			return err
		}
		tr = t
	}

	width, height := *opts.Width, *opts.Height
	if !record {
		width, height = ctx.GetFramebufferSize()
	}
	rc, err := renderer.LoadScene(dev, tr, scene, width, height)
	if err != nil {
		return err
	}

	driver := animation.NewDriver(animation.Steps{
		Angle:  scene.Animation.AngleStep,
		Offset: scene.Animation.OffsetStep,
		Bound:  scene.Animation.OffsetBound,
	})

	if record {
		cfg := recorder.Config{
			Width:    *opts.Width,
			Height:   *opts.Height,
			FPS:      *opts.FPS,
			Duration: *opts.Duration,
		}
		enc := recorder.NewFFmpegEncoder(cfg, *opts.OutputFile, *opts.FFMPEGPath, *opts.Codec)
		if err := recorder.New(dev, rc, driver, cfg).Run(enc); err != nil {
			return fmt.Errorf("recording failed: %w", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return nil
	}

	log.Println("Starting interactive render loop...")
	renderer.NewRenderer(ctx, rc, driver).Run()
	return nil
}

func main() {
	opts := &options.Options{
		ConfigFile: flag.String("config", "", "YAML scene file"),
		Help:       flag.Bool("help", false, "Show help message"),
		Mode:       flag.String("mode", "window", "Run mode: window or record"),
		Headless:   flag.Bool("headless", false, "Record with an EGL pbuffer context (Linux only, requires -mode record)"),
		Width:      flag.Int("width", 640, "Width of the window or recording"),
		Height:     flag.Int("height", 640, "Height of the window or recording"),
		VSync:      flag.Bool("vsync", true, "Wait for the display refresh between frames"),
		Translate:  flag.Bool("translate", false, "Translate GLSL ES 3.00 shaders to desktop GLSL before compiling"),
		Duration:   flag.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        flag.Int("fps", 60, "Frames per second for recording"),
		OutputFile: flag.String("output", "output.mp4", "Output file name for recording"),
		FFMPEGPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		Codec:      flag.String("codec", "h264", "Recording codec: h264 or hevc"),
	}
	flag.Parse()

	if *opts.Help {
		fmt.Println("glshapes: animated square and fan")
		flag.PrintDefaults()
		return
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	scene := options.DefaultScene()
	if *opts.ConfigFile != "" {
		var err error
		scene, err = options.LoadScene(*opts.ConfigFile)
		if err != nil {
			log.Fatalf("Error loading scene: %v", err)
		}
	}

	if err := run(opts, scene); err != nil {
		var ce *shader.CompileError
		var le *shader.LinkError
		switch {
		case errors.Is(err, graphics.ErrContextUnavailable):
			log.Fatalf("Your system does not provide an OpenGL 4.1 context: %v", err)
		case errors.As(err, &ce):
			log.Fatalf("Shader compilation failed (%s stage):\n%s", ce.Stage, ce.Log)
		case errors.As(err, &le):
			log.Fatalf("Shader program failed to link:\n%s", le.Log)
		default:
			log.Fatalf("Failed: %v", err)
		}
	}
}
