package options

import "fmt"

// Options holds the command-line settings; cmd/main.go fills the pointers from flags.
type Options struct {
	ConfigFile *string
	Help       *bool
	Mode       *string // "window" or "record"
	Headless   *bool   // record through an EGL pbuffer instead of a hidden GLFW window
	Width      *int
	Height     *int
	VSync      *bool
	Translate  *bool // translate GLSL ES 3.00 shaders to desktop GLSL before compiling
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
	Codec      *string
}

// Validate rejects flag combinations that cannot run.
func (o *Options) Validate() error {
	switch *o.Mode {
	case "window", "record":
	default:
		return fmt.Errorf("unknown mode %q (want window or record)", *o.Mode)
	}
	if *o.Headless && *o.Mode != "record" {
		return fmt.Errorf("-headless only applies to -mode record")
	}
	if *o.Mode == "record" && *o.Codec != "h264" && *o.Codec != "hevc" {
		return fmt.Errorf("unknown codec %q (want h264 or hevc)", *o.Codec)
	}
	return nil
}
