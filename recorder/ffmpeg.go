package recorder

import (
	"fmt"
	"io"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// FFmpegEncoder pipes raw RGBA frames into an ffmpeg process.
type FFmpegEncoder struct {
	pipeWriter *io.PipeWriter
	errc       chan error
}

func inputArgs(cfg Config) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"r":       cfg.FPS,
	}
}

func outputArgs(codec, outputFile string) ffmpeg.KwArgs {
	// GL rows start at the bottom.
	args := ffmpeg.KwArgs{
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}
	if codec == "hevc" {
		args["c:v"] = "libx265"
		if strings.HasSuffix(outputFile, ".mp4") {
			args["tag:v"] = "hvc1"
		}
	} else {
		args["c:v"] = "libx264"
	}
	return args
}

// NewFFmpegEncoder starts ffmpeg writing outputFile. ffmpegPath may be empty
// to use the ffmpeg on PATH.
func NewFFmpegEncoder(cfg Config, outputFile, ffmpegPath, codec string) *FFmpegEncoder {
	pipeReader, pipeWriter := io.Pipe()

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs(cfg)).
		Output(outputFile, outputArgs(codec, outputFile)).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if ffmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(ffmpegPath)
	}

	e := &FFmpegEncoder{
		pipeWriter: pipeWriter,
		errc:       make(chan error, 1),
	}
	go func() {
		err := ffmpegCmd.Run()
		// unblock writers if ffmpeg exits early
		pipeReader.CloseWithError(fmt.Errorf("ffmpeg exited: %v", err))
		e.errc <- err
	}()
	return e
}

func (e *FFmpegEncoder) WriteFrame(f *Frame) error {
	if _, err := e.pipeWriter.Write(f.Pixels); err != nil {
		return fmt.Errorf("failed to write frame to ffmpeg: %w", err)
	}
	return nil
}

// Close ends the input stream and waits for ffmpeg to exit.
func (e *FFmpegEncoder) Close() error {
	e.pipeWriter.Close()
	if err := <-e.errc; err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}
