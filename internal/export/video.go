package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"
)

// ErrEncoderMissing indicates that no ffmpeg binary is available. The
// export aborts; anything already shown interactively is unaffected.
var ErrEncoderMissing = errors.New("export: ffmpeg not found in PATH")

// VideoOptions fixes the MP4 encoding parameters.
type VideoOptions struct {
	FPS         int
	BitrateKbps int
	Width       int
	Height      int
}

// encoderArgs builds the ffmpeg invocation for a PNG stream on stdin.
// Missing rate and bitrate fall back to the canonical 5 fps / 3000 kbps.
func encoderArgs(path string, opt VideoOptions) []string {
	if opt.FPS <= 0 {
		opt.FPS = 5
	}
	if opt.BitrateKbps <= 0 {
		opt.BitrateKbps = 3000
	}

	args := []string{
		"-y",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-framerate", strconv.Itoa(opt.FPS),
		"-i", "-",
		"-b:v", fmt.Sprintf("%dk", opt.BitrateKbps),
		"-pix_fmt", "yuv420p",
	}
	if opt.Width > 0 && opt.Height > 0 {
		args = append(args, "-s", fmt.Sprintf("%dx%d", opt.Width, opt.Height))
	}
	return append(args, path)
}

// EncodeMP4 pipes the frames into ffmpeg as PNGs and writes an H.264 MP4
// at the configured rate and bitrate.
func EncodeMP4(ctx context.Context, path string, frames []*image.Paletted, opt VideoOptions) error {
	if len(frames) == 0 {
		return fmt.Errorf("export: no frames to encode")
	}

	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncoderMissing, err)
	}

	cmd := exec.CommandContext(ctx, ffmpeg, encoderArgs(path, opt)...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("export: starting ffmpeg: %w", err)
	}

	var encodeErr error
	for _, frame := range frames {
		if encodeErr = png.Encode(stdin, frame); encodeErr != nil {
			break
		}
	}
	stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("export: ffmpeg failed: %w", err)
	}
	return encodeErr
}
