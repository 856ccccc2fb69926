package stt

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// Transcoder decodes a compressed audio file into an uncompressed WAV file.
type Transcoder interface {
	ToWAV(ctx context.Context, src, dst string) error
}

// FFmpeg shells out to the ffmpeg binary for decoding. Output is mono
// 16-bit PCM at the configured sample rate, which is what the speech
// backend expects.
type FFmpeg struct {
	Path       string // ffmpeg binary, default "ffmpeg"
	SampleRate int
}

func (f FFmpeg) ToWAV(ctx context.Context, src, dst string) error {
	bin := f.Path
	if bin == "" {
		bin = "ffmpeg"
	}
	rate := f.SampleRate
	if rate <= 0 {
		rate = 16000
	}

	cmd := exec.CommandContext(ctx, bin,
		"-i", src,
		"-y",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(rate),
		"-ac", "1",
		dst,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w (output: %s)", err, out)
	}
	return nil
}
