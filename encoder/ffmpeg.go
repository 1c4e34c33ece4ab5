package encoder

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// FFmpegCapabilities queries the installed ffmpeg binary for its
// supported encoder list.
type FFmpegCapabilities struct {
	// Path overrides binary lookup. Empty means resolve from
	// FFMPEG_PATH or the system PATH.
	Path string
}

// NewFFmpegCapabilities returns the production capability source
func NewFFmpegCapabilities() *FFmpegCapabilities {
	return &FFmpegCapabilities{}
}

// FindFFmpeg resolves the ffmpeg binary: FFMPEG_PATH first, then PATH.
func FindFFmpeg() (string, error) {
	if p := os.Getenv("FFMPEG_PATH"); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrToolNotFound, err)
	}
	return path, nil
}

// ListEncoders runs `ffmpeg -hide_banner -encoders` and returns the
// raw report. The caller's context bounds the subprocess.
func (f *FFmpegCapabilities) ListEncoders(ctx context.Context) (string, error) {
	path := f.Path
	if path == "" {
		var err error
		path, err = FindFFmpeg()
		if err != nil {
			return "", err
		}
	}

	out, err := exec.CommandContext(ctx, path, "-hide_banner", "-encoders").Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("encoder listing timed out: %w", ctx.Err())
		}
		return "", fmt.Errorf("encoder listing failed: %w", err)
	}
	return string(out), nil
}
