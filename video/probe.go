package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const probeTimeout = 10 * time.Second

// ProbeDuration returns a media file's duration in seconds using
// ffprobe.
func ProbeDuration(ctx context.Context, path string) (float64, error) {
	bin := os.Getenv("FFPROBE_PATH")
	if bin == "" {
		var err error
		bin, err = exec.LookPath("ffprobe")
		if err != nil {
			return 0, fmt.Errorf("ffprobe not found in PATH: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, bin,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	d, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe returned unparseable duration %q: %w", out, err)
	}
	return d, nil
}
