package config

import (
	"os"
	"strings"
	"time"
)

// Aspect is the output frame shape
type Aspect string

const (
	AspectPortrait      Aspect = "9:16"
	AspectLandscape     Aspect = "16:9"
	AspectSquare        Aspect = "1:1"
	AspectPortrait720p  Aspect = "9:16-720p"
	AspectLandscape720p Aspect = "16:9-720p"
)

// Resolution returns the pixel dimensions for the aspect.
// Unknown values fall back to vertical 1080x1920.
func (a Aspect) Resolution() (width, height int) {
	switch a {
	case AspectLandscape:
		return 1920, 1080
	case AspectPortrait:
		return 1080, 1920
	case AspectSquare:
		return 1080, 1080
	case AspectPortrait720p:
		return 720, 1280
	case AspectLandscape720p:
		return 1280, 720
	}
	return 1080, 1920
}

const (
	// Audio configuration
	AudioCodec   = "aac"
	AudioBitrate = "192k"

	// Video configuration
	MaxVideoDuration = 180.0 // 3 minutes max
	VideoEndPadding  = 0.5   // padding after the last subtitle
	DefaultClipSecs  = 5.0   // seconds of each background clip
	VideoFrameRate   = 30

	// Directory paths
	BackgroundsDir = "backgrounds"
	OutputDir      = "output"
	InputDir       = "input"
	WorkDir        = "work"

	// Processing configuration
	MaxConcurrentVideos = 3
	VideoBatchDelay     = 2 * time.Second

	// Subtitle configuration
	SubtitleFontSize     = 64
	SubtitleMaxWordsLine = 8

	// Title generation
	MaxTitleWords  = 10
	MaxTitleLength = 100
)

// Getenv returns the environment value or the fallback when unset/blank
func Getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
