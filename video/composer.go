package video

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"reelbot/config"
	"reelbot/encoder"
	"reelbot/material"
)

// ComposeInput describes one final render
type ComposeInput struct {
	Clips        []material.Clip
	AudioPath    string
	BGMPath      string
	SubtitlePath string // .ass file, optional
	OutputPath   string
	Width        int
	Height       int
	Duration     float64 // target video length in seconds
	ClipDuration float64 // seconds taken from each background clip
}

// Renderer produces the final video file for a compose input
type Renderer interface {
	Render(ctx context.Context, in ComposeInput) error
}

// Composer renders videos with ffmpeg, encoding with whatever the
// selector picked for this machine.
type Composer struct {
	selector *encoder.Selector
}

// NewComposer wires a composer to an encoder selector
func NewComposer(selector *encoder.Selector) *Composer {
	if selector == nil {
		selector = encoder.NewSelector(nil)
	}
	return &Composer{selector: selector}
}

// Render crops and scales the background clips to the target frame,
// concatenates them, burns in subtitles and muxes the narration
// (plus optional background music) into OutputPath.
func (c *Composer) Render(ctx context.Context, in ComposeInput) error {
	if len(in.Clips) == 0 {
		return fmt.Errorf("no background clips to compose")
	}
	if in.Width == 0 || in.Height == 0 {
		in.Width, in.Height = 1080, 1920
	}
	if in.ClipDuration <= 0 {
		in.ClipDuration = config.DefaultClipSecs
	}

	duration := clampDuration(in.Duration)
	clips := planClips(in.Clips, in.ClipDuration, duration)

	choice := c.selector.Select()
	threads := c.selector.ThreadCount()
	log.Printf("🎥 Rendering with %s (%s), %d threads", choice.Codec, choice.Tier, threads)

	segments := make([]*ffmpeg.Stream, len(clips))
	for i, clip := range clips {
		seg := ffmpeg.Input(clip.Path, ffmpeg.KwArgs{"t": fmt.Sprintf("%.2f", clip.Duration)})
		// Center-crop to the target aspect, then scale to size
		segments[i] = seg.
			Filter("crop", ffmpeg.Args{fmt.Sprintf("ih*%d/%d:ih", in.Width, in.Height)}).
			Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d", in.Width, in.Height)}).
			Filter("fps", ffmpeg.Args{fmt.Sprint(config.VideoFrameRate)}).
			Filter("setsar", ffmpeg.Args{"1"})
	}

	videoStream := segments[0]
	if len(segments) > 1 {
		videoStream = ffmpeg.Concat(segments, ffmpeg.KwArgs{"v": 1, "a": 0})
	}

	if in.SubtitlePath != "" {
		videoStream = videoStream.Filter("ass", ffmpeg.Args{escapeFilterPath(in.SubtitlePath)})
	}

	audioStream := ffmpeg.Input(in.AudioPath).Audio()
	if in.BGMPath != "" {
		bgm := ffmpeg.Input(in.BGMPath, ffmpeg.KwArgs{"stream_loop": "-1"}).
			Audio().
			Filter("volume", ffmpeg.Args{"0.2"})
		audioStream = ffmpeg.Filter(
			[]*ffmpeg.Stream{audioStream, bgm},
			"amix",
			ffmpeg.Args{},
			ffmpeg.KwArgs{"inputs": 2, "duration": "first"},
		)
	}

	outArgs := outputArgs(choice, threads, duration)
	err := ffmpeg.Output([]*ffmpeg.Stream{videoStream, audioStream}, in.OutputPath, outArgs).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg render failed: %w", err)
	}
	return nil
}

// outputArgs merges the encoder choice's flag pairs into the output
// keyword arguments.
func outputArgs(choice encoder.Choice, threads int, duration float64) ffmpeg.KwArgs {
	args := ffmpeg.KwArgs{
		"c:v":      choice.Codec,
		"c:a":      config.AudioCodec,
		"b:a":      config.AudioBitrate,
		"threads":  threads,
		"t":        fmt.Sprintf("%.2f", duration),
		"shortest": "",
	}
	for k, v := range encoderKwArgs(choice) {
		args[k] = v
	}
	return args
}

// encoderKwArgs converts the ordered "-flag value" pairs of a Choice
// into ffmpeg-go keyword arguments.
func encoderKwArgs(choice encoder.Choice) ffmpeg.KwArgs {
	args := ffmpeg.KwArgs{}
	extra := choice.ExtraArgs
	for i := 0; i+1 < len(extra); i += 2 {
		key := strings.TrimPrefix(extra[i], "-")
		args[key] = extra[i+1]
	}
	return args
}

// clampDuration enforces the maximum video length
func clampDuration(d float64) float64 {
	if d <= 0 || d > config.MaxVideoDuration {
		return config.MaxVideoDuration
	}
	return d
}

// planClips trims each clip to the per-clip length and loops the list
// until the target duration is covered.
func planClips(clips []material.Clip, clipSecs, target float64) []material.Clip {
	var plan []material.Clip
	covered := 0.0
	for i := 0; covered < target; i++ {
		src := clips[i%len(clips)]
		take := clipSecs
		if src.Duration > 0 && src.Duration < take {
			take = src.Duration
		}
		if remaining := target - covered; take > remaining {
			take = remaining
		}
		plan = append(plan, material.Clip{Path: src.Path, Duration: take})
		covered += take
	}
	return plan
}

// escapeFilterPath rewrites a filesystem path for use inside an
// ffmpeg filter argument (forward slashes, escaped colons).
func escapeFilterPath(p string) string {
	s := filepath.ToSlash(p)
	return strings.ReplaceAll(s, ":", "\\:")
}
