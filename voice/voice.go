package voice

import (
	"context"
	"strings"
	"unicode/utf8"

	"reelbot/subtitle"
)

// Synthesizer turns narration text into an audio file on disk
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, outputPath string) error
}

// Options selects the voice and speaking rate
type Options struct {
	Voice string  // provider voice name, e.g. "en-US-JennyNeural"
	Rate  float64 // 1.0 = normal speed
}

// DefaultVoice is used when a request names no voice
const DefaultVoice = "en-US-JennyNeural"

// EstimateWordTimings distributes the measured audio duration across
// the script's words, weighted by rune length plus a fixed per-word
// cost so short words still get screen time.
func EstimateWordTimings(text string, duration float64) []subtitle.Word {
	fields := strings.Fields(text)
	if len(fields) == 0 || duration <= 0 {
		return nil
	}

	const baseWeight = 2.0
	weights := make([]float64, len(fields))
	total := 0.0
	for i, w := range fields {
		weights[i] = baseWeight + float64(utf8.RuneCountInString(w))
		total += weights[i]
	}

	words := make([]subtitle.Word, len(fields))
	cursor := 0.0
	for i, w := range fields {
		span := duration * weights[i] / total
		words[i] = subtitle.Word{
			Text:  w,
			Start: cursor,
			End:   cursor + span,
		}
		cursor += span
	}
	// Pin the last word to the exact audio end
	words[len(words)-1].End = duration
	return words
}
