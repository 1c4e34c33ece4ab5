package subtitle

import (
	"fmt"
	"strings"

	"reelbot/config"
)

// Word is a single narrated word with its timing in seconds
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Line is a group of words shown together on screen
type Line struct {
	Words []Word
	Start float64
	End   float64
}

// GroupLines batches words into display lines, breaking on sentence
// punctuation or when maxWords is reached. Periods inside numbers
// ("4.5") do not end a sentence.
func GroupLines(words []Word, maxWords int) []Line {
	if maxWords <= 0 {
		maxWords = config.SubtitleMaxWordsLine
	}

	var lines []Line
	current := Line{}

	for i, w := range words {
		if len(current.Words) == 0 {
			current.Start = w.Start
		}
		current.Words = append(current.Words, w)
		current.End = w.End

		if endsSentence(w.Text) || len(current.Words) >= maxWords || i == len(words)-1 {
			lines = append(lines, current)
			current = Line{}
		}
	}

	return lines
}

func endsSentence(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	if strings.HasSuffix(t, "!") || strings.HasSuffix(t, "?") {
		return true
	}
	if !strings.HasSuffix(t, ".") {
		return false
	}
	// "4.5" style decimals keep the line going
	if len(t) >= 3 {
		prev, prev2 := t[len(t)-2], t[len(t)-3]
		if prev >= '0' && prev <= '9' && prev2 >= '0' && prev2 <= '9' {
			return false
		}
	}
	return true
}

// Text returns the line's words joined with spaces
func (l Line) Text() string {
	parts := make([]string, len(l.Words))
	for i, w := range l.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// formatASSTime converts seconds to the ASS timestamp form h:mm:ss.cc
func formatASSTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(seconds / 3600)
	minutes := int(seconds/60) % 60
	secs := int(seconds) % 60
	centis := int((seconds - float64(int(seconds))) * 100)
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}

// formatSRTTime converts seconds to the SRT timestamp form hh:mm:ss,mmm
func formatSRTTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := int(seconds / 3600)
	minutes := int(seconds/60) % 60
	secs := int(seconds) % 60
	millis := int((seconds - float64(int(seconds))) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
