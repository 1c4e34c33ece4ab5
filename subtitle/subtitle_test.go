package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func words(texts ...string) []Word {
	out := make([]Word, len(texts))
	for i, t := range texts {
		out[i] = Word{Text: t, Start: float64(i), End: float64(i) + 0.8}
	}
	return out
}

func TestGroupLines(t *testing.T) {
	cases := []struct {
		name      string
		words     []Word
		maxWords  int
		wantLines []string
	}{
		{
			"splits on period",
			words("Hello", "world.", "Next", "line"),
			8,
			[]string{"Hello world.", "Next line"},
		},
		{
			"splits on question and exclamation",
			words("Really?", "Yes!", "Done"),
			8,
			[]string{"Really?", "Yes!", "Done"},
		},
		{
			"decimal number does not split",
			words("Version", "4.5", "shipped", "today."),
			8,
			[]string{"Version 4.5 shipped today."},
		},
		{
			"max words forces split",
			words("a", "b", "c", "d", "e"),
			2,
			[]string{"a b", "c d", "e"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lines := GroupLines(c.words, c.maxWords)
			if len(lines) != len(c.wantLines) {
				t.Fatalf("GroupLines returned %d lines; want %d", len(lines), len(c.wantLines))
			}
			for i, want := range c.wantLines {
				if got := lines[i].Text(); got != want {
					t.Errorf("line %d = %q; want %q", i, got, want)
				}
			}
		})
	}
}

func TestGroupLinesTiming(t *testing.T) {
	w := []Word{
		{Text: "one", Start: 0.0, End: 0.4},
		{Text: "two.", Start: 0.5, End: 1.1},
		{Text: "three", Start: 1.2, End: 1.9},
	}
	lines := GroupLines(w, 8)
	if len(lines) != 2 {
		t.Fatalf("got %d lines; want 2", len(lines))
	}
	if lines[0].Start != 0.0 || lines[0].End != 1.1 {
		t.Errorf("first line span = [%v, %v]; want [0, 1.1]", lines[0].Start, lines[0].End)
	}
	if lines[1].Start != 1.2 {
		t.Errorf("second line start = %v; want 1.2", lines[1].Start)
	}
}

func TestFormatTimes(t *testing.T) {
	if got := formatASSTime(3725.42); got != "1:02:05.41" && got != "1:02:05.42" {
		t.Errorf("formatASSTime(3725.42) = %q", got)
	}
	if got := formatASSTime(0); got != "0:00:00.00" {
		t.Errorf("formatASSTime(0) = %q; want 0:00:00.00", got)
	}
	if got := formatSRTTime(61.5); got != "00:01:01,500" {
		t.Errorf("formatSRTTime(61.5) = %q; want 00:01:01,500", got)
	}
}

func TestASSColor(t *testing.T) {
	cases := []struct{ hex, want string }{
		{"#FFD700", "&H0000D7FF"},
		{"#000000", "&H00000000"},
		{"#1E3A8A", "&H008A3A1E"},
		{"bogus", "&H00FFFFFF"},
	}
	for _, c := range cases {
		if got := assColor(c.hex); got != c.want {
			t.Errorf("assColor(%q) = %q; want %q", c.hex, got, c.want)
		}
	}
}

func TestWriteASS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subs.ass")

	w := words("Hello", "world.")
	if err := WriteASS(w, ASSOptions{Theme: "elegant_blue"}, path); err != nil {
		t.Fatalf("WriteASS error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading ASS output: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"[Script Info]",
		"PlayResX: 1080",
		"PlayResY: 1920",
		"Style: Default",
		"Style: Highlight",
		"[Events]",
		"Dialogue: 0,",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ASS output missing %q", want)
		}
	}

	// One event per word
	if got := strings.Count(out, "Dialogue:"); got != len(w) {
		t.Errorf("ASS output has %d dialogue events; want %d", got, len(w))
	}

	// Elegant blue reading color must appear as a highlight override
	if !strings.Contains(out, assColor("#60A5FA")) {
		t.Errorf("ASS output missing theme reading color")
	}
}

func TestWriteSRT(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subs.srt")

	if err := WriteSRT(words("Hello", "world."), 8, path); err != nil {
		t.Fatalf("WriteSRT error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading SRT output: %v", err)
	}
	out := string(data)

	if !strings.HasPrefix(out, "1\n") {
		t.Errorf("SRT output does not start with an index: %q", out)
	}
	if !strings.Contains(out, "-->") {
		t.Errorf("SRT output missing timing arrow")
	}
	if !strings.Contains(out, "Hello world.") {
		t.Errorf("SRT output missing line text")
	}
}
