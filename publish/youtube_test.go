package publish

import (
	"strings"
	"testing"
	"unicode/utf8"

	"reelbot/config"
)

func TestBuildMetadata(t *testing.T) {
	t.Run("subject becomes the title", func(t *testing.T) {
		meta := BuildMetadata("Why Bees Dance", "A long script.", "")
		if meta.Title != "Why Bees Dance" {
			t.Errorf("title = %q", meta.Title)
		}
		if !strings.Contains(meta.Description, "#shorts") {
			t.Errorf("description missing #shorts: %q", meta.Description)
		}
	})

	t.Run("title falls back to the script opening", func(t *testing.T) {
		script := "one two three four five six seven eight nine ten eleven twelve"
		meta := BuildMetadata("", script, "")
		want := strings.Join(strings.Fields(script)[:config.MaxTitleWords], " ")
		if meta.Title != want {
			t.Errorf("title = %q, want %q", meta.Title, want)
		}
	})

	t.Run("long multibyte title truncates on runes", func(t *testing.T) {
		subject := strings.Repeat("日", config.MaxTitleLength+20)
		meta := BuildMetadata(subject, "", "")
		if !utf8.ValidString(meta.Title) {
			t.Fatalf("truncated title is not valid UTF-8: %q", meta.Title)
		}
		if got := len([]rune(meta.Title)); got != config.MaxTitleLength {
			t.Errorf("title rune length = %d, want %d", got, config.MaxTitleLength)
		}
		if !strings.HasSuffix(meta.Title, "...") {
			t.Errorf("truncated title missing ellipsis: %q", meta.Title)
		}
	})

	t.Run("source link lands in the description", func(t *testing.T) {
		meta := BuildMetadata("Tides", "", "https://example.com/tides")
		if !strings.Contains(meta.Description, "https://example.com/tides") {
			t.Errorf("description missing source link: %q", meta.Description)
		}
	})
}
