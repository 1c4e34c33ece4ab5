package subtitle

import (
	"fmt"
	"os"

	"reelbot/config"
)

// ASSOptions controls the rendered subtitle style
type ASSOptions struct {
	Theme    string // key into ColorThemes
	Font     string
	FontSize int
	Width    int // play resolution, defaults to 1080x1920
	Height   int
	MaxWords int
}

func (o *ASSOptions) defaults() {
	if o.Font == "" {
		o.Font = "Arial"
	}
	if o.FontSize == 0 {
		o.FontSize = config.SubtitleFontSize
	}
	if o.Width == 0 || o.Height == 0 {
		o.Width, o.Height = 1080, 1920
	}
	if o.MaxWords == 0 {
		o.MaxWords = config.SubtitleMaxWordsLine
	}
}

// WriteASS renders word-timed subtitles as an ASS file with the
// currently narrated word highlighted in the theme's reading color.
func WriteASS(words []Word, opts ASSOptions, outputPath string) error {
	opts.defaults()
	theme := Theme(opts.Theme)

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create ASS file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "[Script Info]")
	fmt.Fprintln(file, "Title: reelbot narration")
	fmt.Fprintln(file, "ScriptType: v4.00+")
	fmt.Fprintf(file, "PlayResX: %d\n", opts.Width)
	fmt.Fprintf(file, "PlayResY: %d\n", opts.Height)
	fmt.Fprintln(file, "")
	fmt.Fprintln(file, "[V4+ Styles]")
	fmt.Fprintln(file, "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding")

	// Subtitles sit 40% up from the bottom edge
	marginV := opts.Height * 2 / 5
	fmt.Fprintf(file, "Style: Default,%s,%d,%s,%s,%s,&H00000000,-1,0,0,0,100,100,0,0,1,3,0,2,40,40,%d,1\n",
		opts.Font, opts.FontSize, assColor(theme.Unread.Color), assColor(theme.Unread.Color), assColor(theme.Unread.Stroke), marginV)
	fmt.Fprintf(file, "Style: Highlight,%s,%d,%s,%s,%s,&H00000000,-1,0,0,0,100,100,0,0,1,3,0,2,40,40,%d,1\n",
		opts.Font, opts.FontSize, assColor(theme.Reading.Color), assColor(theme.Reading.Color), assColor(theme.Reading.Stroke), marginV)

	fmt.Fprintln(file, "")
	fmt.Fprintln(file, "[Events]")
	fmt.Fprintln(file, "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text")

	reading := assColor(theme.Reading.Color)
	read := assColor(theme.Read.Color)
	unread := assColor(theme.Unread.Color)

	for _, line := range GroupLines(words, opts.MaxWords) {
		for idx := range line.Words {
			// One event per word: everything before it in the read
			// color, the word itself highlighted, the rest unread.
			text := ""
			for i, w := range line.Words {
				if i > 0 {
					text += " "
				}
				switch {
				case i < idx:
					text += fmt.Sprintf("{\\c%s&}%s", read, w.Text)
				case i == idx:
					text += fmt.Sprintf("{\\c%s&}%s", reading, w.Text)
				default:
					text += fmt.Sprintf("{\\c%s&}%s", unread, w.Text)
				}
			}

			start := line.Words[idx].Start
			end := line.Words[idx].End
			if idx < len(line.Words)-1 {
				end = line.Words[idx+1].Start
			}

			fmt.Fprintf(file, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
				formatASSTime(start), formatASSTime(end), text)
		}
	}

	return nil
}
