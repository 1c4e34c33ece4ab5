package subtitle

import (
	"fmt"
	"os"
)

// WriteSRT renders the word timings as a plain SRT file, one entry
// per display line.
func WriteSRT(words []Word, maxWords int, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create SRT file: %w", err)
	}
	defer file.Close()

	for i, line := range GroupLines(words, maxWords) {
		fmt.Fprintf(file, "%d\n", i+1)
		fmt.Fprintf(file, "%s --> %s\n", formatSRTTime(line.Start), formatSRTTime(line.End))
		fmt.Fprintf(file, "%s\n\n", line.Text())
	}

	return nil
}
