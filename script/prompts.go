package script

import "fmt"

func scriptPrompt(subject, sourceText string, paragraphs int) string {
	base := fmt.Sprintf(`You are writing the voiceover script for a short narrated video.

Subject: %s

Rules:
- Return ONLY the raw narration text, no markdown, no headings, no stage directions.
- Do not mention the subject line verbatim at the start.
- Write %d short paragraph(s), conversational and direct.
- Never wrap the script in quotes.`, subject, paragraphs)

	if sourceText != "" {
		base += fmt.Sprintf("\n\nBase the narration on this source material:\n%s", truncate(sourceText, 6000))
	}
	return base
}

func termsPrompt(subject, script string, count int) string {
	return fmt.Sprintf(`Generate %d search terms for finding stock background footage for a video.

Subject: %s

Script:
%s

Rules:
- Respond with a JSON array of strings and nothing else, e.g. ["term one", "term two"].
- 1-3 words per term, always in English.
- Every term must relate to the subject.`, count, subject, truncate(script, 3000))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
