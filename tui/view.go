package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	// Title
	b.WriteString(TitleStyle.Render("🎬 ReelBot Video Generator"))
	b.WriteString("\n\n")

	// Current state
	b.WriteString(m.getStateText())
	b.WriteString("\n\n")

	// Encoder info
	if m.Encoder != nil {
		hw := "software"
		if m.Encoder.Hardware {
			hw = "hardware"
		}
		info := fmt.Sprintf("🎞️ Encoder: %s (%s, %d threads)", m.Encoder.Codec, hw, m.Encoder.Threads)
		b.WriteString(InfoStyle.Render(info))
		b.WriteString("\n\n")
	}

	// Logs
	if len(m.Logs) > 0 {
		b.WriteString(InfoStyle.Render("📝 Recent Activity:"))
		b.WriteString("\n")
		for _, line := range m.Logs {
			b.WriteString(InfoStyle.Render("   " + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Results
	if m.State == StateComplete && m.Status != nil {
		b.WriteString(BoxStyle.Render(m.formatResult()))
		b.WriteString("\n\n")
	}

	// Help text
	if m.State == StateIdle {
		b.WriteString(InfoStyle.Render("Press 's' to start | Press 'q' or Ctrl+C to quit"))
	} else if m.State != StateComplete {
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
	} else {
		b.WriteString(HighlightStyle.Render("Press 'q' or Ctrl+C to exit"))
	}

	return b.String()
}

// formatResult formats the finished task for display
func (m Model) formatResult() string {
	st := m.Status
	var b strings.Builder

	b.WriteString(HighlightStyle.Render("Generation Result"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Task: %s\n", st.ID))
	b.WriteString(fmt.Sprintf("Video: %s\n", StatusStyle.Render(st.Artifacts.VideoFile)))

	if st.Artifacts.Script != "" {
		preview := st.Artifacts.Script
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		b.WriteString(fmt.Sprintf("\nScript Preview:\n%s\n", InfoStyle.Render(preview)))
	}

	if st.Artifacts.AudioSecs > 0 {
		b.WriteString(fmt.Sprintf("\nNarration: %.1fs\n", st.Artifacts.AudioSecs))
	}
	if len(st.Artifacts.Materials) > 0 {
		b.WriteString(fmt.Sprintf("Clips used: %d\n", len(st.Artifacts.Materials)))
	}
	if st.Artifacts.UploadedURL != "" {
		b.WriteString(fmt.Sprintf("Uploaded: %s\n", st.Artifacts.UploadedURL))
	}
	if st.Artifacts.YouTubeID != "" {
		b.WriteString(fmt.Sprintf("YouTube: https://youtube.com/shorts/%s\n", st.Artifacts.YouTubeID))
	}

	return b.String()
}
