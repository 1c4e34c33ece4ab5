package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"reelbot/task"
)

// State represents the application state machine
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateRunning    State = "running"
	StateComplete   State = "complete"
	StateError      State = "error"
)

// Model represents the TUI client state (thin client)
type Model struct {
	Client *Client
	Params task.Params

	State   State
	TaskID  string
	Status  *task.Status
	Encoder *EncoderReport
	Logs    []string
	Err     error

	// Connection status
	Connected bool
}

// NewModel creates a new TUI model
func NewModel(serverURL string, params task.Params) Model {
	return Model{
		Client: NewClient(serverURL),
		Params: params,
		State:  StateIdle,
		Logs:   make([]string, 0),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchEncoder(m.Client),
		tickCmd(),
	)
}

// AddLog appends a timestamped line to the activity log
func (m Model) AddLog(message string) Model {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), message)
	m.Logs = append(m.Logs, line)
	if len(m.Logs) > 8 {
		m.Logs = m.Logs[len(m.Logs)-8:]
	}
	return m
}

// getStateText returns the appropriate state message
func (m Model) getStateText() string {
	if !m.Connected {
		return ErrorStyle.Render("❌ Not connected to server")
	}

	switch m.State {
	case StateIdle:
		return HighlightStyle.Render("👋 Ready to generate!") + "\n\n" +
			InfoStyle.Render(fmt.Sprintf("Subject: %q — press 's' to start", m.Params.Subject))
	case StateSubmitting:
		return StatusStyle.Render("📤 Submitting request...")
	case StateRunning:
		progress := 0
		stage := "starting"
		if m.Status != nil {
			progress = m.Status.Progress
			stage = stageName(progress)
		}
		return StatusStyle.Render(fmt.Sprintf("⏳ %s [%d%%] %s", stage, progress, progressBar(progress)))
	case StateComplete:
		return HighlightStyle.Render("✅ COMPLETE")
	case StateError:
		errMsg := "Unknown error"
		if m.Err != nil {
			errMsg = m.Err.Error()
		}
		return ErrorStyle.Render(fmt.Sprintf("❌ Error: %v", errMsg))
	default:
		return ""
	}
}

// stageName maps pipeline progress checkpoints to a label
func stageName(progress int) string {
	switch {
	case progress < 10:
		return "Writing script"
	case progress < 20:
		return "Picking search terms"
	case progress < 30:
		return "Synthesizing narration"
	case progress < 40:
		return "Building subtitles"
	case progress < 50:
		return "Gathering footage"
	case progress < 100:
		return "Rendering video"
	default:
		return "Done"
	}
}

func progressBar(progress int) string {
	const width = 20
	filled := progress * width / 100
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}
