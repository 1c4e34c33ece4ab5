package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"reelbot/task"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TickMsg:
		return m.handleTick()
	case TaskCreatedMsg:
		return m.handleTaskCreated(msg)
	case StatusUpdateMsg:
		return m.handleStatusUpdate(msg)
	case EncoderMsg:
		return m.handleEncoder(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "s", "S":
		if m.State == StateIdle {
			m.State = StateSubmitting
			m = m.AddLog("Submitting generation request...")
			return m, submitTask(m.Client, m.Params)
		}
	}
	return m, nil
}

// handleTick polls the running task and keeps the clock going
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd()}
	if m.State == StateRunning && m.TaskID != "" {
		cmds = append(cmds, pollStatus(m.Client, m.TaskID))
	}
	if m.Encoder == nil {
		cmds = append(cmds, fetchEncoder(m.Client))
	}
	return m, tea.Batch(cmds...)
}

// handleTaskCreated processes the submission response
func (m Model) handleTaskCreated(msg TaskCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.State = StateError
		m.Err = msg.Err
		return m, nil
	}
	m.TaskID = msg.ID
	m.State = StateRunning
	m = m.AddLog("Task accepted: " + msg.ID)
	return m, pollStatus(m.Client, m.TaskID)
}

// handleStatusUpdate processes polled task status
func (m Model) handleStatusUpdate(msg StatusUpdateMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// Transient poll failures keep the current view
		m.Connected = false
		return m, nil
	}
	m.Connected = true

	prev := 0
	if m.Status != nil {
		prev = m.Status.Progress
	}
	m.Status = msg.Status

	if msg.Status.Progress != prev {
		m = m.AddLog(stageName(msg.Status.Progress))
	}

	switch msg.Status.State {
	case task.StateComplete:
		m.State = StateComplete
		m = m.AddLog("Video ready: " + msg.Status.Artifacts.VideoFile)
	case task.StateFailed:
		m.State = StateError
		m.Err = errString(msg.Status.Error)
	}
	return m, nil
}

// handleEncoder records the server's encoder report
func (m Model) handleEncoder(msg EncoderMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Connected = false
		return m, nil
	}
	m.Connected = true
	m.Encoder = msg.Report
	return m, nil
}

type errString string

func (e errString) Error() string { return string(e) }
