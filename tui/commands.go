package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"reelbot/task"
)

// submitTask creates a command that posts a generation request
func submitTask(client *Client, params task.Params) tea.Cmd {
	return func() tea.Msg {
		id, err := client.CreateTask(params)
		return TaskCreatedMsg{ID: id, Err: err}
	}
}

// pollStatus creates a command to poll task status
func pollStatus(client *Client, id string) tea.Cmd {
	return func() tea.Msg {
		status, err := client.GetTask(id)
		return StatusUpdateMsg{
			Status: status,
			Err:    err,
		}
	}
}

// fetchEncoder creates a command to fetch the server's encoder report
func fetchEncoder(client *Client) tea.Cmd {
	return func() tea.Msg {
		report, err := client.GetEncoder()
		return EncoderMsg{Report: report, Err: err}
	}
}

// tickCmd creates a command that ticks every 500ms for polling
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
