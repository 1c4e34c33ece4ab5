package tui

import (
	"time"

	"reelbot/task"
)

// Messages for the tea program (polling-based)

// TaskCreatedMsg is sent after submitting a generation request
type TaskCreatedMsg struct {
	ID  string
	Err error
}

// StatusUpdateMsg is sent when we receive task status from the server
type StatusUpdateMsg struct {
	Status *task.Status
	Err    error
}

// EncoderMsg carries the server's encoder report
type EncoderMsg struct {
	Report *EncoderReport
	Err    error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}
