package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"reelbot/task"
)

// Client is a thin HTTP client for the generation API
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new generation API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// CreateTask submits a generation request and returns the task ID
func (c *Client) CreateTask(params task.Params) (string, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Post(c.baseURL+"/api/v1/tasks", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("server returned %d: %s", resp.StatusCode, string(data))
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return created.ID, nil
}

// GetTask fetches the current status of a task
func (c *Client) GetTask(id string) (*task.Status, error) {
	resp, err := c.client.Get(c.baseURL + "/api/v1/tasks/" + id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(data))
	}

	var st task.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &st, nil
}

// EncoderReport describes the server's selected video encoder
type EncoderReport struct {
	Codec    string `json:"codec"`
	Tier     string `json:"tier"`
	Hardware bool   `json:"hardware"`
	Threads  int    `json:"threads"`
}

// GetEncoder fetches the server's encoder report
func (c *Client) GetEncoder() (*EncoderReport, error) {
	resp, err := c.client.Get(c.baseURL + "/api/v1/encoder")
	if err != nil {
		return nil, fmt.Errorf("failed to get encoder report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(data))
	}

	var report EncoderReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &report, nil
}
