package task

import (
	"time"

	"reelbot/config"
)

// Task states
const (
	StatePending    = "pending"
	StateProcessing = "processing"
	StateComplete   = "complete"
	StateFailed     = "failed"
)

// Stages usable with Params.StopAt
const (
	StopAtScript    = "script"
	StopAtTerms     = "terms"
	StopAtAudio     = "audio"
	StopAtSubtitle  = "subtitle"
	StopAtMaterials = "materials"
	StopAtVideo     = "video"
)

// Video sources
const (
	SourceStock = "stock"
	SourceLocal = "local"
)

// Params describes one generation request
type Params struct {
	Subject    string `json:"subject"`
	Script     string `json:"script,omitempty"`      // pre-written narration, skips LLM
	ArticleURL string `json:"article_url,omitempty"` // extracted and used as source material
	SourceText string `json:"source_text,omitempty"`

	Aspect     config.Aspect `json:"aspect,omitempty"`
	Theme      string        `json:"theme,omitempty"` // subtitle color theme key
	Voice      string        `json:"voice,omitempty"`
	VoiceRate  float64       `json:"voice_rate,omitempty"`
	Source     string        `json:"source,omitempty"`     // stock or local
	Background string        `json:"background,omitempty"` // curated background style key
	Terms      []string      `json:"terms,omitempty"`  // overrides LLM search terms
	BGM        string        `json:"bgm,omitempty"`    // path to background music
	Paragraphs int           `json:"paragraphs,omitempty"`

	ClipDuration float64 `json:"clip_duration,omitempty"`
	StopAt       string  `json:"stop_at,omitempty"`
}

// Artifacts are the files and IDs a task produced so far
type Artifacts struct {
	Script       string   `json:"script,omitempty"`
	Terms        []string `json:"terms,omitempty"`
	AudioFile    string   `json:"audio_file,omitempty"`
	AudioSecs    float64  `json:"audio_duration,omitempty"`
	SubtitleFile string   `json:"subtitle_file,omitempty"`
	SRTFile      string   `json:"srt_file,omitempty"`
	Materials    []string `json:"materials,omitempty"`
	VideoFile    string   `json:"video_file,omitempty"`
	UploadedURL  string   `json:"uploaded_url,omitempty"`
	YouTubeID    string   `json:"youtube_id,omitempty"`
}

// Status is the stored view of a task
type Status struct {
	ID        string    `json:"id"`
	State     string    `json:"state"`
	Progress  int       `json:"progress"`
	Error     string    `json:"error,omitempty"`
	Params    Params    `json:"params"`
	Artifacts Artifacts `json:"artifacts"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
