package source

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Article is one candidate story pulled from a feed
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	FetchedAt   time.Time `json:"fetched_at"`
	Summary     string    `json:"summary,omitempty"`
	Author      string    `json:"author,omitempty"`
	Categories  []string  `json:"categories,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`

	// Populated by content extraction
	Text            string `json:"text,omitempty"`
	Excerpt         string `json:"excerpt,omitempty"`
	ExtractionError string `json:"extraction_error,omitempty"`
}

// GenerateID creates a short, stable ID by hashing the provided string input
func GenerateID(input string) string {
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}
