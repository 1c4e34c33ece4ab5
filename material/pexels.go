package material

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const pexelsEndpoint = "https://api.pexels.com/videos/search"

// Pexels searches the Pexels video API
// Docs: https://www.pexels.com/api/documentation/#videos-search
type Pexels struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewPexels creates a Pexels provider with the given API key
func NewPexels(apiKey string) *Pexels {
	return &Pexels{
		apiKey:     apiKey,
		endpoint:   pexelsEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewPexelsFromEnv returns a provider when PEXELS_API_KEY is set
func NewPexelsFromEnv() *Pexels {
	key := strings.TrimSpace(os.Getenv("PEXELS_API_KEY"))
	if key == "" {
		return nil
	}
	return NewPexels(key)
}

func (p *Pexels) Name() string { return "pexels" }

type pexelsResponse struct {
	Videos []struct {
		Duration   float64 `json:"duration"`
		VideoFiles []struct {
			Width   int    `json:"width"`
			Height  int    `json:"height"`
			Link    string `json:"link"`
			Quality string `json:"quality"`
		} `json:"video_files"`
	} `json:"videos"`
}

// Search queries Pexels and returns playable file URLs matching the
// requested orientation.
func (p *Pexels) Search(ctx context.Context, term string, opts SearchOptions) ([]Remote, error) {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	targetW, targetH := opts.Aspect.Resolution()

	q := url.Values{}
	q.Set("query", term)
	q.Set("per_page", fmt.Sprint(perPage))
	q.Set("orientation", orientation(targetW, targetH))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pexels request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pexels request failed: status %d", resp.StatusCode)
	}

	var body pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("pexels response decode failed: %w", err)
	}

	var out []Remote
	for _, v := range body.Videos {
		best := ""
		bestDiff := 1 << 30
		for _, f := range v.VideoFiles {
			if f.Link == "" {
				continue
			}
			diff := abs(f.Width-targetW) + abs(f.Height-targetH)
			if diff < bestDiff {
				bestDiff = diff
				best = f.Link
			}
		}
		if best != "" {
			out = append(out, Remote{URL: best, Duration: v.Duration})
		}
	}
	return out, nil
}

func orientation(w, h int) string {
	switch {
	case h > w:
		return "portrait"
	case w > h:
		return "landscape"
	default:
		return "square"
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
