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

const pixabayEndpoint = "https://pixabay.com/api/videos/"

// Pixabay searches the Pixabay video API
// Docs: https://pixabay.com/api/docs/#api_search_videos
type Pixabay struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewPixabay creates a Pixabay provider with the given API key
func NewPixabay(apiKey string) *Pixabay {
	return &Pixabay{
		apiKey:     apiKey,
		endpoint:   pixabayEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewPixabayFromEnv returns a provider when PIXABAY_API_KEY is set
func NewPixabayFromEnv() *Pixabay {
	key := strings.TrimSpace(os.Getenv("PIXABAY_API_KEY"))
	if key == "" {
		return nil
	}
	return NewPixabay(key)
}

func (p *Pixabay) Name() string { return "pixabay" }

type pixabayResponse struct {
	Hits []struct {
		Duration float64 `json:"duration"`
		Videos   struct {
			Large  struct{ URL string `json:"url"` } `json:"large"`
			Medium struct{ URL string `json:"url"` } `json:"medium"`
		} `json:"videos"`
	} `json:"hits"`
}

// Search queries Pixabay, preferring the large rendition
func (p *Pixabay) Search(ctx context.Context, term string, opts SearchOptions) ([]Remote, error) {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = 20
	}

	q := url.Values{}
	q.Set("key", p.apiKey)
	q.Set("q", term)
	q.Set("per_page", fmt.Sprint(perPage))
	q.Set("video_type", "film")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pixabay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pixabay request failed: status %d", resp.StatusCode)
	}

	var body pixabayResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("pixabay response decode failed: %w", err)
	}

	var out []Remote
	for _, h := range body.Hits {
		link := h.Videos.Large.URL
		if link == "" {
			link = h.Videos.Medium.URL
		}
		if link != "" {
			out = append(out, Remote{URL: link, Duration: h.Duration})
		}
	}
	return out, nil
}
