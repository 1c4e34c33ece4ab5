package material

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"path/filepath"

	"reelbot/config"
)

// Clip is a downloaded background clip ready for composition
type Clip struct {
	Path     string  `json:"path"`
	Duration float64 `json:"duration"`
}

// Remote is a provider search hit before download
type Remote struct {
	URL      string
	Duration float64
}

// SearchOptions filters provider results
type SearchOptions struct {
	Aspect      config.Aspect
	MinDuration float64 // seconds; hits shorter than this are skipped
	PerPage     int
}

// Provider searches a stock-footage catalog
type Provider interface {
	Name() string
	Search(ctx context.Context, term string, opts SearchOptions) ([]Remote, error)
}

// Gather downloads clips for the given terms until their combined
// duration covers needSeconds. Providers are tried in order per term;
// a provider error moves on to the next rather than failing the task.
func Gather(ctx context.Context, providers []Provider, terms []string, needSeconds float64, opts SearchOptions, saveDir string) ([]Clip, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("no material providers configured")
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("no search terms provided")
	}

	var clips []Clip
	covered := 0.0
	seen := map[string]bool{}

	for covered < needSeconds {
		progressed := false
		for _, term := range terms {
			if covered >= needSeconds {
				break
			}
			remote, ok := searchAny(ctx, providers, term, opts, seen)
			if !ok {
				continue
			}

			path, err := Download(ctx, remote.URL, saveDir)
			if err != nil {
				log.Printf("⚠️ download failed for %q: %v", term, err)
				continue
			}

			clips = append(clips, Clip{Path: path, Duration: remote.Duration})
			covered += remote.Duration
			progressed = true
		}
		if !progressed {
			break
		}
	}

	if len(clips) == 0 {
		return nil, fmt.Errorf("no background footage found for terms %v", terms)
	}
	if covered < needSeconds {
		log.Printf("⚠️ footage covers %.1fs of %.1fs needed; clips will loop", covered, needSeconds)
	}
	return clips, nil
}

func searchAny(ctx context.Context, providers []Provider, term string, opts SearchOptions, seen map[string]bool) (Remote, bool) {
	for _, p := range providers {
		hits, err := p.Search(ctx, term, opts)
		if err != nil {
			log.Printf("⚠️ %s search failed for %q: %v", p.Name(), term, err)
			continue
		}
		for _, h := range hits {
			if h.URL == "" || seen[h.URL] {
				continue
			}
			if opts.MinDuration > 0 && h.Duration < opts.MinDuration {
				continue
			}
			seen[h.URL] = true
			return h, true
		}
	}
	return Remote{}, false
}

// LocalClips lists the mp4 files in a backgrounds directory
func LocalClips(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.mp4"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no background videos found in %s", dir)
	}
	return files, nil
}

// PickLocal returns one random background from the directory
func PickLocal(dir string) (string, error) {
	files, err := LocalClips(dir)
	if err != nil {
		return "", err
	}
	return files[rand.Intn(len(files))], nil
}
