package material

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// BackgroundStyle is one entry in the curated backgrounds manifest
type BackgroundStyle struct {
	Name        string
	Description string
	File        string // relative to the backgrounds dir
}

// BackgroundStyles maps style keys to per-orientation assets
var BackgroundStyles = map[string]struct {
	Portrait  BackgroundStyle
	Landscape BackgroundStyle
}{
	"ancient_paper_1": {
		Portrait:  BackgroundStyle{"Ancient Paper 1", "cream paper texture for classic literature", "portrait/ancient_paper_1.mp4"},
		Landscape: BackgroundStyle{"Ancient Paper 1", "cream paper texture for classic literature", "landscape/ancient_paper_1.mp4"},
	},
	"ancient_paper_2": {
		Portrait:  BackgroundStyle{"Ancient Paper 2", "light brown paper texture for history stories", "portrait/ancient_paper_2.mp4"},
		Landscape: BackgroundStyle{"Ancient Paper 2", "light brown paper texture for history stories", "landscape/ancient_paper_2.mp4"},
	},
	"bamboo_scroll_1": {
		Portrait:  BackgroundStyle{"Bamboo Scroll 1", "bamboo slip texture, rustic and elegant", "portrait/bamboo_scroll_1.mp4"},
		Landscape: BackgroundStyle{"Bamboo Scroll 1", "bamboo slip texture, rustic and elegant", "landscape/bamboo_scroll_1.mp4"},
	},
	"bamboo_scroll_2": {
		Portrait:  BackgroundStyle{"Bamboo Scroll 2", "dark bamboo texture for poetry", "portrait/bamboo_scroll_2.mp4"},
		Landscape: BackgroundStyle{"Bamboo Scroll 2", "dark bamboo texture for poetry", "landscape/bamboo_scroll_2.mp4"},
	},
	"ink_wash": {
		Portrait:  BackgroundStyle{"Ink Wash", "ink wash landscape, contemplative mood", "portrait/ink_wash.mp4"},
		Landscape: BackgroundStyle{"Ink Wash", "ink wash landscape, contemplative mood", "landscape/ink_wash.mp4"},
	},
}

// BackgroundPath resolves a style key to an existing asset under dir.
// Unknown keys and missing files are errors so callers can fall back
// to a random local clip.
func BackgroundPath(dir, key string, portrait bool) (string, error) {
	entry, ok := BackgroundStyles[key]
	if !ok {
		return "", fmt.Errorf("unknown background style %q", key)
	}

	style := entry.Landscape
	if portrait {
		style = entry.Portrait
	}

	path := filepath.Join(dir, style.File)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("background asset missing: %s", path)
	}
	return path, nil
}

// BackgroundKeys lists the manifest keys in stable order
func BackgroundKeys() []string {
	keys := make([]string, 0, len(BackgroundStyles))
	for k := range BackgroundStyles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
