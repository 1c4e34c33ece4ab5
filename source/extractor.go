package source

import (
	"fmt"
	"log"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	WorkerCount      = 5
	extractorTimeout = 30 * time.Second
)

// ExtractAll fetches and extracts full content for all articles using a worker pool
func ExtractAll(articles []*Article) {
	var wg sync.WaitGroup
	articleChan := make(chan *Article, len(articles))

	for i := 0; i < WorkerCount; i++ {
		go func(workerID int) {
			for article := range articleChan {
				if err := Extract(article); err != nil {
					article.ExtractionError = err.Error()
					log.Printf("[Worker %d] Failed to extract %s: %v", workerID, article.URL, err)
				}
				wg.Done()
			}
		}(i)
	}

	for _, article := range articles {
		wg.Add(1)
		articleChan <- article
	}

	wg.Wait()
	close(articleChan)
}

// Extract fetches and extracts full content for a single article
func Extract(article *Article) error {
	if article.URL == "" {
		return fmt.Errorf("article URL is empty")
	}

	extracted, err := readability.FromURL(article.URL, extractorTimeout)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}

	article.Text = extracted.TextContent
	article.Excerpt = extracted.Excerpt

	if article.ImageURL == "" {
		article.ImageURL = extracted.Image
	}
	if article.Author == "" {
		article.Author = extracted.Byline
	}

	log.Printf("✓ Extracted: %s", article.Title)
	return nil
}

// ExtractURL pulls readable text from an arbitrary article URL
func ExtractURL(url string) (*Article, error) {
	extracted, err := readability.FromURL(url, extractorTimeout)
	if err != nil {
		return nil, fmt.Errorf("readability extraction failed: %w", err)
	}

	return &Article{
		ID:        GenerateID(url),
		Title:     extracted.Title,
		URL:       url,
		FetchedAt: time.Now(),
		Text:      extracted.TextContent,
		Excerpt:   extracted.Excerpt,
		ImageURL:  extracted.Image,
		Author:    extracted.Byline,
	}, nil
}
