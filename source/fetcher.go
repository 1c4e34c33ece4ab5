package source

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// FetchFeed retrieves and parses an RSS/Atom feed, returning article metadata
func FetchFeed(ctx context.Context, feedURL string, maxCount int) ([]*Article, error) {
	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := min(len(feed.Items), maxCount)
	articles := make([]*Article, 0, count)

	for i := 0; i < count; i++ {
		item := feed.Items[i]

		// Use GUID if available, otherwise generate from URL
		id := item.GUID
		if id == "" && item.Link != "" {
			id = GenerateID(item.Link)
		}

		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		}

		author := ""
		if item.Author != nil {
			author = item.Author.Name
		}

		categories := make([]string, len(item.Categories))
		copy(categories, item.Categories)

		summary := item.Description
		if summary == "" {
			summary = item.Content
		}

		article := &Article{
			ID:          id,
			Title:       item.Title,
			URL:         item.Link,
			PublishedAt: publishedAt,
			FetchedAt:   time.Now(),
			Summary:     summary,
			Author:      author,
			Categories:  categories,
		}

		if item.Image != nil {
			article.ImageURL = item.Image.URL
		}

		articles = append(articles, article)
	}

	return articles, nil
}
