package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Feed</title>
    <item>
      <title>First Story</title>
      <link>https://example.com/first</link>
      <guid>feed-guid-1</guid>
      <description>Summary of the first story.</description>
      <pubDate>Mon, 24 Aug 2026 09:00:00 GMT</pubDate>
      <category>science</category>
    </item>
    <item>
      <title>Second Story</title>
      <link>https://example.com/second</link>
      <description>Summary of the second story.</description>
    </item>
    <item>
      <title>Third Story</title>
      <link>https://example.com/third</link>
    </item>
  </channel>
</rss>`

func TestFetchFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	articles, err := FetchFeed(context.Background(), srv.URL, 2)
	if err != nil {
		t.Fatalf("FetchFeed() error = %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2 (maxCount)", len(articles))
	}

	first := articles[0]
	if first.ID != "feed-guid-1" {
		t.Errorf("first ID = %q, want feed GUID", first.ID)
	}
	if first.Title != "First Story" || first.URL != "https://example.com/first" {
		t.Errorf("first article = %+v", first)
	}
	if first.Summary != "Summary of the first story." {
		t.Errorf("first summary = %q", first.Summary)
	}
	if first.PublishedAt.IsZero() {
		t.Errorf("first PublishedAt not parsed")
	}
	if len(first.Categories) != 1 || first.Categories[0] != "science" {
		t.Errorf("first categories = %v", first.Categories)
	}

	// No GUID: ID derived from the link
	second := articles[1]
	if second.ID != GenerateID("https://example.com/second") {
		t.Errorf("second ID = %q, want hash of link", second.ID)
	}
	if second.FetchedAt.IsZero() {
		t.Errorf("FetchedAt not set")
	}
}

func TestFetchFeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := FetchFeed(context.Background(), srv.URL, 5); err == nil {
		t.Fatal("FetchFeed() succeeded against a broken feed")
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID("https://example.com/article")
	if len(id) != 16 {
		t.Errorf("ID length = %d, want 16", len(id))
	}
	if id != GenerateID("https://example.com/article") {
		t.Errorf("ID not stable")
	}
	if id == GenerateID("https://example.com/other") {
		t.Errorf("distinct inputs produced the same ID")
	}
	if strings.ToLower(id) != id {
		t.Errorf("ID not lowercase hex: %q", id)
	}
}

func TestResolveFeed(t *testing.T) {
	if got := ResolveFeed("hn"); got != FeedPresets["hn"].URL {
		t.Errorf("ResolveFeed(hn) = %q", got)
	}
	if got := ResolveFeed("https://example.com/feed.xml"); got != "https://example.com/feed.xml" {
		t.Errorf("ResolveFeed(url) = %q", got)
	}
}
