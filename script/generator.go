package script

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

const (
	defaultModel   = "command-r-08-2024"
	requestTimeout = 60 * time.Second
)

// ChatProvider abstracts the LLM behind a single completion call so
// tests can substitute a canned implementation.
type ChatProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	ModelName() string
}

// Generator writes narration scripts and stock-footage search terms
type Generator struct {
	provider ChatProvider
}

// NewGenerator wraps a chat provider
func NewGenerator(provider ChatProvider) *Generator {
	return &Generator{provider: provider}
}

// NewGeneratorFromEnv returns a Cohere-backed generator when
// COHERE_API_KEY is set, otherwise nil (callers fall back to using the
// subject text directly).
func NewGeneratorFromEnv() *Generator {
	key := os.Getenv("COHERE_API_KEY")
	if key == "" {
		return nil
	}

	model := os.Getenv("COHERE_CHAT_MODEL")
	if model == "" {
		model = defaultModel
	}

	// Force HTTP/1.1 to avoid HTTP/2 protocol errors against the API
	httpClient := &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(key),
		cohereclient.WithHTTPClient(httpClient),
	)
	return NewGenerator(&cohereChat{client: client, model: model})
}

// cohereChat implements ChatProvider using the Cohere Chat API
// Docs: https://docs.cohere.com/reference/chat
type cohereChat struct {
	client *cohereclient.Client
	model  string
}

func (c *cohereChat) ModelName() string { return c.model }

func (c *cohereChat) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   &c.model,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return "", errors.New("cohere chat returned empty response")
	}
	return resp.Text, nil
}

// Script writes a plain-prose narration script for the subject.
// When sourceText is non-empty (e.g. an extracted article) it grounds
// the script; paragraphs bounds the length.
func (g *Generator) Script(ctx context.Context, subject, sourceText string, paragraphs int) (string, error) {
	if paragraphs <= 0 {
		paragraphs = 1
	}

	prompt := scriptPrompt(subject, sourceText, paragraphs)
	raw, err := g.provider.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("script generation failed: %w", err)
	}

	script := CleanScript(raw)
	if script == "" {
		return "", errors.New("script generation produced no usable text")
	}
	return script, nil
}

// Terms asks the LLM for stock-footage search terms as a JSON array
func (g *Generator) Terms(ctx context.Context, subject, script string, count int) ([]string, error) {
	if count <= 0 {
		count = 5
	}

	raw, err := g.provider.Complete(ctx, termsPrompt(subject, script, count))
	if err != nil {
		return nil, fmt.Errorf("term generation failed: %w", err)
	}

	terms := ParseTerms(raw)
	if len(terms) == 0 {
		return nil, errors.New("term generation produced no terms")
	}
	if len(terms) > count {
		terms = terms[:count]
	}
	return terms, nil
}

// CleanScript strips markdown markers, surrounding quotes and stage
// directions the model tends to add around the narration text.
func CleanScript(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "#", "")
	s = strings.Trim(s, "\"'")

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Drop "[opening shot]" style directions
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// ParseTerms extracts search terms from a model reply. JSON arrays are
// preferred; otherwise the reply is split on newlines and commas.
func ParseTerms(raw string) []string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "["); start >= 0 {
		if end := strings.LastIndex(s, "]"); end > start {
			var arr []string
			if err := json.Unmarshal([]byte(s[start:end+1]), &arr); err == nil {
				return normalizeTerms(arr)
			}
		}
	}

	var fields []string
	for _, line := range strings.Split(s, "\n") {
		fields = append(fields, strings.Split(line, ",")...)
	}
	return normalizeTerms(fields)
}

func normalizeTerms(raw []string) []string {
	var out []string
	for _, t := range raw {
		t = strings.Trim(strings.TrimSpace(t), "\"'-• ")
		// Strip "1. " style list numbering
		if i := strings.Index(t, ". "); i >= 0 && i <= 2 {
			t = strings.TrimSpace(t[i+2:])
		}
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
