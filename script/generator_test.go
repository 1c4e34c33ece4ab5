package script

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeProvider struct {
	reply string
	err   error
	seen  string
}

func (f *fakeProvider) Complete(_ context.Context, prompt string) (string, error) {
	f.seen = prompt
	return f.reply, f.err
}

func (f *fakeProvider) ModelName() string { return "fake" }

func TestScriptCleansModelOutput(t *testing.T) {
	p := &fakeProvider{reply: "**Intro**\n\n[opening shot]\n\"Money moves the world.\"\nIt always has."}
	g := NewGenerator(p)

	got, err := g.Script(context.Background(), "the role of money", "", 2)
	if err != nil {
		t.Fatalf("Script error: %v", err)
	}
	if strings.Contains(got, "*") || strings.Contains(got, "[") {
		t.Errorf("script still contains markup: %q", got)
	}
	if !strings.Contains(got, "It always has.") {
		t.Errorf("script lost narration text: %q", got)
	}
	if !strings.Contains(p.seen, "the role of money") {
		t.Errorf("prompt missing subject: %q", p.seen)
	}
}

func TestScriptIncludesSourceMaterial(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	g := NewGenerator(p)

	if _, err := g.Script(context.Background(), "subject", "article body text", 1); err != nil {
		t.Fatalf("Script error: %v", err)
	}
	if !strings.Contains(p.seen, "article body text") {
		t.Errorf("prompt missing source material")
	}
}

func TestScriptPropagatesProviderError(t *testing.T) {
	g := NewGenerator(&fakeProvider{err: errors.New("rate limited")})
	if _, err := g.Script(context.Background(), "s", "", 1); err == nil {
		t.Fatal("expected error from failing provider")
	}
}

func TestTerms(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  []string
	}{
		{"plain json", `["city skyline", "stock market", "cash"]`, []string{"city skyline", "stock market", "cash"}},
		{"fenced json", "```json\n[\"ocean waves\", \"sunset\"]\n```", []string{"ocean waves", "sunset"}},
		{"json with prose", "Here you go: [\"a\", \"b\"] hope that helps", []string{"a", "b"}},
		{"numbered list fallback", "1. city lights\n2. traffic\n3. skyline", []string{"city lights", "traffic", "skyline"}},
		{"comma fallback", "rain, thunder, storm clouds", []string{"rain", "thunder", "storm clouds"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := NewGenerator(&fakeProvider{reply: c.reply})
			got, err := g.Terms(context.Background(), "weather", "script", 5)
			if err != nil {
				t.Fatalf("Terms error: %v", err)
			}
			if len(got) != len(c.want) {
				t.Fatalf("Terms = %v; want %v", got, c.want)
			}
			for i := range c.want {
				if got[i] != c.want[i] {
					t.Fatalf("Terms = %v; want %v", got, c.want)
				}
			}
		})
	}
}

func TestTermsRespectsCount(t *testing.T) {
	g := NewGenerator(&fakeProvider{reply: `["a","b","c","d","e","f","g"]`})
	got, err := g.Terms(context.Background(), "s", "sc", 3)
	if err != nil {
		t.Fatalf("Terms error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Terms returned %d terms; want 3", len(got))
	}
}

func TestNewGeneratorFromEnvUnconfigured(t *testing.T) {
	t.Setenv("COHERE_API_KEY", "")
	if g := NewGeneratorFromEnv(); g != nil {
		t.Fatal("expected nil generator without COHERE_API_KEY")
	}
}
