package voice

import (
	"context"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEstimateWordTimings(t *testing.T) {
	words := EstimateWordTimings("short and considerably longer words", 10.0)
	if len(words) != 5 {
		t.Fatalf("got %d words; want 5", len(words))
	}

	if words[0].Start != 0 {
		t.Errorf("first word starts at %v; want 0", words[0].Start)
	}
	if got := words[len(words)-1].End; math.Abs(got-10.0) > 1e-9 {
		t.Errorf("last word ends at %v; want 10.0", got)
	}

	// Contiguous, monotonically increasing spans
	for i := 1; i < len(words); i++ {
		if math.Abs(words[i].Start-words[i-1].End) > 1e-9 {
			t.Errorf("word %d starts at %v but previous ends at %v", i, words[i].Start, words[i-1].End)
		}
	}

	// "considerably" should get more time than "and"
	var andSpan, longSpan float64
	for _, w := range words {
		switch w.Text {
		case "and":
			andSpan = w.End - w.Start
		case "considerably":
			longSpan = w.End - w.Start
		}
	}
	if longSpan <= andSpan {
		t.Errorf("long word span %v not greater than short word span %v", longSpan, andSpan)
	}
}

func TestEstimateWordTimingsEmpty(t *testing.T) {
	if got := EstimateWordTimings("", 5); got != nil {
		t.Fatalf("empty text produced %v; want nil", got)
	}
	if got := EstimateWordTimings("hello", 0); got != nil {
		t.Fatalf("zero duration produced %v; want nil", got)
	}
}

func TestAzureSynthesize(t *testing.T) {
	var gotSSML string
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotSSML = string(body)
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	tts := NewAzureTTS("secret", "eastus", Options{Voice: "en-US-JennyNeural", Rate: 1.2})
	// Point the request at the test server instead of Azure
	tts.httpClient = srv.Client()
	tts.httpClient.Transport = rewriteTransport{base: srv.Client().Transport, target: srv.URL}

	out := filepath.Join(t.TempDir(), "audio.mp3")
	if err := tts.Synthesize(context.Background(), "Hello <world> & friends", out); err != nil {
		t.Fatalf("Synthesize error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading audio output: %v", err)
	}
	if string(data) != "mp3-bytes" {
		t.Errorf("audio file content = %q", data)
	}
	if gotKey != "secret" {
		t.Errorf("subscription key header = %q", gotKey)
	}
	if !strings.Contains(gotSSML, "en-US-JennyNeural") {
		t.Errorf("SSML missing voice name: %q", gotSSML)
	}
	if !strings.Contains(gotSSML, "+20%") {
		t.Errorf("SSML missing prosody rate: %q", gotSSML)
	}
	if strings.Contains(gotSSML, "<world>") {
		t.Errorf("SSML not escaped: %q", gotSSML)
	}
}

func TestAzureSynthesizeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad voice", http.StatusBadRequest)
	}))
	defer srv.Close()

	tts := NewAzureTTS("secret", "eastus", Options{})
	tts.httpClient = srv.Client()
	tts.httpClient.Transport = rewriteTransport{base: srv.Client().Transport, target: srv.URL}

	out := filepath.Join(t.TempDir(), "audio.mp3")
	if err := tts.Synthesize(context.Background(), "hi", out); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestNewAzureTTSFromEnvUnconfigured(t *testing.T) {
	t.Setenv("AZURE_SPEECH_KEY", "")
	t.Setenv("AZURE_SPEECH_REGION", "")
	if tts := NewAzureTTSFromEnv(Options{}); tts != nil {
		t.Fatal("expected nil synthesizer without Azure credentials")
	}
}

// rewriteTransport redirects every request to the test server
type rewriteTransport struct {
	base   http.RoundTripper
	target string
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	u := strings.TrimPrefix(rt.target, "http://")
	req.URL.Scheme = "http"
	req.URL.Host = u
	base := rt.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
