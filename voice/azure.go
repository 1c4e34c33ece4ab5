package voice

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const azureRequestTimeout = 60 * time.Second

// AzureTTS synthesizes speech through the Azure Cognitive Services
// text-to-speech REST endpoint.
// Docs: https://learn.microsoft.com/azure/ai-services/speech-service/rest-text-to-speech
type AzureTTS struct {
	key        string
	region     string
	opts       Options
	httpClient *http.Client
}

// NewAzureTTS creates a synthesizer for the given subscription
func NewAzureTTS(key, region string, opts Options) *AzureTTS {
	if opts.Voice == "" {
		opts.Voice = DefaultVoice
	}
	if opts.Rate == 0 {
		opts.Rate = 1.0
	}
	return &AzureTTS{
		key:        key,
		region:     region,
		opts:       opts,
		httpClient: &http.Client{Timeout: azureRequestTimeout},
	}
}

// NewAzureTTSFromEnv returns an Azure synthesizer when
// AZURE_SPEECH_KEY and AZURE_SPEECH_REGION are set, otherwise nil.
func NewAzureTTSFromEnv(opts Options) *AzureTTS {
	key := strings.TrimSpace(os.Getenv("AZURE_SPEECH_KEY"))
	region := strings.TrimSpace(os.Getenv("AZURE_SPEECH_REGION"))
	if key == "" || region == "" {
		return nil
	}
	return NewAzureTTS(key, region, opts)
}

// Synthesize narrates text into an MP3 file at outputPath
func (a *AzureTTS) Synthesize(ctx context.Context, text string, outputPath string) error {
	endpoint := fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", a.region)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(a.ssml(text)))
	if err != nil {
		return fmt.Errorf("building TTS request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", a.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", "audio-48khz-192kbitrate-mono-mp3")
	req.Header.Set("User-Agent", "reelbot")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("TTS request failed: status %d: %s", resp.StatusCode, string(body))
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating audio file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("writing audio file: %w", err)
	}
	return nil
}

func (a *AzureTTS) ssml(text string) string {
	// Rate 1.0 maps to +0%; 1.2 to +20%
	ratePct := int((a.opts.Rate - 1.0) * 100)
	return fmt.Sprintf(
		`<speak version="1.0" xmlns="http://www.w3.org/2001/10/synthesis" xml:lang="en-US">`+
			`<voice name="%s"><prosody rate="%+d%%">%s</prosody></voice></speak>`,
		a.opts.Voice, ratePct, escapeXML(text))
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
