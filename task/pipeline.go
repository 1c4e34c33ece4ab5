package task

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"reelbot/config"
	"reelbot/material"
	"reelbot/publish"
	"reelbot/script"
	"reelbot/source"
	"reelbot/storage"
	"reelbot/subtitle"
	"reelbot/video"
	"reelbot/voice"
)

// Pipeline runs generation tasks end to end. Optional collaborators
// (Scripts, S3, Publisher) may be nil; the corresponding stage is
// skipped or falls back.
type Pipeline struct {
	Scripts   *script.Generator // nil: narrate the subject/source text directly
	Voice     voice.Synthesizer
	// VoiceFactory builds a synthesizer for requests that name their
	// own voice or rate; nil means every task uses Voice as-is.
	VoiceFactory func(opts voice.Options) voice.Synthesizer
	Providers []material.Provider
	Renderer  video.Renderer
	Store     Store
	S3        *storage.S3      // nil: no upload
	Publisher *publish.YouTube // nil: no publishing

	WorkDir        string
	OutputDir      string
	BackgroundsDir string

	// Probe measures audio duration; defaults to ffprobe
	Probe func(ctx context.Context, path string) (float64, error)
	// Extract pulls readable text from an article URL; defaults to
	// the readability fetcher
	Extract func(url string) (*source.Article, error)
}

// Run executes the pipeline for one task, recording progress in the
// store. The returned status matches what was stored.
func (p *Pipeline) Run(ctx context.Context, id string, params Params) (*Status, error) {
	if p.Probe == nil {
		p.Probe = video.ProbeDuration
	}
	normalizeParams(&params)

	st := &Status{ID: id, State: StateProcessing, Progress: 5, Params: params, CreatedAt: time.Now()}
	p.update(ctx, st)

	// 0. Article extraction, when the request names a URL but no text
	if params.SourceText == "" && params.ArticleURL != "" {
		extract := p.Extract
		if extract == nil {
			extract = source.ExtractURL
		}
		article, err := extract(params.ArticleURL)
		if err != nil {
			return p.fail(ctx, st, fmt.Errorf("extracting article: %w", err))
		}
		params.SourceText = article.Text
		if params.Subject == "" {
			params.Subject = article.Title
		}
		st.Params = params
		log.Printf("📰 Extracted article: %s", article.Title)
	}

	// 1. Script
	narration, err := p.buildScript(ctx, params)
	if err != nil {
		return p.fail(ctx, st, err)
	}
	st.Artifacts.Script = narration
	st.Progress = 10
	p.update(ctx, st)
	if params.StopAt == StopAtScript {
		return p.complete(ctx, st)
	}

	// 2. Search terms
	if params.Source != SourceLocal {
		terms, err := p.buildTerms(ctx, params, narration)
		if err != nil {
			return p.fail(ctx, st, err)
		}
		st.Artifacts.Terms = terms
	}
	st.Progress = 20
	p.update(ctx, st)
	if params.StopAt == StopAtTerms {
		return p.complete(ctx, st)
	}

	taskDir := filepath.Join(p.WorkDir, id)
	if err := os.MkdirAll(taskDir, 0o755); err != nil {
		return p.fail(ctx, st, fmt.Errorf("creating task dir: %w", err))
	}

	// 3. Narration audio
	audioPath := filepath.Join(taskDir, "audio.mp3")
	synth := p.Voice
	if p.VoiceFactory != nil && (params.Voice != "" || params.VoiceRate != 0) {
		opts := voice.Options{Voice: params.Voice, Rate: params.VoiceRate}
		if opts.Voice == "" {
			opts.Voice = voice.DefaultVoice
		}
		if s := p.VoiceFactory(opts); s != nil {
			synth = s
		}
	}
	if synth == nil {
		return p.fail(ctx, st, fmt.Errorf("no TTS synthesizer configured"))
	}
	if err := synth.Synthesize(ctx, narration, audioPath); err != nil {
		return p.fail(ctx, st, fmt.Errorf("speech synthesis failed: %w", err))
	}
	audioSecs, err := p.Probe(ctx, audioPath)
	if err != nil {
		return p.fail(ctx, st, fmt.Errorf("measuring narration: %w", err))
	}
	st.Artifacts.AudioFile = audioPath
	st.Artifacts.AudioSecs = audioSecs
	st.Progress = 30
	p.update(ctx, st)
	if params.StopAt == StopAtAudio {
		return p.complete(ctx, st)
	}

	// 4. Subtitles
	words := voice.EstimateWordTimings(narration, audioSecs)
	width, height := params.Aspect.Resolution()
	assPath := filepath.Join(taskDir, "subtitles.ass")
	srtPath := filepath.Join(taskDir, "subtitles.srt")
	assOpts := subtitle.ASSOptions{Theme: params.Theme, Width: width, Height: height}
	if err := subtitle.WriteASS(words, assOpts, assPath); err != nil {
		return p.fail(ctx, st, err)
	}
	if err := subtitle.WriteSRT(words, 0, srtPath); err != nil {
		return p.fail(ctx, st, err)
	}
	st.Artifacts.SubtitleFile = assPath
	st.Artifacts.SRTFile = srtPath
	st.Progress = 40
	p.update(ctx, st)
	if params.StopAt == StopAtSubtitle {
		return p.complete(ctx, st)
	}

	// 5. Background footage
	targetSecs := audioSecs + config.VideoEndPadding
	clips, err := p.buildMaterials(ctx, st, params, targetSecs, taskDir)
	if err != nil {
		return p.fail(ctx, st, err)
	}
	for _, c := range clips {
		st.Artifacts.Materials = append(st.Artifacts.Materials, c.Path)
	}
	st.Progress = 50
	p.update(ctx, st)
	if params.StopAt == StopAtMaterials {
		return p.complete(ctx, st)
	}

	// 6. Final render
	if err := os.MkdirAll(p.OutputDir, 0o755); err != nil {
		return p.fail(ctx, st, fmt.Errorf("creating output dir: %w", err))
	}
	outputPath := filepath.Join(p.OutputDir, id+".mp4")
	in := video.ComposeInput{
		Clips:        clips,
		AudioPath:    audioPath,
		BGMPath:      params.BGM,
		SubtitlePath: assPath,
		OutputPath:   outputPath,
		Width:        width,
		Height:       height,
		Duration:     targetSecs,
		ClipDuration: params.ClipDuration,
	}
	if err := p.Renderer.Render(ctx, in); err != nil {
		return p.fail(ctx, st, err)
	}
	st.Artifacts.VideoFile = outputPath
	st.Progress = 90
	p.update(ctx, st)

	// 7. Upload and publish, best effort
	if p.S3 != nil {
		url, err := p.S3.UploadVideo(ctx, outputPath, id+".mp4")
		if err != nil {
			log.Printf("⚠️ S3 upload failed for %s: %v", id, err)
		} else {
			st.Artifacts.UploadedURL = url
		}
	}
	if p.Publisher != nil {
		meta := publish.BuildMetadata(params.Subject, narration, params.ArticleURL)
		videoID, err := p.Publisher.Upload(ctx, outputPath, meta)
		if err != nil {
			log.Printf("⚠️ YouTube publish failed for %s: %v", id, err)
		} else {
			st.Artifacts.YouTubeID = videoID
		}
	}

	log.Printf("🎉 Task %s finished: %s", id, outputPath)
	return p.complete(ctx, st)
}

func normalizeParams(p *Params) {
	if p.Aspect == "" {
		p.Aspect = config.AspectPortrait
	}
	if p.Source == "" {
		p.Source = SourceStock
	}
	if p.ClipDuration <= 0 {
		p.ClipDuration = config.DefaultClipSecs
	}
	if p.Paragraphs <= 0 {
		p.Paragraphs = 1
	}
}

func (p *Pipeline) buildScript(ctx context.Context, params Params) (string, error) {
	if params.Script != "" {
		return params.Script, nil
	}
	if p.Scripts != nil {
		return p.Scripts.Script(ctx, params.Subject, params.SourceText, params.Paragraphs)
	}
	if params.SourceText != "" {
		log.Println("ℹ️ No LLM configured, narrating source text directly")
		return params.SourceText, nil
	}
	if params.Subject != "" {
		log.Println("ℹ️ No LLM configured, narrating subject directly")
		return params.Subject, nil
	}
	return "", fmt.Errorf("no script, subject, or source text provided")
}

func (p *Pipeline) buildTerms(ctx context.Context, params Params, narration string) ([]string, error) {
	if len(params.Terms) > 0 {
		return params.Terms, nil
	}
	if p.Scripts != nil {
		return p.Scripts.Terms(ctx, params.Subject, narration, 5)
	}
	if params.Subject == "" {
		return nil, fmt.Errorf("no search terms available")
	}
	return []string{params.Subject}, nil
}

func (p *Pipeline) buildMaterials(ctx context.Context, st *Status, params Params, needSecs float64, taskDir string) ([]material.Clip, error) {
	if params.Source == SourceLocal {
		path, err := p.localBackground(params)
		if err != nil {
			return nil, err
		}
		secs, err := p.Probe(ctx, path)
		if err != nil {
			// An unreadable duration just means the clip gets trimmed
			// by the render instead of the plan.
			secs = needSecs
		}
		log.Printf("🎨 Using background: %s", filepath.Base(path))
		return []material.Clip{{Path: path, Duration: secs}}, nil
	}

	opts := material.SearchOptions{
		Aspect:      params.Aspect,
		MinDuration: params.ClipDuration,
	}
	return material.Gather(ctx, p.Providers, st.Artifacts.Terms, needSecs, opts, filepath.Join(taskDir, "materials"))
}

// localBackground resolves a curated style key when one is named,
// otherwise picks a random clip from the backgrounds directory.
func (p *Pipeline) localBackground(params Params) (string, error) {
	if params.Background != "" {
		width, height := params.Aspect.Resolution()
		path, err := material.BackgroundPath(p.BackgroundsDir, params.Background, height > width)
		if err == nil {
			return path, nil
		}
		log.Printf("⚠️ %v, picking a random background", err)
	}
	return material.PickLocal(p.BackgroundsDir)
}

func (p *Pipeline) update(ctx context.Context, st *Status) {
	if err := p.Store.Put(ctx, st); err != nil {
		log.Printf("⚠️ failed to store task %s: %v", st.ID, err)
	}
}

func (p *Pipeline) complete(ctx context.Context, st *Status) (*Status, error) {
	st.State = StateComplete
	st.Progress = 100
	p.update(ctx, st)
	return st, nil
}

func (p *Pipeline) fail(ctx context.Context, st *Status, err error) (*Status, error) {
	st.State = StateFailed
	st.Error = err.Error()
	p.update(ctx, st)
	log.Printf("❌ Task %s failed: %v", st.ID, err)
	return st, err
}
