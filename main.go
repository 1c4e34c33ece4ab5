package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"reelbot/api"
	"reelbot/config"
	"reelbot/encoder"
	"reelbot/kafka"
	"reelbot/material"
	"reelbot/publish"
	"reelbot/script"
	"reelbot/source"
	"reelbot/storage"
	"reelbot/task"
	"reelbot/video"
	"reelbot/voice"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	var (
		batchMode = flag.Bool("batch", false, "process input/*.json request files and exit")
		kafkaMode = flag.Bool("kafka", false, "consume generation requests from Kafka")
		feedKey   = flag.String("feed", "", "generate one video from an RSS feed (preset key or URL)")
		port      = flag.String("port", config.Getenv("PORT", "8080"), "API server port")
	)
	flag.Parse()

	ctx := context.Background()
	pipeline, selector := buildPipeline(ctx)

	switch {
	case *batchMode:
		runBatch(ctx, pipeline)
	case *kafkaMode:
		runKafka(pipeline)
	case *feedKey != "":
		runFeed(ctx, pipeline, *feedKey)
	default:
		runServer(pipeline, selector, *port)
	}
}

// buildPipeline wires collaborators from the environment. Anything not
// configured degrades: no Redis means in-memory status, no API keys
// mean local backgrounds only, no S3/YouTube means no publishing.
func buildPipeline(ctx context.Context) (*task.Pipeline, *encoder.Selector) {
	var store task.Store
	redisStore, err := task.NewRedisStoreFromEnv(ctx)
	switch {
	case err != nil:
		log.Printf("⚠️ Redis unavailable: %v (using in-memory store)", err)
		store = task.NewMemoryStore()
	case redisStore != nil:
		log.Println("✅ Task status backed by Redis")
		store = redisStore
	default:
		store = task.NewMemoryStore()
	}

	var providers []material.Provider
	if p := material.NewPexelsFromEnv(); p != nil {
		providers = append(providers, p)
		log.Println("✅ Pexels footage provider enabled")
	}
	if p := material.NewPixabayFromEnv(); p != nil {
		providers = append(providers, p)
		log.Println("✅ Pixabay footage provider enabled")
	}
	if len(providers) == 0 {
		log.Println("⚠️ No footage API keys set; only local backgrounds available")
	}

	scripts := script.NewGeneratorFromEnv()
	if scripts == nil {
		log.Println("⚠️ COHERE_API_KEY not set; scripts must be provided in requests")
	}

	defaultOpts := voice.Options{
		Voice: config.Getenv("TTS_VOICE", voice.DefaultVoice),
		Rate:  envFloat("TTS_RATE", 1.0),
	}
	tts := voice.NewAzureTTSFromEnv(defaultOpts)
	if tts == nil {
		log.Println("⚠️ AZURE_SPEECH_KEY not set; narration synthesis disabled")
	}

	selector := encoder.NewSelector(nil)
	choice := selector.Select()
	log.Printf("🎞️ Video encoder: %s (hardware=%v, threads=%d)", choice.Codec, choice.Hardware(), selector.ThreadCount())

	pipeline := &task.Pipeline{
		Scripts:        scripts,
		Providers:      providers,
		Renderer:       video.NewComposer(selector),
		Store:          store,
		S3:             storage.NewS3FromEnv(ctx),
		Publisher:      publish.NewYouTubeFromEnv(ctx),
		WorkDir:        config.Getenv("WORK_DIR", config.WorkDir),
		OutputDir:      config.Getenv("OUTPUT_DIR", config.OutputDir),
		BackgroundsDir: config.Getenv("BACKGROUNDS_DIR", config.BackgroundsDir),
	}
	if tts != nil {
		pipeline.Voice = tts
		pipeline.VoiceFactory = func(opts voice.Options) voice.Synthesizer {
			if s := voice.NewAzureTTSFromEnv(opts); s != nil {
				return s
			}
			return nil
		}
	}
	return pipeline, selector
}

// runServer exposes the generation API over HTTP
func runServer(pipeline *task.Pipeline, selector *encoder.Selector, port string) {
	addr := ":" + port
	r := api.NewRouter(api.Deps{
		Store:    pipeline.Store,
		Run:      pipeline.Run,
		Selector: selector,
	})

	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET    /api/health")
	log.Println("  POST   /api/v1/tasks")
	log.Println("  GET    /api/v1/tasks/:id")
	log.Println("  DELETE /api/v1/tasks/:id")
	log.Println("  GET    /api/v1/encoder")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// runKafka consumes generation requests until interrupted
func runKafka(pipeline *task.Pipeline) {
	consumer, err := kafka.NewConsumer(kafka.Config{
		Brokers: kafka.BrokersFromEnv(),
		Topic:   kafka.TopicFromEnv(),
		GroupID: kafka.GroupIDFromEnv(),
		Run:     pipeline.Run,
	})
	if err != nil {
		log.Fatalf("❌ Kafka consumer failed: %v", err)
	}
	if err := consumer.RunUntilSignal(); err != nil {
		log.Fatalf("❌ Kafka consumer failed: %v", err)
	}
}

// runBatch processes every request file under input/ with bounded concurrency
func runBatch(ctx context.Context, pipeline *task.Pipeline) {
	inputDir := config.Getenv("INPUT_DIR", config.InputDir)
	files, err := filepath.Glob(filepath.Join(inputDir, "*.json"))
	if err != nil {
		log.Fatalf("❌ Failed to read input directory: %v", err)
	}
	if len(files) == 0 {
		log.Printf("⚠️ No JSON files found in %s", inputDir)
		return
	}
	log.Printf("📄 Found %d videos to process", len(files))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, config.MaxConcurrentVideos)

	for i, file := range files {
		wg.Add(1)
		go func(idx int, file string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := processRequestFile(ctx, pipeline, file, idx+1, len(files)); err != nil {
				log.Printf("❌ Failed to process %s: %v", file, err)
			}

			if idx < len(files)-1 {
				time.Sleep(config.VideoBatchDelay)
			}
		}(i, file)
	}

	wg.Wait()
	log.Println("🎉 All videos processed!")
}

func processRequestFile(ctx context.Context, pipeline *task.Pipeline, file string, current, total int) error {
	log.Printf("🎬 [%d/%d] Processing: %s", current, total, filepath.Base(file))

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	var req kafka.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	id := req.ID
	if id == "" {
		id = source.GenerateID(file)
	}

	st, err := pipeline.Run(ctx, id, req.Params)
	if err != nil {
		return err
	}
	log.Printf("  ✅ Video created: %s", st.Artifacts.VideoFile)

	// Only delete the request file, keep the video
	os.Remove(file)
	return nil
}

// runFeed turns the freshest extractable article from a feed into one video
func runFeed(ctx context.Context, pipeline *task.Pipeline, feedKey string) {
	feedURL := source.ResolveFeed(feedKey)
	log.Printf("Fetching RSS feed: %s", feedURL)

	articles, err := source.FetchFeed(ctx, feedURL, 10)
	if err != nil {
		log.Fatalf("❌ Failed to fetch articles: %v", err)
	}
	log.Printf("Fetched %d articles from feed", len(articles))

	log.Printf("Extracting full content using %d workers...", source.WorkerCount)
	source.ExtractAll(articles)

	var pick *source.Article
	for _, a := range articles {
		if a.ExtractionError == "" && a.Text != "" {
			pick = a
			break
		}
	}
	if pick == nil {
		log.Fatal("❌ No extractable articles in feed")
	}
	log.Printf("📰 Selected: %s", pick.Title)

	st, err := pipeline.Run(ctx, pick.ID, task.Params{
		Subject:    pick.Title,
		SourceText: pick.Text,
		ArticleURL: pick.URL,
	})
	if err != nil {
		log.Fatalf("❌ Generation failed: %v", err)
	}
	log.Printf("🎉 Video ready: %s", st.Artifacts.VideoFile)
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using %.2f", key, v, fallback)
		return fallback
	}
	return f
}
