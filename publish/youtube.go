package publish

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"reelbot/config"
)

// Metadata describes the published video listing
type Metadata struct {
	Title       string
	Description string
	Tags        []string
	CategoryID  string
}

// YouTube uploads rendered videos to a channel via a service account
type YouTube struct {
	service *youtube.Service
}

// NewYouTube builds an uploader from a service account JSON file
func NewYouTube(ctx context.Context, serviceAccountFile string) (*YouTube, error) {
	data, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(data, youtube.YoutubeUploadScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account: %w", err)
	}

	service, err := youtube.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &YouTube{service: service}, nil
}

// NewYouTubeFromEnv returns an uploader when YOUTUBE_SERVICE_ACCOUNT
// points at a credentials file, otherwise nil (publishing disabled).
func NewYouTubeFromEnv(ctx context.Context) *YouTube {
	path := strings.TrimSpace(os.Getenv("YOUTUBE_SERVICE_ACCOUNT"))
	if path == "" {
		return nil
	}
	yt, err := NewYouTube(ctx, path)
	if err != nil {
		log.Printf("⚠️ YouTube uploader not initialized: %v (publishing disabled)", err)
		return nil
	}
	return yt
}

// Upload publishes the video file and returns its YouTube ID
func (y *YouTube) Upload(ctx context.Context, videoPath string, meta Metadata) (string, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat video file: %w", err)
	}
	log.Printf("📤 Uploading: %s (%.2f MB)", videoPath, float64(info.Size())/(1024*1024))

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  meta.CategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           "public",
			SelfDeclaredMadeForKids: false,
		},
	}

	call := y.service.Videos.Insert([]string{"snippet", "status"}, video).
		Context(ctx).
		Media(file)
	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	log.Printf("✅ Uploaded! https://youtube.com/shorts/%s", resp.Id)
	return resp.Id, nil
}

// BuildMetadata derives the video listing from the subject and script
func BuildMetadata(subject, script, sourceURL string) Metadata {
	title := strings.TrimSpace(subject)
	if title == "" {
		title = titleFromScript(script)
	}
	if r := []rune(title); len(r) > config.MaxTitleLength {
		title = string(r[:config.MaxTitleLength-3]) + "..."
	}

	description := title
	if sourceURL != "" {
		description += fmt.Sprintf("\n\n🔗 Source: %s", sourceURL)
	}
	description += "\n\n#shorts"

	return Metadata{
		Title:       title,
		Description: description,
		Tags:        []string{"shorts", "narrated", "explainer"},
		CategoryID:  "28",
	}
}

func titleFromScript(script string) string {
	words := strings.Fields(script)
	if len(words) > config.MaxTitleWords {
		words = words[:config.MaxTitleWords]
	}
	return strings.Join(words, " ")
}
