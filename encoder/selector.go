package encoder

import (
	"context"
	"errors"
	"log"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Tier identifies which encoding backend a Choice uses
type Tier string

const (
	TierAppleVideoToolbox Tier = "apple_videotoolbox"
	TierNvidiaNVENC       Tier = "nvidia_nvenc"
	TierAMDAMF            Tier = "amd_amf"
	TierIntelQSV          Tier = "intel_qsv"
	TierSoftware          Tier = "software"
)

// Choice is the selected video encoder plus its tuning flags.
// ExtraArgs is an ordered flag/value list ready to splice into an
// ffmpeg invocation. Immutable once returned.
type Choice struct {
	Codec     string   `json:"codec"`
	ExtraArgs []string `json:"extra_args"`
	Tier      Tier     `json:"tier"`
}

// Hardware reports whether the choice uses a hardware-accelerated backend
func (c Choice) Hardware() bool {
	return c.Tier != TierSoftware
}

// DefaultProbeTimeout bounds the capability-listing subprocess call
const DefaultProbeTimeout = 5 * time.Second

// ErrToolNotFound indicates ffmpeg is not on the execution path.
// It never propagates out of Select; it only shapes the warning log.
var ErrToolNotFound = errors.New("ffmpeg not found in PATH")

// CapabilitySource lists the encoder identifiers the local encoding
// tool supports. The production implementation shells out to ffmpeg;
// tests substitute a fake.
type CapabilitySource interface {
	ListEncoders(ctx context.Context) (string, error)
}

// Selector picks the best available video encoder for this machine.
// The probe runs at most once per Selector; every caller of Select
// shares the cached result.
type Selector struct {
	source  CapabilitySource
	goos    string
	numCPU  int
	timeout time.Duration

	once   sync.Once
	choice Choice
}

// NewSelector creates a Selector for the current platform.
// Passing nil uses the ffmpeg-backed capability source.
func NewSelector(source CapabilitySource) *Selector {
	if source == nil {
		source = NewFFmpegCapabilities()
	}
	return &Selector{
		source:  source,
		goos:    runtime.GOOS,
		numCPU:  runtime.NumCPU(),
		timeout: DefaultProbeTimeout,
	}
}

// Select returns the encoder choice for this process. It never fails:
// a missing tool, a failed probe, or the absence of any hardware
// backend all degrade to the libx264 software fallback.
func (s *Selector) Select() Choice {
	s.once.Do(func() {
		s.choice = s.probe()
	})
	return s.choice
}

// ThreadCount returns the encode thread count: all cores minus one
// for the system, never fewer than two.
func (s *Selector) ThreadCount() int {
	if n := s.numCPU - 1; n > 2 {
		return n
	}
	return 2
}

func (s *Selector) probe() Choice {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	report, err := s.source.ListEncoders(ctx)
	if err != nil {
		if errors.Is(err, ErrToolNotFound) {
			log.Printf("⚠️ ffmpeg not found in PATH, using CPU software encoding: %v", err)
		} else {
			log.Printf("⚠️ encoder capability probe failed, using CPU software encoding: %v", err)
		}
		return softwareChoice()
	}

	encoders := strings.ToLower(report)

	// macOS VideoToolbox. The OS gate applies only to Apple hardware;
	// the remaining probes match on capability alone.
	if s.goos == "darwin" && strings.Contains(encoders, "h264_videotoolbox") {
		log.Println("⚡ GPU acceleration: VideoToolbox encoder detected (macOS)")
		return Choice{
			Codec:     "h264_videotoolbox",
			ExtraArgs: []string{"-allow_sw", "1", "-b:v", "5M"},
			Tier:      TierAppleVideoToolbox,
		}
	}

	if strings.Contains(encoders, "h264_nvenc") || strings.Contains(encoders, "nvenc") {
		log.Println("⚡ GPU acceleration: NVIDIA NVENC encoder detected")
		return Choice{
			Codec:     "h264_nvenc",
			ExtraArgs: []string{"-preset", "p4", "-b:v", "5M"},
			Tier:      TierNvidiaNVENC,
		}
	}

	if strings.Contains(encoders, "h264_amf") || strings.Contains(encoders, "amf") {
		log.Println("⚡ GPU acceleration: AMD AMF encoder detected")
		return Choice{
			Codec:     "h264_amf",
			ExtraArgs: []string{"-quality", "speed", "-b:v", "5M"},
			Tier:      TierAMDAMF,
		}
	}

	if strings.Contains(encoders, "h264_qsv") || strings.Contains(encoders, "qsv") {
		log.Println("⚡ GPU acceleration: Intel QSV encoder detected")
		return Choice{
			Codec:     "h264_qsv",
			ExtraArgs: []string{"-preset", "veryfast", "-b:v", "5M"},
			Tier:      TierIntelQSV,
		}
	}

	log.Println("ℹ️ No GPU encoder detected, using CPU software encoding")
	return softwareChoice()
}

func softwareChoice() Choice {
	return Choice{
		Codec:     "libx264",
		ExtraArgs: []string{"-preset", "ultrafast", "-crf", "23"},
		Tier:      TierSoftware,
	}
}
