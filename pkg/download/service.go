// Package download implements the acquisition stage: it walks the scraper's
// records in order and materializes audio files at their deterministic paths,
// under a per-run attempt quota.
package download

import (
	"context"
	"fmt"
	"log"
	"os"

	"carnatic-archive/pkg/audiopath"
	"carnatic-archive/pkg/domain"
	"carnatic-archive/pkg/ytdlp"
)

// AudioTool acquires one audio segment to a known path. *ytdlp.CLI is the
// production implementation.
type AudioTool interface {
	FetchAudio(ctx context.Context, videoURL, outputPath, section string) error
}

// Config wires the downloader dependencies.
type Config struct {
	// BaseDir is the root of the audio file tree.
	BaseDir string

	// MaxDownloads caps acquisition attempts per run. Downloading is
	// deliberately throttled; the default of 1 matches one attempt per run.
	MaxDownloads int

	Tool   AudioTool
	Logger *log.Logger
}

// Service runs the acquisition stage over a record sequence
type Service struct {
	cfg    Config
	logger *log.Logger
}

// NewService creates a new downloader service
func NewService(cfg Config) *Service {
	if cfg.BaseDir == "" {
		cfg.BaseDir = audiopath.DefaultBaseDir
	}
	if cfg.MaxDownloads <= 0 {
		cfg.MaxDownloads = 1
	}
	if cfg.Tool == nil {
		cfg.Tool = ytdlp.NewCLI()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Service{cfg: cfg, logger: logger}
}

// Run attempts up to MaxDownloads acquisitions across the record sequence and
// returns the run's summary: successes keyed by computed path, failures keyed
// by source URL. References skipped for a missing id or URL consume quota
// without joining either set. Ragas with no references consume nothing.
func (s *Service) Run(ctx context.Context, records []domain.RagaRecord) domain.DownloadSummary {
	summary := domain.DownloadSummary{
		SuccessfulDownloads: []string{},
		FailedDownloads:     []string{},
	}
	attempts := 0

	for _, record := range records {
		if attempts >= s.cfg.MaxDownloads {
			break
		}

		if record.Raga == "" {
			s.logger.Printf("Raga entry missing name, skipping")
			continue
		}
		if len(record.AudioURLs) == 0 {
			s.logger.Printf("No audio references for raga %q, moving on", record.Raga)
			continue
		}

		for _, ref := range record.AudioURLs {
			if attempts >= s.cfg.MaxDownloads {
				break
			}
			attempts++

			if ref.VideoID == "" || ref.URL == "" {
				s.logger.Printf("Missing video id or URL for raga %q, skipping this reference", record.Raga)
				continue
			}

			path, err := s.acquire(ctx, record.Raga, ref)
			if err != nil {
				s.logger.Printf("Download failed for raga %q video %q: %v", record.Raga, ref.VideoID, err)
				summary.FailedDownloads = append(summary.FailedDownloads, ref.URL)
				continue
			}

			s.logger.Printf("Successfully downloaded: %s", path)
			summary.SuccessfulDownloads = append(summary.SuccessfulDownloads, path)
		}
	}

	s.logger.Printf("Download run finished: %d attempted, %d successful, %d failed",
		attempts, len(summary.SuccessfulDownloads), len(summary.FailedDownloads))
	return summary
}

// acquire performs one download attempt and returns the written path.
func (s *Service) acquire(ctx context.Context, ragaName string, ref domain.AudioReference) (string, error) {
	dir := audiopath.RagaDir(s.cfg.BaseDir, ragaName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := audiopath.ExpectedPath(s.cfg.BaseDir, ragaName, ref.VideoID, ref.StartSeconds, ref.EndSeconds)
	section := audiopath.SectionSpec(ref.StartSeconds, ref.EndSeconds)

	if err := s.cfg.Tool.FetchAudio(ctx, ref.URL, path, section); err != nil {
		return "", err
	}
	return path, nil
}
