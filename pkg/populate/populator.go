// Package populate reconciles extracted raga records with the downloader's
// run summary and upserts the merged documents into the raga store.
package populate

import (
	"context"
	"fmt"
	"log"
	"os"

	"carnatic-archive/pkg/audiopath"
	"carnatic-archive/pkg/domain"
)

// RagaStore is the document store the populator writes into. The Mongo client
// satisfies it; a nil store turns the run into a dry run.
type RagaStore interface {
	UpsertRaga(ctx context.Context, doc *domain.RagaDocument) error
}

// Config configures a populator run.
type Config struct {
	// BaseDir is the audio root used to recompute expected paths. It must
	// match the directory the downloader wrote into, or nothing reconciles.
	BaseDir string

	// Store receives the merged documents. Nil means dry run: documents are
	// built and logged but nothing is written.
	Store RagaStore

	Logger *log.Logger
}

// Service builds one document per named raga record, resolving each audio
// reference's download status by recomputing its deterministic path and
// checking membership in the summary's success set.
type Service struct {
	baseDir string
	store   RagaStore
	logger  *log.Logger
}

// NewService constructs a populator with defaults filled in.
func NewService(cfg Config) *Service {
	if cfg.BaseDir == "" {
		cfg.BaseDir = audiopath.DefaultBaseDir
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stdout, "", log.LstdFlags)
	}
	return &Service{
		baseDir: cfg.BaseDir,
		store:   cfg.Store,
		logger:  cfg.Logger,
	}
}

// Run merges records with the download summary and upserts the result. It
// returns the number of documents written. Per-document store failures are
// logged and skipped; the run only fails as a whole when every write fails.
func (s *Service) Run(ctx context.Context, records []domain.RagaRecord, summary *domain.DownloadSummary) (int, error) {
	successSet := map[string]bool{}
	if summary != nil {
		successSet = summary.SuccessSet()
	} else {
		s.logger.Printf("no download summary available, treating all downloads as failed")
	}

	var docs []*domain.RagaDocument
	for _, record := range records {
		if record.Raga == "" {
			s.logger.Printf("skipping record with empty raga name")
			continue
		}
		docs = append(docs, s.buildDocument(record, successSet))
	}

	if s.store == nil {
		s.logger.Printf("no store configured, dry run: %d documents built", len(docs))
		return 0, nil
	}

	upserted := 0
	failed := 0
	for _, doc := range docs {
		if err := s.store.UpsertRaga(ctx, doc); err != nil {
			s.logger.Printf("upsert %q failed: %v", doc.Raga, err)
			failed++
			continue
		}
		upserted++
	}
	s.logger.Printf("populate finished: %d upserted, %d failed", upserted, failed)

	if upserted == 0 && failed > 0 {
		return 0, fmt.Errorf("all %d document writes failed", failed)
	}
	return upserted, nil
}

// buildDocument merges one record with the success set. Every audio reference
// yields an entry; status is success exactly when the recomputed path is in
// the success set.
func (s *Service) buildDocument(record domain.RagaRecord, successSet map[string]bool) *domain.RagaDocument {
	entries := make([]domain.AudioFileEntry, 0, len(record.AudioURLs))
	for _, ref := range record.AudioURLs {
		entry := domain.AudioFileEntry{
			OriginalVideoID: ref.VideoID,
			OriginalURL:     ref.URL,
			StartSeconds:    ref.StartSeconds,
			EndSeconds:      ref.EndSeconds,
			DownloadStatus:  domain.StatusFailed,
		}
		path := audiopath.ExpectedPath(s.baseDir, record.Raga, ref.VideoID, ref.StartSeconds, ref.EndSeconds)
		if successSet[path] {
			entry.DownloadedPath = &path
			entry.DownloadStatus = domain.StatusSuccess
		}
		entries = append(entries, entry)
	}

	return &domain.RagaDocument{
		Raga:             record.Raga,
		RagaURL:          record.RagaURL,
		MelakarthaNumber: record.MelakarthaNumber,
		MelakarthaName:   record.MelakarthaName,
		Arohana:          record.Arohana,
		Avarohana:        record.Avarohana,
		RawTableData:     record.RawTableData,
		AudioFiles:       entries,
	}
}
