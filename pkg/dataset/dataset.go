// Package dataset reads and writes the JSON files that connect the three
// pipeline stages: the raga records produced by the scraper and the download
// summary produced by the downloader.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"carnatic-archive/pkg/domain"
)

// Default hand-off file names shared by the stage binaries.
const (
	DefaultRecordsFile = "refined_raga_data.json"
	DefaultSummaryFile = "download_summary.json"
)

// LoadRecords reads the scraper's output. A missing or malformed file is an
// error; consuming stages treat it as fatal input.
func LoadRecords(path string) ([]domain.RagaRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}

	var records []domain.RagaRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode records file: %w", err)
	}

	return records, nil
}

// SaveRecords writes the full record sequence in one shot. The write goes to
// a temp file first and is renamed into place, so a crash mid-write never
// leaves a truncated output behind.
func SaveRecords(path string, records []domain.RagaRecord) error {
	if records == nil {
		records = []domain.RagaRecord{}
	}
	return writeJSON(path, records)
}

// LoadSummary reads the downloader's summary file. Callers that can tolerate
// a missing or malformed summary degrade to an empty one themselves.
func LoadSummary(path string) (domain.DownloadSummary, error) {
	var summary domain.DownloadSummary

	data, err := os.ReadFile(path)
	if err != nil {
		return summary, fmt.Errorf("failed to read summary file: %w", err)
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		return domain.DownloadSummary{}, fmt.Errorf("failed to decode summary file: %w", err)
	}

	return summary, nil
}

// SaveSummary overwrites the download summary for this run.
func SaveSummary(path string, summary domain.DownloadSummary) error {
	if summary.SuccessfulDownloads == nil {
		summary.SuccessfulDownloads = []string{}
	}
	if summary.FailedDownloads == nil {
		summary.FailedDownloads = []string{}
	}
	return writeJSON(path, summary)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
