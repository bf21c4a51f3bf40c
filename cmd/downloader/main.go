package main

import (
	"context"
	"flag"
	"log"
	"time"

	"carnatic-archive/pkg/audiopath"
	"carnatic-archive/pkg/dataset"
	"carnatic-archive/pkg/download"
	"carnatic-archive/pkg/ytdlp"
)

func main() {
	var (
		in      = flag.String("in", dataset.DefaultRecordsFile, "Input JSON file of extracted raga records")
		out     = flag.String("out", dataset.DefaultSummaryFile, "Output JSON file for the download summary")
		baseDir = flag.String("dir", audiopath.DefaultBaseDir, "Base directory for downloaded audio files")
		max     = flag.Int("max-downloads", 1, "Max download attempts in this run")
		binary  = flag.String("ytdlp", "yt-dlp", "Path to the yt-dlp binary")
		timeout = flag.Duration("timeout", ytdlp.DefaultTimeout, "Per-download timeout")
	)
	flag.Parse()

	records, err := dataset.LoadRecords(*in)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *in, err)
	}

	tool := ytdlp.NewCLI(ytdlp.WithBinary(*binary), ytdlp.WithTimeout(*timeout))
	service := download.NewService(download.Config{
		BaseDir:      *baseDir,
		MaxDownloads: *max,
		Tool:         tool,
	})

	start := time.Now()
	log.Printf("Downloading audio for %d record(s) into %s (max-downloads=%d)", len(records), *baseDir, *max)
	summary := service.Run(context.Background(), records)

	// The summary is written even when every attempt failed; the populator
	// needs the failure record as much as the successes.
	if err := dataset.SaveSummary(*out, summary); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Done: %d succeeded, %d failed. Summary written to %s. Duration: %s",
		len(summary.SuccessfulDownloads), len(summary.FailedDownloads), *out, time.Since(start))
}
