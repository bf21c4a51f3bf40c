package main

import (
	"flag"
	"log"
	"time"

	"carnatic-archive/pkg/catalog"
	"carnatic-archive/pkg/dataset"
	"carnatic-archive/pkg/scrape"
)

func main() {
	var (
		catalogURL = flag.String("catalog", "https://ramanarunachalam.github.io/Music/Carnatic/carnatic.html", "Catalog URL (or file path with -source=file) to discover ragas from")
		source     = flag.String("source", "html", "Catalog source kind: html, feed, or file")
		max        = flag.Int("max", scrape.DefaultMaxRagas, "Max ragas to process (<=0 means no limit)")
		out        = flag.String("out", dataset.DefaultRecordsFile, "Output JSON file for extracted raga records")
	)
	flag.Parse()

	sources := buildSources(*source)

	service := scrape.NewService(scrape.Config{
		CatalogURL: *catalogURL,
		MaxRagas:   *max,
		Sources:    sources,
	})

	start := time.Now()
	log.Printf("Scraping raga catalog: %s (max=%d)", *catalogURL, *max)
	records, err := service.Run()
	if err != nil {
		// A failed run still emits whatever was accumulated, down to an
		// empty sequence, so downstream stages never read a stale file.
		if saveErr := dataset.SaveRecords(*out, records); saveErr != nil {
			log.Printf("Failed to write partial output %s: %v", *out, saveErr)
		}
		log.Fatalf("Scrape failed: %v", err)
	}

	if err := dataset.SaveRecords(*out, records); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}
	log.Printf("Wrote %d record(s) to %s. Duration: %s", len(records), *out, time.Since(start))
}

// buildSources maps the -source flag to a source chain. The html chain keeps
// the file source as a fallback so a saved catalog page can stand in for the
// live site.
func buildSources(kind string) []catalog.Source {
	switch kind {
	case "feed":
		return []catalog.Source{catalog.NewFeedSource()}
	case "file":
		return []catalog.Source{catalog.NewFileSource()}
	default:
		return []catalog.Source{catalog.NewHTMLSource()}
	}
}
