// Package scrape implements the extraction stage: it discovers raga entries
// in the reference catalog and turns each one into a typed record with parsed
// metadata and video references.
package scrape

import (
	"fmt"
	"log"
	"strings"

	"carnatic-archive/pkg/catalog"
	"carnatic-archive/pkg/domain"
	"carnatic-archive/pkg/ragaparse"
)

// DefaultMaxRagas bounds a run during iterative development; raise it for a
// full crawl.
const DefaultMaxRagas = 3

// Config wires the scraper dependencies.
type Config struct {
	// CatalogURL is the catalog root (or, for a file source, the file path).
	CatalogURL string

	// MaxRagas caps how many ragas one run processes. <=0 means no limit.
	MaxRagas int

	// Sources are tried in order; the first one yielding entries wins.
	Sources []catalog.Source

	// Pages fetches the detail page for each entry.
	Pages PageFetcher

	Logger *log.Logger
}

// Service extracts raga records from the reference catalog
type Service struct {
	cfg    Config
	logger *log.Logger
}

// NewService creates a new scraper service
func NewService(cfg Config) *Service {
	if len(cfg.Sources) == 0 {
		cfg.Sources = []catalog.Source{catalog.NewHTMLSource()}
	}
	if cfg.Pages == nil {
		cfg.Pages = NewHTTPPageFetcher(cfg.CatalogURL)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Service{cfg: cfg, logger: logger}
}

// Run discovers catalog entries and extracts one record per processed raga.
//
// Per-raga failures (page unreachable, table or link list missing) degrade to
// partial records with absent fields. Failure to discover any entries at all
// is fatal and returns the error alongside an empty slice, so the caller can
// still write out whatever was accumulated.
func (s *Service) Run() ([]domain.RagaRecord, error) {
	entries, err := s.discoverEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to discover catalog entries: %w", err)
	}

	s.logger.Printf("Found %d catalog entries, processing at most %d", len(entries), s.cfg.MaxRagas)

	var records []domain.RagaRecord
	processed := 0

	for _, entry := range entries {
		if s.cfg.MaxRagas > 0 && processed >= s.cfg.MaxRagas {
			s.logger.Printf("Reached processing limit of %d ragas, stopping", s.cfg.MaxRagas)
			break
		}

		// Names with a comma make later identification ambiguous; skip them
		// without consuming the cap.
		if strings.Contains(entry.Name, ",") {
			s.logger.Printf("Skipping raga %q (contains comma)", entry.Name)
			continue
		}

		records = append(records, s.extractRaga(entry))
		processed++
	}

	s.logger.Printf("Extracted %d raga record(s)", len(records))
	return records, nil
}

// discoverEntries tries each configured source in order
func (s *Service) discoverEntries() ([]catalog.Entry, error) {
	var lastErr error
	for _, source := range s.cfg.Sources {
		entries, err := source.Fetch(s.cfg.CatalogURL)
		if err != nil {
			lastErr = err
			continue
		}
		if len(entries) > 0 {
			return entries, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no sources configured")
	}
	return nil, lastErr
}

// extractRaga builds one record for a catalog entry. Any failure past this
// point degrades to absent fields rather than dropping the record.
func (s *Service) extractRaga(entry catalog.Entry) domain.RagaRecord {
	record := domain.RagaRecord{
		Raga:      entry.Name,
		RagaURL:   CatalogFragmentURL(s.cfg.CatalogURL, entry.Name),
		AudioURLs: []domain.AudioReference{},
	}

	html, err := s.cfg.Pages.FetchPage(entry)
	if err != nil {
		s.logger.Printf("Error fetching page for raga %q: %v", entry.Name, err)
		return record
	}

	if tableText := ExtractTableText(html); tableText != "" {
		record.RawTableData = &tableText
		parsed := ragaparse.ParseTable(tableText)
		record.MelakarthaNumber = parsed.MelakarthaNumber
		record.MelakarthaName = parsed.MelakarthaName
		record.Arohana = parsed.Arohana
		record.Avarohana = parsed.Avarohana
	} else {
		s.logger.Printf("Details table not found for raga %q", entry.Name)
	}

	links, err := ExtractVideoLinks(html)
	if err != nil {
		s.logger.Printf("Error extracting video links for raga %q: %v", entry.Name, err)
		return record
	}
	if len(links) == 0 {
		s.logger.Printf("Video list not found for raga %q", entry.Name)
	}

	for _, link := range links {
		ref, err := ragaparse.ParseReference(link)
		if err != nil {
			// References without a recognizable id are dropped, not recorded.
			s.logger.Printf("Dropping unparseable reference for raga %q: %s", entry.Name, link)
			continue
		}
		record.AudioURLs = append(record.AudioURLs, ref)
	}

	s.logger.Printf("Finished raga %q: %d audio reference(s)", entry.Name, len(record.AudioURLs))
	return record
}

// CatalogFragmentURL derives the catalog fragment URL for a raga name, with
// spaces folded to underscores.
func CatalogFragmentURL(catalogURL, ragaName string) string {
	return catalogURL + "#" + strings.ReplaceAll(ragaName, " ", "_")
}
