package domain

import "time"

// RagaRecord is one raga as extracted from the reference catalog.
//
// Metadata fields parsed out of the summary table are pointers: a clause the
// parser could not locate stays nil and must be treated as "unknown", not as
// a parse failure for the whole record. The raw table text is retained so a
// later run can re-parse without re-scraping.
type RagaRecord struct {
	// Raga is the display name and the unique identifier across all stages.
	Raga string `json:"Raga" bson:"Raga"`

	// RagaURL is the catalog fragment URL derived from the name.
	RagaURL string `json:"Raga_URL" bson:"Raga_URL"`

	MelakarthaNumber *int    `json:"Melakartha_Number" bson:"Melakartha_Number"`
	MelakarthaName   *string `json:"Melakartha_Name" bson:"Melakartha_Name"`
	Arohana          *string `json:"Arohana" bson:"Arohana"`
	Avarohana        *string `json:"Avarohana" bson:"Avarohana"`

	// AudioURLs is the ordered list of video references found on the page.
	AudioURLs []AudioReference `json:"Audio_URLs" bson:"Audio_URLs"`

	// RawTableData is the unparsed summary table text, kept for audit.
	RawTableData *string `json:"Raw_Table_Data" bson:"Raw_Table_Data"`
}

// AudioReference is a single video reference with an optional time segment.
//
// Segment rules: both offsets present means a closed interval, only a start
// means open-ended (start to end of media), neither means the whole item.
type AudioReference struct {
	VideoID      string `json:"video_id" bson:"video_id"`
	URL          string `json:"url" bson:"url"`
	StartSeconds *int   `json:"start_seconds" bson:"start_seconds"`
	EndSeconds   *int   `json:"end_seconds" bson:"end_seconds"`
}

// DownloadSummary is the downloader's per-run result file.
//
// Note the asymmetry: successes are keyed by computed file path, failures by
// original source URL. The populator only consumes the success set.
type DownloadSummary struct {
	SuccessfulDownloads []string `json:"successful_downloads"`
	FailedDownloads     []string `json:"failed_downloads"`
}

// SuccessSet returns the successful paths as a membership set.
func (s *DownloadSummary) SuccessSet() map[string]bool {
	set := make(map[string]bool, len(s.SuccessfulDownloads))
	for _, p := range s.SuccessfulDownloads {
		if p != "" {
			set[p] = true
		}
	}
	return set
}

// Download statuses stored on AudioFileEntry.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// AudioFileEntry is one audio reference with its resolved download outcome,
// as embedded in the persisted raga document.
type AudioFileEntry struct {
	OriginalVideoID string `bson:"original_video_id" json:"original_video_id"`
	OriginalURL     string `bson:"original_url" json:"original_url"`
	StartSeconds    *int   `bson:"start_seconds" json:"start_seconds"`
	EndSeconds      *int   `bson:"end_seconds" json:"end_seconds"`

	// DownloadedPath is set only when the deterministic path for this entry
	// appears in the download summary's success set.
	DownloadedPath *string `bson:"downloaded_path" json:"downloaded_path"`
	DownloadStatus string  `bson:"download_status" json:"download_status"`
}

// RagaDocument is the normalized document upserted into the store, one per
// raga name. Subsequent runs replace every field (last-write-wins).
type RagaDocument struct {
	Raga             string  `bson:"Raga" json:"Raga"`
	RagaURL          string  `bson:"Raga_URL" json:"Raga_URL"`
	MelakarthaNumber *int    `bson:"Melakartha_Number" json:"Melakartha_Number"`
	MelakarthaName   *string `bson:"Melakartha_Name" json:"Melakartha_Name"`
	Arohana          *string `bson:"Arohana" json:"Arohana"`
	Avarohana        *string `bson:"Avarohana" json:"Avarohana"`
	RawTableData     *string `bson:"Raw_Table_Data" json:"Raw_Table_Data"`

	AudioFiles []AudioFileEntry `bson:"Audio_Files" json:"Audio_Files"`

	// LastUpdated is stamped fresh on every upsert.
	LastUpdated time.Time `bson:"last_updated" json:"last_updated"`
}
