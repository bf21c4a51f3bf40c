package catalog

// Entry is one raga listed in the reference catalog
type Entry struct {
	Name string // Display name of the raga
	Href string // Link target as it appears in the listing (may be a fragment)
}

// Source defines the interface for catalog-entry discovery (HTML menu,
// syndication feed, local file). The scraper tries sources in order and uses
// the first one that yields entries.
type Source interface {
	Fetch(location string) ([]Entry, error)
}
