package catalog

import (
	"fmt"

	"github.com/mmcdole/gofeed"
)

// FeedSource discovers raga entries from an RSS/Atom feed of the reference
// site, for mirrors that publish their index as a feed instead of a menu page
type FeedSource struct {
	feedParser *gofeed.Parser
}

// NewFeedSource creates a new feed catalog source
func NewFeedSource() *FeedSource {
	return &FeedSource{
		feedParser: gofeed.NewParser(),
	}
}

// Fetch fetches and parses the feed, mapping each item to a catalog entry
func (s *FeedSource) Fetch(feedURL string) ([]Entry, error) {
	feed, err := s.feedParser.ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	if feed == nil || len(feed.Items) == 0 {
		return nil, fmt.Errorf("feed contains no items")
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Title == "" {
			continue
		}
		entries = append(entries, Entry{
			Name: item.Title,
			Href: item.Link,
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no usable entries in feed items")
	}

	return entries, nil
}
