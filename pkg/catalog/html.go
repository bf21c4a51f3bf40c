package catalog

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"carnatic-archive/pkg/httpclient"

	"github.com/PuerkitoBio/goquery"
)

// HTMLSource discovers raga entries from the catalog page's menu list.
// The reference site renders its index as an ordered list of anchors inside
// the MENU container.
type HTMLSource struct {
	client   *httpclient.HTTPClient
	selector string
}

// DefaultMenuSelector locates the raga anchors on the reference catalog page.
const DefaultMenuSelector = "div#MENU ul.OL_LIST li a"

// NewHTMLSource creates an HTML catalog source with the default selector
func NewHTMLSource() *HTMLSource {
	return NewHTMLSourceWithSelector(DefaultMenuSelector)
}

// NewHTMLSourceWithSelector creates an HTML catalog source with a custom
// anchor selector
func NewHTMLSourceWithSelector(selector string) *HTMLSource {
	return &HTMLSource{
		client:   httpclient.NewClient(httpclient.BrowserClient),
		selector: selector,
	}
}

// Fetch downloads the catalog page and extracts raga entries from its menu
func (s *HTMLSource) Fetch(catalogURL string) ([]Entry, error) {
	html, err := s.fetchHTML(catalogURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog page: %w", err)
	}

	entries, err := ExtractMenuEntries(html, s.selector)
	if err != nil {
		return nil, fmt.Errorf("failed to extract catalog entries: %w", err)
	}

	return entries, nil
}

// fetchHTML fetches the catalog HTML content
func (s *HTMLSource) fetchHTML(url string) (string, error) {
	resp, err := s.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}

// ExtractMenuEntries parses catalog HTML and collects anchors matched by the
// given selector into entries. Anchors with empty text are skipped.
func ExtractMenuEntries(html, selector string) ([]Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var entries []Entry
	doc.Find(selector).Each(func(i int, link *goquery.Selection) {
		name := strings.TrimSpace(link.Text())
		if name == "" {
			return
		}
		href, _ := link.Attr("href")
		entries = append(entries, Entry{Name: name, Href: href})
	})

	if len(entries) == 0 {
		return nil, fmt.Errorf("no catalog entries found in HTML")
	}

	return entries, nil
}
