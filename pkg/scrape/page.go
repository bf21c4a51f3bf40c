package scrape

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"carnatic-archive/pkg/catalog"
	"carnatic-archive/pkg/httpclient"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Selectors for the raga detail view on the reference site.
const (
	tableSelector     = "div#PAGE_VIDEOS table"
	videoListSelector = "div#PAGE_VIDEOS div.list-group ol a"
)

// PageFetcher retrieves the detail page HTML for one catalog entry.
// Implementations own the navigation mechanics; the scraper only sees HTML.
type PageFetcher interface {
	FetchPage(entry catalog.Entry) (string, error)
}

// HTTPPageFetcher fetches raga pages over plain HTTP, resolving each entry's
// link against the catalog root
type HTTPPageFetcher struct {
	client     *httpclient.HTTPClient
	catalogURL string
}

// DefaultPageTimeout bounds a single raga page request.
const DefaultPageTimeout = 15 * time.Second

// NewHTTPPageFetcher creates a page fetcher rooted at the catalog URL
func NewHTTPPageFetcher(catalogURL string) *HTTPPageFetcher {
	return &HTTPPageFetcher{
		client:     httpclient.NewClientWithTimeout(httpclient.BrowserClient, DefaultPageTimeout),
		catalogURL: catalogURL,
	}
}

// FetchPage resolves the entry's link against the catalog root and downloads
// the page. Entries without a link fall back to the catalog root itself.
func (f *HTTPPageFetcher) FetchPage(entry catalog.Entry) (string, error) {
	target, err := f.resolve(entry.Href)
	if err != nil {
		return "", fmt.Errorf("failed to resolve page URL: %w", err)
	}

	resp, err := f.client.Get(target)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
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

func (f *HTTPPageFetcher) resolve(href string) (string, error) {
	if href == "" {
		return f.catalogURL, nil
	}

	base, err := url.Parse(f.catalogURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// ExtractTableText returns the text of the raga summary table. When the table
// selector finds nothing, it falls back to readability text extraction over
// the whole page so the raw text is still retained for audit; the fallback
// failing too yields "".
func ExtractTableText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		if table := doc.Find(tableSelector).First(); table.Length() > 0 {
			if text := normalizeText(table.Text()); text != "" {
				return text
			}
		}
	}

	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil {
		return ""
	}
	return normalizeText(article.TextContent)
}

// ExtractVideoLinks collects the hrefs of the page's video reference list,
// in document order
func ExtractVideoLinks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var links []string
	doc.Find(videoListSelector).Each(func(i int, link *goquery.Selection) {
		if href, exists := link.Attr("href"); exists && href != "" {
			links = append(links, href)
		}
	})

	return links, nil
}

// normalizeText collapses the whitespace goquery yields for table cells into
// single spaces so the clause parser sees one flat line.
func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
