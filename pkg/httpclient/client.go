package httpclient

import (
	"net/http"
	"time"
)

// ClientType selects the header profile used for outgoing requests
type ClientType string

const (
	// BrowserClient mimics a desktop browser. The reference catalog serves
	// its full markup only to browser-like User-Agents.
	BrowserClient ClientType = "browser"

	// PlainClient sends minimal curl-like headers, for feeds and listings
	// that reject browser header sets.
	PlainClient ClientType = "plain"
)

// HTTPClient wraps an http.Client with a header profile and request timeout
type HTTPClient struct {
	client     *http.Client
	clientType ClientType
}

// NewClient creates a new HTTP client with the specified type
func NewClient(clientType ClientType) *HTTPClient {
	return NewClientWithTimeout(clientType, 0)
}

// NewClientWithTimeout creates a client with an overall per-request timeout.
// A zero timeout means no limit.
func NewClientWithTimeout(clientType ClientType, timeout time.Duration) *HTTPClient {
	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Follow up to 10 redirects
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return &HTTPClient{
		client:     client,
		clientType: clientType,
	}
}

// Do executes an HTTP request with the appropriate headers for the client type
func (c *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	c.setHeaders(req)
	return c.client.Do(req)
}

// Get is a convenience method for GET requests
func (c *HTTPClient) Get(url string) (*http.Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

// setHeaders sets the appropriate headers based on client type
func (c *HTTPClient) setHeaders(req *http.Request) {
	switch c.clientType {
	case BrowserClient:
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/90.0.4430.212 Safari/537.36")
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Connection", "keep-alive")

	case PlainClient:
		req.Header.Set("User-Agent", "curl/8.7.1")

	default:
		// Default: use Go's default User-Agent
	}
}
