package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// Page is a fetched document with its body decoded to UTF-8.
type Page struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// PageFetcher retrieves one page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// StatusError is returned for any response other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s, status code: %d", e.URL, e.StatusCode)
}

type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets a client timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

func NewFetcher(userAgent string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{},
		userAgent: userAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch sends a GET with the configured User-Agent. A non-200 response is
// returned as *StatusError together with the partial page so callers can
// report the status code.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	page := &Page{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}
	if resp.StatusCode != http.StatusOK {
		return page, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return page, fmt.Errorf("failed to read response body: %w", err)
	}
	page.Body = ToUTF8(body, page.ContentType)
	return page, nil
}

// ToUTF8 converts body to UTF-8 using the Content-Type header, the <meta>
// charset declaration or content sniffing, in that order. Undecodable input
// is returned unchanged.
func ToUTF8(body []byte, contentType string) []byte {
	if strings.Contains(strings.ToLower(contentType), "utf-8") {
		return body
	}
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return body
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return body
	}
	return decoded
}
