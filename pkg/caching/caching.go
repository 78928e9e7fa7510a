package caching

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dtnitsch/headline-cloud/pkg/fetcher"
)

// Cache provides a simple file-based cache with a TTL.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// key generates a SHA256 hash of the URL to use as a filename.
func (c *Cache) key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x.html", hash)
}

// Get returns the cached body for url if present and younger than the TTL.
func (c *Cache) Get(url string) ([]byte, bool) {
	filePath := filepath.Join(c.path, c.key(url))

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data for url.
func (c *Cache) Set(url string, data []byte) error {
	filePath := filepath.Join(c.path, c.key(url))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// Fetcher serves pages from the cache and falls back to Next on a miss.
// Only successful responses are stored.
type Fetcher struct {
	Cache  *Cache
	Next   fetcher.PageFetcher
	Logger *slog.Logger
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*fetcher.Page, error) {
	if body, ok := f.Cache.Get(url); ok {
		f.log().Debug("cache hit", "url", url)
		return &fetcher.Page{URL: url, StatusCode: http.StatusOK, ContentType: "text/html; charset=utf-8", Body: body}, nil
	}

	page, err := f.Next.Fetch(ctx, url)
	if err != nil {
		return page, err
	}
	if setErr := f.Cache.Set(url, page.Body); setErr != nil {
		f.log().Warn("failed to cache page", "url", url, "error", setErr)
	}
	return page, nil
}

func (f *Fetcher) log() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}
