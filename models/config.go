// Package models defines data structures for configuration and pipeline results.
package models

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// DefaultUserAgent is sent with every page request. Several listing pages
// serve a stripped page to unknown clients.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"

// DefaultURLs are the listing pages fetched when nothing else is configured.
var DefaultURLs = []string{
	"https://www.chinanews.com.cn/",
	"https://news.sina.com.cn/",
}

// SourceKind tells the extractor how to read a fetched page.
type SourceKind string

const (
	SourceHTML SourceKind = "html" // Anchor text of an HTML page
	SourceFeed SourceKind = "feed" // Item titles of an RSS/Atom/JSON feed
)

// Source is one page to fetch.
type Source struct {
	URL  string     `yaml:"url"`
	Kind SourceKind `yaml:"kind,omitempty"`
}

// Config holds everything the pipeline needs. It is built once at startup
// from defaults, the YAML file, the environment and CLI flags, in that order,
// and is not modified afterwards.
type Config struct {
	CountMode CountMode `yaml:"count_mode" env:"COUNT_MODE"`
	TopN      int       `yaml:"top_n" env:"TOP_N"`
	Language  Language  `yaml:"language" env:"LANGUAGE"`

	Sources []Source `yaml:"sources" env:"-"`
	// URLs and Feeds are shorthands for html and feed sources.
	URLs  []string `yaml:"urls,omitempty" env:"URLS"`
	Feeds []string `yaml:"feeds,omitempty" env:"FEEDS"`

	ExtraStopWords []string `yaml:"extra_stop_words,omitempty" env:"EXTRA_STOP_WORDS"`

	UserAgent string        `yaml:"user_agent" env:"USER_AGENT"`
	Timeout   time.Duration `yaml:"timeout,omitempty" env:"TIMEOUT"`
	CacheDir  string        `yaml:"cache_dir,omitempty" env:"CACHE_DIR"`
	CacheTTL  time.Duration `yaml:"cache_ttl,omitempty" env:"CACHE_TTL"`

	FontPath    string  `yaml:"font_path" env:"FONT_PATH"`
	Width       int     `yaml:"width" env:"WIDTH"`
	Height      int     `yaml:"height" env:"HEIGHT"`
	MaxFontSize float64 `yaml:"max_font_size" env:"MAX_FONT_SIZE"`
	MinFontSize float64 `yaml:"min_font_size" env:"MIN_FONT_SIZE"`
	Background  string  `yaml:"background" env:"BACKGROUND"`
	OutputPath  string  `yaml:"output" env:"OUTPUT"`
	Show        bool    `yaml:"show" env:"SHOW"`

	Verbose bool `yaml:"verbose" env:"VERBOSE"`
}

// DefaultConfig returns the configuration used when no file or flag says otherwise.
func DefaultConfig() *Config {
	return &Config{
		CountMode:   CountModeWord,
		TopN:        10,
		Language:    LanguageChinese,
		UserAgent:   DefaultUserAgent,
		FontPath:    DefaultFontPath(),
		Width:       800,
		Height:      400,
		MaxFontSize: 50,
		MinFontSize: 8,
		Background:  "#ffffff",
		OutputPath:  "wordcloud.png",
		Show:        true,
	}
}

// DefaultFontPath returns a font with CJK coverage for the current platform.
func DefaultFontPath() string {
	switch runtime.GOOS {
	case "windows":
		return "C:/Windows/Fonts/simhei.ttf"
	case "darwin":
		return "/Library/Fonts/Arial Unicode.ttf"
	default:
		return "/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf"
	}
}

// AllSources merges Sources, URLs and Feeds in that order, defaulting an
// empty kind to html.
func (c *Config) AllSources() []Source {
	out := make([]Source, 0, len(c.Sources)+len(c.URLs)+len(c.Feeds))
	for _, s := range c.Sources {
		if s.Kind == "" {
			s.Kind = SourceHTML
		}
		out = append(out, s)
	}
	for _, u := range c.URLs {
		out = append(out, Source{URL: u, Kind: SourceHTML})
	}
	for _, u := range c.Feeds {
		out = append(out, Source{URL: u, Kind: SourceFeed})
	}
	return out
}

// ApplyDefaultSources fills in DefaultURLs when no source was configured.
func (c *Config) ApplyDefaultSources() {
	if len(c.Sources) == 0 && len(c.URLs) == 0 && len(c.Feeds) == 0 {
		c.URLs = append([]string(nil), DefaultURLs...)
	}
}

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.TopN <= 0 {
		return ErrInvalidTopN
	}
	if c.Width <= 0 || c.Height <= 0 {
		return ErrInvalidCanvas
	}
	if c.MaxFontSize <= 0 || c.MinFontSize <= 0 || c.MinFontSize > c.MaxFontSize {
		return ErrInvalidFontSize
	}
	if c.CountMode != CountModeWord && c.CountMode != CountModeTitle {
		return ErrInvalidCountMode
	}
	if !c.Language.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, c.Language)
	}
	sources := c.AllSources()
	if len(sources) == 0 {
		return ErrNoSources
	}
	for _, s := range sources {
		if s.Kind != SourceHTML && s.Kind != SourceFeed {
			return fmt.Errorf("%w: %q", ErrInvalidSourceKind, s.Kind)
		}
		if strings.TrimSpace(s.URL) == "" {
			return fmt.Errorf("%w: empty URL", ErrInvalidURL)
		}
	}
	return nil
}
