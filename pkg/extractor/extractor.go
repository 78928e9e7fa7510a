// Package extractor pulls headline candidates out of fetched pages.
package extractor

import (
	"bytes"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/dtnitsch/headline-cloud/models"
)

// Titles returns the headline candidates of body according to kind.
func Titles(kind models.SourceKind, body []byte) ([]string, error) {
	switch kind {
	case models.SourceFeed:
		return ExtractFeedTitles(body)
	case models.SourceHTML, "":
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to parse HTML: %w", err)
		}
		return ExtractTitles(doc), nil
	}
	return nil, fmt.Errorf("%w: %q", models.ErrInvalidSourceKind, kind)
}

// ExtractTitles returns the text of every anchor in document order.
// Navigation and footer links are included; nothing is filtered here.
func ExtractTitles(doc *goquery.Document) []string {
	anchors := doc.Find("a")
	titles := make([]string, 0, anchors.Length())
	anchors.Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	return titles
}

var strict = bluemonday.StrictPolicy()

// ExtractFeedTitles returns the item titles of an RSS, Atom or JSON feed.
// Feed titles sometimes carry markup, which is stripped.
func ExtractFeedTitles(body []byte) ([]string, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	titles := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		// Sanitize escapes entities; undo that so "A & B" stays as typed
		titles = append(titles, html.UnescapeString(strict.Sanitize(item.Title)))
	}
	return titles, nil
}

// Preview returns a short human readable view of a page for debugging:
// the readable title and the start of the readable text. When readability
// cannot make sense of the page the raw markup is used instead.
func Preview(body []byte, rawURL string, n int) string {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		pageURL = &url.URL{}
	}
	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(body), pageURL)
	if err != nil {
		return truncate(string(body), n)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return truncate(string(body), n)
	}
	text := strings.Join(strings.Fields(doc.Text()), " ")
	if text == "" {
		return truncate(string(body), n)
	}
	if article.Title == "" {
		return truncate(text, n)
	}
	return truncate(article.Title+"\n"+text, n)
}

// truncate keeps the first n characters of s.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
