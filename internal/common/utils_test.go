package common

import (
	"reflect"
	"testing"

	"github.com/dtnitsch/headline-cloud/models"
)

func TestSanitizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "clean", in: "https://news.sina.com.cn/", want: "https://news.sina.com.cn/"},
		{name: "whitespace", in: "  https://example.com  ", want: "https://example.com"},
		{name: "trailing comma", in: "https://example.com,", want: "https://example.com"},
		{name: "markdown link", in: "[新闻](https://example.com/news)", want: "https://example.com/news"},
		{name: "wrapped in parens", in: "(https://example.com)", want: "https://example.com"},
		{name: "quoted", in: `"https://example.com"`, want: "https://example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeURL(tt.in); got != tt.want {
				t.Errorf("SanitizeURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://www.chinanews.com.cn/", true},
		{"http://127.0.0.1:8080/list", true},
		{"ftp://example.com", false},
		{"example.com", false},
		{"https://exa mple.com", false},
		{"", false},
		{"https://", false},
	}
	for _, tt := range tests {
		if got := ValidURL(tt.in); got != tt.want {
			t.Errorf("ValidURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeSources(t *testing.T) {
	in := []models.Source{
		{URL: " https://a.example.com/ ", Kind: models.SourceHTML},
		{URL: "not a url", Kind: models.SourceHTML},
		{URL: "https://b.example.com/rss,", Kind: models.SourceFeed},
	}
	valid, invalid := SanitizeSources(in)

	wantValid := []models.Source{
		{URL: "https://a.example.com/", Kind: models.SourceHTML},
		{URL: "https://b.example.com/rss", Kind: models.SourceFeed},
	}
	if !reflect.DeepEqual(valid, wantValid) {
		t.Errorf("valid = %+v, want %+v", valid, wantValid)
	}
	if !reflect.DeepEqual(invalid, []string{"not a url"}) {
		t.Errorf("invalid = %q, want [not a url]", invalid)
	}
}

func TestContentHash(t *testing.T) {
	got := ContentHash([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("ContentHash(abc) = %s, want %s", got, want)
	}
}
