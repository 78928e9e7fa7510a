package cloud

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"strings"
	"testing"

	"github.com/dtnitsch/headline-cloud/models"
	"github.com/dtnitsch/headline-cloud/pkg/analytics"
	"github.com/dtnitsch/headline-cloud/pkg/fetcher"
)

// fakeFetcher serves fixture bodies; unknown URLs fail like a dead host,
// URLs in status answer with that status code.
type fakeFetcher struct {
	pages  map[string]string
	status map[string]int
	calls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*fetcher.Page, error) {
	f.calls = append(f.calls, url)
	if code, ok := f.status[url]; ok {
		return &fetcher.Page{URL: url, StatusCode: code}, &fetcher.StatusError{URL: url, StatusCode: code}
	}
	body, ok := f.pages[url]
	if !ok {
		return nil, errors.New("dial tcp: connection refused")
	}
	return &fetcher.Page{URL: url, StatusCode: http.StatusOK, Body: []byte(body)}, nil
}

// fakeRenderer records what it was asked to draw.
type fakeRenderer struct {
	calls   int
	weights map[string]int
	err     error
}

func (r *fakeRenderer) Render(_ context.Context, weights map[string]int) (string, error) {
	r.calls++
	r.weights = weights
	if r.err != nil {
		return "", r.err
	}
	return "cloud.png", nil
}

const fixtureHTML = `<html><body>
<a href="/prev">上一个</a>
<a href="/1">突发新闻标题内容</a>
<a href="/next">下一个</a>
<a href="/1">突发新闻标题内容</a>
</body></html>`

func newTestPipeline(cfg *models.Config, f fetcher.PageFetcher, r *fakeRenderer, out *bytes.Buffer) *Pipeline {
	p := &Pipeline{
		Config:    cfg,
		Fetcher:   f,
		Analytics: analytics.New(cfg),
		Out:       out,
		Rand:      rand.New(rand.NewPCG(1, 2)),
	}
	if r != nil {
		p.Renderer = r
	}
	return p
}

func TestRunWordModeFixture(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.URLs = []string{"https://news.example.com/"}
	f := &fakeFetcher{pages: map[string]string{"https://news.example.com/": fixtureHTML}}
	r := &fakeRenderer{}
	var out bytes.Buffer

	p := newTestPipeline(cfg, f, r, &out)
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	results := p.Collect(context.Background())
	table := p.Count(results)

	expected := p.Analytics.Tokens([]string{"突发新闻标题内容"})
	if len(expected) == 0 {
		t.Fatal("headline produced no tokens after filtering")
	}
	perTitle := map[string]int{}
	for _, tok := range expected {
		perTitle[tok]++
	}
	for tok, n := range perTitle {
		if got := table.Count(tok); got != 2*n {
			t.Errorf("count of %q = %d, want %d", tok, got, 2*n)
		}
	}
	for _, absent := range []string{"上一个", "下一个"} {
		if table.Count(absent) != 0 {
			t.Errorf("%q counted %d times, want absent", absent, table.Count(absent))
		}
	}

	if !summary.Rendered || summary.ImagePath != "cloud.png" {
		t.Errorf("summary rendered=%v path=%q", summary.Rendered, summary.ImagePath)
	}
	if r.calls != 1 {
		t.Fatalf("renderer called %d times, want 1", r.calls)
	}
	if len(r.weights) != len(summary.Top) {
		t.Errorf("rendered %d words, selected %d", len(r.weights), len(summary.Top))
	}
	for word, w := range r.weights {
		if w < 1 || w > 100 {
			t.Errorf("weight of %q = %d, outside [1, 100]", word, w)
		}
	}
	if summary.Stats.Titles != 4 || summary.Stats.Successful != 1 {
		t.Errorf("stats = %+v", summary.Stats)
	}
	if !strings.Contains(out.String(), "Fetching https://news.example.com/, Status Code: 200") {
		t.Errorf("missing status line in output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Most common words: [(") {
		t.Errorf("missing summary line in output:\n%s", out.String())
	}
}

func TestRunTitleMode(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.CountMode = models.CountModeTitle
	cfg.URLs = []string{"https://news.example.com/"}
	f := &fakeFetcher{pages: map[string]string{"https://news.example.com/": fixtureHTML}}
	var out bytes.Buffer

	p := newTestPipeline(cfg, f, nil, &out)
	summary, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(summary.Top) != 1 {
		t.Fatalf("Top = %+v, want a single title", summary.Top)
	}
	if summary.Top[0].Word != "突发新闻标题内容" || summary.Top[0].Count != 2 {
		t.Errorf("Top[0] = %+v, want 突发新闻标题内容 x2", summary.Top[0])
	}
	if summary.Rendered {
		t.Error("summary marked rendered without a renderer")
	}
}

func TestRunAllSourcesFail(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.URLs = []string{"https://down.example.com/", "https://forbidden.example.com/"}
	f := &fakeFetcher{status: map[string]int{"https://forbidden.example.com/": http.StatusForbidden}}
	r := &fakeRenderer{}
	var out bytes.Buffer

	summary, err := newTestPipeline(cfg, f, r, &out).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v, want nil when every source fails", err)
	}
	if r.calls != 0 {
		t.Errorf("renderer called %d times, want 0", r.calls)
	}
	if summary.Rendered || len(summary.Top) != 0 || summary.Stats.Tokens != 0 {
		t.Errorf("summary = %+v, want empty", summary)
	}
	if summary.Stats.Failed != 2 {
		t.Errorf("Failed = %d, want 2", summary.Stats.Failed)
	}
	if got := []string{summary.Sources[0].ErrorType, summary.Sources[1].ErrorType}; got[0] != "fetch_error" || got[1] != "status_error" {
		t.Errorf("error types = %v", got)
	}
	if summary.Sources[1].StatusCode != http.StatusForbidden {
		t.Errorf("status code = %d, want 403", summary.Sources[1].StatusCode)
	}

	text := out.String()
	for _, want := range []string{
		"Failed to fetch https://down.example.com/",
		"Fetching https://forbidden.example.com/, Status Code: 403",
		"No words to generate word cloud.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.URLs = []string{"https://down.example.com/", "https://news.example.com/"}
	f := &fakeFetcher{pages: map[string]string{"https://news.example.com/": fixtureHTML}}

	summary, err := newTestPipeline(cfg, f, nil, &bytes.Buffer{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(f.calls) != 2 || f.calls[0] != "https://down.example.com/" {
		t.Errorf("fetch order = %v", f.calls)
	}
	if summary.Stats.Failed != 1 || summary.Stats.Successful != 1 || len(summary.Top) == 0 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestRunRenderError(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.URLs = []string{"https://news.example.com/"}
	f := &fakeFetcher{pages: map[string]string{"https://news.example.com/": fixtureHTML}}
	boom := errors.New("font missing")

	_, err := newTestPipeline(cfg, f, &fakeRenderer{err: boom}, &bytes.Buffer{}).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("Run() error = %v, want %v", err, boom)
	}
}

func TestRunTopNLimit(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Language = models.LanguageSpace
	cfg.TopN = 2
	cfg.URLs = []string{"https://en.example.com/"}
	html := `<a>storm warning issued</a><a>storm hits coast</a><a>coast guard warning</a><a>storm</a>`
	f := &fakeFetcher{pages: map[string]string{"https://en.example.com/": html}}

	summary, err := newTestPipeline(cfg, f, nil, &bytes.Buffer{}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(summary.Top) != 2 {
		t.Fatalf("Top = %+v, want 2 entries", summary.Top)
	}
	if summary.Top[0].Word != "storm" || summary.Top[0].Count != 3 {
		t.Errorf("Top[0] = %+v, want storm x3", summary.Top[0])
	}
	if summary.Top[1].Word != "warning" || summary.Top[1].Count != 2 {
		t.Errorf("Top[1] = %+v, want warning x2", summary.Top[1])
	}
	if summary.Stats.Tokens != 9 || summary.Stats.Distinct != 6 {
		t.Errorf("stats = %+v", summary.Stats)
	}
}

func TestRunVerbosePrintsTitles(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.Verbose = true
	cfg.URLs = []string{"https://news.example.com/"}
	f := &fakeFetcher{pages: map[string]string{"https://news.example.com/": fixtureHTML}}
	var out bytes.Buffer

	if _, err := newTestPipeline(cfg, f, nil, &out).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), `Titles from https://news.example.com/: ["上一个" "突发新闻标题内容"`) {
		t.Errorf("verbose output missing titles:\n%s", out.String())
	}
}

func TestCollectCanceled(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.URLs = []string{"https://a.example.com/", "https://b.example.com/"}
	f := &fakeFetcher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := newTestPipeline(cfg, f, nil, &bytes.Buffer{}).Collect(ctx)
	if len(f.calls) != 0 {
		t.Errorf("fetched %v after cancel", f.calls)
	}
	for _, r := range results {
		if !errors.Is(r.Error, context.Canceled) {
			t.Errorf("result error = %v, want context.Canceled", r.Error)
		}
	}
}
