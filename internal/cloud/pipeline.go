package cloud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/dtnitsch/headline-cloud/models"
	"github.com/dtnitsch/headline-cloud/pkg/analytics"
	"github.com/dtnitsch/headline-cloud/pkg/display"
	"github.com/dtnitsch/headline-cloud/pkg/extractor"
	"github.com/dtnitsch/headline-cloud/pkg/fetcher"
	"github.com/dtnitsch/headline-cloud/pkg/mapreduce"
	"github.com/dtnitsch/headline-cloud/pkg/render"
)

// previewLength is how much of each page is echoed in verbose mode.
const previewLength = 1000

// Pipeline runs fetch -> extract -> tokenize -> count -> weigh -> render
// over the configured sources, one source at a time.
type Pipeline struct {
	Config    *models.Config
	Fetcher   fetcher.PageFetcher
	Analytics *analytics.Analytics
	// Renderer may be nil, in which case the run stops after counting.
	Renderer render.Renderer
	Logger   *slog.Logger
	// Out receives the human readable diagnostics.
	Out  io.Writer
	Rand *rand.Rand
}

func (p *Pipeline) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

func (p *Pipeline) out() io.Writer {
	if p.Out == nil {
		return io.Discard
	}
	return p.Out
}

// Collect fetches every source in order and extracts its titles.
// Failures are recorded on the Result and never stop the loop.
func (p *Pipeline) Collect(ctx context.Context) []Result {
	sources := p.Config.AllSources()
	results := make([]Result, 0, len(sources))
	for _, src := range sources {
		if ctx.Err() != nil {
			results = append(results, Result{Source: src, Error: ctx.Err(), ErrorType: "canceled"})
			continue
		}
		results = append(results, p.collectOne(ctx, src))
	}
	return results
}

func (p *Pipeline) collectOne(ctx context.Context, src models.Source) Result {
	log := p.logger()
	out := p.out()
	result := Result{Source: src}

	log.Info("fetching source", "url", src.URL, "kind", src.Kind)
	page, err := p.Fetcher.Fetch(ctx, src.URL)
	if page != nil {
		result.StatusCode = page.StatusCode
		fmt.Fprintf(out, "Fetching %s, Status Code: %d\n", src.URL, page.StatusCode)
	}
	if err != nil {
		var statusErr *fetcher.StatusError
		if errors.As(err, &statusErr) {
			result.ErrorType = "status_error"
		} else {
			result.ErrorType = "fetch_error"
		}
		fmt.Fprintf(out, "Failed to fetch %s\n", src.URL)
		log.Warn("fetch failed", "url", src.URL, "error", err)
		result.Error = err
		return result
	}

	if p.Config.Verbose {
		fmt.Fprintln(out, extractor.Preview(page.Body, src.URL, previewLength))
	}

	titles, err := extractor.Titles(src.Kind, page.Body)
	if err != nil {
		log.Warn("extract failed", "url", src.URL, "error", err)
		result.Error = err
		result.ErrorType = "parse_error"
		return result
	}
	result.Titles = titles

	if p.Config.Verbose {
		fmt.Fprintf(out, "Titles from %s: %q\n", src.URL, titles)
	}
	log.Info("extracted titles", "url", src.URL, "count", len(titles))
	return result
}

// Count tokenizes the titles of every result and reduces them into one table.
func (p *Pipeline) Count(results []Result) *mapreduce.FrequencyTable {
	if p.Analytics == nil {
		p.Analytics = analytics.New(p.Config)
	}
	intermediate := make([]*mapreduce.FrequencyTable, 0, len(results))
	for _, r := range results {
		if len(r.Titles) == 0 {
			continue
		}
		intermediate = append(intermediate, mapreduce.Map(p.Analytics.Tokens(r.Titles)))
	}
	return mapreduce.Reduce(intermediate)
}

// Run executes the whole pipeline. Per-source failures and an empty table
// are not errors; only rendering failures and cancellation are returned.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	log := p.logger()
	out := p.out()

	results := p.Collect(ctx)
	table := p.Count(results)
	top := table.TopN(p.Config.TopN)

	summary := &Summary{
		Mode: p.Config.CountMode.String(),
		Top:  top,
	}
	summary.Stats.TotalSources = len(results)
	for _, r := range results {
		summary.Sources = append(summary.Sources, BuildSourceSummary(r))
		summary.Stats.Titles += len(r.Titles)
		if r.Error != nil {
			summary.Stats.Failed++
		} else {
			summary.Stats.Successful++
		}
	}
	summary.Stats.Tokens = table.Total()
	summary.Stats.Distinct = table.Len()

	fmt.Fprintf(out, "Most common words: %s\n", mapreduce.FormatKeywords(top))
	log.Info("counted tokens", "mode", summary.Mode, "tokens", table.Total(), "distinct", table.Len(), "top", mapreduce.TopKeywords(table, p.Config.TopN))

	if len(top) == 0 {
		fmt.Fprintln(out, "No words to generate word cloud.")
		log.Warn("nothing to render", "sources", len(results), "failed", summary.Stats.Failed)
		return summary, ctx.Err()
	}

	summary.Weights = display.Weights(top, p.Rand)
	if p.Renderer == nil {
		return summary, nil
	}

	path, err := p.Renderer.Render(ctx, summary.Weights)
	if err != nil {
		return summary, fmt.Errorf("failed to render word cloud: %w", err)
	}
	summary.ImagePath = path
	summary.Rendered = true
	return summary, nil
}
