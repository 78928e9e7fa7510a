package cloud

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dtnitsch/headline-cloud/internal/common"
	"github.com/dtnitsch/headline-cloud/models"
	"github.com/dtnitsch/headline-cloud/pkg/analytics"
	"github.com/dtnitsch/headline-cloud/pkg/caching"
	"github.com/dtnitsch/headline-cloud/pkg/fetcher"
	"github.com/dtnitsch/headline-cloud/pkg/mapreduce"
	"github.com/dtnitsch/headline-cloud/pkg/render"
	"github.com/dtnitsch/headline-cloud/pkg/storage"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// CloudAction runs the full pipeline and renders the word cloud.
func CloudAction(c *cli.Context) error {
	return runAction(c, true)
}

// CountAction runs the pipeline up to top-N selection and prints the list.
func CountAction(c *cli.Context) error {
	return runAction(c, false)
}

// TitlesAction prints the cleaned titles of every source, one per line.
func TitlesAction(c *cli.Context) error {
	logger := NewLogger(c)
	cfg, err := BuildConfig(c, logger)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	p := &Pipeline{
		Config:  cfg,
		Fetcher: NewPageFetcher(cfg, logger),
		Logger:  logger,
		Out:     c.App.ErrWriter,
	}
	out := c.App.Writer
	for _, r := range p.Collect(ctx) {
		for _, title := range r.Titles {
			if cleaned := analytics.CleanTitle(title); cleaned != "" {
				fmt.Fprintln(out, cleaned)
			}
		}
	}
	return ctx.Err()
}

func runAction(c *cli.Context, draw bool) error {
	logger := NewLogger(c)
	cfg, err := BuildConfig(c, logger)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	asJSON := c.Bool("json")
	diag := c.App.Writer
	if asJSON {
		// keep stdout clean for the JSON document
		diag = c.App.ErrWriter
	}

	store := &storage.Storage{}
	p := &Pipeline{
		Config:    cfg,
		Fetcher:   NewPageFetcher(cfg, logger),
		Analytics: analytics.New(cfg),
		Logger:    logger,
		Out:       diag,
	}
	if draw {
		opts, err := render.OptionsFromConfig(cfg)
		if err != nil {
			return err
		}
		renderer, err := render.NewCloudRenderer(opts, store, render.SystemViewer{}, logger)
		if err != nil {
			return err
		}
		p.Renderer = renderer
	}

	summary, runErr := p.Run(ctx)
	if summary != nil {
		if !draw {
			mapreduce.PrintTopKeywords(diag, summary.Top)
		}
		if err := writeSummary(c, summary, store, asJSON, logger); err != nil {
			return err
		}
	}
	return runErr
}

// NewPageFetcher builds the HTTP fetcher, wrapped in the page cache when a
// cache directory is configured.
func NewPageFetcher(cfg *models.Config, logger *slog.Logger) fetcher.PageFetcher {
	var opts []fetcher.Option
	if cfg.Timeout > 0 {
		opts = append(opts, fetcher.WithTimeout(cfg.Timeout))
	}
	var f fetcher.PageFetcher = fetcher.NewFetcher(cfg.UserAgent, opts...)
	if cfg.CacheDir == "" || cfg.CacheTTL <= 0 {
		return f
	}
	cache, err := caching.NewCache(cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		logger.Warn("page cache disabled", "dir", cfg.CacheDir, "error", err)
		return f
	}
	return &caching.Fetcher{Cache: cache, Next: f, Logger: logger}
}

func writeSummary(c *cli.Context, summary *Summary, store *storage.Storage, asJSON bool, logger *slog.Logger) error {
	if asJSON {
		if err := encodeJSON(c.App.Writer, summary); err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
	}
	path := c.String("summary")
	if path == "" {
		return nil
	}
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := store.SaveFile(path, data); err != nil {
		return err
	}
	logger.Info("summary saved", "path", path, "hash", common.ContentHash(data))
	return nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
