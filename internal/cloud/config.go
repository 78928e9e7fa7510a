package cloud

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/headline-cloud/internal/common"
	"github.com/dtnitsch/headline-cloud/models"
	"github.com/urfave/cli/v2"
)

// NewLogger returns the JSON logger used by every command. --quiet keeps
// errors only, --verbose adds debug output.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	} else if c.Bool("verbose") {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: logLevel}))
}

// BuildConfig layers defaults, the config file, .env/environment and flags.
func BuildConfig(c *cli.Context, logger *slog.Logger) (*models.Config, error) {
	path := c.String("config")
	explicit := c.IsSet("config")
	if path == "" {
		path = models.DefaultConfigFile
	}

	cfg, err := models.LoadConfig(path)
	switch {
	case errors.Is(err, models.ErrConfigNotFound) && !explicit:
		logger.Debug("no config file, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	default:
		logger.Debug("loaded config file", "path", path)
	}

	if err := models.LoadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}
	applyFlags(c, cfg)

	cfg.ApplyDefaultSources()
	valid, invalid := common.SanitizeSources(cfg.AllSources())
	for _, raw := range invalid {
		logger.Warn("skipping invalid URL", "url", raw)
	}
	if len(valid) == 0 {
		return nil, models.ErrNoSources
	}
	cfg.Sources, cfg.URLs, cfg.Feeds = valid, nil, nil

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies every flag the user set onto cfg. Flags that do not
// exist on the current command are never set, so one function serves all
// commands.
func applyFlags(c *cli.Context, cfg *models.Config) {
	if c.IsSet("urls") || c.IsSet("feeds") {
		// explicit sources replace whatever the file listed
		cfg.Sources = nil
		cfg.URLs = models.SplitList(c.String("urls"))
		cfg.Feeds = models.SplitList(c.String("feeds"))
	}
	if c.IsSet("by-title") {
		if c.Bool("by-title") {
			cfg.CountMode = models.CountModeTitle
		} else {
			cfg.CountMode = models.CountModeWord
		}
	}
	if c.IsSet("top") {
		cfg.TopN = c.Int("top")
	}
	if c.IsSet("language") {
		cfg.Language = models.Language(c.String("language"))
	}
	if c.IsSet("stop-words") {
		cfg.ExtraStopWords = append(cfg.ExtraStopWords, models.SplitList(c.String("stop-words"))...)
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("cache-dir") {
		cfg.CacheDir = c.String("cache-dir")
	}
	if c.IsSet("cache-ttl") {
		cfg.CacheTTL = c.Duration("cache-ttl")
	}
	if c.IsSet("user-agent") {
		cfg.UserAgent = c.String("user-agent")
	}
	if c.IsSet("output") {
		cfg.OutputPath = c.String("output")
	}
	if c.IsSet("font") {
		cfg.FontPath = c.String("font")
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("max-font-size") {
		cfg.MaxFontSize = c.Float64("max-font-size")
	}
	if c.IsSet("background") {
		cfg.Background = c.String("background")
	}
	if c.IsSet("no-show") {
		cfg.Show = !c.Bool("no-show")
	}
	if c.IsSet("verbose") {
		cfg.Verbose = c.Bool("verbose")
	}
}
