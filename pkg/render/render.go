// Package render draws keyword weights as a word cloud image.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"github.com/dtnitsch/headline-cloud/models"
	"github.com/dtnitsch/headline-cloud/pkg/storage"
)

// Renderer turns a weight mapping into an image and returns where it was written.
type Renderer interface {
	Render(ctx context.Context, weights map[string]int) (string, error)
}

// Options describe the canvas.
type Options struct {
	Width       int
	Height      int
	MaxFontSize float64
	MinFontSize float64
	Background  color.Color
	// FontPath is read when FontData is empty.
	FontPath   string
	FontData   []byte
	OutputPath string
	Show       bool
}

// OptionsFromConfig copies the canvas settings out of cfg.
func OptionsFromConfig(cfg *models.Config) (Options, error) {
	bg, err := ParseHexColor(cfg.Background)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		MaxFontSize: cfg.MaxFontSize,
		MinFontSize: cfg.MinFontSize,
		Background:  bg,
		FontPath:    cfg.FontPath,
		OutputPath:  cfg.OutputPath,
		Show:        cfg.Show,
	}, nil
}

// CloudRenderer lays out words with fogleman/gg and saves a PNG.
type CloudRenderer struct {
	opts    Options
	store   *storage.Storage
	viewer  Viewer
	logger  *slog.Logger
	rng     *rand.Rand
	font    *truetype.Font
	lastOut []Placement
}

// NewCloudRenderer loads the font and returns a renderer. A missing or
// unreadable font is an error.
func NewCloudRenderer(opts Options, store *storage.Storage, viewer Viewer, logger *slog.Logger) (*CloudRenderer, error) {
	if store == nil {
		store = &storage.Storage{}
	}
	data := opts.FontData
	if len(data) == 0 {
		if !store.HasFile(opts.FontPath) {
			return nil, fmt.Errorf("font %s: %w", opts.FontPath, os.ErrNotExist)
		}
		var err error
		data, err = store.ReadFile(opts.FontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load font %s: %w", opts.FontPath, err)
		}
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", opts.FontPath, err)
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CloudRenderer{
		opts:   opts,
		store:  store,
		viewer: viewer,
		logger: logger,
		font:   f,
	}, nil
}

// WithRand fixes the random source used for placement and colours.
func (r *CloudRenderer) WithRand(rng *rand.Rand) *CloudRenderer {
	r.rng = rng
	return r
}

// Draw lays out weights on a fresh canvas and returns the context.
func (r *CloudRenderer) Draw(weights map[string]int) *gg.Context {
	dc := gg.NewContext(r.opts.Width, r.opts.Height)
	dc.SetColor(r.opts.Background)
	dc.Clear()

	faces := newFaceCache(r.font)
	placements := layout(weights, faces, r.opts.Width, r.opts.Height, r.opts.MaxFontSize, r.opts.MinFontSize, r.rng)
	for _, p := range placements {
		dc.SetFontFace(faces.face(p.Size))
		dc.SetColor(p.Color)
		dc.DrawStringAnchored(p.Word, p.X, p.Y, 0.5, 0.35)
	}
	if dropped := len(weights) - len(placements); dropped > 0 {
		r.logger.Warn("words did not fit on the canvas", "dropped", dropped)
	}
	r.lastOut = placements
	return dc
}

// Render draws the cloud, writes it to OutputPath and, when Show is set,
// opens it in the system viewer. A viewer failure is logged, not returned.
func (r *CloudRenderer) Render(ctx context.Context, weights map[string]int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dc := r.Draw(weights)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	if err := r.store.SaveFile(r.opts.OutputPath, buf.Bytes()); err != nil {
		return "", err
	}
	attrs := []any{"path", r.opts.OutputPath, "words", len(r.lastOut)}
	if stats, err := r.store.GetFileStats(r.opts.OutputPath); err == nil {
		attrs = append(attrs, "bytes", stats.SizeBytes)
	}
	r.logger.Info("word cloud saved", attrs...)

	if r.opts.Show && r.viewer != nil {
		if err := r.viewer.Open(ctx, r.opts.OutputPath); err != nil {
			r.logger.Warn("failed to open image viewer", "path", r.opts.OutputPath, "error", err)
		}
	}
	return r.opts.OutputPath, nil
}

// ParseHexColor parses #rgb or #rrggbb.
func ParseHexColor(s string) (color.Color, error) {
	var r, g, b uint8
	switch len(s) {
	case 7:
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return nil, fmt.Errorf("invalid colour %q: %w", s, err)
		}
	case 4:
		if _, err := fmt.Sscanf(s, "#%1x%1x%1x", &r, &g, &b); err != nil {
			return nil, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	default:
		return nil, fmt.Errorf("invalid colour %q", s)
	}
	return color.RGBA{r, g, b, 255}, nil
}
