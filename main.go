package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/headline-cloud/internal/cloud"
	"github.com/urfave/cli/v2"
)

var version = "dev"

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "urls", Aliases: []string{"u"}, Usage: "comma separated listing pages to read anchors from"},
		&cli.StringFlag{Name: "feeds", Usage: "comma separated RSS/Atom/JSON feeds to read item titles from"},
		&cli.StringFlag{Name: "user-agent", Usage: "User-Agent header sent with every request"},
		&cli.DurationFlag{Name: "timeout", Usage: "per request timeout (0 keeps the transport default)"},
		&cli.StringFlag{Name: "cache-dir", Usage: "cache fetched pages in this directory"},
		&cli.DurationFlag{Name: "cache-ttl", Usage: "how long cached pages stay fresh"},
	}
}

func countFlags() []cli.Flag {
	return append(sourceFlags(),
		&cli.BoolFlag{Name: "by-title", Usage: "count whole titles instead of words"},
		&cli.IntFlag{Name: "top", Aliases: []string{"n"}, Usage: "number of most common words to keep"},
		&cli.StringFlag{Name: "language", Usage: "word splitting: zh, auto or space"},
		&cli.StringFlag{Name: "stop-words", Usage: "comma separated words to ignore in addition to the defaults"},
		&cli.StringFlag{Name: "summary", Usage: "also write the run summary as YAML to this path"},
	)
}

func main() {
	app := &cli.App{
		Name:    "headline-cloud",
		Usage:   "count the words in news headlines and draw them as a word cloud",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML config file (default config.yaml if present)"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "print page previews and extracted titles"},
			&cli.BoolFlag{Name: "json", Usage: "print the run summary as JSON on stdout"},
		},
		DefaultCommand: "cloud",
		Commands: []*cli.Command{
			{
				Name:  "cloud",
				Usage: "fetch, count and render the word cloud",
				Flags: append(countFlags(),
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "PNG file to write"},
					&cli.StringFlag{Name: "font", Usage: "TrueType font able to render the headline script"},
					&cli.IntFlag{Name: "width", Usage: "canvas width in pixels"},
					&cli.IntFlag{Name: "height", Usage: "canvas height in pixels"},
					&cli.Float64Flag{Name: "max-font-size", Usage: "largest font size in points"},
					&cli.StringFlag{Name: "background", Usage: "background colour as #rrggbb"},
					&cli.BoolFlag{Name: "no-show", Usage: "save the image without opening a viewer"},
				),
				Action: cloud.CloudAction,
			},
			{
				Name:   "count",
				Usage:  "fetch and print the most common words without rendering",
				Flags:  countFlags(),
				Action: cloud.CountAction,
			},
			{
				Name:   "titles",
				Usage:  "print the cleaned headline candidates of every source",
				Flags:  sourceFlags(),
				Action: cloud.TitlesAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
