// Package main
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"ingest/packages/config"
	"ingest/packages/db"
	"ingest/packages/fetcher"
	"ingest/packages/logging"
	"ingest/packages/metrics"
	"ingest/packages/pipeline"
)

func main() {
	app := &cli.App{
		Name:  "ingest",
		Usage: "scrape product pages and add them to the catalog",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "ingest one or more product URLs",
				ArgsUsage: "<url1> <url2> ... | --file urls.txt",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "file",
						Usage: "newline-delimited URL list, '#' lines ignored",
					},
				},
				Action: runAction,
			},
		},
		Action: func(c *cli.Context) error {
			cli.ShowAppHelp(c)
			return cli.Exit("", 1)
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func runAction(c *cli.Context) error {
	urls, err := resolveURLs(c)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return cli.Exit("Error: "+err.Error(), 1)
	}
	logging.Setup(cfg, "ingest")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var seen *db.SeenCache
	if cfg.RedisAddr != "" {
		seen = db.NewSeenCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SeenKeyPrefix, cfg.SeenTTL)
		defer seen.Close()
	}

	storage, err := db.New(ctx, cfg.DatabaseURL, seen)
	if err != nil {
		slog.Error("Failed to initialize catalog store", "error", err)
		return cli.Exit("", 1)
	}
	defer storage.Close()

	if cfg.MetricsAddr != "" {
		go metrics.ExposeMetrics(cfg.MetricsAddr)
	}

	runner := pipeline.New(storage, fetcher.New(cfg.FetchTimeout), cfg.RequestDelay)
	summary := runner.Run(ctx, urls)
	fmt.Printf("Summary: %s\n", summary)

	// Per-URL outcomes are informational; the process exits zero once
	// the batch has been processed.
	return nil
}

func resolveURLs(c *cli.Context) ([]string, error) {
	var urls []string

	if file := c.String("file"); file != "" {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, cli.Exit("Error reading file "+file+": "+err.Error(), 1)
		}
		urls = parseURLFile(string(content))
	} else {
		urls = c.Args().Slice()
	}

	if len(urls) == 0 {
		cli.ShowSubcommandHelp(c)
		return nil, cli.Exit("Error: no URLs provided", 1)
	}
	return urls, nil
}

// parseURLFile returns the non-blank, non-comment lines of a URL list.
func parseURLFile(content string) []string {
	var urls []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls
}
