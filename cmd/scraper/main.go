// Command scraper downloads NFL draft and All-Pro tables from Pro Football
// Reference and caches each year as a raw CSV. Years that are already cached
// are skipped, so the command can be re-run after interruptions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"draftpulse/internal/config"
	"draftpulse/internal/infrastructure"
	"draftpulse/internal/scraper"
)

func main() {
	fromYear := flag.Int("from", 0, "first year to scrape (defaults to config)")
	toYear := flag.Int("to", 0, "last year to scrape (defaults to config)")
	outDir := flag.String("out", "", "base directory for data files (defaults to DRAFTPULSE_BASE_DIR or cwd)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	paths, err := resolvePaths(*outDir)
	if err != nil {
		logger.Error("failed to resolve paths", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("failed to create directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	from := cfg.Scraper.FromYear
	if *fromYear > 0 {
		from = *fromYear
	}
	to := cfg.Scraper.ToYear
	if *toYear > 0 {
		to = *toYear
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = infrastructure.EnsureTraceID(ctx)

	client := scraper.NewClient(cfg.Scraper, logger)
	runner := scraper.NewRunner(client, paths, nil, logger)
	runner.SetProgress(func(fraction float64, message string) {
		logger.InfoContext(ctx, "scrape progress",
			slog.String("message", message),
			slog.Float64("fraction", fraction))
	})

	logger.InfoContext(ctx, "starting scrape",
		slog.Int("from", from),
		slog.Int("to", to),
		slog.String("raw_dir", paths.RawDir))

	if err := runner.Run(ctx, from, to); err != nil {
		logger.ErrorContext(ctx, "scrape failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func resolvePaths(outDir string) (*config.Paths, error) {
	if outDir != "" {
		return config.NewPaths(outDir), nil
	}
	return config.GetPaths()
}
