package scraper

import (
	"context"
	"fmt"
	"log/slog"

	"draftpulse/internal/config"
	"draftpulse/internal/exporter"
	"draftpulse/internal/infrastructure"
)

// ProgressFunc receives scrape progress as a fraction in [0, 1] plus a
// human-readable message.
type ProgressFunc func(fraction float64, message string)

// Runner walks a year range and caches each year's draft and All-Pro tables
// as raw CSVs. Years whose files already exist are skipped, so an aborted
// run resumes where it left off.
type Runner struct {
	client   *Client
	writer   *exporter.CSVWriter
	paths    *config.Paths
	metrics  *infrastructure.PipelineMetrics
	logger   *slog.Logger
	progress ProgressFunc
}

// NewRunner creates a scrape runner. metrics and progress may be nil.
func NewRunner(client *Client, paths *config.Paths, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		client:  client,
		writer:  exporter.NewCSVWriter(logger),
		paths:   paths,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "scrape_runner")),
	}
}

// SetProgress registers a progress callback.
func (r *Runner) SetProgress(fn ProgressFunc) {
	r.progress = fn
}

// Run scrapes every year in [from, to]. Each year needs up to two fetches:
// one draft page and one All-Pro page.
func (r *Runner) Run(ctx context.Context, from, to int) error {
	if from > to {
		return fmt.Errorf("invalid year range %d-%d", from, to)
	}

	total := float64(to-from+1) * 2
	done := 0.0
	step := func(msg string) {
		done++
		if r.progress != nil {
			r.progress(done/total, msg)
		}
	}

	for year := from; year <= to; year++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := r.scrapeDraftYear(ctx, year); err != nil {
			return fmt.Errorf("draft %d: %w", year, err)
		}
		step(fmt.Sprintf("draft %d done", year))

		if err := r.scrapeAllProYear(ctx, year); err != nil {
			return fmt.Errorf("allpro %d: %w", year, err)
		}
		step(fmt.Sprintf("allpro %d done", year))
	}

	r.logger.InfoContext(ctx, "scraping complete",
		slog.Int("from", from),
		slog.Int("to", to))
	return nil
}

func (r *Runner) scrapeDraftYear(ctx context.Context, year int) error {
	path := r.paths.RawDraftCSV(year)
	if config.FileExists(path) {
		r.logger.DebugContext(ctx, "draft year already cached", slog.Int("year", year))
		r.countCacheHit(ctx)
		return nil
	}

	r.logger.InfoContext(ctx, "scraping draft class", slog.Int("year", year))
	records, err := r.client.DraftClass(ctx, year)
	if err != nil {
		return err
	}
	r.countRequest(ctx)

	return r.writeRaw(path, config.RawDraftHeaders, records)
}

func (r *Runner) scrapeAllProYear(ctx context.Context, year int) error {
	path := r.paths.RawAllProCSV(year)
	if config.FileExists(path) {
		r.logger.DebugContext(ctx, "all-pro year already cached", slog.Int("year", year))
		r.countCacheHit(ctx)
		return nil
	}

	r.logger.InfoContext(ctx, "scraping all-pro team", slog.Int("year", year))
	records, err := r.client.AllProTeam(ctx, year)
	if err != nil {
		return err
	}
	r.countRequest(ctx)

	return r.writeRaw(path, config.RawAllProHeaders, records)
}

// writeRaw streams one scraped table into its raw cache file.
func (r *Runner) writeRaw(path string, headers []string, records [][]string) error {
	sw, err := r.writer.CreateStreamWriter(path, headers)
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := sw.Write(record); err != nil {
			sw.Close()
			return err
		}
	}
	return sw.Close()
}

func (r *Runner) countRequest(ctx context.Context) {
	if r.metrics != nil {
		r.metrics.ScrapeRequestsTotal.Add(ctx, 1)
	}
}

func (r *Runner) countCacheHit(ctx context.Context) {
	if r.metrics != nil {
		r.metrics.ScrapeCacheHits.Add(ctx, 1)
	}
}
