// Command processor turns the raw scraped CSVs into the analysis datasets:
// cleaned draft and All-Pro tables, the merged cohort with the is_allpro
// flag, and the per-round and per-position hit-rate aggregates.
//
// With -excel it instead imports an already-combined draft workbook, for
// datasets assembled by hand rather than scraped.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"draftpulse/internal/analytics"
	"draftpulse/internal/config"
	"draftpulse/internal/dataprocessing"
	"draftpulse/internal/exporter"
	"draftpulse/internal/infrastructure"
)

func main() {
	excelPath := flag.String("excel", "", "import a combined draft workbook instead of cleaning raw CSVs")
	baseDir := flag.String("dir", "", "base directory for data files (defaults to DRAFTPULSE_BASE_DIR or cwd)")
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

	var paths *config.Paths
	if *baseDir != "" {
		paths = config.NewPaths(*baseDir)
	} else if paths, err = config.GetPaths(); err != nil {
		logger.Error("failed to resolve paths", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("failed to create directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := infrastructure.EnsureTraceID(context.Background())

	if err := run(ctx, cfg, paths, *excelPath, logger); err != nil {
		logger.ErrorContext(ctx, "processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, paths *config.Paths, excelPath string, logger *slog.Logger) error {
	writer := exporter.NewCSVWriter(logger)

	var cohort []dataprocessing.CohortPlayer
	if excelPath != "" {
		players, err := dataprocessing.LoadCombinedWorkbook(excelPath, logger)
		if err != nil {
			return fmt.Errorf("failed to import workbook: %w", err)
		}
		cohort = dataprocessing.FilterCohort(players, cfg.Analysis.CohortStart, cfg.Analysis.CohortEnd)
	} else {
		cleaner := dataprocessing.NewCleaner(logger)

		picks, err := cleaner.CleanDraft(paths.RawDir)
		if err != nil {
			return fmt.Errorf("failed to clean draft data: %w", err)
		}
		if err := writer.WriteDraftPicks(paths.DraftCleanedCSV(), picks); err != nil {
			return err
		}
		logger.InfoContext(ctx, "draft data cleaned", slog.Int("picks", len(picks)))

		selections, err := cleaner.CleanAllPro(paths.RawDir)
		if err != nil {
			return fmt.Errorf("failed to clean all-pro data: %w", err)
		}
		if err := writer.WriteAllProSelections(paths.AllProCleanedCSV(), selections); err != nil {
			return err
		}
		logger.InfoContext(ctx, "all-pro data cleaned", slog.Int("selections", len(selections)))

		merged := dataprocessing.Merge(picks, selections)
		cohort = dataprocessing.FilterCohort(merged, cfg.Analysis.CohortStart, cfg.Analysis.CohortEnd)

		for _, issue := range dataprocessing.ValidateKnownAllPros(logger, cohort) {
			logger.WarnContext(ctx, "validation issue",
				slog.String("player", issue.Name),
				slog.Int("draft_year", issue.DraftYear),
				slog.String("reason", issue.Reason))
		}
	}

	if err := writer.WriteMergedDataset(paths.MergedCSV(), cohort); err != nil {
		return err
	}
	logger.InfoContext(ctx, "merged dataset written",
		slog.Int("players", len(cohort)),
		slog.String("path", paths.MergedCSV()))

	byRound := analytics.HitRatesByRound(cohort)
	if err := writer.WriteRoundHitRates(paths.HitRateByRoundCSV(), byRound); err != nil {
		return err
	}

	byPosition := analytics.HitRatesByPosition(cohort, cfg.Analysis.MinPlayers)
	if err := writer.WritePositionHitRates(paths.HitRateByPositionCSV(), byPosition); err != nil {
		return err
	}

	logger.InfoContext(ctx, "aggregates written",
		slog.Int("rounds", len(byRound)),
		slog.Int("positions", len(byPosition)))
	return nil
}
