package operations

import (
	"context"
	"fmt"
	"log/slog"

	"draftpulse/internal/analytics"
	"draftpulse/internal/config"
	"draftpulse/internal/dataprocessing"
	"draftpulse/internal/exporter"
	"draftpulse/internal/infrastructure"
	"draftpulse/internal/scraper"
)

// Step IDs, in pipeline order.
const (
	StepIDScrape  = "scrape"
	StepIDClean   = "clean"
	StepIDMerge   = "merge"
	StepIDAnalyze = "analyze"
)

// ScrapeStep downloads the raw draft and All-Pro pages for the configured
// year range. Years already cached on disk are skipped by the runner.
type ScrapeStep struct {
	runner   *scraper.Runner
	fromYear int
	toYear   int
}

// NewScrapeStep creates the scrape step.
func NewScrapeStep(runner *scraper.Runner, cfg config.ScraperConfig) *ScrapeStep {
	return &ScrapeStep{runner: runner, fromYear: cfg.FromYear, toYear: cfg.ToYear}
}

func (s *ScrapeStep) ID() string   { return StepIDScrape }
func (s *ScrapeStep) Name() string { return "Scrape draft and All-Pro pages" }

func (s *ScrapeStep) Validate(state *OperationState) error {
	if s.fromYear > s.toYear {
		return fmt.Errorf("invalid scrape range %d-%d", s.fromYear, s.toYear)
	}
	return nil
}

func (s *ScrapeStep) Execute(ctx context.Context, state *OperationState) error {
	stepState := state.Step(StepIDScrape)
	s.runner.SetProgress(func(fraction float64, message string) {
		stepState.UpdateProgress(fraction, message)
	})
	return s.runner.Run(ctx, s.fromYear, s.toYear)
}

// CleanStep normalizes the raw CSVs into the cleaned draft and All-Pro
// datasets.
type CleanStep struct {
	cleaner *dataprocessing.Cleaner
	writer  *exporter.CSVWriter
	paths   *config.Paths
}

// NewCleanStep creates the clean step.
func NewCleanStep(paths *config.Paths, logger *slog.Logger) *CleanStep {
	return &CleanStep{
		cleaner: dataprocessing.NewCleaner(logger),
		writer:  exporter.NewCSVWriter(logger),
		paths:   paths,
	}
}

func (s *CleanStep) ID() string   { return StepIDClean }
func (s *CleanStep) Name() string { return "Clean raw datasets" }

func (s *CleanStep) Validate(state *OperationState) error {
	if !config.FileExists(s.paths.RawDir) {
		return fmt.Errorf("raw data directory %s does not exist", s.paths.RawDir)
	}
	return nil
}

func (s *CleanStep) Execute(ctx context.Context, state *OperationState) error {
	stepState := state.Step(StepIDClean)

	stepState.UpdateProgress(0.1, "cleaning draft picks")
	picks, err := s.cleaner.CleanDraft(s.paths.RawDir)
	if err != nil {
		return err
	}
	if err := s.writer.WriteDraftPicks(s.paths.DraftCleanedCSV(), picks); err != nil {
		return err
	}

	stepState.UpdateProgress(0.6, "cleaning all-pro selections")
	selections, err := s.cleaner.CleanAllPro(s.paths.RawDir)
	if err != nil {
		return err
	}
	return s.writer.WriteAllProSelections(s.paths.AllProCleanedCSV(), selections)
}

// MergeStep joins the cleaned datasets into the cohort table with the
// is_allpro flag, restricted to the analysis cohort years.
type MergeStep struct {
	cleaner *dataprocessing.Cleaner
	writer  *exporter.CSVWriter
	paths   *config.Paths
	cfg     config.AnalysisConfig
	metrics *infrastructure.PipelineMetrics
	logger  *slog.Logger
}

// NewMergeStep creates the merge step. metrics may be nil.
func NewMergeStep(paths *config.Paths, cfg config.AnalysisConfig, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *MergeStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &MergeStep{
		cleaner: dataprocessing.NewCleaner(logger),
		writer:  exporter.NewCSVWriter(logger),
		paths:   paths,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
	}
}

func (s *MergeStep) ID() string   { return StepIDMerge }
func (s *MergeStep) Name() string { return "Merge draft and All-Pro datasets" }

func (s *MergeStep) Validate(state *OperationState) error {
	if !config.FileExists(s.paths.RawDir) {
		return fmt.Errorf("raw data directory %s does not exist", s.paths.RawDir)
	}
	return nil
}

func (s *MergeStep) Execute(ctx context.Context, state *OperationState) error {
	stepState := state.Step(StepIDMerge)

	// Re-clean from raw rather than re-parsing the cleaned CSVs; cleaning is
	// cheap and this keeps the merge independent of the clean step's files.
	picks, err := s.cleaner.CleanDraft(s.paths.RawDir)
	if err != nil {
		return err
	}
	selections, err := s.cleaner.CleanAllPro(s.paths.RawDir)
	if err != nil {
		return err
	}

	stepState.UpdateProgress(0.5, "joining datasets")
	players := dataprocessing.Merge(picks, selections)
	cohort := dataprocessing.FilterCohort(players, s.cfg.CohortStart, s.cfg.CohortEnd)
	if s.metrics != nil {
		s.metrics.RowsProcessed.Add(ctx, int64(len(cohort)))
	}

	for _, issue := range dataprocessing.ValidateKnownAllPros(s.logger, cohort) {
		s.logger.WarnContext(ctx, "merge validation issue",
			slog.String("player", issue.Name),
			slog.Int("draft_year", issue.DraftYear),
			slog.String("reason", issue.Reason))
	}

	return s.writer.WriteMergedDataset(s.paths.MergedCSV(), cohort)
}

// AnalyzeStep computes the aggregate hit-rate tables from the merged dataset
// and writes them as CSVs.
type AnalyzeStep struct {
	writer *exporter.CSVWriter
	paths  *config.Paths
	cfg    config.AnalysisConfig
}

// NewAnalyzeStep creates the analyze step.
func NewAnalyzeStep(paths *config.Paths, cfg config.AnalysisConfig, logger *slog.Logger) *AnalyzeStep {
	return &AnalyzeStep{
		writer: exporter.NewCSVWriter(logger),
		paths:  paths,
		cfg:    cfg,
	}
}

func (s *AnalyzeStep) ID() string   { return StepIDAnalyze }
func (s *AnalyzeStep) Name() string { return "Compute hit-rate aggregates" }

func (s *AnalyzeStep) Validate(state *OperationState) error {
	if !config.FileExists(s.paths.MergedCSV()) {
		return fmt.Errorf("merged dataset %s does not exist", s.paths.MergedCSV())
	}
	return nil
}

func (s *AnalyzeStep) Execute(ctx context.Context, state *OperationState) error {
	stepState := state.Step(StepIDAnalyze)

	players, err := dataprocessing.LoadMergedDataset(s.paths.MergedCSV())
	if err != nil {
		return err
	}

	stepState.UpdateProgress(0.3, "hit rates by round")
	byRound := analytics.HitRatesByRound(players)
	if err := s.writer.WriteRoundHitRates(s.paths.HitRateByRoundCSV(), byRound); err != nil {
		return err
	}

	stepState.UpdateProgress(0.7, "hit rates by position")
	byPosition := analytics.HitRatesByPosition(players, s.cfg.MinPlayers)
	return s.writer.WritePositionHitRates(s.paths.HitRateByPositionCSV(), byPosition)
}
