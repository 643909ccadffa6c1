package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"draftpulse/internal/analytics"
	"draftpulse/internal/config"
	"draftpulse/internal/dataprocessing"
	"draftpulse/internal/errors"
)

// FilterParams narrows the cohort before an aggregation runs. Zero values
// mean no filtering on that dimension.
type FilterParams struct {
	YearMin   int      `validate:"omitempty,min=1990,max=2100"`
	YearMax   int      `validate:"omitempty,min=1990,max=2100"`
	Rounds    []int    `validate:"omitempty,dive,min=1,max=7"`
	Positions []string `validate:"omitempty,dive,alpha,max=3"`

	// MinPlayers overrides the configured per-position sample floor.
	MinPlayers int `validate:"omitempty,min=1,max=10000"`
}

// DataService serves analytics computed from the merged cohort dataset. The
// dataset is cached in memory and reloaded when the file's mtime changes.
type DataService struct {
	paths    *config.Paths
	cfg      config.AnalysisConfig
	validate *validator.Validate
	logger   *slog.Logger

	mu       sync.RWMutex
	players  []dataprocessing.CohortPlayer
	loadedAt time.Time
	fileMod  time.Time
}

// NewDataService creates a data service.
func NewDataService(paths *config.Paths, cfg config.AnalysisConfig, logger *slog.Logger) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataService{
		paths:    paths,
		cfg:      cfg,
		validate: validator.New(),
		logger:   logger.With(slog.String("service", "data")),
	}
}

// Invalidate drops the cached dataset so the next read reloads from disk.
func (s *DataService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = nil
	s.fileMod = time.Time{}
}

// load returns the cached cohort, reloading the merged CSV when it changed
// on disk since the last load.
func (s *DataService) load(ctx context.Context) ([]dataprocessing.CohortPlayer, error) {
	path := s.paths.MergedCSV()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrDatasetNotFound
		}
		return nil, fmt.Errorf("failed to stat merged dataset: %w", err)
	}

	s.mu.RLock()
	cached := s.players
	fresh := cached != nil && info.ModTime().Equal(s.fileMod)
	s.mu.RUnlock()
	if fresh {
		return cached, nil
	}

	players, err := dataprocessing.LoadMergedDataset(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load merged dataset: %w", err)
	}

	s.mu.Lock()
	s.players = players
	s.fileMod = info.ModTime()
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "merged dataset loaded",
		slog.Int("players", len(players)),
		slog.Time("file_mtime", info.ModTime()))
	return players, nil
}

// cohort loads the dataset and applies the filters.
func (s *DataService) cohort(ctx context.Context, params FilterParams) ([]dataprocessing.CohortPlayer, error) {
	if err := s.validate.Struct(params); err != nil {
		var fieldErrs validator.ValidationErrors
		if stderrors.As(err, &fieldErrs) {
			fields := make([]errors.ValidationError, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				fields = append(fields, errors.ValidationError{
					Field:   fe.Field(),
					Message: fmt.Sprintf("failed %q validation", fe.Tag()),
				})
			}
			return nil, errors.ErrValidationMultiple(fields)
		}
		return nil, errors.New(http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
	}
	if params.YearMin > 0 && params.YearMax > 0 && params.YearMin > params.YearMax {
		return nil, errors.New(http.StatusBadRequest, "INVALID_PARAMETER", "year_min is after year_max")
	}

	players, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return applyFilters(players, params), nil
}

func applyFilters(players []dataprocessing.CohortPlayer, params FilterParams) []dataprocessing.CohortPlayer {
	positions := make([]string, 0, len(params.Positions))
	for _, p := range params.Positions {
		positions = append(positions, strings.ToUpper(p))
	}

	filtered := make([]dataprocessing.CohortPlayer, 0, len(players))
	for _, p := range players {
		if params.YearMin > 0 && p.Year < params.YearMin {
			continue
		}
		if params.YearMax > 0 && p.Year > params.YearMax {
			continue
		}
		if len(params.Rounds) > 0 && !slices.Contains(params.Rounds, p.Round) {
			continue
		}
		if len(positions) > 0 && !slices.Contains(positions, p.Position) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func (s *DataService) minPlayers(params FilterParams) int {
	if params.MinPlayers > 0 {
		return params.MinPlayers
	}
	return s.cfg.MinPlayers
}

// Summary returns the KPI strip for the filtered cohort.
func (s *DataService) Summary(ctx context.Context, params FilterParams) (analytics.Summary, error) {
	players, err := s.cohort(ctx, params)
	if err != nil {
		return analytics.Summary{}, err
	}
	return analytics.Summarize(players, s.minPlayers(params)), nil
}

// HitRatesByRound returns per-round hit rates for the filtered cohort.
func (s *DataService) HitRatesByRound(ctx context.Context, params FilterParams) ([]analytics.RoundHitRate, error) {
	players, err := s.cohort(ctx, params)
	if err != nil {
		return nil, err
	}
	return analytics.HitRatesByRound(players), nil
}

// HitRatesByPosition returns per-position hit rates for the filtered cohort.
func (s *DataService) HitRatesByPosition(ctx context.Context, params FilterParams) ([]analytics.PositionHitRate, error) {
	players, err := s.cohort(ctx, params)
	if err != nil {
		return nil, err
	}
	return analytics.HitRatesByPosition(players, s.minPlayers(params)), nil
}

// Heatmap returns the position by round hit-rate pivot.
func (s *DataService) Heatmap(ctx context.Context, params FilterParams) (analytics.Heatmap, error) {
	players, err := s.cohort(ctx, params)
	if err != nil {
		return analytics.Heatmap{}, err
	}
	return analytics.HeatmapByPositionRound(players, s.cfg.HeatmapMinCell), nil
}

// HitRatesByPick returns per-pick hit rates with the rolling mean applied.
func (s *DataService) HitRatesByPick(ctx context.Context, params FilterParams) ([]analytics.PickHitRate, error) {
	players, err := s.cohort(ctx, params)
	if err != nil {
		return nil, err
	}
	return analytics.HitRateByPick(players, s.cfg.RollingWindow), nil
}

// ValueTable returns the mid-round value comparison per position.
func (s *DataService) ValueTable(ctx context.Context, params FilterParams) ([]analytics.ValueTableRow, error) {
	players, err := s.cohort(ctx, params)
	if err != nil {
		return nil, err
	}
	return analytics.ValueTable(players, s.cfg.ValueTableR1Min, s.cfg.ValueTableR35Min), nil
}

// Players returns the filtered cohort rows for the data table view.
func (s *DataService) Players(ctx context.Context, params FilterParams) ([]dataprocessing.CohortPlayer, error) {
	return s.cohort(ctx, params)
}
