package http

import (
	"context"

	"draftpulse/internal/analytics"
	"draftpulse/internal/dataprocessing"
	"draftpulse/internal/operations"
	"draftpulse/internal/services"
)

// DataServiceInterface is what the data handler needs from the analytics
// layer. Tests substitute a stub.
type DataServiceInterface interface {
	Summary(ctx context.Context, params services.FilterParams) (analytics.Summary, error)
	HitRatesByRound(ctx context.Context, params services.FilterParams) ([]analytics.RoundHitRate, error)
	HitRatesByPosition(ctx context.Context, params services.FilterParams) ([]analytics.PositionHitRate, error)
	Heatmap(ctx context.Context, params services.FilterParams) (analytics.Heatmap, error)
	HitRatesByPick(ctx context.Context, params services.FilterParams) ([]analytics.PickHitRate, error)
	ValueTable(ctx context.Context, params services.FilterParams) ([]analytics.ValueTableRow, error)
	Players(ctx context.Context, params services.FilterParams) ([]dataprocessing.CohortPlayer, error)
}

// OperationsServiceInterface is what the operations handler needs from the
// pipeline layer.
type OperationsServiceInterface interface {
	Start(ctx context.Context) error
	Get(id string) (operations.OperationSnapshot, error)
	List() []operations.OperationSnapshot
	IsRunning() bool
}
