package services

import (
	"context"
	"log/slog"
	"time"

	"draftpulse/internal/errors"
	"draftpulse/internal/infrastructure"
	"draftpulse/internal/operations"
	ws "draftpulse/internal/websocket"
)

// OperationsService starts pipeline runs and relays their progress to the
// websocket hub. The data service cache is invalidated after every finished
// run so the dashboard picks up fresh numbers.
type OperationsService struct {
	manager *operations.Manager
	hub     *ws.Hub
	data    *DataService
	timeout time.Duration
	logger  *slog.Logger
}

// NewOperationsService wires the manager's update stream to the hub.
// hub and data may be nil; a timeout of zero means runs are unbounded.
func NewOperationsService(manager *operations.Manager, hub *ws.Hub, data *DataService, timeout time.Duration, logger *slog.Logger) *OperationsService {
	if logger == nil {
		logger = slog.Default()
	}
	svc := &OperationsService{
		manager: manager,
		hub:     hub,
		data:    data,
		timeout: timeout,
		logger:  logger.With(slog.String("service", "operations")),
	}

	manager.SetOnUpdate(func(snapshot operations.OperationSnapshot) {
		if svc.hub != nil {
			svc.hub.Broadcast(ws.TypeOperationProgress, snapshot)
		}
	})
	return svc
}

// Start launches a pipeline run in the background. It fails fast with
// ErrOperationRunning when a run is already in flight; the run ID is only
// discoverable through List and the websocket stream once the run begins.
func (s *OperationsService) Start(ctx context.Context) error {
	if s.manager.IsRunning() {
		return errors.ErrOperationRunning
	}

	// The run outlives the HTTP request, so it gets a detached context that
	// keeps only the trace ID. The operation timeout bounds a hung scrape,
	// which would otherwise block every future run.
	runCtx := infrastructure.EnsureTraceID(
		infrastructure.WithTraceID(context.Background(), infrastructure.GetTraceID(ctx)))
	var cancel context.CancelFunc
	if s.timeout > 0 {
		runCtx, cancel = context.WithTimeout(runCtx, s.timeout)
	} else {
		runCtx, cancel = context.WithCancel(runCtx)
	}
	go func() {
		defer cancel()
		id, err := s.manager.Run(runCtx)
		if err != nil {
			s.logger.Error("pipeline run finished with error",
				slog.String("run_id", id),
				slog.String("error", err.Error()))
		}
		if s.data != nil {
			s.data.Invalidate()
		}
		if s.hub != nil {
			s.hub.Broadcast(ws.TypeDataUpdate, map[string]string{"reason": "pipeline_finished"})
		}
	}()
	return nil
}

// Get returns the snapshot for a run ID.
func (s *OperationsService) Get(id string) (operations.OperationSnapshot, error) {
	snap, ok := s.manager.GetRun(id)
	if !ok {
		return operations.OperationSnapshot{}, errors.ErrOperationNotFound
	}
	return snap, nil
}

// List returns all known runs, newest first.
func (s *OperationsService) List() []operations.OperationSnapshot {
	return s.manager.ListRuns()
}

// IsRunning reports whether a pipeline run is in flight.
func (s *OperationsService) IsRunning() bool {
	return s.manager.IsRunning()
}
