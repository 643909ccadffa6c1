package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"draftpulse/internal/config"
	ws "draftpulse/internal/websocket"
)

// HealthService reports liveness plus dataset and pipeline status for the
// dashboard's health endpoint.
type HealthService struct {
	version    string
	paths      *config.Paths
	operations *OperationsService
	hub        *ws.Hub
	startTime  time.Time
	logger     *slog.Logger
}

// HealthStatus is the health endpoint response.
type HealthStatus struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version"`
	UptimeSeconds float64   `json:"uptime_seconds"`
	GoVersion     string    `json:"go_version"`

	DatasetReady     bool `json:"dataset_ready"`
	PipelineRunning  bool `json:"pipeline_running"`
	WebSocketClients int  `json:"websocket_clients"`
}

// NewHealthService creates a health service. operations and hub may be nil.
func NewHealthService(version string, paths *config.Paths, operations *OperationsService, hub *ws.Hub, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:    version,
		paths:      paths,
		operations: operations,
		hub:        hub,
		startTime:  time.Now(),
		logger:     logger.With(slog.String("service", "health")),
	}
}

// Check returns the current health status. The service is "ok" whenever the
// process is up; dataset_ready tells the dashboard whether analytics calls
// can succeed yet.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:        "ok",
		Timestamp:     time.Now(),
		Version:       s.version,
		UptimeSeconds: time.Since(s.startTime).Seconds(),
		GoVersion:     runtime.Version(),
		DatasetReady:  config.FileExists(s.paths.MergedCSV()),
	}
	if s.operations != nil {
		status.PipelineRunning = s.operations.IsRunning()
	}
	if s.hub != nil {
		status.WebSocketClients = s.hub.ClientCount()
	}
	return status
}
