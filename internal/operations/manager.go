package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"draftpulse/internal/infrastructure"
)

// Step is one unit of pipeline work. Steps run sequentially in the order
// they were registered; a failed step aborts the run.
type Step interface {
	ID() string
	Name() string

	// Validate checks preconditions before the step runs.
	Validate(state *OperationState) error

	// Execute runs the step. Implementations should report progress through
	// their own StepState entry in state.
	Execute(ctx context.Context, state *OperationState) error
}

// ErrAlreadyRunning is returned by Run when a pipeline run is in flight.
var ErrAlreadyRunning = errors.New("a pipeline run is already in progress")

// UpdateFunc receives a snapshot after every state change, for broadcast.
type UpdateFunc func(snapshot OperationSnapshot)

// Manager executes the registered steps as a single sequential pipeline and
// keeps the state of past runs in memory. Only one run may be active at a
// time.
type Manager struct {
	mu      sync.Mutex
	steps   []Step
	runs    map[string]*OperationState
	running bool

	onUpdate UpdateFunc
	metrics  *infrastructure.PipelineMetrics
	logger   *slog.Logger
}

// NewManager creates a manager. metrics may be nil.
func NewManager(metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		runs:    make(map[string]*OperationState),
		metrics: metrics,
		logger:  logger.With(slog.String("component", "operations")),
	}
}

// RegisterStep appends a step to the pipeline.
func (m *Manager) RegisterStep(step Step) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, step)
}

// SetOnUpdate registers a callback invoked after every state change.
func (m *Manager) SetOnUpdate(fn UpdateFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onUpdate = fn
}

// Run executes the whole pipeline and blocks until it finishes. It returns
// the run ID together with the outcome error, so callers can fetch state for
// failed runs too.
func (m *Manager) Run(ctx context.Context) (string, error) {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return "", ErrAlreadyRunning
	}
	m.running = true

	steps := make([]Step, len(m.steps))
	copy(steps, m.steps)
	notify := m.onUpdate

	id := uuid.New().String()
	stepStates := make([]*StepState, 0, len(steps))
	for _, s := range steps {
		stepStates = append(stepStates, NewStepState(s.ID(), s.Name()))
	}
	state := NewOperationState(id, stepStates)
	m.runs[id] = state
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	broadcast := func() {
		if notify != nil {
			notify(state.Snapshot())
		}
	}

	state.Start()
	broadcast()
	m.logger.InfoContext(ctx, "pipeline run started",
		slog.String("run_id", id),
		slog.Int("steps", len(steps)))

	err := m.execute(ctx, state, steps, broadcast)
	switch {
	case err == nil:
		state.Complete()
		m.logger.InfoContext(ctx, "pipeline run completed", slog.String("run_id", id))
	case errors.Is(err, context.Canceled):
		state.Cancel()
		m.logger.WarnContext(ctx, "pipeline run cancelled", slog.String("run_id", id))
	default:
		state.Fail(err)
		m.logger.ErrorContext(ctx, "pipeline run failed",
			slog.String("run_id", id),
			slog.String("error", err.Error()))
	}
	broadcast()
	return id, err
}

func (m *Manager) execute(ctx context.Context, state *OperationState, steps []Step, broadcast func()) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		stepState := state.Step(step.ID())
		if err := step.Validate(state); err != nil {
			stepState.Fail(err)
			skipRemaining(state, steps[i+1:])
			broadcast()
			return fmt.Errorf("step %s validation: %w", step.ID(), err)
		}

		stepState.Start()
		broadcast()
		m.logger.InfoContext(ctx, "step started",
			slog.String("run_id", state.ID),
			slog.String("step", step.ID()))

		err := step.Execute(ctx, state)
		if m.metrics != nil {
			m.metrics.StageDuration.Record(ctx, stepState.Duration().Seconds())
		}
		if err != nil {
			stepState.Fail(err)
			skipRemaining(state, steps[i+1:])
			broadcast()
			return fmt.Errorf("step %s: %w", step.ID(), err)
		}

		stepState.Complete()
		broadcast()
		m.logger.InfoContext(ctx, "step completed",
			slog.String("run_id", state.ID),
			slog.String("step", step.ID()),
			slog.Duration("duration", stepState.Duration()))
	}
	return nil
}

// skipRemaining marks the steps after a failed one as skipped so the run's
// final snapshot has no pending entries.
func skipRemaining(state *OperationState, steps []Step) {
	for _, step := range steps {
		state.Step(step.ID()).Skip("not run, earlier step failed")
	}
}

// GetRun returns the snapshot for a run ID.
func (m *Manager) GetRun(id string) (OperationSnapshot, bool) {
	m.mu.Lock()
	state, ok := m.runs[id]
	m.mu.Unlock()
	if !ok {
		return OperationSnapshot{}, false
	}
	return state.Snapshot(), true
}

// ListRuns returns snapshots of all known runs, newest first.
func (m *Manager) ListRuns() []OperationSnapshot {
	m.mu.Lock()
	states := make([]*OperationState, 0, len(m.runs))
	for _, s := range m.runs {
		states = append(states, s)
	}
	m.mu.Unlock()

	snaps := make([]OperationSnapshot, 0, len(states))
	for _, s := range states {
		snaps = append(snaps, s.Snapshot())
	}
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].StartTime.After(snaps[j].StartTime)
	})
	return snaps
}

// IsRunning reports whether a run is currently in flight.
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
