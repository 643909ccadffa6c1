package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "draftpulse/internal/errors"
	"draftpulse/internal/operations"
)

type blockingStep struct {
	release chan struct{}
}

func (b *blockingStep) ID() string                                { return "blocking" }
func (b *blockingStep) Name() string                              { return "blocking step" }
func (b *blockingStep) Validate(*operations.OperationState) error { return nil }

func (b *blockingStep) Execute(ctx context.Context, _ *operations.OperationState) error {
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func newOperationsFixture(t *testing.T, step operations.Step, timeout time.Duration) *OperationsService {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	manager := operations.NewManager(nil, logger)
	manager.RegisterStep(step)
	return NewOperationsService(manager, nil, nil, timeout, logger)
}

func TestStartRejectsSecondRun(t *testing.T) {
	release := make(chan struct{})
	svc := newOperationsFixture(t, &blockingStep{release: release}, 0)

	require.NoError(t, svc.Start(context.Background()))
	require.Eventually(t, svc.IsRunning, time.Second, time.Millisecond)

	err := svc.Start(context.Background())
	assert.ErrorIs(t, err, apierrors.ErrOperationRunning)

	close(release)
	require.Eventually(t, func() bool { return !svc.IsRunning() },
		time.Second, time.Millisecond)
}

func TestRunIsBoundByTimeout(t *testing.T) {
	// Never released, so only the run context's deadline can end the step.
	svc := newOperationsFixture(t, &blockingStep{release: make(chan struct{})}, 20*time.Millisecond)

	require.NoError(t, svc.Start(context.Background()))
	require.Eventually(t, func() bool { return !svc.IsRunning() },
		time.Second, time.Millisecond)

	runs := svc.List()
	require.Len(t, runs, 1)
	assert.Equal(t, operations.OperationStatusFailed, runs[0].Status)

	// The next run must not be blocked by the timed-out one.
	require.NoError(t, svc.Start(context.Background()))
}

func TestRunAppearsInList(t *testing.T) {
	release := make(chan struct{})
	close(release)
	svc := newOperationsFixture(t, &blockingStep{release: release}, 0)

	require.NoError(t, svc.Start(context.Background()))
	require.Eventually(t, func() bool { return len(svc.List()) == 1 },
		time.Second, time.Millisecond)

	runs := svc.List()
	require.Eventually(t, func() bool {
		snap, err := svc.Get(runs[0].ID)
		return err == nil && snap.Status == operations.OperationStatusCompleted
	}, time.Second, time.Millisecond)
}

func TestGetUnknownRun(t *testing.T) {
	release := make(chan struct{})
	close(release)
	svc := newOperationsFixture(t, &blockingStep{release: release}, 0)

	_, err := svc.Get("no-such-run")
	assert.ErrorIs(t, err, apierrors.ErrOperationNotFound)
}
