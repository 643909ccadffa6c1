package operations

import (
	"sync"
	"time"
)

// OperationStatus is the overall status of a pipeline run.
type OperationStatus string

const (
	OperationStatusPending   OperationStatus = "pending"
	OperationStatusRunning   OperationStatus = "running"
	OperationStatusCompleted OperationStatus = "completed"
	OperationStatusFailed    OperationStatus = "failed"
	OperationStatusCancelled OperationStatus = "cancelled"
)

// StepStatus is the status of a single pipeline step.
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusActive    StepStatus = "active"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusSkipped   StepStatus = "skipped"
)

// StepState is the runtime state of one step within a run.
type StepState struct {
	mu        sync.RWMutex
	ID        string
	Name      string
	Status    StepStatus
	StartTime *time.Time
	EndTime   *time.Time
	Progress  float64
	Message   string
	Err       error
}

// NewStepState creates a pending step state.
func NewStepState(id, name string) *StepState {
	return &StepState{ID: id, Name: name, Status: StepStatusPending}
}

// Start marks the step active.
func (s *StepState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.StartTime = &now
	s.Status = StepStatusActive
	s.Progress = 0
}

// Complete marks the step completed.
func (s *StepState) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusCompleted
	s.Progress = 1
}

// Fail marks the step failed with err.
func (s *StepState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusFailed
	s.Err = err
	if err != nil {
		s.Message = err.Error()
	}
}

// Skip marks the step skipped with a reason.
func (s *StepState) Skip(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = StepStatusSkipped
	s.Message = reason
}

// UpdateProgress records step progress as a fraction in [0, 1].
func (s *StepState) UpdateProgress(progress float64, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Progress = progress
	s.Message = message
}

// Duration reports how long the step has been running, or ran.
func (s *StepState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return time.Since(*s.StartTime)
}

// StepSnapshot is a copyable, JSON-safe view of a step state.
type StepSnapshot struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    StepStatus `json:"status"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Progress  float64    `json:"progress"`
	Message   string     `json:"message,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Snapshot returns a copy of the step state safe to serialize.
func (s *StepState) Snapshot() StepSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := StepSnapshot{
		ID:        s.ID,
		Name:      s.Name,
		Status:    s.Status,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Progress:  s.Progress,
		Message:   s.Message,
	}
	if s.Err != nil {
		snap.Error = s.Err.Error()
	}
	return snap
}

// OperationState is the complete state of one pipeline run. Steps are stored
// in execution order.
type OperationState struct {
	mu        sync.RWMutex
	ID        string
	Status    OperationStatus
	StartTime time.Time
	EndTime   *time.Time
	Steps     []*StepState
	Err       error
}

// NewOperationState creates a pending run with the given step states.
func NewOperationState(id string, steps []*StepState) *OperationState {
	return &OperationState{
		ID:        id,
		Status:    OperationStatusPending,
		StartTime: time.Now(),
		Steps:     steps,
	}
}

// Start marks the run as running.
func (o *OperationState) Start() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Status = OperationStatusRunning
	o.StartTime = time.Now()
}

// Complete marks the run as completed.
func (o *OperationState) Complete() {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now()
	o.EndTime = &now
	o.Status = OperationStatusCompleted
}

// Fail marks the run as failed.
func (o *OperationState) Fail(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now()
	o.EndTime = &now
	o.Status = OperationStatusFailed
	o.Err = err
}

// Cancel marks the run as cancelled.
func (o *OperationState) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := time.Now()
	o.EndTime = &now
	o.Status = OperationStatusCancelled
}

// Step returns the state for a step ID, or nil.
func (o *OperationState) Step(id string) *StepState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, s := range o.Steps {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// OperationSnapshot is a copyable, JSON-safe view of a run.
type OperationSnapshot struct {
	ID        string          `json:"id"`
	Status    OperationStatus `json:"status"`
	StartTime time.Time       `json:"start_time"`
	EndTime   *time.Time      `json:"end_time,omitempty"`
	Steps     []StepSnapshot  `json:"steps"`
	Error     string          `json:"error,omitempty"`
}

// Snapshot returns a copy of the run state safe to serialize.
func (o *OperationState) Snapshot() OperationSnapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	snap := OperationSnapshot{
		ID:        o.ID,
		Status:    o.Status,
		StartTime: o.StartTime,
		EndTime:   o.EndTime,
		Steps:     make([]StepSnapshot, 0, len(o.Steps)),
	}
	for _, s := range o.Steps {
		snap.Steps = append(snap.Steps, s.Snapshot())
	}
	if o.Err != nil {
		snap.Error = o.Err.Error()
	}
	return snap
}
