// internal/domain/outcome.go
package domain

import (
	"context"
	"fmt"
	"time"
)

// OutcomeStatus is the state of a single dispatch.
type OutcomeStatus string

const (
	OutcomeStatusRunning   OutcomeStatus = "running"
	OutcomeStatusSucceeded OutcomeStatus = "succeeded"
	OutcomeStatusFailed    OutcomeStatus = "failed"
)

// Terminal reports whether no further transition is possible from s.
func (s OutcomeStatus) Terminal() bool {
	return s == OutcomeStatusSucceeded || s == OutcomeStatusFailed
}

// Outcome is the result of dispatching one task to one worker.
// A failed outcome always carries a non-nil Cause.
type Outcome struct {
	ID        string
	Worker    string
	Status    OutcomeStatus
	Cause     error
	StartedAt time.Time
	EndedAt   time.Time
}

// Success returns a succeeded outcome for worker.
func Success(worker string, startedAt, endedAt time.Time) Outcome {
	return Outcome{
		Worker:    worker,
		Status:    OutcomeStatusSucceeded,
		StartedAt: startedAt,
		EndedAt:   endedAt,
	}
}

// Failure returns a failed outcome for worker caused by cause.
func Failure(worker string, cause error, startedAt, endedAt time.Time) Outcome {
	if cause == nil {
		cause = fmt.Errorf("worker %q failed without a cause", worker)
	}
	return Outcome{
		Worker:    worker,
		Status:    OutcomeStatusFailed,
		Cause:     cause,
		StartedAt: startedAt,
		EndedAt:   endedAt,
	}
}

func (o Outcome) Succeeded() bool { return o.Status == OutcomeStatusSucceeded }

func (o Outcome) Failed() bool { return o.Status == OutcomeStatusFailed }

// Err returns nil for a successful outcome, otherwise the cause wrapped with
// the worker name.
func (o Outcome) Err() error {
	if !o.Failed() {
		return nil
	}
	return &DispatchError{Worker: o.Worker, Err: o.Cause}
}

// Duration is the time spent executing.
func (o Outcome) Duration() time.Duration {
	if o.EndedAt.IsZero() {
		return 0
	}
	return o.EndedAt.Sub(o.StartedAt)
}

// Record converts the outcome into its storable form.
func (o Outcome) Record() *OutcomeRecord {
	r := &OutcomeRecord{
		ID:        o.ID,
		Worker:    o.Worker,
		Status:    o.Status,
		StartTime: o.StartedAt,
		EndTime:   o.EndedAt,
	}
	if o.Cause != nil {
		r.Error = o.Cause.Error()
	}
	return r
}

// OutcomeRecord is the serialized form of an Outcome kept in the history.
type OutcomeRecord struct {
	ID        string        `json:"id"`
	Worker    string        `json:"worker"`
	Status    OutcomeStatus `json:"status"`
	Error     string        `json:"error,omitempty"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
}

// Validate checks if the outcome record is valid.
func (r *OutcomeRecord) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("outcome record ID cannot be empty")
	}
	if r.Worker == "" {
		return fmt.Errorf("outcome record worker cannot be empty")
	}
	if r.StartTime.IsZero() {
		return fmt.Errorf("outcome record start time cannot be zero")
	}
	if !r.Status.Terminal() {
		return fmt.Errorf("outcome record status %q is not terminal", r.Status)
	}
	return nil
}

// OutcomeRepository keeps the history of dispatch outcomes.
type OutcomeRepository interface {
	// Save stores a terminal outcome.
	Save(ctx context.Context, outcome Outcome) error
	// ListByWorker returns a page of records for worker, newest first.
	ListByWorker(ctx context.Context, worker string, page, pageSize int) ([]*OutcomeRecord, error)
}
