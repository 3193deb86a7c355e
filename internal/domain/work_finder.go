package domain

import "context"

// WorkFinder supplies the tasks a named worker should execute.
type WorkFinder[T any] interface {
	// FindRequested returns the tasks currently requested for workerName.
	FindRequested(ctx context.Context, workerName string) ([]T, error)
	// MarkCompleted is called once a task has been executed successfully.
	MarkCompleted(ctx context.Context, task T) error
}

// ConcurrencyPolicy defines whether a worker may run while a previous run of
// the same worker has not finished yet.
type ConcurrencyPolicy string

const (
	ConcurrencyPolicyAllow  ConcurrencyPolicy = "Allow"
	ConcurrencyPolicyForbid ConcurrencyPolicy = "Forbid"
)
