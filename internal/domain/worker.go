// internal/domain/worker.go
package domain

import "context"

// Worker executes tasks of type T.
//
// Name identifies the worker for logging and task selection. It must be
// non-empty and must not change over the lifetime of the worker. Uniqueness is
// not required.
//
// Execute returns an error when the task cannot be completed. Workers make no
// promise of idempotence or thread-safety unless they document one; callers
// that need such guarantees must get them from the concrete implementation.
type Worker[T any] interface {
	Name() string
	Execute(ctx context.Context, task T) error
}

// WorkerFunc adapts a plain function into a Worker.
type WorkerFunc[T any] struct {
	WorkerName string
	Fn         func(ctx context.Context, task T) error
}

// NewWorkerFunc returns a Worker named name that runs fn.
func NewWorkerFunc[T any](name string, fn func(ctx context.Context, task T) error) *WorkerFunc[T] {
	return &WorkerFunc[T]{WorkerName: name, Fn: fn}
}

func (w *WorkerFunc[T]) Name() string { return w.WorkerName }

func (w *WorkerFunc[T]) Execute(ctx context.Context, task T) error {
	return w.Fn(ctx, task)
}
