// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNilWorker is the cause of an outcome dispatched without a worker.
	ErrNilWorker = errors.New("worker is nil")

	// ErrEmptyWorkerName is the cause of an outcome dispatched to a worker with no name.
	ErrEmptyWorkerName = errors.New("worker name is empty")
)

// DispatchError ties an execution failure to the worker that produced it.
type DispatchError struct {
	Worker string
	Err    error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("worker %q failed: %v", e.Worker, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// PanicError is the cause recorded when Execute panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
