// internal/workflow/dispatch.go
package workflow

import (
	"context"
	"runtime/debug"
	"time"

	"provenance/internal/domain"
)

// Dispatch executes task on w and reports the result as an Outcome.
//
// Failures never escape Dispatch: an error returned by Execute and a panic
// raised inside it (or inside Name) both end up as the Cause of a failed
// outcome. A nil worker or a worker without a name fails without Execute being
// called.
//
// Dispatch keeps no state of its own and may be called concurrently for
// distinct worker and task pairs.
func Dispatch[T any](ctx context.Context, w domain.Worker[T], task T) (outcome domain.Outcome) {
	startedAt := time.Now()
	if w == nil {
		return domain.Failure("", domain.ErrNilWorker, startedAt, startedAt)
	}

	var name string
	defer func() {
		if r := recover(); r != nil {
			outcome = domain.Failure(name, &domain.PanicError{Value: r, Stack: debug.Stack()}, startedAt, time.Now())
		}
	}()

	name = w.Name()
	if name == "" {
		return domain.Failure("", domain.ErrEmptyWorkerName, startedAt, startedAt)
	}

	if err := w.Execute(ctx, task); err != nil {
		return domain.Failure(name, err, startedAt, time.Now())
	}
	return domain.Success(name, startedAt, time.Now())
}
