// internal/workflow/dispatcher.go
package workflow

import (
	"context"
	"log/slog"

	"provenance/internal/domain"
	"provenance/internal/metrics"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Dispatcher runs Dispatch and reports every outcome through logs, traces,
// metrics and, when configured, an outcome repository.
type Dispatcher[T any] struct {
	repo   domain.OutcomeRepository
	logger *slog.Logger
	tracer trace.Tracer
}

// NewDispatcher creates a dispatcher for tasks of type T. repo may be nil, in
// which case outcomes are not kept.
func NewDispatcher[T any](repo domain.OutcomeRepository, logger *slog.Logger) *Dispatcher[T] {
	return &Dispatcher[T]{
		repo:   repo,
		logger: logger.With("component", "dispatcher"),
		tracer: otel.Tracer("provenance-workflow"),
	}
}

// Dispatch executes task on w. The returned outcome has a unique ID and is
// terminal. Like the package level Dispatch, it never panics.
func (d *Dispatcher[T]) Dispatch(ctx context.Context, w domain.Worker[T], task T) domain.Outcome {
	id := uuid.NewString()
	ctx, span := d.tracer.Start(ctx, "workflow.Dispatch", trace.WithAttributes(
		attribute.String("outcome.id", id),
	))
	defer span.End()

	outcome := Dispatch(ctx, w, task)
	outcome.ID = id

	logger := d.logger.With("worker", outcome.Worker, "outcome_id", id)
	span.SetAttributes(
		attribute.String("worker.name", outcome.Worker),
		attribute.String("outcome.status", string(outcome.Status)),
	)

	if outcome.Failed() {
		span.RecordError(outcome.Cause)
		span.SetStatus(codes.Error, "task execution failed")
		logger.Error("task execution failed", "error", outcome.Cause, "duration", outcome.Duration())
	} else {
		span.SetStatus(codes.Ok, "task execution succeeded")
		logger.Info("task execution succeeded", "duration", outcome.Duration())
	}

	metrics.DispatchTotal.WithLabelValues(outcome.Worker, string(outcome.Status)).Inc()
	metrics.DispatchDuration.WithLabelValues(outcome.Worker).Observe(outcome.Duration().Seconds())

	if d.repo != nil {
		if err := d.repo.Save(ctx, outcome); err != nil {
			logger.Warn("failed to save outcome", "error", err)
			span.AddEvent("outcome_not_saved", trace.WithAttributes(attribute.String("error", err.Error())))
		}
	}

	return outcome
}
