// internal/scheduler/work_scheduler.go
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"provenance/internal/domain"
	"provenance/internal/metrics"
	"provenance/internal/workflow"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Option configures a WorkScheduler.
type Option[T any] func(*WorkScheduler[T])

// WithConcurrencyPolicy sets whether a worker check may start while the
// previous check of the same worker is still running. Defaults to Forbid.
func WithConcurrencyPolicy[T any](p domain.ConcurrencyPolicy) Option[T] {
	return func(s *WorkScheduler[T]) { s.policy = p }
}

// WithTaskKey deduplicates the tasks of a single check: tasks with equal keys
// are dispatched once.
func WithTaskKey[T any](key func(T) string) Option[T] {
	return func(s *WorkScheduler[T]) { s.taskKey = key }
}

// WorkScheduler periodically asks a WorkFinder for the tasks of each worker
// and dispatches them.
type WorkScheduler[T any] struct {
	finder     domain.WorkFinder[T]
	workers    []domain.Worker[T]
	interval   time.Duration
	dispatcher *workflow.Dispatcher[T]
	policy     domain.ConcurrencyPolicy
	taskKey    func(T) string
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewWorkScheduler creates a scheduler checking for work every interval.
func NewWorkScheduler[T any](finder domain.WorkFinder[T], workers []domain.Worker[T], interval time.Duration, dispatcher *workflow.Dispatcher[T], logger *slog.Logger, opts ...Option[T]) *WorkScheduler[T] {
	s := &WorkScheduler[T]{
		finder:     finder,
		workers:    workers,
		interval:   interval,
		dispatcher: dispatcher,
		policy:     domain.ConcurrencyPolicyForbid,
		logger:     logger.With("component", "work-scheduler"),
		tracer:     otel.Tracer("provenance-scheduler"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start checks every worker for work right away and then every interval. It
// blocks until ctx is done and returns once running checks have finished.
func (s *WorkScheduler[T]) Start(ctx context.Context) error {
	c := cron.New(cron.WithLogger(newCronLogger(s.logger)))

	var chain cron.Chain
	if s.policy == domain.ConcurrencyPolicyForbid {
		chain = cron.NewChain(cron.Recover(newCronLogger(s.logger)), cron.SkipIfStillRunning(newCronLogger(s.logger)))
	} else {
		chain = cron.NewChain(cron.Recover(newCronLogger(s.logger)))
	}

	schedule := fmt.Sprintf("@every %s", s.interval)
	jobs := make([]cron.Job, 0, len(s.workers))
	for i, w := range s.workers {
		name, err := workerName(w)
		if err != nil {
			return fmt.Errorf("invalid worker at index %d: %w", i, err)
		}
		job := chain.Then(&checkJob[T]{ctx: ctx, scheduler: s, name: name, worker: w})
		if _, err := c.AddJob(schedule, job); err != nil {
			return fmt.Errorf("failed to schedule worker %s: %w", name, err)
		}
		s.logger.Info("scheduling worker", "worker", name, "interval", s.interval)
		jobs = append(jobs, job)
	}

	c.Start()
	var initial sync.WaitGroup
	for _, job := range jobs {
		initial.Add(1)
		go func(job cron.Job) {
			defer initial.Done()
			job.Run()
		}(job)
	}

	s.logger.Info("work scheduler started")
	<-ctx.Done()
	s.logger.Info("work scheduler stopping...")
	stopCtx := c.Stop()
	<-stopCtx.Done()
	initial.Wait()
	s.logger.Info("work scheduler stopped")
	return ctx.Err()
}

// workerName reads the name of w, turning a nil worker, an empty name or a
// panicking Name into an error.
func workerName[T any](w domain.Worker[T]) (name string, err error) {
	if w == nil {
		return "", domain.ErrNilWorker
	}
	defer func() {
		if r := recover(); r != nil {
			err = &domain.PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	if name = w.Name(); name == "" {
		return "", domain.ErrEmptyWorkerName
	}
	return name, nil
}

// checkForWork dispatches every task requested for the worker w registered
// as name. It returns the outcomes in dispatch order.
func (s *WorkScheduler[T]) checkForWork(ctx context.Context, name string, w domain.Worker[T]) []domain.Outcome {
	ctx, span := s.tracer.Start(ctx, "scheduler.CheckForWork", trace.WithAttributes(
		attribute.String("worker.name", name),
	))
	defer span.End()

	logger := s.logger.With("worker", name)
	metrics.SchedulerChecksTotal.WithLabelValues(name).Inc()
	logger.Debug("checking for work")

	tasks, err := s.finder.FindRequested(ctx, name)
	if err != nil {
		logger.Error("unable to find work", "error", err)
		span.RecordError(err)
		return nil
	}

	seen := make(map[string]struct{})
	outcomes := make([]domain.Outcome, 0, len(tasks))
	for _, task := range tasks {
		if ctx.Err() != nil {
			logger.Info("check interrupted", "error", ctx.Err())
			break
		}
		if s.taskKey != nil {
			key := s.taskKey(task)
			if _, dup := seen[key]; dup {
				logger.Debug("skipping duplicate task", "task_key", key)
				continue
			}
			seen[key] = struct{}{}
		}

		logger.Info("found work")
		outcome := s.dispatcher.Dispatch(ctx, w, task)
		outcomes = append(outcomes, outcome)
		if outcome.Failed() {
			continue
		}
		if err := s.finder.MarkCompleted(ctx, task); err != nil {
			logger.Error("unable to mark task completed", "outcome_id", outcome.ID, "error", err)
		}
	}

	span.SetAttributes(attribute.Int("tasks.dispatched", len(outcomes)))
	logger.Debug("completed work", "dispatched", len(outcomes))
	return outcomes
}

// checkJob is the cron.Job running one worker check.
type checkJob[T any] struct {
	ctx       context.Context
	scheduler *WorkScheduler[T]
	name      string
	worker    domain.Worker[T]
}

func (j *checkJob[T]) Run() {
	if j.ctx.Err() != nil {
		return
	}
	j.scheduler.checkForWork(j.ctx, j.name, j.worker)
}
