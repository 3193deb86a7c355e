// internal/infra/memory/outcome_repository.go
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"provenance/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultHistoryLimit is the number of outcomes kept per worker when no
// positive limit is given.
const DefaultHistoryLimit = 100

type outcomeRepository struct {
	mu      sync.RWMutex
	history map[string][]*domain.OutcomeRecord // oldest first
	limit   int
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewOutcomeRepository creates a repository holding at most limit outcomes per
// worker. Older outcomes are evicted first.
func NewOutcomeRepository(limit int, logger *slog.Logger) domain.OutcomeRepository {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &outcomeRepository{
		history: make(map[string][]*domain.OutcomeRecord),
		limit:   limit,
		logger:  logger.With("component", "outcome-repository"),
		tracer:  otel.Tracer("provenance-memory-outcome-repo"),
	}
}

// Save appends the outcome to its worker's history.
func (r *outcomeRepository) Save(ctx context.Context, outcome domain.Outcome) error {
	_, span := r.tracer.Start(ctx, "repo.memory.SaveOutcome")
	defer span.End()

	record := outcome.Record()
	span.SetAttributes(
		attribute.String("outcome.id", record.ID),
		attribute.String("worker.name", record.Worker),
	)
	if err := record.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid outcome record")
		return fmt.Errorf("failed to save outcome %s: %w", record.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	records := append(r.history[record.Worker], record)
	if over := len(records) - r.limit; over > 0 {
		r.logger.Debug("evicting old outcomes", "worker", record.Worker, "count", over)
		records = append(records[:0:0], records[over:]...)
	}
	r.history[record.Worker] = records
	return nil
}

// ListByWorker returns a page of outcome records for worker, newest first.
func (r *outcomeRepository) ListByWorker(ctx context.Context, worker string, page, pageSize int) ([]*domain.OutcomeRecord, error) {
	_, span := r.tracer.Start(ctx, "repo.memory.ListOutcomes")
	defer span.End()
	span.SetAttributes(
		attribute.String("worker.name", worker),
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize),
	)

	if page < 1 || pageSize < 1 {
		err := fmt.Errorf("invalid page %d or page size %d", page, pageSize)
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid pagination")
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.history[worker]
	records := make([]*domain.OutcomeRecord, 0, min(pageSize, len(all)))

	// Pages past the end are empty. Checking the page count first keeps the
	// offset below len(all), so it cannot overflow.
	pages := 0
	if len(all) > 0 {
		pages = (len(all)-1)/pageSize + 1
	}
	if page > pages {
		span.SetAttributes(attribute.Int("records_returned", 0))
		return records, nil
	}

	startIdx := (page - 1) * pageSize
	endIdx := startIdx + min(pageSize, len(all)-startIdx)
	for i := len(all) - 1 - startIdx; i > len(all)-1-endIdx; i-- {
		rec := *all[i]
		records = append(records, &rec)
	}
	span.SetAttributes(attribute.Int("records_returned", len(records)))
	return records, nil
}
