package usecase

import (
	"context"

	"provenance/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HistoryService reads the outcomes recorded by the dispatcher.
type HistoryService struct {
	repo   domain.OutcomeRepository
	tracer trace.Tracer
}

func NewHistoryService(repo domain.OutcomeRepository) *HistoryService {
	return &HistoryService{
		repo:   repo,
		tracer: otel.Tracer("provenance-usecase"),
	}
}

// ListHistory lists the outcomes of a worker, newest first.
func (s *HistoryService) ListHistory(ctx context.Context, worker string, page, pageSize int) ([]*domain.OutcomeRecord, error) {
	ctx, span := s.tracer.Start(ctx, "service.ListHistory")
	defer span.End()
	span.SetAttributes(
		attribute.String("worker.name", worker),
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize),
	)

	records, err := s.repo.ListByWorker(ctx, worker, page, pageSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list history from repository")
	}
	return records, err
}
