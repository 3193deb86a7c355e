package usecase

import (
	"context"
	"log/slog"

	"provenance/internal/domain"
)

// DefaultEndpointAccept is the Accept header sent when fetching endpoints.
const DefaultEndpointAccept = "application/xml"

// EndpointWorkFinder turns registered endpoints into endpoint tasks.
type EndpointWorkFinder struct {
	endpoints domain.EndpointRepository
	accept    string
	logger    *slog.Logger
}

// NewEndpointWorkFinder creates a finder over endpoints. An empty accept falls
// back to DefaultEndpointAccept.
func NewEndpointWorkFinder(endpoints domain.EndpointRepository, accept string, logger *slog.Logger) *EndpointWorkFinder {
	if accept == "" {
		accept = DefaultEndpointAccept
	}
	return &EndpointWorkFinder{
		endpoints: endpoints,
		accept:    accept,
		logger:    logger.With("component", "endpoint-finder"),
	}
}

// FindRequested returns one task per endpoint whose status is workerName.
func (f *EndpointWorkFinder) FindRequested(ctx context.Context, workerName string) ([]domain.EndpointTask, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records := f.endpoints.FindReady(workerName)
	tasks := make([]domain.EndpointTask, 0, len(records))
	for _, r := range records {
		tasks = append(tasks, domain.EndpointTask{Endpoint: r.URL, Accept: f.accept})
	}
	f.logger.Debug("found requested endpoints", "worker", workerName, "count", len(tasks))
	return tasks, nil
}

// MarkCompleted does nothing: endpoints stay ready and are collected again on
// the next run.
func (f *EndpointWorkFinder) MarkCompleted(ctx context.Context, task domain.EndpointTask) error {
	return nil
}
