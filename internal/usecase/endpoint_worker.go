package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"provenance/internal/domain"
	"provenance/internal/infra/rss"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Fetcher retrieves the body of a remote resource.
type Fetcher interface {
	Get(ctx context.Context, url, accept string) ([]byte, error)
}

// EndpointWorker collects an RSS endpoint into the article store.
//
// Each run replaces every stored article with the feed's items. It is not
// idempotent: articles get new random ids on every run. Concurrent runs are
// safe for the store but the last one to finish wins.
type EndpointWorker struct {
	fetcher  Fetcher
	articles domain.ArticleRepository
	logger   *slog.Logger
	tracer   trace.Tracer
}

// NewEndpointWorker creates the worker responsible for ready endpoints.
func NewEndpointWorker(fetcher Fetcher, articles domain.ArticleRepository, logger *slog.Logger) *EndpointWorker {
	return &EndpointWorker{
		fetcher:  fetcher,
		articles: articles,
		logger:   logger.With("component", "endpoint-worker"),
		tracer:   otel.Tracer("provenance-endpoint-worker"),
	}
}

func (w *EndpointWorker) Name() string { return domain.EndpointStatusReady }

// Execute fetches the task's endpoint and stores one article per item title.
// The store is left untouched when fetching or parsing fails.
func (w *EndpointWorker) Execute(ctx context.Context, task domain.EndpointTask) error {
	ctx, span := w.tracer.Start(ctx, "worker.endpoint.Execute", trace.WithAttributes(
		attribute.String("endpoint.url", task.Endpoint),
	))
	defer span.End()

	body, err := w.fetcher.Get(ctx, task.Endpoint, task.Accept)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch endpoint")
		return fmt.Errorf("failed to fetch endpoint %s: %w", task.Endpoint, err)
	}

	feed, err := rss.Parse(body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse endpoint response")
		return fmt.Errorf("endpoint %s: %w", task.Endpoint, err)
	}

	saved := w.articles.Replace(feed.Titles())

	span.SetAttributes(attribute.Int("articles.saved", len(saved)))
	w.logger.Info("collected endpoint", "endpoint", task.Endpoint, "articles", len(saved))
	return nil
}
