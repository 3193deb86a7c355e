package usecase

import (
	"context"
	"log/slog"

	"provenance/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ArticleService exposes the stored articles as public infos.
type ArticleService struct {
	repo   domain.ArticleRepository
	logger *slog.Logger
	tracer trace.Tracer
}

// NewArticleService creates a new ArticleService instance.
func NewArticleService(repo domain.ArticleRepository, logger *slog.Logger) *ArticleService {
	return &ArticleService{
		repo:   repo,
		logger: logger,
		tracer: otel.Tracer("provenance-usecase"),
	}
}

// List returns every article.
func (s *ArticleService) List(ctx context.Context) []domain.ArticleInfo {
	_, span := s.tracer.Start(ctx, "service.ListArticles")
	defer span.End()

	infos := toInfos(s.repo.FindAll())
	span.SetAttributes(attribute.Int("articles.count", len(infos)))
	return infos
}

// ListAvailable returns the articles marked available.
func (s *ArticleService) ListAvailable(ctx context.Context) []domain.ArticleInfo {
	_, span := s.tracer.Start(ctx, "service.ListAvailableArticles")
	defer span.End()

	infos := toInfos(s.repo.FindAvailable())
	span.SetAttributes(attribute.Int("articles.count", len(infos)))
	return infos
}

func toInfos(records []domain.ArticleRecord) []domain.ArticleInfo {
	infos := make([]domain.ArticleInfo, 0, len(records))
	for _, r := range records {
		infos = append(infos, r.Info())
	}
	return infos
}
