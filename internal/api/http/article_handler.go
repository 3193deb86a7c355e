// internal/api/http/article_handler.go
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"provenance/internal/domain"
	"provenance/internal/usecase"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	articlesAccept  = []string{"application/json", "text/html"}
	availableAccept = []string{"application/json"}
)

// ArticleHandler serves the stored articles.
type ArticleHandler struct {
	service *usecase.ArticleService
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(service *usecase.ArticleService, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{
		service: service,
		logger:  logger.With("component", "article-handler"),
		tracer:  otel.Tracer("provenance-api"),
	}
}

// RegisterRoutes registers /articles and /available on mux.
func (h *ArticleHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/articles", instrument(h.tracer, "/articles", h.handleArticles))
	mux.Handle("/available", instrument(h.tracer, "/available", h.handleAvailable))
}

// handleArticles lists every article (GET /articles)
func (h *ArticleHandler) handleArticles(w http.ResponseWriter, r *http.Request) {
	if !h.checkRequest(w, r, articlesAccept) {
		return
	}
	h.writeInfos(w, h.service.List(r.Context()))
}

// handleAvailable lists the available articles (GET /available)
func (h *ArticleHandler) handleAvailable(w http.ResponseWriter, r *http.Request) {
	if !h.checkRequest(w, r, availableAccept) {
		return
	}
	h.writeInfos(w, h.service.ListAvailable(r.Context()))
}

func (h *ArticleHandler) checkRequest(w http.ResponseWriter, r *http.Request, offered []string) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if !acceptable(r.Header.Get("Accept"), offered) {
		http.Error(w, "Not acceptable", http.StatusNotAcceptable)
		return false
	}
	return true
}

func (h *ArticleHandler) writeInfos(w http.ResponseWriter, infos []domain.ArticleInfo) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(infos); err != nil {
		h.logger.Error("error encoding articles", "error", err)
	}
}
