// internal/api/http/history_handler.go
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"provenance/internal/usecase"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	// maxPage covers the largest history a worker can keep at page size 1.
	maxPage = 10000
)

// HistoryHandler serves the dispatch outcomes of each worker.
type HistoryHandler struct {
	service *usecase.HistoryService
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewHistoryHandler(service *usecase.HistoryService, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		service: service,
		logger:  logger.With("component", "history-handler"),
		tracer:  otel.Tracer("provenance-api"),
	}
}

// RegisterRoutes registers /executions/{worker} on mux.
func (h *HistoryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/executions/", instrument(h.tracer, "/executions/{worker}", h.handleExecutions))
}

// handleExecutions lists a worker's outcomes (GET /executions/{worker}?page=&pageSize=)
func (h *HistoryHandler) handleExecutions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	worker := strings.Trim(strings.TrimPrefix(r.URL.Path, "/executions/"), "/")
	if worker == "" || strings.Contains(worker, "/") {
		http.NotFound(w, r)
		return
	}

	ctx, span := h.tracer.Start(r.Context(), "handler.ListExecutions")
	defer span.End()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		http.Error(w, "Page out of range", http.StatusBadRequest)
		return
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize <= 0 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	span.SetAttributes(
		attribute.String("worker.name", worker),
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize),
	)

	history, err := h.service.ListHistory(ctx, worker, page, pageSize)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list history")
		h.logger.Error("error listing history", "worker", worker, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(history); err != nil {
		h.logger.Error("error encoding history", "error", err)
	}
}
