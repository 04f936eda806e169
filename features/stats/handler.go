package stats

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"arty/backend/internal/middleware"
)

type InterviewRepo interface {
	Count(ctx context.Context) (int, error)
}

type QuestionRepo interface {
	Count(ctx context.Context) (int, error)
}

type JobRepo interface {
	Count(ctx context.Context) (int, error)
}

type Handler struct {
	interviewRepo InterviewRepo
	questionRepo  QuestionRepo
	jobRepo       JobRepo
}

func NewHandler(i InterviewRepo, q QuestionRepo, j JobRepo) *Handler {
	return &Handler{interviewRepo: i, questionRepo: q, jobRepo: j}
}

type StatsResponse struct {
	Interviews int `json:"interviews"`
	Questions  int `json:"questions"`
	FailedJobs int `json:"failed_jobs"`
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	correlationID := middleware.GetCorrelationID(ctx)

	slog.InfoContext(ctx, "getting stats", "correlationId", correlationID)

	iCount, err := h.interviewRepo.Count(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count interviews", "error", err, "correlationId", correlationID)
		h.writeError(ctx, w, "INTERNAL_ERROR", "failed to count interviews", http.StatusInternalServerError)
		return
	}

	qCount, err := h.questionRepo.Count(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count questions", "error", err, "correlationId", correlationID)
		h.writeError(ctx, w, "INTERNAL_ERROR", "failed to count questions", http.StatusInternalServerError)
		return
	}

	jCount, err := h.jobRepo.Count(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to count jobs", "error", err, "correlationId", correlationID)
		h.writeError(ctx, w, "INTERNAL_ERROR", "failed to count jobs", http.StatusInternalServerError)
		return
	}

	resp := StatsResponse{
		Interviews: iCount,
		Questions:  qCount,
		FailedJobs: jCount,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": resp}); err != nil {
		slog.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"correlationId": middleware.GetCorrelationID(ctx),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
